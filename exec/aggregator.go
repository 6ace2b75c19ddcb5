package exec

import (
	"bytes"
	"time"

	"github.com/twmb/murmur3"

	"github.com/skyzh/tikv/aggfuncs"
	"github.com/skyzh/tikv/chunk"
	"github.com/skyzh/tikv/common"
	"github.com/skyzh/tikv/errors"
	"github.com/skyzh/tikv/expr"
)

// Aggregator consumes chunks (optionally filtered through a logical row list) and
// maintains one AggState per distinct group key. Constant aggregate arguments use
// the repeated update protocol, column and scalar-function arguments the chunked
// protocol. The operator is single-threaded and owns its state exclusively;
// coarser-grained parallelism runs independent Aggregators over disjoint batches.
type Aggregator struct {
	aggFuncs    []aggfuncs.AggregateFunction
	groupByCols []int
	srcColTypes []common.ColumnType
	outColTypes []common.ColumnType
	groups      map[uint64][]*aggStateHolder
	groupOrder  []*aggStateHolder
}

type aggStateHolder struct {
	aggState *aggfuncs.AggState
	keyBytes []byte
	keyVals  []interface{}
	// logical rows belonging to this group in the batch currently being processed
	batchRows []int
}

// NewAggregator parses the serialized aggregate descriptors against the source
// schema and builds the operator. Output columns are the group-by columns
// followed by one column per aggregate.
func NewAggregator(aggDescs []*expr.Node, groupByCols []int, srcColTypes []common.ColumnType) (*Aggregator, error) {
	aggFunctions := make([]aggfuncs.AggregateFunction, len(aggDescs))
	for i, desc := range aggDescs {
		aggFunc, err := aggfuncs.ParseAggregateFunction(desc, srcColTypes)
		if err != nil {
			return nil, err
		}
		aggFunctions[i] = aggFunc
	}
	outColTypes := make([]common.ColumnType, 0, len(groupByCols)+len(aggFunctions))
	for _, colIndex := range groupByCols {
		if colIndex < 0 || colIndex >= len(srcColTypes) {
			return nil, errors.Errorf("group by column %d out of range, schema has %d columns", colIndex, len(srcColTypes))
		}
		outColTypes = append(outColTypes, srcColTypes[colIndex])
	}
	for _, aggFunc := range aggFunctions {
		outColTypes = append(outColTypes, aggFunc.ValueType())
	}
	return &Aggregator{
		aggFuncs:    aggFunctions,
		groupByCols: groupByCols,
		srcColTypes: srcColTypes,
		outColTypes: outColTypes,
		groups:      make(map[uint64][]*aggStateHolder),
	}, nil
}

func (a *Aggregator) OutColTypes() []common.ColumnType {
	return a.outColTypes
}

func (a *Aggregator) NumGroups() int {
	return len(a.groupOrder)
}

// HandleChunk folds one chunk into the aggregate states. logicalRows selects and
// orders the participating physical rows; nil means every row in physical order.
func (a *Aggregator) HandleChunk(input *chunk.Chunk, logicalRows []int) error {
	if logicalRows == nil {
		logicalRows = make([]int, input.NumRows())
		for i := range logicalRows {
			logicalRows[i] = i
		}
	}
	batchesProcessedCounter.Inc()
	rowsProcessedCounter.Add(float64(len(logicalRows)))
	batchSizeHistogram.Observe(float64(len(logicalRows)))

	touched, err := a.bucketRowsByGroup(input, logicalRows)
	if err != nil {
		return err
	}
	defer func() {
		for _, stateHolder := range touched {
			stateHolder.batchRows = nil
		}
	}()

	for index, aggFunc := range a.aggFuncs {
		if err := a.updateAggFunction(aggFunc, index, input, touched); err != nil {
			if _, ok := err.(errors.CoprError); ok { //nolint: errorlint
				return err
			}
			return common.LogInternalError(err)
		}
	}
	return nil
}

// bucketRowsByGroup assigns each logical row to its group's state holder,
// creating states for newly seen keys. Holders are keyed by the murmur3 hash of
// the encoded group key with an explicit chain for hash collisions.
func (a *Aggregator) bucketRowsByGroup(input *chunk.Chunk, logicalRows []int) ([]*aggStateHolder, error) {
	var touched []*aggStateHolder
	for _, row := range logicalRows {
		keyBytes, keyVals, err := a.encodeGroupKey(input, row)
		if err != nil {
			return nil, err
		}
		stateHolder := a.findOrCreateGroup(keyBytes, keyVals)
		if stateHolder.batchRows == nil {
			touched = append(touched, stateHolder)
		}
		stateHolder.batchRows = append(stateHolder.batchRows, row)
	}
	return touched, nil
}

func (a *Aggregator) findOrCreateGroup(keyBytes []byte, keyVals []interface{}) *aggStateHolder {
	hash := murmur3.Sum64(keyBytes)
	for _, stateHolder := range a.groups[hash] {
		if bytes.Equal(stateHolder.keyBytes, keyBytes) {
			return stateHolder
		}
	}
	stateHolder := &aggStateHolder{
		aggState: aggfuncs.NewAggState(len(a.aggFuncs)),
		keyBytes: keyBytes,
		keyVals:  keyVals,
	}
	a.groups[hash] = append(a.groups[hash], stateHolder)
	a.groupOrder = append(a.groupOrder, stateHolder)
	groupsCreatedCounter.Inc()
	return stateHolder
}

func (a *Aggregator) encodeGroupKey(input *chunk.Chunk, row int) ([]byte, []interface{}, error) {
	keyBytes := make([]byte, 0, 8*len(a.groupByCols))
	keyVals := make([]interface{}, len(a.groupByCols))
	for i, colIndex := range a.groupByCols {
		colType := a.srcColTypes[colIndex]
		value, err := getColValue(input.Column(colIndex), row, colType)
		if err != nil {
			return nil, nil, err
		}
		keyVals[i] = value
		keyBytes, err = common.EncodeKeyElement(value, colType, keyBytes)
		if err != nil {
			return nil, nil, err
		}
	}
	return keyBytes, keyVals, nil
}

// getColValue reads one value as its owned Go representation. Strings are copied
// out of the chunk buffer because group state outlives the batch.
func getColValue(col *chunk.Column, row int, colType common.ColumnType) (interface{}, error) {
	if col.IsNull(row) {
		return nil, nil
	}
	switch colType.Type {
	case common.TypeBigInt:
		return col.GetInt64(row), nil
	case common.TypeDouble:
		return col.GetFloat64(row), nil
	case common.TypeVarchar, common.TypeJSON:
		return string(col.GetBytes(row)), nil
	case common.TypeTimestamp:
		return col.GetTimestamp(row)
	case common.TypeDuration:
		return int64(col.GetDuration(row)), nil
	case common.TypeDecimal:
		return col.GetDecimal(row)
	default:
		return nil, errors.NewUnknownColumnTypeError(int(colType.Type))
	}
}

func (a *Aggregator) updateAggFunction(aggFunc aggfuncs.AggregateFunction, index int, input *chunk.Chunk, touched []*aggStateHolder) error {
	if constant, ok := aggFunc.ArgExpression().(*expr.ConstantExpression); ok {
		value, null := constant.Value()
		for _, stateHolder := range touched {
			if err := updateRepeated(aggFunc, value, null, len(stateHolder.batchRows), stateHolder.aggState, index); err != nil {
				return err
			}
		}
		return nil
	}
	argCol, err := aggFunc.ArgExpression().EvalColumn(input)
	if err != nil {
		return err
	}
	for _, stateHolder := range touched {
		if err := updateChunked(aggFunc, argCol, stateHolder.batchRows, stateHolder.aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func updateChunked(aggFunc aggfuncs.AggregateFunction, col *chunk.Column, logicalRows []int, aggState *aggfuncs.AggState, index int) error {
	switch aggFunc.ArgType().Type {
	case common.TypeBigInt:
		return aggFunc.EvalInt64Chunked(col, logicalRows, aggState, index)
	case common.TypeDouble:
		return aggFunc.EvalFloat64Chunked(col, logicalRows, aggState, index)
	case common.TypeVarchar, common.TypeJSON:
		return aggFunc.EvalStringChunked(col, logicalRows, aggState, index)
	case common.TypeTimestamp:
		return aggFunc.EvalTimestampChunked(col, logicalRows, aggState, index)
	case common.TypeDuration:
		return aggFunc.EvalDurationChunked(col, logicalRows, aggState, index)
	case common.TypeDecimal:
		return aggFunc.EvalDecimalChunked(col, logicalRows, aggState, index)
	default:
		return errors.NewUnknownColumnTypeError(int(aggFunc.ArgType().Type))
	}
}

func updateRepeated(aggFunc aggfuncs.AggregateFunction, value interface{}, null bool, repeatCount int, aggState *aggfuncs.AggState, index int) error {
	switch aggFunc.ArgType().Type {
	case common.TypeBigInt:
		var v int64
		if !null {
			v = value.(int64)
		}
		return aggFunc.EvalInt64Repeated(v, null, repeatCount, aggState, index)
	case common.TypeDouble:
		var v float64
		if !null {
			v = value.(float64)
		}
		return aggFunc.EvalFloat64Repeated(v, null, repeatCount, aggState, index)
	case common.TypeVarchar, common.TypeJSON:
		var v string
		if !null {
			v = value.(string)
		}
		return aggFunc.EvalStringRepeated(v, null, repeatCount, aggState, index)
	case common.TypeTimestamp:
		var v common.Timestamp
		if !null {
			v = value.(common.Timestamp)
		}
		return aggFunc.EvalTimestampRepeated(v, null, repeatCount, aggState, index)
	case common.TypeDuration:
		var v time.Duration
		if !null {
			v = value.(time.Duration)
		}
		return aggFunc.EvalDurationRepeated(v, null, repeatCount, aggState, index)
	case common.TypeDecimal:
		var v common.Decimal
		if !null {
			v = value.(common.Decimal)
		}
		return aggFunc.EvalDecimalRepeated(v, null, repeatCount, aggState, index)
	default:
		return errors.NewUnknownColumnTypeError(int(aggFunc.ArgType().Type))
	}
}

// ResultChunk materializes one output row per group in first-seen order: the
// group-by columns followed by each aggregate's extracted result. Results are
// copied out of the states, so the aggregator can keep consuming chunks.
func (a *Aggregator) ResultChunk() (*chunk.Chunk, error) {
	result := chunk.NewChunk(a.outColTypes, len(a.groupOrder))
	for _, stateHolder := range a.groupOrder {
		for i, value := range stateHolder.keyVals {
			col := result.Column(i)
			if value == nil {
				col.AppendNull()
				continue
			}
			if err := appendKeyValue(col, a.outColTypes[i], value); err != nil {
				return nil, err
			}
		}
		for i, aggFunc := range a.aggFuncs {
			col := result.Column(len(a.groupByCols) + i)
			if err := aggFunc.AppendResult(stateHolder.aggState, i, col); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func appendKeyValue(col *chunk.Column, colType common.ColumnType, value interface{}) error {
	switch colType.Type {
	case common.TypeBigInt:
		col.AppendInt64(value.(int64))
	case common.TypeDouble:
		col.AppendFloat64(value.(float64))
	case common.TypeVarchar, common.TypeJSON:
		col.AppendString(value.(string))
	case common.TypeTimestamp:
		return col.AppendTimestamp(value.(common.Timestamp))
	case common.TypeDuration:
		col.AppendDuration(time.Duration(value.(int64)))
	case common.TypeDecimal:
		return col.AppendDecimal(value.(common.Decimal))
	default:
		return errors.NewUnknownColumnTypeError(int(colType.Type))
	}
	return nil
}
