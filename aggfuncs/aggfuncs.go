package aggfuncs

import (
	"time"

	"github.com/skyzh/tikv/chunk"
	"github.com/skyzh/tikv/common"
	"github.com/skyzh/tikv/errors"
	"github.com/skyzh/tikv/expr"
)

// AggregateFunction updates per-group AggState slots from incoming values. Every
// typed family exposes the three update protocols, and all three must produce
// identical results for the same logical sequence of values:
//
//   - Eval<T>: one optional value, row-by-row evaluation
//   - Eval<T>Repeated: one optional value applied repeatCount (> 0) times, used
//     when a constant argument feeds the aggregate
//   - Eval<T>Chunked: a physical column plus a logical row list selecting and
//     ordering the participating rows without copying the column
//
// Only the methods matching the function's argument type are meaningfully
// implemented; the shared base implements every other pair by panicking, since a
// mismatched type parameter reaching a state update is an engine bug, not a
// recoverable data error.
type AggregateFunction interface {
	EvalInt64(value int64, null bool, aggState *AggState, index int) error
	EvalInt64Repeated(value int64, null bool, repeatCount int, aggState *AggState, index int) error
	EvalInt64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error

	EvalFloat64(value float64, null bool, aggState *AggState, index int) error
	EvalFloat64Repeated(value float64, null bool, repeatCount int, aggState *AggState, index int) error
	EvalFloat64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error

	EvalString(value string, null bool, aggState *AggState, index int) error
	EvalStringRepeated(value string, null bool, repeatCount int, aggState *AggState, index int) error
	EvalStringChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error

	EvalTimestamp(value common.Timestamp, null bool, aggState *AggState, index int) error
	EvalTimestampRepeated(value common.Timestamp, null bool, repeatCount int, aggState *AggState, index int) error
	EvalTimestampChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error

	EvalDuration(value time.Duration, null bool, aggState *AggState, index int) error
	EvalDurationRepeated(value time.Duration, null bool, repeatCount int, aggState *AggState, index int) error
	EvalDurationChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error

	EvalDecimal(value common.Decimal, null bool, aggState *AggState, index int) error
	EvalDecimalRepeated(value common.Decimal, null bool, repeatCount int, aggState *AggState, index int) error
	EvalDecimalChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error

	// AppendResult appends the slot's current value (or null while Empty) to the
	// output column. The value is copied out so the state stays reusable.
	AppendResult(aggState *AggState, index int, col *chunk.Column) error

	ValueType() common.ColumnType
	ArgType() common.ColumnType
	ArgExpression() expr.Expression
}

type aggregateFunctionBase struct {
	argExpression expr.Expression
	argType       common.ColumnType
	valueType     common.ColumnType
}

func (b *aggregateFunctionBase) EvalInt64(value int64, null bool, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalInt64Repeated(value int64, null bool, repeatCount int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalInt64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalFloat64(value float64, null bool, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalFloat64Repeated(value float64, null bool, repeatCount int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalFloat64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalString(value string, null bool, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalStringRepeated(value string, null bool, repeatCount int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalStringChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalTimestamp(value common.Timestamp, null bool, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalTimestampRepeated(value common.Timestamp, null bool, repeatCount int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalTimestampChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalDuration(value time.Duration, null bool, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalDurationRepeated(value time.Duration, null bool, repeatCount int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalDurationChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalDecimal(value common.Decimal, null bool, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalDecimalRepeated(value common.Decimal, null bool, repeatCount int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) EvalDecimalChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	panic("should not be called")
}

func (b *aggregateFunctionBase) AppendResult(aggState *AggState, index int, col *chunk.Column) error {
	if !aggState.IsSet(index) || aggState.IsNull(index) {
		col.AppendNull()
		return nil
	}
	switch b.valueType.Type {
	case common.TypeBigInt:
		col.AppendInt64(aggState.GetInt64(index))
	case common.TypeDouble:
		col.AppendFloat64(aggState.GetFloat64(index))
	case common.TypeVarchar, common.TypeJSON:
		col.AppendString(aggState.GetString(index))
	case common.TypeTimestamp:
		ts, err := aggState.GetTimestamp(index)
		if err != nil {
			return err
		}
		return col.AppendTimestamp(ts)
	case common.TypeDuration:
		col.AppendDuration(time.Duration(aggState.GetDuration(index)))
	case common.TypeDecimal:
		return col.AppendDecimal(aggState.GetDecimal(index))
	default:
		return errors.NewUnknownColumnTypeError(int(b.valueType.Type))
	}
	return nil
}

type AggFunctionType int

const (
	SumAggregateFunctionType AggFunctionType = iota
	CountAggregateFunctionType
	FirstRowAggregateFunctionType
	MinAggregateFunctionType
	MaxAggregateFunctionType
)

func (t AggFunctionType) String() string {
	switch t {
	case SumAggregateFunctionType:
		return "SUM"
	case CountAggregateFunctionType:
		return "COUNT"
	case FirstRowAggregateFunctionType:
		return "FIRSTROW"
	case MinAggregateFunctionType:
		return "MIN"
	case MaxAggregateFunctionType:
		return "MAX"
	default:
		return "UNKNOWN"
	}
}

func (b *aggregateFunctionBase) ValueType() common.ColumnType {
	return b.valueType
}

func (b *aggregateFunctionBase) ArgType() common.ColumnType {
	return b.argType
}

func (b *aggregateFunctionBase) ArgExpression() expr.Expression {
	return b.argExpression
}

func checkRepeatCount(repeatCount int) {
	if repeatCount <= 0 {
		panic("repeat count must be > 0")
	}
}

func NewAggregateFunction(argExpression expr.Expression, funcType AggFunctionType, valueType common.ColumnType) (AggregateFunction, error) {
	base := aggregateFunctionBase{
		argExpression: argExpression,
		argType:       argExpression.ReturnType(),
		valueType:     valueType,
	}
	switch funcType {
	case SumAggregateFunctionType:
		return &SumAggregateFunction{aggregateFunctionBase: base}, nil
	case CountAggregateFunctionType:
		return &CountAggregateFunction{aggregateFunctionBase: base}, nil
	case FirstRowAggregateFunctionType:
		return &FirstRowAggregateFunction{aggregateFunctionBase: base}, nil
	case MinAggregateFunctionType:
		return &MinAggregateFunction{aggregateFunctionBase: base}, nil
	case MaxAggregateFunctionType:
		return &MaxAggregateFunction{aggregateFunctionBase: base}, nil
	default:
		return nil, errors.Errorf("unexpected aggregate function type %d", funcType)
	}
}
