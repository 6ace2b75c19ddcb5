package expr

import (
	"time"

	"github.com/spf13/cast"

	"github.com/skyzh/tikv/chunk"
	"github.com/skyzh/tikv/common"
	"github.com/skyzh/tikv/errors"
)

// Expression is a built, concretely-typed expression. EvalColumn materializes the
// expression over every physical row of the input chunk; the output column is
// row-aligned with the input so downstream logical row lists index into it
// unchanged.
type Expression interface {
	ReturnType() common.ColumnType
	EvalColumn(input *chunk.Chunk) (*chunk.Column, error)
}

// BuildExpression resolves a serialized expression node against the source schema
// into its evaluable form. Unsupported signatures and malformed nodes are schema
// errors reported to the caller, never panics.
func BuildExpression(node *Node, srcSchema []common.ColumnType) (Expression, error) {
	switch node.Tp {
	case NodeColumnRef:
		if node.ColIndex < 0 || node.ColIndex >= len(srcSchema) {
			return nil, errors.Errorf("column offset %d out of range, schema has %d columns", node.ColIndex, len(srcSchema))
		}
		return &ColumnExpression{colIndex: node.ColIndex, colType: srcSchema[node.ColIndex]}, nil
	case NodeConstant:
		return buildConstant(node)
	case NodeScalarFunc:
		meta, err := ResolveScalarFunction(node)
		if err != nil {
			return nil, err
		}
		if meta.Arity == VariadicArity {
			if len(node.Children) < 2 {
				return nil, errors.NewWrongNumberFunctionArgumentsError(meta.Name, 2, len(node.Children))
			}
		} else if len(node.Children) != meta.Arity {
			return nil, errors.NewWrongNumberFunctionArgumentsError(meta.Name, meta.Arity, len(node.Children))
		}
		args := make([]Expression, len(node.Children))
		for i, child := range node.Children {
			arg, err := BuildExpression(child, srcSchema)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return &ScalarFunctionExpression{meta: meta, args: args, retType: node.FieldType}, nil
	default:
		return nil, errors.Errorf("unexpected expression node %s", node.Tp)
	}
}

// ColumnExpression is a reference to a physical column of the input chunk.
type ColumnExpression struct {
	colIndex int
	colType  common.ColumnType
}

func NewColumnExpression(colIndex int, colType common.ColumnType) *ColumnExpression {
	return &ColumnExpression{colIndex: colIndex, colType: colType}
}

func (e *ColumnExpression) ReturnType() common.ColumnType {
	return e.colType
}

func (e *ColumnExpression) ColumnIndex() int {
	return e.colIndex
}

func (e *ColumnExpression) EvalColumn(input *chunk.Chunk) (*chunk.Column, error) {
	return input.Column(e.colIndex), nil
}

// ConstantExpression is a typed literal broadcast across every row.
type ConstantExpression struct {
	colType common.ColumnType
	value   interface{}
	null    bool
}

func NewConstantExpression(value interface{}, colType common.ColumnType) (*ConstantExpression, error) {
	return buildConstant(&Node{Tp: NodeConstant, Value: value, FieldType: colType})
}

func buildConstant(node *Node) (*ConstantExpression, error) {
	colType := node.FieldType
	if node.Value == nil {
		return &ConstantExpression{colType: colType, null: true}, nil
	}
	var (
		value interface{}
		err   error
	)
	switch colType.Type {
	case common.TypeBigInt:
		value, err = cast.ToInt64E(node.Value)
	case common.TypeDouble:
		value, err = cast.ToFloat64E(node.Value)
	case common.TypeVarchar, common.TypeJSON:
		value, err = cast.ToStringE(node.Value)
	case common.TypeDuration:
		value, err = cast.ToDurationE(node.Value)
	case common.TypeTimestamp:
		if ts, ok := node.Value.(common.Timestamp); ok {
			value = ts
		} else {
			var t time.Time
			t, err = cast.ToTimeE(node.Value)
			if err == nil {
				value = common.NewTimestampFromGoTime(t)
			}
		}
	case common.TypeDecimal:
		if dec, ok := node.Value.(common.Decimal); ok {
			value = dec
		} else {
			var str string
			str, err = cast.ToStringE(node.Value)
			if err == nil {
				var dec *common.Decimal
				dec, err = common.NewDecFromString(str)
				if err == nil {
					value = *dec
				}
			}
		}
	default:
		return nil, errors.NewUnknownColumnTypeError(int(colType.Type))
	}
	if err != nil {
		return nil, errors.NewInvalidConstantError(node.Value, colType.String())
	}
	return &ConstantExpression{colType: colType, value: value}, nil
}

func (e *ConstantExpression) ReturnType() common.ColumnType {
	return e.colType
}

// Value returns the typed literal and whether it is null.
func (e *ConstantExpression) Value() (interface{}, bool) {
	return e.value, e.null
}

func (e *ConstantExpression) EvalColumn(input *chunk.Chunk) (*chunk.Column, error) {
	numRows := input.NumRows()
	col := chunk.NewColumn(e.colType, numRows)
	for i := 0; i < numRows; i++ {
		if e.null {
			col.AppendNull()
			continue
		}
		if err := appendConstant(col, e.colType, e.value); err != nil {
			return nil, err
		}
	}
	return col, nil
}

func appendConstant(col *chunk.Column, colType common.ColumnType, value interface{}) error {
	switch colType.Type {
	case common.TypeBigInt:
		col.AppendInt64(value.(int64))
	case common.TypeDouble:
		col.AppendFloat64(value.(float64))
	case common.TypeVarchar, common.TypeJSON:
		col.AppendString(value.(string))
	case common.TypeDuration:
		col.AppendDuration(value.(time.Duration))
	case common.TypeTimestamp:
		return col.AppendTimestamp(value.(common.Timestamp))
	case common.TypeDecimal:
		return col.AppendDecimal(value.(common.Decimal))
	default:
		return errors.NewUnknownColumnTypeError(int(colType.Type))
	}
	return nil
}

// ScalarFunctionExpression applies one resolved vectorized function to its
// materialized arguments.
type ScalarFunctionExpression struct {
	meta    FuncMeta
	args    []Expression
	retType common.ColumnType
}

func (e *ScalarFunctionExpression) ReturnType() common.ColumnType {
	return e.retType
}

func (e *ScalarFunctionExpression) Name() string {
	return e.meta.Name
}

func (e *ScalarFunctionExpression) EvalColumn(input *chunk.Chunk) (*chunk.Column, error) {
	numRows := input.NumRows()
	argCols := make([]*chunk.Column, len(e.args))
	for i, arg := range e.args {
		col, err := arg.EvalColumn(input)
		if err != nil {
			return nil, err
		}
		argCols[i] = col
	}
	result := chunk.NewColumn(e.retType, numRows)
	if err := e.meta.Fn(argCols, numRows, result); err != nil {
		return nil, err
	}
	return result, nil
}
