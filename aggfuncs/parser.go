package aggfuncs

import (
	"github.com/skyzh/tikv/common"
	"github.com/skyzh/tikv/errors"
	"github.com/skyzh/tikv/expr"
)

// ParseAggregateFunction validates a serialized aggregate descriptor against the
// source schema and instantiates the concretely-typed function behind the
// type-erased AggregateFunction handle. All failures here are schema errors
// reported to the caller; no state machine is ever constructed for a bad
// descriptor.
func ParseAggregateFunction(node *expr.Node, srcSchema []common.ColumnType) (AggregateFunction, error) {
	funcType, err := aggFunctionType(node.Tp)
	if err != nil {
		return nil, err
	}
	if len(node.Children) != 1 {
		return nil, errors.NewInvalidAggregateArityError(funcType.String(), 1, len(node.Children))
	}
	argExpression, err := expr.BuildExpression(node.Children[0], srcSchema)
	if err != nil {
		return nil, err
	}
	argType := argExpression.ReturnType()
	outType := node.FieldType
	if err := checkArgTypeSupported(funcType, argType); err != nil {
		return nil, err
	}
	if err := checkOutputType(funcType, outType, argType); err != nil {
		return nil, err
	}
	return NewAggregateFunction(argExpression, funcType, outType)
}

func aggFunctionType(tp expr.NodeType) (AggFunctionType, error) {
	switch tp {
	case expr.NodeAggFirstRow:
		return FirstRowAggregateFunctionType, nil
	case expr.NodeAggSum:
		return SumAggregateFunctionType, nil
	case expr.NodeAggCount:
		return CountAggregateFunctionType, nil
	case expr.NodeAggMin:
		return MinAggregateFunctionType, nil
	case expr.NodeAggMax:
		return MaxAggregateFunctionType, nil
	default:
		return 0, errors.NewUnsupportedAggregateFunctionError(tp.String())
	}
}

// checkArgTypeSupported enforces the closed per-function type sets - the same
// sets the typed Eval methods implement. Anything outside the set would otherwise
// only surface as a panicking base method at update time.
func checkArgTypeSupported(funcType AggFunctionType, argType common.ColumnType) error {
	switch funcType {
	case FirstRowAggregateFunctionType, CountAggregateFunctionType:
		switch argType.Type {
		case common.TypeBigInt, common.TypeDouble, common.TypeVarchar, common.TypeJSON,
			common.TypeTimestamp, common.TypeDuration, common.TypeDecimal:
			return nil
		}
	case SumAggregateFunctionType:
		switch argType.Type {
		case common.TypeBigInt, common.TypeDouble, common.TypeDecimal:
			return nil
		}
	case MinAggregateFunctionType, MaxAggregateFunctionType:
		switch argType.Type {
		case common.TypeBigInt, common.TypeDouble, common.TypeVarchar,
			common.TypeTimestamp, common.TypeDuration, common.TypeDecimal:
			return nil
		}
	}
	return errors.NewUnsupportedAggregateArgumentError(funcType.String(), argType.String())
}

// checkOutputType verifies the declared output type against the operand type.
// COUNT always yields BIGINT; every other function yields its operand type.
func checkOutputType(funcType AggFunctionType, outType common.ColumnType, argType common.ColumnType) error {
	if funcType == CountAggregateFunctionType {
		if outType.Type != common.TypeBigInt {
			return errors.NewAggregateTypeMismatchError(funcType.String(), outType.String(), common.BigIntColumnType.String())
		}
		return nil
	}
	if outType != argType {
		return errors.NewAggregateTypeMismatchError(funcType.String(), outType.String(), argType.String())
	}
	return nil
}
