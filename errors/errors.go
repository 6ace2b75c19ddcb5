package errors

import (
	"fmt"
)

type ErrorCode int

const (
	InternalError ErrorCode = iota
	UnknownColumnType
	UnsupportedAggregateFunction
	InvalidAggregateArity
	AggregateTypeMismatch
	UnsupportedScalarFunction
	WrongNumberFunctionArguments
	InvalidConstant
	InvalidDecimal
	InvalidJSON
	ValueOutOfRange
)

func NewInternalError(ref string) CoprError {
	return NewCoprErrorf(InternalError, "Internal error - reference %s please consult server logs for details", ref)
}

func NewUnknownColumnTypeError(columnType int) CoprError {
	return NewCoprErrorf(UnknownColumnType, "Unknown column type %d", columnType)
}

func NewUnsupportedAggregateFunctionError(funcName string) CoprError {
	return NewCoprErrorf(UnsupportedAggregateFunction, "Aggregate function %s is not supported in vectorized mode", funcName)
}

func NewUnsupportedAggregateArgumentError(funcName string, argType string) CoprError {
	return NewCoprErrorf(UnsupportedAggregateFunction, "Aggregate function %s does not support arguments of type %s", funcName, argType)
}

func NewInvalidAggregateArityError(funcName string, expected int, actual int) CoprError {
	return NewCoprErrorf(InvalidAggregateArity, "Aggregate function %s requires %d argument(s) but %d were provided", funcName, expected, actual)
}

func NewAggregateTypeMismatchError(funcName string, outType string, childType string) CoprError {
	return NewCoprErrorf(AggregateTypeMismatch, "Aggregate function %s declares return type %s but its argument has type %s", funcName, outType, childType)
}

func NewUnsupportedScalarFunctionError(sigName string) CoprError {
	return NewCoprErrorf(UnsupportedScalarFunction, "Scalar function %s is not supported in vectorized mode", sigName)
}

func NewWrongNumberFunctionArgumentsError(funcName string, expected int, actual int) CoprError {
	return NewCoprErrorf(WrongNumberFunctionArguments, "Scalar function %s requires %d argument(s) but %d were provided", funcName, expected, actual)
}

func NewInvalidConstantError(value interface{}, typeName string) CoprError {
	return NewCoprErrorf(InvalidConstant, "Constant %v cannot be converted to type %s", value, typeName)
}

func NewInvalidDecimalError(value string) CoprError {
	return NewCoprErrorf(InvalidDecimal, "Invalid decimal value %s", value)
}

func NewInvalidJSONError(msg string) CoprError {
	return NewCoprErrorf(InvalidJSON, "Invalid JSON document: %s", msg)
}

func NewValueOutOfRangeError(msg string) CoprError {
	return NewCoprErrorf(ValueOutOfRange, "Value out of range. %s", msg)
}

func NewCoprErrorf(errorCode ErrorCode, msgFormat string, args ...interface{}) CoprError {
	msg := fmt.Sprintf(fmt.Sprintf("COPR%04d - %s", errorCode, msgFormat), args...)
	return CoprError{Code: errorCode, Msg: msg}
}

func NewCoprError(errorCode ErrorCode, msg string) CoprError {
	return CoprError{Code: errorCode, Msg: msg}
}

func Error(msg string) error {
	return New(msg)
}

// CoprError is any kind of error that is exposed to the user via external interfaces
// like the query client - schema and encoding errors, never engine bugs
type CoprError struct {
	Code ErrorCode
	Msg  string
}

func (u CoprError) Error() string {
	return u.Msg
}
