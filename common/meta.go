package common

import (
	"fmt"
)

// Type is the closed set of logical value types the vectorized execution core
// evaluates. Every component that dispatches on type enumerates exactly this set.
type Type int

const (
	TypeUnknown Type = iota
	TypeBigInt
	TypeDouble
	TypeDecimal
	TypeVarchar
	TypeJSON
	TypeTimestamp
	TypeDuration
)

func (t Type) String() string {
	switch t {
	case TypeBigInt:
		return "BIGINT"
	case TypeDouble:
		return "DOUBLE"
	case TypeDecimal:
		return "DECIMAL"
	case TypeVarchar:
		return "VARCHAR"
	case TypeJSON:
		return "JSON"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeDuration:
		return "DURATION"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
}

var (
	BigIntColumnType    = ColumnType{Type: TypeBigInt}
	DoubleColumnType    = ColumnType{Type: TypeDouble}
	VarcharColumnType   = ColumnType{Type: TypeVarchar}
	JSONColumnType      = ColumnType{Type: TypeJSON}
	TimestampColumnType = ColumnType{Type: TypeTimestamp}
	DurationColumnType  = ColumnType{Type: TypeDuration}
	UnknownColumnType   = ColumnType{Type: TypeUnknown}

	// ColumnTypesByType allows lookup of non-parameterised ColumnType by Type.
	ColumnTypesByType = map[Type]ColumnType{
		TypeBigInt:    BigIntColumnType,
		TypeDouble:    DoubleColumnType,
		TypeVarchar:   VarcharColumnType,
		TypeJSON:      JSONColumnType,
		TypeTimestamp: TimestampColumnType,
		TypeDuration:  DurationColumnType,
	}
)

func NewDecimalColumnType(precision int, scale int) ColumnType {
	return ColumnType{
		Type:         TypeDecimal,
		DecPrecision: precision,
		DecScale:     scale,
	}
}

type ColumnType struct {
	Type         Type
	DecPrecision int
	DecScale     int
}

// FixedSize returns the dense element size in bytes for fixed-width types, or
// 0 for types stored in the var-width offsets+bytes layout.
func (ct ColumnType) FixedSize() int {
	switch ct.Type {
	case TypeBigInt, TypeDouble, TypeTimestamp, TypeDuration:
		return 8
	default:
		return 0
	}
}

func (ct ColumnType) String() string {
	if ct.Type == TypeDecimal {
		return fmt.Sprintf("DECIMAL(%d,%d)", ct.DecPrecision, ct.DecScale)
	}
	return ct.Type.String()
}

type ColumnInfo struct {
	Name string
	ColumnType
}
