package common

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/skyzh/tikv/errors"
)

// decContext is the shared arithmetic context for all decimal operations. 65 digits
// matches the maximum precision a DECIMAL column can declare.
var decContext = apd.BaseContext.WithPrecision(65)

type Decimal struct {
	decimal *apd.Decimal
}

func ZeroDecimal() *Decimal {
	return &Decimal{decimal: &apd.Decimal{}}
}

func NewDecimal(dec *apd.Decimal) *Decimal {
	return &Decimal{decimal: dec}
}

func NewDecFromString(s string) (*Decimal, error) {
	dec, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, errors.NewInvalidDecimalError(s)
	}
	return &Decimal{decimal: dec}, nil
}

func NewDecFromFloat64(f float64) (*Decimal, error) {
	dec := new(apd.Decimal)
	if _, err := dec.SetFloat64(f); err != nil {
		return nil, errors.WithStack(err)
	}
	return &Decimal{decimal: dec}, nil
}

func NewDecFromInt64(i int64) *Decimal {
	dec := new(apd.Decimal)
	dec.SetInt64(i)
	return &Decimal{decimal: dec}
}

func (d *Decimal) CompareTo(dec *Decimal) int {
	return d.decimal.Cmp(dec.decimal)
}

// Encode appends the decimal to the buffer as a length-prefixed decimal string.
// Group keys built from this encoding are compared for equality only, so the
// encoding does not need to be memcomparable.
func (d *Decimal) Encode(buffer []byte) ([]byte, error) {
	return AppendStringToBufferLE(buffer, d.decimal.Text('f')), nil
}

func (d *Decimal) Decode(buffer []byte, offset int) (int, error) {
	str, off := ReadStringFromBufferLE(buffer, offset)
	dec, _, err := apd.NewFromString(str)
	if err != nil {
		return 0, errors.NewInvalidDecimalError(str)
	}
	d.decimal = dec
	return off, nil
}

func (d *Decimal) Add(other *Decimal) (*Decimal, error) {
	result := &apd.Decimal{}
	if _, err := decContext.Add(result, d.decimal, other.decimal); err != nil {
		return nil, errors.WithStack(err)
	}
	return NewDecimal(result), nil
}

func (d *Decimal) Subtract(other *Decimal) (*Decimal, error) {
	result := &apd.Decimal{}
	if _, err := decContext.Sub(result, d.decimal, other.decimal); err != nil {
		return nil, errors.WithStack(err)
	}
	return NewDecimal(result), nil
}

// MulInt64 returns d * n. Used by the repeated update protocol for SUM where the
// same value is applied n times.
func (d *Decimal) MulInt64(n int64) (*Decimal, error) {
	factor := new(apd.Decimal)
	factor.SetInt64(n)
	result := &apd.Decimal{}
	if _, err := decContext.Mul(result, d.decimal, factor); err != nil {
		return nil, errors.WithStack(err)
	}
	return NewDecimal(result), nil
}

func (d *Decimal) String() string {
	return d.decimal.Text('f')
}
