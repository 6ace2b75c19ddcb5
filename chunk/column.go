package chunk

import (
	"time"

	"github.com/skyzh/tikv/common"
	"github.com/skyzh/tikv/errors"
)

// Column is an append-only, null-aware dense vector holding one column of a chunk.
// Null tracking lives in a separate bitmap (one bit per row, set = non-null) so
// the value buffer stays densely addressable: every row, null or not, occupies a
// slot, giving O(1) access by row index without per-row tags. Fixed-width types
// are laid out at rowIdx*elemSize; var-width types use an offsets+bytes layout.
//
// Typed Get* accessors assume the caller matched the column's type and checked
// IsNull first. That is a caller contract, not a runtime check - a mismatch is an
// engine bug, not a data error.
type Column struct {
	length     int
	nullCount  int
	nullBitmap []byte
	offsets    []int64
	data       []byte
	elemSize   int
	colType    common.ColumnType
}

// NewColumn creates an empty column for the given logical type, pre-sizing
// buffers for capacity rows.
func NewColumn(colType common.ColumnType, capacity int) *Column {
	elemSize := colType.FixedSize()
	col := &Column{
		nullBitmap: make([]byte, 0, (capacity+7)/8),
		elemSize:   elemSize,
		colType:    colType,
	}
	if elemSize > 0 {
		col.data = make([]byte, 0, elemSize*capacity)
	} else {
		col.offsets = append(make([]int64, 0, capacity+1), 0)
	}
	return col
}

func (c *Column) Type() common.ColumnType {
	return c.colType
}

// Len returns the total rows in the column.
func (c *Column) Len() int {
	return c.length
}

func (c *Column) IsEmpty() bool {
	return c.length == 0
}

func (c *Column) NullCount() int {
	return c.nullCount
}

// IsNull returns whether the datum for the row is null or not.
func (c *Column) IsNull(rowIdx int) bool {
	if rowIdx >= c.length || rowIdx < 0 {
		panic("index out of range")
	}
	if c.nullCount == 0 {
		// common case for non-nullable columns, the bitmap is never touched
		return false
	}
	return c.nullBitmap[rowIdx>>3]&(1<<(rowIdx&7)) == 0
}

// appendNullBitmap updates the null bitmap and count when a datum is appended.
// on is false when the datum is null.
func (c *Column) appendNullBitmap(on bool) {
	idx := c.length >> 3
	if idx >= len(c.nullBitmap) {
		c.nullBitmap = append(c.nullBitmap, 0)
	}
	if on {
		pos := c.length & 7
		c.nullBitmap[idx] |= 1 << pos
	} else {
		c.nullCount++
	}
}

// AppendNull records a null at the next row. The value buffer still advances by a
// full (zeroed) slot so that every row index maps to a valid byte range.
func (c *Column) AppendNull() {
	c.appendNullBitmap(false)
	if c.elemSize > 0 {
		for i := 0; i < c.elemSize; i++ {
			c.data = append(c.data, 0)
		}
	} else {
		c.offsets = append(c.offsets, c.offsets[len(c.offsets)-1])
	}
	c.length++
}

// finishAppend is called when the datum bytes have been written.
func (c *Column) finishAppend() {
	c.appendNullBitmap(true)
	if c.elemSize == 0 {
		c.offsets = append(c.offsets, int64(len(c.data)))
	}
	c.length++
}

func (c *Column) AppendInt64(val int64) {
	c.data = common.AppendInt64ToBufferLE(c.data, val)
	c.finishAppend()
}

func (c *Column) AppendFloat64(val float64) {
	c.data = common.AppendFloat64ToBufferLE(c.data, val)
	c.finishAppend()
}

func (c *Column) AppendDuration(val time.Duration) {
	c.data = common.AppendInt64ToBufferLE(c.data, int64(val))
	c.finishAppend()
}

// AppendTimestamp encodes first, so a failed encode leaves the column unchanged.
func (c *Column) AppendTimestamp(val common.Timestamp) error {
	packed, err := val.ToPackedUint()
	if err != nil {
		return errors.WithStack(err)
	}
	c.data = common.AppendUint64ToBufferLE(c.data, packed)
	c.finishAppend()
	return nil
}

func (c *Column) AppendString(val string) {
	c.data = append(c.data, val...)
	c.finishAppend()
}

func (c *Column) AppendBytes(val []byte) {
	c.data = append(c.data, val...)
	c.finishAppend()
}

// AppendDecimal encodes first, so a failed encode leaves the column unchanged.
func (c *Column) AppendDecimal(val common.Decimal) error {
	encoded, err := val.Encode(nil)
	if err != nil {
		return errors.WithStack(err)
	}
	c.data = append(c.data, encoded...)
	c.finishAppend()
	return nil
}

// AppendFrom appends the value at row rowIdx of other, preserving nullness. Both
// columns must have the same layout.
func (c *Column) AppendFrom(other *Column, rowIdx int) {
	if other.IsNull(rowIdx) {
		c.AppendNull()
		return
	}
	if other.elemSize > 0 {
		start := rowIdx * other.elemSize
		c.data = append(c.data, other.data[start:start+other.elemSize]...)
	} else {
		c.data = append(c.data, other.data[other.offsets[rowIdx]:other.offsets[rowIdx+1]]...)
	}
	c.finishAppend()
}

func (c *Column) GetInt64(rowIdx int) int64 {
	val, _ := common.ReadInt64FromBufferLE(c.data, rowIdx*8)
	return val
}

func (c *Column) GetFloat64(rowIdx int) float64 {
	val, _ := common.ReadFloat64FromBufferLE(c.data, rowIdx*8)
	return val
}

func (c *Column) GetDuration(rowIdx int) time.Duration {
	val, _ := common.ReadInt64FromBufferLE(c.data, rowIdx*8)
	return time.Duration(val)
}

func (c *Column) GetTimestamp(rowIdx int) (common.Timestamp, error) {
	packed, _ := common.ReadUint64FromBufferLE(c.data, rowIdx*8)
	ts := common.Timestamp{}
	if err := ts.FromPackedUint(packed); err != nil {
		return common.Timestamp{}, errors.WithStack(err)
	}
	return ts, nil
}

func (c *Column) GetString(rowIdx int) string {
	return common.ByteSliceToStringZeroCopy(c.GetBytes(rowIdx))
}

func (c *Column) GetBytes(rowIdx int) []byte {
	return c.data[c.offsets[rowIdx]:c.offsets[rowIdx+1]]
}

func (c *Column) GetDecimal(rowIdx int) (common.Decimal, error) {
	dec := common.Decimal{}
	if _, err := dec.Decode(c.data, int(c.offsets[rowIdx])); err != nil {
		return common.Decimal{}, errors.WithStack(err)
	}
	return dec, nil
}
