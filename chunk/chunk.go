package chunk

import (
	"github.com/skyzh/tikv/common"
)

// Chunk is a window of rows held as one Column per output field. Ownership is
// exclusive: the component materializing the chunk mutates it, then hands it on.
type Chunk struct {
	columns  []*Column
	colTypes []common.ColumnType
}

func NewChunk(colTypes []common.ColumnType, capacity int) *Chunk {
	columns := make([]*Column, len(colTypes))
	for i, colType := range colTypes {
		columns[i] = NewColumn(colType, capacity)
	}
	return &Chunk{columns: columns, colTypes: colTypes}
}

func (c *Chunk) Column(colIdx int) *Column {
	return c.columns[colIdx]
}

func (c *Chunk) ColTypes() []common.ColumnType {
	return c.colTypes
}

func (c *Chunk) NumCols() int {
	return len(c.columns)
}

func (c *Chunk) NumRows() int {
	if len(c.columns) == 0 {
		return 0
	}
	return c.columns[0].Len()
}
