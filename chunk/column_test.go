package chunk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skyzh/tikv/common"
)

func TestColumnAppendInt64WithNulls(t *testing.T) {
	col := NewColumn(common.BigIntColumnType, 8)
	col.AppendNull()
	col.AppendInt64(233)
	col.AppendInt64(65536)
	col.AppendNull()
	col.AppendInt64(-233)
	col.AppendInt64(233333333)
	col.AppendNull()

	require.Equal(t, 7, col.Len())
	require.Equal(t, 3, col.NullCount())
	expectedNulls := []bool{true, false, false, true, false, false, true}
	for i, null := range expectedNulls {
		require.Equal(t, null, col.IsNull(i), "row %d", i)
	}
	require.Equal(t, int64(233), col.GetInt64(1))
	require.Equal(t, int64(65536), col.GetInt64(2))
	require.Equal(t, int64(-233), col.GetInt64(4))
	require.Equal(t, int64(233333333), col.GetInt64(5))
}

func TestColumnNoNullsFastPath(t *testing.T) {
	col := NewColumn(common.BigIntColumnType, 4)
	for i := 0; i < 100; i++ {
		col.AppendInt64(int64(i))
	}
	require.Equal(t, 0, col.NullCount())
	for i := 0; i < 100; i++ {
		require.False(t, col.IsNull(i))
		require.Equal(t, int64(i), col.GetInt64(i))
	}
}

func TestColumnIsNullOutOfRangePanics(t *testing.T) {
	col := NewColumn(common.BigIntColumnType, 4)
	col.AppendInt64(1)
	require.Panics(t, func() {
		col.IsNull(1)
	})
	require.Panics(t, func() {
		col.IsNull(-1)
	})
}

func TestColumnFloat64(t *testing.T) {
	col := NewColumn(common.DoubleColumnType, 4)
	col.AppendFloat64(1.25)
	col.AppendNull()
	col.AppendFloat64(-1e308)

	require.Equal(t, 3, col.Len())
	require.Equal(t, 1.25, col.GetFloat64(0))
	require.True(t, col.IsNull(1))
	require.Equal(t, -1e308, col.GetFloat64(2))
}

func TestColumnString(t *testing.T) {
	col := NewColumn(common.VarcharColumnType, 4)
	col.AppendString("apples")
	col.AppendNull()
	col.AppendString("")
	col.AppendString("pears")

	require.Equal(t, 4, col.Len())
	require.Equal(t, "apples", col.GetString(0))
	require.True(t, col.IsNull(1))
	require.False(t, col.IsNull(2))
	require.Equal(t, "", col.GetString(2))
	require.Equal(t, "pears", col.GetString(3))
}

func TestColumnTimestamp(t *testing.T) {
	col := NewColumn(common.TimestampColumnType, 4)
	ts := common.NewTimestampFromStringForTest("2021-06-15 13:14:15.123456")
	col.AppendNull()
	require.NoError(t, col.AppendTimestamp(ts))

	require.True(t, col.IsNull(0))
	actual, err := col.GetTimestamp(1)
	require.NoError(t, err)
	require.Equal(t, 0, ts.Compare(actual))
}

func TestColumnAppendTimestampEncodeFailureLeavesColumnUnchanged(t *testing.T) {
	col := NewColumn(common.TimestampColumnType, 4)
	ts := common.NewTimestampFromStringForTest("2021-06-15 13:14:15")
	require.NoError(t, col.AppendTimestamp(ts))
	col.AppendNull()

	// the packed codec only covers years 0-9999, so this encode must fail
	tooLate := common.NewTimestampFromGoTime(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, col.AppendTimestamp(tooLate))

	// the failed append has no partial effect
	require.Equal(t, 2, col.Len())
	require.Equal(t, 1, col.NullCount())
	require.False(t, col.IsNull(0))
	require.True(t, col.IsNull(1))
	actual, err := col.GetTimestamp(0)
	require.NoError(t, err)
	require.Equal(t, 0, ts.Compare(actual))

	// the column is still usable after the failure
	require.NoError(t, col.AppendTimestamp(ts))
	require.Equal(t, 3, col.Len())
}

func TestColumnDuration(t *testing.T) {
	col := NewColumn(common.DurationColumnType, 4)
	col.AppendDuration(3 * time.Hour)
	col.AppendNull()
	col.AppendDuration(-90 * time.Second)

	require.Equal(t, 3*time.Hour, col.GetDuration(0))
	require.True(t, col.IsNull(1))
	require.Equal(t, -90*time.Second, col.GetDuration(2))
}

func TestColumnDecimal(t *testing.T) {
	colType := common.NewDecimalColumnType(10, 2)
	col := NewColumn(colType, 4)
	dec1, err := common.NewDecFromString("12345.67")
	require.NoError(t, err)
	dec2, err := common.NewDecFromString("-0.01")
	require.NoError(t, err)
	require.NoError(t, col.AppendDecimal(*dec1))
	col.AppendNull()
	require.NoError(t, col.AppendDecimal(*dec2))

	actual1, err := col.GetDecimal(0)
	require.NoError(t, err)
	require.Equal(t, 0, dec1.CompareTo(&actual1))
	require.True(t, col.IsNull(1))
	actual2, err := col.GetDecimal(2)
	require.NoError(t, err)
	require.Equal(t, 0, dec2.CompareTo(&actual2))
}

func TestColumnAppendFrom(t *testing.T) {
	src := NewColumn(common.VarcharColumnType, 4)
	src.AppendString("one")
	src.AppendNull()
	src.AppendString("three")

	dst := NewColumn(common.VarcharColumnType, 4)
	dst.AppendFrom(src, 2)
	dst.AppendFrom(src, 1)
	dst.AppendFrom(src, 0)

	require.Equal(t, "three", dst.GetString(0))
	require.True(t, dst.IsNull(1))
	require.Equal(t, "one", dst.GetString(2))
}

func TestColumnAppendFromFixedWidth(t *testing.T) {
	src := NewColumn(common.BigIntColumnType, 4)
	src.AppendInt64(42)
	src.AppendNull()

	dst := NewColumn(common.BigIntColumnType, 4)
	dst.AppendFrom(src, 1)
	dst.AppendFrom(src, 0)

	require.True(t, dst.IsNull(0))
	require.Equal(t, int64(42), dst.GetInt64(1))
}

func TestChunk(t *testing.T) {
	colTypes := []common.ColumnType{common.BigIntColumnType, common.VarcharColumnType}
	ch := NewChunk(colTypes, 4)
	require.Equal(t, 2, ch.NumCols())
	require.Equal(t, 0, ch.NumRows())
	ch.Column(0).AppendInt64(1)
	ch.Column(1).AppendString("a")
	require.Equal(t, 1, ch.NumRows())
	require.Equal(t, colTypes, ch.ColTypes())
}
