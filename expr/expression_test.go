package expr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skyzh/tikv/chunk"
	"github.com/skyzh/tikv/common"
	"github.com/skyzh/tikv/errors"
)

func TestBuildColumnExpression(t *testing.T) {
	srcSchema := []common.ColumnType{common.BigIntColumnType, common.VarcharColumnType}
	e, err := BuildExpression(NewColumnRefNode(1, common.VarcharColumnType), srcSchema)
	require.NoError(t, err)
	require.Equal(t, common.VarcharColumnType, e.ReturnType())

	input := chunk.NewChunk(srcSchema, 2)
	input.Column(0).AppendInt64(1)
	input.Column(1).AppendString("a")
	input.Column(0).AppendInt64(2)
	input.Column(1).AppendString("b")

	col, err := e.EvalColumn(input)
	require.NoError(t, err)
	require.Equal(t, "a", col.GetString(0))
	require.Equal(t, "b", col.GetString(1))
}

func TestBuildColumnExpressionOutOfRange(t *testing.T) {
	srcSchema := []common.ColumnType{common.BigIntColumnType}
	_, err := BuildExpression(NewColumnRefNode(3, common.BigIntColumnType), srcSchema)
	require.Error(t, err)
}

func TestConstantExpressionCoercion(t *testing.T) {
	e, err := NewConstantExpression("100", common.BigIntColumnType)
	require.NoError(t, err)
	value, null := e.Value()
	require.False(t, null)
	require.Equal(t, int64(100), value)

	e, err = NewConstantExpression(2.5, common.DoubleColumnType)
	require.NoError(t, err)
	value, _ = e.Value()
	require.Equal(t, 2.5, value)

	e, err = NewConstantExpression("90s", common.DurationColumnType)
	require.NoError(t, err)
	value, _ = e.Value()
	require.Equal(t, 90*time.Second, value)

	e, err = NewConstantExpression("12.34", common.NewDecimalColumnType(10, 2))
	require.NoError(t, err)
	value, _ = e.Value()
	dec, ok := value.(common.Decimal)
	require.True(t, ok)
	expected, err := common.NewDecFromString("12.34")
	require.NoError(t, err)
	require.Equal(t, 0, expected.CompareTo(&dec))
}

func TestConstantExpressionNull(t *testing.T) {
	e, err := NewConstantExpression(nil, common.BigIntColumnType)
	require.NoError(t, err)
	_, null := e.Value()
	require.True(t, null)

	input := chunk.NewChunk([]common.ColumnType{common.BigIntColumnType}, 3)
	for i := 0; i < 3; i++ {
		input.Column(0).AppendInt64(int64(i))
	}
	col, err := e.EvalColumn(input)
	require.NoError(t, err)
	require.Equal(t, 3, col.Len())
	for i := 0; i < 3; i++ {
		require.True(t, col.IsNull(i))
	}
}

func TestConstantExpressionInvalid(t *testing.T) {
	_, err := NewConstantExpression("not a number", common.BigIntColumnType)
	require.Error(t, err)
	coprErr, ok := err.(errors.CoprError) //nolint: errorlint
	require.True(t, ok)
	require.Equal(t, errors.InvalidConstant, coprErr.Code)
}

func TestConstantExpressionBroadcast(t *testing.T) {
	e, err := NewConstantExpression(int64(7), common.BigIntColumnType)
	require.NoError(t, err)

	input := chunk.NewChunk([]common.ColumnType{common.BigIntColumnType}, 4)
	for i := 0; i < 4; i++ {
		input.Column(0).AppendInt64(int64(i))
	}
	col, err := e.EvalColumn(input)
	require.NoError(t, err)
	require.Equal(t, 4, col.Len())
	for i := 0; i < 4; i++ {
		require.Equal(t, int64(7), col.GetInt64(i))
	}
}

func TestResolveUnsupportedSignature(t *testing.T) {
	node := NewScalarFuncNode(SigUnknown, common.BigIntColumnType)
	_, err := ResolveScalarFunction(node)
	require.Error(t, err)
	coprErr, ok := err.(errors.CoprError) //nolint: errorlint
	require.True(t, ok)
	require.Equal(t, errors.UnsupportedScalarFunction, coprErr.Code)
}

func TestBuildScalarFuncWrongArity(t *testing.T) {
	srcSchema := []common.ColumnType{common.BigIntColumnType}
	node := NewScalarFuncNode(SigIfNullInt, common.BigIntColumnType,
		NewColumnRefNode(0, common.BigIntColumnType))
	_, err := BuildExpression(node, srcSchema)
	require.Error(t, err)
	coprErr, ok := err.(errors.CoprError) //nolint: errorlint
	require.True(t, ok)
	require.Equal(t, errors.WrongNumberFunctionArguments, coprErr.Code)
}

func evalFunc(t *testing.T, sig FuncSig, retType common.ColumnType, input *chunk.Chunk, children ...*Node) *chunk.Column {
	t.Helper()
	e, err := BuildExpression(NewScalarFuncNode(sig, retType, children...), input.ColTypes())
	require.NoError(t, err)
	col, err := e.EvalColumn(input)
	require.NoError(t, err)
	return col
}

func TestIfNull(t *testing.T) {
	srcSchema := []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType}
	input := chunk.NewChunk(srcSchema, 3)
	input.Column(0).AppendInt64(10)
	input.Column(0).AppendNull()
	input.Column(0).AppendNull()
	input.Column(1).AppendInt64(-1)
	input.Column(1).AppendInt64(-2)
	input.Column(1).AppendNull()

	col := evalFunc(t, SigIfNullInt, common.BigIntColumnType, input,
		NewColumnRefNode(0, common.BigIntColumnType),
		NewColumnRefNode(1, common.BigIntColumnType))

	require.Equal(t, int64(10), col.GetInt64(0))
	require.Equal(t, int64(-2), col.GetInt64(1))
	require.True(t, col.IsNull(2))
}

func TestIfCondition(t *testing.T) {
	srcSchema := []common.ColumnType{common.BigIntColumnType, common.VarcharColumnType, common.VarcharColumnType}
	input := chunk.NewChunk(srcSchema, 3)
	input.Column(0).AppendInt64(1)
	input.Column(0).AppendInt64(0)
	input.Column(0).AppendNull()
	for i := 0; i < 3; i++ {
		input.Column(1).AppendString("yes")
		input.Column(2).AppendString("no")
	}

	col := evalFunc(t, SigIfString, common.VarcharColumnType, input,
		NewColumnRefNode(0, common.BigIntColumnType),
		NewColumnRefNode(1, common.VarcharColumnType),
		NewColumnRefNode(2, common.VarcharColumnType))

	require.Equal(t, "yes", col.GetString(0))
	require.Equal(t, "no", col.GetString(1))
	require.Equal(t, "no", col.GetString(2))
}

func TestCaseWhenWithElse(t *testing.T) {
	srcSchema := []common.ColumnType{
		common.BigIntColumnType, common.VarcharColumnType,
		common.BigIntColumnType, common.VarcharColumnType,
		common.VarcharColumnType,
	}
	input := chunk.NewChunk(srcSchema, 3)
	// cond1: true, false, null
	input.Column(0).AppendInt64(1)
	input.Column(0).AppendInt64(0)
	input.Column(0).AppendNull()
	// cond2: false, true, false
	input.Column(2).AppendInt64(0)
	input.Column(2).AppendInt64(1)
	input.Column(2).AppendInt64(0)
	for i := 0; i < 3; i++ {
		input.Column(1).AppendString("first")
		input.Column(3).AppendString("second")
		input.Column(4).AppendString("else")
	}

	col := evalFunc(t, SigCaseWhenString, common.VarcharColumnType, input,
		NewColumnRefNode(0, common.BigIntColumnType),
		NewColumnRefNode(1, common.VarcharColumnType),
		NewColumnRefNode(2, common.BigIntColumnType),
		NewColumnRefNode(3, common.VarcharColumnType),
		NewColumnRefNode(4, common.VarcharColumnType))

	require.Equal(t, "first", col.GetString(0))
	require.Equal(t, "second", col.GetString(1))
	require.Equal(t, "else", col.GetString(2))
}

func TestCaseWhenNoElse(t *testing.T) {
	srcSchema := []common.ColumnType{common.BigIntColumnType, common.BigIntColumnType}
	input := chunk.NewChunk(srcSchema, 2)
	input.Column(0).AppendInt64(1)
	input.Column(0).AppendInt64(0)
	input.Column(1).AppendInt64(100)
	input.Column(1).AppendInt64(200)

	col := evalFunc(t, SigCaseWhenInt, common.BigIntColumnType, input,
		NewColumnRefNode(0, common.BigIntColumnType),
		NewColumnRefNode(1, common.BigIntColumnType))

	require.Equal(t, int64(100), col.GetInt64(0))
	// no condition matched and there is no else branch
	require.True(t, col.IsNull(1))
}

func TestCaseWhenTooFewArguments(t *testing.T) {
	srcSchema := []common.ColumnType{common.BigIntColumnType}
	node := NewScalarFuncNode(SigCaseWhenInt, common.BigIntColumnType,
		NewColumnRefNode(0, common.BigIntColumnType))
	_, err := BuildExpression(node, srcSchema)
	require.Error(t, err)
	coprErr, ok := err.(errors.CoprError) //nolint: errorlint
	require.True(t, ok)
	require.Equal(t, errors.WrongNumberFunctionArguments, coprErr.Code)
}

func TestMd5AndSha1(t *testing.T) {
	srcSchema := []common.ColumnType{common.VarcharColumnType}
	input := chunk.NewChunk(srcSchema, 2)
	input.Column(0).AppendString("abc")
	input.Column(0).AppendNull()

	md5Col := evalFunc(t, SigMd5, common.VarcharColumnType, input,
		NewColumnRefNode(0, common.VarcharColumnType))
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72", md5Col.GetString(0))
	require.True(t, md5Col.IsNull(1))

	sha1Col := evalFunc(t, SigSha1, common.VarcharColumnType, input,
		NewColumnRefNode(0, common.VarcharColumnType))
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", sha1Col.GetString(0))
	require.True(t, sha1Col.IsNull(1))
}

func TestSha2(t *testing.T) {
	srcSchema := []common.ColumnType{common.VarcharColumnType}
	input := chunk.NewChunk(srcSchema, 1)
	input.Column(0).AppendString("abc")

	// 0 selects SHA-256
	col := evalFunc(t, SigSha2, common.VarcharColumnType, input,
		NewColumnRefNode(0, common.VarcharColumnType),
		NewConstantNode(int64(0), common.BigIntColumnType))
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", col.GetString(0))

	// unsupported widths yield null
	col = evalFunc(t, SigSha2, common.VarcharColumnType, input,
		NewColumnRefNode(0, common.VarcharColumnType),
		NewConstantNode(int64(123), common.BigIntColumnType))
	require.True(t, col.IsNull(0))
}

func TestRandomBytes(t *testing.T) {
	srcSchema := []common.ColumnType{common.VarcharColumnType}
	input := chunk.NewChunk(srcSchema, 1)
	input.Column(0).AppendString("x")

	col := evalFunc(t, SigRandomBytes, common.VarcharColumnType, input,
		NewConstantNode(int64(16), common.BigIntColumnType))
	require.Equal(t, 16, len(col.GetBytes(0)))
}

func TestRandomBytesOutOfRange(t *testing.T) {
	srcSchema := []common.ColumnType{common.VarcharColumnType}
	input := chunk.NewChunk(srcSchema, 1)
	input.Column(0).AppendString("x")

	e, err := BuildExpression(NewScalarFuncNode(SigRandomBytes, common.VarcharColumnType,
		NewConstantNode(int64(0), common.BigIntColumnType)), srcSchema)
	require.NoError(t, err)
	_, err = e.EvalColumn(input)
	require.Error(t, err)
	coprErr, ok := err.(errors.CoprError) //nolint: errorlint
	require.True(t, ok)
	require.Equal(t, errors.ValueOutOfRange, coprErr.Code)
}

func TestUncompressedLength(t *testing.T) {
	srcSchema := []common.ColumnType{common.VarcharColumnType}
	input := chunk.NewChunk(srcSchema, 3)
	// COMPRESS() prefixes the payload with the uncompressed length, LE
	payload := common.AppendUint32ToBufferLE(nil, 1000)
	payload = append(payload, []byte("deflated....")...)
	input.Column(0).AppendBytes(payload)
	input.Column(0).AppendString("")
	input.Column(0).AppendNull()

	col := evalFunc(t, SigUncompressedLength, common.BigIntColumnType, input,
		NewColumnRefNode(0, common.VarcharColumnType))
	require.Equal(t, int64(1000), col.GetInt64(0))
	require.Equal(t, int64(0), col.GetInt64(1))
	require.True(t, col.IsNull(2))
}

func TestJSONType(t *testing.T) {
	srcSchema := []common.ColumnType{common.JSONColumnType}
	input := chunk.NewChunk(srcSchema, 6)
	input.Column(0).AppendString(`{"a": 1}`)
	input.Column(0).AppendString(`[1, 2]`)
	input.Column(0).AppendString(`"str"`)
	input.Column(0).AppendString(`true`)
	input.Column(0).AppendString(`3`)
	input.Column(0).AppendString(`3.5`)

	col := evalFunc(t, SigJSONType, common.VarcharColumnType, input,
		NewColumnRefNode(0, common.JSONColumnType))
	require.Equal(t, "OBJECT", col.GetString(0))
	require.Equal(t, "ARRAY", col.GetString(1))
	require.Equal(t, "STRING", col.GetString(2))
	require.Equal(t, "BOOLEAN", col.GetString(3))
	require.Equal(t, "INTEGER", col.GetString(4))
	require.Equal(t, "DOUBLE", col.GetString(5))
}

func TestJSONDepth(t *testing.T) {
	srcSchema := []common.ColumnType{common.JSONColumnType}
	input := chunk.NewChunk(srcSchema, 4)
	input.Column(0).AppendString(`1`)
	input.Column(0).AppendString(`[]`)
	input.Column(0).AppendString(`[1, 2]`)
	input.Column(0).AppendString(`{"a": {"b": [3]}}`)

	col := evalFunc(t, SigJSONDepth, common.BigIntColumnType, input,
		NewColumnRefNode(0, common.JSONColumnType))
	require.Equal(t, int64(1), col.GetInt64(0))
	require.Equal(t, int64(1), col.GetInt64(1))
	require.Equal(t, int64(2), col.GetInt64(2))
	require.Equal(t, int64(4), col.GetInt64(3))
}

func TestJSONUnquote(t *testing.T) {
	srcSchema := []common.ColumnType{common.JSONColumnType}
	input := chunk.NewChunk(srcSchema, 2)
	input.Column(0).AppendString(`"hello"`)
	input.Column(0).AppendString(`{"a": 1}`)

	col := evalFunc(t, SigJSONUnquote, common.VarcharColumnType, input,
		NewColumnRefNode(0, common.JSONColumnType))
	require.Equal(t, "hello", col.GetString(0))
	require.Equal(t, `{"a": 1}`, col.GetString(1))
}

func TestJSONLength(t *testing.T) {
	srcSchema := []common.ColumnType{common.JSONColumnType}
	input := chunk.NewChunk(srcSchema, 3)
	input.Column(0).AppendString(`[1, 2, 3]`)
	input.Column(0).AppendString(`{"a": 1, "b": 2}`)
	input.Column(0).AppendString(`42`)

	col := evalFunc(t, SigJSONLength, common.BigIntColumnType, input,
		NewColumnRefNode(0, common.JSONColumnType))
	require.Equal(t, int64(3), col.GetInt64(0))
	require.Equal(t, int64(2), col.GetInt64(1))
	require.Equal(t, int64(1), col.GetInt64(2))
}

func TestJSONInvalidDocument(t *testing.T) {
	srcSchema := []common.ColumnType{common.JSONColumnType}
	input := chunk.NewChunk(srcSchema, 1)
	input.Column(0).AppendString(`{not json`)

	e, err := BuildExpression(NewScalarFuncNode(SigJSONType, common.VarcharColumnType,
		NewColumnRefNode(0, common.JSONColumnType)), srcSchema)
	require.NoError(t, err)
	_, err = e.EvalColumn(input)
	require.Error(t, err)
	coprErr, ok := err.(errors.CoprError) //nolint: errorlint
	require.True(t, ok)
	require.Equal(t, errors.InvalidJSON, coprErr.Code)
}
