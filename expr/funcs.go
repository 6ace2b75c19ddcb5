package expr

import (
	"github.com/skyzh/tikv/chunk"
	"github.com/skyzh/tikv/errors"
)

// VecFn is one monomorphized vectorized function body. Argument columns are
// row-aligned with the chunk being evaluated; the body appends exactly rowCount
// values (or nulls) to result.
type VecFn func(args []*chunk.Column, rowCount int, result *chunk.Column) error

// FuncMeta bundles a function identity with its concrete implementation. Metas are
// stateless and resolved once per expression node at build time, never per row.
// The declared return type is carried on the node (FieldType), not on the meta.
type FuncMeta struct {
	Name  string
	Arity int
	Fn    VecFn
}

// VariadicArity marks a function taking a variable number of arguments; the
// builder only enforces the minimum of two (one condition/value pair).
const VariadicArity = -1

// ResolveScalarFunction maps a serialized scalar-function signature to its
// vectorized implementation. The table is exhaustive by construction: one static
// entry per supported signature, and any unmatched signature is an explicit error
// the caller can use to fall back to a non-vectorized path.
func ResolveScalarFunction(node *Node) (FuncMeta, error) {
	switch node.Sig {
	// impl_control
	case SigIfNullInt, SigIfNullReal, SigIfNullDecimal, SigIfNullString,
		SigIfNullJSON, SigIfNullTime, SigIfNullDuration:
		return FuncMeta{Name: node.Sig.String(), Arity: 2, Fn: ifNullFn}, nil
	case SigIfInt, SigIfReal, SigIfDecimal, SigIfString,
		SigIfJSON, SigIfTime, SigIfDuration:
		return FuncMeta{Name: node.Sig.String(), Arity: 3, Fn: ifConditionFn}, nil
	case SigCaseWhenInt, SigCaseWhenReal, SigCaseWhenDecimal, SigCaseWhenString,
		SigCaseWhenJSON, SigCaseWhenTime, SigCaseWhenDuration:
		return FuncMeta{Name: node.Sig.String(), Arity: VariadicArity, Fn: caseWhenFn}, nil
	// impl_encryption
	case SigMd5:
		return FuncMeta{Name: "Md5", Arity: 1, Fn: md5Fn}, nil
	case SigSha1:
		return FuncMeta{Name: "Sha1", Arity: 1, Fn: sha1Fn}, nil
	case SigSha2:
		return FuncMeta{Name: "Sha2", Arity: 2, Fn: sha2Fn}, nil
	case SigRandomBytes:
		return FuncMeta{Name: "RandomBytes", Arity: 1, Fn: randomBytesFn}, nil
	case SigUncompressedLength:
		return FuncMeta{Name: "UncompressedLength", Arity: 1, Fn: uncompressedLengthFn}, nil
	// impl_json
	case SigJSONType:
		return FuncMeta{Name: "JsonType", Arity: 1, Fn: jsonTypeFn}, nil
	case SigJSONDepth:
		return FuncMeta{Name: "JsonDepth", Arity: 1, Fn: jsonDepthFn}, nil
	case SigJSONUnquote:
		return FuncMeta{Name: "JsonUnquote", Arity: 1, Fn: jsonUnquoteFn}, nil
	case SigJSONLength:
		return FuncMeta{Name: "JsonLength", Arity: 1, Fn: jsonLengthFn}, nil
	default:
		return FuncMeta{}, errors.NewUnsupportedScalarFunctionError(node.Sig.String())
	}
}
