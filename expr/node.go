// Package expr holds the serialized expression-tree model handed down by the plan
// deserializer, the built (resolved) expression forms evaluated over chunks, and
// the dispatch table that maps scalar-function signatures to their vectorized
// implementations.
package expr

import (
	"fmt"

	"github.com/skyzh/tikv/common"
)

type NodeType int

const (
	NodeUnknown NodeType = iota
	NodeColumnRef
	NodeConstant
	NodeScalarFunc
	NodeAggFirstRow
	NodeAggSum
	NodeAggCount
	NodeAggMin
	NodeAggMax
)

func (t NodeType) String() string {
	switch t {
	case NodeColumnRef:
		return "ColumnRef"
	case NodeConstant:
		return "Constant"
	case NodeScalarFunc:
		return "ScalarFunc"
	case NodeAggFirstRow:
		return "FIRSTROW"
	case NodeAggSum:
		return "SUM"
	case NodeAggCount:
		return "COUNT"
	case NodeAggMin:
		return "MIN"
	case NodeAggMax:
		return "MAX"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// FuncSig identifies one concretely-typed scalar function implementation. One
// signature per supported (function, operand type) pair, mirroring how the plan
// serializes them.
type FuncSig int

const (
	SigUnknown FuncSig = iota

	SigIfNullInt
	SigIfNullReal
	SigIfNullDecimal
	SigIfNullString
	SigIfNullJSON
	SigIfNullTime
	SigIfNullDuration

	SigIfInt
	SigIfReal
	SigIfDecimal
	SigIfString
	SigIfJSON
	SigIfTime
	SigIfDuration

	SigCaseWhenInt
	SigCaseWhenReal
	SigCaseWhenDecimal
	SigCaseWhenString
	SigCaseWhenJSON
	SigCaseWhenTime
	SigCaseWhenDuration

	SigMd5
	SigSha1
	SigSha2
	SigRandomBytes
	SigUncompressedLength

	SigJSONType
	SigJSONDepth
	SigJSONUnquote
	SigJSONLength
)

var sigNames = map[FuncSig]string{
	SigIfNullInt:          "IfNullInt",
	SigIfNullReal:         "IfNullReal",
	SigIfNullDecimal:      "IfNullDecimal",
	SigIfNullString:       "IfNullString",
	SigIfNullJSON:         "IfNullJson",
	SigIfNullTime:         "IfNullTime",
	SigIfNullDuration:     "IfNullDuration",
	SigIfInt:              "IfInt",
	SigIfReal:             "IfReal",
	SigIfDecimal:          "IfDecimal",
	SigIfString:           "IfString",
	SigIfJSON:             "IfJson",
	SigIfTime:             "IfTime",
	SigIfDuration:         "IfDuration",
	SigCaseWhenInt:        "CaseWhenInt",
	SigCaseWhenReal:       "CaseWhenReal",
	SigCaseWhenDecimal:    "CaseWhenDecimal",
	SigCaseWhenString:     "CaseWhenString",
	SigCaseWhenJSON:       "CaseWhenJson",
	SigCaseWhenTime:       "CaseWhenTime",
	SigCaseWhenDuration:   "CaseWhenDuration",
	SigMd5:                "Md5",
	SigSha1:               "Sha1",
	SigSha2:               "Sha2",
	SigRandomBytes:        "RandomBytes",
	SigUncompressedLength: "UncompressedLength",
	SigJSONType:           "JsonType",
	SigJSONDepth:          "JsonDepth",
	SigJSONUnquote:        "JsonUnquote",
	SigJSONLength:         "JsonLength",
}

func (s FuncSig) String() string {
	if name, ok := sigNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Sig(%d)", int(s))
}

// Node is one serialized expression-tree node as produced by the upstream plan
// deserializer. FieldType is the declared result type of the node.
type Node struct {
	Tp        NodeType
	Sig       FuncSig
	FieldType common.ColumnType
	ColIndex  int
	Value     interface{}
	Children  []*Node
}

func NewColumnRefNode(colIndex int, colType common.ColumnType) *Node {
	return &Node{Tp: NodeColumnRef, ColIndex: colIndex, FieldType: colType}
}

func NewConstantNode(value interface{}, colType common.ColumnType) *Node {
	return &Node{Tp: NodeConstant, Value: value, FieldType: colType}
}

func NewScalarFuncNode(sig FuncSig, colType common.ColumnType, children ...*Node) *Node {
	return &Node{Tp: NodeScalarFunc, Sig: sig, FieldType: colType, Children: children}
}

func NewAggregateNode(tp NodeType, outType common.ColumnType, children ...*Node) *Node {
	return &Node{Tp: tp, FieldType: outType, Children: children}
}
