package expr

import (
	"encoding/json"
	"math"

	"github.com/skyzh/tikv/chunk"
	"github.com/skyzh/tikv/errors"
)

// JSON documents travel through columns as their serialized text. The functions
// below are the only place documents are actually parsed.

func parseJSONRow(col *chunk.Column, rowIdx int) (interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal(col.GetBytes(rowIdx), &doc); err != nil {
		return nil, errors.NewInvalidJSONError(err.Error())
	}
	return doc, nil
}

// JSON_TYPE classifies the top-level value of the document.
func jsonTypeFn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if args[0].IsNull(i) {
			result.AppendNull()
			continue
		}
		doc, err := parseJSONRow(args[0], i)
		if err != nil {
			return err
		}
		result.AppendString(jsonTypeName(doc))
	}
	return nil
}

func jsonTypeName(doc interface{}) string {
	switch v := doc.(type) {
	case map[string]interface{}:
		return "OBJECT"
	case []interface{}:
		return "ARRAY"
	case string:
		return "STRING"
	case bool:
		return "BOOLEAN"
	case float64:
		if v == math.Trunc(v) {
			return "INTEGER"
		}
		return "DOUBLE"
	default:
		return "NULL"
	}
}

// JSON_DEPTH: scalars and empty containers have depth 1.
func jsonDepthFn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if args[0].IsNull(i) {
			result.AppendNull()
			continue
		}
		doc, err := parseJSONRow(args[0], i)
		if err != nil {
			return err
		}
		result.AppendInt64(jsonDepth(doc))
	}
	return nil
}

func jsonDepth(doc interface{}) int64 {
	var maxChild int64
	switch v := doc.(type) {
	case map[string]interface{}:
		for _, child := range v {
			if d := jsonDepth(child); d > maxChild {
				maxChild = d
			}
		}
	case []interface{}:
		for _, child := range v {
			if d := jsonDepth(child); d > maxChild {
				maxChild = d
			}
		}
	default:
		return 1
	}
	return maxChild + 1
}

// JSON_UNQUOTE: a top-level JSON string yields its contents, anything else passes
// through unchanged.
func jsonUnquoteFn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if args[0].IsNull(i) {
			result.AppendNull()
			continue
		}
		raw := args[0].GetBytes(i)
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			result.AppendString(str)
		} else {
			result.AppendBytes(raw)
		}
	}
	return nil
}

// JSON_LENGTH: number of elements of an array, number of keys of an object,
// 1 for scalars.
func jsonLengthFn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if args[0].IsNull(i) {
			result.AppendNull()
			continue
		}
		doc, err := parseJSONRow(args[0], i)
		if err != nil {
			return err
		}
		switch v := doc.(type) {
		case map[string]interface{}:
			result.AppendInt64(int64(len(v)))
		case []interface{}:
			result.AppendInt64(int64(len(v)))
		default:
			result.AppendInt64(1)
		}
	}
	return nil
}
