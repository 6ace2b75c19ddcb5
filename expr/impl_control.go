package expr

import (
	"github.com/skyzh/tikv/chunk"
)

// The control functions never inspect value bytes, only nullness and the int
// condition column, so one body serves every typed signature. The per-type
// signatures still resolve to distinct metas so the plan's declared operand types
// stay visible to the dispatch layer.

// IFNULL(a, b): a if a is not null, else b.
func ifNullFn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if !args[0].IsNull(i) {
			result.AppendFrom(args[0], i)
		} else {
			result.AppendFrom(args[1], i)
		}
	}
	return nil
}

// IF(cond, a, b): a if cond is non-null and non-zero, else b.
func ifConditionFn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		if !args[0].IsNull(i) && args[0].GetInt64(i) != 0 {
			result.AppendFrom(args[1], i)
		} else {
			result.AppendFrom(args[2], i)
		}
	}
	return nil
}

// CASE WHEN c1 THEN v1 [WHEN c2 THEN v2 ...] [ELSE e] END. Arguments arrive as
// condition/value pairs, plus an optional trailing else value when the count is
// odd. The first true (non-null, non-zero) condition selects its value; with no
// match the else value, or null, is produced.
func caseWhenFn(args []*chunk.Column, rowCount int, result *chunk.Column) error {
	for i := 0; i < rowCount; i++ {
		matched := false
		for j := 0; j+1 < len(args); j += 2 {
			if !args[j].IsNull(i) && args[j].GetInt64(i) != 0 {
				result.AppendFrom(args[j+1], i)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if len(args)%2 == 1 {
			result.AppendFrom(args[len(args)-1], i)
		} else {
			result.AppendNull()
		}
	}
	return nil
}
