package aggfuncs

import (
	"time"

	"github.com/skyzh/tikv/chunk"
	"github.com/skyzh/tikv/common"
)

// SUM
// ===

type SumAggregateFunction struct {
	aggregateFunctionBase
}

func (s *SumAggregateFunction) EvalInt64(currValue int64, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) {
		aggState.SetInt64(index, currValue)
		return nil
	}
	aggState.SetInt64(index, aggState.GetInt64(index)+currValue)
	return nil
}

// EvalInt64Repeated folds repeatCount applications into one add of
// currValue*repeatCount - SUM is not idempotent so the count must participate.
func (s *SumAggregateFunction) EvalInt64Repeated(currValue int64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	if null {
		return nil
	}
	total := currValue * int64(repeatCount)
	if !aggState.IsSet(index) {
		aggState.SetInt64(index, total)
		return nil
	}
	aggState.SetInt64(index, aggState.GetInt64(index)+total)
	return nil
}

func (s *SumAggregateFunction) EvalInt64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		if err := s.EvalInt64(col.GetInt64(row), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (s *SumAggregateFunction) EvalFloat64(currValue float64, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) {
		aggState.SetFloat64(index, currValue)
		return nil
	}
	aggState.SetFloat64(index, aggState.GetFloat64(index)+currValue)
	return nil
}

func (s *SumAggregateFunction) EvalFloat64Repeated(currValue float64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	if null {
		return nil
	}
	return s.EvalFloat64(currValue*float64(repeatCount), false, aggState, index)
}

func (s *SumAggregateFunction) EvalFloat64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		if err := s.EvalFloat64(col.GetFloat64(row), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (s *SumAggregateFunction) EvalDecimal(currValue common.Decimal, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) {
		return aggState.SetDecimal(index, currValue)
	}
	curr := aggState.GetDecimal(index)
	res, err := curr.Add(&currValue)
	if err != nil {
		return err
	}
	return aggState.SetDecimal(index, *res)
}

func (s *SumAggregateFunction) EvalDecimalRepeated(currValue common.Decimal, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	if null {
		return nil
	}
	total, err := currValue.MulInt64(int64(repeatCount))
	if err != nil {
		return err
	}
	return s.EvalDecimal(*total, false, aggState, index)
}

func (s *SumAggregateFunction) EvalDecimalChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		dec, err := col.GetDecimal(row)
		if err != nil {
			return err
		}
		if err := s.EvalDecimal(dec, false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

// COUNT
// =====

type CountAggregateFunction struct {
	aggregateFunctionBase
}

// addCount transitions the slot out of Empty even when delta is zero, so a group
// whose values are all null still counts 0 rather than null.
func (c *CountAggregateFunction) addCount(null bool, delta int64, aggState *AggState, index int) error {
	if null {
		delta = 0
	}
	if !aggState.IsSet(index) {
		aggState.SetInt64(index, delta)
		return nil
	}
	aggState.SetInt64(index, aggState.GetInt64(index)+delta)
	return nil
}

func (c *CountAggregateFunction) countChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if err := c.addCount(col.IsNull(row), 1, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (c *CountAggregateFunction) EvalInt64(currValue int64, null bool, aggState *AggState, index int) error {
	return c.addCount(null, 1, aggState, index)
}

func (c *CountAggregateFunction) EvalInt64Repeated(currValue int64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return c.addCount(null, int64(repeatCount), aggState, index)
}

func (c *CountAggregateFunction) EvalInt64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	return c.countChunked(col, logicalRows, aggState, index)
}

func (c *CountAggregateFunction) EvalFloat64(currValue float64, null bool, aggState *AggState, index int) error {
	return c.addCount(null, 1, aggState, index)
}

func (c *CountAggregateFunction) EvalFloat64Repeated(currValue float64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return c.addCount(null, int64(repeatCount), aggState, index)
}

func (c *CountAggregateFunction) EvalFloat64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	return c.countChunked(col, logicalRows, aggState, index)
}

func (c *CountAggregateFunction) EvalString(currValue string, null bool, aggState *AggState, index int) error {
	return c.addCount(null, 1, aggState, index)
}

func (c *CountAggregateFunction) EvalStringRepeated(currValue string, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return c.addCount(null, int64(repeatCount), aggState, index)
}

func (c *CountAggregateFunction) EvalStringChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	return c.countChunked(col, logicalRows, aggState, index)
}

func (c *CountAggregateFunction) EvalTimestamp(currValue common.Timestamp, null bool, aggState *AggState, index int) error {
	return c.addCount(null, 1, aggState, index)
}

func (c *CountAggregateFunction) EvalTimestampRepeated(currValue common.Timestamp, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return c.addCount(null, int64(repeatCount), aggState, index)
}

func (c *CountAggregateFunction) EvalTimestampChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	return c.countChunked(col, logicalRows, aggState, index)
}

func (c *CountAggregateFunction) EvalDuration(currValue time.Duration, null bool, aggState *AggState, index int) error {
	return c.addCount(null, 1, aggState, index)
}

func (c *CountAggregateFunction) EvalDurationRepeated(currValue time.Duration, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return c.addCount(null, int64(repeatCount), aggState, index)
}

func (c *CountAggregateFunction) EvalDurationChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	return c.countChunked(col, logicalRows, aggState, index)
}

func (c *CountAggregateFunction) EvalDecimal(currValue common.Decimal, null bool, aggState *AggState, index int) error {
	return c.addCount(null, 1, aggState, index)
}

func (c *CountAggregateFunction) EvalDecimalRepeated(currValue common.Decimal, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return c.addCount(null, int64(repeatCount), aggState, index)
}

func (c *CountAggregateFunction) EvalDecimalChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	return c.countChunked(col, logicalRows, aggState, index)
}

// FIRSTROW
// ========

type FirstRowAggregateFunction struct {
	aggregateFunctionBase
}

func (f *FirstRowAggregateFunction) EvalInt64(currValue int64, null bool, aggState *AggState, index int) error {
	if aggState.IsSet(index) {
		return nil
	}
	if null {
		aggState.SetNull(index)
	} else {
		aggState.SetInt64(index, currValue)
	}
	return nil
}

// Repeated updates short-circuit to a single application: a first-value
// accumulator is idempotent after its first write.
func (f *FirstRowAggregateFunction) EvalInt64Repeated(currValue int64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return f.EvalInt64(currValue, null, aggState, index)
}

// Chunked updates only look at the head of the logical row list - first arrival
// in logical order wins, nulls included.
func (f *FirstRowAggregateFunction) EvalInt64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	if len(logicalRows) == 0 {
		return nil
	}
	row := logicalRows[0]
	if col.IsNull(row) {
		return f.EvalInt64(0, true, aggState, index)
	}
	return f.EvalInt64(col.GetInt64(row), false, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalFloat64(currValue float64, null bool, aggState *AggState, index int) error {
	if aggState.IsSet(index) {
		return nil
	}
	if null {
		aggState.SetNull(index)
	} else {
		aggState.SetFloat64(index, currValue)
	}
	return nil
}

func (f *FirstRowAggregateFunction) EvalFloat64Repeated(currValue float64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return f.EvalFloat64(currValue, null, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalFloat64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	if len(logicalRows) == 0 {
		return nil
	}
	row := logicalRows[0]
	if col.IsNull(row) {
		return f.EvalFloat64(0, true, aggState, index)
	}
	return f.EvalFloat64(col.GetFloat64(row), false, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalString(currValue string, null bool, aggState *AggState, index int) error {
	if aggState.IsSet(index) {
		return nil
	}
	if null {
		aggState.SetNull(index)
	} else {
		aggState.SetString(index, currValue)
	}
	return nil
}

func (f *FirstRowAggregateFunction) EvalStringRepeated(currValue string, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return f.EvalString(currValue, null, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalStringChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	if len(logicalRows) == 0 {
		return nil
	}
	row := logicalRows[0]
	if col.IsNull(row) {
		return f.EvalString("", true, aggState, index)
	}
	// copy out of the chunk buffer, the accumulator outlives the batch
	return f.EvalString(string(col.GetBytes(row)), false, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalTimestamp(currValue common.Timestamp, null bool, aggState *AggState, index int) error {
	if aggState.IsSet(index) {
		return nil
	}
	if null {
		aggState.SetNull(index)
		return nil
	}
	return aggState.SetTimestamp(index, currValue)
}

func (f *FirstRowAggregateFunction) EvalTimestampRepeated(currValue common.Timestamp, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return f.EvalTimestamp(currValue, null, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalTimestampChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	if len(logicalRows) == 0 {
		return nil
	}
	row := logicalRows[0]
	if col.IsNull(row) {
		return f.EvalTimestamp(common.Timestamp{}, true, aggState, index)
	}
	ts, err := col.GetTimestamp(row)
	if err != nil {
		return err
	}
	return f.EvalTimestamp(ts, false, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalDuration(currValue time.Duration, null bool, aggState *AggState, index int) error {
	if aggState.IsSet(index) {
		return nil
	}
	if null {
		aggState.SetNull(index)
	} else {
		aggState.SetDuration(index, int64(currValue))
	}
	return nil
}

func (f *FirstRowAggregateFunction) EvalDurationRepeated(currValue time.Duration, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return f.EvalDuration(currValue, null, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalDurationChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	if len(logicalRows) == 0 {
		return nil
	}
	row := logicalRows[0]
	if col.IsNull(row) {
		return f.EvalDuration(0, true, aggState, index)
	}
	return f.EvalDuration(col.GetDuration(row), false, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalDecimal(currValue common.Decimal, null bool, aggState *AggState, index int) error {
	if aggState.IsSet(index) {
		return nil
	}
	if null {
		aggState.SetNull(index)
		return nil
	}
	return aggState.SetDecimal(index, currValue)
}

func (f *FirstRowAggregateFunction) EvalDecimalRepeated(currValue common.Decimal, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return f.EvalDecimal(currValue, null, aggState, index)
}

func (f *FirstRowAggregateFunction) EvalDecimalChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	if len(logicalRows) == 0 {
		return nil
	}
	row := logicalRows[0]
	if col.IsNull(row) {
		return f.EvalDecimal(common.Decimal{}, true, aggState, index)
	}
	dec, err := col.GetDecimal(row)
	if err != nil {
		return err
	}
	return f.EvalDecimal(dec, false, aggState, index)
}

// MIN
// ===

type MinAggregateFunction struct {
	aggregateFunctionBase
}

func (m *MinAggregateFunction) EvalInt64(currValue int64, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) || (currValue < aggState.GetInt64(index)) {
		aggState.SetInt64(index, currValue)
	}
	return nil
}

// MIN of the same value n times is MIN of the value once, so repeated updates
// short-circuit.
func (m *MinAggregateFunction) EvalInt64Repeated(currValue int64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalInt64(currValue, null, aggState, index)
}

func (m *MinAggregateFunction) EvalInt64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		if err := m.EvalInt64(col.GetInt64(row), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MinAggregateFunction) EvalFloat64(currValue float64, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) || (currValue < aggState.GetFloat64(index)) {
		aggState.SetFloat64(index, currValue)
	}
	return nil
}

func (m *MinAggregateFunction) EvalFloat64Repeated(currValue float64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalFloat64(currValue, null, aggState, index)
}

func (m *MinAggregateFunction) EvalFloat64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		if err := m.EvalFloat64(col.GetFloat64(row), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MinAggregateFunction) EvalString(currValue string, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) || currValue < aggState.GetString(index) {
		aggState.SetString(index, currValue)
	}
	return nil
}

func (m *MinAggregateFunction) EvalStringRepeated(currValue string, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalString(currValue, null, aggState, index)
}

func (m *MinAggregateFunction) EvalStringChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		// copy out of the chunk buffer, the accumulator outlives the batch
		if err := m.EvalString(string(col.GetBytes(row)), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MinAggregateFunction) EvalTimestamp(currValue common.Timestamp, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) {
		return aggState.SetTimestamp(index, currValue)
	}
	other, err := aggState.GetTimestamp(index)
	if err != nil {
		return err
	}
	if currValue.Compare(other) < 0 {
		return aggState.SetTimestamp(index, currValue)
	}
	return nil
}

func (m *MinAggregateFunction) EvalTimestampRepeated(currValue common.Timestamp, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalTimestamp(currValue, null, aggState, index)
}

func (m *MinAggregateFunction) EvalTimestampChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		ts, err := col.GetTimestamp(row)
		if err != nil {
			return err
		}
		if err := m.EvalTimestamp(ts, false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MinAggregateFunction) EvalDuration(currValue time.Duration, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) || (int64(currValue) < aggState.GetDuration(index)) {
		aggState.SetDuration(index, int64(currValue))
	}
	return nil
}

func (m *MinAggregateFunction) EvalDurationRepeated(currValue time.Duration, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalDuration(currValue, null, aggState, index)
}

func (m *MinAggregateFunction) EvalDurationChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		if err := m.EvalDuration(col.GetDuration(row), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MinAggregateFunction) EvalDecimal(currValue common.Decimal, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) {
		return aggState.SetDecimal(index, currValue)
	}
	other := aggState.GetDecimal(index)
	if currValue.CompareTo(&other) < 0 {
		return aggState.SetDecimal(index, currValue)
	}
	return nil
}

func (m *MinAggregateFunction) EvalDecimalRepeated(currValue common.Decimal, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalDecimal(currValue, null, aggState, index)
}

func (m *MinAggregateFunction) EvalDecimalChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		dec, err := col.GetDecimal(row)
		if err != nil {
			return err
		}
		if err := m.EvalDecimal(dec, false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

// MAX
// ===

type MaxAggregateFunction struct {
	aggregateFunctionBase
}

func (m *MaxAggregateFunction) EvalInt64(currValue int64, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) || (currValue > aggState.GetInt64(index)) {
		aggState.SetInt64(index, currValue)
	}
	return nil
}

func (m *MaxAggregateFunction) EvalInt64Repeated(currValue int64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalInt64(currValue, null, aggState, index)
}

func (m *MaxAggregateFunction) EvalInt64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		if err := m.EvalInt64(col.GetInt64(row), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MaxAggregateFunction) EvalFloat64(currValue float64, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) || (currValue > aggState.GetFloat64(index)) {
		aggState.SetFloat64(index, currValue)
	}
	return nil
}

func (m *MaxAggregateFunction) EvalFloat64Repeated(currValue float64, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalFloat64(currValue, null, aggState, index)
}

func (m *MaxAggregateFunction) EvalFloat64Chunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		if err := m.EvalFloat64(col.GetFloat64(row), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MaxAggregateFunction) EvalString(currValue string, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) || currValue > aggState.GetString(index) {
		aggState.SetString(index, currValue)
	}
	return nil
}

func (m *MaxAggregateFunction) EvalStringRepeated(currValue string, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalString(currValue, null, aggState, index)
}

func (m *MaxAggregateFunction) EvalStringChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		// copy out of the chunk buffer, the accumulator outlives the batch
		if err := m.EvalString(string(col.GetBytes(row)), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MaxAggregateFunction) EvalTimestamp(currValue common.Timestamp, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) {
		return aggState.SetTimestamp(index, currValue)
	}
	other, err := aggState.GetTimestamp(index)
	if err != nil {
		return err
	}
	if currValue.Compare(other) > 0 {
		return aggState.SetTimestamp(index, currValue)
	}
	return nil
}

func (m *MaxAggregateFunction) EvalTimestampRepeated(currValue common.Timestamp, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalTimestamp(currValue, null, aggState, index)
}

func (m *MaxAggregateFunction) EvalTimestampChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		ts, err := col.GetTimestamp(row)
		if err != nil {
			return err
		}
		if err := m.EvalTimestamp(ts, false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MaxAggregateFunction) EvalDuration(currValue time.Duration, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) || (int64(currValue) > aggState.GetDuration(index)) {
		aggState.SetDuration(index, int64(currValue))
	}
	return nil
}

func (m *MaxAggregateFunction) EvalDurationRepeated(currValue time.Duration, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalDuration(currValue, null, aggState, index)
}

func (m *MaxAggregateFunction) EvalDurationChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		if err := m.EvalDuration(col.GetDuration(row), false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}

func (m *MaxAggregateFunction) EvalDecimal(currValue common.Decimal, null bool, aggState *AggState, index int) error {
	if null {
		return nil
	}
	if !aggState.IsSet(index) {
		return aggState.SetDecimal(index, currValue)
	}
	other := aggState.GetDecimal(index)
	if currValue.CompareTo(&other) > 0 {
		return aggState.SetDecimal(index, currValue)
	}
	return nil
}

func (m *MaxAggregateFunction) EvalDecimalRepeated(currValue common.Decimal, null bool, repeatCount int, aggState *AggState, index int) error {
	checkRepeatCount(repeatCount)
	return m.EvalDecimal(currValue, null, aggState, index)
}

func (m *MaxAggregateFunction) EvalDecimalChunked(col *chunk.Column, logicalRows []int, aggState *AggState, index int) error {
	for _, row := range logicalRows {
		if col.IsNull(row) {
			continue
		}
		dec, err := col.GetDecimal(row)
		if err != nil {
			return err
		}
		if err := m.EvalDecimal(dec, false, aggState, index); err != nil {
			return err
		}
	}
	return nil
}
