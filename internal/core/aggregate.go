package core

// aggregate.go holds the grouping primitives behind insights and charts.
// Groups are kept in first-encounter order and sorted with a stable sort,
// so equal values keep the order in which their keys first appeared.

import (
	"bytes"
	"encoding/json"
	"sort"
)

// TallyEntry is one key and its aggregated value.
type TallyEntry struct {
	Key   string
	Value float64
}

// Tally is an ordered key -> value mapping.
// It encodes as a JSON object whose keys keep the tally's order.
type Tally []TallyEntry

// Keys returns the keys in order.
func (t Tally) Keys() []string {
	keys := make([]string, len(t))
	for i, e := range t {
		keys[i] = e.Key
	}
	return keys
}

// Values returns the values in order.
func (t Tally) Values() []float64 {
	vals := make([]float64, len(t))
	for i, e := range t {
		vals[i] = e.Value
	}
	return vals
}

// Get returns the value stored for key.
func (t Tally) Get(key string) (float64, bool) {
	for _, e := range t {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

// MarshalJSON encodes the tally as an ordered JSON object.
func (t Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// sortDescending orders a tally by value, largest first, keeping ties in place.
func sortDescending(t Tally) {
	sort.SliceStable(t, func(i, j int) bool { return t[i].Value > t[j].Value })
}

// ValueCounts counts each distinct non-missing value of col, largest count first.
func ValueCounts(col *Column) Tally {
	index := make(map[string]int)
	var tally Tally
	for _, c := range col.Cells {
		if c.Missing {
			continue
		}
		key := c.Text
		if col.Type == ColumnNumeric {
			key = FormatNumber(c.Number)
		}
		if i, ok := index[key]; ok {
			tally[i].Value++
			continue
		}
		index[key] = len(tally)
		tally = append(tally, TallyEntry{Key: key, Value: 1})
	}
	if tally == nil {
		tally = Tally{}
	}
	sortDescending(tally)
	return tally
}

// GroupSum sums measure per distinct value of key, in first-encounter order.
// Rows whose key is missing are skipped.
func GroupSum(key, measure *Column) Tally {
	index := make(map[string]int)
	tally := Tally{}
	for i, c := range key.Cells {
		if c.Missing {
			continue
		}
		k := c.Text
		if key.Type == ColumnNumeric {
			k = FormatNumber(c.Number)
		}
		v, _ := numberAt(measure, i)
		if pos, ok := index[k]; ok {
			tally[pos].Value += v
			continue
		}
		index[k] = len(tally)
		tally = append(tally, TallyEntry{Key: k, Value: v})
	}
	return tally
}

// numberAt returns the numeric value of row i. Text cells are parsed;
// missing or unparsable cells report false.
func numberAt(col *Column, i int) (float64, bool) {
	c := col.Cells[i]
	if c.Missing {
		return 0, false
	}
	if col.Type == ColumnNumeric {
		return c.Number, true
	}
	return ParseNumber(c.Text)
}

// sumMean returns the sum and mean of the numeric values of col.
// The mean of a column with no numbers is 0.
func sumMean(col *Column) (sum, mean float64) {
	n := 0
	for i := range col.Cells {
		if v, ok := numberAt(col, i); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return sum, 0
	}
	return sum, sum / float64(n)
}
