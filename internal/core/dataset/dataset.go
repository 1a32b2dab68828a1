package dataset

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampColumn is the reserved name of the single temporal column every
// dataset carries. All other columns are categorical or numeric.
const TimestampColumn = "timestamp"

// Kind tags the value type a column holds.
type Kind int

const (
	KindTime Kind = iota
	KindString
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Column is a single named sequence of values, all of one kind.
// Exactly one of the backing slices is populated, matching the kind.
type Column struct {
	kind  Kind
	times []time.Time
	strs  []string
	nums  []float64
}

func TimeColumn(values []time.Time) Column {
	return Column{kind: KindTime, times: values}
}

func StringColumn(values []string) Column {
	return Column{kind: KindString, strs: values}
}

func FloatColumn(values []float64) Column {
	return Column{kind: KindFloat, nums: values}
}

func (c Column) Kind() Kind { return c.kind }

func (c Column) Len() int {
	switch c.kind {
	case KindTime:
		return len(c.times)
	case KindString:
		return len(c.strs)
	default:
		return len(c.nums)
	}
}

// Times returns the backing slice of a temporal column.
// Callers must treat the returned slice as read-only.
func (c Column) Times() []time.Time { return c.times }

// Strings returns the backing slice of a categorical column.
// Callers must treat the returned slice as read-only.
func (c Column) Strings() []string { return c.strs }

// Floats returns the backing slice of a numeric column.
// Callers must treat the returned slice as read-only.
func (c Column) Floats() []float64 { return c.nums }

// take builds a new column holding the values at the given row indices.
func (c Column) take(rows []int) Column {
	switch c.kind {
	case KindTime:
		out := make([]time.Time, 0, len(rows))
		for _, i := range rows {
			out = append(out, c.times[i])
		}
		return TimeColumn(out)
	case KindString:
		out := make([]string, 0, len(rows))
		for _, i := range rows {
			out = append(out, c.strs[i])
		}
		return StringColumn(out)
	default:
		out := make([]float64, 0, len(rows))
		for _, i := range rows {
			out = append(out, c.nums[i])
		}
		return FloatColumn(out)
	}
}

// Dataset is a row-aligned set of named columns. It is immutable once built:
// narrowing operations return a new Dataset and never touch the original.
type Dataset struct {
	names []string // column order, for deterministic serialization
	cols  map[string]Column
}

// Builder assembles a Dataset column by column. Build validates the
// row-alignment and single-timestamp invariants.
type Builder struct {
	names []string
	cols  map[string]Column
	err   error
}

func NewBuilder() *Builder {
	return &Builder{cols: make(map[string]Column)}
}

func (b *Builder) AddColumn(name string, col Column) *Builder {
	if b.err != nil {
		return b
	}
	if _, exists := b.cols[name]; exists {
		b.err = fmt.Errorf("duplicate column %q", name)
		return b
	}
	b.names = append(b.names, name)
	b.cols[name] = col
	return b
}

func (b *Builder) AddTime(name string, values []time.Time) *Builder {
	return b.AddColumn(name, TimeColumn(values))
}

func (b *Builder) AddString(name string, values []string) *Builder {
	return b.AddColumn(name, StringColumn(values))
}

func (b *Builder) AddFloat(name string, values []float64) *Builder {
	return b.AddColumn(name, FloatColumn(values))
}

func (b *Builder) Build() (*Dataset, error) {
	if b.err != nil {
		return nil, b.err
	}

	ts, ok := b.cols[TimestampColumn]
	if !ok {
		return nil, fmt.Errorf("dataset is missing the %q column", TimestampColumn)
	}
	if ts.Kind() != KindTime {
		return nil, fmt.Errorf("column %q must be temporal, got %s", TimestampColumn, ts.Kind())
	}

	rows := ts.Len()
	for _, name := range b.names {
		col := b.cols[name]
		if name != TimestampColumn && col.Kind() == KindTime {
			return nil, fmt.Errorf("column %q is temporal; only %q may hold timestamps", name, TimestampColumn)
		}
		if col.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, col.Len(), rows)
		}
	}

	return &Dataset{names: b.names, cols: b.cols}, nil
}

// NumRows reports the shared length of every column.
func (d *Dataset) NumRows() int {
	return d.cols[TimestampColumn].Len()
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	col, ok := d.cols[name]
	return col, ok
}

// ColumnNames returns the column names in their original order.
func (d *Dataset) ColumnNames() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Timestamps returns the temporal column's values.
// Callers must treat the returned slice as read-only.
func (d *Dataset) Timestamps() []time.Time {
	return d.cols[TimestampColumn].Times()
}

// Features returns the names of the categorical (string) columns, in column
// order. The timestamp column is never a feature.
func (d *Dataset) Features() []string {
	var out []string
	for _, name := range d.names {
		if name == TimestampColumn {
			continue
		}
		if d.cols[name].Kind() == KindString {
			out = append(out, name)
		}
	}
	return out
}

// Select builds a new dataset holding only the given rows of the given
// columns, preserving relative row order. The timestamp column is always
// carried, whether or not it is named.
func (d *Dataset) Select(rows []int, names ...string) (*Dataset, error) {
	keep := []string{TimestampColumn}
	for _, name := range names {
		if name == TimestampColumn {
			continue
		}
		if _, ok := d.cols[name]; !ok {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		keep = append(keep, name)
	}

	b := NewBuilder()
	for _, name := range keep {
		b.AddColumn(name, d.cols[name].take(rows))
	}
	return b.Build()
}

// MarshalJSON serializes the dataset as a column-name to value-array object.
// Timestamps are rendered as ISO-8601 (RFC 3339) strings at the boundary.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.names))
	for _, name := range d.names {
		col := d.cols[name]
		switch col.Kind() {
		case KindTime:
			strs := make([]string, 0, col.Len())
			for _, t := range col.Times() {
				strs = append(strs, t.Format(time.RFC3339))
			}
			out[name] = strs
		case KindString:
			out[name] = col.Strings()
		default:
			out[name] = col.Floats()
		}
	}
	return json.Marshal(out)
}
