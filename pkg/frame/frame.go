package frame

import (
	"fmt"
	"strconv"
)

// Data is the input of one panel render.
type Data struct {
	Series []Frame `json:"series" yaml:"series"`
}

// Empty reports whether there is no series to display.
func (d Data) Empty() bool { return len(d.Series) == 0 }

// First returns the first series. Panels only ever read the first one.
func (d Data) First() (Frame, bool) {
	if len(d.Series) == 0 {
		return Frame{}, false
	}
	return d.Series[0], true
}

// Frame is a single series: a set of equally indexed columns.
type Frame struct {
	Name   string  `json:"name,omitempty" yaml:"name,omitempty"`
	Length int     `json:"length,omitempty" yaml:"length,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field is a named column.
type Field struct {
	Name   string `json:"name" yaml:"name"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Values []any  `json:"values" yaml:"values"`
}

// Len returns the declared row count, or the longest column when no row
// count was declared.
func (f Frame) Len() int {
	if f.Length > 0 {
		return f.Length
	}
	n := 0
	for _, fd := range f.Fields {
		n = max(n, len(fd.Values))
	}
	return n
}

// Rows returns the number of rows that are present in every column. It never
// exceeds [Frame.Len].
func (f Frame) Rows() int {
	if len(f.Fields) == 0 {
		return 0
	}
	n := f.Len()
	for _, fd := range f.Fields {
		n = min(n, len(fd.Values))
	}
	return n
}

// Field returns the first column called name. Names are case-sensitive.
func (f Frame) Field(name string) (Field, bool) {
	for _, fd := range f.Fields {
		if fd.Name == name {
			return fd, true
		}
	}
	return Field{}, false
}

// Value returns the value at row i, or nil when the row is out of range.
func (fd Field) Value(i int) any {
	if i < 0 || i >= len(fd.Values) {
		return nil
	}
	return fd.Values[i]
}

// String returns the value at row i as text. The boolean is false for absent
// values: out of range, nil or the empty string.
func (fd Field) String(i int) (string, bool) {
	s := Format(fd.Value(i))
	return s, s != ""
}

// Format renders a cell value as text. Integral floats print without a
// fractional part so numeric identifiers read naturally.
func Format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
