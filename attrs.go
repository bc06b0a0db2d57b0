package receipts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Attrs is the attribute bag a document is built from. Values may come
// from Go literals or from JSON and YAML decoders; accessors accept the
// shapes those produce and ignore what they cannot use.
type Attrs map[string]any

// Lookup resolves a dotted path such as "company.email".
func (a Attrs) Lookup(path string) (any, bool) {
	var cur any = a
	for _, key := range strings.Split(path, ".") {
		m, ok := asAttrs(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Value returns the raw value at path, or nil.
func (a Attrs) Value(path string) any {
	v, _ := a.Lookup(path)
	return v
}

// Has reports whether path is present and not nil.
func (a Attrs) Has(path string) bool {
	v, ok := a.Lookup(path)
	return ok && v != nil
}

// String returns the scalar at path as text. Anything else yields "".
func (a Attrs) String(path string) string {
	return toString(a.Value(path))
}

// Float returns the number at path, or 0.
func (a Attrs) Float(path string) float64 {
	switch v := a.Value(path).(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	}
	return 0
}

// Map returns the mapping at path, or an empty bag.
func (a Attrs) Map(path string) Attrs {
	m, ok := asAttrs(a.Value(path))
	if !ok {
		return Attrs{}
	}
	return m
}

// List returns the sequence at path.
func (a Attrs) List(path string) []any {
	return asList(a.Value(path))
}

// Maps returns the mappings in the sequence at path, skipping other values.
func (a Attrs) Maps(path string) []Attrs {
	var out []Attrs
	for _, v := range a.List(path) {
		if m, ok := asAttrs(v); ok {
			out = append(out, m)
		}
	}
	return out
}

// Rows returns the sequence at path as rows of text cells. A scalar row
// becomes a single cell.
func (a Attrs) Rows(path string) [][]string {
	var rows [][]string
	for _, v := range a.List(path) {
		cells := asList(v)
		if cells == nil {
			rows = append(rows, []string{toString(v)})
			continue
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = toString(c)
		}
		rows = append(rows, row)
	}
	return rows
}

// Lines returns the value at path as lines of text: a string is one entry,
// a sequence gives one entry per scalar.
func (a Attrs) Lines(path string) []string {
	v := a.Value(path)
	if s, ok := v.(string); ok {
		return []string{s}
	}
	var out []string
	for _, e := range asList(v) {
		if s := toString(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Keys returns the top-level keys in sorted order.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asAttrs(v any) (Attrs, bool) {
	switch m := v.(type) {
	case Attrs:
		return m, true
	case map[string]any:
		return Attrs(m), true
	case map[string]string:
		out := make(Attrs, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	case map[any]any:
		out := make(Attrs, len(m))
		for k, s := range m {
			out[fmt.Sprint(k)] = s
		}
		return out, true
	}
	return nil, false
}

func asList(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	case [][]string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	case []Attrs:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	}
	return nil
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(s)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}
