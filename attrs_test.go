package receipts

import (
	"reflect"
	"testing"
)

func TestAttrsLookup(t *testing.T) {
	a := Attrs{
		"company": map[any]any{"name": "Example Co", "address": map[string]any{"city": "Springfield"}},
		"count":   uint64(3),
		"ratio":   0.5,
		"nothing": nil,
	}
	tests := []struct {
		path string
		want string
		has  bool
	}{
		{"company.name", "Example Co", true},
		{"company.address.city", "Springfield", true},
		{"company.phone", "", false},
		{"count", "3", true},
		{"ratio", "0.5", true},
		{"nothing", "", false},
		{"count.value", "", false},
	}
	for _, tt := range tests {
		if got := a.String(tt.path); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.path, got, tt.want)
		}
		if got := a.Has(tt.path); got != tt.has {
			t.Errorf("Has(%q) = %v, want %v", tt.path, got, tt.has)
		}
	}
	if got := a.Float("ratio"); got != 0.5 {
		t.Errorf("Float(ratio) = %v", got)
	}
	if got := a.Keys(); !reflect.DeepEqual(got, []string{"company", "count", "nothing", "ratio"}) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestAttrsShapes(t *testing.T) {
	a := Attrs{
		"rows":   []any{[]any{"a", 1}, "single", []string{"b", "c"}},
		"text":   "one line",
		"list":   []any{"x", nil, 2},
		"items":  []any{map[string]any{"sku": "1"}, "skip", Attrs{"sku": "2"}},
		"string": "not a map",
	}
	if got, want := a.Rows("rows"), [][]string{{"a", "1"}, {"single"}, {"b", "c"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Rows = %v, want %v", got, want)
	}
	if got := a.Lines("text"); !reflect.DeepEqual(got, []string{"one line"}) {
		t.Errorf("Lines(text) = %v", got)
	}
	if got := a.Lines("list"); !reflect.DeepEqual(got, []string{"x", "2"}) {
		t.Errorf("Lines(list) = %v", got)
	}
	items := a.Maps("items")
	if len(items) != 2 || items[1].String("sku") != "2" {
		t.Errorf("Maps = %v", items)
	}
	if m := a.Map("string"); len(m) != 0 {
		t.Errorf("Map of a scalar = %v", m)
	}
}

func TestRecipientLines(t *testing.T) {
	a := Attrs{
		"text":    "Jane Smith",
		"mapping": map[string]any{"name": "Jane Smith", "address": "1 Main St"},
	}
	if got := lines(a, "text"); !reflect.DeepEqual(got, []string{"Jane Smith"}) {
		t.Errorf("lines(text) = %v", got)
	}
	if got := lines(a, "mapping"); !reflect.DeepEqual(got, []string{"Jane Smith\n1 Main St"}) {
		t.Errorf("lines(mapping) = %v", got)
	}
	if got := lines(a, "absent"); got != nil {
		t.Errorf("lines(absent) = %v", got)
	}
}

func TestPlans(t *testing.T) {
	for _, k := range Kinds() {
		p, ok := PlanFor(k)
		if !ok {
			t.Errorf("no plan for %v", k)
			continue
		}
		if len(p.Sections) == 0 {
			t.Errorf("%v has no sections", k)
		}
	}
	p, _ := PlanFor(KindInvoice)
	want := []string{"header", "details", "ship to", "line items", "footer"}
	if got := p.SectionNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("invoice sections = %v, want %v", got, want)
	}
}
