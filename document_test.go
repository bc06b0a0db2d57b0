package receipts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var fixedDate = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	api.DisableConfigDir()
	os.Exit(m.Run())
}

func testOpts(extra ...Option) []Option {
	return append([]Option{WithCompression(false), WithCreationDate(fixedDate)}, extra...)
}

func render(t *testing.T, d *Document) []byte {
	t.Helper()
	b, err := d.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header")
	}
	return b
}

func pageCount(t *testing.T, b []byte) int {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(b), conf)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	return n
}

func company() map[string]any {
	return map[string]any{
		"name":           "Example Co",
		"address":        "1 Market St",
		"city_state_zip": "San Francisco, CA 94105",
		"phone":          "(555) 867-5309",
		"email":          "billing@example.com",
	}
}

func baseAttrs() Attrs {
	return Attrs{
		"company":   company(),
		"details":   [][]string{{"Receipt number", "123456"}, {"Date paid", "March 15, 2024"}},
		"recipient": []any{"Jane Smith", "1 Main St", "Springfield"},
		"line_items": []any{
			[]any{"<b>Item</b>", "<b>Qty</b>", "<b>Amount</b>"},
			[]any{"Widget", 2, "$20.00"},
			[]any{"Gadget", 1, 9.5},
		},
	}
}

func fullAttrs(kind Kind) Attrs {
	switch kind {
	case KindDeclaration:
		return Attrs{
			"details":        [][]string{{"Declaration", "D-1"}},
			"recipients":     []string{"Customs Office", "Port 7"},
			"line_items":     [][]string{{"Goods", "Value"}, {"Books", "12.00"}},
			"sub_line_items": [][]string{{"Total", "12.00"}},
			"footer":         "Declared under penalty of law.",
		}
	case KindPackingList:
		return Attrs{
			"company":          company(),
			"record_number":    "INV-7",
			"shipping_details": map[string]any{"order_date": "2024-03-15", "shipping_method": "Ground", "dimensions": "10x10x10", "weight": "2 kg"},
			"shipping_address": map[string]any{"name": "Jane Smith", "address": "1 Main St", "country": "US"},
			"items": []any{
				map[string]any{"description": "Widget", "quantity": 2},
				map[string]any{"description": "Gadget", "quantity": 1},
			},
			"qr_code": "https://example.com/track/7",
		}
	case KindCommercialInvoice:
		return Attrs{
			"company":         company(),
			"recipient":       map[string]any{"name": "Importer GmbH", "country": "DE"},
			"invoice_details": map[string]any{"date": "2024-03-15", "invoice_no": "CI-1"},
			"trade_details":   map[string]any{"final_destination": "Berlin"},
			"notes":           "Handle with care.",
			"line_items": []any{
				map[string]any{"description": "Widget", "qty": 2, "net_weight": "1 kg", "origin": "US", "price": "20.00"},
			},
			"totals": map[string]any{"subtotal": "3,200.00 USD", "total": "3,200.00 USD"},
			"certification": map[string]any{
				"signature_name": "Jane Smith",
				"signature_date": "March 15, 2024",
				"disclaimer":     "Goods subject to export controls.",
			},
		}
	case KindCertificateOfOrigin:
		return Attrs{
			"certifier":        map[string]any{"certifier_type": "Exporter"},
			"blanket_period":   "2024-01-01 to 2024-12-31",
			"exporter_details": company(),
			"producer_details": map[string]any{"name": "Maker Ltd"},
			"items": []any{
				map[string]any{"sku": "W-1", "hs_code": "8471.30", "origin_criterion": "B", "country_of_origin": "US", "description": "Widgets"},
			},
			"certification": map[string]any{"signature_name": "Jane Smith", "disclaimer": "Goods subject to export controls."},
		}
	}
	return baseAttrs()
}

func TestParseKind(t *testing.T) {
	for _, in := range []string{"packing_list", "packing-list", "Packing List", " PACKING_LIST "} {
		k, err := ParseKind(in)
		if err != nil || k != KindPackingList {
			t.Errorf("ParseKind(%q) = %v, %v", in, k, err)
		}
	}
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("round trip %v: got %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("memo"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind(memo) error = %v, want ErrUnknownKind", err)
	}
}

func TestEmptyAttrsGiveBlankDocument(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			d, err := New(kind, nil, testOpts()...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if d.Composed() {
				t.Error("empty document reports composed")
			}
			if d.Canvas() == nil {
				t.Error("Canvas() = nil before render")
			}
			if n := pageCount(t, render(t, d)); n != 1 {
				t.Errorf("pages = %d, want 1", n)
			}
		})
	}
}

func TestFullAttrsRender(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			attrs := fullAttrs(kind)
			if kind == KindCustomsDocument {
				attrs["title"] = "Customs Form"
			}
			d, err := New(kind, attrs, testOpts()...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !d.Composed() {
				t.Error("document not composed")
			}
			b := render(t, d)
			if n := pageCount(t, b); n < 1 {
				t.Errorf("pages = %d", n)
			}
		})
	}
}

func TestTitles(t *testing.T) {
	tests := []struct {
		name  string
		attrs func() Attrs
		opts  []Option
		want  string
	}{
		{"default", baseAttrs, nil, "(Invoice)"},
		{"option", baseAttrs, []Option{WithTitle("Tax Invoice")}, "(Tax Invoice)"},
		{"attribute wins", func() Attrs {
			a := baseAttrs()
			a["title"] = "Pro Forma"
			return a
		}, []Option{WithTitle("Tax Invoice")}, "(Pro Forma)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewInvoice(tt.attrs(), testOpts(tt.opts...)...)
			if err != nil {
				t.Fatal(err)
			}
			if b := render(t, d); !bytes.Contains(b, []byte(tt.want)) {
				t.Errorf("output does not contain %s", tt.want)
			}
		})
	}
}

func TestMissingFields(t *testing.T) {
	tests := []struct {
		kind  Kind
		attrs Attrs
		field string
	}{
		{KindReceipt, func() Attrs { a := baseAttrs(); delete(a, "recipient"); return a }(), "recipient"},
		{KindStatement, func() Attrs { a := baseAttrs(); a["company"] = map[string]any{"email": "x@example.com"}; return a }(), "company.name"},
		{KindInvoice, func() Attrs { a := baseAttrs(); a["company"] = map[string]any{"name": "Example Co"}; return a }(), "company.email"},
		{KindDeclaration, func() Attrs { a := fullAttrs(KindDeclaration); delete(a, "footer"); return a }(), "footer"},
		{KindCommercialInvoice, Attrs{"notes": "x"}, "company"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.field, func(t *testing.T) {
			d, err := New(tt.kind, tt.attrs, testOpts()...)
			if d != nil {
				t.Error("document returned alongside error")
			}
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("error = %v, want ErrMissingField", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tt.field {
				t.Errorf("field = %v, want %q", fe, tt.field)
			}
		})
	}
}

func TestFooterWithoutEmail(t *testing.T) {
	a := baseAttrs()
	a["company"] = map[string]any{"name": "Example Co"}
	a["footer"] = "Thanks for your business."
	d, err := NewReceipt(a, testOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	if b := render(t, d); !bytes.Contains(b, []byte("(Thanks for your business.)")) {
		t.Error("footer missing from output")
	}
}

func TestDefaultFooterMessage(t *testing.T) {
	d, err := NewReceipt(baseAttrs(), testOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	if b := render(t, d); !bytes.Contains(b, []byte("billing@example.com")) {
		t.Error("default footer does not mention the company email")
	}
}

func TestDisclaimerOnEveryPage(t *testing.T) {
	a := fullAttrs(KindCertificateOfOrigin)
	var items []any
	for i := range 40 {
		items = append(items, map[string]any{
			"sku": fmt.Sprintf("SKU-%02d", i), "hs_code": "8471.30", "origin_criterion": "B",
			"country_of_origin": "US", "description": "Assorted widgets",
		})
	}
	a["items"] = items

	d, err := NewCertificateOfOrigin(a, testOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	b := render(t, d)
	pages := pageCount(t, b)
	if pages < 2 {
		t.Fatalf("pages = %d, want a multi-page document", pages)
	}
	if pages != d.PageCount() {
		t.Errorf("PageCount() = %d, file has %d", d.PageCount(), pages)
	}
	if got := bytes.Count(b, []byte("(Goods subject to export controls.)")); got != pages {
		t.Errorf("disclaimer drawn %d times on %d pages", got, pages)
	}
	for p := 1; p <= pages; p++ {
		label := fmt.Sprintf("(Page %d of %d)", p, pages)
		if !bytes.Contains(b, []byte(label)) {
			t.Errorf("missing label %s", label)
		}
	}
	if d.Disclaimer() != "Goods subject to export controls." {
		t.Errorf("Disclaimer() = %q", d.Disclaimer())
	}
}

func TestCommercialInvoiceContent(t *testing.T) {
	d, err := NewCommercialInvoice(fullAttrs(KindCommercialInvoice), testOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	b := render(t, d)
	for _, want := range []string{
		"(Commercial Invoice)",
		"(Jane Smith  March 15, 2024)",
		"(Subtotal)",
		"(Total:)",
		"(MERCHANDISE)",
		"(Shipper/Exporter)",
		"(Recipient/Ship To)",
		"(Importer of Record)",
		"(Page 1 of 1)",
		"(Goods subject to export controls.)",
	} {
		if !bytes.Contains(b, []byte(want)) {
			t.Errorf("output does not contain %s", want)
		}
	}
}

func TestCommercialInvoiceTotalsWithoutValues(t *testing.T) {
	a := fullAttrs(KindCommercialInvoice)
	delete(a, "totals")
	d, err := NewCommercialInvoice(a, testOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	b := render(t, d)
	for _, want := range []string{"(Subtotal)", "(Total:)"} {
		if !bytes.Contains(b, []byte(want)) {
			t.Errorf("output does not contain %s", want)
		}
	}
}

func TestPackingListCode(t *testing.T) {
	tests := []struct {
		name  string
		code  any
		image bool
	}{
		{"text", "https://example.com/track/7", true},
		{"mapping", map[string]any{"value": "PKG-7", "symbology": "code128"}, true},
		{"unknown symbology", map[string]any{"value": "PKG-7", "symbology": "morse"}, false},
		{"none", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fullAttrs(KindPackingList)
			a["qr_code"] = tt.code
			d, err := NewPackingList(a, testOpts()...)
			if err != nil {
				t.Fatal(err)
			}
			b := render(t, d)
			if got := bytes.Contains(b, []byte("/Subtype /Image")); got != tt.image {
				t.Errorf("image drawn = %v, want %v", got, tt.image)
			}
		})
	}
}

func TestUnusableLogoMatchesNoLogo(t *testing.T) {
	plain, err := NewInvoice(baseAttrs(), testOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	want := render(t, plain)

	for _, logo := range []string{
		filepath.Join(t.TempDir(), "missing.png"),
		"http://127.0.0.1:1/logo.png",
	} {
		a := baseAttrs()
		c := company()
		c["logo"] = logo
		a["company"] = c
		d, err := NewInvoice(a, testOpts()...)
		if err != nil {
			t.Fatalf("logo %q: %v", logo, err)
		}
		if got := render(t, d); !bytes.Equal(got, want) {
			t.Errorf("logo %q changed the output", logo)
		}
	}
}

func TestRenderIsTerminal(t *testing.T) {
	d, err := NewReceipt(baseAttrs(), testOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	first := render(t, d)
	second := render(t, d)
	if !bytes.Equal(first, second) {
		t.Error("second Render returned different bytes")
	}
	if d.Canvas() != nil {
		t.Error("Canvas() available after render")
	}
	if err := d.Generate(baseAttrs()); !errors.Is(err, ErrRendered) {
		t.Errorf("Generate after render = %v, want ErrRendered", err)
	}

	path := filepath.Join(t.TempDir(), "receipt.pdf")
	if err := d.RenderToPath(path); err != nil {
		t.Fatal(err)
	}
	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(onDisk, first) {
		t.Error("file differs from rendered bytes")
	}
}

func TestGenerateLater(t *testing.T) {
	d, err := NewStatement(nil, testOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Generate(baseAttrs()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !d.Composed() {
		t.Error("not composed after Generate")
	}
	if err := d.Generate(baseAttrs()); !errors.Is(err, ErrComposed) {
		t.Errorf("second Generate = %v, want ErrComposed", err)
	}
	if b := render(t, d); !bytes.Contains(b, []byte("(Statement)")) {
		t.Error("title missing")
	}
}

func TestInvalidOptions(t *testing.T) {
	if _, err := NewReceipt(baseAttrs(), WithFontSize(-1)); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("negative font size: %v", err)
	}
	if _, err := NewReceipt(baseAttrs(), WithOrientation("sideways")); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("bad orientation: %v", err)
	}
	if _, err := New(Kind(99), baseAttrs()); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind: %v", err)
	}
	if _, err := NewReceipt(baseAttrs(), WithPageSize("napkin")); err == nil {
		t.Error("unknown page size accepted")
	}
}

func TestPageSizeAttribute(t *testing.T) {
	a := baseAttrs()
	a["page_size"] = "A4"
	d, err := NewReceipt(a, testOpts(WithPageSize(PageSizeLegal))...)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := d.Canvas().PageSize(); int(w) != 595 || int(h) != 841 {
		t.Errorf("page size = %vx%v, want A4", w, h)
	}
}

func TestPageSetupOnlyGivesBlankDocument(t *testing.T) {
	d, err := NewReceipt(Attrs{"page_size": "A4"}, testOpts()...)
	if err != nil {
		t.Fatalf("NewReceipt: %v", err)
	}
	if d.Composed() {
		t.Error("page setup alone composed the document")
	}
	if w, h := d.Canvas().PageSize(); int(w) != 595 || int(h) != 841 {
		t.Errorf("page size = %vx%v, want A4", w, h)
	}
	if err := d.Generate(Attrs{"page_size": "Legal"}); err != nil {
		t.Errorf("Generate with page setup only: %v", err)
	}
	if d.Composed() {
		t.Error("Generate composed from page setup alone")
	}
	if err := d.Generate(baseAttrs()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !d.Composed() {
		t.Error("document not composed after Generate")
	}
}

func TestDeclarationFrame(t *testing.T) {
	d, err := NewDeclaration(fullAttrs(KindDeclaration), testOpts()...)
	if err != nil {
		t.Fatal(err)
	}
	b := render(t, d)
	if !strings.Contains(string(b), "36.00 756.00 540.00 -720.00 re S") {
		t.Error("content frame not drawn")
	}
	if !bytes.Contains(b, []byte("(Customs Document)")) {
		t.Error("title missing")
	}
}
