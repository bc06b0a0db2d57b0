package canvas_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/lvillar/receipts/canvas"
)

func newTestCanvas(t *testing.T) *canvas.Canvas {
	t.Helper()
	cv, err := canvas.New(canvas.Config{})
	if err != nil {
		t.Fatalf("new canvas: %v", err)
	}
	return cv
}

func output(t *testing.T, cv *canvas.Canvas) string {
	t.Helper()
	var buf bytes.Buffer
	if err := cv.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	return buf.String()
}

func TestNewDefaults(t *testing.T) {
	cv := newTestCanvas(t)

	want := canvas.Rect{X: 36, Y: 36, W: 540, H: 720}
	if got := cv.Bounds(); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
	if got := cv.FlowBottom(); got != 724 {
		t.Errorf("FlowBottom = %v, want 724", got)
	}
	if cv.PageCount() != 1 {
		t.Errorf("PageCount = %d, want 1", cv.PageCount())
	}
	if cv.BaseSize() != 8 {
		t.Errorf("BaseSize = %v, want 8", cv.BaseSize())
	}
}

func TestNewUnknownPageSize(t *testing.T) {
	if _, err := canvas.New(canvas.Config{PageSize: "Napkin"}); err == nil {
		t.Fatal("expected error for unknown page size")
	}
}

func TestNewMissingFont(t *testing.T) {
	_, err := canvas.New(canvas.Config{Font: canvas.FontConfig{
		Normal: canvas.FontSource{Path: "testdata/does-not-exist.ttf"},
	}})
	if !errors.Is(err, canvas.ErrFont) {
		t.Fatalf("expected ErrFont, got %v", err)
	}
}

func TestGrid(t *testing.T) {
	cv := newTestCanvas(t)
	g := cv.Grid(10, 10, 10)

	if got := g.ColumnWidth(); got != 45 {
		t.Errorf("ColumnWidth = %v, want 45", got)
	}
	c := g.Cell(0, 1)
	if c.X != 91 || c.Y != 36 {
		t.Errorf("Cell(0,1) at %v,%v, want 91,36", c.X, c.Y)
	}
	span := g.Span(0, 1, 0, 10)
	if math.Abs(span.Right()-cv.Bounds().Right()) > 1e-9 {
		t.Errorf("Span right edge = %v, want %v", span.Right(), cv.Bounds().Right())
	}
}

func TestLayoutWraps(t *testing.T) {
	cv := newTestCanvas(t)
	text := strings.Repeat("lorem ipsum dolor ", 20)

	p := cv.Layout(text, canvas.TextStyle{}, 100)
	if p.Lines() < 2 {
		t.Fatalf("expected wrapped text, got %d lines", p.Lines())
	}
	if p.Width() > 100 {
		t.Errorf("line width %v exceeds 100", p.Width())
	}

	long := cv.Layout(strings.Repeat("x", 200), canvas.TextStyle{}, 50)
	if long.Lines() < 2 || long.Width() > 50 {
		t.Errorf("unbreakable word not split: %d lines, width %v", long.Lines(), long.Width())
	}
}

func TestLayoutBreaks(t *testing.T) {
	cv := newTestCanvas(t)

	p := cv.Layout("a\n\nb", canvas.TextStyle{}, 500)
	if p.Lines() != 3 {
		t.Errorf("Lines = %d, want 3", p.Lines())
	}
	if cv.Layout("", canvas.TextStyle{}, 500).Height() != 0 {
		t.Error("empty text should take no space")
	}
	markup := cv.Layout("<b>Acme</b><br>Street", canvas.TextStyle{Markup: true}, 500)
	if markup.Lines() != 2 {
		t.Errorf("markup Lines = %d, want 2", markup.Lines())
	}
}

func TestTextFlowsAcrossPages(t *testing.T) {
	cv := newTestCanvas(t)
	cv.Text(strings.Repeat("line\n", 200), canvas.TextStyle{})

	if cv.PageCount() < 2 {
		t.Fatalf("expected several pages, got %d", cv.PageCount())
	}
	if cv.Y() > cv.FlowBottom() {
		t.Errorf("cursor %v below flow bottom %v", cv.Y(), cv.FlowBottom())
	}
	output(t, cv)
}

func TestEnsureSpace(t *testing.T) {
	cv := newTestCanvas(t)

	if cv.EnsureSpace(10000) {
		t.Error("a block taller than the page must not break from the top")
	}
	cv.SetY(700)
	if !cv.EnsureSpace(100) {
		t.Fatal("expected a page break")
	}
	if cv.PageCount() != 2 || cv.Y() != cv.Bounds().Y {
		t.Errorf("page %d y %v after break", cv.PageCount(), cv.Y())
	}
}

func TestTextOutput(t *testing.T) {
	cv, err := canvas.New(canvas.Config{Compress: false})
	if err != nil {
		t.Fatal(err)
	}
	cv.Text("Hello <b>World</b>", canvas.TextStyle{Markup: true})
	cv.Text("Jane Smith  March 15, 2024", canvas.TextStyle{Align: canvas.AlignRight, Bold: true, Size: 10})
	cv.Text("Café", canvas.TextStyle{})

	out := output(t, cv)
	for _, want := range []string{"(World)", "(Jane Smith  March 15, 2024)", "(Caf\xe9)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTextBoxShrinks(t *testing.T) {
	cv := newTestCanvas(t)
	text := strings.Repeat("This disclaimer is long. ", 30)

	size := cv.TextBox(canvas.Rect{X: 36, Y: 700, W: 540, H: 20}, text, canvas.TextStyle{Size: 6}, 3)
	if size >= 6 || size < 3 {
		t.Errorf("size = %v, want within [3, 6)", size)
	}
	if got := cv.TextBox(canvas.Rect{X: 36, Y: 700, W: 540, H: 20}, "short", canvas.TextStyle{Size: 6}, 3); got != 6 {
		t.Errorf("short text shrunk to %v", got)
	}
	output(t, cv)
}

func TestRegisterImage(t *testing.T) {
	cv := newTestCanvas(t)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	w, h, err := cv.RegisterImage("logo", "png", buf.Bytes())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if w <= h {
		t.Errorf("size %vx%v, want landscape", w, h)
	}
	cv.DrawImage("logo", 36, 36, 48, 0)

	if _, _, err := cv.RegisterImage("junk", "png", []byte("not an image")); !errors.Is(err, canvas.ErrImage) {
		t.Errorf("expected ErrImage, got %v", err)
	}
	if cv.Err() != nil {
		t.Errorf("rejected image left an error: %v", cv.Err())
	}
	output(t, cv)
}

func TestBarcode(t *testing.T) {
	cv := newTestCanvas(t)
	if err := cv.Barcode(canvas.QR, "https://example.com/track/1884", canvas.Rect{X: 500, Y: 36, W: 72, H: 72}); err != nil {
		t.Fatalf("qr: %v", err)
	}
	if err := cv.Barcode("aztec-ish", "x", canvas.Rect{W: 10, H: 10}); err == nil {
		t.Error("expected error for unknown symbology")
	}
	output(t, cv)
}

func TestParseSymbology(t *testing.T) {
	tests := []struct {
		in   string
		want canvas.Symbology
		ok   bool
	}{
		{"", canvas.QR, true},
		{"pdf417", canvas.PDF417, true},
		{"code128", canvas.Code128, true},
		{"ean", "", false},
	}
	for _, tt := range tests {
		got, ok := canvas.ParseSymbology(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseSymbology(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestMissingStationeryIsIgnored(t *testing.T) {
	cv, err := canvas.New(canvas.Config{Stationery: "testdata/missing.pdf"})
	if err != nil {
		t.Fatalf("missing stationery should not fail: %v", err)
	}
	output(t, cv)
}
