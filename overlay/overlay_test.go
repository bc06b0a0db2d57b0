package overlay_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/overlay"
)

func TestPlan(t *testing.T) {
	stamps := overlay.Plan(3, "Subject to terms.", true, false)
	if len(stamps) != 3 {
		t.Fatalf("stamps = %d, want 3", len(stamps))
	}
	for i, s := range stamps {
		if s.Page != i+1 || s.Total != 3 {
			t.Errorf("stamp %d = %+v", i, s)
		}
		if s.Disclaimer != "Subject to terms." {
			t.Errorf("stamp %d lost the disclaimer", i)
		}
	}
	if stamps[1].Label != "Page 2 of 3" {
		t.Errorf("Label = %q", stamps[1].Label)
	}
}

func TestPlanNothingToStamp(t *testing.T) {
	if overlay.Plan(4, "", false, false) != nil {
		t.Error("expected no stamps")
	}
	if overlay.Plan(0, "x", true, true) != nil {
		t.Error("expected no stamps without pages")
	}
	framed := overlay.Plan(2, "", false, true)
	if len(framed) != 2 || framed[0].Label != "" || !framed[0].Frame {
		t.Errorf("framed plan = %+v", framed)
	}
}

func TestLayoutRects(t *testing.T) {
	l := overlay.DefaultLayout()
	content := canvas.Rect{X: 36, Y: 36, W: 540, H: 720}

	label := l.LabelRect(content)
	if label.X != 476 || label.Y != 766 || label.W != 100 {
		t.Errorf("label rect = %+v", label)
	}
	d := l.DisclaimerRect(content)
	if d.X != 36 || d.Y != 726 || d.W != 540 || d.H != 20 {
		t.Errorf("disclaimer rect = %+v", d)
	}
	l.DisclaimerInset = 110
	if got := l.DisclaimerRect(content).W; got != 430 {
		t.Errorf("inset width = %v", got)
	}
}

func TestApplyEveryPage(t *testing.T) {
	cv, err := canvas.New(canvas.Config{})
	if err != nil {
		t.Fatal(err)
	}
	cv.Text(strings.Repeat("content line\n", 150), canvas.TextStyle{})
	pages := cv.PageCount()
	if pages < 2 {
		t.Fatalf("expected several pages, got %d", pages)
	}
	y := cv.Y()

	disclaimer := "All shipments are subject to the carrier conditions of carriage."
	if err := overlay.Apply(cv, overlay.Plan(pages, disclaimer, true, true), overlay.DefaultLayout()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cv.PageCount() != pages {
		t.Errorf("overlay changed page count to %d", cv.PageCount())
	}
	if cv.Page() != pages || cv.Y() != y {
		t.Errorf("overlay did not restore page/cursor: page %d y %v", cv.Page(), cv.Y())
	}

	var buf bytes.Buffer
	if err := cv.Output(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, "("+disclaimer+")"); n != pages {
		t.Errorf("disclaimer drawn %d times, want %d", n, pages)
	}
	for p := 1; p <= pages; p++ {
		if !strings.Contains(out, "("+overlay.Label(p, pages)+")") {
			t.Errorf("missing label for page %d", p)
		}
	}
}

func TestApplyUnknownPage(t *testing.T) {
	cv, err := canvas.New(canvas.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := overlay.Apply(cv, overlay.Plan(2, "", true, false), overlay.DefaultLayout()); err == nil {
		t.Error("expected error for a page that does not exist")
	}
}
