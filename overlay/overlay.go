// Package overlay stamps every finished page once the content flow is done:
// the "Page X of Y" label, the deferred disclaimer and an optional frame
// around the content area.
//
// Planning is a pure function of the page count and the captured
// disclaimer. Applying a plan only draws inside the footer band and the
// margins, so page count and earlier content never change.
package overlay

import (
	"fmt"

	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/markup"
)

// DefaultFormat is the page label format; it receives the page number and
// the total.
const DefaultFormat = "Page %d of %d"

// Stamp is what one page receives.
type Stamp struct {
	Page       int
	Total      int
	Label      string // empty when pages are not numbered
	Disclaimer string
	Frame      bool
}

// Label formats the page label.
func Label(page, total int) string {
	return fmt.Sprintf(DefaultFormat, page, total)
}

// Plan returns one stamp per page, or nil when there is nothing to stamp.
func Plan(total int, disclaimer string, numbered, framed bool) []Stamp {
	if total < 1 || (!numbered && !framed && disclaimer == "") {
		return nil
	}
	stamps := make([]Stamp, total)
	for i := range stamps {
		s := Stamp{Page: i + 1, Total: total, Disclaimer: disclaimer, Frame: framed}
		if numbered {
			s.Label = Label(i+1, total)
		}
		stamps[i] = s
	}
	return stamps
}

// Layout positions the stamps relative to the content area.
type Layout struct {
	LabelWidth  float64 // right-aligned label box width
	LabelSize   float64
	LabelOffset float64 // distance below the content area

	DisclaimerRise    float64 // top of the box above the content bottom
	DisclaimerHeight  float64
	DisclaimerInset   float64 // width kept free on the right, beside the label
	DisclaimerSize    float64 // starting font size
	DisclaimerMinSize float64 // smallest size tried before clipping
	DisclaimerAlign   string

	FrameColor markup.RGB
	FrameWidth float64
}

// DefaultLayout is a full-width justified disclaimer and a black frame.
func DefaultLayout() Layout {
	return Layout{
		LabelWidth:        100,
		LabelSize:         8,
		LabelOffset:       10,
		DisclaimerRise:    30,
		DisclaimerHeight:  20,
		DisclaimerSize:    6,
		DisclaimerMinSize: 3,
		DisclaimerAlign:   canvas.AlignJustify,
		FrameWidth:        1,
	}
}

// LabelRect is where the page label goes.
func (l Layout) LabelRect(content canvas.Rect) canvas.Rect {
	return canvas.Rect{
		X: content.Right() - l.LabelWidth,
		Y: content.Bottom() + l.LabelOffset,
		W: l.LabelWidth,
		H: l.LabelSize * 1.5,
	}
}

// DisclaimerRect is the box the disclaimer is fitted into.
func (l Layout) DisclaimerRect(content canvas.Rect) canvas.Rect {
	return canvas.Rect{
		X: content.X,
		Y: content.Bottom() - l.DisclaimerRise,
		W: content.W - l.DisclaimerInset,
		H: l.DisclaimerHeight,
	}
}

// Apply draws the stamps and returns to the last page with the cursor where
// it was.
func Apply(cv *canvas.Canvas, stamps []Stamp, l Layout) error {
	if len(stamps) == 0 {
		return cv.Err()
	}
	last, y := cv.Page(), cv.Y()
	for _, s := range stamps {
		if s.Page < 1 || s.Page > cv.PageCount() {
			return fmt.Errorf("overlay: page %d of %d does not exist", s.Page, cv.PageCount())
		}
		cv.SetPage(s.Page)
		content := cv.Bounds()

		if s.Frame {
			cv.StrokeRect(content, l.FrameColor, l.FrameWidth)
		}
		if s.Disclaimer != "" {
			cv.TextBox(l.DisclaimerRect(content), s.Disclaimer, canvas.TextStyle{
				Size:   l.DisclaimerSize,
				Align:  l.DisclaimerAlign,
				Markup: true,
			}, l.DisclaimerMinSize)
		}
		if s.Label != "" {
			r := l.LabelRect(content)
			p := cv.Layout(s.Label, canvas.TextStyle{Size: l.LabelSize, Align: canvas.AlignRight}, r.W)
			cv.DrawParagraph(p, r.X, r.Y)
		}
	}
	cv.SetPage(last)
	cv.SetY(y)
	if err := cv.Err(); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	return nil
}
