// Package compose builds the self-contained blocks documents are made of.
//
// Builders take shaped data, never attribute bags, draw one block at the
// canvas cursor and leave the cursor SectionGap points below it. They only
// fail when the backend does; absent optional data renders as empty text.
package compose

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/loader"
	"github.com/lvillar/receipts/markup"
	"github.com/lvillar/receipts/table"
)

// SectionGap is the space left below every block.
const SectionGap = 8

// State is the per-document render state shared by builders: the deferred
// disclaimer slot. The cursor lives in the canvas.
type State struct {
	disclaimer string
}

// SetDisclaimer stores text for the overlay pass. Empty text is ignored.
func (s *State) SetDisclaimer(text string) {
	if text = strings.TrimSpace(text); text != "" {
		s.disclaimer = text
	}
}

// Disclaimer returns the stored disclaimer.
func (s *State) Disclaimer() string { return s.disclaimer }

// Composer draws sections on one canvas.
type Composer struct {
	cv  *canvas.Canvas
	ld  *loader.Loader
	st  *State
	log *slog.Logger
}

// New returns a Composer drawing on cv. A nil loader disables logos and a nil
// state gets a fresh one.
func New(cv *canvas.Canvas, ld *loader.Loader, st *State) *Composer {
	if st == nil {
		st = &State{}
	}
	return &Composer{cv: cv, ld: ld, st: st, log: cv.Logger()}
}

// Canvas returns the canvas the composer draws on.
func (c *Composer) Canvas() *canvas.Canvas { return c.cv }

// State returns the render state.
func (c *Composer) State() *State { return c.st }

// Text flows text across the content width.
func (c *Composer) Text(text string, st canvas.TextStyle) {
	c.cv.Text(text, st)
}

// Spacer moves the cursor down by h points.
func (c *Composer) Spacer(h float64) {
	c.cv.MoveDown(h)
}

// Title draws a bold 16pt heading.
func (c *Composer) Title(text, align string) {
	c.cv.Text(text, canvas.TextStyle{Size: 16, Bold: true, Align: align})
	c.cv.MoveDown(SectionGap)
}

// render draws t and adds the section gap.
func (c *Composer) render(name string, t *table.Table) error {
	if err := t.Render(); err != nil {
		return fmt.Errorf("compose: %s: %w", name, err)
	}
	c.cv.MoveDown(SectionGap)
	return nil
}

func (c *Composer) width() float64 { return c.cv.Bounds().W }

func boldRow(r *table.Row, titles ...string) *table.Row {
	for _, t := range titles {
		r.AddCell(markup.Bold(t))
	}
	return r
}

// ColumnsTable is the table behind Columns.
func (c *Composer) ColumnsTable(headers []string, rows [][]string) *table.Table {
	t := table.New(c.cv).SetStyle(table.Bordered()).SetWidth(c.width())
	boldRow(t.AddHeaderRow(), headers...)
	for _, r := range rows {
		t.AddRow().AddCells(r...)
	}
	return t
}

// Columns draws one bold header row of titles over data rows, bordered, with
// widths following the content.
func (c *Composer) Columns(headers []string, rows [][]string) error {
	return c.render("columns", c.ColumnsTable(headers, rows))
}

// EqualColumns is Columns with every column the same width.
func (c *Composer) EqualColumns(headers []string, rows [][]string) error {
	t := c.ColumnsTable(headers, rows).SetEqualColumns(len(headers))
	return c.render("columns", t)
}

// TwoColumn draws two titled blocks side by side.
func (c *Composer) TwoColumn(leftTitle, left, rightTitle, right string) error {
	return c.EqualColumns([]string{leftTitle, rightTitle}, [][]string{{left, right}})
}

// BorderedSection draws one titled block across the full width.
func (c *Composer) BorderedSection(title, content string) error {
	t := table.New(c.cv).SetStyle(table.Bordered()).SetWidth(c.width()).SetEqualColumns(1)
	boldRow(t.AddRow(), title)
	t.AddRow().AddCell(content)
	return c.render("bordered section", t)
}

// Notes draws a bordered "Notes" block.
func (c *Composer) Notes(text string) error {
	return c.BorderedSection("Notes", text)
}

// logo loads and registers an image. ok is false when there is nothing to draw.
func (c *Composer) logo(ref any) (name string, w, h float64, ok bool) {
	if c.ld == nil || ref == nil {
		return "", 0, 0, false
	}
	img, ok := c.ld.Load(ref)
	if !ok {
		return "", 0, 0, false
	}
	w, h, err := c.cv.RegisterImage(img.Name, img.Type, img.Data)
	if err != nil {
		c.log.Warn("logo rejected", "error", err)
		return "", 0, 0, false
	}
	return img.Name, w, h, true
}

// drawLogo places a loaded logo scaled to width at x, y and returns its
// height.
func (c *Composer) drawLogo(name string, w, h, width, x, y float64) float64 {
	height := width * h / w
	c.cv.DrawImage(name, x, y, width, height)
	return height
}
