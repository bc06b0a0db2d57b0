package table

import (
	"fmt"
)

// Cell represents a single cell in a table row.
type Cell struct {
	text    string
	colspan int
	style   *CellStyle
}

// Text returns the cell content as given.
func (c *Cell) Text() string { return c.text }

// Colspan returns the number of columns the cell covers.
func (c *Cell) Colspan() int { return c.colspan }

// SetColspan sets the number of columns this cell spans.
func (c *Cell) SetColspan(n int) *Cell {
	if n > 0 {
		c.colspan = n
	}
	return c
}

// SetStyle sets the style for this cell, overriding table/row defaults.
func (c *Cell) SetStyle(s CellStyle) *Cell {
	c.style = &s
	return c
}

func (c *Cell) ensureStyle() *CellStyle {
	if c.style == nil {
		c.style = &CellStyle{}
	}
	return c.style
}

// SetAlign sets the horizontal alignment for this cell.
func (c *Cell) SetAlign(align string) *Cell {
	c.ensureStyle().Align = align
	return c
}

// SetBorders sets the edges drawn around this cell. It wins over every
// table, row and cell rule.
func (c *Cell) SetBorders(s Sides) *Cell {
	c.ensureStyle().Borders = &s
	return c
}

// SetFillColor sets the background color for this cell.
func (c *Cell) SetFillColor(r, g, b int) *Cell {
	c.ensureStyle().FillColor = &RGBColor{R: r, G: g, B: b}
	return c
}

// SetBold sets the whole cell in the bold face.
func (c *Cell) SetBold() *Cell {
	c.ensureStyle().Bold = true
	return c
}

// Row represents a single row in a table.
type Row struct {
	cells    []*Cell
	style    *CellStyle
	isHeader bool
	minH     float64 // minimum row height
}

// AddCell adds a text cell to the row and returns the cell for chaining.
func (r *Row) AddCell(text string) *Cell {
	c := &Cell{text: text, colspan: 1}
	r.cells = append(r.cells, c)
	return c
}

// AddCellf adds a formatted text cell to the row.
func (r *Row) AddCellf(format string, args ...any) *Cell {
	return r.AddCell(fmt.Sprintf(format, args...))
}

// AddCells adds one cell per value.
func (r *Row) AddCells(texts ...string) *Row {
	for _, t := range texts {
		r.AddCell(t)
	}
	return r
}

// Cells returns the cells of the row.
func (r *Row) Cells() []*Cell { return r.cells }

// Span returns the number of columns the row covers.
func (r *Row) Span() int {
	n := 0
	for _, c := range r.cells {
		n += c.colspan
	}
	return n
}

// IsHeader reports whether the row repeats on each page.
func (r *Row) IsHeader() bool { return r.isHeader }

// SetStyle sets the style for all cells in this row.
func (r *Row) SetStyle(s CellStyle) *Row {
	r.style = &s
	return r
}

// SetMinHeight sets the minimum height for this row.
func (r *Row) SetMinHeight(h float64) *Row {
	r.minH = h
	return r
}
