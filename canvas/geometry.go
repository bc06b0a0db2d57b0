package canvas

// Rect is an axis-aligned box in points, origin at the top-left of the page.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge of r.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge of r.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Grid divides the content area into equal cells separated by a gutter.
type Grid struct {
	Bounds  Rect
	Columns int
	Rows    int
	Gutter  float64
}

// Grid defines a positioning grid over the content area of the current page.
func (c *Canvas) Grid(columns, rows int, gutter float64) Grid {
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	return Grid{Bounds: c.Bounds(), Columns: columns, Rows: rows, Gutter: gutter}
}

// ColumnWidth is the width of one grid column.
func (g Grid) ColumnWidth() float64 {
	return (g.Bounds.W - g.Gutter*float64(g.Columns-1)) / float64(g.Columns)
}

// RowHeight is the height of one grid row.
func (g Grid) RowHeight() float64 {
	return (g.Bounds.H - g.Gutter*float64(g.Rows-1)) / float64(g.Rows)
}

// Cell returns the box of the cell at row, col (zero-based).
func (g Grid) Cell(row, col int) Rect {
	cw, rh := g.ColumnWidth(), g.RowHeight()
	return Rect{
		X: g.Bounds.X + float64(col)*(cw+g.Gutter),
		Y: g.Bounds.Y + float64(row)*(rh+g.Gutter),
		W: cw,
		H: rh,
	}
}

// Span returns the box covering the cells from (r1, c1) to (r2, c2) inclusive.
// Columns past the last one are clamped to the grid.
func (g Grid) Span(r1, c1, r2, c2 int) Rect {
	if c2 >= g.Columns {
		c2 = g.Columns - 1
	}
	if r2 >= g.Rows {
		r2 = g.Rows - 1
	}
	a, b := g.Cell(r1, c1), g.Cell(r2, c2)
	return Rect{X: a.X, Y: a.Y, W: b.Right() - a.X, H: b.Bottom() - a.Y}
}
