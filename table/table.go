package table

import (
	"errors"
	"fmt"

	"github.com/lvillar/receipts/canvas"
)

// ErrColumnMismatch is returned by Render when a row covers more columns
// than the table has.
var ErrColumnMismatch = errors.New("table: row spans more columns than the table has")

// ColumnDef defines the properties of a table column.
type ColumnDef struct {
	Width float64 // Fixed width. 0 means auto/fill.
	Align string  // Default alignment for this column ("L", "C", "R").
}

type cellKey struct{ row, col int }

// Table is a high-level table builder drawing on a canvas.
type Table struct {
	cv         *canvas.Canvas
	columns    []ColumnDef
	equal      int
	rows       []*Row
	style      Style
	x, y       float64 // starting position (0,0 means current)
	tableWidth float64 // total table width (0 means content width)

	allBorders  *Sides
	rowBorders  map[int]Sides
	cellBorders map[cellKey]Sides
	rowAlign    map[int]string
}

// New creates a bordered table drawing on cv.
func New(cv *canvas.Canvas) *Table {
	return &Table{
		cv:          cv,
		style:       Bordered(),
		rowBorders:  make(map[int]Sides),
		cellBorders: make(map[cellKey]Sides),
		rowAlign:    make(map[int]string),
	}
}

// SetColumnWidths sets column widths in points. A width of 0 means the column
// takes an equal share of the remaining space.
func (t *Table) SetColumnWidths(widths ...float64) *Table {
	t.columns = make([]ColumnDef, len(widths))
	for i, w := range widths {
		t.columns[i] = ColumnDef{Width: w}
	}
	t.equal = 0
	return t
}

// SetEqualColumns splits the table width into n equal columns.
func (t *Table) SetEqualColumns(n int) *Table {
	t.columns = nil
	t.equal = n
	return t
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s Style) *Table {
	t.style = s
	return t
}

// Style returns the table-wide style.
func (t *Table) Style() Style { return t.style }

// SetPosition sets the starting position for the table.
// If not called, the table starts at the left margin and the current cursor.
func (t *Table) SetPosition(x, y float64) *Table {
	t.x = x
	t.y = y
	return t
}

// SetWidth sets the total table width. If not called, automatic columns use
// their natural width up to the content width.
func (t *Table) SetWidth(w float64) *Table {
	t.tableWidth = w
	return t
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a new header row and returns it for chaining.
// Header rows are repeated at the top of each new page.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	// Insert header row before data rows
	insertIdx := 0
	for i, existing := range t.rows {
		if !existing.isHeader {
			insertIdx = i
			break
		}
		insertIdx = i + 1
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[insertIdx+1:], t.rows[insertIdx:])
	t.rows[insertIdx] = r
	return r
}

// Rows returns the rows in drawing order.
func (t *Table) Rows() []*Row { return t.rows }

// SetAllBorders replaces the preset edges of every cell.
func (t *Table) SetAllBorders(s Sides) *Table {
	t.allBorders = &s
	return t
}

// SetRowBorders sets the edges of every cell in a row.
func (t *Table) SetRowBorders(row int, s Sides) *Table {
	t.rowBorders[row] = s
	return t
}

// SetCellBorders sets the edges of the cell starting at column col.
func (t *Table) SetCellBorders(row, col int, s Sides) *Table {
	t.cellBorders[cellKey{row, col}] = s
	return t
}

// SetRowAlign sets the alignment of every cell in a row.
func (t *Table) SetRowAlign(row int, align string) *Table {
	t.rowAlign[row] = align
	return t
}

// cellAt returns the cell of row that starts at column col.
func (t *Table) cellAt(row, col int) *Cell {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	start := 0
	for _, c := range t.rows[row].cells {
		if start == col {
			return c
		}
		start += c.colspan
	}
	return nil
}

// ResolvedBorders returns the edges drawn for the cell starting at row, col:
// cell setting, then cell rule, then row rule, then table rule, then preset.
func (t *Table) ResolvedBorders(row, col int) Sides {
	if c := t.cellAt(row, col); c != nil && c.style != nil && c.style.Borders != nil {
		return *c.style.Borders
	}
	if s, ok := t.cellBorders[cellKey{row, col}]; ok {
		return s
	}
	if s, ok := t.rowBorders[row]; ok {
		return s
	}
	if row >= 0 && row < len(t.rows) {
		if rs := t.rows[row].style; rs != nil && rs.Borders != nil {
			return *rs.Borders
		}
	}
	if t.allBorders != nil {
		return *t.allBorders
	}
	return t.style.Borders
}

// ResolvedAlign returns the horizontal alignment of the cell starting at
// row, col. Empty means left.
func (t *Table) ResolvedAlign(row, col int) string {
	c := t.cellAt(row, col)
	if c == nil {
		return ""
	}
	return t.cellStyle(row, col, c).Align
}

// Render draws the table at the cursor and moves the cursor below it.
func (t *Table) Render() error {
	if err := t.cv.Err(); err != nil {
		return err
	}
	if len(t.rows) == 0 {
		return nil
	}

	widths, err := t.calculateWidths()
	if err != nil {
		return err
	}

	b := t.cv.Bounds()
	startX := t.x
	if startX == 0 {
		startX = b.X
	}
	if t.y != 0 {
		t.cv.SetY(t.y)
	}

	layouts := make([]rowLayout, len(t.rows))
	for i, r := range t.rows {
		layouts[i] = t.layoutRow(i, r, widths)
	}

	var headers []int
	for i, r := range t.rows {
		if r.isHeader {
			headers = append(headers, i)
		}
	}

	// Keep the header block together with the first body row.
	first := 0.0
	for _, i := range headers {
		first += layouts[i].height
	}
	if len(headers) < len(t.rows) {
		first += layouts[len(headers)].height
	}
	t.cv.EnsureSpace(first)

	for i, r := range t.rows {
		if !r.isHeader && t.cv.EnsureSpace(layouts[i].height) {
			for _, h := range headers {
				t.drawRow(h, layouts[h], startX)
			}
		}
		t.drawRow(i, layouts[i], startX)
	}

	return t.cv.Err()
}

// calculateWidths computes final column widths based on definitions and available space.
func (t *Table) calculateWidths() ([]float64, error) {
	numCols := len(t.columns)
	if t.equal > 0 {
		numCols = t.equal
	}
	auto := numCols == 0
	if auto {
		for _, r := range t.rows {
			if n := r.Span(); n > numCols {
				numCols = n
			}
		}
	}
	for i, r := range t.rows {
		if r.Span() > numCols {
			return nil, fmt.Errorf("table: row %d has %d columns, table has %d: %w", i, r.Span(), numCols, ErrColumnMismatch)
		}
	}
	if numCols == 0 {
		return nil, nil
	}

	avail := t.tableWidth
	if avail == 0 {
		avail = t.cv.Bounds().W
	}
	widths := make([]float64, numCols)

	switch {
	case t.equal > 0:
		for i := range widths {
			widths[i] = avail / float64(numCols)
		}
	case auto:
		natural := t.naturalWidths(numCols)
		var sum float64
		for _, w := range natural {
			sum += w
		}
		scale := 1.0
		if sum > 0 && (t.tableWidth > 0 || sum > avail) {
			scale = avail / sum
		}
		for i, w := range natural {
			if sum == 0 {
				widths[i] = avail / float64(numCols)
				continue
			}
			widths[i] = w * scale
		}
	default:
		fixedTotal := 0.0
		autoCount := 0
		for i, col := range t.columns {
			if col.Width > 0 {
				widths[i] = col.Width
				fixedTotal += col.Width
			} else {
				autoCount++
			}
		}
		// Distribute remaining space to auto columns
		if autoCount > 0 {
			remaining := avail - fixedTotal
			if remaining < 0 {
				remaining = 0
			}
			for i, col := range t.columns {
				if col.Width == 0 {
					widths[i] = remaining / float64(autoCount)
				}
			}
		}
	}
	return widths, nil
}

// naturalWidths measures the single-line width of every column. Spanning
// cells widen the columns they cover evenly when they do not fit.
func (t *Table) naturalWidths(numCols int) []float64 {
	natural := make([]float64, numCols)
	type spanned struct {
		col, n int
		w      float64
	}
	var spans []spanned
	for ri, r := range t.rows {
		col := 0
		for _, c := range r.cells {
			pad := t.cellStyle(ri, col, c).padding(t.style)
			w := t.cv.StringWidth(c.text, t.textStyle(ri, col, c)) + pad.Left + pad.Right
			if c.colspan == 1 {
				if w > natural[col] {
					natural[col] = w
				}
			} else {
				spans = append(spans, spanned{col, c.colspan, w})
			}
			col += c.colspan
		}
	}
	for _, s := range spans {
		var have float64
		for i := s.col; i < s.col+s.n; i++ {
			have += natural[i]
		}
		if have < s.w {
			extra := (s.w - have) / float64(s.n)
			for i := s.col; i < s.col+s.n; i++ {
				natural[i] += extra
			}
		}
	}
	return natural
}

type cellLayout struct {
	col   int
	w     float64
	style CellStyle
	para  *canvas.Paragraph
}

type rowLayout struct {
	cells  []cellLayout
	height float64
}

func (s CellStyle) padding(base Style) Padding {
	if s.Padding != nil {
		return *s.Padding
	}
	return base.Padding
}

// cellStyle merges table, row and cell level settings.
func (t *Table) cellStyle(ri, col int, c *Cell) CellStyle {
	res := CellStyle{Align: t.style.Align}
	if col < len(t.columns) && t.columns[col].Align != "" {
		res.Align = t.columns[col].Align
	}
	row := t.rows[ri]
	if row.style != nil {
		mergeStyle(&res, row.style)
	}
	if a, ok := t.rowAlign[ri]; ok {
		res.Align = a
	}
	if c.style != nil {
		mergeStyle(&res, c.style)
	}
	return res
}

func (t *Table) textStyle(ri, col int, c *Cell) canvas.TextStyle {
	cs := t.cellStyle(ri, col, c)
	return canvas.TextStyle{
		Size:   t.style.FontSize,
		Bold:   cs.Bold,
		Color:  cs.TextColor,
		Align:  cs.Align,
		Markup: t.style.Markup,
	}
}

// layoutRow wraps every cell of a row and computes the row height.
func (t *Table) layoutRow(ri int, r *Row, widths []float64) rowLayout {
	var rl rowLayout
	if r.minH > 0 {
		rl.height = r.minH
	}
	col := 0
	addCell := func(c *Cell) {
		w := 0.0
		for j := col; j < col+c.colspan && j < len(widths); j++ {
			w += widths[j]
		}
		cs := t.cellStyle(ri, col, c)
		pad := cs.padding(t.style)
		ts := t.textStyle(ri, col, c)
		p := t.cv.Layout(c.text, ts, w-pad.Left-pad.Right)
		h := p.Height()
		if p.Lines() == 0 {
			h = t.cv.LineHeight(ts.Size)
		}
		if h += pad.Top + pad.Bottom; h > rl.height {
			rl.height = h
		}
		rl.cells = append(rl.cells, cellLayout{col: col, w: w, style: cs, para: p})
		col += c.colspan
	}
	for _, c := range r.cells {
		addCell(c)
	}
	// Pad short rows with empty cells so borders stay continuous.
	for col < len(widths) {
		addCell(&Cell{colspan: 1})
	}
	return rl
}

// drawRow draws a laid out row at the cursor and moves below it.
func (t *Table) drawRow(ri int, rl rowLayout, startX float64) {
	y := t.cv.Y()
	x := startX
	for _, cl := range rl.cells {
		box := canvas.Rect{X: x, Y: y, W: cl.w, H: rl.height}
		if cl.style.FillColor != nil {
			t.cv.FillRect(box, *cl.style.FillColor)
		}
		pad := cl.style.padding(t.style)
		t.cv.DrawParagraph(cl.para, box.X+pad.Left, box.Y+pad.Top)
		t.drawBorders(box, t.ResolvedBorders(ri, cl.col))
		x += cl.w
	}
	t.cv.SetY(y + rl.height)
}

func (t *Table) drawBorders(r canvas.Rect, s Sides) {
	if s == NoSides {
		return
	}
	width := t.style.BorderWidth
	if width <= 0 {
		width = 0.5
	}
	color := t.style.BorderColor
	if s == AllSides {
		t.cv.StrokeRect(r, color, width)
		return
	}
	if s.Has(Top) {
		t.cv.Line(r.X, r.Y, r.Right(), r.Y, color, width)
	}
	if s.Has(Right) {
		t.cv.Line(r.Right(), r.Y, r.Right(), r.Bottom(), color, width)
	}
	if s.Has(Bottom) {
		t.cv.Line(r.X, r.Bottom(), r.Right(), r.Bottom(), color, width)
	}
	if s.Has(Left) {
		t.cv.Line(r.X, r.Y, r.X, r.Bottom(), color, width)
	}
}
