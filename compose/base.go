package compose

import (
	"fmt"
	"strings"

	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/markup"
	"github.com/lvillar/receipts/table"
)

// Grid used to place the letterhead.
const (
	GridColumns = 10
	GridRows    = 10
	GridGutter  = 10
)

// LogoWidth is the width logos are drawn at.
const LogoWidth = 48

var (
	nameColor     = markup.RGB{R: 0x4b, G: 0x55, B: 0x63}
	lineItemColor = table.RGBColor{R: 0xee, G: 0xee, B: 0xee}
)

// DefaultFooterMessage is the footer used when a document supplies none.
func DefaultFooterMessage(email string) string {
	return "For questions, contact us anytime at <color rgb='326d92'><link href='mailto:" + email +
		"?subject=Question about my receipt'><b>" + email + "</b></link></color>."
}

// Header draws the letterhead of the base documents: the logo, or the
// company name when there is none, in the first grid cell, the billing block
// across the rest of the first grid row, then the title and subtitle.
func (c *Composer) Header(company Party, title, subtitle string) error {
	g := c.cv.Grid(GridColumns, GridRows, GridGutter)
	cell := g.Cell(0, 0)
	bottom := cell.Bottom()

	if name, w, h, ok := c.logo(company.Logo); ok {
		if lb := cell.Y + c.drawLogo(name, w, h, LogoWidth, cell.X, cell.Y); lb > bottom {
			bottom = lb
		}
	} else {
		c.cv.SetY(cell.Y)
		c.cv.TextIn(cell.X, cell.W, company.Name, canvas.TextStyle{Size: 16, Align: canvas.AlignRight, Color: &nameColor})
		bottom = max(bottom, c.cv.Y())
	}

	span := g.Span(0, 1, 0, GridColumns-1)
	t := table.New(c.cv).SetStyle(table.Borderless()).
		SetPosition(span.X, span.Y).SetWidth(span.W).SetEqualColumns(1)
	t.AddRow().AddCell(company.billingBlock()).SetStyle(table.CellStyle{
		Padding: &table.Padding{Top: 0, Right: 12, Bottom: 2, Left: 12},
	})
	if err := t.Render(); err != nil {
		return fmt.Errorf("compose: header: %w", err)
	}
	c.cv.SetY(max(bottom, c.cv.Y()))

	c.TitleBlock(title, subtitle)
	return nil
}

// TitleBlock draws the plain 16pt title and the 12pt subtitle.
func (c *Composer) TitleBlock(title, subtitle string) {
	if title != "" {
		c.cv.Text(title, canvas.TextStyle{Size: 16, Leading: 4})
	}
	if subtitle != "" {
		c.cv.Text(subtitle, canvas.TextStyle{Size: 12})
	}
}

// DetailsTable is the table behind Details.
func (c *Composer) DetailsTable(rows [][]string) *table.Table {
	t := table.New(c.cv).SetStyle(table.Borderless())
	pad := table.Padding{Top: 0, Right: 48, Bottom: 2, Left: 0}
	for _, r := range rows {
		row := t.AddRow().SetStyle(table.CellStyle{Padding: &pad})
		row.AddCells(r...)
	}
	return t
}

// Details draws the borderless key/value block under the title.
func (c *Composer) Details(rows [][]string) error {
	c.Spacer(16)
	if len(rows) == 0 {
		return nil
	}
	if err := c.DetailsTable(rows).Render(); err != nil {
		return fmt.Errorf("compose: details: %w", err)
	}
	return nil
}

// ShipTo draws the "Ship to" heading and the recipient lines.
func (c *Composer) ShipTo(lines []string) error {
	c.Spacer(16)
	c.cv.Text("Ship to", canvas.TextStyle{Bold: true, Leading: 2})
	t := table.New(c.cv).SetStyle(table.Borderless()).SetEqualColumns(1)
	t.AddRow().AddCell(strings.Join(lines, "\n")).SetStyle(table.CellStyle{
		Padding: &table.Padding{Top: 0, Right: 12, Bottom: 2, Left: 0},
	})
	if err := t.Render(); err != nil {
		return fmt.Errorf("compose: ship to: %w", err)
	}
	return nil
}

// LineItemsOptions tunes LineItems.
type LineItemsOptions struct {
	RightAlignLast bool // right-align the last column
}

// LineItemsTable is the table behind LineItems: 300pt wide, a light rule
// under every row but the last.
func (c *Composer) LineItemsTable(rows [][]string, opts LineItemsOptions) *table.Table {
	style := table.Borderless()
	style.Padding = table.UniformPadding(6)
	style.BorderColor = lineItemColor
	t := table.New(c.cv).SetStyle(style).SetWidth(300)

	for i, r := range rows {
		row := t.AddRow().AddCells(r...)
		if i < len(rows)-1 || len(rows) == 1 {
			t.SetRowBorders(i, table.Bottom)
		}
		if opts.RightAlignLast && len(r) > 0 {
			row.Cells()[len(r)-1].SetAlign(canvas.AlignRight)
		}
	}
	return t
}

// LineItems draws the line items table.
func (c *Composer) LineItems(rows [][]string, opts LineItemsOptions) error {
	c.Spacer(16)
	if len(rows) == 0 {
		return nil
	}
	if err := c.LineItemsTable(rows, opts).Render(); err != nil {
		return fmt.Errorf("compose: line items: %w", err)
	}
	return nil
}

// SubLineItems draws secondary rows under the line items, borderless with
// the last column right-aligned.
func (c *Composer) SubLineItems(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	c.Spacer(SectionGap)
	t := c.LineItemsTable(rows, LineItemsOptions{RightAlignLast: true})
	for i := range rows {
		t.SetRowBorders(i, table.NoSides)
	}
	if err := t.Render(); err != nil {
		return fmt.Errorf("compose: sub line items: %w", err)
	}
	return nil
}

// Footer draws the closing message, which may carry markup.
func (c *Composer) Footer(message string) {
	c.Spacer(30)
	c.cv.Text(message, canvas.TextStyle{Markup: true})
}
