package compose

import (
	"fmt"

	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/markup"
	"github.com/lvillar/receipts/table"
)

// Code is a barcode printed in the top-right corner of a letterhead.
type Code struct {
	Value     string
	Symbology canvas.Symbology
}

// Letterhead draws the logo, or the bold company name, on the left and the
// company block on the right. A code floats in the top-right corner and
// does not push content down.
func (c *Composer) Letterhead(company Party, logo any, code *Code) {
	b := c.cv.Bounds()
	top := c.cv.Y()
	half := b.W / 2

	left := top
	if name, w, h, ok := c.logo(logo); ok {
		left += c.drawLogo(name, w, h, 64, b.X, top)
	} else if company.Name != "" {
		c.cv.TextIn(b.X, half, company.Name, canvas.TextStyle{Size: 14, Bold: true})
		left = c.cv.Y()
	}

	blockW := half
	if code != nil && code.Value != "" {
		cw, ch := 64.0, 64.0
		if code.Symbology.Linear() {
			cw, ch = 160, 40
		}
		r := canvas.Rect{X: b.Right() - cw, Y: top, W: cw, H: ch}
		if err := c.cv.Barcode(code.Symbology, code.Value, r); err != nil {
			c.log.Warn("barcode skipped", "symbology", string(code.Symbology), "error", err)
		} else {
			blockW = max(half-cw-SectionGap, half/2)
		}
	}

	c.cv.SetY(top)
	c.cv.TextIn(b.X+half, blockW, company.AddressBlock(true), canvas.TextStyle{Align: canvas.AlignRight})
	c.cv.SetY(max(left, c.cv.Y()))
	c.Spacer(20)
}

// TitleWithRecord draws a bold title and, when record is set, the
// "Invoice <record>" line under it.
func (c *Composer) TitleWithRecord(title, record string) {
	c.cv.Text(title, canvas.TextStyle{Size: 16, Bold: true})
	c.Spacer(5)
	if record != "" {
		c.cv.Text("Invoice "+record, canvas.TextStyle{Size: 12})
	}
	c.Spacer(20)
}

// AddressSection draws a bold heading over an unbordered address.
func (c *Composer) AddressSection(title, address string) {
	c.Spacer(10)
	c.cv.Text(markup.Bold(title), canvas.TextStyle{Markup: true})
	c.Spacer(5)
	c.cv.Text(address, canvas.TextStyle{})
	c.Spacer(20)
}

// Item is one packing list row.
type Item struct {
	Description string
	Quantity    string
}

// ItemsListTable is the table behind ItemsList: a heading row ruled
// underneath and one unbordered row per item. The heading is drawn once,
// not repeated on later pages.
func (c *Composer) ItemsListTable(items []Item) *table.Table {
	w := c.width()
	t := table.New(c.cv).SetStyle(table.Borderless()).SetColumnWidths(w-80, 80)
	h := t.AddRow()
	h.AddCell(markup.Bold("Items"))
	h.AddCell(markup.Bold("Quantity")).SetAlign(canvas.AlignRight)
	t.SetRowBorders(0, table.Bottom)
	for _, it := range items {
		r := t.AddRow()
		r.AddCell(it.Description)
		r.AddCell(it.Quantity).SetAlign(canvas.AlignRight)
	}
	return t
}

// ItemsList draws the packing list items. Nothing is drawn without items.
func (c *Composer) ItemsList(items []Item) error {
	if len(items) == 0 {
		return nil
	}
	return c.render("items", c.ItemsListTable(items))
}

// TotalsTable is the table behind Totals: nine right-aligned columns so the
// labels line up under the line items.
func (c *Composer) TotalsTable(subtotal, total string) *table.Table {
	t := table.New(c.cv).SetStyle(table.Minimal()).SetWidth(c.width())
	t.AddRow().AddCells("", "", "", "", "", "", "", "Subtotal", subtotal)
	t.AddRow().AddCells("", "", "", "", "", "", "", markup.Bold("Total:"), markup.Bold(total))
	t.SetRowAlign(0, canvas.AlignRight)
	t.SetRowAlign(1, canvas.AlignRight)
	return t
}

// Totals draws the subtotal and bold total rows.
func (c *Composer) Totals(subtotal, total string) error {
	if err := c.TotalsTable(subtotal, total).Render(); err != nil {
		return fmt.Errorf("compose: totals: %w", err)
	}
	c.Spacer(20)
	return nil
}

// TradeDetails are the import/export fields of a commercial invoice.
type TradeDetails struct {
	ContentsType        string
	BLAWBNo             string
	FinalDestination    string
	ExportRoute         string
	Packages            string
	AESITN              string
	EEIPFC              string
	ExporterRef         string
	ImporterRef         string
	License             string
	Certificate         string
	NondeliveryAction   string
	Incoterm            string
	B13AOption          string
	B13ANumber          string
	ContentsExplanation string
	ImportOfRecord      string
}

// WithDefaults fills the fields that have a customary value.
func (t TradeDetails) WithDefaults() TradeDetails {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	def(&t.ContentsType, "MERCHANDISE")
	def(&t.Packages, "1")
	def(&t.NondeliveryAction, "RTS")
	def(&t.Incoterm, "DDU")
	def(&t.ImportOfRecord, "(if other than Recipient)")
	return t
}

// ImportExportTable is the table behind ImportExport: three header/value
// row pairs of five columns and a spanning explanation, with only an outer
// rectangle drawn.
func (c *Composer) ImportExportTable(td TradeDetails) *table.Table {
	td = td.WithDefaults()
	t := table.New(c.cv).SetStyle(table.Borderless()).SetWidth(c.width()).SetEqualColumns(5)

	boldRow(t.AddRow(), "Contents Type", "BOL / AWB No.", "Final Destination", "Export Route / Carrier", "No. of Packages")
	t.AddRow().AddCells(td.ContentsType, td.BLAWBNo, td.FinalDestination, td.ExportRoute, td.Packages)
	boldRow(t.AddRow(), "AES / ITN", "EEI / PFC", "Exporter Ref", "Importer Ref", "License")
	t.AddRow().AddCells(td.AESITN, td.EEIPFC, td.ExporterRef, td.ImporterRef, td.License)
	boldRow(t.AddRow(), "Certificate", "Nondelivery Action", "Incoterm", "B13A Option", "B13A Number")
	t.AddRow().AddCells(td.Certificate, td.NondeliveryAction, td.Incoterm, td.B13AOption, td.B13ANumber)
	t.AddRow().AddCell(markup.Bold("Contents Explanation")).SetColspan(5)
	t.AddRow().AddCell(td.ContentsExplanation).SetColspan(5)

	t.SetAllBorders(table.NoSides)
	t.SetCellBorders(0, 0, table.Top|table.Left)
	for col := 1; col < 4; col++ {
		t.SetCellBorders(0, col, table.Top)
	}
	t.SetCellBorders(0, 4, table.Top|table.Right)
	for row := 1; row <= 5; row++ {
		t.SetCellBorders(row, 0, table.Left)
		t.SetCellBorders(row, 4, table.Right)
	}
	t.SetCellBorders(6, 0, table.Left|table.Right)
	t.SetCellBorders(7, 0, table.Left|table.Right|table.Bottom)
	return t
}

// ImportExport draws the import/export details grid.
func (c *Composer) ImportExport(td TradeDetails) error {
	return c.render("import/export", c.ImportExportTable(td))
}

// TradeItem is one commercial invoice line.
type TradeItem struct {
	Description string
	Qty         string
	NetWeight   string
	TariffNo    string
	ECCN        string
	Origin      string
	Price       string
}

// TradeLineItemsTable is the table behind TradeLineItems: a spanning
// "List of Items" heading and column titles, data rows with side rules and a
// closing rule under the last row.
func (c *Composer) TradeLineItemsTable(items []TradeItem) *table.Table {
	t := table.New(c.cv).SetStyle(table.Borderless()).SetWidth(c.width())
	t.AddHeaderRow().AddCell(markup.Bold("List of Items")).SetColspan(7)
	boldRow(t.AddHeaderRow(), "Description", "Qty", "Net Weight", "Tariff No.", "ECCN", "Origin", "Price")
	for _, it := range items {
		t.AddRow().AddCells(it.Description, it.Qty, it.NetWeight, it.TariffNo, it.ECCN, it.Origin, it.Price)
	}

	t.SetAllBorders(table.NoSides)
	t.SetRowBorders(0, table.AllSides)
	t.SetRowBorders(1, table.Left|table.Right|table.Bottom)
	last := len(items) + 1
	for row := 2; row <= last; row++ {
		if row == last {
			t.SetRowBorders(row, table.Left|table.Right|table.Bottom)
		} else {
			t.SetRowBorders(row, table.Left|table.Right)
		}
	}
	return t
}

// TradeLineItems draws the commercial invoice lines. Nothing is drawn
// without items.
func (c *Composer) TradeLineItems(items []TradeItem) error {
	if len(items) == 0 {
		return nil
	}
	return c.render("trade line items", c.TradeLineItemsTable(items))
}

// OriginItem is one good listed on a certificate of origin.
type OriginItem struct {
	SKU             string
	HSCode          string
	OriginCriterion string
	CountryOfOrigin string
	Description     string
}

// OriginItemTable is the table behind OriginItem.
func (c *Composer) OriginItemTable(item OriginItem) *table.Table {
	t := table.New(c.cv).SetStyle(table.Bordered()).SetWidth(c.width())
	boldRow(t.AddRow(), "SKU", "HS Code", "Origin Criterion", "Country of Origin")
	t.AddRow().AddCells(item.SKU, item.HSCode, item.OriginCriterion, item.CountryOfOrigin)
	if item.Description != "" {
		t.AddRow().AddCell(markup.Bold("Description")).SetColspan(4)
		t.AddRow().AddCell(item.Description).SetColspan(4)
	}
	return t
}

// OriginItem draws one bordered item block.
func (c *Composer) OriginItem(item OriginItem) error {
	return c.render("origin item", c.OriginItemTable(item))
}
