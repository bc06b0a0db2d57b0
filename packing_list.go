package receipts

import (
	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/compose"
)

func init() {
	register(Plan{
		Kind:  KindPackingList,
		Title: "Packing List",
		Sections: []Section{
			{"letterhead", letterhead},
			{"title", recordTitle},
			{"shipping details", shippingDetails},
			{"shipping address", shippingAddress},
			{"items", packedItems},
		},
	})
}

func letterhead(c *Composition) error {
	company := c.Attrs.Map("company")
	logo := c.Attrs.Value("logo")
	if logo == nil {
		logo = company.Value("logo")
	}
	c.Composer.Letterhead(partyFrom(company), logo, codeFrom(c))
	return nil
}

// codeFrom reads qr_code: plain text becomes a QR code, a mapping may pick
// another symbology. An unknown symbology drops the code.
func codeFrom(c *Composition) *compose.Code {
	v := c.Attrs.Value("qr_code")
	if s := toString(v); s != "" {
		return &compose.Code{Value: s, Symbology: canvas.QR}
	}
	m, ok := asAttrs(v)
	if !ok {
		return nil
	}
	value := m.String("value")
	if value == "" {
		return nil
	}
	sym, ok := canvas.ParseSymbology(m.String("symbology"))
	if !ok {
		c.Composer.Canvas().Logger().Warn("unknown barcode symbology, code skipped",
			"symbology", m.String("symbology"))
		return nil
	}
	return &compose.Code{Value: value, Symbology: sym}
}

func recordTitle(c *Composition) error {
	c.Composer.TitleWithRecord(c.Title, c.Attrs.String("record_number"))
	return nil
}

func shippingDetails(c *Composition) error {
	sd := c.Attrs.Map("shipping_details")
	return c.Composer.Columns(
		[]string{"Order date", "Shipping method", "Dimensions", "Weight"},
		[][]string{{sd.String("order_date"), sd.String("shipping_method"), sd.String("dimensions"), sd.String("weight")}},
	)
}

func shippingAddress(c *Composition) error {
	addr := partyFrom(c.Attrs.Map("shipping_address"))
	c.Composer.AddressSection("Shipping Address", addr.AddressBlock(false))
	return nil
}

func packedItems(c *Composition) error {
	var items []compose.Item
	for _, it := range c.Attrs.Maps("items") {
		items = append(items, compose.Item{
			Description: it.String("description"),
			Quantity:    it.String("quantity"),
		})
	}
	return c.Composer.ItemsList(items)
}
