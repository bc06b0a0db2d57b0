package receipts

import (
	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/compose"
)

// labelInset keeps the disclaimer clear of the page label.
const labelInset = 110

func init() {
	register(Plan{
		Kind:     KindCommercialInvoice,
		Title:    "Commercial Invoice",
		Required: []string{"company"},
		Sections: []Section{
			{"title", plainTitle},
			{"invoice details", invoiceDetails},
			{"parties", parties},
			{"import/export", importExport},
			{"notes", notes},
			{"line items", tradeLineItems},
			{"totals", totals},
			{"certification", certification(compose.CommercialInvoiceCertification, canvas.AlignCenter)},
		},
		PageNumbers:     true,
		DisclaimerInset: labelInset,
		DisclaimerAlign: canvas.AlignLeft,
	})
}

func plainTitle(c *Composition) error {
	c.Composer.Title(c.Title, canvas.AlignLeft)
	return nil
}

func invoiceDetails(c *Composition) error {
	d := c.Attrs.Map("invoice_details")
	return c.Composer.Columns(
		[]string{"Date", "Invoice No.", "Customer PO No.", "Tracking Number"},
		[][]string{{d.String("date"), d.String("invoice_no"), d.String("customer_po"), d.String("tracking_number")}},
	)
}

func parties(c *Composition) error {
	return c.Composer.EqualColumns(
		[]string{"Shipper/Exporter", "Recipient/Ship To", "Importer of Record"},
		[][]string{{
			partyFrom(c.Attrs.Map("company")).CompanyBlock(),
			partyFrom(c.Attrs.Map("recipient")).RecipientBlock(),
			tradeDetails(c.Attrs).WithDefaults().ImportOfRecord,
		}},
	)
}

func tradeDetails(a Attrs) compose.TradeDetails {
	td := a.Map("trade_details")
	return compose.TradeDetails{
		ContentsType:        td.String("contents_type"),
		BLAWBNo:             td.String("bl_awb_no"),
		FinalDestination:    td.String("final_destination"),
		ExportRoute:         td.String("export_route"),
		Packages:            td.String("packages"),
		AESITN:              td.String("aes_itn"),
		EEIPFC:              td.String("eei_pfc"),
		ExporterRef:         td.String("exporter_ref"),
		ImporterRef:         td.String("importer_ref"),
		License:             td.String("license"),
		Certificate:         td.String("certificate"),
		NondeliveryAction:   td.String("nondelivery_action"),
		Incoterm:            td.String("incoterm"),
		B13AOption:          td.String("b13a_option"),
		B13ANumber:          td.String("b13a_number"),
		ContentsExplanation: td.String("contents_explanation"),
		ImportOfRecord:      td.String("import_of_record"),
	}
}

func importExport(c *Composition) error {
	return c.Composer.ImportExport(tradeDetails(c.Attrs))
}

func notes(c *Composition) error {
	text := c.Attrs.String("notes")
	if text == "" {
		return nil
	}
	return c.Composer.Notes(text)
}

func tradeLineItems(c *Composition) error {
	var items []compose.TradeItem
	for _, it := range c.Attrs.Maps("line_items") {
		items = append(items, compose.TradeItem{
			Description: it.String("description"),
			Qty:         it.String("qty"),
			NetWeight:   it.String("net_weight"),
			TariffNo:    it.String("tariff_no"),
			ECCN:        it.String("eccn"),
			Origin:      it.String("origin"),
			Price:       it.String("price"),
		})
	}
	return c.Composer.TradeLineItems(items)
}

// totals always draws both rows; missing values leave them blank.
func totals(c *Composition) error {
	t := c.Attrs.Map("totals")
	return c.Composer.Totals(t.String("subtotal"), t.String("total"))
}

func certification(defaultText, align string) func(*Composition) error {
	return func(c *Composition) error {
		c.Composer.Certification(certificationFrom(c.Attrs.Map("certification")), defaultText, align)
		return nil
	}
}
