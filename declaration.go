package receipts

import "github.com/lvillar/receipts/compose"

func init() {
	register(Plan{
		Kind:     KindDeclaration,
		Title:    "Customs Document",
		Required: []string{"details", "recipients", "line_items", "footer"},
		Sections: []Section{
			{"title", titleBlock},
			{"details", details},
			{"ship to", shipTo("recipients")},
			{"line items", lineItems(compose.LineItemsOptions{RightAlignLast: true})},
			{"sub line items", subLineItems},
			{"footer", footer},
		},
		Frame: true,
	})
}

// subLineItems draws the optional totals block under the line items.
func subLineItems(c *Composition) error {
	rows := c.Attrs.Rows("sub_line_items")
	if len(rows) == 0 {
		return nil
	}
	return c.Composer.SubLineItems(rows)
}
