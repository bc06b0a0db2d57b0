package receipts

import (
	"github.com/lvillar/receipts/compose"
)

// baseRequired are the fields every letterhead document needs.
var baseRequired = []string{"company", "company.name", "details", "recipient", "line_items"}

func init() {
	for kind, title := range map[Kind]string{
		KindReceipt:   "Receipt",
		KindInvoice:   "Invoice",
		KindStatement: "Statement",
	} {
		register(Plan{
			Kind:     kind,
			Title:    title,
			Required: baseRequired,
			Validate: requireFooterOrEmail(kind),
			Sections: []Section{
				{"header", header},
				{"details", details},
				{"ship to", shipTo("recipient")},
				{"line items", lineItems(compose.LineItemsOptions{})},
				{"footer", footer},
			},
		})
	}

	register(Plan{
		Kind:     KindCustomsDocument,
		Required: baseRequired,
		Validate: requireFooterOrEmail(KindCustomsDocument),
		Sections: []Section{
			{"title", titleBlock},
			{"details", details},
			{"ship to", shipTo("recipient")},
			{"line items", lineItems(compose.LineItemsOptions{})},
			{"footer", footer},
		},
	})
}

func header(c *Composition) error {
	return c.Composer.Header(partyFrom(c.Attrs.Map("company")), c.Title, c.Subtitle)
}

func titleBlock(c *Composition) error {
	c.Composer.TitleBlock(c.Title, c.Subtitle)
	return nil
}

func details(c *Composition) error {
	return c.Composer.Details(c.Attrs.Rows("details"))
}

func shipTo(key string) func(*Composition) error {
	return func(c *Composition) error {
		return c.Composer.ShipTo(lines(c.Attrs, key))
	}
}

func lineItems(opts compose.LineItemsOptions) func(*Composition) error {
	return func(c *Composition) error {
		return c.Composer.LineItems(c.Attrs.Rows("line_items"), opts)
	}
}

// footer prints the footer attribute, or the default message pointing at
// the company email.
func footer(c *Composition) error {
	msg := c.Attrs.String("footer")
	if !c.Attrs.Has("footer") {
		msg = compose.DefaultFooterMessage(c.Attrs.String("company.email"))
	}
	c.Composer.Footer(msg)
	return nil
}
