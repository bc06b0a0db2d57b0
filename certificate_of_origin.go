package receipts

import (
	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/compose"
)

// originSpacing separates the last item from the certification.
const originSpacing = 20

func init() {
	register(Plan{
		Kind:  KindCertificateOfOrigin,
		Title: "Certificate of Origin",
		Sections: []Section{
			{"title", plainTitle},
			{"certifier", certifier},
			{"exporter and producer", exporterProducer},
			{"items", originItems},
			{"certification", originCertification},
		},
		PageNumbers:     true,
		DisclaimerAlign: canvas.AlignJustify,
	})
}

func certifier(c *Composition) error {
	return c.Composer.TwoColumn(
		"Certifier", c.Attrs.String("certifier.certifier_type"),
		"Blanket Period", c.Attrs.String("blanket_period"),
	)
}

func exporterProducer(c *Composition) error {
	return c.Composer.TwoColumn(
		"Exporter Details", partyFrom(c.Attrs.Map("exporter_details")).CompanyBlock(),
		"Producer Details", partyFrom(c.Attrs.Map("producer_details")).CompanyBlock(),
	)
}

func originItems(c *Composition) error {
	for _, it := range c.Attrs.Maps("items") {
		err := c.Composer.OriginItem(compose.OriginItem{
			SKU:             it.String("sku"),
			HSCode:          it.String("hs_code"),
			OriginCriterion: it.String("origin_criterion"),
			CountryOfOrigin: it.String("country_of_origin"),
			Description:     it.String("description"),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func originCertification(c *Composition) error {
	cert := certificationFrom(c.Attrs.Map("certification"))
	if cert.SpacingBefore == 0 {
		cert.SpacingBefore = originSpacing
	}
	c.Composer.Certification(cert, compose.OriginCertification, canvas.AlignJustify)
	return nil
}
