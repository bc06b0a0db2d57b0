package compose

import (
	"strings"

	"github.com/lvillar/receipts/canvas"
)

// Default certification statements.
const (
	CommercialInvoiceCertification = "I hereby certify this commercial invoice to be true and correct."
	OriginCertification            = "I certify that the goods described in this document qualify as originating and the information contained in this document is true and accurate. I assume responsibility for proving such representations and agree to maintain and present upon request, or to make available during a verification visit, documentation necessary to support this certification."
)

// signatureRule is the line signers write on.
var signatureRule = strings.Repeat("_", 40)

// Certification is the statement and signature closing a trade document.
type Certification struct {
	Text          string
	SignatureName string
	SignatureDate string
	Disclaimer    string  // printed by the overlay pass, never inline
	SpacingBefore float64 // extra space above the statement
}

// SignatureLine is the text printed under the rule: the name, followed by
// two spaces and the date when there is one.
func (c Certification) SignatureLine() string {
	if c.SignatureDate == "" {
		return c.SignatureName
	}
	return c.SignatureName + "  " + c.SignatureDate
}

// Certification draws the statement (cert.Text, else defaultText) at align,
// then the signature rule and signer when a name is given. The disclaimer is
// handed to the render state.
func (c *Composer) Certification(cert Certification, defaultText, align string) {
	if cert.SpacingBefore > 0 {
		c.Spacer(cert.SpacingBefore)
	}
	text := cert.Text
	if text == "" {
		text = defaultText
	}
	if text != "" {
		c.cv.Text(text, canvas.TextStyle{Align: align, Markup: true})
	}
	c.Spacer(20)

	if cert.SignatureName != "" {
		rule := canvas.TextStyle{Align: canvas.AlignRight}
		sig := canvas.TextStyle{Align: canvas.AlignRight, Bold: true, Size: 10}
		c.cv.EnsureSpace(c.cv.LineHeight(0) + 5 + c.cv.LineHeight(10))
		c.cv.Text(signatureRule, rule)
		c.Spacer(5)
		c.cv.Text(cert.SignatureLine(), sig)
		c.Spacer(10)
	}

	c.st.SetDisclaimer(cert.Disclaimer)
}
