package receipts

import (
	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/compose"
	"github.com/lvillar/receipts/overlay"
)

// Composition is what a section sees while a document is composed.
type Composition struct {
	Attrs    Attrs
	Composer *compose.Composer
	Title    string
	Subtitle string
}

// Section is one named step of a document plan.
type Section struct {
	Name string
	Run  func(*Composition) error
}

// Plan describes how one document kind is composed: what it needs, the
// sections in order and what the overlay pass stamps on every page.
type Plan struct {
	Kind     Kind
	Title    string
	Subtitle string
	Required []string
	Validate func(Attrs) error
	Sections []Section

	PageNumbers     bool
	Frame           bool
	DisclaimerInset float64 // width kept free beside the page label
	DisclaimerAlign string
}

var plans = map[Kind]Plan{}

func register(p Plan) {
	plans[p.Kind] = p
}

// PlanFor returns the plan of kind.
func PlanFor(kind Kind) (Plan, bool) {
	p, ok := plans[kind]
	return p, ok
}

// SectionNames lists the sections in drawing order.
func (p Plan) SectionNames() []string {
	names := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		names[i] = s.Name
	}
	return names
}

// Check reports the first missing required field, then runs Validate.
func (p Plan) Check(a Attrs) error {
	for _, field := range p.Required {
		if !a.Has(field) {
			return &FieldError{Kind: p.Kind, Field: field}
		}
	}
	if p.Validate != nil {
		return p.Validate(a)
	}
	return nil
}

func (p Plan) layout() overlay.Layout {
	l := overlay.DefaultLayout()
	l.DisclaimerInset = p.DisclaimerInset
	if p.DisclaimerAlign != "" {
		l.DisclaimerAlign = p.DisclaimerAlign
	}
	return l
}

// run draws every section and then stamps the produced pages.
func (p Plan) run(comp *Composition) error {
	cv := comp.Composer.Canvas()
	for _, s := range p.Sections {
		if err := s.Run(comp); err != nil {
			return newDocumentError(s.Name, err)
		}
		if err := cv.Err(); err != nil {
			return newDocumentError(s.Name, err)
		}
	}
	stamps := overlay.Plan(cv.PageCount(), comp.Composer.State().Disclaimer(), p.PageNumbers, p.Frame)
	if err := overlay.Apply(cv, stamps, p.layout()); err != nil {
		return newDocumentError("overlay", err)
	}
	return nil
}

// requireFooterOrEmail is the base template rule: without a footer the
// default message needs the company email.
func requireFooterOrEmail(kind Kind) func(Attrs) error {
	return func(a Attrs) error {
		if a.Has("footer") || a.Has("company.email") {
			return nil
		}
		return &FieldError{Kind: kind, Field: "company.email"}
	}
}

func partyFrom(a Attrs) compose.Party {
	return compose.Party{
		Name:         a.String("name"),
		Address:      a.String("address"),
		CityStateZip: a.String("city_state_zip"),
		Country:      a.String("country"),
		Phone:        a.String("phone"),
		Email:        a.String("email"),
		TaxID:        a.String("tax_id"),
		EORI:         a.String("eori"),
		Logo:         a.Value("logo"),
	}
}

// lines flattens a recipient given as text, a list of lines or an address
// mapping.
func lines(a Attrs, path string) []string {
	if m, ok := asAttrs(a.Value(path)); ok {
		if block := partyFrom(m).RecipientBlock(); block != "" {
			return []string{block}
		}
		return nil
	}
	return a.Lines(path)
}

func certificationFrom(a Attrs) compose.Certification {
	return compose.Certification{
		Text:          a.String("text"),
		SignatureName: a.String("signature_name"),
		SignatureDate: a.String("signature_date"),
		Disclaimer:    a.String("disclaimer"),
		SpacingBefore: a.Float("spacing_before"),
	}
}

func fontFrom(a Attrs) canvas.FontConfig {
	return canvas.FontConfig{
		Normal: canvas.FontSource{Path: a.String("normal")},
		Bold:   canvas.FontSource{Path: a.String("bold")},
	}
}
