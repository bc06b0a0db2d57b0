// Package receipts composes business documents (receipts, invoices,
// statements, packing lists, commercial invoices, certificates of origin,
// customs documents and declarations) from an attribute bag and renders
// them to PDF.
//
// Each kind has a fixed section order. Callers supply data, never
// geometry:
//
//	doc, err := receipts.NewInvoice(receipts.Attrs{
//		"company":    map[string]any{"name": "Example Co", "email": "billing@example.com"},
//		"details":    [][]string{{"Invoice #", "42"}},
//		"recipient":  []string{"Jane Smith", "1 Main St"},
//		"line_items": [][]string{{"Item", "Qty"}, {"Widget", "2"}},
//	})
//	if err != nil {
//		return err
//	}
//	return doc.RenderToPath("invoice.pdf")
package receipts

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/lvillar/receipts/canvas"
	"github.com/lvillar/receipts/compose"
	"github.com/lvillar/receipts/loader"
)

const creator = "receipts"

// Document is one composed document. It is not safe for concurrent use.
type Document struct {
	kind     Kind
	plan     Plan
	cfg      documentConfig
	cv       *canvas.Canvas
	comp     *compose.Composer
	log      *slog.Logger
	composed bool

	rendered bool
	out      []byte
	outErr   error
}

// New creates a document of kind from attrs. The page_size and font keys
// only set up the page. A bag with nothing else yields a document
// with one blank page and no content; Generate or Canvas can fill it later.
// A missing required field fails before anything is drawn.
func New(kind Kind, attrs Attrs, opts ...Option) (*Document, error) {
	plan, ok := PlanFor(kind)
	if !ok {
		return nil, newDocumentError("New", fmt.Errorf("%w: %v", ErrUnknownKind, kind))
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, newDocumentError("New", err)
	}
	if size := attrs.String("page_size"); size != "" {
		cfg.pageSize = size
	}
	if attrs.Has("font") {
		cfg.font = fontFrom(attrs.Map("font"))
	}
	content := contentOf(attrs)
	if len(content) > 0 {
		if err := plan.Check(content); err != nil {
			return nil, err
		}
	}

	cv, err := canvas.New(canvas.Config{
		PageSize:     cfg.pageSize,
		Orientation:  cfg.orientation,
		FontSize:     cfg.fontSize,
		Font:         cfg.font,
		Compress:     cfg.compress,
		CreationDate: cfg.creationDate,
		Stationery:   cfg.stationery,
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, newDocumentError("New", err)
	}
	cv.SetCreator(creator)

	ld := loader.New(loader.WithHTTPClient(cfg.client), loader.WithLogger(cfg.logger))
	d := &Document{
		kind: kind,
		plan: plan,
		cfg:  cfg,
		cv:   cv,
		comp: compose.New(cv, ld, nil),
		log:  cfg.logger.With("kind", kind.String()),
	}
	if len(content) == 0 {
		d.log.Debug("no content attributes, document left blank")
		return d, nil
	}
	if err := d.generate(content); err != nil {
		return nil, err
	}
	return d, nil
}

// NewReceipt creates a receipt.
func NewReceipt(attrs Attrs, opts ...Option) (*Document, error) {
	return New(KindReceipt, attrs, opts...)
}

// NewInvoice creates an invoice.
func NewInvoice(attrs Attrs, opts ...Option) (*Document, error) {
	return New(KindInvoice, attrs, opts...)
}

// NewStatement creates a statement.
func NewStatement(attrs Attrs, opts ...Option) (*Document, error) {
	return New(KindStatement, attrs, opts...)
}

// NewCustomsDocument creates a generic customs document.
func NewCustomsDocument(attrs Attrs, opts ...Option) (*Document, error) {
	return New(KindCustomsDocument, attrs, opts...)
}

// NewDeclaration creates a customs declaration.
func NewDeclaration(attrs Attrs, opts ...Option) (*Document, error) {
	return New(KindDeclaration, attrs, opts...)
}

// NewPackingList creates a packing list.
func NewPackingList(attrs Attrs, opts ...Option) (*Document, error) {
	return New(KindPackingList, attrs, opts...)
}

// NewCommercialInvoice creates a commercial invoice.
func NewCommercialInvoice(attrs Attrs, opts ...Option) (*Document, error) {
	return New(KindCommercialInvoice, attrs, opts...)
}

// NewCertificateOfOrigin creates a certificate of origin.
func NewCertificateOfOrigin(attrs Attrs, opts ...Option) (*Document, error) {
	return New(KindCertificateOfOrigin, attrs, opts...)
}

// Generate composes a document that was created from an empty bag. It runs
// once; page setup attributes are ignored at this point.
func (d *Document) Generate(attrs Attrs) error {
	switch {
	case d.rendered:
		return newDocumentError("Generate", ErrRendered)
	case d.composed:
		return newDocumentError("Generate", ErrComposed)
	}
	content := contentOf(attrs)
	if len(content) == 0 {
		return nil
	}
	if err := d.plan.Check(content); err != nil {
		return err
	}
	return d.generate(content)
}

// setupKeys configure the page rather than describe content.
var setupKeys = []string{"page_size", "font"}

// contentOf returns attrs without the page setup keys.
func contentOf(attrs Attrs) Attrs {
	out := make(Attrs, len(attrs))
	for k, v := range attrs {
		if !slices.Contains(setupKeys, k) {
			out[k] = v
		}
	}
	return out
}

func (d *Document) generate(attrs Attrs) error {
	comp := &Composition{
		Attrs:    attrs,
		Composer: d.comp,
		Title:    pick(attrs, "title", d.cfg.title, d.plan.Title),
		Subtitle: pick(attrs, "subtitle", d.cfg.subtitle, d.plan.Subtitle),
	}
	if comp.Title != "" {
		d.cv.SetTitle(comp.Title)
	}
	d.log.Debug("composing", "title", comp.Title, "keys", attrs.Keys())
	if err := d.plan.run(comp); err != nil {
		return err
	}
	d.composed = true
	d.log.Debug("composed",
		"pages", d.cv.PageCount(),
		"sections", len(d.plan.Sections),
		"disclaimer", d.Disclaimer() != "")
	return nil
}

// pick resolves a text setting: the attribute wins over the option, which
// wins over the kind's default.
func pick(attrs Attrs, key string, opt *string, def string) string {
	if attrs.Has(key) {
		return attrs.String(key)
	}
	if opt != nil {
		return *opt
	}
	return def
}

// Render finishes the document and returns its bytes. Later calls return
// the same result; the document cannot be drawn on afterwards.
func (d *Document) Render() ([]byte, error) {
	if d.rendered {
		return d.out, d.outErr
	}
	d.rendered = true
	var buf bytes.Buffer
	if err := d.cv.Output(&buf); err != nil {
		d.outErr = newDocumentError("Render", err)
		return nil, d.outErr
	}
	d.out = buf.Bytes()
	d.log.Debug("rendered", "bytes", len(d.out))
	return d.out, nil
}

// RenderTo writes the document to w.
func (d *Document) RenderTo(w io.Writer) error {
	b, err := d.Render()
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return newDocumentError("RenderTo", err)
	}
	return nil
}

// RenderToPath writes the document to path, replacing any existing file.
func (d *Document) RenderToPath(path string) error {
	b, err := d.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return newDocumentError("RenderToPath", err)
	}
	return nil
}

// Kind returns the document kind.
func (d *Document) Kind() Kind { return d.kind }

// Composed reports whether the sections have been drawn.
func (d *Document) Composed() bool { return d.composed }

// PageCount returns the number of pages produced so far.
func (d *Document) PageCount() int { return d.cv.PageCount() }

// Disclaimer returns the disclaimer stamped on every page, if any.
func (d *Document) Disclaimer() string { return d.comp.State().Disclaimer() }

// Canvas exposes the drawing surface for hand-rolled content. It returns
// nil once the document has been rendered.
func (d *Document) Canvas() *canvas.Canvas {
	if d.rendered {
		return nil
	}
	return d.cv
}
