package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/lvillar/receipts"
	"github.com/lvillar/receipts/internal/payload"
)

// renderer turns one payload file into one PDF.
type renderer struct {
	outDir   string
	fallback receipts.Kind
	opts     []receipts.Option
	validate bool
	log      *slog.Logger
}

func (r *renderer) render(file string) error {
	p, err := payload.ReadFile(file, r.fallback)
	if err != nil {
		return err
	}
	doc, err := receipts.New(p.Kind, p.Attrs, r.opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	out := r.output(file)
	if err := doc.RenderToPath(out); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if r.validate {
		if err := validateFile(out); err != nil {
			return fmt.Errorf("%s: %w", out, err)
		}
	}
	r.log.Info("rendered", "payload", file, "kind", p.Kind.String(), "pdf", out, "pages", doc.PageCount())
	return nil
}

// output is where the PDF for the payload at file is written.
func (r *renderer) output(file string) string {
	return filepath.Join(r.outDir, payload.Payload{Source: file}.Name()+".pdf")
}

// validateFile checks out with pdfcpu in relaxed mode.
func validateFile(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}
