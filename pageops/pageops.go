// Package pageops combines finished documents into one PDF. Every page of
// every input is imported as a template and placed on a page of the same
// size, so the output looks exactly like the inputs printed back to back.
package pageops

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Letter is the page size used when an input page reports no media box.
var Letter = fpdf.SizeType{Wd: 612, Ht: 792}

// pageCount returns the number of pages in a PDF held in memory.
func pageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("pageops: counting pages: %w", err)
	}
	return n, nil
}

// importPage imports a single page from src into pdf and returns the
// template ID and page dimensions. The importer panics on malformed input.
func importPage(pdf *fpdf.Fpdf, imp *gofpdi.Importer, src *io.ReadSeeker, page int) (tplID int, size fpdf.SizeType, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pageops: importing page %d: %v", page, r)
		}
	}()
	tplID = imp.ImportPageFromStream(pdf, src, page, "/MediaBox")
	size = Letter
	if dims, ok := imp.GetPageSizes()[page]; ok {
		if mb, ok := dims["/MediaBox"]; ok && mb["w"] > 0 && mb["h"] > 0 {
			size = fpdf.SizeType{Wd: mb["w"], Ht: mb["h"]}
		}
	}
	return tplID, size, nil
}

// writePDF writes the PDF to a writer.
func writePDF(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pageops: writing output: %w", err)
	}
	return nil
}
