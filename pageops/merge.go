package pageops

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// ErrNoInput is returned when there is nothing to merge.
var ErrNoInput = errors.New("pageops: no input documents provided")

// Merge writes docs to w as one PDF, in order.
func Merge(w io.Writer, docs ...[]byte) error {
	if len(docs) == 0 {
		return ErrNoInput
	}
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)

	// One importer for all sources keeps template names unique.
	imp := gofpdi.NewImporter()
	for i, doc := range docs {
		if err := appendDoc(pdf, imp, doc); err != nil {
			return fmt.Errorf("pageops: document %d: %w", i+1, err)
		}
	}
	return writePDF(pdf, w)
}

// MergeFiles combines the PDF files at inputPaths into outputPath.
func MergeFiles(outputPath string, inputPaths ...string) error {
	if len(inputPaths) == 0 {
		return ErrNoInput
	}
	docs := make([][]byte, len(inputPaths))
	for i, path := range inputPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("pageops: reading %s: %w", path, err)
		}
		docs[i] = data
	}

	var buf bytes.Buffer
	if err := Merge(&buf, docs...); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("pageops: creating %s: %w", outputPath, err)
	}
	return nil
}

// appendDoc imports every page of doc into pdf.
func appendDoc(pdf *fpdf.Fpdf, imp *gofpdi.Importer, doc []byte) error {
	n, err := pageCount(doc)
	if err != nil {
		return err
	}
	src := io.ReadSeeker(bytes.NewReader(doc))
	for page := 1; page <= n; page++ {
		tplID, size, err := importPage(pdf, imp, &src, page)
		if err != nil {
			return err
		}
		pdf.AddPageFormat("P", size)
		imp.UseImportedTemplate(pdf, tplID, 0, 0, size.Wd, size.Ht)
	}
	return pdf.Error()
}
