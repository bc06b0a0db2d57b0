package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf"
	fpdfbarcode "github.com/go-pdf/fpdf/contrib/barcode"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// ErrImage is returned when the backend rejects image data.
var ErrImage = errors.New("canvas: image rejected")

// RegisterImage makes data available for drawing under name and returns its
// natural size in points. typ is "png", "jpg" or "gif". A rejected image
// leaves the document usable.
func (c *Canvas) RegisterImage(name, typ string, data []byte) (w, h float64, err error) {
	info := c.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: typ}, bytes.NewReader(data))
	if c.pdf.Err() {
		err = c.pdf.Error()
		c.pdf.ClearError()
		return 0, 0, fmt.Errorf("%w: %s: %v", ErrImage, name, err)
	}
	if info == nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrImage, name)
	}
	return info.Width(), info.Height(), nil
}

// DrawImage places a registered image. A zero width or height keeps the
// aspect ratio.
func (c *Canvas) DrawImage(name string, x, y, w, h float64) {
	c.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
}

// Symbology names a two-dimensional or linear barcode type.
type Symbology string

// Supported symbologies.
const (
	QR         Symbology = "qr"
	PDF417     Symbology = "pdf417"
	Code128    Symbology = "code128"
	DataMatrix Symbology = "datamatrix"
)

// ParseSymbology maps a name to a Symbology. Empty means QR.
func ParseSymbology(s string) (Symbology, bool) {
	switch Symbology(s) {
	case "":
		return QR, true
	case QR, PDF417, Code128, DataMatrix:
		return Symbology(s), true
	}
	return "", false
}

// Linear reports whether the symbology is a one-dimensional bar code.
func (s Symbology) Linear() bool {
	return s == Code128
}

// Barcode encodes value and draws it scaled into r. Encoding failures are
// returned and leave the document usable.
func (c *Canvas) Barcode(sym Symbology, value string, r Rect) error {
	var key string
	switch sym {
	case QR, "":
		key = fpdfbarcode.RegisterQR(c.pdf, value, qr.M, qr.Unicode)
	case PDF417:
		key = fpdfbarcode.RegisterPdf417(c.pdf, value, 4, 2)
	case Code128:
		key = fpdfbarcode.RegisterCode128(c.pdf, value)
	case DataMatrix:
		key = fpdfbarcode.RegisterDataMatrix(c.pdf, value)
	default:
		return fmt.Errorf("canvas: unknown symbology %q", sym)
	}
	if c.pdf.Err() {
		err := c.pdf.Error()
		c.pdf.ClearError()
		return fmt.Errorf("canvas: %s barcode: %w", sym, err)
	}
	fpdfbarcode.Barcode(c.pdf, key, r.X, r.Y, r.W, r.H, false)
	if c.pdf.Err() {
		err := c.pdf.Error()
		c.pdf.ClearError()
		return fmt.Errorf("canvas: %s barcode: %w", sym, err)
	}
	return nil
}

// useStationery draws the first page of a PDF file behind every page. An
// unreadable file is logged and ignored.
func (c *Canvas) useStationery(path string) {
	data, err := os.ReadFile(path) // #nosec G304 -- stationery path is caller configuration
	if err != nil {
		c.log.Warn("stationery unavailable", "path", path, "error", err)
		return
	}
	imp := gofpdi.NewImporter()
	tpl, err := c.importPage(imp, data)
	if err != nil {
		c.log.Warn("stationery rejected", "path", path, "error", err)
		return
	}
	c.pdf.SetHeaderFuncMode(func() {
		w, h := c.pdf.GetPageSize()
		imp.UseImportedTemplate(c.pdf, tpl, 0, 0, w, h)
	}, true)
}

func (c *Canvas) importPage(imp *gofpdi.Importer, data []byte) (tpl int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("import: %v", r)
		}
		if err == nil && c.pdf.Err() {
			err = c.pdf.Error()
		}
		if err != nil {
			c.pdf.ClearError()
		}
	}()
	rs := io.ReadSeeker(bytes.NewReader(data))
	tpl = imp.ImportPageFromStream(c.pdf, &rs, 1, "/MediaBox")
	return tpl, nil
}
