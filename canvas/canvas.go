// Package canvas adapts the go-pdf/fpdf backend to the operations the
// document engine needs: fixed-size pages in points, a flow cursor with manual
// page breaks, a positioning grid, rich text with inline markup, images,
// barcodes and a repeat-on-every-page hook for letter paper.
//
// Automatic page breaking in fpdf is disabled. Callers ask for room with
// EnsureSpace, which keeps the footer band free for the overlay pass.
package canvas

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/lvillar/receipts/markup"
)

// Defaults used when Config leaves a field zero.
const (
	DefaultPageSize      = "Letter"
	DefaultMargin        = 36
	DefaultFooterReserve = 32
	DefaultFontSize      = 8

	// FontFamily is the family name custom fonts are registered under.
	FontFamily = "primary"
	coreFamily = "Helvetica"
)

// ErrFont is returned when a configured font file cannot be loaded.
var ErrFont = errors.New("canvas: font could not be loaded")

// FontSource is a TrueType font given either as a file path or as raw bytes.
type FontSource struct {
	Path string
	Data []byte
}

// IsZero reports whether no font is set.
func (s FontSource) IsZero() bool {
	return s.Path == "" && len(s.Data) == 0
}

func (s FontSource) bytes() ([]byte, error) {
	if len(s.Data) > 0 {
		return s.Data, nil
	}
	data, err := os.ReadFile(s.Path) // #nosec G304 -- font path is caller configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFont, err)
	}
	return data, nil
}

// FontConfig selects the faces used for normal and bold text. A missing bold
// face falls back to the normal one.
type FontConfig struct {
	Normal FontSource
	Bold   FontSource
}

// IsZero reports whether the configuration carries no font at all.
func (f FontConfig) IsZero() bool {
	return f.Normal.IsZero() && f.Bold.IsZero()
}

// Config describes the page setup of a new canvas.
type Config struct {
	PageSize      string  // fpdf page size name, e.g. "Letter", "A4"
	Orientation   string  // "P" or "L"
	Margin        float64 // page margin on all sides, in points
	FooterReserve float64 // band above the bottom margin kept free of flow content
	FontSize      float64 // base font size
	Font          FontConfig
	Compress      bool
	CreationDate  time.Time
	Stationery    string // optional PDF whose first page is drawn behind every page
	Logger        *slog.Logger
}

// Canvas is one document's drawing surface. It is not safe for concurrent use.
type Canvas struct {
	pdf      *fpdf.Fpdf
	margin   float64
	reserve  float64
	baseSize float64
	family   string
	utf8     bool
	log      *slog.Logger
}

// New creates a canvas with one empty page.
func New(cfg Config) (*Canvas, error) {
	if cfg.PageSize == "" {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Orientation == "" {
		cfg.Orientation = "P"
	}
	if cfg.Margin <= 0 {
		cfg.Margin = DefaultMargin
	}
	if cfg.FooterReserve < 0 {
		cfg.FooterReserve = 0
	} else if cfg.FooterReserve == 0 {
		cfg.FooterReserve = DefaultFooterReserve
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = DefaultFontSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	pdf := fpdf.New(cfg.Orientation, "pt", cfg.PageSize, "")
	if pdf.Err() {
		return nil, fmt.Errorf("canvas: page setup: %w", pdf.Error())
	}
	pdf.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	pdf.SetAutoPageBreak(false, cfg.Margin)
	pdf.SetCellMargin(0)
	pdf.SetCompression(cfg.Compress)
	pdf.SetCatalogSort(true)
	if !cfg.CreationDate.IsZero() {
		pdf.SetCreationDate(cfg.CreationDate)
		pdf.SetModificationDate(cfg.CreationDate)
	}

	c := &Canvas{
		pdf:      pdf,
		margin:   cfg.Margin,
		reserve:  cfg.FooterReserve,
		baseSize: cfg.FontSize,
		family:   coreFamily,
		log:      cfg.Logger,
	}
	if err := c.setupFonts(cfg.Font); err != nil {
		return nil, err
	}
	if cfg.Stationery != "" {
		c.useStationery(cfg.Stationery)
	}

	pdf.AddPage()
	pdf.SetFont(c.family, "", c.baseSize)
	if pdf.Err() {
		return nil, fmt.Errorf("canvas: first page: %w", pdf.Error())
	}
	return c, nil
}

func (c *Canvas) setupFonts(fc FontConfig) error {
	if fc.IsZero() {
		return nil
	}
	normal, bold := fc.Normal, fc.Bold
	if normal.IsZero() {
		normal = bold
	}
	if bold.IsZero() {
		bold = normal
	}
	nb, err := normal.bytes()
	if err != nil {
		return err
	}
	bb, err := bold.bytes()
	if err != nil {
		return err
	}
	c.pdf.AddUTF8FontFromBytes(FontFamily, "", nb)
	c.pdf.AddUTF8FontFromBytes(FontFamily, "B", bb)
	if c.pdf.Err() {
		return fmt.Errorf("%w: %v", ErrFont, c.pdf.Error())
	}
	c.family = FontFamily
	c.utf8 = true
	return nil
}

// Err returns the first backend error, if any.
func (c *Canvas) Err() error {
	return c.pdf.Error()
}

// Logger returns the canvas logger.
func (c *Canvas) Logger() *slog.Logger {
	return c.log
}

// BaseSize is the default font size of the document.
func (c *Canvas) BaseSize() float64 {
	return c.baseSize
}

// PageSize returns the size of the current page.
func (c *Canvas) PageSize() (w, h float64) {
	return c.pdf.GetPageSize()
}

// Bounds is the content area of the current page, inside the margins.
func (c *Canvas) Bounds() Rect {
	w, h := c.pdf.GetPageSize()
	return Rect{X: c.margin, Y: c.margin, W: w - 2*c.margin, H: h - 2*c.margin}
}

// FlowBottom is the lowest ordinate flow content may reach.
func (c *Canvas) FlowBottom() float64 {
	return c.Bounds().Bottom() - c.reserve
}

// X returns the horizontal cursor.
func (c *Canvas) X() float64 { return c.pdf.GetX() }

// Y returns the vertical cursor.
func (c *Canvas) Y() float64 { return c.pdf.GetY() }

// SetY moves the vertical cursor and resets x to the left margin.
func (c *Canvas) SetY(y float64) {
	c.pdf.SetXY(c.margin, y)
}

// MoveDown advances the vertical cursor by h points.
func (c *Canvas) MoveDown(h float64) {
	c.SetY(c.pdf.GetY() + h)
}

// EnsureSpace starts a new page when a block of height h does not fit below
// the cursor. It reports whether a page was added. A block taller than a whole
// page is drawn from the top of the current page rather than looping.
func (c *Canvas) EnsureSpace(h float64) bool {
	y := c.pdf.GetY()
	if y+h <= c.FlowBottom() || y <= c.Bounds().Y+0.01 {
		return false
	}
	c.AddPage()
	return true
}

// AddPage appends a page and places the cursor at its top.
func (c *Canvas) AddPage() {
	c.pdf.AddPage()
	c.SetY(c.Bounds().Y)
}

// PageCount is the number of pages produced so far.
func (c *Canvas) PageCount() int {
	return c.pdf.PageCount()
}

// Page is the page currently drawn on (1-based).
func (c *Canvas) Page() int {
	return c.pdf.PageNo()
}

// SetPage selects an already produced page for drawing.
func (c *Canvas) SetPage(n int) {
	c.pdf.SetPage(n)
}

// Output writes the finished document. It can be called once.
func (c *Canvas) Output(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("canvas: output: %w", err)
	}
	return nil
}

// SetTitle records the document title in the PDF metadata.
func (c *Canvas) SetTitle(title string) {
	c.pdf.SetTitle(title, true)
}

// SetCreator records the producing application in the PDF metadata.
func (c *Canvas) SetCreator(creator string) {
	c.pdf.SetCreator(creator, true)
}

// Line strokes a line in the given color and width.
func (c *Canvas) Line(x1, y1, x2, y2 float64, color markup.RGB, width float64) {
	c.pdf.SetDrawColor(color.R, color.G, color.B)
	c.pdf.SetLineWidth(width)
	c.pdf.Line(x1, y1, x2, y2)
	c.pdf.SetDrawColor(0, 0, 0)
}

// StrokeRect outlines r.
func (c *Canvas) StrokeRect(r Rect, color markup.RGB, width float64) {
	c.pdf.SetDrawColor(color.R, color.G, color.B)
	c.pdf.SetLineWidth(width)
	c.pdf.Rect(r.X, r.Y, r.W, r.H, "D")
	c.pdf.SetDrawColor(0, 0, 0)
}

// FillRect paints r.
func (c *Canvas) FillRect(r Rect, color markup.RGB) {
	c.pdf.SetFillColor(color.R, color.G, color.B)
	c.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
	c.pdf.SetFillColor(0, 0, 0)
}

// Clip confines drawing done in fn to r.
func (c *Canvas) Clip(r Rect, fn func()) {
	c.pdf.ClipRect(r.X, r.Y, r.W, r.H, false)
	defer c.pdf.ClipEnd()
	fn()
}
