package receipts

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lvillar/receipts/canvas"
)

// Page sizes accepted by WithPageSize and the page_size attribute. Any size
// name the PDF backend knows works as well.
const (
	PageSizeLetter = "Letter"
	PageSizeLegal  = "Legal"
	PageSizeA4     = "A4"
	PageSizeA5     = "A5"
)

// Orientations accepted by WithOrientation.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Option is a functional option for configuring a new document.
type Option func(*documentConfig)

type documentConfig struct {
	pageSize     string
	orientation  string
	font         canvas.FontConfig
	fontSize     float64
	title        *string
	subtitle     *string
	logger       *slog.Logger
	client       *http.Client
	compress     bool
	creationDate time.Time
	stationery   string
}

func defaultConfig() documentConfig {
	return documentConfig{
		pageSize:    PageSizeLetter,
		orientation: OrientationPortrait,
		fontSize:    canvas.DefaultFontSize,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		compress:    true,
	}
}

func (c documentConfig) validate() error {
	if c.fontSize <= 0 {
		return fmt.Errorf("%w: font size %v", ErrInvalidParam, c.fontSize)
	}
	switch strings.ToLower(c.orientation) {
	case "p", "l", OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: orientation %q", ErrInvalidParam, c.orientation)
	}
	return nil
}

// WithPageSize sets the page size by name, e.g. PageSizeLetter or PageSizeA4.
// A page_size attribute wins over this option.
func WithPageSize(size string) Option {
	return func(c *documentConfig) {
		c.pageSize = size
	}
}

// WithOrientation sets the page orientation.
// Use OrientationPortrait ("portrait") or OrientationLandscape ("landscape").
func WithOrientation(orientation string) Option {
	return func(c *documentConfig) {
		c.orientation = orientation
	}
}

// WithFont replaces the built-in Helvetica with TrueType faces. A font
// attribute wins over this option.
func WithFont(font canvas.FontConfig) Option {
	return func(c *documentConfig) {
		c.font = font
	}
}

// WithFontSize sets the base font size in points.
func WithFontSize(size float64) Option {
	return func(c *documentConfig) {
		c.fontSize = size
	}
}

// WithTitle overrides the document type's title.
func WithTitle(title string) Option {
	return func(c *documentConfig) {
		c.title = &title
	}
}

// WithSubtitle overrides the document type's subtitle.
func WithSubtitle(subtitle string) Option {
	return func(c *documentConfig) {
		c.subtitle = &subtitle
	}
}

// WithLogger sets the structured logger. Documents are silent by default.
func WithLogger(log *slog.Logger) Option {
	return func(c *documentConfig) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithHTTPClient sets the client used to fetch logo URLs.
func WithHTTPClient(client *http.Client) Option {
	return func(c *documentConfig) {
		c.client = client
	}
}

// WithCompression toggles stream compression. It is on by default.
func WithCompression(on bool) Option {
	return func(c *documentConfig) {
		c.compress = on
	}
}

// WithCreationDate fixes the creation and modification dates, which makes
// the output byte-for-byte reproducible.
func WithCreationDate(t time.Time) Option {
	return func(c *documentConfig) {
		c.creationDate = t
	}
}

// WithStationery draws the first page of an existing PDF behind every page.
func WithStationery(path string) Option {
	return func(c *documentConfig) {
		c.stationery = path
	}
}
