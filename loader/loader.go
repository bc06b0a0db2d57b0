// Package loader resolves logo references into images the canvas can embed.
//
// A reference is a filesystem path, an http(s) URL, an open reader or raw
// bytes. Every failure is logged and reported as "no image"; nothing is
// returned as an error, so a broken logo never stops a document.
package loader

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif" // register GIF decoding
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/bmp" // register BMP decoding
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding
)

const (
	// DefaultMaxDimension bounds the longer side of re-encoded images, in pixels.
	DefaultMaxDimension = 1024
	maxBytes            = 20 << 20
	defaultTimeout      = 10 * time.Second
)

// Image is a decoded logo ready for registration with the canvas.
type Image struct {
	Name   string // stable name derived from the content
	Type   string // "jpg" or "png"
	Data   []byte
	Width  int // pixels
	Height int
}

// Loader fetches and normalises images.
type Loader struct {
	client *http.Client
	log    *slog.Logger
	maxDim int
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for URL references.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithMaxDimension bounds the longer side of re-encoded images.
func WithMaxDimension(px int) Option {
	return func(l *Loader) {
		if px > 0 {
			l.maxDim = px
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: defaultTimeout},
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDim: DefaultMaxDimension,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves ref. The boolean is false when there is no usable image.
func (l *Loader) Load(ref any) (Image, bool) {
	return l.LoadContext(context.Background(), ref)
}

// LoadContext is Load with a context bounding the URL fetch.
func (l *Loader) LoadContext(ctx context.Context, ref any) (Image, bool) {
	data, src, err := l.read(ctx, ref)
	if err != nil {
		l.log.Warn("logo unavailable", "ref", src, "error", err)
		return Image{}, false
	}
	if data == nil {
		return Image{}, false
	}
	img, err := l.decode(data)
	if err != nil {
		l.log.Warn("logo undecodable", "ref", src, "error", err)
		return Image{}, false
	}
	return img, true
}

// read returns the raw bytes behind ref. A nil slice with a nil error means
// there was nothing to load.
func (l *Loader) read(ctx context.Context, ref any) ([]byte, string, error) {
	switch v := ref.(type) {
	case nil:
		return nil, "", nil
	case string:
		v = strings.TrimSpace(v)
		switch {
		case v == "":
			return nil, "", nil
		case strings.HasPrefix(v, "http://"), strings.HasPrefix(v, "https://"):
			data, err := l.fetch(ctx, v)
			return data, v, err
		default:
			data, err := readAll(v)
			return data, v, err
		}
	case []byte:
		if len(v) == 0 {
			return nil, "", nil
		}
		return v, "bytes", nil
	case io.Reader:
		data, err := io.ReadAll(io.LimitReader(v, maxBytes))
		return data, "reader", err
	default:
		return nil, fmt.Sprintf("%T", ref), fmt.Errorf("unsupported reference type %T", ref)
	}
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- logo path is caller data
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxBytes))
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBytes))
}

// decode checks the data and re-encodes everything but JPEG as 8-bit PNG,
// scaled down to the maximum dimension.
func (l *Loader) decode(data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, err
	}
	if format == "jpeg" {
		return Image{Name: name(data), Type: "jpg", Data: data, Width: cfg.Width, Height: cfg.Height}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, err
	}
	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), l.maxDim)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return Image{}, err
	}
	out := buf.Bytes()
	return Image{Name: name(out), Type: "png", Data: out, Width: w, Height: h}, nil
}

// fit scales w×h down so neither side exceeds limit.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

func name(data []byte) string {
	sum := sha256.Sum256(data)
	return "img-" + hex.EncodeToString(sum[:8])
}
