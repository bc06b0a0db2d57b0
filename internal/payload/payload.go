// Package payload reads document payload files. A payload is a YAML (or
// JSON) mapping holding the document attributes plus a "type" key naming the
// document kind.
package payload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/lvillar/receipts"
)

// TypeKey names the document kind inside a payload.
const TypeKey = "type"

// MaxInputSize limits payload input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmpty         = errors.New("payload: nil or empty data")
	ErrInputTooLarge = errors.New("payload: input exceeds maximum size")
	ErrNoKind        = errors.New("payload: no document type")
)

// Payload is one decoded document request.
type Payload struct {
	Source string // file the payload came from, if any
	Kind   receipts.Kind
	Attrs  receipts.Attrs
}

// Name is the base name of the source without its extension.
func (p Payload) Name() string {
	base := filepath.Base(p.Source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Parse decodes data. The kind comes from the type key, else fallback; a
// zero fallback makes a missing type an error.
func Parse(data []byte, fallback receipts.Kind) (Payload, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Payload{}, ErrEmpty
	}
	if len(data) > MaxInputSize {
		return Payload{}, fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	var attrs map[string]any
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return Payload{}, fmt.Errorf("payload: %w", err)
	}
	if attrs == nil {
		return Payload{}, ErrEmpty
	}

	kind := fallback
	if v, ok := attrs[TypeKey]; ok {
		name, _ := v.(string)
		k, err := receipts.ParseKind(name)
		if err != nil {
			return Payload{}, fmt.Errorf("payload: %w", err)
		}
		kind = k
		delete(attrs, TypeKey)
	}
	if kind == 0 {
		return Payload{}, ErrNoKind
	}
	return Payload{Kind: kind, Attrs: receipts.Attrs(attrs)}, nil
}

// ReadFile reads and decodes the payload at path.
func ReadFile(path string, fallback receipts.Kind) (Payload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Payload{}, fmt.Errorf("payload: %w", err)
	}
	if info.Size() > int64(MaxInputSize) {
		return Payload{}, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrInputTooLarge, path, info.Size(), MaxInputSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, fmt.Errorf("payload: %w", err)
	}
	p, err := Parse(data, fallback)
	if err != nil {
		return Payload{}, fmt.Errorf("%s: %w", path, err)
	}
	p.Source = path
	return p, nil
}
