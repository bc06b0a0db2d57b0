// Package table lays out bordered and borderless tables on a canvas.
//
// A table takes a Style preset at construction and accepts border overrides
// for the whole table, single rows and single cells afterwards. Cells hold
// inline markup. Row heights follow the wrapped content, rows never split
// across pages and header rows repeat at the top of each new page.
package table

import (
	"strings"

	"github.com/lvillar/receipts/markup"
)

// RGBColor represents an RGB color value.
type RGBColor = markup.RGB

// DefaultBorderColor is the border color of the presets.
var DefaultBorderColor = RGBColor{R: 0xaa, G: 0xaa, B: 0xaa}

// Sides is a set of cell edges.
type Sides uint8

// Cell edges.
const (
	Top Sides = 1 << iota
	Right
	Bottom
	Left

	NoSides  Sides = 0
	AllSides       = Top | Right | Bottom | Left
)

// Has reports whether every edge in o is in s.
func (s Sides) Has(o Sides) bool {
	return s&o == o
}

// String lists the edges as a subset of "TRBL".
func (s Sides) String() string {
	var b strings.Builder
	for _, e := range []struct {
		side Sides
		name byte
	}{{Top, 'T'}, {Right, 'R'}, {Bottom, 'B'}, {Left, 'L'}} {
		if s.Has(e.side) {
			b.WriteByte(e.name)
		}
	}
	return b.String()
}

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// Style is the table-wide appearance fixed at construction.
type Style struct {
	Borders     Sides
	BorderColor RGBColor
	BorderWidth float64
	Padding     Padding
	Markup      bool    // interpret inline markup in cells
	FontSize    float64 // 0 means the canvas base size
	Align       string  // default horizontal alignment ("L", "C", "R")
}

// Bordered draws all four edges of every cell.
func Bordered() Style {
	return Style{
		Borders:     AllSides,
		BorderColor: DefaultBorderColor,
		BorderWidth: 0.5,
		Padding:     UniformPadding(4),
		Markup:      true,
	}
}

// Borderless keeps the bordered padding but draws no edges.
func Borderless() Style {
	s := Bordered()
	s.Borders = NoSides
	return s
}

// Minimal has neither edges nor padding.
func Minimal() Style {
	s := Borderless()
	s.Padding = Padding{}
	return s
}

// CellStyle overrides parts of the table style for a row or a cell.
type CellStyle struct {
	FillColor *RGBColor
	TextColor *RGBColor
	Bold      bool
	Align     string // "L", "C", "R"
	Padding   *Padding
	Borders   *Sides
}

// mergeStyle copies set fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Bold {
		dst.Bold = true
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
	if src.Padding != nil {
		dst.Padding = src.Padding
	}
	if src.Borders != nil {
		dst.Borders = src.Borders
	}
}
