package canvas

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// toWinAnsi converts UTF-8 text to the single-byte encoding the core fonts
// use. Characters outside Windows-1252 become '?'.
func toWinAnsi(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteByte(byte(r))
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// encode prepares text for the active font family.
func (c *Canvas) encode(s string) string {
	if c.utf8 {
		return s
	}
	return toWinAnsi(s)
}

// fontStyle maps a markup style to one the registered family provides.
// Custom families only carry regular and bold faces.
func (c *Canvas) fontStyle(style string) string {
	if !c.utf8 {
		return style
	}
	if strings.Contains(style, "B") {
		return "B"
	}
	return ""
}
