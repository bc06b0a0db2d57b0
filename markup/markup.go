// Package markup parses the small inline markup subset accepted in document
// text and table cells.
//
// Supported tags:
//
//	<b>…</b>, <strong>…</strong>       bold
//	<i>…</i>, <em>…</em>               italic
//	<color rgb='326d92'>…</color>      text color (six hex digits)
//	<link href='…'>…</link>, <a href>  hyperlink
//	<br>                               line break
//
// Newlines in the source are line breaks as well. Unknown tags such as
// "<Intl>" are kept as literal text. Entities are unescaped in text segments.
package markup

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// RGB is a text color.
type RGB struct {
	R, G, B int
}

// Span is a run of text sharing one style. A Span with Break set carries no
// text and ends the current line.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Color  *RGB
	Link   string
	Break  bool
}

// Style returns the fpdf style string for the span ("", "B", "I", "BI").
func (s Span) Style() string {
	switch {
	case s.Bold && s.Italic:
		return "BI"
	case s.Bold:
		return "B"
	case s.Italic:
		return "I"
	}
	return ""
}

// SameStyle reports whether two spans can be drawn as one run.
func (s Span) SameStyle(o Span) bool {
	if s.Bold != o.Bold || s.Italic != o.Italic || s.Link != o.Link {
		return false
	}
	if (s.Color == nil) != (o.Color == nil) {
		return false
	}
	return s.Color == nil || *s.Color == *o.Color
}

var (
	tagRe  = regexp.MustCompile(`<(/?)([a-zA-Z]+)([^>]*)>`)
	attrRe = regexp.MustCompile(`([a-zA-Z_-]+)\s*=\s*(?:'([^']*)'|"([^"]*)"|([^\s'">]+))`)
)

type state struct {
	bold, italic int
	colors       []RGB
	links        []string
}

func (st *state) span(text string) Span {
	sp := Span{Text: text, Bold: st.bold > 0, Italic: st.italic > 0}
	if n := len(st.colors); n > 0 {
		c := st.colors[n-1]
		sp.Color = &c
	}
	if n := len(st.links); n > 0 {
		sp.Link = st.links[n-1]
	}
	return sp
}

// Parse splits s into styled spans. Plain text yields a single span per line.
func Parse(s string) []Span {
	s = strings.ReplaceAll(s, "\r", "")
	var (
		spans []Span
		st    state
		pos   int
	)
	add := func(sp Span) {
		if n := len(spans); n > 0 && !spans[n-1].Break && spans[n-1].SameStyle(sp) {
			spans[n-1].Text += sp.Text
			return
		}
		spans = append(spans, sp)
	}
	emit := func(text string, literal bool) {
		if !literal {
			text = html.UnescapeString(text)
		}
		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				spans = append(spans, Span{Break: true})
			}
			if line != "" {
				add(st.span(line))
			}
		}
	}

	for _, m := range tagRe.FindAllStringSubmatchIndex(s, -1) {
		if pos < m[0] {
			emit(s[pos:m[0]], false)
		}
		pos = m[1]

		closing := m[3] > m[2]
		name := strings.ToLower(s[m[4]:m[5]])
		attrs := parseAttrs(s[m[6]:m[7]])

		switch name {
		case "b", "strong":
			st.bold = bump(st.bold, closing)
		case "i", "em":
			st.italic = bump(st.italic, closing)
		case "br":
			spans = append(spans, Span{Break: true})
		case "color":
			if closing {
				if n := len(st.colors); n > 0 {
					st.colors = st.colors[:n-1]
				}
			} else if c, ok := ParseHex(attrs["rgb"]); ok {
				st.colors = append(st.colors, c)
			} else if n := len(st.colors); n > 0 {
				st.colors = append(st.colors, st.colors[n-1])
			} else {
				st.colors = append(st.colors, RGB{})
			}
		case "link", "a":
			if closing {
				if n := len(st.links); n > 0 {
					st.links = st.links[:n-1]
				}
			} else {
				st.links = append(st.links, attrs["href"])
			}
		default:
			emit(s[m[0]:m[1]], true)
		}
	}
	if pos < len(s) {
		emit(s[pos:], false)
	}
	return spans
}

// Strip removes all markup and returns the plain text, keeping line breaks.
func Strip(s string) string {
	var b strings.Builder
	for _, sp := range Parse(s) {
		if sp.Break {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(sp.Text)
	}
	return b.String()
}

// Bold wraps s in a bold tag.
func Bold(s string) string {
	return "<b>" + s + "</b>"
}

// ParseHex parses a six digit hex color such as "326d92" or "#326d92".
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, true
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrRe.FindAllStringSubmatch(s, -1) {
		val := m[2]
		if val == "" {
			val = m[3]
		}
		if val == "" {
			val = m[4]
		}
		attrs[strings.ToLower(m[1])] = html.UnescapeString(val)
	}
	return attrs
}

func bump(depth int, closing bool) int {
	if closing {
		if depth > 0 {
			return depth - 1
		}
		return 0
	}
	return depth + 1
}
