package canvas

import (
	"strings"
	"unicode/utf8"

	"github.com/lvillar/receipts/markup"
)

// Alignment values accepted by TextStyle.Align.
const (
	AlignLeft    = "L"
	AlignCenter  = "C"
	AlignRight   = "R"
	AlignJustify = "J"
)

// lineFactor is the line height as a multiple of the font size.
const lineFactor = 1.16

// unbounded is the layout width used to measure natural text width.
const unbounded = 1e9

// TextStyle describes how a run of text is set.
type TextStyle struct {
	Size    float64 // 0 means the canvas base size
	Bold    bool
	Italic  bool
	Color   *markup.RGB
	Align   string  // AlignLeft when empty
	Leading float64 // extra space after each line
	Markup  bool    // interpret inline markup tags
}

func (st TextStyle) size(base float64) float64 {
	if st.Size > 0 {
		return st.Size
	}
	return base
}

type piece struct {
	text  string // encoded for the active family
	style string
	color *markup.RGB
	link  string
	w     float64
	space bool
}

type textLine struct {
	pieces []piece
	w      float64
	spaces int
	last   bool // ends a paragraph; never stretched when justified
}

func (l *textLine) add(p piece) {
	l.pieces = append(l.pieces, p)
	l.w += p.w
	if p.space {
		l.spaces++
	}
}

func (l *textLine) hasWord() bool {
	for _, p := range l.pieces {
		if !p.space {
			return true
		}
	}
	return false
}

func (l *textLine) trimRight() {
	for n := len(l.pieces); n > 0 && l.pieces[n-1].space; n = len(l.pieces) {
		l.w -= l.pieces[n-1].w
		l.spaces--
		l.pieces = l.pieces[:n-1]
	}
}

// merge joins neighbouring pieces that share a style into one run.
func (l *textLine) merge() {
	if len(l.pieces) < 2 {
		return
	}
	out := l.pieces[:1]
	for _, p := range l.pieces[1:] {
		prev := &out[len(out)-1]
		if prev.style == p.style && prev.link == p.link && sameColor(prev.color, p.color) {
			prev.text += p.text
			prev.w += p.w
			prev.space = prev.space && p.space
			continue
		}
		out = append(out, p)
	}
	l.pieces = out
}

func sameColor(a, b *markup.RGB) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Paragraph is text broken into lines for a given width.
type Paragraph struct {
	lines   []textLine
	size    float64
	lineH   float64
	leading float64
	align   string
	width   float64
}

// Lines returns the number of lines.
func (p *Paragraph) Lines() int { return len(p.lines) }

// Height is the vertical space the paragraph takes.
func (p *Paragraph) Height() float64 {
	return float64(len(p.lines)) * (p.lineH + p.leading)
}

// Width is the width of the longest line.
func (p *Paragraph) Width() float64 {
	var w float64
	for _, l := range p.lines {
		if l.w > w {
			w = l.w
		}
	}
	return w
}

// Size is the font size the paragraph was laid out with.
func (p *Paragraph) Size() float64 { return p.size }

// Layout breaks text into lines no wider than width.
func (c *Canvas) Layout(text string, st TextStyle, width float64) *Paragraph {
	size := st.size(c.baseSize)
	p := &Paragraph{
		size:    size,
		lineH:   size * lineFactor,
		leading: st.Leading,
		align:   st.Align,
		width:   width,
	}

	var spans []markup.Span
	if st.Markup {
		spans = markup.Parse(text)
	} else {
		spans = plainSpans(text)
	}

	var (
		cur     textLine
		wrapped bool
	)
	flush := func(last bool) {
		cur.trimRight()
		cur.last = last
		if p.align != AlignJustify || last {
			cur.merge()
		}
		p.lines = append(p.lines, cur)
		cur = textLine{}
		wrapped = !last
	}

	for _, sp := range spans {
		if sp.Break {
			flush(true)
			continue
		}
		sp.Bold = sp.Bold || st.Bold
		sp.Italic = sp.Italic || st.Italic
		style := c.fontStyle(sp.Style())
		color := sp.Color
		if color == nil {
			color = st.Color
		}
		mk := func(s string, space bool) piece {
			enc := c.encode(s)
			return piece{text: enc, style: style, color: color, link: sp.Link, w: c.measure(enc, style, size), space: space}
		}

		for _, tok := range tokens(sp.Text) {
			if tok[0] == ' ' {
				if wrapped && len(cur.pieces) == 0 {
					continue
				}
				cur.add(mk(tok, true))
				continue
			}
			pc := mk(tok, false)
			if cur.w+pc.w > width && cur.hasWord() {
				flush(false)
			}
			for pc.w > width-cur.w && utf8.RuneCountInString(tok) > 1 {
				head, rest := c.fitPrefix(tok, style, size, width-cur.w)
				cur.add(mk(head, false))
				flush(false)
				tok = rest
				pc = mk(tok, false)
			}
			cur.add(pc)
		}
	}
	if len(cur.pieces) > 0 {
		flush(true)
	}
	return p
}

// fitPrefix splits word so the head fits in width. The head holds at least
// one character.
func (c *Canvas) fitPrefix(word, style string, size, width float64) (string, string) {
	cut := 0
	for i := range word {
		if i == 0 {
			continue
		}
		if c.measure(c.encode(word[:i]), style, size) > width {
			break
		}
		cut = i
	}
	if cut == 0 {
		_, n := utf8.DecodeRuneInString(word)
		cut = n
	}
	return word[:cut], word[cut:]
}

func (c *Canvas) measure(enc, style string, size float64) float64 {
	c.pdf.SetFont(c.family, style, size)
	return c.pdf.GetStringWidth(enc)
}

// LineHeight is the height of one line set at size. Zero means the base size.
func (c *Canvas) LineHeight(size float64) float64 {
	if size <= 0 {
		size = c.baseSize
	}
	return size * lineFactor
}

// StringWidth returns the natural single-line width of text.
func (c *Canvas) StringWidth(text string, st TextStyle) float64 {
	return c.Layout(text, st, unbounded).Width()
}

// DrawParagraph draws p with its top-left corner at x, y. No page breaks.
func (c *Canvas) DrawParagraph(p *Paragraph, x, y float64) {
	for _, l := range p.lines {
		c.drawLine(p, l, x, y)
		y += p.lineH + p.leading
	}
	c.pdf.SetTextColor(0, 0, 0)
}

func (c *Canvas) drawLine(p *Paragraph, l textLine, x, y float64) {
	var extra float64
	switch p.align {
	case AlignCenter:
		x += (p.width - l.w) / 2
	case AlignRight:
		x += p.width - l.w
	case AlignJustify:
		if !l.last && l.spaces > 0 && p.width > l.w {
			extra = (p.width - l.w) / float64(l.spaces)
		}
	}
	for _, pc := range l.pieces {
		if pc.space {
			x += pc.w + extra
			continue
		}
		c.pdf.SetFont(c.family, pc.style, p.size)
		if pc.color != nil {
			c.pdf.SetTextColor(pc.color.R, pc.color.G, pc.color.B)
		} else {
			c.pdf.SetTextColor(0, 0, 0)
		}
		c.pdf.SetXY(x, y)
		c.pdf.CellFormat(pc.w, p.lineH, pc.text, "", 0, AlignLeft, false, 0, pc.link)
		x += pc.w
	}
}

// Text flows text from the cursor across the content width.
func (c *Canvas) Text(text string, st TextStyle) {
	b := c.Bounds()
	c.TextIn(b.X, b.W, text, st)
}

// TextIn flows text from the cursor inside the column at x with the given
// width, starting a new page whenever a line would enter the footer band.
// The cursor ends below the last line.
func (c *Canvas) TextIn(x, width float64, text string, st TextStyle) {
	p := c.Layout(text, st, width)
	y := c.Y()
	top := c.Bounds().Y
	for _, l := range p.lines {
		if y+p.lineH > c.FlowBottom() && y > top+0.01 {
			c.AddPage()
			y = top
		}
		c.drawLine(p, l, x, y)
		y += p.lineH + p.leading
	}
	c.pdf.SetTextColor(0, 0, 0)
	c.SetY(y)
}

// TextBox draws text inside r, shrinking the font from st.Size down to
// minSize until it fits. Anything still overflowing is clipped to r. The size
// used is returned.
func (c *Canvas) TextBox(r Rect, text string, st TextStyle, minSize float64) float64 {
	size := st.size(c.baseSize)
	if minSize <= 0 || minSize > size {
		minSize = size
	}
	var p *Paragraph
	for {
		st.Size = size
		p = c.Layout(text, st, r.W)
		if p.Height() <= r.H || size-0.5 < minSize {
			break
		}
		size -= 0.5
	}
	c.Clip(r, func() {
		c.DrawParagraph(p, r.X, r.Y)
	})
	return size
}

// plainSpans turns literal text into one span per line.
func plainSpans(text string) []markup.Span {
	text = strings.ReplaceAll(text, "\r", "")
	var spans []markup.Span
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			spans = append(spans, markup.Span{Break: true})
		}
		if line != "" {
			spans = append(spans, markup.Span{Text: line})
		}
	}
	return spans
}

// tokens splits s into alternating runs of spaces and non-spaces. Tabs count
// as spaces.
func tokens(s string) []string {
	s = strings.ReplaceAll(s, "\t", " ")
	var out []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || (s[i] == ' ') != (s[start] == ' ') {
			out = append(out, s[start:i])
			start = i
		}
	}
	return out
}
