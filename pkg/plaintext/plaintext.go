package plaintext

import (
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/mailforge/pkg/sanitizer"
)

// DefaultWidth is the column at which lines are wrapped.
const DefaultWidth = 80

// Option configures FromHTML.
type Option func(*options)

type options struct {
	width uint
}

// WithWidth overrides DefaultWidth. Zero disables wrapping.
func WithWidth(n uint) Option {
	return func(o *options) { o.width = n }
}

// FromHTML derives the plaintext alternative of an email. Anchors render as
// their visible text, images are dropped, and hidden or non-visual elements
// are skipped.
func FromHTML(doc string, opts ...Option) (string, error) {
	o := &options{width: DefaultWidth}
	for _, opt := range opts {
		opt(o)
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrParse, err)
	}

	w := &writer{}
	w.walk(root)
	// Composed form keeps decomposed accents from counting as extra columns.
	return layout(norm.NFC.String(w.b.String()), o.width), nil
}

var skipped = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Title:    true,
	atom.Style:    true,
	atom.Script:   true,
	atom.Noscript: true,
	atom.Img:      true,
	atom.Picture:  true,
	atom.Svg:      true,
	atom.Template: true,
}

// paragraphs get a blank line around them; blocks a single line break.
var paragraphs = map[atom.Atom]bool{
	atom.P: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Blockquote: true, atom.Ul: true, atom.Ol: true,
	atom.Pre: true,
}

var blocks = map[atom.Atom]bool{
	atom.Div: true, atom.Table: true, atom.Tr: true, atom.Tbody: true, atom.Thead: true,
	atom.Tfoot: true, atom.Section: true, atom.Article: true, atom.Header: true,
	atom.Footer: true, atom.Center: true, atom.Body: true,
}

// writer accumulates text with pending line breaks. Breaks requested by
// adjacent blocks collapse to the largest one instead of adding up.
type writer struct {
	b       strings.Builder
	pending int
	started bool
}

var spaceReplacer = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")

func (w *writer) text(s string) {
	s = spaceReplacer.Replace(s)
	if strings.TrimSpace(s) == "" {
		if s != "" && w.started && w.pending == 0 {
			w.b.WriteByte(' ')
		}
		return
	}
	if w.started && w.pending > 0 {
		w.b.WriteString(strings.Repeat("\n", w.pending))
	}
	w.pending = 0
	w.started = true
	w.b.WriteString(s)
}

func (w *writer) brk(n int) {
	w.pending = max(w.pending, n)
}

func (w *writer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		if skipped[n.DataAtom] || hidden(n) {
			return
		}
	}

	switch {
	case n.DataAtom == atom.Br:
		w.brk(1)
	case n.DataAtom == atom.A:
		w.anchor(n)
	case n.DataAtom == atom.Hr:
		w.brk(2)
		w.text(strings.Repeat("-", 20))
		w.brk(2)
	case n.DataAtom == atom.Td || n.DataAtom == atom.Th:
		w.text(" ")
		w.children(n)
		w.text(" ")
	case n.DataAtom == atom.Li:
		w.brk(1)
		w.text("* ")
		w.children(n)
		w.brk(1)
	case paragraphs[n.DataAtom]:
		w.brk(2)
		w.children(n)
		w.brk(2)
	case blocks[n.DataAtom]:
		w.brk(1)
		w.children(n)
		w.brk(1)
	default:
		w.children(n)
	}
}

func (w *writer) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// anchor writes the visible text of a link. When the text spells out the
// target, ignoring case and a trailing slash, the href itself is written.
func (w *writer) anchor(n *html.Node) {
	inner := &writer{}
	inner.children(n)
	text := sanitizer.NormalizeWhitespace(inner.b.String())

	href := strings.TrimSpace(attr(n, "href"))
	if href != "" && strings.EqualFold(strings.TrimSuffix(text, "/"), strings.TrimSuffix(href, "/")) {
		text = href
	}
	w.text(text)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hidden reports inline display:none, which email HTML uses for preview text.
func hidden(n *html.Node) bool {
	style := strings.ToLower(attr(n, "style"))
	if style == "" {
		return false
	}
	return strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none")
}

// layout collapses whitespace inside lines, keeps at most one blank line
// between paragraphs, and wraps each line.
func layout(s string, width uint) string {
	var out []string
	blank := true
	for line := range strings.SplitSeq(s, "\n") {
		line = sanitizer.NormalizeWhitespace(strings.ReplaceAll(line, "\u00a0", " "))
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		if width > 0 {
			line = wordwrap.WrapString(line, width)
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
