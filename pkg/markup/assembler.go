package markup

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// Result is the output of the compile stage. Markup is returned even when
// Errors is non-empty so that callers can inspect partial output.
type Result struct {
	Markup   string   `json:"markup"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// Err returns ErrCompile joined with every engine error, or nil.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrCompile, strings.Join(r.Errors, "; "))
}

// Compile turns a document tree into intermediate markup. It never panics on
// malformed trees: unknown block types compile to an empty string at that
// node and are reported in Errors while the rest of the tree still compiles.
func Compile(doc *document.Document, opts ...Option) Result {
	if doc == nil || doc.Root == nil {
		return newResult("", errorf(ErrMissingRoot, "document has no root block"))
	}
	if doc.Root.Type != document.TypeRoot {
		return newResult("", errorf(ErrMissingRoot, "entry block %q has type %q, want %q", doc.Root.ID, doc.Root.Type, document.TypeRoot))
	}
	c := &compiler{opts: buildOptions(opts)}
	out, diag := c.root(doc.Root, doc.Metadata)
	return newResult(out, droppedProps(doc.Root).Merge(diag))
}

func newResult(markup string, d Diagnostics) Result {
	return Result{
		Markup:   markup,
		Warnings: nonNil(d.Warnings),
		Errors:   nonNil(d.Errors),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// compiler carries read-only options through the recursive descent.
type compiler struct {
	opts *options
}

func (c *compiler) node(n *document.BlockNode, depth int) (string, Diagnostics) {
	if n == nil {
		return "", Diagnostics{}
	}
	if depth > c.opts.maxDepth {
		return "", errorf(ErrMaxDepth, "block %q is nested deeper than %d levels", n.ID, c.opts.maxDepth)
	}
	s, diag := c.render(n, depth)
	return s, droppedProps(n).Merge(diag)
}

// droppedProps warns about props that were skipped while decoding n.
func droppedProps(n *document.BlockNode) Diagnostics {
	if len(n.DroppedProps) == 0 {
		return Diagnostics{}
	}
	return warnf("block %q (%s): ignored props with invalid values: %s", n.ID, n.Type, strings.Join(n.DroppedProps, ", "))
}

func (c *compiler) render(n *document.BlockNode, depth int) (string, Diagnostics) {
	switch n.Type {
	case document.TypeRoot:
		return "", errorf(ErrUnknownBlockType, "block %q: root is only valid as the entry block", n.ID)
	case document.TypeContainer:
		return c.container(n, depth)
	case document.TypeBlock:
		return c.block(n, depth)
	case document.TypeColumns:
		return c.columns(n, depth)
	case document.TypeColumn:
		return c.column(n, depth)
	case document.TypeSocialIcons:
		return c.social(n)
	}
	if tag, ok := leafTags[n.Type]; ok {
		return c.leaf(n, tag)
	}
	return "", errorf(ErrUnknownBlockType, "block %q has unrecognized type %q", n.ID, n.Type)
}

func (c *compiler) children(nodes []*document.BlockNode, depth int) (string, Diagnostics) {
	var (
		sb   strings.Builder
		diag Diagnostics
	)
	for _, child := range nodes {
		s, d := c.node(child, depth+1)
		sb.WriteString(s)
		diag = diag.Merge(d)
	}
	return sb.String(), diag
}

func (c *compiler) attrs(n *document.BlockNode) Attrs {
	return convertAttrs(n.Type, n.PropsOrDefault(), c.opts)
}

// wrapSection puts content into a zero-padding section/column pair.
func wrapSection(inner string, section Attrs) string {
	if inner == "" {
		return ""
	}
	attrs := Attrs{{Name: attrPadding, Value: "0px"}}.Merge(section)
	return shell(TagSection, attrs, shell(TagColumn, Attrs{{Name: attrPadding, Value: "0px"}}, inner))
}

type envelope struct {
	title      string
	preheader  string
	fontFamily string
	background string
}

func (c *compiler) envelope(env envelope, body string) string {
	font := env.fontFamily
	if font == "" {
		font = defaultFontFamily
	}
	bg := env.background
	if bg == "" {
		bg = defaultBodyBackground
	}

	var sb strings.Builder
	sb.WriteString("<" + TagMJML + ">\n<" + TagHead + ">")
	if env.title != "" {
		sb.WriteString(shell(TagTitle, nil, html.EscapeString(env.title)))
	}
	if env.preheader != "" {
		sb.WriteString(shell(TagPreview, nil, html.EscapeString(env.preheader)))
	}
	sb.WriteString(shell(TagAttributes, nil, element(TagAll, Attrs{}.Set(attrFontFamily, font), "")))
	sb.WriteString(shell(TagStyle, nil, resetCSS))
	sb.WriteString("</" + TagHead + ">\n")
	bodyAttrs := Attrs{}.
		Set(attrBackground, bg).
		Set(attrWidth, strconv.Itoa(c.opts.canvasWidth)+"px")
	sb.WriteString(shell(TagBody, bodyAttrs, body))
	sb.WriteString("\n</" + TagMJML + ">")
	return sb.String()
}
