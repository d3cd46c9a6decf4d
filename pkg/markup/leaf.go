package markup

import (
	"html"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

func (c *compiler) leaf(n *document.BlockNode, tag string) (string, Diagnostics) {
	var diag Diagnostics
	if len(n.Children) > 0 {
		diag = warnf("block %q of type %q cannot have children; %d ignored", n.ID, n.Type, len(n.Children))
	}
	return element(tag, c.attrs(n), leafContent(n.PropsOrDefault())), diag
}

// leafContent renders the inner HTML of a leaf block. Blocks without inner
// content (image, spacer, divider) return an empty string.
func leafContent(p document.Props) string {
	switch v := p.(type) {
	case *document.TextProps:
		return escapeMultiline(v.Content)
	case *document.HeadingProps:
		if v.Content == "" {
			return ""
		}
		level := v.Level
		if level < 1 || level > 6 {
			level = 2
		}
		h := "h" + strconv.Itoa(level)
		return "<" + h + ` style="margin:0;font-size:inherit;font-weight:inherit;">` + escapeMultiline(v.Content) + "</" + h + ">"
	case *document.ButtonProps:
		return html.EscapeString(v.Label)
	case *document.ListProps:
		return listContent(v)
	case *document.QuoteProps:
		return quoteContent(v)
	}
	return ""
}

func escapeMultiline(s string) string {
	if s == "" {
		return ""
	}
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br />")
}

func listContent(p *document.ListProps) string {
	if len(p.Items) == 0 {
		return ""
	}
	tag := "ul"
	if p.Ordered {
		tag = "ol"
	}
	var sb strings.Builder
	sb.WriteString("<" + tag + ` style="margin:0;padding-left:20px;">`)
	for _, item := range p.Items {
		sb.WriteString("<li>")
		sb.WriteString(escapeMultiline(item))
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + tag + ">")
	return sb.String()
}

func quoteContent(p *document.QuoteProps) string {
	if p.Content == "" && p.Citation == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<blockquote style="margin:0;padding-left:12px;border-left:3px solid #D4D4D8;">`)
	sb.WriteString(escapeMultiline(p.Content))
	if p.Citation != "" {
		sb.WriteString(`<footer style="margin-top:8px;font-size:0.875em;">&#8212; `)
		sb.WriteString(html.EscapeString(p.Citation))
		sb.WriteString("</footer>")
	}
	sb.WriteString("</blockquote>")
	return sb.String()
}
