package markup

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

func (c *compiler) root(n *document.BlockNode, meta document.Metadata) (string, Diagnostics) {
	props := n.PropsOrDefault()
	env := envelope{
		title:      meta.Title,
		preheader:  meta.Preheader,
		background: props.StyleProps().FillColor(),
	}
	if tc, ok := props.(document.TypographyCarrier); ok {
		env.fontFamily = tc.TypographyProps().FontFamily.Format()
	}

	var (
		sb   strings.Builder
		diag Diagnostics
	)
	for _, child := range n.Children {
		s, d := c.node(child, 1)
		diag = diag.Merge(d)
		if child != nil && child.Type.SectionLevel() {
			sb.WriteString(s)
			continue
		}
		sb.WriteString(wrapSection(s, nil))
	}
	return c.envelope(env, sb.String()), diag
}

func (c *compiler) container(n *document.BlockNode, depth int) (string, Diagnostics) {
	inner, diag := c.children(n.Children, depth)
	return shell(TagSection, sectionAttrs(c.attrs(n)), shell(TagColumn, nil, inner)), diag
}

// block groups consecutive non-section children into their own
// section/column pair and passes section-level children through.
func (c *compiler) block(n *document.BlockNode, depth int) (string, Diagnostics) {
	allSections := true
	for _, child := range n.Children {
		if child == nil || !child.Type.SectionLevel() {
			allSections = false
			break
		}
	}
	if allSections {
		return c.children(n.Children, depth)
	}

	attrs := sectionAttrs(c.attrs(n))
	var (
		sb   strings.Builder
		run  strings.Builder
		diag Diagnostics
	)
	flush := func() {
		if run.Len() > 0 {
			sb.WriteString(shell(TagSection, attrs, shell(TagColumn, nil, run.String())))
			run.Reset()
		}
	}
	for _, child := range n.Children {
		s, d := c.node(child, depth+1)
		diag = diag.Merge(d)
		if child != nil && child.Type.SectionLevel() {
			flush()
			sb.WriteString(s)
			continue
		}
		run.WriteString(s)
	}
	flush()
	return sb.String(), diag
}

// maxColumns bounds the columns emitted for a requested columnCount.
// Children beyond it are still rendered.
const maxColumns = 12

func (c *compiler) columns(n *document.BlockNode, depth int) (string, Diagnostics) {
	attrs := sectionAttrs(c.attrs(n))
	count, explicit := 0, false
	if p, ok := n.PropsOrDefault().(*document.ColumnsProps); ok {
		count, explicit = p.Count()
	}

	total := len(n.Children)
	var diag Diagnostics
	if count > maxColumns {
		diag = diag.Merge(warnf("columns block %q has columnCount %d; clamped to %d", n.ID, count, maxColumns))
		count = maxColumns
	}
	switch {
	case !explicit && total == 0:
		return shell(TagSection, attrs, ""), warnf("columns block %q has no columns", n.ID)
	case !explicit:
		count = total
	case total == 0:
		diag = diag.Merge(warnf("columns block %q has columnCount %d but no children; emitting empty columns", n.ID, count))
	case total > count:
		diag = diag.Merge(warnf("columns block %q has %d children for columnCount %d; rendering all children", n.ID, total, count))
		count = total
	case total < count:
		diag = diag.Merge(warnf("columns block %q has %d children for columnCount %d; padding with empty columns", n.ID, total, count))
	}

	width := Attrs{}.Set(attrWidth, strconv.Itoa(max(100/count, 1))+"%")
	var sb strings.Builder
	for _, child := range n.Children {
		s, d := c.node(child, depth+1)
		diag = diag.Merge(d)
		if child != nil && child.Type == document.TypeColumn {
			sb.WriteString(s)
			continue
		}
		sb.WriteString(shell(TagColumn, width, s))
	}
	for i := total; i < count; i++ {
		sb.WriteString(shell(TagColumn, width, ""))
	}
	return shell(TagSection, attrs, sb.String()), diag
}

func (c *compiler) column(n *document.BlockNode, depth int) (string, Diagnostics) {
	inner, diag := c.children(n.Children, depth)
	return element(TagColumn, sectionAttrs(c.attrs(n)), inner), diag
}
