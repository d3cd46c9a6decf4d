package markup

import (
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// CompileElements is the front end for flat element documents. Each element
// is decoded into the props variant of its block type, rendered with the same
// converters and leaf renderers as the block tree, and placed in its own
// section/column pair.
func CompileElements(doc *document.ElementDocument, opts ...Option) Result {
	if doc == nil {
		return newResult("", errorf(ErrMissingRoot, "element document is empty"))
	}
	c := &compiler{opts: buildOptions(opts)}
	section := Attrs{}.Set(attrBackground, doc.Settings.ContentBackground)

	var (
		sb   strings.Builder
		diag Diagnostics
	)
	for i, el := range doc.Elements {
		t, ok := el.BlockType()
		if !ok {
			diag = diag.Merge(errorf(ErrUnknownElement, "element %d (%q) has unrecognized type %q", i, el.ID, el.Type))
			continue
		}
		props, dropped, err := el.TypedProps()
		if err != nil {
			diag = diag.Merge(errorf(ErrInvalidProps, "element %d (%q): %v", i, el.ID, err))
			continue
		}
		s, d := c.node(&document.BlockNode{ID: el.ID, Type: t, Props: props, DroppedProps: dropped}, 1)
		diag = diag.Merge(d)
		sb.WriteString(wrapSection(s, section))
	}

	env := envelope{
		title:      doc.Settings.Title,
		preheader:  doc.Settings.Preheader,
		fontFamily: doc.Settings.FontFamily,
		background: doc.Settings.BackgroundColor,
	}
	return newResult(c.envelope(env, sb.String()), diag)
}
