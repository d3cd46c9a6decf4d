package markup

import (
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// alignable lists the block types whose tags accept an align attribute.
var alignable = map[document.BlockType]bool{
	document.TypeText:        true,
	document.TypeHeading:     true,
	document.TypeButton:      true,
	document.TypeImage:       true,
	document.TypeList:        true,
	document.TypeQuote:       true,
	document.TypeDivider:     true,
	document.TypeSocialIcons: true,
}

// NormalizeAlign maps flexbox alignment keywords onto markup keywords.
func NormalizeAlign(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "flex-start", "stretch", "baseline", "start":
		return "left"
	case "flex-end", "end":
		return "right"
	default:
		return strings.ToLower(strings.TrimSpace(v))
	}
}

func layoutAttrs(t document.BlockType, p document.Props, _ *options) Attrs {
	style := p.StyleProps()
	var out Attrs
	if alignable[t] {
		if v, ok := style.Align.Text(); ok {
			out = out.Set(attrAlign, NormalizeAlign(v))
		}
	}
	if style.Padding.IsSet() {
		out = out.Set(attrPadding, style.Padding.Format())
	}
	return out
}
