package markup

import "github.com/dmitrymomot/mailforge/pkg/document"

func styleAttrs(t document.BlockType, p document.Props, _ *options) Attrs {
	style := p.StyleProps()
	var out Attrs

	if color := style.FillColor(); color != "" {
		if t == document.TypeButton {
			out = out.Set(attrBackground, color)
		} else {
			out = out.Set(attrContainerBackground, color)
		}
	}

	if b := style.Border; b != nil {
		out = out.Set(attrBorderWidth, b.Width.Format())
		out = out.Set(attrBorderColor, b.Color.Format())
		out = out.Set(attrBorderStyle, b.Style.Format())
	}

	if t == document.TypeButton {
		if r := style.Radius.Format(); r != "" {
			out = out.Set(attrBorderRadius, r)
		} else if r, ok := style.Corners.Uniform(); ok {
			out = out.Set(attrBorderRadius, r.Format())
		}
	}
	return out
}
