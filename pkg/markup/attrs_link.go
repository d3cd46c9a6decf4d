package markup

import "github.com/dmitrymomot/mailforge/pkg/document"

func linkAttrs(_ document.BlockType, p document.Props, _ *options) Attrs {
	lc, ok := p.(document.LinkCarrier)
	if !ok {
		return nil
	}
	link := lc.LinkProps()
	if link == nil {
		return nil
	}
	href, ok := link.Href.Text()
	if !ok || href == "" {
		return nil
	}
	out := Attrs{}.Set(attrHref, href)
	if blank, _ := link.Target.Bool(); blank {
		out = out.Set(attrTarget, "_blank")
	}
	return out
}
