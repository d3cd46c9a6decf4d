package markup

import "github.com/dmitrymomot/mailforge/pkg/document"

func typographyAttrs(_ document.BlockType, p document.Props, _ *options) Attrs {
	tc, ok := p.(document.TypographyCarrier)
	if !ok {
		return nil
	}
	ty := tc.TypographyProps()
	var out Attrs
	out = out.Set(attrFontSize, ty.FontSize.Format())
	out = out.Set(attrFontWeight, ty.FontWeight.Plain())
	if v, ok := ty.TextAlign.Text(); ok {
		out = out.Set(attrAlign, NormalizeAlign(v))
	}
	out = out.Set(attrLineHeight, ty.LineHeight.Plain())
	out = out.Set(attrLetterSpacing, ty.LetterSpacing.Format())
	out = out.Set(attrFontFamily, ty.FontFamily.Format())
	out = out.Set(attrColor, ty.Color.Format())
	return out
}

func accessibilityAttrs(t document.BlockType, p document.Props, _ *options) Attrs {
	ac, ok := p.(document.AccessibilityCarrier)
	if !ok {
		return nil
	}
	if t != document.TypeButton && t != document.TypeImage {
		return nil
	}
	return Attrs{}.Set(attrTitle, ac.AccessibilityProps().AriaLabel.Format())
}
