package markup

import (
	"math"
	"strconv"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// DefaultCanvasWidth is the reference width, in pixels, used to resolve
// percentage image widths.
const DefaultCanvasWidth = 600

var sizedWidth = map[document.BlockType]bool{
	document.TypeButton: true,
	document.TypeImage:  true,
	document.TypeColumn: true,
}

func sizeAttrs(t document.BlockType, p document.Props, o *options) Attrs {
	sc, ok := p.(document.SizeCarrier)
	if !ok {
		return nil
	}
	size := sc.SizeProps()
	var out Attrs
	if t == document.TypeImage {
		out = out.Set(attrSrc, size.Src.Format())
		out = out.Set(attrAlt, size.Alt.Format())
	}
	if sizedWidth[t] {
		if t == document.TypeImage {
			if px, ok := percentToPixels(size.Width, o.canvasWidth); ok {
				out = out.Set(attrWidth, px)
				out = out.Set(attrFluidOnMobile, "true")
			} else {
				out = out.Set(attrWidth, notAuto(size.Width.Format()))
			}
		} else {
			out = out.Set(attrWidth, notAuto(size.Width.Format()))
		}
	}
	out = out.Set(attrHeight, notAuto(size.Height.Format()))
	return out
}

// percentToPixels converts a "NN%" width into whole pixels of the canvas.
func percentToPixels(v document.Value, canvas int) (string, bool) {
	s, ok := v.Text()
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return "", false
	}
	pct, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
	if err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "", false
	}
	px := math.Round(float64(canvas) * pct / 100)
	return document.FormatNumber(px) + "px", true
}

func notAuto(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), "auto") {
		return ""
	}
	return v
}
