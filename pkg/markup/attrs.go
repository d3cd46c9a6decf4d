package markup

import (
	"html"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

// Attr is a single markup attribute.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list. Order is stable so that identical
// input always renders identical markup.
type Attrs []Attr

// Set replaces the value of name or appends it. Empty values are dropped.
func (a Attrs) Set(name, value string) Attrs {
	if value == "" {
		return a
	}
	for i := range a {
		if a[i].Name == name {
			a[i].Value = value
			return a
		}
	}
	return append(a, Attr{Name: name, Value: value})
}

// Get returns the value of name.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Rename returns a copy of a with attribute from renamed to to.
func (a Attrs) Rename(from, to string) Attrs {
	out := make(Attrs, 0, len(a))
	for _, attr := range a {
		if attr.Name == from {
			out = out.Set(to, attr.Value)
			continue
		}
		out = out.Set(attr.Name, attr.Value)
	}
	return out
}

// Merge applies b on top of a.
func (a Attrs) Merge(b Attrs) Attrs {
	out := make(Attrs, 0, len(a)+len(b))
	out = append(out, a...)
	for _, attr := range b {
		out = out.Set(attr.Name, attr.Value)
	}
	return out
}

// String renders the list as ` name="value"` pairs.
func (a Attrs) String() string {
	var sb strings.Builder
	for _, attr := range a {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(attr.Value))
		sb.WriteByte('"')
	}
	return sb.String()
}

// Converter maps a block's props to attributes for one property domain.
type Converter func(t document.BlockType, p document.Props, o *options) Attrs

// converters run in this order; later domains win on name collisions.
var converters = []Converter{
	layoutAttrs,
	linkAttrs,
	sizeAttrs,
	styleAttrs,
	typographyAttrs,
	accessibilityAttrs,
}

// ConvertAttrs runs every attribute converter over a block's props using
// the default options.
func ConvertAttrs(t document.BlockType, p document.Props) Attrs {
	return convertAttrs(t, p, defaultOptions())
}

func convertAttrs(t document.BlockType, p document.Props, o *options) Attrs {
	if p == nil {
		p = document.NewProps(t)
	}
	var out Attrs
	for _, conv := range converters {
		out = out.Merge(conv(t, p, o))
	}
	return out
}

// sectionAttrs adapts block attributes for section and column tags, which
// take a plain background color.
func sectionAttrs(a Attrs) Attrs {
	return a.Rename(attrContainerBackground, attrBackground)
}
