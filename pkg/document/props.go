package document

import (
	"bytes"
	"encoding/json"
	"maps"
	"math"
	"slices"
)

// Props is the typed property record of a block. Every block type has its
// own variant; all of them carry the shared CommonStyle group.
type Props interface {
	StyleProps() CommonStyle
}

// TypographyCarrier is implemented by variants that carry text styling.
type TypographyCarrier interface {
	TypographyProps() Typography
}

// SizeCarrier is implemented by variants that carry dimensions.
type SizeCarrier interface {
	SizeProps() Size
}

// LinkCarrier is implemented by variants that can be a hyperlink.
type LinkCarrier interface {
	LinkProps() *Link
}

// AccessibilityCarrier is implemented by variants with assistive labels.
type AccessibilityCarrier interface {
	AccessibilityProps() Accessibility
}

// Fill is a background fill.
type Fill struct {
	Color Value `json:"color,omitzero"`
}

// Border describes a box border.
type Border struct {
	Width Value `json:"width,omitzero"`
	Color Value `json:"color,omitzero"`
	Style Value `json:"style,omitzero"`
}

// Corners holds a per-corner radius.
type Corners struct {
	TopLeft     Value `json:"topLeft,omitzero"`
	TopRight    Value `json:"topRight,omitzero"`
	BottomRight Value `json:"bottomRight,omitzero"`
	BottomLeft  Value `json:"bottomLeft,omitzero"`
}

// Uniform returns the shared radius when all four corners are set and equal.
func (c *Corners) Uniform() (Value, bool) {
	if c == nil || !c.TopLeft.IsSet() || c.TopLeft.Format() == "" {
		return Value{}, false
	}
	if c.TopLeft.Equal(c.TopRight) && c.TopLeft.Equal(c.BottomRight) && c.TopLeft.Equal(c.BottomLeft) {
		return c.TopLeft, true
	}
	return Value{}, false
}

// CommonStyle is the style group shared by every block type.
type CommonStyle struct {
	Fill    *Fill    `json:"fill,omitempty"`
	Border  *Border  `json:"border,omitempty"`
	Radius  Value    `json:"radius,omitzero"`
	Corners *Corners `json:"corners,omitempty"`
	Opacity Value    `json:"opacity,omitzero"`
	Padding Padding  `json:"padding,omitzero"`
	Align   Value    `json:"align,omitzero"`
}

func (c CommonStyle) StyleProps() CommonStyle { return c }

// FillColor returns the fill color or an empty string.
func (c CommonStyle) FillColor() string {
	if c.Fill == nil {
		return ""
	}
	return c.Fill.Color.Format()
}

// Typography groups text styling.
type Typography struct {
	FontSize      Value `json:"fontSize,omitzero"`
	FontWeight    Value `json:"fontWeight,omitzero"`
	TextAlign     Value `json:"textAlign,omitzero"`
	LineHeight    Value `json:"lineHeight,omitzero"`
	LetterSpacing Value `json:"letterSpacing,omitzero"`
	FontFamily    Value `json:"fontFamily,omitzero"`
	Color         Value `json:"color,omitzero"`
}

func (t Typography) TypographyProps() Typography { return t }

// Size groups image source and box dimensions.
type Size struct {
	Src    Value `json:"src,omitzero"`
	Alt    Value `json:"alt,omitzero"`
	Width  Value `json:"width,omitzero"`
	Height Value `json:"height,omitzero"`
}

func (s Size) SizeProps() Size { return s }

// Link is an optional hyperlink. Target set to true opens a new window.
type Link struct {
	Href   Value `json:"href,omitzero"`
	Target Value `json:"target,omitzero"`
}

// Linkable embeds an optional link.
type Linkable struct {
	Link *Link `json:"link,omitempty"`
}

func (l Linkable) LinkProps() *Link { return l.Link }

// Accessibility carries assistive text.
type Accessibility struct {
	AriaLabel Value `json:"ariaLabel,omitzero"`
}

func (a Accessibility) AccessibilityProps() Accessibility { return a }

type RootProps struct {
	CommonStyle
	Typography
}

type ContainerProps struct {
	CommonStyle
}

type BlockProps struct {
	CommonStyle
}

type ColumnsProps struct {
	CommonStyle
	ColumnCount Value `json:"columnCount,omitzero"`
}

// MaxColumnCount caps Count so that huge requested values stay within int.
// Renderers apply their own, smaller limit.
const MaxColumnCount = 1 << 16

// Count returns the explicit column count, if any, capped at MaxColumnCount.
func (p ColumnsProps) Count() (int, bool) {
	f, ok := p.ColumnCount.Number()
	if !ok || f < 1 || math.IsNaN(f) {
		return 0, false
	}
	return int(min(f, MaxColumnCount)), true
}

type ColumnProps struct {
	CommonStyle
	Size
}

type TextProps struct {
	CommonStyle
	Typography
	Linkable
	Content string `json:"content,omitempty"`
}

type HeadingProps struct {
	CommonStyle
	Typography
	Linkable
	Content string `json:"content,omitempty"`
	Level   int    `json:"level,omitempty"`
}

type ButtonProps struct {
	CommonStyle
	Typography
	Size
	Linkable
	Accessibility
	Label string `json:"label,omitempty"`
}

type ImageProps struct {
	CommonStyle
	Size
	Linkable
	Accessibility
}

type ListProps struct {
	CommonStyle
	Typography
	Items   []string `json:"items,omitempty"`
	Ordered bool     `json:"ordered,omitempty"`
}

type QuoteProps struct {
	CommonStyle
	Typography
	Content  string `json:"content,omitempty"`
	Citation string `json:"citation,omitempty"`
}

type SpacerProps struct {
	CommonStyle
	Size
}

type DividerProps struct {
	CommonStyle
}

// Social icon layouts and label placements.
const (
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"
	LabelBeside      = "beside"
	LabelBelow       = "below"
)

// SocialIcon is one network entry of a SocialIcons block.
type SocialIcon struct {
	Platform string `json:"platform"`
	Href     string `json:"href,omitempty"`
	IconSrc  string `json:"iconSrc,omitempty"`
	Label    string `json:"label,omitempty"`
}

type SocialIconsProps struct {
	CommonStyle
	Typography
	Icons         []SocialIcon `json:"icons,omitempty"`
	Layout        string       `json:"layout,omitempty"`
	ShowLabels    bool         `json:"showLabels,omitempty"`
	LabelPosition string       `json:"labelPosition,omitempty"`
	IconSize      Value        `json:"iconSize,omitzero"`
	Spacing       Value        `json:"spacing,omitzero"`
}

// UnknownProps holds the property bag of an unrecognized block type.
type UnknownProps struct {
	CommonStyle
	Raw map[string]any `json:"-"`
}

func (p UnknownProps) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Raw)
}

// NewProps returns an empty variant for t.
func NewProps(t BlockType) Props {
	switch t {
	case TypeRoot:
		return &RootProps{}
	case TypeContainer:
		return &ContainerProps{}
	case TypeBlock:
		return &BlockProps{}
	case TypeColumns:
		return &ColumnsProps{}
	case TypeColumn:
		return &ColumnProps{}
	case TypeText:
		return &TextProps{}
	case TypeHeading:
		return &HeadingProps{}
	case TypeButton:
		return &ButtonProps{}
	case TypeImage:
		return &ImageProps{}
	case TypeList:
		return &ListProps{}
	case TypeQuote:
		return &QuoteProps{}
	case TypeSpacer:
		return &SpacerProps{}
	case TypeDivider:
		return &DividerProps{}
	case TypeSocialIcons:
		return &SocialIconsProps{}
	default:
		return &UnknownProps{}
	}
}

// DecodeProps decodes a raw JSON property bag into the variant for t. Keys
// whose values have the wrong shape are skipped and returned in dropped so
// that one bad value never loses the rest of the block. A bag that is not
// a JSON object is dropped as a whole under the name "props".
func DecodeProps(t BlockType, raw json.RawMessage) (props Props, dropped []string) {
	props = NewProps(t)
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return props, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return props, []string{"props"}
	}

	kept := make(map[string]json.RawMessage, len(fields))
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		single, err := json.Marshal(map[string]json.RawMessage{key: fields[key]})
		if err != nil || decodeInto(NewProps(t), single) != nil {
			dropped = append(dropped, key)
			continue
		}
		kept[key] = fields[key]
	}

	all, err := json.Marshal(kept)
	if err != nil || decodeInto(props, all) != nil {
		return NewProps(t), slices.Sorted(maps.Keys(fields))
	}
	return props, dropped
}

func decodeInto(p Props, raw []byte) error {
	if unknown, ok := p.(*UnknownProps); ok {
		if err := json.Unmarshal(raw, &unknown.CommonStyle); err != nil {
			return err
		}
		return json.Unmarshal(raw, &unknown.Raw)
	}
	return json.Unmarshal(raw, p)
}
