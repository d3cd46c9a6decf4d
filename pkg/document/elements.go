package document

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ElementSettings are the document-wide settings of an element document.
type ElementSettings struct {
	BackgroundColor   string `json:"backgroundColor,omitempty"`
	ContentBackground string `json:"contentBackground,omitempty"`
	FontFamily        string `json:"fontFamily,omitempty"`
	Title             string `json:"title,omitempty"`
	Preheader         string `json:"preheader,omitempty"`
}

// Element is one entry of a flat element document: a type name plus an
// open property bag.
type Element struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props,omitempty"`
}

// ElementDocument is the flat alternative to the block tree.
type ElementDocument struct {
	Settings ElementSettings `json:"settings"`
	Elements []Element       `json:"elements"`
}

var elementTypes = map[string]BlockType{
	"heading": TypeHeading,
	"text":    TypeText,
	"button":  TypeButton,
	"image":   TypeImage,
	"divider": TypeDivider,
	"spacer":  TypeSpacer,
	"social":  TypeSocialIcons,
	"list":    TypeList,
	"quote":   TypeQuote,
}

// BlockType maps the element type onto the block type sharing its props.
func (e Element) BlockType() (BlockType, bool) {
	t, ok := elementTypes[strings.ToLower(strings.TrimSpace(e.Type))]
	return t, ok
}

// TypedProps decodes the property bag into the variant of the mapped block
// type. Keys with wrongly shaped values are skipped and returned in dropped,
// as with DecodeProps.
func (e Element) TypedProps() (props Props, dropped []string, err error) {
	t, ok := e.BlockType()
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownElement, e.Type)
	}
	if len(e.Props) == 0 {
		return NewProps(t), nil, nil
	}
	raw, err := json.Marshal(e.Props)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidProps, err)
	}
	props, dropped = DecodeProps(t, raw)
	return props, dropped, nil
}

// DecodeElements parses a JSON element document.
func DecodeElements(data []byte) (*ElementDocument, error) {
	var doc ElementDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}
