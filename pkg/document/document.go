package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// BlockType identifies the kind of a BlockNode.
type BlockType string

const (
	TypeRoot        BlockType = "root"
	TypeContainer   BlockType = "container"
	TypeBlock       BlockType = "block"
	TypeColumns     BlockType = "columns"
	TypeColumn      BlockType = "column"
	TypeText        BlockType = "text"
	TypeHeading     BlockType = "heading"
	TypeButton      BlockType = "button"
	TypeImage       BlockType = "image"
	TypeList        BlockType = "list"
	TypeQuote       BlockType = "quote"
	TypeSpacer      BlockType = "spacer"
	TypeDivider     BlockType = "divider"
	TypeSocialIcons BlockType = "socialIcons"
)

var knownTypes = map[string]BlockType{}

func init() {
	for _, t := range []BlockType{
		TypeRoot, TypeContainer, TypeBlock, TypeColumns, TypeColumn,
		TypeText, TypeHeading, TypeButton, TypeImage, TypeList,
		TypeQuote, TypeSpacer, TypeDivider, TypeSocialIcons,
	} {
		knownTypes[strings.ToLower(string(t))] = t
	}
}

// ParseBlockType resolves a type name case-insensitively. Unknown names are
// returned unchanged with ok set to false.
func ParseBlockType(name string) (BlockType, bool) {
	if t, ok := knownTypes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, true
	}
	return BlockType(name), false
}

// Known reports whether t belongs to the closed set of block types.
func (t BlockType) Known() bool {
	_, ok := knownTypes[strings.ToLower(string(t))]
	return ok
}

// SectionLevel reports whether blocks of type t produce their own section.
func (t BlockType) SectionLevel() bool {
	return t == TypeContainer || t == TypeBlock || t == TypeColumns
}

// BlockNode is one node of the document tree. Children are rendered in order.
type BlockNode struct {
	ID       string       `json:"id"`
	Type     BlockType    `json:"type"`
	Props    Props        `json:"props,omitempty"`
	Children []*BlockNode `json:"children,omitempty"`

	// DroppedProps names the props skipped during decoding because their
	// values had the wrong shape.
	DroppedProps []string `json:"-"`
}

// PropsOrDefault returns the node props, or an empty variant when unset.
func (n *BlockNode) PropsOrDefault() Props {
	if n.Props == nil {
		return NewProps(n.Type)
	}
	return n.Props
}

type blockNodeJSON struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Props    json.RawMessage `json:"props,omitempty"`
	Children []*BlockNode    `json:"children,omitempty"`
}

func (n *BlockNode) UnmarshalJSON(data []byte) error {
	var aux blockNodeJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, _ := ParseBlockType(aux.Type)
	props, dropped := DecodeProps(t, aux.Props)
	n.ID = aux.ID
	n.Type = t
	n.Props = props
	n.Children = aux.Children
	n.DroppedProps = dropped
	return nil
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the visited node.
func Walk(n *BlockNode, fn func(node *BlockNode, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *BlockNode, depth int, fn func(*BlockNode, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Find returns the first node with the given id.
func Find(root *BlockNode, id string) *BlockNode {
	var found *BlockNode
	Walk(root, func(n *BlockNode, _ int) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Metadata describes the email envelope of a document.
type Metadata struct {
	Title       string    `json:"title,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Preheader   string    `json:"preheader,omitempty"`
	SenderName  string    `json:"senderName,omitempty"`
	SenderEmail string    `json:"senderEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Variable is a per-recipient placeholder declared by the document.
type Variable struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Label        string `json:"label,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

// Document is the editor's visual email model.
type Document struct {
	Version   int        `json:"version"`
	Root      *BlockNode `json:"root"`
	Metadata  Metadata   `json:"metadata"`
	Variables []Variable `json:"variables,omitempty"`
}

// Decode parses a JSON document. Only malformed JSON fails; props with
// wrongly shaped values are dropped per key and listed in DroppedProps.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}
