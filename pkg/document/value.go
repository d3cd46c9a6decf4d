package document

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is a dynamically typed property value as produced by the editor:
// a number, string, boolean, object, array or null.
// The zero Value is unset.
type Value struct {
	raw any
}

// NewValue wraps v. Integer kinds are normalized to float64 so that values
// built in code and values decoded from JSON behave the same.
func NewValue(v any) Value {
	switch n := v.(type) {
	case int:
		return Value{raw: float64(n)}
	case int32:
		return Value{raw: float64(n)}
	case int64:
		return Value{raw: float64(n)}
	case float32:
		return Value{raw: float64(n)}
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return Value{raw: f}
		}
		return Value{raw: n.String()}
	}
	return Value{raw: v}
}

// IsSet reports whether the value holds anything other than null.
func (v Value) IsSet() bool {
	return v.raw != nil
}

// IsZero lets encoding/json omit unset values with omitzero.
func (v Value) IsZero() bool {
	return v.raw == nil
}

// Raw returns the underlying decoded value.
func (v Value) Raw() any {
	return v.raw
}

// Number returns the value as float64 when it holds a number.
func (v Value) Number() (float64, bool) {
	f, ok := v.raw.(float64)
	return f, ok
}

// Text returns the value when it holds a string.
func (v Value) Text() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Bool returns the value when it holds a boolean.
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok
}

// Format renders the value as an attribute string: numbers get a px suffix,
// booleans render as "true"/"false", strings pass through, and objects,
// arrays and null render as an empty string.
func (v Value) Format() string {
	switch x := v.raw.(type) {
	case float64:
		return FormatNumber(x) + "px"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Plain renders the value like Format but without a unit suffix on numbers.
func (v Value) Plain() string {
	if f, ok := v.raw.(float64); ok {
		return FormatNumber(f)
	}
	return v.Format()
}

// Equal compares the formatted representation of two values.
func (v Value) Equal(o Value) bool {
	return v.Format() == o.Format()
}

// FormatNumber renders f without trailing zeros or exponent notation.
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}
	*v = NewValue(x)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

// Padding is either a single uniform value or a four-sided box.
type Padding struct {
	Uniform Value
	Top     Value
	Right   Value
	Bottom  Value
	Left    Value
	boxed   bool
}

// UniformPadding returns a padding with the same value on every side.
func UniformPadding(v any) Padding {
	return Padding{Uniform: NewValue(v)}
}

// BoxPadding returns a four-sided padding. Nil sides are treated as unset.
func BoxPadding(top, right, bottom, left any) Padding {
	return Padding{
		Top:    NewValue(top),
		Right:  NewValue(right),
		Bottom: NewValue(bottom),
		Left:   NewValue(left),
		boxed:  true,
	}
}

// IsSet reports whether any padding was provided.
func (p Padding) IsSet() bool {
	return p.boxed || p.Uniform.IsSet()
}

// Format renders the padding as a single value or as a
// "top right bottom left" string where missing sides default to 0.
func (p Padding) Format() string {
	if !p.boxed {
		return p.Uniform.Format()
	}
	sides := [4]Value{p.Top, p.Right, p.Bottom, p.Left}
	parts := make([]string, 0, len(sides))
	for _, s := range sides {
		f := s.Format()
		if f == "" {
			f = "0px"
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, " ")
}

type paddingBox struct {
	Top    Value `json:"top"`
	Right  Value `json:"right"`
	Bottom Value `json:"bottom"`
	Left   Value `json:"left"`
}

func (p *Padding) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var box paddingBox
		if err := json.Unmarshal(trimmed, &box); err != nil {
			return err
		}
		*p = Padding{Top: box.Top, Right: box.Right, Bottom: box.Bottom, Left: box.Left, boxed: true}
		return nil
	}
	var v Value
	if err := v.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	*p = Padding{Uniform: v}
	return nil
}

func (p Padding) MarshalJSON() ([]byte, error) {
	if p.boxed {
		return json.Marshal(paddingBox{Top: p.Top, Right: p.Right, Bottom: p.Bottom, Left: p.Left})
	}
	return json.Marshal(p.Uniform)
}

// IsZero lets encoding/json omit unset padding with omitzero.
func (p Padding) IsZero() bool {
	return !p.IsSet()
}
