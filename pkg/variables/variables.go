package variables

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/validator"
)

// Mode selects how undeclared keys are treated.
type Mode string

const (
	Strict     Mode = "strict"
	Permissive Mode = "permissive"
)

// ParseMode accepts "strict" or "permissive". An empty string means Strict.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Strict, "":
		return Strict, nil
	case Permissive:
		return Permissive, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Property types understood by the type check. An empty type accepts any
// value.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Validate checks vars against schema and returns a new map with defaults
// applied. vars is never modified. On failure the error wraps
// ErrInvalidVariables and validator.ValidationErrors.
func Validate(vars map[string]any, schema document.VariablesSchema, mode Mode) (map[string]any, error) {
	data := make(map[string]any, len(vars)+len(schema.Properties))
	maps.Copy(data, vars)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var rules []validator.Rule

	if mode == Strict && !schema.AdditionalProperties {
		for _, key := range slices.Sorted(maps.Keys(vars)) {
			_, declared := schema.Properties[key]
			rules = append(rules, validator.Absent(key, !declared))
		}
	}

	for _, name := range slices.Sorted(maps.Keys(schema.Properties)) {
		prop := schema.Properties[name]
		value, present := vars[name]

		if !present {
			if prop.Default != nil {
				data[name] = prop.Default
				continue
			}
			rules = append(rules, validator.Present(name, !required[name]))
			continue
		}

		if value == nil {
			rules = append(rules, validator.Present(name, !required[name]))
			continue
		}
		rules = append(rules, typeRule(name, prop.Type, value))
	}

	// Required names without a property entry still have to be supplied.
	for _, name := range schema.Required {
		if _, declared := schema.Properties[name]; declared {
			continue
		}
		v, ok := vars[name]
		rules = append(rules, validator.Present(name, ok && v != nil))
	}

	if err := validator.Apply(rules...); err != nil {
		verrs := validator.ExtractValidationErrors(err).Sorted()
		return nil, fmt.Errorf("%w: %w", ErrInvalidVariables, verrs)
	}
	return data, nil
}

// Messages returns the "field: message" list carried by a Validate error,
// or nil when err holds no validation errors.
func Messages(err error) []string {
	verrs := validator.ExtractValidationErrors(err)
	if verrs == nil {
		return nil
	}
	return verrs.Messages()
}

func typeRule(field, typ string, value any) validator.Rule {
	return validator.Rule{
		Check: func() bool { return matchesType(typ, value) },
		Error: validator.ValidationError{
			Field:   field,
			Message: "must be " + article(typ) + " " + typ,
			Code:    "validation.type",
		},
	}
}

func article(word string) string {
	if word != "" && strings.ContainsRune("aeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}

func matchesType(typ string, value any) bool {
	switch typ {
	case "":
		return true
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeNumber:
		_, ok := number(value)
		return ok
	case TypeInteger:
		f, ok := number(value)
		return ok && f == math.Trunc(f) && !math.IsInf(f, 0)
	case TypeArray:
		rv := reflect.ValueOf(value)
		return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
	case TypeObject:
		return reflect.ValueOf(value).Kind() == reflect.Map
	default:
		return true
	}
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// SchemaFromVariables derives a schema from a document's declared
// variables. Every variable is a string. A non-empty default becomes the
// schema default; variables without one are required.
func SchemaFromVariables(vars []document.Variable) document.VariablesSchema {
	schema := document.VariablesSchema{
		Properties: make(map[string]document.PropertySchema, len(vars)),
		Required:   []string{},
	}
	for _, v := range vars {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			continue
		}
		prop := document.PropertySchema{Type: TypeString, Description: v.Label}
		if v.DefaultValue != "" {
			prop.Default = v.DefaultValue
		} else if !slices.Contains(schema.Required, name) {
			schema.Required = append(schema.Required, name)
		}
		schema.Properties[name] = prop
	}
	slices.Sort(schema.Required)
	return schema
}
