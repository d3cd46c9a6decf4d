package variables_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/validator"
	"github.com/dmitrymomot/mailforge/pkg/variables"
)

var schema = document.VariablesSchema{
	Properties: map[string]document.PropertySchema{
		"firstName": {Type: variables.TypeString},
		"plan":      {Type: variables.TypeString, Default: "free"},
		"seats":     {Type: variables.TypeInteger},
	},
	Required: []string{"firstName"},
}

func TestValidate_Modes(t *testing.T) {
	t.Parallel()

	input := map[string]any{"firstName": "Ann", "coupon": "SPRING"}

	t.Run("strict rejects undeclared key", func(t *testing.T) {
		t.Parallel()

		data, err := variables.Validate(input, schema, variables.Strict)
		require.Error(t, err)
		assert.Nil(t, data)
		assert.ErrorIs(t, err, variables.ErrInvalidVariables)
		assert.Equal(t, []string{"coupon: is not allowed"}, variables.Messages(err))
	})

	t.Run("permissive keeps undeclared key and applies defaults", func(t *testing.T) {
		t.Parallel()

		data, err := variables.Validate(input, schema, variables.Permissive)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"firstName": "Ann",
			"coupon":    "SPRING",
			"plan":      "free",
		}, data)
		assert.NotContains(t, input, "plan")
	})

	t.Run("strict honours additionalProperties", func(t *testing.T) {
		t.Parallel()

		open := schema
		open.AdditionalProperties = true
		data, err := variables.Validate(input, open, variables.Strict)
		require.NoError(t, err)
		assert.Equal(t, "SPRING", data["coupon"])
	})

	t.Run("missing required field fails in both modes", func(t *testing.T) {
		t.Parallel()

		for _, mode := range []variables.Mode{variables.Strict, variables.Permissive} {
			_, err := variables.Validate(map[string]any{}, schema, mode)
			require.Error(t, err, mode)
			assert.Equal(t, []string{"firstName: is required"}, variables.Messages(err), mode)
		}
	})
}

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	t.Run("explicit value wins over default", func(t *testing.T) {
		t.Parallel()

		data, err := variables.Validate(map[string]any{"firstName": "Ann", "plan": "pro"}, schema, variables.Strict)
		require.NoError(t, err)
		assert.Equal(t, "pro", data["plan"])
	})

	t.Run("empty string is not omission", func(t *testing.T) {
		t.Parallel()

		data, err := variables.Validate(map[string]any{"firstName": "Ann", "plan": ""}, schema, variables.Strict)
		require.NoError(t, err)
		assert.Equal(t, "", data["plan"])
	})

	t.Run("null required value is missing", func(t *testing.T) {
		t.Parallel()

		_, err := variables.Validate(map[string]any{"firstName": nil}, schema, variables.Strict)
		assert.Equal(t, []string{"firstName: is required"}, variables.Messages(err))
	})
}

func TestValidate_Types(t *testing.T) {
	t.Parallel()

	typed := document.VariablesSchema{Properties: map[string]document.PropertySchema{
		"s": {Type: variables.TypeString},
		"n": {Type: variables.TypeNumber},
		"i": {Type: variables.TypeInteger},
		"b": {Type: variables.TypeBoolean},
		"a": {Type: variables.TypeArray},
		"o": {Type: variables.TypeObject},
		"x": {},
	}}

	t.Run("accepts matching values", func(t *testing.T) {
		t.Parallel()

		var vars map[string]any
		require.NoError(t, json.Unmarshal([]byte(`{"s":"a","n":1.5,"i":3,"b":true,"a":[1],"o":{"k":1},"x":null}`), &vars))
		_, err := variables.Validate(vars, typed, variables.Strict)
		assert.NoError(t, err)
	})

	t.Run("reports every mismatch in field order", func(t *testing.T) {
		t.Parallel()

		_, err := variables.Validate(map[string]any{
			"s": 1, "n": "1", "i": 1.5, "b": "yes", "a": "list", "o": []any{},
		}, typed, variables.Permissive)
		require.Error(t, err)
		assert.Equal(t, []string{
			"a: must be an array",
			"b: must be a boolean",
			"i: must be an integer",
			"n: must be a number",
			"o: must be an object",
			"s: must be a string",
		}, variables.Messages(err))
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("json numbers", func(t *testing.T) {
		t.Parallel()

		_, err := variables.Validate(map[string]any{"i": json.Number("42"), "n": json.Number("0.5")}, typed, variables.Strict)
		assert.NoError(t, err)
	})
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := variables.ParseMode("Permissive")
	require.NoError(t, err)
	assert.Equal(t, variables.Permissive, m)

	m, err = variables.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, variables.Strict, m)

	_, err = variables.ParseMode("loose")
	assert.ErrorIs(t, err, variables.ErrUnknownMode)
}

func TestSchemaFromVariables(t *testing.T) {
	t.Parallel()

	schema := variables.SchemaFromVariables([]document.Variable{
		{Name: "lastName"},
		{Name: "firstName", Label: "First name", DefaultValue: "there"},
		{Name: "company"},
		{Name: "  "},
	})

	assert.Equal(t, []string{"company", "lastName"}, schema.Required)
	require.Len(t, schema.Properties, 3)
	assert.Equal(t, "there", schema.Properties["firstName"].Default)
	assert.Equal(t, "First name", schema.Properties["firstName"].Description)
	assert.Nil(t, schema.Properties["company"].Default)
	assert.Equal(t, variables.TypeString, schema.Properties["company"].Type)
}
