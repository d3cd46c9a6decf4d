package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(
			validator.Required("name", "Ann"),
			validator.Present("age", true),
		))
	})

	t.Run("failures keep rule order", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.Required("name", "  "),
			validator.ValidEmail("email", "nope"),
			validator.MaxLen("bio", "abcdef", 3),
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, validator.ErrValidationFailed))

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 3)
		assert.Equal(t, []string{
			"name: is required",
			"email: must be a valid email address",
			"bio: must be at most 3 characters long",
		}, verrs.Messages())
		assert.True(t, verrs.Has("bio"))
		assert.Equal(t, []string{"is required"}, verrs.Get("name"))
	})

	t.Run("wrapped errors are extracted", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("render: %w", validator.Apply(validator.Absent("extra", true)))
		assert.True(t, validator.IsValidationError(err))
		assert.False(t, validator.IsValidationError(errors.New("plain")))
	})
}

func TestValidationErrors_Sorted(t *testing.T) {
	t.Parallel()

	verrs := validator.ValidationErrors{
		{Field: "b", Message: "x"},
		{Field: "a", Message: "z"},
		{Field: "a", Message: "y"},
	}
	assert.Equal(t, []string{"a: y", "a: z", "b: x"}, verrs.Sorted().Messages())
	assert.Equal(t, "b", verrs[0].Field)
}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		ok   bool
	}{
		{"email", validator.ValidEmail("e", "ann@example.com"), true},
		{"email with name", validator.ValidEmail("e", "Ann <ann@example.com>"), true},
		{"email without dot", validator.ValidEmail("e", "ann@localhost"), false},
		{"email empty label", validator.ValidEmail("e", "ann@example..com"), false},
		{"https url", validator.ValidURLWithScheme("u", "https://x.io/a", "http", "https"), true},
		{"ftp url", validator.ValidURLWithScheme("u", "ftp://x.io", "http", "https"), false},
		{"relative url", validator.ValidURLWithScheme("u", "/a/b", "https"), false},
		{"one of", validator.OneOf("m", "strict", "strict", "permissive"), true},
		{"not one of", validator.OneOf("m", "loose", "strict", "permissive"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, tt.rule.Check())
		})
	}
}
