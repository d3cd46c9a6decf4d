package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailforge/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"  Ann.Lee@Example.COM ", "ann.lee@example.com"},
		{"ann..lee.@example.com", "ann.lee@example.com"},
		{"not-an-email", "not-an-email"},
		{"a@b@c", "a@b@c"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.in))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a**@example.com", sanitizer.MaskEmail("ann@example.com"))
	assert.Equal(t, "a@example.com", sanitizer.MaskEmail("a@example.com"))
	assert.Equal(t, "nobody", sanitizer.MaskEmail("nobody"))
}

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", sanitizer.NormalizeWhitespace(" a \n\t b  c "))
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "welcome_ann_example.com", sanitizer.SanitizeFilename("welcome ann/example.com"))
	assert.Equal(t, "file", sanitizer.SanitizeFilename(" .. "))
	assert.Len(t, sanitizer.SanitizeFilename(strings.Repeat("x", 300)), 255)
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(sanitizer.NormalizeWhitespace, strings.ToUpper)
	assert.Equal(t, "HELLO THERE", clean("  hello \n there "))
}
