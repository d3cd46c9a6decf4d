package plaintext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/plaintext"
)

const email = `<!doctype html>
<html><head><title>Launch</title><style>p { color: red }</style></head>
<body>
<div style="display: none; max-height:0">Preview text here</div>
<table role="presentation"><tr><td>
<div><h1>Welcome&nbsp;aboard</h1></div>
<div><p>Hello Ann,<br>thanks for joining.</p></div>
<div><img src="https://cdn.example.com/hero.png" alt="Hero image"></div>
<div><a href="https://example.com/start">Get started</a></div>
<div><a href="https://example.com/docs">https://example.com/docs</a></div>
<div><a href="https://example.com/logo"><img src="https://cdn.example.com/logo.png" alt="Logo"></a></div>
<ul><li>Fast</li><li>Simple</li></ul>
</td></tr></table>
<script>alert(1)</script>
</body></html>`

func TestFromHTML(t *testing.T) {
	t.Parallel()

	text, err := plaintext.FromHTML(email)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Welcome aboard",
		"",
		"Hello Ann,",
		"thanks for joining.",
		"",
		"Get started",
		"https://example.com/docs",
		"",
		"* Fast",
		"* Simple",
	}, "\n"), text)
}

func TestFromHTML_NeverContainsImageSources(t *testing.T) {
	t.Parallel()

	text, err := plaintext.FromHTML(email)
	require.NoError(t, err)
	assert.NotContains(t, text, "hero.png")
	assert.NotContains(t, text, "logo.png")
	assert.NotContains(t, text, "Hero image")
}

func TestFromHTML_SkipsNonVisual(t *testing.T) {
	t.Parallel()

	text, err := plaintext.FromHTML(email)
	require.NoError(t, err)
	for _, s := range []string{"Launch", "color: red", "Preview text", "alert"} {
		assert.NotContains(t, text, s)
	}
}

func TestFromHTML_Wraps(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 40)

	text, err := plaintext.FromHTML("<p>" + long + "</p>")
	require.NoError(t, err)
	for line := range strings.SplitSeq(text, "\n") {
		assert.LessOrEqual(t, len(line), plaintext.DefaultWidth)
	}
	assert.Greater(t, strings.Count(text, "\n"), 1)

	narrow, err := plaintext.FromHTML("<p>"+long+"</p>", plaintext.WithWidth(20))
	require.NoError(t, err)
	for line := range strings.SplitSeq(narrow, "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func TestFromHTML_EmptyInput(t *testing.T) {
	t.Parallel()

	text, err := plaintext.FromHTML("")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFromHTML_Anchors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"visible text", `<a href="https://x.io/a">Read more</a>`, "Read more"},
		{"text equals href", `<a href="https://x.io/a">https://x.io/a</a>`, "https://x.io/a"},
		{"text spells href loosely", `<a href="https://X.io/a/">https://x.io/a</a>`, "https://X.io/a/"},
		{"image only link", `<p>before <a href="https://x.io"><img src="https://x.io/i.png"></a> after</p>`, "before after"},
		{"inline in sentence", `<p>See <a href="https://x.io">our docs</a> today.</p>`, "See our docs today."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := plaintext.FromHTML(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromHTML_ComposesAccents(t *testing.T) {
	t.Parallel()

	out, err := plaintext.FromHTML("<p>Cafe\u0301 ouvert</p>")
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9 ouvert", strings.TrimSpace(out))
}
