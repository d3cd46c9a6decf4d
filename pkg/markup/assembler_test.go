package markup_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/markup"
)

func text(id, content string) *document.BlockNode {
	return &document.BlockNode{ID: id, Type: document.TypeText, Props: &document.TextProps{Content: content}}
}

func rootDoc(children ...*document.BlockNode) *document.Document {
	return &document.Document{
		Version: 1,
		Root: &document.BlockNode{
			ID:       "root",
			Type:     document.TypeRoot,
			Props:    &document.RootProps{CommonStyle: document.CommonStyle{Fill: &document.Fill{Color: document.NewValue("#fff")}}},
			Children: children,
		},
	}
}

func TestCompile_MissingRoot(t *testing.T) {
	t.Parallel()

	t.Run("nil document", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(nil)
		assert.Empty(t, res.Markup)
		require.Len(t, res.Errors, 1)
		assert.ErrorIs(t, res.Err(), markup.ErrCompile)
	})

	t.Run("entry node is not root", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(&document.Document{Root: text("t1", "hi")})
		assert.Empty(t, res.Markup)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "entry block")
	})
}

func TestCompile_Envelope(t *testing.T) {
	t.Parallel()

	doc := rootDoc(text("t1", "Hi"))
	doc.Metadata = document.Metadata{Title: "Welcome", Preheader: "Read me"}

	res := markup.Compile(doc)
	require.Empty(t, res.Errors)

	assert.True(t, strings.HasPrefix(res.Markup, "<mjml>"))
	assert.Contains(t, res.Markup, "<mj-title>Welcome</mj-title>")
	assert.Contains(t, res.Markup, "<mj-preview>Read me</mj-preview>")
	assert.Contains(t, res.Markup, `<mj-all font-family="Arial, Helvetica, sans-serif" />`)
	assert.Contains(t, res.Markup, "<mj-style>")
	assert.Contains(t, res.Markup, `<mj-body background-color="#fff" width="600px">`)
}

func TestCompile_DefaultBodyBackground(t *testing.T) {
	t.Parallel()

	res := markup.Compile(&document.Document{Root: &document.BlockNode{ID: "r", Type: document.TypeRoot}})
	require.Empty(t, res.Errors)
	assert.Contains(t, res.Markup, `background-color="#F4F4F5"`)
}

func TestCompile_LeafUnderRootIsWrapped(t *testing.T) {
	t.Parallel()

	res := markup.Compile(rootDoc(text("t1", "Hi")))
	require.Empty(t, res.Errors)
	assert.Contains(t, res.Markup,
		`<mj-section padding="0px"><mj-column padding="0px"><mj-text>Hi</mj-text></mj-column></mj-section>`)
}

func TestCompile_Idempotent(t *testing.T) {
	t.Parallel()

	doc := rootDoc(
		text("t1", "Hi"),
		&document.BlockNode{ID: "c", Type: document.TypeColumns, Props: &document.ColumnsProps{ColumnCount: document.NewValue(2)},
			Children: []*document.BlockNode{text("a", "A"), text("b", "B")}},
	)
	first := markup.Compile(doc)
	second := markup.Compile(doc)
	assert.Equal(t, first.Markup, second.Markup)
}

func TestCompile_UnknownBlockType(t *testing.T) {
	t.Parallel()

	doc := rootDoc(
		text("t1", "before"),
		&document.BlockNode{ID: "x", Type: document.BlockType("carousel")},
		text("t2", "after"),
	)
	res := markup.Compile(doc)

	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], `"carousel"`)
	assert.Contains(t, res.Markup, ">before<")
	assert.Contains(t, res.Markup, ">after<")
	assert.Error(t, res.Err())
}

func TestCompile_UnknownTypeNestedDeep(t *testing.T) {
	t.Parallel()

	doc := rootDoc(&document.BlockNode{
		ID:   "c",
		Type: document.TypeContainer,
		Children: []*document.BlockNode{
			{ID: "x", Type: document.BlockType("video")},
			text("t", "ok"),
		},
	})
	res := markup.Compile(doc)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Markup, "<mj-text>ok</mj-text>")
}

func TestCompile_Container(t *testing.T) {
	t.Parallel()

	t.Run("wraps children in one section and column", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{
			ID:       "c",
			Type:     document.TypeContainer,
			Props:    &document.ContainerProps{CommonStyle: document.CommonStyle{Fill: &document.Fill{Color: document.NewValue("#eee")}}},
			Children: []*document.BlockNode{text("a", "A"), text("b", "B")},
		}))
		require.Empty(t, res.Errors)
		assert.Contains(t, res.Markup,
			`<mj-section background-color="#eee"><mj-column><mj-text>A</mj-text><mj-text>B</mj-text></mj-column></mj-section>`)
	})

	t.Run("empty container keeps its shell", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{ID: "c", Type: document.TypeContainer}))
		require.Empty(t, res.Errors)
		assert.Contains(t, res.Markup, "<mj-section><mj-column></mj-column></mj-section>")
	})
}

func TestCompile_Block(t *testing.T) {
	t.Parallel()

	t.Run("groups runs of leaves around nested sections", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{
			ID:   "b",
			Type: document.TypeBlock,
			Children: []*document.BlockNode{
				text("a", "A"),
				text("b", "B"),
				{ID: "inner", Type: document.TypeContainer, Children: []*document.BlockNode{text("c", "C")}},
				text("d", "D"),
			},
		}))
		require.Empty(t, res.Errors)
		assert.Contains(t, res.Markup,
			"<mj-section><mj-column><mj-text>A</mj-text><mj-text>B</mj-text></mj-column></mj-section>"+
				"<mj-section><mj-column><mj-text>C</mj-text></mj-column></mj-section>"+
				"<mj-section><mj-column><mj-text>D</mj-text></mj-column></mj-section>")
	})

	t.Run("drops wrapper when every child is section level", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{
			ID:   "b",
			Type: document.TypeBlock,
			Children: []*document.BlockNode{
				{ID: "c1", Type: document.TypeContainer, Children: []*document.BlockNode{text("a", "A")}},
				{ID: "c2", Type: document.TypeContainer, Children: []*document.BlockNode{text("b", "B")}},
			},
		}))
		require.Empty(t, res.Errors)
		assert.Equal(t, 2, strings.Count(res.Markup, "<mj-section"))
	})
}

func TestCompile_Columns(t *testing.T) {
	t.Parallel()

	t.Run("column count wins over fewer explicit columns", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{
			ID:    "cols",
			Type:  document.TypeColumns,
			Props: &document.ColumnsProps{ColumnCount: document.NewValue(3)},
			Children: []*document.BlockNode{
				{ID: "c1", Type: document.TypeColumn, Children: []*document.BlockNode{text("a", "A")}},
				{ID: "c2", Type: document.TypeColumn},
			},
		}))
		require.Empty(t, res.Errors)
		assert.Equal(t, 3, strings.Count(res.Markup, "<mj-column"))
	})

	t.Run("non-column children get equal width columns", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{
			ID:       "cols",
			Type:     document.TypeColumns,
			Children: []*document.BlockNode{text("a", "A"), text("b", "B"), text("c", "C")},
		}))
		require.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
		assert.Equal(t, 3, strings.Count(res.Markup, `<mj-column width="33%">`))
	})

	t.Run("column count without children emits empty columns and warns", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{
			ID:    "cols",
			Type:  document.TypeColumns,
			Props: &document.ColumnsProps{ColumnCount: document.NewValue(4)},
		}))
		require.Empty(t, res.Errors)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, 4, strings.Count(res.Markup, `<mj-column width="25%"></mj-column>`))
	})

	t.Run("oversized column count is clamped", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{
			ID:    "cols",
			Type:  document.TypeColumns,
			Props: &document.ColumnsProps{ColumnCount: document.NewValue(2000000)},
		}))
		require.Empty(t, res.Errors)
		assert.Equal(t, 12, strings.Count(res.Markup, "<mj-column"))
		assert.Equal(t, 12, strings.Count(res.Markup, `<mj-column width="8%"></mj-column>`))
		require.Len(t, res.Warnings, 2)
		assert.Contains(t, res.Warnings[0], "clamped to 12")
	})

	t.Run("huge float column count does not overflow", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{
			ID:       "cols",
			Type:     document.TypeColumns,
			Props:    &document.ColumnsProps{ColumnCount: document.NewValue(1e300)},
			Children: []*document.BlockNode{text("a", "A")},
		}))
		require.Empty(t, res.Errors)
		assert.Equal(t, 12, strings.Count(res.Markup, "<mj-column"))
		assert.NotContains(t, res.Markup, `width="0%"`)
	})

	t.Run("many children never produce zero width", func(t *testing.T) {
		t.Parallel()

		kids := make([]*document.BlockNode, 150)
		for i := range kids {
			kids[i] = text(fmt.Sprintf("t%d", i), "x")
		}
		res := markup.Compile(rootDoc(&document.BlockNode{ID: "cols", Type: document.TypeColumns, Children: kids}))
		require.Empty(t, res.Errors)
		assert.Equal(t, 150, strings.Count(res.Markup, `<mj-column width="1%">`))
		assert.NotContains(t, res.Markup, `width="0%"`)
	})

	t.Run("empty explicit column is self closing", func(t *testing.T) {
		t.Parallel()

		res := markup.Compile(rootDoc(&document.BlockNode{
			ID:   "cols",
			Type: document.TypeColumns,
			Children: []*document.BlockNode{{
				ID:    "c1",
				Type:  document.TypeColumn,
				Props: &document.ColumnProps{Size: document.Size{Width: document.NewValue("40%")}},
			}},
		}))
		require.Empty(t, res.Errors)
		assert.Contains(t, res.Markup, `<mj-column width="40%" />`)
	})
}

func TestCompile_Leaves(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *document.BlockNode
		want string
	}{
		{
			name: "text is escaped",
			node: text("t", `<b>"x"</b>`),
			want: "<mj-text>&lt;b&gt;&#34;x&#34;&lt;/b&gt;</mj-text>",
		},
		{
			name: "heading",
			node: &document.BlockNode{ID: "h", Type: document.TypeHeading, Props: &document.HeadingProps{Content: "Title", Level: 1}},
			want: `<mj-text><h1 style="margin:0;font-size:inherit;font-weight:inherit;">Title</h1></mj-text>`,
		},
		{
			name: "button label",
			node: &document.BlockNode{ID: "b", Type: document.TypeButton, Props: &document.ButtonProps{Label: "Go & see"}},
			want: "<mj-button>Go &amp; see</mj-button>",
		},
		{
			name: "ordered list",
			node: &document.BlockNode{ID: "l", Type: document.TypeList, Props: &document.ListProps{Items: []string{"one", "two"}, Ordered: true}},
			want: `<mj-text><ol style="margin:0;padding-left:20px;"><li>one</li><li>two</li></ol></mj-text>`,
		},
		{
			name: "quote with citation",
			node: &document.BlockNode{ID: "q", Type: document.TypeQuote, Props: &document.QuoteProps{Content: "Less is more", Citation: "Mies"}},
			want: "Less is more<footer",
		},
		{
			name: "image is self closing",
			node: &document.BlockNode{ID: "i", Type: document.TypeImage, Props: &document.ImageProps{Size: document.Size{Src: document.NewValue("https://x/y.png")}}},
			want: `<mj-image src="https://x/y.png" />`,
		},
		{
			name: "spacer",
			node: &document.BlockNode{ID: "s", Type: document.TypeSpacer, Props: &document.SpacerProps{Size: document.Size{Height: document.NewValue(20)}}},
			want: `<mj-spacer height="20px" />`,
		},
		{
			name: "divider without props",
			node: &document.BlockNode{ID: "d", Type: document.TypeDivider},
			want: "<mj-divider />",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := markup.Compile(rootDoc(tt.node))
			require.Empty(t, res.Errors)
			assert.Contains(t, res.Markup, tt.want)
		})
	}
}

func TestCompile_MaxDepth(t *testing.T) {
	t.Parallel()

	leaf := text("leaf", "deep")
	node := leaf
	for i := 0; i < 10; i++ {
		node = &document.BlockNode{ID: "c", Type: document.TypeContainer, Children: []*document.BlockNode{node}}
	}
	res := markup.Compile(rootDoc(node), markup.WithMaxDepth(5))
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Err(), markup.ErrCompile)
	assert.Contains(t, res.Errors[0], markup.ErrMaxDepth.Error())
}

func TestCompile_CanvasWidth(t *testing.T) {
	t.Parallel()

	res := markup.Compile(rootDoc(&document.BlockNode{
		ID:    "i",
		Type:  document.TypeImage,
		Props: &document.ImageProps{Size: document.Size{Width: document.NewValue("50%")}},
	}), markup.WithCanvasWidth(800))
	assert.Contains(t, res.Markup, `width="400px"`)
	assert.Contains(t, res.Markup, `width="800px"`)
}

func TestCompile_FromJSON(t *testing.T) {
	t.Parallel()

	doc, err := document.Decode([]byte(`{
		"version": 1,
		"root": {"id": "r", "type": "Root", "props": {"fill": {"color": "#fff"}}, "children": [
			{"id": "t", "type": "Text", "props": {"content": "Hi", "padding": {"top": 8, "bottom": 8}, "unknownKey": 1}}
		]}
	}`))
	require.NoError(t, err)

	res := markup.Compile(doc)
	require.Empty(t, res.Errors)
	assert.Contains(t, res.Markup, `<mj-text padding="8px 0px 8px 0px">Hi</mj-text>`)
}

func TestCompile_WronglyShapedPropsDoNotLoseSiblings(t *testing.T) {
	t.Parallel()

	doc, err := document.Decode([]byte(`{
		"root": {"id": "r", "type": "root", "children": [
			{"id": "t", "type": "text", "props": {"content": "Hello"}},
			{"id": "b", "type": "button", "props": {"label": "Go", "fill": "#ff0000"}}
		]}
	}`))
	require.NoError(t, err)

	res := markup.Compile(doc)
	require.Empty(t, res.Errors)
	assert.Contains(t, res.Markup, ">Hello</mj-text>")
	assert.Contains(t, res.Markup, ">Go</mj-button>")
	assert.NotContains(t, res.Markup, "#ff0000")
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `block "b" (button)`)
	assert.Contains(t, res.Warnings[0], "fill")
}
