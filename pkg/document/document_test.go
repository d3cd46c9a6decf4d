package document_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailforge/pkg/document"
)

const sampleDoc = `{
	"version": 2,
	"metadata": {"title": "Launch", "subject": "We are live", "preheader": "Big news"},
	"variables": [{"id": "v1", "name": "firstName", "label": "First name", "defaultValue": "there"}],
	"root": {
		"id": "root",
		"type": "root",
		"props": {"fill": {"color": "#fff"}, "fontFamily": "Inter, sans-serif"},
		"children": [
			{"id": "h1", "type": "heading", "props": {"content": "Hi", "level": 1, "fontSize": 28}},
			{"id": "cols", "type": "columns", "props": {"columnCount": 2}, "children": [
				{"id": "btn", "type": "button", "props": {"label": "Go", "radius": 4, "link": {"href": "https://example.com", "target": true}}},
				{"id": "img", "type": "image", "props": {"src": "https://x/y.png", "width": "50%"}}
			]},
			{"id": "odd", "type": "hologram", "props": {"padding": 4, "glow": true}}
		]
	}
}`

func TestDecode(t *testing.T) {
	t.Parallel()

	doc, err := document.Decode([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 2, doc.Version)
	assert.Equal(t, "Launch", doc.Metadata.Title)
	require.Len(t, doc.Variables, 1)
	assert.Equal(t, "firstName", doc.Variables[0].Name)

	root := doc.Root
	require.NotNil(t, root)
	assert.Equal(t, document.TypeRoot, root.Type)
	rp, ok := root.Props.(*document.RootProps)
	require.True(t, ok)
	assert.Equal(t, "#fff", rp.FillColor())
	assert.Equal(t, "Inter, sans-serif", rp.FontFamily.Format())

	heading, ok := root.Children[0].Props.(*document.HeadingProps)
	require.True(t, ok)
	assert.Equal(t, 1, heading.Level)
	assert.Equal(t, "28px", heading.FontSize.Format())

	cols, ok := root.Children[1].Props.(*document.ColumnsProps)
	require.True(t, ok)
	n, ok := cols.Count()
	require.True(t, ok)
	assert.Equal(t, 2, n)

	btn := document.Find(root, "btn")
	require.NotNil(t, btn)
	bp, ok := btn.Props.(*document.ButtonProps)
	require.True(t, ok)
	assert.Equal(t, "Go", bp.Label)
	require.NotNil(t, bp.LinkProps())
	target, _ := bp.LinkProps().Target.Bool()
	assert.True(t, target)

	odd := root.Children[2]
	assert.False(t, odd.Type.Known())
	up, ok := odd.Props.(*document.UnknownProps)
	require.True(t, ok)
	assert.Equal(t, true, up.Raw["glow"])
	assert.Equal(t, "4px", up.Padding.Format())
}

func TestDecode_WronglyShapedPropsAreDropped(t *testing.T) {
	t.Parallel()

	doc, err := document.Decode([]byte(`{"root": {"id": "r", "type": "root", "children": [
		{"id": "t", "type": "text", "props": {"content": 42, "align": "center"}},
		{"id": "b", "type": "button", "props": {"label": "Go", "fill": "#ff0000"}},
		{"id": "h", "type": "heading", "props": {"content": "Hi", "level": "2"}},
		{"id": "s", "type": "spacer", "props": "tall"}
	]}}`))
	require.NoError(t, err)

	txt := document.Find(doc.Root, "t")
	require.NotNil(t, txt)
	assert.Equal(t, []string{"content"}, txt.DroppedProps)
	tp, ok := txt.Props.(*document.TextProps)
	require.True(t, ok)
	assert.Empty(t, tp.Content)
	align, _ := tp.Align.Text()
	assert.Equal(t, "center", align)

	btn := document.Find(doc.Root, "b")
	require.NotNil(t, btn)
	assert.Equal(t, []string{"fill"}, btn.DroppedProps)
	bp, ok := btn.Props.(*document.ButtonProps)
	require.True(t, ok)
	assert.Equal(t, "Go", bp.Label)
	assert.Nil(t, bp.Fill)

	head := document.Find(doc.Root, "h")
	require.NotNil(t, head)
	assert.Equal(t, []string{"level"}, head.DroppedProps)
	assert.Equal(t, "Hi", head.Props.(*document.HeadingProps).Content)

	spacer := document.Find(doc.Root, "s")
	require.NotNil(t, spacer)
	assert.Equal(t, []string{"props"}, spacer.DroppedProps)
	assert.IsType(t, &document.SpacerProps{}, spacer.Props)
}

func TestBlockNode_RoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := document.Decode([]byte(sampleDoc))
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	again, err := document.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Root.Children[1].Children[1].Props, again.Root.Children[1].Children[1].Props)
	assert.Equal(t, true, again.Root.Children[2].Props.(*document.UnknownProps).Raw["glow"])
}

func TestParseBlockType(t *testing.T) {
	t.Parallel()

	bt, ok := document.ParseBlockType("SocialIcons")
	assert.True(t, ok)
	assert.Equal(t, document.TypeSocialIcons, bt)

	bt, ok = document.ParseBlockType("Marquee")
	assert.False(t, ok)
	assert.Equal(t, document.BlockType("Marquee"), bt)

	assert.True(t, document.TypeColumns.SectionLevel())
	assert.False(t, document.TypeColumn.SectionLevel())
}

func TestWalk(t *testing.T) {
	t.Parallel()

	doc, err := document.Decode([]byte(sampleDoc))
	require.NoError(t, err)

	var ids []string
	maxDepth := 0
	document.Walk(doc.Root, func(n *document.BlockNode, depth int) bool {
		ids = append(ids, n.ID)
		if depth > maxDepth {
			maxDepth = depth
		}
		return true
	})
	assert.Equal(t, []string{"root", "h1", "cols", "btn", "img", "odd"}, ids)
	assert.Equal(t, 2, maxDepth)
	assert.Nil(t, document.Find(doc.Root, "missing"))
}

func TestValue_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value document.Value
		want  string
	}{
		{"integer", document.NewValue(12), "12px"},
		{"float", document.NewValue(1.5), "1.5px"},
		{"string", document.NewValue("50%"), "50%"},
		{"true", document.NewValue(true), "true"},
		{"false", document.NewValue(false), "false"},
		{"object", document.NewValue(map[string]any{"a": 1}), ""},
		{"array", document.NewValue([]any{1}), ""},
		{"null", document.NewValue(nil), ""},
		{"unset", document.Value{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.value.Format())
		})
	}
}

func TestPadding_JSON(t *testing.T) {
	t.Parallel()

	var uniform document.Padding
	require.NoError(t, json.Unmarshal([]byte(`16`), &uniform))
	assert.Equal(t, "16px", uniform.Format())

	var box document.Padding
	require.NoError(t, json.Unmarshal([]byte(`{"left": 4, "top": "1em"}`), &box))
	assert.Equal(t, "1em 0px 0px 4px", box.Format())

	var empty document.Padding
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.False(t, empty.IsSet())
}

func TestCorners_Uniform(t *testing.T) {
	t.Parallel()

	var nilCorners *document.Corners
	_, ok := nilCorners.Uniform()
	assert.False(t, ok)

	partial := &document.Corners{TopLeft: document.NewValue(4)}
	_, ok = partial.Uniform()
	assert.False(t, ok)
}

func TestElement_TypedProps(t *testing.T) {
	t.Parallel()

	el := document.Element{ID: "e", Type: "Social", Props: map[string]any{
		"layout": "vertical",
		"icons":  []any{map[string]any{"platform": "x", "href": "https://x.com"}},
	}}
	bt, ok := el.BlockType()
	require.True(t, ok)
	assert.Equal(t, document.TypeSocialIcons, bt)

	props, dropped, err := el.TypedProps()
	require.NoError(t, err)
	assert.Empty(t, dropped)
	sp, ok := props.(*document.SocialIconsProps)
	require.True(t, ok)
	assert.Equal(t, document.LayoutVertical, sp.Layout)
	require.Len(t, sp.Icons, 1)

	_, dropped, err = document.Element{Type: "heading", Props: map[string]any{"level": "2", "content": "Hi"}}.TypedProps()
	require.NoError(t, err)
	assert.Equal(t, []string{"level"}, dropped)

	_, _, err = document.Element{Type: "video"}.TypedProps()
	assert.ErrorIs(t, err, document.ErrUnknownElement)

	_, _, err = document.Element{Type: "text", Props: map[string]any{"content": make(chan int)}}.TypedProps()
	assert.ErrorIs(t, err, document.ErrInvalidProps)
}
