package notion

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/notion2md/pkg/api"
)

func TestDecodeListObject(t *testing.T) {
	data, err := os.ReadFile("testdata/page.json")
	require.NoError(t, err)

	blocks, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, blocks, 8)

	assert.Equal(t, api.KindHeading1, blocks[0].Kind)
	assert.Equal(t, []api.TextSegment{{Content: "Weekly review"}}, blocks[0].Text)

	assert.Equal(t, []api.TextSegment{
		{Content: "See "},
		{Content: "docs", Link: "https://example.com/docs", Annotations: api.Annotations{Bold: true}},
	}, blocks[1].Text)

	todo := blocks[2]
	assert.Equal(t, api.KindToDo, todo.Kind)
	assert.True(t, todo.Checked)
	require.Len(t, todo.Children, 1)
	assert.Equal(t, api.KindBulleted, todo.Children[0].Kind)
	assert.Equal(t, "tests", api.PlainText(todo.Children[0].Text))

	assert.Equal(t, "⚠️", blocks[3].Icon)

	img := blocks[4]
	assert.Equal(t, "https://example.com/d.png", img.Source)
	assert.Equal(t, []api.TextSegment{{Content: "Diagram", Annotations: api.Annotations{Italic: true}}}, img.Caption)
	assert.Nil(t, img.Text)

	assert.Equal(t, api.KindUnsupported, blocks[5].Kind)
	assert.Equal(t, "go", blocks[6].Language)
	assert.Equal(t, api.KindDivider, blocks[7].Kind)
}

func TestDecodeTopLevelShapes(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		count int
	}{
		{"array", `[{"type":"divider"},{"type":"paragraph"}]`, 2},
		{"results container", `{"results":[{"type":"divider"}]}`, 1},
		{"single block is not expanded", `{"type":"paragraph","paragraph":{"rich_text":[]}}`, 0},
		{"page object", `{"object":"page","id":"p1","properties":{}}`, 0},
		{"results not an array", `{"results":"nope"}`, 0},
		{"scalar", `42`, 0},
		{"string", `"hello"`, 0},
		{"null", `null`, 0},
		{"empty array", ` [ ] `, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks, err := Decode([]byte(tc.in))
			require.NoError(t, err)
			assert.Len(t, blocks, tc.count)
		})
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	for _, in := range []string{"", "   ", "{", "[1,", "not json"} {
		_, err := Decode([]byte(in))
		assert.ErrorIs(t, err, ErrInvalidJSON, "input %q", in)
	}
}

func TestDecodeDefaults(t *testing.T) {
	t.Run("missing payload", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"paragraph"}`))
		assert.Equal(t, api.KindParagraph, b.Kind)
		assert.Empty(t, b.Text)
	})

	t.Run("payload of the wrong shape", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"quote","quote":5}`))
		assert.Equal(t, api.KindQuote, b.Kind)
		assert.Empty(t, b.Text)
	})

	t.Run("callout without icon", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"callout","callout":{"rich_text":[{"plain_text":"x"}]}}`))
		assert.Equal(t, api.DefaultCalloutIcon, b.Icon)
	})

	t.Run("callout with non-emoji icon", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"callout","callout":{"icon":{"type":"external","external":{"url":"x"}}}}`))
		assert.Equal(t, api.DefaultCalloutIcon, b.Icon)
	})

	t.Run("image prefers file url", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"image","image":{"file":{"url":"https://f"},"external":{"url":"https://e"}}}`))
		assert.Equal(t, "https://f", b.Source)
	})

	t.Run("image falls back to external url", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"image","image":{"file":{"url":""},"external":{"url":"https://e"}}}`))
		assert.Equal(t, "https://e", b.Source)
	})

	t.Run("image without any url", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"image","image":{}}`))
		assert.Equal(t, "", b.Source)
	})

	t.Run("missing type", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"paragraph":{"rich_text":[{"plain_text":"x"}]}}`))
		assert.Equal(t, api.KindUnsupported, b.Kind)
	})

	t.Run("not an object", func(t *testing.T) {
		assert.Equal(t, api.KindUnsupported, DecodeBlock([]byte(`[1,2]`)).Kind)
		assert.Equal(t, api.KindUnsupported, DecodeBlock([]byte(`null`)).Kind)
	})

	t.Run("rich text falls back to text content and link", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"paragraph","paragraph":{"rich_text":[{"type":"text","text":{"content":"go","link":{"url":"https://go.dev"}}}]}}`))
		assert.Equal(t, []api.TextSegment{{Content: "go", Link: "https://go.dev"}}, b.Text)
	})

	t.Run("mistyped checked keeps the text", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"to_do","to_do":{"checked":"yes","rich_text":[{"plain_text":"t"}]}}`))
		assert.True(t, b.Checked)
		assert.Equal(t, []api.TextSegment{{Content: "t"}}, b.Text)

		b = DecodeBlock([]byte(`{"type":"to_do","to_do":{"checked":0,"rich_text":[{"plain_text":"t"}]}}`))
		assert.False(t, b.Checked)
		assert.Equal(t, "t", api.PlainText(b.Text))
	})

	t.Run("mistyped annotation keeps the segment", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"paragraph","paragraph":{"rich_text":[{"plain_text":"keep","annotations":{"bold":"yes","italic":false,"code":[]}}]}}`))
		assert.Equal(t, []api.TextSegment{{Content: "keep", Annotations: api.Annotations{Bold: true}}}, b.Text)
	})

	t.Run("mistyped field keeps its siblings", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"code","code":{"language":5,"rich_text":[{"plain_text":"ls"},{"plain_text":7},"junk"]}}`))
		assert.Equal(t, "", b.Language)
		assert.Equal(t, []api.TextSegment{{Content: "ls"}, {}, {}}, b.Text)

		b = DecodeBlock([]byte(`{"type":"callout","callout":{"icon":"🔥","rich_text":[{"plain_text":"hot"}]}}`))
		assert.Equal(t, api.DefaultCalloutIcon, b.Icon)
		assert.Equal(t, "hot", api.PlainText(b.Text))

		b = DecodeBlock([]byte(`{"type":"image","image":{"file":"x","external":{"url":"https://e"},"caption":{"bad":1}}}`))
		assert.Equal(t, "https://e", b.Source)
		assert.Empty(t, b.Caption)
	})

	t.Run("null annotations", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"paragraph","paragraph":{"rich_text":[{"plain_text":"x","annotations":null,"href":null}]}}`))
		assert.Equal(t, []api.TextSegment{{Content: "x"}}, b.Text)
	})
}

func TestDecodeChildren(t *testing.T) {
	t.Run("payload children", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"toggle","toggle":{"rich_text":[{"plain_text":"more"}],"children":[{"type":"paragraph","paragraph":{"rich_text":[{"plain_text":"hidden"}]}}]}}`))
		require.Len(t, b.Children, 1)
		assert.Equal(t, "hidden", api.PlainText(b.Children[0].Text))
	})

	t.Run("block-level children win", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"toggle","toggle":{"children":[{"type":"divider"}]},"children":[{"type":"quote"},{"type":"quote"}]}`))
		require.Len(t, b.Children, 2)
		assert.Equal(t, api.KindQuote, b.Children[0].Kind)
	})

	t.Run("children of unsupported blocks survive", func(t *testing.T) {
		b := DecodeBlock([]byte(`{"type":"column_list","children":[{"type":"paragraph"}]}`))
		assert.Equal(t, api.KindUnsupported, b.Kind)
		require.Len(t, b.Children, 1)
	})
}

func TestDecodeReader(t *testing.T) {
	blocks, err := DecodeReader(strings.NewReader(`[{"type":"divider"}]`))
	require.NoError(t, err)
	assert.Equal(t, []api.Block{{Kind: api.KindDivider}}, blocks)
}
