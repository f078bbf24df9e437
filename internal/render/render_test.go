package render

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/notion2md/pkg/api"
)

func txt(s string) []api.TextSegment { return []api.TextSegment{{Content: s}} }

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		in   []api.TextSegment
		want string
	}{
		{"empty", nil, ""},
		{"plain", txt("hi"), "hi"},
		{"bold italic", []api.TextSegment{{Content: "hi", Annotations: api.Annotations{Bold: true, Italic: true}}}, "***hi***"},
		{"link", []api.TextSegment{{Content: "x", Link: "http://e.com"}}, "[x](http://e.com)"},
		{"code", []api.TextSegment{{Content: "x", Annotations: api.Annotations{Code: true}}}, "`x`"},
		{"strike", []api.TextSegment{{Content: "x", Annotations: api.Annotations{Strikethrough: true}}}, "~~x~~"},
		{
			"all flags nest in fixed order",
			[]api.TextSegment{{Content: "x", Annotations: api.Annotations{Bold: true, Italic: true, Strikethrough: true, Code: true}}},
			"~~***`x`***~~",
		},
		{
			"link inside styles",
			[]api.TextSegment{{Content: "go", Link: "https://go.dev", Annotations: api.Annotations{Code: true, Bold: true}}},
			"**`[go](https://go.dev)`**",
		},
		{
			"segments concatenate without separator",
			[]api.TextSegment{{Content: "a"}, {Content: "b", Annotations: api.Annotations{Italic: true}}, {Content: "c"}},
			"a*b*c",
		},
		{"empty content keeps wrappers", []api.TextSegment{{Annotations: api.Annotations{Bold: true}}}, "****"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compose(tc.in))
		})
	}
}

func TestBlock(t *testing.T) {
	tests := []struct {
		name  string
		block api.Block
		depth int
		want  string
	}{
		{"paragraph", api.Block{Kind: api.KindParagraph, Text: txt("a")}, 0, "a\n\n"},
		{"paragraph indented", api.Block{Kind: api.KindParagraph, Text: txt("a")}, 1, "  a\n\n"},
		{"heading 1", api.Block{Kind: api.KindHeading1, Text: txt("H")}, 0, "# H\n\n"},
		{"heading 2", api.Block{Kind: api.KindHeading2, Text: txt("H")}, 0, "## H\n\n"},
		{"heading 3", api.Block{Kind: api.KindHeading3, Text: txt("H")}, 2, "    ### H\n\n"},
		{"bulleted", api.Block{Kind: api.KindBulleted, Text: txt("b")}, 0, "- b\n"},
		{"numbered", api.Block{Kind: api.KindNumbered, Text: txt("n")}, 1, "  1. n\n"},
		{"to_do checked", api.Block{Kind: api.KindToDo, Text: txt("t"), Checked: true}, 0, "- [x] t\n"},
		{"to_do unchecked", api.Block{Kind: api.KindToDo, Text: txt("t")}, 0, "- [ ] t\n"},
		{"toggle", api.Block{Kind: api.KindToggle, Text: txt("more")}, 0, "<details><summary>more</summary>\n"},
		{"code", api.Block{Kind: api.KindCode, Text: txt("x := 1"), Language: "go"}, 1, "  ```go\nx := 1\n  ```\n\n"},
		{"code without language", api.Block{Kind: api.KindCode, Text: txt("ls")}, 0, "```\nls\n```\n\n"},
		{"quote", api.Block{Kind: api.KindQuote, Text: txt("q")}, 0, "> q\n\n"},
		{"callout", api.Block{Kind: api.KindCallout, Text: txt("c"), Icon: "⚠️"}, 0, "> ⚠️ **c**\n\n"},
		{"callout default icon", api.Block{Kind: api.KindCallout, Text: txt("c")}, 0, "> 💡 **c**\n\n"},
		{"image", api.Block{Kind: api.KindImage, Source: "https://e/i.png", Caption: txt("cap")}, 0, "![cap](https://e/i.png)\n\n"},
		{"image no caption", api.Block{Kind: api.KindImage, Source: "u"}, 0, "![](u)\n\n"},
		{"divider", api.Block{Kind: api.KindDivider}, 0, "---\n\n"},
		{"divider ignores payload", api.Block{Kind: api.KindDivider, Text: txt("ignored"), Checked: true}, 0, "---\n\n"},
		{"unsupported", api.Block{Kind: api.KindUnsupported, Text: txt("x")}, 3, ""},
		{"unknown kind", api.Block{Kind: api.Kind("table_of_contents")}, 0, ""},
		{"missing text", api.Block{Kind: api.KindQuote}, 0, "> \n\n"},
		{"negative depth", api.Block{Kind: api.KindBulleted, Text: txt("b")}, -2, "- b\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Block(tc.block, tc.depth))
		})
	}
}

func TestBlockCoversEveryKind(t *testing.T) {
	for _, k := range api.Kinds() {
		assert.NotEmpty(t, Block(api.Block{Kind: k}, 0), "kind %s renders nothing", k)
	}
}

func TestBlockIsPure(t *testing.T) {
	b := api.Block{
		Kind:     api.KindToDo,
		Text:     []api.TextSegment{{Content: "x", Annotations: api.Annotations{Bold: true}}},
		Children: []api.Block{{Kind: api.KindParagraph, Text: txt("child")}},
	}
	first := Tree(b, 1)
	second := Tree(b, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, "x", b.Text[0].Content)
}

func TestTree(t *testing.T) {
	b := api.Block{
		Kind: api.KindBulleted,
		Text: txt("parent"),
		Children: []api.Block{
			{Kind: api.KindBulleted, Text: txt("child"), Children: []api.Block{
				{Kind: api.KindToDo, Text: txt("grandchild")},
			}},
			{Kind: api.KindUnsupported, Children: []api.Block{
				{Kind: api.KindParagraph, Text: txt("kept")},
			}},
		},
	}
	want := "- parent\n" +
		"  - child\n" +
		"    - [ ] grandchild\n" +
		"    kept\n\n"
	assert.Equal(t, want, Tree(b, 0))
}

func TestDocument(t *testing.T) {
	doc := api.Document{
		Frontmatter: api.Frontmatter{{Key: "title", Value: "T"}},
		Blocks: []api.Block{
			{Kind: api.KindParagraph, Text: txt("a")},
			{Kind: api.KindDivider},
		},
	}
	assert.Equal(t, "---\ntitle: T\n---\n\n"+"a\n\n"+"---\n\n", Document(doc))

	doc.Frontmatter = nil
	assert.Equal(t, "a\n\n---\n\n", Document(doc))
	assert.Equal(t, "", Document(api.Document{}))
}

func TestAssemble(t *testing.T) {
	in := []byte(`[
		{"type":"paragraph","paragraph":{"rich_text":[{"plain_text":"a"}]}},
		{"type":"divider","divider":{}}
	]`)

	out, err := Assemble(in, `{"title":"T"}`, Options{})
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: T\n---\n\n"+"a\n\n"+"---\n\n", out)
}

func TestAssembleEmptyFrontmatter(t *testing.T) {
	in := []byte(`[{"type":"paragraph","paragraph":{"rich_text":[{"plain_text":"a"}]}}]`)

	out, err := Assemble(in, `{}`, Options{})
	require.NoError(t, err)
	assert.Equal(t, "---\n---\n\n"+"a\n\n", out)

	out, err = Assemble(in, "", Options{})
	require.NoError(t, err)
	assert.Equal(t, "a\n\n", out)

	assert.Equal(t, "---\n---\n\n", FrontmatterBlock(api.Frontmatter{}))
	assert.Equal(t, "", FrontmatterBlock(nil))
}

func TestAssembleJSONEscapesInFrontmatter(t *testing.T) {
	tests := []struct {
		meta string
		want string
	}{
		{`{"url":"https:\/\/e.com"}`, "---\nurl: https://e.com\n---\n\n"},
		{`{"title":"\ud83d\ude80 Launch"}`, "---\ntitle: 🚀 Launch\n---\n\n"},
		{`{"title":"caf\u00e9"}`, "---\ntitle: café\n---\n\n"},
		{`{"a":"1","b":"x","a":"2"}`, "---\na: 2\nb: x\n---\n\n"},
	}
	for _, tc := range tests {
		out, err := Assemble([]byte(`[]`), tc.meta, Options{})
		require.NoError(t, err)
		assert.Equal(t, tc.want, out, "meta %s", tc.meta)
	}
}

func TestAssembleMistypedFields(t *testing.T) {
	out, err := Assemble([]byte(`[
		{"type":"to_do","to_do":{"checked":"yes","rich_text":[{"plain_text":"t"}]}},
		{"type":"paragraph","paragraph":{"rich_text":[{"plain_text":"keep","annotations":{"bold":"yes"}}]}}
	]`), "", Options{})
	require.NoError(t, err)
	assert.Equal(t, "- [x] t\n"+"**keep**\n\n", out)
}

func TestAssembleInvalidFrontmatter(t *testing.T) {
	var logs bytes.Buffer
	l := zerolog.New(&logs)

	out, err := Assemble([]byte(`[{"type":"divider"}]`), `{"title":`, Options{Log: &l})
	require.NoError(t, err)
	assert.Equal(t, "---\n\n", out)
	assert.Contains(t, logs.String(), "invalid frontmatter")
	assert.Contains(t, logs.String(), `"level":"warn"`)
}

func TestAssembleBaseFrontmatter(t *testing.T) {
	base := api.Frontmatter{{Key: "title", Value: "file"}, {Key: "source", Value: "notion"}}
	out, err := Assemble([]byte(`[]`), `{"title":"flag"}`, Options{Base: base})
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: flag\nsource: notion\n---\n\n", out)
}

func TestAssembleStructuralFallbacks(t *testing.T) {
	out, err := Assemble([]byte(`{"object":"page","id":"x"}`), `{"title":"T"}`, Options{})
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: T\n---\n\n", out)

	_, err = Assemble([]byte(`{oops`), "", Options{})
	assert.Error(t, err)
}

func TestAssembleFixture(t *testing.T) {
	in, err := os.ReadFile("testdata/page.json")
	require.NoError(t, err)
	want, err := os.ReadFile("testdata/page.golden.md")
	require.NoError(t, err)

	out, err := Assemble(in, `{"title": "Weekly review", "date": "2024-05-03"}`, Options{})
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestBatch(t *testing.T) {
	docs := make([]api.Document, 20)
	for i := range docs {
		docs[i] = api.Document{Blocks: []api.Block{{Kind: api.KindParagraph, Text: txt(strings.Repeat("x", i))}}}
	}
	out, err := Batch(context.Background(), docs, 4)
	require.NoError(t, err)
	require.Len(t, out, len(docs))
	for i, s := range out {
		assert.Equal(t, Document(docs[i]), s)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Batch(ctx, docs, 2)
	assert.ErrorIs(t, err, context.Canceled)

	out, err = Batch(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}
