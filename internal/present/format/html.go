package format

import (
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var htmlConverter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// Toggle blocks are emitted as raw <details> tags.
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// WriteHTML converts md to HTML. md must not carry a frontmatter section.
func WriteHTML(w io.Writer, md string) error {
	return htmlConverter.Convert([]byte(md), w)
}
