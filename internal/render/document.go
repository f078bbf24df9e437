package render

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/mithrel/notion2md/internal/frontmatter"
	"github.com/mithrel/notion2md/internal/notion"
	"github.com/mithrel/notion2md/pkg/api"
)

// Options tune Parse and Assemble. The zero value is usable.
type Options struct {
	// Log receives warnings about input that was skipped. Nil discards them.
	Log *zerolog.Logger
	// Base is frontmatter merged underneath the metadata string, e.g. loaded
	// from a file. Keys in the metadata string win.
	Base api.Frontmatter
}

func (o Options) logger() *zerolog.Logger {
	if o.Log != nil {
		return o.Log
	}
	nop := zerolog.Nop()
	return &nop
}

// Document renders the frontmatter section, if any, followed by every
// top-level block and its descendants.
func Document(doc api.Document) string {
	var sb strings.Builder
	sb.WriteString(FrontmatterBlock(doc.Frontmatter))
	for _, b := range doc.Blocks {
		writeTree(&sb, b, 0)
	}
	return sb.String()
}

// FrontmatterBlock renders fm as a "---" fenced key: value section followed
// by a blank line. Values are written verbatim. Nil renders nothing; an empty
// non-nil Frontmatter renders the bare fences.
func FrontmatterBlock(fm api.Frontmatter) string {
	if fm == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("---\n")
	for _, m := range fm {
		sb.WriteString(m.Key)
		sb.WriteString(": ")
		sb.WriteString(m.Value)
		sb.WriteString("\n")
	}
	sb.WriteString("---\n\n")
	return sb.String()
}

// Parse builds a Document from raw block JSON and a metadata string.
// Invalid top-level JSON is an error. Metadata that cannot be read as a
// mapping is logged and left out.
func Parse(input []byte, meta string, opts Options) (api.Document, error) {
	blocks, err := notion.Decode(input)
	if err != nil {
		return api.Document{}, err
	}
	fm, err := frontmatter.Parse(meta)
	if err != nil {
		opts.logger().Warn().Err(err).Str("frontmatter", meta).Msg("invalid frontmatter, omitting it")
		fm = nil
	}
	return api.Document{
		Blocks:      blocks,
		Frontmatter: frontmatter.Merge(opts.Base, fm),
	}, nil
}

// Assemble is Parse followed by Document.
func Assemble(input []byte, meta string, opts Options) (string, error) {
	doc, err := Parse(input, meta, opts)
	if err != nil {
		return "", err
	}
	return Document(doc), nil
}
