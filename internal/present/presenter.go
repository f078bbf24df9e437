package present

import (
	"context"
	"fmt"
	"io"

	"github.com/mithrel/notion2md/internal/archive"
	"github.com/mithrel/notion2md/internal/present/format"
	"github.com/mithrel/notion2md/internal/render"
	"github.com/mithrel/notion2md/internal/ui"
	"github.com/mithrel/notion2md/pkg/api"
)

type Mode int

const (
	ModeMarkdown Mode = iota
	ModeHTML
	ModePretty
	ModeJSON
	ModePlain
	ModeTUI
)

type Options struct {
	Mode       Mode
	JSONIndent bool
	Headers    bool
	Style      string
	Width      int
}

// ParseMode parses a document output mode: "markdown", "html", "pretty", "json".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "markdown", "md", "":
		return ModeMarkdown, true
	case "html":
		return ModeHTML, true
	case "pretty":
		return ModePretty, true
	case "json":
		return ModeJSON, true
	default:
		return ModeMarkdown, false
	}
}

// ParseListMode parses a record listing mode: "plain", "json", "tui".
func ParseListMode(s string) (Mode, bool) {
	switch s {
	case "plain", "":
		return ModePlain, true
	case "json":
		return ModeJSON, true
	case "tui":
		return ModeTUI, true
	default:
		return ModePlain, false
	}
}

// Extension is the file extension used when writing a document in mode m.
func (m Mode) Extension() string {
	switch m {
	case ModeHTML:
		return ".html"
	case ModeJSON:
		return ".json"
	case ModePretty:
		return ".txt"
	default:
		return ".md"
	}
}

// Output is one converted document ready to be written.
type Output struct {
	ID          string          `json:"id"`
	Title       string          `json:"title,omitempty"`
	Source      string          `json:"source,omitempty"`
	Frontmatter api.Frontmatter `json:"frontmatter,omitempty"`
	Body        string          `json:"-"`
}

// NewOutput splits a document into its frontmatter and rendered body.
func NewOutput(doc api.Document, source string) Output {
	return OutputFromBody(doc, source, render.Document(api.Document{Blocks: doc.Blocks}))
}

// OutputFromBody is NewOutput for a body that was already rendered.
func OutputFromBody(doc api.Document, source, body string) Output {
	return Output{
		ID:          doc.Hash(),
		Title:       doc.Title(),
		Source:      source,
		Frontmatter: doc.Frontmatter,
		Body:        body,
	}
}

// Markdown is the full document: frontmatter section then body.
func (o Output) Markdown() string {
	return render.FrontmatterBlock(o.Frontmatter) + o.Body
}

type jsonOutput struct {
	Output
	Markdown string `json:"markdown"`
}

// RenderDocument writes a converted document according to options.
func RenderDocument(w io.Writer, out Output, opts Options) error {
	switch opts.Mode {
	case ModeHTML:
		return format.WriteHTML(w, out.Body)
	case ModePretty:
		return format.WritePretty(w, out.Title, out.Body, opts.Style, opts.Width)
	case ModeJSON:
		return format.WriteJSON(w, jsonOutput{Output: out, Markdown: out.Markdown()}, opts.JSONIndent)
	case ModeMarkdown:
		return format.WriteMarkdown(w, out.Markdown())
	default:
		return fmt.Errorf("unsupported document output mode %d", opts.Mode)
	}
}

// RenderRecords writes archive records according to options.
func RenderRecords(ctx context.Context, w io.Writer, records []archive.Record, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return format.WriteJSON(w, records, opts.JSONIndent)
	case ModeTUI:
		return ui.RenderRecordsTable(ctx, w, records)
	default:
		return format.WritePlainRecords(w, records, opts.Headers)
	}
}
