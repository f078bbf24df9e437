// Package notion decodes Notion block JSON into api blocks.
//
// Decoding is lenient: any field that is missing or has the wrong shape
// falls back to its default, and unknown block types become
// api.KindUnsupported. Only input that is not JSON at all is an error.
package notion

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mithrel/notion2md/pkg/api"
)

// ErrInvalidJSON is returned when the input is not a JSON document.
var ErrInvalidJSON = errors.New("invalid block JSON")

// Decode returns the top-level blocks of data. A JSON array is used as the
// block list and an object contributes its "results" array. Anything else
// yields no blocks.
func Decode(data []byte) ([]api.Block, error) {
	first, ok := firstNonSpace(data)
	if !ok || !json.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid JSON", ErrInvalidJSON)
	}

	var raws []json.RawMessage
	switch first {
	case '[':
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		// A lone block or page object is not expanded.
		if res, ok := fields["results"]; ok {
			_ = json.Unmarshal(res, &raws)
		}
	default:
		return nil, nil
	}

	blocks := make([]api.Block, 0, len(raws))
	for _, raw := range raws {
		blocks = append(blocks, decodeBlock(raw))
	}
	return blocks, nil
}

// DecodeReader reads r to the end and decodes it.
func DecodeReader(r io.Reader) ([]api.Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// DecodeBlock decodes a single block object, children included.
func DecodeBlock(data []byte) api.Block {
	return decodeBlock(data)
}

func decodeBlock(raw json.RawMessage) api.Block {
	fields := asObject(raw)
	if fields == nil {
		return api.Block{Kind: api.KindUnsupported}
	}

	typ, _ := fields.str("type")
	b := api.Block{Kind: api.ParseKind(typ)}

	var p object
	if typ != "" {
		p = fields.obj(typ)
	}

	if b.Kind.HasText() {
		b.Text = segments(p.list("rich_text"))
	}
	switch b.Kind {
	case api.KindToDo:
		b.Checked = p.flag("checked")
	case api.KindCode:
		b.Language, _ = p.str("language")
	case api.KindCallout:
		b.Icon = api.DefaultCalloutIcon
		if emoji, ok := p.obj("icon").str("emoji"); ok && emoji != "" {
			b.Icon = emoji
		}
	case api.KindImage:
		b.Source = imageSource(p)
		b.Caption = segments(p.list("caption"))
	}

	// Block-level children first; the append-children API nests them in
	// the payload instead.
	children := fields.list("children")
	if len(children) == 0 {
		children = p.list("children")
	}
	if len(children) > 0 {
		b.Children = make([]api.Block, 0, len(children))
		for _, c := range children {
			b.Children = append(b.Children, decodeBlock(c))
		}
	}
	return b
}

// imageSource prefers an uploaded file URL over an external one.
func imageSource(p object) string {
	if u, ok := p.obj("file").str("url"); ok && u != "" {
		return u
	}
	u, _ := p.obj("external").str("url")
	return u
}

func segments(raws []json.RawMessage) []api.TextSegment {
	if len(raws) == 0 {
		return nil
	}
	out := make([]api.TextSegment, 0, len(raws))
	for _, raw := range raws {
		out = append(out, segment(asObject(raw)))
	}
	return out
}

// segment decodes one rich text element. plain_text and href win over the
// text object's content and link.
func segment(rt object) api.TextSegment {
	var s api.TextSegment
	text := rt.obj("text")
	if c, ok := rt.str("plain_text"); ok {
		s.Content = c
	} else {
		s.Content, _ = text.str("content")
	}
	if href, ok := rt.str("href"); ok && href != "" {
		s.Link = href
	} else {
		s.Link, _ = text.obj("link").str("url")
	}
	if a := rt.obj("annotations"); a != nil {
		s.Annotations = api.Annotations{
			Bold:          a.flag("bold"),
			Italic:        a.flag("italic"),
			Strikethrough: a.flag("strikethrough"),
			Code:          a.flag("code"),
		}
	}
	return s
}

func firstNonSpace(data []byte) (byte, bool) {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return 0, false
	}
	return data[0], true
}
