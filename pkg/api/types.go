package api

import "strings"

// Annotations are the inline style flags of a text segment. They are
// independent and may all be set at once.
type Annotations struct {
	Bold          bool `json:"bold"`
	Italic        bool `json:"italic"`
	Strikethrough bool `json:"strikethrough"`
	Code          bool `json:"code"`
}

// TextSegment is one run of inline text. An empty Link means no link.
type TextSegment struct {
	Content     string      `json:"content"`
	Annotations Annotations `json:"annotations"`
	Link        string      `json:"link,omitempty"`
}

// Kind is the block discriminant.
type Kind string

const (
	KindParagraph   Kind = "paragraph"
	KindHeading1    Kind = "heading_1"
	KindHeading2    Kind = "heading_2"
	KindHeading3    Kind = "heading_3"
	KindBulleted    Kind = "bulleted_list_item"
	KindNumbered    Kind = "numbered_list_item"
	KindToDo        Kind = "to_do"
	KindToggle      Kind = "toggle"
	KindCode        Kind = "code"
	KindQuote       Kind = "quote"
	KindCallout     Kind = "callout"
	KindImage       Kind = "image"
	KindDivider     Kind = "divider"
	KindUnsupported Kind = "unsupported"
)

var kinds = []Kind{
	KindParagraph,
	KindHeading1,
	KindHeading2,
	KindHeading3,
	KindBulleted,
	KindNumbered,
	KindToDo,
	KindToggle,
	KindCode,
	KindQuote,
	KindCallout,
	KindImage,
	KindDivider,
}

// Kinds returns every supported block kind, excluding KindUnsupported.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind maps a wire type tag to a Kind. Unknown tags map to KindUnsupported.
func ParseKind(s string) Kind {
	k := Kind(s)
	if k.Known() {
		return k
	}
	return KindUnsupported
}

// Known reports whether k is one of the supported kinds.
func (k Kind) Known() bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}

// HasText reports whether blocks of this kind carry a rich text payload.
func (k Kind) HasText() bool {
	switch k {
	case KindImage, KindDivider, KindUnsupported:
		return false
	}
	return k.Known()
}

// DefaultCalloutIcon is used when a callout carries no emoji icon.
const DefaultCalloutIcon = "💡"

// Block is a fully populated document block. Defaults for missing wire
// fields are applied when decoding, never while rendering.
type Block struct {
	Kind     Kind          `json:"kind"`
	Text     []TextSegment `json:"text,omitempty"`
	Checked  bool          `json:"checked,omitempty"`
	Language string        `json:"language,omitempty"`
	Icon     string        `json:"icon,omitempty"`
	Source   string        `json:"source,omitempty"`
	Caption  []TextSegment `json:"caption,omitempty"`
	Children []Block       `json:"children,omitempty"`
}

// Count returns the number of blocks in the tree rooted at b, b included.
func (b Block) Count() int {
	n := 1
	for _, c := range b.Children {
		n += c.Count()
	}
	return n
}

// Meta is one frontmatter entry.
type Meta struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Frontmatter is an ordered set of metadata entries.
type Frontmatter []Meta

// Get returns the value of the first entry with the given key.
func (f Frontmatter) Get(key string) (string, bool) {
	for _, m := range f {
		if m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}

// Document is the top-level unit handed to the renderer.
type Document struct {
	Blocks      []Block     `json:"blocks"`
	Frontmatter Frontmatter `json:"frontmatter,omitempty"`
}

// Count returns the total number of blocks in the document, nested ones included.
func (d Document) Count() int {
	n := 0
	for _, b := range d.Blocks {
		n += b.Count()
	}
	return n
}

// Title picks a human label: the "title" frontmatter value, else the text of
// the first heading found depth-first.
func (d Document) Title() string {
	if t, ok := d.Frontmatter.Get("title"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	for _, b := range d.Blocks {
		if t := firstHeading(b); t != "" {
			return t
		}
	}
	return ""
}

func firstHeading(b Block) string {
	switch b.Kind {
	case KindHeading1, KindHeading2, KindHeading3:
		if t := strings.TrimSpace(PlainText(b.Text)); t != "" {
			return t
		}
	}
	for _, c := range b.Children {
		if t := firstHeading(c); t != "" {
			return t
		}
	}
	return ""
}

// PlainText concatenates segment contents without any styling.
func PlainText(segs []TextSegment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Content)
	}
	return b.String()
}
