package render

import (
	"strings"

	"github.com/mithrel/notion2md/pkg/api"
)

// Compose turns a run of annotated segments into one Markdown fragment.
//
// The link is applied first, then the style wrappers in a fixed order:
// code, bold, italic, strikethrough. The order does not depend on which
// flags are set, so some combinations nest in ways Markdown renders
// ambiguously. The output is kept stable for compatibility.
func Compose(segs []api.TextSegment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(segment(s))
	}
	return b.String()
}

func segment(s api.TextSegment) string {
	out := s.Content
	if s.Link != "" {
		out = "[" + out + "](" + s.Link + ")"
	}
	a := s.Annotations
	if a.Code {
		out = "`" + out + "`"
	}
	if a.Bold {
		out = "**" + out + "**"
	}
	if a.Italic {
		out = "*" + out + "*"
	}
	if a.Strikethrough {
		out = "~~" + out + "~~"
	}
	return out
}
