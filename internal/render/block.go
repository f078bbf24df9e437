package render

import (
	"strings"

	"github.com/mithrel/notion2md/pkg/api"
)

const indentUnit = "  "

// Block renders a single block at the given depth. Children are not
// rendered here; see Tree. Unsupported kinds render as the empty string.
func Block(b api.Block, depth int) string {
	if depth < 0 {
		depth = 0
	}
	indent := strings.Repeat(indentUnit, depth)
	text := Compose(b.Text)

	switch b.Kind {
	case api.KindParagraph:
		return indent + text + "\n\n"
	case api.KindHeading1:
		return indent + "# " + text + "\n\n"
	case api.KindHeading2:
		return indent + "## " + text + "\n\n"
	case api.KindHeading3:
		return indent + "### " + text + "\n\n"
	case api.KindBulleted:
		return indent + "- " + text + "\n"
	case api.KindNumbered:
		// Always "1."; Markdown renderers number the list themselves.
		return indent + "1. " + text + "\n"
	case api.KindToDo:
		mark := " "
		if b.Checked {
			mark = "x"
		}
		return indent + "- [" + mark + "] " + text + "\n"
	case api.KindToggle:
		return indent + "<details><summary>" + text + "</summary>\n"
	case api.KindCode:
		return indent + "```" + b.Language + "\n" + text + "\n" + indent + "```\n\n"
	case api.KindQuote:
		return indent + "> " + text + "\n\n"
	case api.KindCallout:
		icon := b.Icon
		if icon == "" {
			icon = api.DefaultCalloutIcon
		}
		return indent + "> " + icon + " **" + text + "**\n\n"
	case api.KindImage:
		return indent + "![" + Compose(b.Caption) + "](" + b.Source + ")\n\n"
	case api.KindDivider:
		return indent + "---\n\n"
	default:
		return ""
	}
}

// Tree renders b at depth and then each of its children at depth+1.
func Tree(b api.Block, depth int) string {
	var sb strings.Builder
	writeTree(&sb, b, depth)
	return sb.String()
}

func writeTree(sb *strings.Builder, b api.Block, depth int) {
	if depth < 0 {
		depth = 0
	}
	sb.WriteString(Block(b, depth))
	for _, c := range b.Children {
		writeTree(sb, c, depth+1)
	}
}
