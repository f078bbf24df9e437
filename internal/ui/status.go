package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Status prints short progress lines. Colors are used only when the
// destination is a terminal.
type Status struct {
	w     io.Writer
	color bool
}

func NewStatus(w io.Writer) *Status {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Status{w: w, color: color}
}

// Wrote reports a written output file.
func (s *Status) Wrote(path, title string) {
	mark, detail := "✓", ""
	if title != "" {
		detail = " (" + title + ")"
	}
	if s.color {
		mark, detail = okStyle.Render(mark), dimStyle.Render(detail)
	}
	fmt.Fprintf(s.w, "%s wrote %s%s\n", mark, path, detail)
}

// Skipped reports an input that produced no output.
func (s *Status) Skipped(path string, err error) {
	mark := "!"
	if s.color {
		mark = warnStyle.Render(mark)
	}
	fmt.Fprintf(s.w, "%s skipped %s: %v\n", mark, path, err)
}
