package ui

import (
	"context"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/notion2md/internal/archive"
)

// RenderRecordsTable opens an interactive Bubble Tea table to browse archived
// conversions. Pressing enter on a row writes that record's detail view to w
// once the program exits.
func RenderRecordsTable(ctx context.Context, w io.Writer, records []archive.Record) error {
	cols := []table.Column{
		{Title: "ID", Width: 14},
		{Title: "Title", Width: 36},
		{Title: "Source", Width: 24},
		{Title: "Blocks", Width: 6},
		{Title: "Created", Width: 16},
	}

	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, recordRow(r))
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(12, max(3, len(rows)+3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	p := tea.NewProgram(model{table: t, records: records, chosen: -1}, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.chosen >= 0 && m.chosen < len(records) {
		_, err = io.WriteString(w, FormatRecord(records[m.chosen]))
	}
	return err
}

func recordRow(r archive.Record) table.Row {
	return table.Row{
		shortID(r.ID),
		truncate(r.Title, 36),
		truncate(r.Source, 24),
		strconv.Itoa(r.Blocks),
		r.CreatedAt.Local().Format("2006-01-02 15:04"),
	}
}

type model struct {
	table   table.Model
	records []archive.Record
	chosen  int
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.chosen = m.table.Cursor()
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if len(m.records) == 0 {
		return "(no records)\n"
	}
	return m.table.View() + "\n↑/↓ to navigate • enter to show • q to exit\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}
