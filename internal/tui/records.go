package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/saltr/internal/vault"
)

// recordsModel lists the vault's records in insertion order.
type recordsModel struct {
	records  []vault.Record
	cursor   int
	revealed bool
	confirm  bool
	flash    string
	flashErr bool
}

// deleteRecordsMsg requests deletion of every record with the given name.
type deleteRecordsMsg struct {
	name string
}

// reloadRecordsMsg requests a fresh read of the vault file.
type reloadRecordsMsg struct{}

func newRecordsModel(records []vault.Record) recordsModel {
	return recordsModel{records: records}
}

func (m *recordsModel) setCursor(i int) {
	if i >= len(m.records) {
		i = len(m.records) - 1
	}
	if i < 0 {
		i = 0
	}
	m.cursor = i
}

func (m recordsModel) selected() (vault.Record, bool) {
	if len(m.records) == 0 {
		return vault.Record{}, false
	}
	return m.records[m.cursor], true
}

func (m recordsModel) Update(msg tea.Msg) (recordsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		m.flashErr = false
		return m, nil
	}

	return m, nil
}

func (m recordsModel) handleKey(msg tea.KeyMsg) (recordsModel, tea.Cmd) {
	if m.confirm {
		return m.handleConfirm(msg)
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
			m.revealed = false
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.records)-1 {
			m.cursor++
			m.revealed = false
		}
		return m, nil
	}

	switch msg.String() {
	case "r":
		if _, ok := m.selected(); ok {
			m.revealed = !m.revealed
		}
		return m, nil

	case "c":
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := copyToClipboard(r.Value); err != nil {
			m.flash = "copy: " + err.Error()
			m.flashErr = true
			return m, clearFlashAfter()
		}
		m.flash = "value copied"
		return m, clearFlashAfter()

	case "d":
		if _, ok := m.selected(); ok {
			m.confirm = true
		}
		return m, nil

	case "ctrl+r":
		return m, func() tea.Msg { return reloadRecordsMsg{} }
	}

	return m, nil
}

func (m recordsModel) handleConfirm(msg tea.KeyMsg) (recordsModel, tea.Cmd) {
	m.confirm = false
	if msg.String() != "y" {
		return m, nil
	}

	name := m.records[m.cursor].Name
	return m, func() tea.Msg { return deleteRecordsMsg{name: name} }
}

// sameName counts records sharing the selected record's name.
func (m recordsModel) sameName() int {
	r, ok := m.selected()
	if !ok {
		return 0
	}
	return vault.Database{Passwords: m.records}.CountName(r.Name)
}

func (m recordsModel) View() string {
	title := zstyle.Subtitle.Render(fmt.Sprintf("records (%d)", len(m.records)))
	s := fmt.Sprintf("\n  %s\n\n", title)

	if len(m.records) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved records, save some secrets first") + "\n\n"
		return s + m.statusLine()
	}

	for i, r := range m.records {
		line := fmt.Sprintf("%-20s %-28s %s",
			truncate(r.Name, 18), truncate(r.Username, 26), truncate(r.Website, 40))
		if i == m.cursor {
			s += zstyle.Highlight.Render("  > "+line) + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	if r, ok := m.selected(); ok {
		s += "\n" + m.detail(r)
	}

	s += "\n"
	return s + m.statusLine()
}

func (m recordsModel) detail(r vault.Record) string {
	value := strings.Repeat("*", len([]rune(r.Value)))
	if m.revealed {
		value = r.Value
	}

	s := fieldLine("value", value)
	if r.Notes != "" {
		s += fieldLine("notes", r.Notes)
	}
	s += fieldLine("created", r.CreatedAt)
	return s
}

func (m recordsModel) statusLine() string {
	switch {
	case m.confirm:
		r := m.records[m.cursor]
		prompt := fmt.Sprintf("delete %q? this cannot be undone. (y/n)", r.Name)
		if n := m.sameName(); n > 1 {
			prompt = fmt.Sprintf("delete all %d records named %q? this cannot be undone. (y/n)", n, r.Name)
		}
		return "  " + zstyle.StatusWarn.Render(prompt) + "\n"
	case m.flash != "" && m.flashErr:
		return "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	case m.flash != "":
		return "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	}
	return "\n"
}

func fieldLine(label, value string) string {
	l := zstyle.MutedText.Render(fmt.Sprintf("%-10s", label))
	return fmt.Sprintf("    %s %s\n", l, value)
}

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
