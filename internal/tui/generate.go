package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// generateModel shows a freshly generated secret.
type generateModel struct {
	value    string
	flash    string
	flashErr bool
}

// addRecordMsg opens the record form with value prefilled. An empty value
// asks the root to generate one.
type addRecordMsg struct {
	value string
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newGenerateModel(value string) generateModel {
	return generateModel{value: value}
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
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

func (m generateModel) handleKey(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "r":
		return m, func() tea.Msg { return navigateMsg{view: viewGenerate} }

	case "c", "enter":
		if err := copyToClipboard(m.value); err != nil {
			m.flash = "copy: " + err.Error()
			m.flashErr = true
			return m, clearFlashAfter()
		}
		m.flash = "copied!"
		m.flashErr = false
		return m, clearFlashAfter()

	case "s":
		v := m.value
		return m, func() tea.Msg { return addRecordMsg{value: v} }
	}

	return m, nil
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m generateModel) View() string {
	label := zstyle.MutedText.Render(fmt.Sprintf("%d chars", len(m.value)))
	s := fmt.Sprintf("\n  %s\n  %s\n\n", zstyle.ActiveBorder.Render(m.value), label)

	// always reserve a line for flash to prevent layout shift
	switch {
	case m.flash != "" && m.flashErr:
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	case m.flash != "":
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	default:
		s += "\n"
	}
	return s
}
