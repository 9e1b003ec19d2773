package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/saltr/internal/vault"
)

const (
	fieldName = iota
	fieldValue
	fieldWebsite
	fieldUsername
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"name",
	"value",
	"website",
	"username",
	"notes",
}

// formModel collects the metadata for a new record.
type formModel struct {
	inputs   [fieldCount]textinput.Model
	focus    int
	regen    func() string
	flash    string
	flashErr bool
}

// saveRecordMsg requests appending a record to the vault.
type saveRecordMsg struct {
	entry vault.Entry
}

func newFormModel(value string, regen func() string) formModel {
	var inputs [fieldCount]textinput.Model
	for i := range fieldCount {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 50
		ti.Prompt = ""
		inputs[i] = ti
	}

	// secrets are as long as the configured length; never cut them
	inputs[fieldValue].CharLimit = 0

	inputs[fieldName].Placeholder = "e.g. Gmail"
	inputs[fieldWebsite].Placeholder = "https://"
	inputs[fieldValue].SetValue(value)

	m := formModel{inputs: inputs, regen: regen}
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		m.flashErr = false
		return m, nil
	}

	return m.updateInput(msg)
}

func (m formModel) handleKey(msg tea.KeyMsg) (formModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "tab", "down":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % fieldCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink

	case "shift+tab", "up":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus - 1 + fieldCount) % fieldCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink

	case "ctrl+g":
		if m.regen != nil {
			m.inputs[fieldValue].SetValue(m.regen())
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.submit()
	}

	return m.updateInput(msg)
}

func (m formModel) updateInput(msg tea.Msg) (formModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// entry reads the current field values.
func (m formModel) entry() vault.Entry {
	return vault.Entry{
		Name:     strings.TrimSpace(m.inputs[fieldName].Value()),
		Value:    m.inputs[fieldValue].Value(),
		Website:  strings.TrimSpace(m.inputs[fieldWebsite].Value()),
		Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Notes:    strings.TrimSpace(m.inputs[fieldNotes].Value()),
	}
}

func (m formModel) submit() (formModel, tea.Cmd) {
	e := m.entry()

	if e.Name == "" {
		m.flash = "name is required"
		m.flashErr = true
		return m, clearFlashAfter()
	}
	if strings.TrimSpace(e.Value) == "" {
		m.flash = "value is required"
		m.flashErr = true
		return m, clearFlashAfter()
	}

	m.flash = ""
	return m, func() tea.Msg { return saveRecordMsg{entry: e} }
}

func (m formModel) View() string {
	s := "\n"

	for i := range fieldCount {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-10s", fieldLabels[i]))
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		s += fmt.Sprintf("  %s%s %s\n", cursor, label, m.inputs[i].View())
	}

	s += "\n"

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
