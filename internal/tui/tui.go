// Package tui implements the root Bubble Tea model for saltr.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/saltr/internal/secret"
	"github.com/zarlcorp/saltr/internal/vault"
)

type viewID int

const (
	viewMenu viewID = iota
	viewGenerate
	viewForm
	viewRecords
)

// Model is the root TUI model. All vault calls happen on the update loop,
// so they never overlap.
type Model struct {
	version string
	store   *vault.Store
	gen     *secret.Generator
	length  int

	active   viewID
	menu     menuModel
	generate generateModel
	form     formModel
	records  recordsModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version string, store *vault.Store, gen *secret.Generator, length int) Model {
	return Model{
		version: version,
		store:   store,
		gen:     gen,
		length:  length,
		active:  viewMenu,
		menu:    newMenuModel(version, store.Path()),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateMsg:
		return m.navigate(msg.view)

	case addRecordMsg:
		value := msg.value
		if value == "" {
			value = m.newSecret()
		}
		m.form = newFormModel(value, m.newSecret)
		m.active = viewForm
		return m, tea.Batch(m.form.Init(), tea.ClearScreen)

	case saveRecordMsg:
		return m.handleSave(msg.entry)

	case deleteRecordsMsg:
		return m.handleDelete(msg.name)

	case reloadRecordsMsg:
		return m.loadRecords(true)
	}

	return m.updateActive(msg)
}

func (m Model) View() string {
	if m.active == viewMenu {
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewGenerate:
		content = m.generate.View()
	case viewForm:
		content = m.form.View()
	case viewRecords:
		content = m.records.View()
	}

	header := fmt.Sprintf("  %s  %s", zstyle.Title.Render("saltr"), zstyle.MutedText.Render(viewTitle(m.active)))
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewGenerate:
		return "Generate Secret"
	case viewForm:
		return "Save Record"
	case viewRecords:
		return "Saved Records"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewGenerate:
		return []zstyle.HelpPair{
			{Key: "r", Desc: "regenerate"},
			{Key: "c", Desc: "copy"},
			{Key: "s", Desc: "save"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewForm:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "shift+tab", Desc: "prev"},
			{Key: "ctrl+g", Desc: "new value"},
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	case viewRecords:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "r", Desc: "reveal"},
			{Key: "c", Desc: "copy"},
			{Key: "d", Desc: "delete"},
			{Key: "ctrl+r", Desc: "reload"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewGenerate:
		m.generate, cmd = m.generate.Update(msg)
	case viewForm:
		m.form, cmd = m.form.Update(msg)
	case viewRecords:
		m.records, cmd = m.records.Update(msg)
	}

	return m, cmd
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		m.menu = newMenuModel(m.version, m.store.Path())
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewGenerate:
		m.generate = newGenerateModel(m.newSecret())
		m.active = viewGenerate
		return m, tea.ClearScreen

	case viewRecords:
		m, cmd := m.loadRecords(true)
		return m, tea.Batch(cmd, tea.ClearScreen)
	}

	return m, nil
}

func (m Model) newSecret() string {
	return m.gen.Generate(m.length)
}

// loadRecords rebuilds the record list from the vault file.
func (m Model) loadRecords(announce bool) (Model, tea.Cmd) {
	cursor := m.records.cursor

	records, err := m.store.List()
	if err != nil {
		// keep whatever was on screen and report the failure
		m.records.flash = "load: " + err.Error()
		m.records.flashErr = true
		m.active = viewRecords
		return m, clearFlashAfter()
	}

	m.records = newRecordsModel(records)
	m.records.setCursor(cursor)
	m.active = viewRecords
	if !announce {
		return m, nil
	}
	m.records.flash = fmt.Sprintf("loaded %d records", len(records))
	return m, clearFlashAfter()
}

func (m Model) handleSave(e vault.Entry) (tea.Model, tea.Cmd) {
	db, err := m.store.Append(e)
	if err != nil {
		m.form.flash = "save: " + err.Error()
		m.form.flashErr = true
		return m, clearFlashAfter()
	}

	m.records = newRecordsModel(db.Records())
	m.records.setCursor(db.Len() - 1)
	m.records.flash = fmt.Sprintf("saved %q", e.Name)
	m.active = viewRecords
	return m, tea.Batch(clearFlashAfter(), tea.ClearScreen)
}

func (m Model) handleDelete(name string) (tea.Model, tea.Cmd) {
	removed, err := m.store.DeleteByName(name)
	if err != nil {
		m.records.flash = "delete: " + err.Error()
		m.records.flashErr = true
		return m, clearFlashAfter()
	}

	records, err := m.store.List()
	if err != nil {
		m.records.flash = "reload: " + err.Error()
		m.records.flashErr = true
		return m, clearFlashAfter()
	}

	cursor := m.records.cursor
	m.records = newRecordsModel(records)
	m.records.setCursor(cursor)
	if removed {
		m.records.flash = fmt.Sprintf("deleted %q", name)
	} else {
		m.records.flash = fmt.Sprintf("%q already gone", name)
	}
	return m, clearFlashAfter()
}
