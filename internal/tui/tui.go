// Package tui is the interactive board. Every key action goes straight to
// the store, so nothing is lost when the program exits.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/focustasks/internal/model"
	"github.com/idilsaglam/focustasks/internal/store"
	"github.com/idilsaglam/focustasks/internal/ui"
)

type keyMap struct {
	Up, Down, Toggle, Remove, Add, Help, Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Remove, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Add, k.Toggle, k.Remove}, {k.Help, k.Quit}}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "done/undo")),
	Remove: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model for the board.
type Model struct {
	store *store.TaskStore
	tasks []model.Task // display order, re-read after every action
	index int

	adding bool
	input  textinput.Model
	errMsg string // last validation or save error
	status string

	help help.Model
}

// New builds a board over s.
func New(s *store.TaskStore) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "New task title..."
	in.CharLimit = model.MaxTitleLen

	m := Model{store: s, input: in, help: help.New()}
	m.refresh()
	return m
}

// Run starts the program on the alternate screen.
func Run(s *store.TaskStore) error {
	_, err := tea.NewProgram(New(s), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) refresh() {
	m.tasks = ui.DisplayOrder(m.store.List())
	if m.index >= len(m.tasks) {
		m.index = len(m.tasks) - 1
	}
	if m.index < 0 {
		m.index = 0
	}
}

func (m Model) selected() (model.Task, bool) {
	if m.index < 0 || m.index >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.index], true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.help.Width = ws.Width
		if ws.Width > 8 {
			m.input.Width = ws.Width - 8
		}
		return m, nil
	}
	if m.adding {
		return m.updateAdding(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.errMsg, m.status = "", ""

	switch {
	case key.Matches(km, keys.Quit):
		return m, tea.Quit
	case key.Matches(km, keys.Up):
		if m.index > 0 {
			m.index--
		}
	case key.Matches(km, keys.Down):
		if m.index < len(m.tasks)-1 {
			m.index++
		}
	case key.Matches(km, keys.Toggle):
		if t, ok := m.selected(); ok {
			if _, err := m.store.Toggle(t.ID); err != nil {
				m.errMsg = "save: " + err.Error()
			}
			m.refresh()
			m.follow(t.ID)
		}
	case key.Matches(km, keys.Remove):
		if t, ok := m.selected(); ok {
			if _, err := m.store.Remove(t.ID); err != nil {
				m.errMsg = "save: " + err.Error()
			} else {
				m.status = "removed " + ui.Sanitize(t.Title)
			}
			m.refresh()
		}
	case key.Matches(km, keys.Add):
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(km, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			title, err := model.ValidateTitle(m.input.Value())
			if err != nil {
				m.errMsg = ui.TitleMessage(err)
				return m, nil
			}
			task := model.NewTask(title)
			if _, err := m.store.Add(task); err != nil {
				m.errMsg = "save: " + err.Error()
				return m, nil
			}
			m.errMsg = ""
			m.status = "added"
			m.stopAdding()
			m.refresh()
			m.follow(task.ID)
			return m, nil
		case "esc":
			m.errMsg = ""
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.input.SetValue("")
	m.input.Blur()
}

// follow keeps the cursor on id after it moves between sections.
func (m *Model) follow(id string) {
	for i, t := range m.tasks {
		if t.ID == id {
			m.index = i
			return
		}
	}
}

func (m Model) View() string {
	th := ui.Current()
	sel, _ := m.selected()

	lines := append([]string{th.Title.Render("FocusTasks")}, ui.BoardCursor(m.store.List(), sel.ID)...)
	if m.adding {
		lines = append(lines, "", th.Accent.Render("Add task"), m.input.View())
	}
	if m.errMsg != "" {
		lines = append(lines, th.Error.Render(th.SymFail+" "+m.errMsg))
	} else if m.status != "" {
		lines = append(lines, th.Success.Render(th.SymOK+" "+m.status))
	}
	lines = append(lines, "", m.help.View(keys))
	return ui.PanelString(strings.Join(lines, "\n"))
}
