package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todoapp/internal/core/domain"
	"todoapp/pkg/client"
)

// Messages produced by the async commands.
type (
	todosLoadedMsg  []domain.Todo
	requestErrMsg   struct{ err error }
	mutationDoneMsg struct{}
)

// Model renders the todo list and an entry field. All state is derived
// from the TodoList layer: the entry field submits on enter and clears
// itself, completed rows render struck through, and every row has a
// delete binding.
type Model struct {
	list *client.TodoList

	input  textinput.Model
	todos  []domain.Todo
	cursor int

	focusList bool
	loading   bool
	errText   string
}

func NewModel(list *client.TodoList) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New TODO..."
	ti.CharLimit = 255
	ti.Focus()

	return Model{
		list:    list,
		input:   ti,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchCmd())
}

// fetchCmd pulls server truth through the list layer.
func (m Model) fetchCmd() tea.Cmd {
	list := m.list

	return func() tea.Msg {
		todos, err := list.Todos(context.Background())

		if err != nil {
			return requestErrMsg{err}
		}

		return todosLoadedMsg(todos)
	}
}

func (m Model) addCmd(title string) tea.Cmd {
	list := m.list

	return func() tea.Msg {
		if _, err := list.Add(context.Background(), title); err != nil {
			return requestErrMsg{err}
		}

		return mutationDoneMsg{}
	}
}

func (m Model) toggleCmd(id string) tea.Cmd {
	list := m.list

	return func() tea.Msg {
		if _, err := list.ToggleCompleted(context.Background(), id); err != nil {
			return requestErrMsg{err}
		}

		return mutationDoneMsg{}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	list := m.list

	return func() tea.Msg {
		if err := list.Remove(context.Background(), id); err != nil {
			return requestErrMsg{err}
		}

		return mutationDoneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		m.todos = msg
		m.loading = false

		if m.cursor >= len(m.todos) {
			m.cursor = max(0, len(m.todos)-1)
		}

		return m, nil

	case mutationDoneMsg:
		// The settled mutation invalidated the cache; fetch server truth.
		return m, m.fetchCmd()

	case requestErrMsg:
		m.loading = false
		m.errText = msg.err.Error()

		// No automatic retry: render the rolled-back snapshot and wait
		// for the user to act again. The error line stays up until then.
		if snapshot, ok := m.list.Cached(); ok {
			m.todos = snapshot

			if m.cursor >= len(m.todos) {
				m.cursor = max(0, len(m.todos)-1)
			}
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.focusList = !m.focusList

			if m.focusList {
				m.input.Blur()
			} else {
				m.input.Focus()
			}

			return m, nil
		}

		if m.focusList {
			return m.updateList(msg)
		}

		return m.updateInput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		title := strings.TrimSpace(m.input.Value())

		if title == "" {
			return m, nil
		}

		// Optimistic append; server truth replaces it once the
		// mutation settles.
		m.todos = append(m.todos, domain.Todo{Title: title, Completed: false})
		m.input.SetValue("")
		m.errText = ""

		return m, m.addCmd(title)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

		return m, nil
	case "down", "j":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}

		return m, nil
	case " ":
		if m.cursor < len(m.todos) {
			// Optimistic flip; rolled back on failure.
			m.todos[m.cursor] = m.todos[m.cursor].Toggled()
			m.errText = ""

			return m, m.toggleCmd(m.todos[m.cursor].ID)
		}

		return m, nil
	case "d":
		if m.cursor < len(m.todos) {
			m.errText = ""

			return m, m.deleteCmd(m.todos[m.cursor].ID)
		}

		return m, nil
	case "r":
		m.loading = true
		m.errText = ""

		return m, m.fetchCmd()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	done := 0

	for _, t := range m.todos {
		if t.Completed {
			done++
		}
	}

	b.WriteString(titleStyle.Render("Todo List"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("   %d/%d done", done, len(m.todos))))
	b.WriteString("\n\n")

	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("Loading...") + "\n")
	case len(m.todos) == 0:
		b.WriteString(mutedStyle.Render("Nothing to do.") + "\n")
	default:
		for i, t := range m.todos {
			b.WriteString(m.renderRow(i, t))
			b.WriteString("\n")
		}
	}

	if m.errText != "" {
		b.WriteString("\n" + errorStyle.Render(m.errText) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab focus · enter add · space toggle · d delete · r refresh · q quit"))

	return b.String()
}

func (m Model) renderRow(index int, t domain.Todo) string {
	box := mutedStyle.Render(boxUnchecked)
	title := t.Title

	if t.Completed {
		box = checkedStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}

	prefix := "  "

	if m.focusList && index == m.cursor {
		prefix = selectedStyle.Render("> ")
	}

	return fmt.Sprintf("%s%s %s", prefix, box, title)
}
