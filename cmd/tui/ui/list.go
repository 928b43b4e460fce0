package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwarren/todoapp/cmd/tui/client"
)

type listSuccessMsg struct {
	todos []client.Todo
}

type listErrorMsg struct {
	err error
}

type todoUpdatedMsg struct {
	todo client.Todo
}

type todoDeletedMsg struct {
	id string
}

type todoOpErrorMsg struct {
	err error
}

// openFormMsg switches to the create/edit form. A nil todo means create.
type openFormMsg struct {
	todo *client.Todo
}

var viewFilters = []string{"all", "active", "completed"}

type ListModel struct {
	store       *client.Store
	cursor      int
	filterIndex int
	loaded      bool
	client      *client.Client
}

func NewListModel(c *client.Client) *ListModel {
	return &ListModel{
		store:  client.NewStore(),
		client: c,
	}
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

// Reload starts a fresh fetch. Callers use it when the list becomes the
// active view, so it renders data without waiting for a keypress.
func (m *ListModel) Reload() tea.Cmd {
	m.loaded = false
	m.store.SetLoading(true)
	return listTodosCmd(m.client)
}

// isAuthError reports whether a request failed because the session is
// no longer valid.
func isAuthError(err error) bool {
	switch err.Error() {
	case "No authentication token provided", "Invalid or expired token", "User not found":
		return true
	}
	return false
}

func listTodosCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		todos, err := c.ListTodos("", "", "")
		if err != nil {
			if isAuthError(err) {
				return sessionExpiredMsg{}
			}
			return listErrorMsg{err: err}
		}
		return listSuccessMsg{todos: todos}
	}
}

func toggleTodoCmd(c *client.Client, todo client.Todo) tea.Cmd {
	return func() tea.Msg {
		updated, err := c.ToggleTodo(todo.ID, !todo.Completed)
		if err != nil {
			if isAuthError(err) {
				return sessionExpiredMsg{}
			}
			return todoOpErrorMsg{err: err}
		}
		return todoUpdatedMsg{todo: *updated}
	}
}

func deleteTodoCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteTodo(id); err != nil {
			if isAuthError(err) {
				return sessionExpiredMsg{}
			}
			return todoOpErrorMsg{err: err}
		}
		return todoDeletedMsg{id: id}
	}
}

func (m *ListModel) visible() []client.Todo {
	return m.store.Filtered(viewFilters[m.filterIndex])
}

func (m *ListModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listSuccessMsg:
		m.store.SetAll(msg.todos)
		m.loaded = true
		m.clampCursor()
		return m, nil

	case listErrorMsg:
		m.store.SetError(msg.err.Error())
		m.loaded = true
		return m, nil

	case todoUpdatedMsg:
		m.store.Apply(msg.todo)
		m.clampCursor()
		return m, nil

	case todoDeletedMsg:
		m.store.Remove(msg.id)
		m.clampCursor()
		return m, nil

	case todoOpErrorMsg:
		m.store.SetError(msg.err.Error())
		return m, nil

	case tea.KeyMsg:
		visible := m.visible()

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(visible)-1 {
				m.cursor++
			}
		case "f":
			m.filterIndex = (m.filterIndex + 1) % len(viewFilters)
			m.clampCursor()
		case "r":
			if !m.store.Loading() {
				m.store.SetLoading(true)
				return m, listTodosCmd(m.client)
			}
		case " ", "enter":
			if m.cursor < len(visible) {
				return m, toggleTodoCmd(m.client, visible[m.cursor])
			}
		case "n":
			return m, func() tea.Msg { return openFormMsg{} }
		case "e":
			if m.cursor < len(visible) {
				todo := visible[m.cursor]
				return m, func() tea.Msg { return openFormMsg{todo: &todo} }
			}
		case "d":
			if m.cursor < len(visible) {
				return m, deleteTodoCmd(m.client, visible[m.cursor].ID)
			}
		}
	}

	if !m.loaded && !m.store.Loading() {
		m.store.SetLoading(true)
		return m, listTodosCmd(m.client)
	}

	return m, nil
}

func renderTodoCard(todo client.Todo, selected bool) string {
	borderColor := Muted
	if selected {
		borderColor = Accent
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 2).
		Width(70).
		MarginBottom(1)

	checkbox := "☐"
	titleStyle := lipgloss.NewStyle().Foreground(Text).Bold(true)
	if todo.Completed {
		checkbox = "✔"
		titleStyle = lipgloss.NewStyle().Foreground(Muted).Strikethrough(true)
	}
	titleLine := lipgloss.NewStyle().Foreground(Success).Render(checkbox+" ") + titleStyle.Render(todo.Title)

	priorityBadge := priorityStyles[todo.Priority].Render(strings.ToUpper(todo.Priority))
	meta := priorityBadge
	if todo.DueDate != nil {
		due := todo.DueDate.Format("Jan 2, 2006")
		dueStyle := lipgloss.NewStyle().Foreground(Secondary)
		if !todo.Completed && todo.DueDate.Before(time.Now()) {
			dueStyle = ErrorStyle
			due += " (overdue)"
		}
		meta += lipgloss.NewStyle().Foreground(Muted).Render("  •  ") + dueStyle.Render("due "+due)
	}

	lines := []string{titleLine, meta}
	if todo.Description != "" {
		lines = []string{titleLine, lipgloss.NewStyle().Foreground(Muted).Render(todo.Description), meta}
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *ListModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("📋 YOUR TODOS")
	filterLabel := lipgloss.NewStyle().
		Foreground(Accent).
		Render("[" + viewFilters[m.filterIndex] + "]")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header + " " + filterLabel))
	b.WriteString("\n\n")

	visible := m.visible()

	switch {
	case m.store.Loading():
		loading := lipgloss.NewStyle().
			Foreground(Accent).
			Render("⏳ Loading todos...")
		b.WriteString(centered(loading))
		b.WriteString("\n")
	case m.store.Err() != "":
		b.WriteString(centered(ErrorStyle.Render("❌ " + m.store.Err())))
		b.WriteString("\n")
	case len(visible) == 0:
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("📝 Nothing here. Press n to add a todo.")
		b.WriteString(centered(empty))
		b.WriteString("\n")
	default:
		for i, todo := range visible {
			b.WriteString(centered(renderTodoCard(todo, i == m.cursor)))
		}
		remaining := 0
		for _, todo := range m.store.Todos() {
			if !todo.Completed {
				remaining++
			}
		}
		counter := InfoStyle.Render(fmt.Sprintf("%d of %d remaining", remaining, len(m.store.Todos())))
		b.WriteString(centered(counter))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ move  •  space toggle  •  n new  •  e edit  •  d delete  •  f filter  •  r refresh  •  ctrl+o logout")
	b.WriteString(centered(help))

	return BoxStyle.Width(76).Render(b.String())
}
