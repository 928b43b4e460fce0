package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwarren/todoapp/cmd/tui/client"
)

// formDoneMsg carries the result of a successful submit. Exactly one of
// created or updated is set.
type formDoneMsg struct {
	created *client.Todo
	updated *client.Todo
}

type formErrorMsg struct {
	err error
}

var priorities = []string{"low", "medium", "high"}

type FormModel struct {
	editID        string
	titleInput    string
	descInput     string
	dueDateInput  string
	priorityIndex int
	focusedInput  int
	loading       bool
	err           error
	client        *client.Client
}

func NewFormModel(c *client.Client) *FormModel {
	return &FormModel{priorityIndex: 1, client: c}
}

// Reset prepares the form for a new todo, or prefills it from an
// existing one when editing.
func (m *FormModel) Reset(todo *client.Todo) {
	m.editID = ""
	m.titleInput = ""
	m.descInput = ""
	m.dueDateInput = ""
	m.priorityIndex = 1
	m.focusedInput = 0
	m.loading = false
	m.err = nil

	if todo != nil {
		m.editID = todo.ID
		m.titleInput = todo.Title
		m.descInput = todo.Description
		if todo.DueDate != nil {
			m.dueDateInput = todo.DueDate.Format("2006-01-02")
		}
		for i, p := range priorities {
			if p == todo.Priority {
				m.priorityIndex = i
			}
		}
	}
}

func (m *FormModel) Init() tea.Cmd {
	return nil
}

func createTodoCmd(c *client.Client, title, desc, priority, dueDate string) tea.Cmd {
	return func() tea.Msg {
		todo, err := c.CreateTodo(title, desc, priority, dueDate)
		if err != nil {
			if isAuthError(err) {
				return sessionExpiredMsg{}
			}
			return formErrorMsg{err: err}
		}
		return formDoneMsg{created: todo}
	}
}

func updateTodoCmd(c *client.Client, id, title, desc, priority, dueDate string) tea.Cmd {
	return func() tea.Msg {
		fields := map[string]interface{}{
			"title":       title,
			"description": desc,
			"priority":    priority,
			"dueDate":     dueDate,
		}
		todo, err := c.UpdateTodo(id, fields)
		if err != nil {
			if isAuthError(err) {
				return sessionExpiredMsg{}
			}
			return formErrorMsg{err: err}
		}
		return formDoneMsg{updated: todo}
	}
}

func (m *FormModel) validate() error {
	title := strings.TrimSpace(m.titleInput)
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if len(title) < 3 || len(title) > 100 {
		return fmt.Errorf("title must be between 3 and 100 characters")
	}
	if m.dueDateInput != "" {
		due, err := time.Parse("2006-01-02", m.dueDateInput)
		if err != nil {
			return fmt.Errorf("due date must look like 2026-12-31")
		}
		if m.editID == "" && !due.After(time.Now()) {
			return fmt.Errorf("due date must be in the future")
		}
	}
	return nil
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focusedInput = (m.focusedInput + 1) % 4
		case "shift+tab":
			m.focusedInput = (m.focusedInput + 3) % 4
		case "left", "right":
			if m.focusedInput == 3 {
				if msg.String() == "right" {
					m.priorityIndex = (m.priorityIndex + 1) % len(priorities)
				} else {
					m.priorityIndex = (m.priorityIndex + len(priorities) - 1) % len(priorities)
				}
			}
		case "enter":
			if err := m.validate(); err != nil {
				m.err = err
				return m, nil
			}

			m.loading = true
			m.err = nil
			title := strings.TrimSpace(m.titleInput)
			priority := priorities[m.priorityIndex]
			if m.editID != "" {
				return m, updateTodoCmd(m.client, m.editID, title, m.descInput, priority, m.dueDateInput)
			}
			return m, createTodoCmd(m.client, title, m.descInput, priority, m.dueDateInput)
		case "backspace":
			switch m.focusedInput {
			case 0:
				if len(m.titleInput) > 0 {
					m.titleInput = m.titleInput[:len(m.titleInput)-1]
				}
			case 1:
				if len(m.descInput) > 0 {
					m.descInput = m.descInput[:len(m.descInput)-1]
				}
			case 2:
				if len(m.dueDateInput) > 0 {
					m.dueDateInput = m.dueDateInput[:len(m.dueDateInput)-1]
				}
			}
		case "ctrl+l":
			m.Reset(nil)
		default:
			if len(msg.String()) == 1 {
				switch m.focusedInput {
				case 0:
					m.titleInput += msg.String()
				case 1:
					m.descInput += msg.String()
				case 2:
					m.dueDateInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *FormModel) renderField(label, value string, index int) string {
	fieldLabel := LabelStyle.Width(15).Render(label)
	style := InputStyle
	if m.focusedInput == index {
		style = FocusedInputStyle
	}
	return centered(lipgloss.JoinHorizontal(lipgloss.Left, fieldLabel, style.Width(50).Render(value)))
}

func (m *FormModel) View() string {
	var b strings.Builder

	heading := "➕ NEW TODO"
	if m.editID != "" {
		heading = "✏️ EDIT TODO"
	}
	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render(heading)

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.renderField("Title:", m.titleInput, 0))
	b.WriteString("\n\n")
	b.WriteString(m.renderField("Description:", m.descInput, 1))
	b.WriteString("\n\n")
	b.WriteString(m.renderField("Due date:", m.dueDateInput, 2))
	b.WriteString("\n\n")

	// Priority selector
	priorityLabel := LabelStyle.Width(15).Render("Priority:")
	var options []string
	for i, p := range priorities {
		style := lipgloss.NewStyle().Foreground(Muted).Padding(0, 1)
		if i == m.priorityIndex {
			style = priorityStyles[p].Padding(0, 1).Reverse(m.focusedInput == 3)
		}
		options = append(options, style.Render(strings.ToUpper(p)))
	}
	priorityField := lipgloss.JoinHorizontal(lipgloss.Left, priorityLabel, strings.Join(options, " "))
	b.WriteString(centered(priorityField))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(centered(InfoStyle.Render("🔄 Saving...")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(ErrorStyle.Render("❌ " + m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  ←/→ priority  •  enter save  •  ctrl+l clear  •  esc cancel")
	b.WriteString(centered(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
