package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwarren/todoapp/cmd/tui/client"
)

type SignupModel struct {
	nameInput     string
	emailInput    string
	passwordInput string
	confirmInput  string
	focusedInput  int
	loading       bool
	err           error
	client        *client.Client
}

func NewSignupModel(c *client.Client) *SignupModel {
	return &SignupModel{client: c}
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func signupCmd(c *client.Client, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.Register(name, email, password)
		if err != nil {
			return authErrorMsg{err: err}
		}

		return authSuccessMsg{
			token: resp.Token,
			name:  resp.User.Name,
			email: resp.User.Email,
		}
	}
}

func (m *SignupModel) validate() error {
	if m.nameInput == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if m.emailInput == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if len(m.passwordInput) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	if m.passwordInput != m.confirmInput {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authErrorMsg:
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
		case "enter":
			if err := m.validate(); err != nil {
				m.err = err
				return m, nil
			}

			m.loading = true
			m.err = nil
			return m, signupCmd(m.client, m.nameInput, m.emailInput, m.passwordInput)
		case "backspace":
			switch m.focusedInput {
			case 0:
				if len(m.nameInput) > 0 {
					m.nameInput = m.nameInput[:len(m.nameInput)-1]
				}
			case 1:
				if len(m.emailInput) > 0 {
					m.emailInput = m.emailInput[:len(m.emailInput)-1]
				}
			case 2:
				if len(m.passwordInput) > 0 {
					m.passwordInput = m.passwordInput[:len(m.passwordInput)-1]
				}
			case 3:
				if len(m.confirmInput) > 0 {
					m.confirmInput = m.confirmInput[:len(m.confirmInput)-1]
				}
			}
		case "ctrl+l":
			m.nameInput = ""
			m.emailInput = ""
			m.passwordInput = ""
			m.confirmInput = ""
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				switch m.focusedInput {
				case 0:
					m.nameInput += msg.String()
				case 1:
					m.emailInput += msg.String()
				case 2:
					m.passwordInput += msg.String()
				case 3:
					m.confirmInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *SignupModel) renderField(label, value string, index int, mask bool) string {
	fieldLabel := LabelStyle.Width(15).Render(label)
	style := InputStyle
	if m.focusedInput == index {
		style = FocusedInputStyle
	}
	if mask {
		value = strings.Repeat("•", len(value))
	}
	return centered(lipgloss.JoinHorizontal(lipgloss.Left, fieldLabel, style.Width(50).Render(value)))
}

func (m *SignupModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("✨ SIGN UP")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Create an account to start tracking todos.")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginBottom(3).
		Render(subtitle))
	b.WriteString("\n\n")

	b.WriteString(m.renderField("Name:", m.nameInput, 0, false))
	b.WriteString("\n\n")
	b.WriteString(m.renderField("Email:", m.emailInput, 1, false))
	b.WriteString("\n\n")
	b.WriteString(m.renderField("Password:", m.passwordInput, 2, true))
	b.WriteString("\n\n")
	b.WriteString(m.renderField("Confirm:", m.confirmInput, 3, true))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(centered(InfoStyle.Render("🔄 Creating account...")))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(centered(ErrorStyle.Render("❌ " + m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter sign up  •  ctrl+l clear  •  ctrl+s login  •  ctrl+c quit")
	b.WriteString(centered(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
