package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwarren/todoapp/cmd/tui/client"
)

type View int

const (
	LoginView View = iota
	SignupView
	ListView
	FormView
)

type Model struct {
	currentView View
	login       *LoginModel
	signup      *SignupModel
	list        *ListModel
	form        *FormModel
	client      *client.Client
	width       int
	height      int

	isAuthenticated bool
	userName        string
	userEmail       string
}

func NewModel(apiClient *client.Client) Model {
	loginModel := NewLoginModel(apiClient)
	signupModel := NewSignupModel(apiClient)
	listModel := NewListModel(apiClient)
	formModel := NewFormModel(apiClient)

	m := Model{
		currentView: LoginView,
		login:       loginModel,
		signup:      signupModel,
		list:        listModel,
		form:        formModel,
		client:      apiClient,
	}

	// A saved token skips the login screen; the first list fetch will
	// bounce back to login if it has expired.
	if apiClient.Token() != "" {
		m.isAuthenticated = true
		m.currentView = ListView
	}

	return m
}

func (m Model) Init() tea.Cmd {
	// Resuming a saved session lands on the list, which needs its data.
	if m.currentView == ListView {
		return m.list.Reload()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authSuccessMsg:
		m.isAuthenticated = true
		m.userName = msg.name
		m.userEmail = msg.email
		_ = client.SaveToken(msg.token)
		m.currentView = ListView
		return m, m.list.Reload()

	case sessionExpiredMsg:
		m.isAuthenticated = false
		m.userName = ""
		m.userEmail = ""
		m.client.SetToken("")
		client.ClearToken()
		m.currentView = LoginView
		return m, nil

	case openFormMsg:
		m.form.Reset(msg.todo)
		m.currentView = FormView
		return m, nil

	case formDoneMsg:
		if msg.created != nil {
			m.list.store.Add(*msg.created)
		}
		if msg.updated != nil {
			m.list.store.Apply(*msg.updated)
		}
		m.currentView = ListView
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+s":
			if m.currentView == LoginView {
				m.currentView = SignupView
				return m, nil
			}
			if m.currentView == SignupView {
				m.currentView = LoginView
				return m, nil
			}

		case "esc":
			if m.currentView == FormView {
				m.currentView = ListView
				return m, nil
			}

		case "ctrl+o":
			if m.isAuthenticated {
				return m, func() tea.Msg { return sessionExpiredMsg{} }
			}
		}
	}

	switch m.currentView {
	case LoginView:
		updated, cmd := m.login.Update(msg)
		m.login = updated.(*LoginModel)
		return m, cmd

	case SignupView:
		updated, cmd := m.signup.Update(msg)
		m.signup = updated.(*SignupModel)
		return m, cmd

	case ListView:
		updated, cmd := m.list.Update(msg)
		m.list = updated.(*ListModel)
		return m, cmd

	case FormView:
		updated, cmd := m.form.Update(msg)
		m.form = updated.(*FormModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.isAuthenticated && m.userName != "" {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("👤 " + m.userName)

		emailInfo := lipgloss.NewStyle().
			Foreground(Muted).
			Render(" (" + m.userEmail + ")")

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo + emailInfo)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case ListView:
		mainContent = m.list.View()
	case FormView:
		mainContent = m.form.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
