package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwarren/todoapp/cmd/tui/client"
	"github.com/mwarren/todoapp/cmd/tui/ui"
)

func main() {
	baseURL := os.Getenv("TODO_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	apiClient := client.NewClient(baseURL)
	if token := client.LoadToken(); token != "" {
		apiClient.SetToken(token)
	}

	p := tea.NewProgram(
		ui.NewModel(apiClient),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
