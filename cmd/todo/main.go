package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"todoapp/internal/tui"
	"todoapp/pkg/client"
)

func main() {
	apiURL := os.Getenv("API_URL")

	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	todos := client.NewTodoList(client.New(apiURL), nil)

	p := tea.NewProgram(tui.NewModel(todos), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
