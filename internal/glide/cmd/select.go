package cmd

import (
	"fmt"
	"io"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glidekit/glide-cli/internal/glide/client"
)

// selectClientInteractively prompts the user to pick a client with a small
// bubbletea list.
func selectClientInteractively(out io.Writer) (string, error) {
	model := clientSelectModel{
		options: client.All(),
	}

	program := tea.NewProgram(model, tea.WithOutput(out))
	finalModel, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run client selection: %w", err)
	}

	result := finalModel.(clientSelectModel)
	if result.selected == "" {
		return "", fmt.Errorf("no client selected")
	}
	return string(result.selected), nil
}

type clientSelectModel struct {
	options  []client.Client
	cursor   int
	selected client.Client
}

func (m clientSelectModel) Init() tea.Cmd {
	return nil
}

func (m clientSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.selected = m.options[m.cursor]
			return m, tea.Quit
		default:
			// Number keys jump straight to an option (1-based).
			if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.options) {
				m.cursor = n - 1
			}
		}
	}
	return m, nil
}

func (m clientSelectModel) View() string {
	s := "Select an MCP client to configure:\n\n"
	for i, option := range m.options {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		s += fmt.Sprintf("%s %d. %s\n", cursor, i+1, option.DisplayName())
	}
	s += "\nUse ↑/↓ arrows or number keys to navigate, enter to select, q to quit"
	return s
}
