package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the chat client and blocks until the user quits
func Run(opts Options, follow bool) error {
	m, err := New(opts)
	if err != nil {
		return err
	}

	if follow && len(m.paths) > 0 {
		f, err := NewFollower(m.paths)
		if err != nil {
			return err
		}
		defer f.Close()
		m.Follow(f)
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("chat client failed: %w", err)
	}
	return nil
}
