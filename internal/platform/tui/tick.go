// Package tui runs Hex in the terminal with Bubble Tea: the local game loop,
// the variant menu, the history screen, online lobbies and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one game step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at tickRate steps per second.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
