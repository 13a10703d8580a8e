// Package tui provides the Bubble Tea front-end for a game session.
// It handles the terminal UI loop, key bindings, and the off-loop AI search.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ai2048/internal/solver"
)

// minTickInterval keeps a zero autoplay delay from starving the renderer.
const minTickInterval = 10 * time.Millisecond

// TickMsg is sent when the next autoplay move is due.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after delay.
func tickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(max(delay, minTickInterval), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// aiResultMsg carries a finished search back to the update loop.
type aiResultMsg struct {
	analysis solver.Analysis
	gen      uint64
	spawn    bool
}
