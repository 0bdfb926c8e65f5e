// Package tui runs the climb in a terminal: the Bubble Tea loop, key mapping,
// menus, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// TickMsg asks the model to advance the climb by one frame.
type TickMsg time.Time

// frameInterval is the real time between ticks. It matches the dt the game
// simulates per Step, so a climb runs at wall-clock speed.
func frameInterval(cfg core.RuntimeConfig) time.Duration {
	return time.Duration(cfg.FrameDelta() * float64(time.Millisecond))
}

// tickCmd schedules the next frame.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(frameInterval(cfg), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
