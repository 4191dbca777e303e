// Package tui runs games in a terminal through Bubble Tea: the fixed-tick
// loop, key bindings, the results board and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Tick rates outside this range are clamped.
const (
	minTickRate = 1
	maxTickRate = 240
)

// TickMsg advances the simulation by one step.
type TickMsg time.Time

// tickInterval is the wall time between two ticks at the given rate.
func tickInterval(rate int) time.Duration {
	return time.Second / time.Duration(min(max(rate, minTickRate), maxTickRate))
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}
