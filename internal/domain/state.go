package domain

import (
	"fmt"
	"time"
)

// StateSource names the host surface that committed a state change.
type StateSource string

const (
	StateSourceGUI      StateSource = "gui"
	StateSourceTerminal StateSource = "terminal"
	StateSourceRestore  StateSource = "restore"
)

// IndicatorState is a snapshot of the user-visible indicator state.
type IndicatorState struct {
	Level      int
	BarCount   int
	Connected  bool
	Source     StateSource
	RecordedAt time.Time
}

func (s IndicatorState) Quality() SignalQuality {
	return DetermineSignalQuality(s.Level, s.BarCount, s.Connected)
}

// Summary renders a short human readable status, e.g. "Signal 3/5 (fair), connected".
func (s IndicatorState) Summary() string {
	link := "connected"
	if !s.Connected {
		link = "disconnected"
	}

	return fmt.Sprintf("Signal %d/%d (%s), %s", s.Level, s.BarCount, s.Quality(), link)
}

// InvalidLevelEvent reports a rejected level change.
type InvalidLevelEvent struct {
	Requested int
	BarCount  int
	Err       string
	Source    StateSource
	At        time.Time
}
