package cycle

import "time"

// Phase is one of the two intervals of a cycle.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Title returns the notification title announcing the phase.
func (phase Phase) Title() string {
	switch phase {
	case PhaseWork:
		return "Focus Time"
	case PhaseBreak:
		return "Break Time"
	default:
		return string(phase)
	}
}

// EventType defines the type of Timer event.
type EventType string

const (
	EventPhaseStart EventType = "phase_start"
	EventProgress   EventType = "progress"
	EventPaused     EventType = "paused"
	EventResumed    EventType = "resumed"
	EventFallback   EventType = "fallback"
	EventStopped    EventType = "stopped"
)

// Event represents a Timer update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	Cycle     int
	Remaining time.Duration
	Progress  float64
	Idea      string
	Message   string
	At        time.Time
}
