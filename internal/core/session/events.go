package session

import "time"

// State represents the countdown mode derived from the session fields.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateExpired State = "expired"
)

// Direction selects the neighbouring catalog entry.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

// EventType defines the type of session event.
type EventType string

const (
	EventStateChange    EventType = "state_change"
	EventTick           EventType = "tick"
	EventDurationChange EventType = "duration_change"
	EventScore          EventType = "score"
	EventPulse          EventType = "pulse"
	EventMute           EventType = "mute"
	EventExpired        EventType = "expired"
)

// Snapshot is a copy of the session fields at one point in time.
type Snapshot struct {
	State           State
	DurationIndex   int
	DurationMinutes int
	Remaining       int
	Running         bool
	Score           int
	Muted           bool
	Pulse           bool
}

// Event represents a session update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}
