package model

import "time"

// DurationCatalog lists the selectable session lengths in minutes.
type DurationCatalog []int

// DefaultCatalog returns the fixed catalog offered by the widget.
func DefaultCatalog() DurationCatalog {
	return DurationCatalog{5, 10, 15, 30}
}

// Len returns the number of entries.
func (catalog DurationCatalog) Len() int {
	return len(catalog)
}

// Seconds returns the length of the entry at index in seconds.
func (catalog DurationCatalog) Seconds(index int) int {
	return catalog[index] * 60
}

// Duration returns the length of the entry at index.
func (catalog DurationCatalog) Duration(index int) time.Duration {
	return time.Duration(catalog[index]) * time.Minute
}

// SessionConfig contains runtime settings for a focus session.
type SessionConfig struct {
	Catalog       DurationCatalog
	DefaultIndex  int
	TickInterval  time.Duration
	PulseDuration time.Duration
}

// DefaultSessionConfig returns the stock session settings.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Catalog:       DefaultCatalog(),
		DefaultIndex:  0,
		TickInterval:  time.Second,
		PulseDuration: 600 * time.Millisecond,
	}
}
