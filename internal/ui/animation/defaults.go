package animation

import "time"

// DefaultConfig returns the ripple used for the tap target pulse.
func DefaultConfig() Config {
	return Config{
		Duration:   600 * time.Millisecond,
		Frames:     15,
		StartScale: 1.0,
		EndScale:   1.18,
		StartAlpha: 220,
	}
}
