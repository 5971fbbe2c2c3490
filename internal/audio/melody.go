// Package audio synthesizes and plays the end-of-session melody.
package audio

import "time"

// Note is a single sine tone placed on the melody timeline.
type Note struct {
	Frequency float64
	Start     time.Duration
	Duration  time.Duration
}

// Melody is a sequence of enveloped sine tones.
type Melody struct {
	Notes  []Note
	Attack time.Duration
	Peak   float64
}

// EndMelodyFrequencies are the A4 to A5 major-scale degrees played on expiry.
var EndMelodyFrequencies = []float64{440, 494, 523, 587, 659, 698, 784, 880}

const (
	noteDuration = 200 * time.Millisecond
	noteAttack   = 10 * time.Millisecond
	notePeak     = 0.5
)

// EndMelody returns the eight back-to-back notes played when a session ends.
func EndMelody() Melody {
	notes := make([]Note, len(EndMelodyFrequencies))
	for index, frequency := range EndMelodyFrequencies {
		notes[index] = Note{
			Frequency: frequency,
			Start:     time.Duration(index) * noteDuration,
			Duration:  noteDuration,
		}
	}
	return Melody{
		Notes:  notes,
		Attack: noteAttack,
		Peak:   notePeak,
	}
}

// Length returns the time from the start of the first note to the end of the last.
func (melody Melody) Length() time.Duration {
	var end time.Duration
	for _, note := range melody.Notes {
		if noteEnd := note.Start + note.Duration; noteEnd > end {
			end = noteEnd
		}
	}
	return end
}

// Gain returns the envelope amplitude at offset into a note: a linear rise
// to Peak over Attack, then a linear fall to zero at the end of the note.
func (melody Melody) Gain(note Note, offset time.Duration) float64 {
	if offset <= 0 || offset >= note.Duration {
		return 0
	}
	attack := melody.Attack
	if attack > note.Duration {
		attack = note.Duration
	}
	if offset < attack {
		return melody.Peak * float64(offset) / float64(attack)
	}
	release := note.Duration - attack
	if release <= 0 {
		return melody.Peak
	}
	return melody.Peak * float64(note.Duration-offset) / float64(release)
}
