package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// Streamer renders the melody as stereo PCM at the given sample rate.
// Notes are laid out on the timeline by their start offsets; gaps are silent.
func (melody Melody) Streamer(sampleRate beep.SampleRate) beep.Streamer {
	var streamers []beep.Streamer
	var cursor time.Duration
	for _, note := range melody.Notes {
		if gap := note.Start - cursor; gap > 0 {
			streamers = append(streamers, beep.Silence(sampleRate.N(gap)))
		}
		streamers = append(streamers, newTone(melody, note, sampleRate))
		cursor = note.Start + note.Duration
	}
	return beep.Seq(streamers...)
}

// tone streams one enveloped sine note and then drains.
type tone struct {
	melody     Melody
	note       Note
	sampleRate beep.SampleRate
	total      int
	position   int
}

func newTone(melody Melody, note Note, sampleRate beep.SampleRate) *tone {
	return &tone{
		melody:     melody,
		note:       note,
		sampleRate: sampleRate,
		total:      sampleRate.N(note.Duration),
	}
}

func (tone *tone) Stream(samples [][2]float64) (int, bool) {
	if tone.position >= tone.total {
		return 0, false
	}
	count := 0
	for index := range samples {
		if tone.position >= tone.total {
			break
		}
		offset := tone.sampleRate.D(tone.position)
		seconds := float64(tone.position) / float64(tone.sampleRate)
		phase := 2 * math.Pi * tone.note.Frequency * seconds
		value := tone.melody.Gain(tone.note, offset) * math.Sin(phase)
		samples[index][0] = value
		samples[index][1] = value
		tone.position++
		count++
	}
	return count, true
}

func (tone *tone) Err() error {
	return nil
}
