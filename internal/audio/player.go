package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/sirupsen/logrus"
)

// ErrOutputUnavailable reports that no audio device could be opened.
var ErrOutputUnavailable = errors.New("audio output unavailable")

// DefaultFormat is the PCM format used for synthesis and playback.
var DefaultFormat = beep.Format{
	SampleRate:  44100,
	NumChannels: 2,
	Precision:   2,
}

// Output is an audio sink.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(streamers ...beep.Streamer)
}

// SpeakerOutput plays through the default device via beep/speaker.
type SpeakerOutput struct{}

// Init opens the default audio device.
func (SpeakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

// Play queues streamers on the device mixer.
func (SpeakerOutput) Play(streamers ...beep.Streamer) {
	speaker.Play(streamers...)
}

// PlayerOption customises a Player.
type PlayerOption func(*Player)

// WithOutput replaces the audio sink.
func WithOutput(output Output) PlayerOption {
	return func(player *Player) {
		if output != nil {
			player.output = output
		}
	}
}

// WithLogger sets the logger used for playback diagnostics.
func WithLogger(logger *logrus.Entry) PlayerOption {
	return func(player *Player) {
		if logger != nil {
			player.logger = logger
		}
	}
}

// Player plays a melody on demand. Playback is best effort: when the output
// cannot be opened every call becomes a no-op.
type Player struct {
	melody Melody
	format beep.Format
	output Output
	logger *logrus.Entry

	initOnce sync.Once
	initErr  error
}

// NewPlayer creates a player for melody. The output is opened on first use.
func NewPlayer(melody Melody, options ...PlayerOption) *Player {
	player := &Player{
		melody: melody,
		format: DefaultFormat,
		output: SpeakerOutput{},
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, option := range options {
		option(player)
	}
	return player
}

// PlayEndMelody queues the melody and returns immediately.
func (player *Player) PlayEndMelody() {
	if err := player.Play(); err != nil {
		player.logger.WithError(err).Debug("melody skipped")
	}
}

// Play queues the melody, reporting why playback was skipped if it was.
func (player *Player) Play() (err error) {
	player.initOnce.Do(player.init)
	if player.initErr != nil {
		return player.initErr
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("play melody: %v", recovered)
		}
	}()

	started := time.Now()
	player.output.Play(beep.Seq(
		player.melody.Streamer(player.format.SampleRate),
		beep.Callback(func() {
			player.logger.WithField("elapsed", time.Since(started)).Debug("melody finished")
		}),
	))
	return nil
}

func (player *Player) init() {
	defer func() {
		if recovered := recover(); recovered != nil {
			player.initErr = fmt.Errorf("%w: %v", ErrOutputUnavailable, recovered)
		}
	}()

	bufferSize := player.format.SampleRate.N(time.Second / 10)
	if err := player.output.Init(player.format.SampleRate, bufferSize); err != nil {
		player.initErr = fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
		return
	}
	player.logger.WithField("sample_rate", int(player.format.SampleRate)).Debug("audio output ready")
}
