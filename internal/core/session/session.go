package session

import (
	"sync"
	"time"

	"focustraining/internal/core/clock"
	"focustraining/internal/core/model"

	"github.com/sirupsen/logrus"
)

// MelodyPlayer plays the end-of-session melody.
type MelodyPlayer interface {
	PlayEndMelody()
}

// Option customises a Session.
type Option func(*Session)

// WithClock replaces the clock used for ticks and pulse clears.
func WithClock(c clock.Clock) Option {
	return func(session *Session) {
		if c != nil {
			session.clock = c
		}
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *logrus.Entry) Option {
	return func(session *Session) {
		if logger != nil {
			session.logger = logger
		}
	}
}

// WithMelody sets the player invoked on expiry.
func WithMelody(player MelodyPlayer) Option {
	return func(session *Session) {
		session.melody = player
	}
}

// Session owns the state of one focus widget: duration selection, the
// countdown, the score, the pulse indicator and the mute flag.
type Session struct {
	mu     sync.Mutex
	config model.SessionConfig
	clock  clock.Clock
	logger *logrus.Entry
	melody MelodyPlayer

	index     int
	remaining int
	running   bool
	score     int
	muted     bool
	pulse     bool

	ticker     clock.Timer
	tickGen    uint64
	pulseTimer clock.Timer
	pulseGen   uint64

	events []chan Event
	closed bool
}

// New creates an idle session at the configured default duration.
func New(config model.SessionConfig, options ...Option) *Session {
	if config.Catalog.Len() == 0 {
		config.Catalog = model.DefaultCatalog()
	}
	config.Catalog = append(model.DurationCatalog(nil), config.Catalog...)
	if config.DefaultIndex < 0 || config.DefaultIndex >= config.Catalog.Len() {
		config.DefaultIndex = 0
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.PulseDuration <= 0 {
		config.PulseDuration = 600 * time.Millisecond
	}

	session := &Session{
		config: config,
		clock:  clock.System,
		logger: logrus.NewEntry(logrus.StandardLogger()),
		index:  config.DefaultIndex,
	}
	for _, option := range options {
		option(session)
	}
	session.remaining = config.Catalog.Seconds(session.index)
	return session
}

// SelectedDuration returns the length of the selected catalog entry.
func (session *Session) SelectedDuration() time.Duration {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.config.Catalog.Duration(session.index)
}

// Muted reports the mute flag.
func (session *Session) Muted() bool {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.muted
}

// Catalog returns the selectable durations.
func (session *Session) Catalog() model.DurationCatalog {
	return append(model.DurationCatalog(nil), session.config.Catalog...)
}

// Subscribe registers a new observer channel. Events are dropped when the
// channel is full.
func (session *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		close(ch)
		return ch
	}
	session.events = append(session.events, ch)
	return ch
}

// Snapshot returns the current session fields.
func (session *Session) Snapshot() Snapshot {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked()
}

// SelectDuration moves the selection one step through the catalog, wrapping
// at both ends. Ignored while the countdown runs.
func (session *Session) SelectDuration(direction Direction) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed || session.running {
		return
	}

	count := session.config.Catalog.Len()
	if direction == DirectionUp {
		session.index = (session.index + 1) % count
	} else {
		session.index = (session.index - 1 + count) % count
	}
	session.remaining = session.config.Catalog.Seconds(session.index)

	session.logger.WithField("minutes", session.config.Catalog[session.index]).Debug("duration selected")
	session.emitLocked(EventDurationChange)
}

// Start begins the countdown. Ignored when running or when no time remains.
func (session *Session) Start() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.startLocked()
}

// Pause stops the countdown, keeping the remaining time.
func (session *Session) Pause() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.pauseLocked()
}

// Toggle starts an idle countdown or pauses a running one.
func (session *Session) Toggle() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.running {
		session.pauseLocked()
		return
	}
	session.startLocked()
}

// Reset restores the selected duration, stops the countdown and zeroes the score.
func (session *Session) Reset() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		return
	}

	session.stopTickLocked()
	session.stopPulseLocked()
	session.running = false
	session.remaining = session.config.Catalog.Seconds(session.index)
	session.score = 0
	session.pulse = false

	session.logger.Debug("session reset")
	session.emitLocked(EventStateChange)
}

// RegisterTap counts a lapse of attention. Only taps made while the
// countdown runs are counted; each one restarts the pulse window.
func (session *Session) RegisterTap() {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed || !session.running {
		return
	}

	session.score++
	session.pulse = true
	session.stopPulseLocked()
	session.pulseGen++
	generation := session.pulseGen
	session.pulseTimer = session.clock.AfterFunc(session.config.PulseDuration, func() {
		session.clearPulse(generation)
	})

	session.emitLocked(EventScore)
	session.emitLocked(EventPulse)
}

// ToggleMute flips the mute flag.
func (session *Session) ToggleMute() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.setMutedLocked(!session.muted)
}

// SetMuted sets the mute flag.
func (session *Session) SetMuted(muted bool) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.setMutedLocked(muted)
}

// Close cancels pending timers and closes observers. The session ignores
// every later call.
func (session *Session) Close() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	session.stopTickLocked()
	session.stopPulseLocked()
	session.running = false
	events := session.events
	session.events = nil
	session.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (session *Session) startLocked() {
	if session.closed || session.running || session.remaining <= 0 {
		return
	}
	session.running = true
	session.tickGen++
	generation := session.tickGen
	session.ticker = session.clock.Every(session.config.TickInterval, func() {
		session.tick(generation)
	})

	session.logger.WithField("remaining", session.remaining).Debug("countdown started")
	session.emitLocked(EventStateChange)
}

func (session *Session) pauseLocked() {
	if session.closed || !session.running {
		return
	}
	session.running = false
	session.stopTickLocked()

	session.logger.WithField("remaining", session.remaining).Debug("countdown paused")
	session.emitLocked(EventStateChange)
}

func (session *Session) tick(generation uint64) {
	session.mu.Lock()
	if session.closed || !session.running || generation != session.tickGen {
		session.mu.Unlock()
		return
	}

	session.remaining--
	if session.remaining > 0 {
		session.emitLocked(EventTick)
		session.mu.Unlock()
		return
	}

	session.remaining = 0
	session.running = false
	session.stopTickLocked()
	session.emitLocked(EventTick)
	session.emitLocked(EventExpired)

	player := session.melody
	muted := session.muted
	session.logger.WithFields(logrus.Fields{
		"score": session.score,
		"muted": muted,
	}).Info("session expired")
	session.mu.Unlock()

	if !muted && player != nil {
		player.PlayEndMelody()
	}
}

func (session *Session) clearPulse(generation uint64) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed || generation != session.pulseGen || !session.pulse {
		return
	}
	session.pulse = false
	session.pulseTimer = nil
	session.emitLocked(EventPulse)
}

func (session *Session) setMutedLocked(muted bool) {
	if session.closed || session.muted == muted {
		return
	}
	session.muted = muted
	session.logger.WithField("muted", muted).Debug("mute changed")
	session.emitLocked(EventMute)
}

func (session *Session) stopTickLocked() {
	session.tickGen++
	if session.ticker != nil {
		session.ticker.Stop()
		session.ticker = nil
	}
}

func (session *Session) stopPulseLocked() {
	session.pulseGen++
	if session.pulseTimer != nil {
		session.pulseTimer.Stop()
		session.pulseTimer = nil
	}
}

func (session *Session) snapshotLocked() Snapshot {
	state := StateIdle
	switch {
	case session.running:
		state = StateRunning
	case session.remaining == 0:
		state = StateExpired
	}
	return Snapshot{
		State:           state,
		DurationIndex:   session.index,
		DurationMinutes: session.config.Catalog[session.index],
		Remaining:       session.remaining,
		Running:         session.running,
		Score:           session.score,
		Muted:           session.muted,
		Pulse:           session.pulse,
	}
}

func (session *Session) emitLocked(eventType EventType) {
	event := Event{
		Type:     eventType,
		Snapshot: session.snapshotLocked(),
		At:       time.Now(),
	}
	for _, ch := range session.events {
		select {
		case ch <- event:
		default:
		}
	}
}
