package panel

import (
	"testing"
	"time"

	"focustraining/internal/core/clock"
	"focustraining/internal/core/model"
	"focustraining/internal/core/session"
	"focustraining/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietSession hides session events so rendering only happens on the test
// goroutine through Refresh and the control handlers.
type quietSession struct {
	*session.Session
}

func (quietSession) Subscribe(int) <-chan session.Event {
	return nil
}

func newTestPanel(t *testing.T) (*Window, *session.Session, *clock.Manual) {
	t.Helper()
	app := test.NewTempApp(t)
	manual := clock.NewManual()
	focus := session.New(model.DefaultSessionConfig(), session.WithClock(manual))
	t.Cleanup(focus.Close)
	panel := New(app, quietSession{focus})
	panel.engine = animation.New(animation.DefaultConfig(), func(animation.Frame) {})
	return panel, focus, manual
}

func TestInitialRender(t *testing.T) {
	panel, _, _ := newTestPanel(t)

	assert.Equal(t, "5:00", panel.timerLabel.Text)
	assert.Equal(t, fyne.TextStyle{Monospace: true}, panel.timerLabel.TextStyle)
	assert.Equal(t, "Score: 0", panel.scoreLabel.Text)
	assert.False(t, panel.upButton.Disabled())
	assert.False(t, panel.downButton.Disabled())
	assert.Equal(t, theme.MediaPlayIcon(), panel.toggleButton.Icon)
	assert.Equal(t, theme.VolumeUpIcon(), panel.muteButton.Icon)
	assert.False(t, panel.target.Active())
}

func TestDurationButtons(t *testing.T) {
	panel, _, _ := newTestPanel(t)

	test.Tap(panel.upButton)
	assert.Equal(t, "10:00", panel.timerLabel.Text)

	test.Tap(panel.downButton)
	test.Tap(panel.downButton)
	assert.Equal(t, "30:00", panel.timerLabel.Text)
}

func TestRunningDisablesDurationButtons(t *testing.T) {
	panel, focus, manual := newTestPanel(t)

	test.Tap(panel.toggleButton)
	assert.True(t, panel.upButton.Disabled())
	assert.True(t, panel.downButton.Disabled())
	assert.Equal(t, theme.MediaPauseIcon(), panel.toggleButton.Icon)
	assert.True(t, panel.target.Active())

	test.Tap(panel.upButton)
	assert.Equal(t, 0, focus.Snapshot().DurationIndex)

	manual.Advance(time.Second)
	panel.Refresh()
	assert.Equal(t, "4:59", panel.timerLabel.Text)

	test.Tap(panel.toggleButton)
	assert.False(t, panel.upButton.Disabled())
	assert.False(t, panel.target.Active())
}

func TestTapScoresWhileRunning(t *testing.T) {
	panel, _, _ := newTestPanel(t)

	test.Tap(panel.target)
	assert.Equal(t, "Score: 0", panel.scoreLabel.Text)
	assert.False(t, panel.target.Ripple().Visible)

	test.Tap(panel.toggleButton)
	test.Tap(panel.target)
	test.Tap(panel.target)
	test.Tap(panel.target)
	assert.Equal(t, "Score: 3", panel.scoreLabel.Text)
	assert.True(t, panel.target.Ripple().Visible)

	test.Tap(panel.toggleButton)
	test.Tap(panel.target)
	test.Tap(panel.target)
	assert.Equal(t, "Score: 3", panel.scoreLabel.Text)
}

func TestRippleClearsWithPulse(t *testing.T) {
	panel, _, manual := newTestPanel(t)
	test.Tap(panel.toggleButton)
	test.Tap(panel.target)
	require.True(t, panel.target.Ripple().Visible)

	manual.Advance(600 * time.Millisecond)
	panel.Refresh()

	assert.False(t, panel.target.Ripple().Visible)
}

func TestResetAndMuteButtons(t *testing.T) {
	panel, focus, manual := newTestPanel(t)
	test.Tap(panel.toggleButton)
	test.Tap(panel.target)
	manual.Advance(30 * time.Second)

	test.Tap(panel.muteButton)
	assert.Equal(t, theme.VolumeMuteIcon(), panel.muteButton.Icon)

	test.Tap(panel.resetButton)
	assert.Equal(t, "5:00", panel.timerLabel.Text)
	assert.Equal(t, "Score: 0", panel.scoreLabel.Text)
	assert.False(t, panel.target.Ripple().Visible)
	assert.True(t, focus.Snapshot().Muted)
}

func TestKeyboardShortcuts(t *testing.T) {
	panel, focus, _ := newTestPanel(t)
	press := func(name fyne.KeyName) {
		panel.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: name})
	}

	press(fyne.KeyUp)
	assert.Equal(t, 1, focus.Snapshot().DurationIndex)

	press(fyne.KeySpace)
	assert.True(t, focus.Snapshot().Running)

	press(fyne.KeyDown)
	assert.Equal(t, 1, focus.Snapshot().DurationIndex)

	press(fyne.KeyReturn)
	press(fyne.KeyEnter)
	assert.Equal(t, 2, focus.Snapshot().Score)

	press(fyne.KeyM)
	assert.True(t, focus.Snapshot().Muted)

	press(fyne.KeyR)
	snapshot := focus.Snapshot()
	assert.False(t, snapshot.Running)
	assert.Zero(t, snapshot.Score)
	assert.Equal(t, 600, snapshot.Remaining)
}
