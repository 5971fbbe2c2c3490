package panel

import (
	"context"
	"fmt"
	"image/color"

	"focustraining/internal/core/session"
	"focustraining/internal/ui/animation"
	"focustraining/internal/ui/target"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Session is the part of the focus session driven by the panel.
type Session interface {
	SelectDuration(direction session.Direction)
	Toggle()
	Reset()
	ToggleMute()
	RegisterTap()
	Snapshot() session.Snapshot
	Subscribe(buffer int) <-chan session.Event
}

const instructions = `### Instructions

1. Use the up/down arrows to select a time duration
2. Click the play button to start the timer
3. Focus on the circle and click it whenever you notice your mind wandering
4. Try to maintain focus for the entire session
5. Your score represents how many times you caught yourself losing focus
6. A melody will play when the session ends (unless muted)`

// Window is the Focus Training panel.
type Window struct {
	window  fyne.Window
	session Session
	engine  *animation.Engine

	timerLabel   *canvas.Text
	upButton     *widget.Button
	downButton   *widget.Button
	toggleButton *widget.Button
	resetButton  *widget.Button
	muteButton   *widget.Button
	scoreLabel   *widget.Label
	target       *target.Target

	cancelRipple context.CancelFunc
	rippling     bool
	lastScore    int
}

// New builds the panel window for session and starts following its events.
func New(app fyne.App, focus Session) *Window {
	window := app.NewWindow("Focus Training")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	panel := &Window{
		window:  window,
		session: focus,
	}

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: 128})

	title := canvas.NewText("Focus Training", color.White)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 32

	panel.timerLabel = canvas.NewText("0:00", color.White)
	panel.timerLabel.TextStyle = fyne.TextStyle{Monospace: true}
	panel.timerLabel.TextSize = 28

	panel.upButton = widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() {
		panel.selectDuration(session.DirectionUp)
	})
	panel.downButton = widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() {
		panel.selectDuration(session.DirectionDown)
	})
	panel.toggleButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), panel.toggle)
	panel.toggleButton.Importance = widget.SuccessImportance
	panel.resetButton = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), panel.reset)
	panel.resetButton.Importance = widget.DangerImportance
	panel.muteButton = widget.NewButtonWithIcon("", theme.VolumeUpIcon(), panel.toggleMute)
	panel.muteButton.Importance = widget.HighImportance

	panel.scoreLabel = widget.NewLabelWithStyle("Score: 0", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	panel.target = target.New(panel.tap)

	panel.engine = animation.New(animation.DefaultConfig(), func(frame animation.Frame) {
		fyne.Do(func() {
			if !panel.rippling {
				return
			}
			panel.target.SetRipple(target.Ripple{Visible: true, Scale: frame.Scale, Alpha: frame.Alpha})
		})
	})

	timeRow := container.NewHBox(
		layout.NewSpacer(),
		panel.upButton,
		widget.NewIcon(theme.HistoryIcon()),
		panel.timerLabel,
		panel.downButton,
		layout.NewSpacer(),
	)
	controls := container.NewHBox(
		layout.NewSpacer(),
		panel.toggleButton,
		panel.resetButton,
		panel.muteButton,
		layout.NewSpacer(),
	)
	content := container.NewVBox(
		title,
		timeRow,
		controls,
		panel.scoreLabel,
		container.NewCenter(panel.target),
		widget.NewRichTextFromMarkdown(instructions),
	)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Canvas().SetOnTypedKey(panel.handleKey)

	panel.Refresh()
	go panel.follow(focus.Subscribe(32))

	return panel
}

// Show displays the panel.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// Hide hides the panel without stopping the session.
func (panel *Window) Hide() {
	panel.window.Hide()
}

// SetCloseIntercept replaces the default close behaviour.
func (panel *Window) SetCloseIntercept(handler func()) {
	panel.window.SetCloseIntercept(handler)
}

// Refresh redraws every control from the current session state.
func (panel *Window) Refresh() {
	panel.render(panel.session.Snapshot())
}

func (panel *Window) follow(events <-chan session.Event) {
	for range events {
		fyne.Do(panel.Refresh)
	}
	fyne.Do(panel.stopRipple)
}

func (panel *Window) render(snapshot session.Snapshot) {
	panel.timerLabel.Text = session.FormatRemaining(snapshot.Remaining)
	panel.timerLabel.Refresh()

	if snapshot.Running {
		panel.upButton.Disable()
		panel.downButton.Disable()
		panel.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		panel.upButton.Enable()
		panel.downButton.Enable()
		panel.toggleButton.SetIcon(theme.MediaPlayIcon())
	}

	if snapshot.Muted {
		panel.muteButton.SetIcon(theme.VolumeMuteIcon())
	} else {
		panel.muteButton.SetIcon(theme.VolumeUpIcon())
	}

	panel.scoreLabel.SetText(fmt.Sprintf("Score: %d", snapshot.Score))
	panel.target.SetActive(snapshot.Running)

	switch {
	case snapshot.Pulse && (!panel.rippling || snapshot.Score != panel.lastScore):
		panel.startRipple()
	case !snapshot.Pulse && panel.rippling:
		panel.stopRipple()
	}
	panel.lastScore = snapshot.Score
}

func (panel *Window) startRipple() {
	panel.stopRipple()
	ctx, cancel := context.WithCancel(context.Background())
	panel.cancelRipple = cancel
	panel.rippling = true

	first := panel.engine.Config().Frame(0)
	panel.target.SetRipple(target.Ripple{Visible: true, Scale: first.Scale, Alpha: first.Alpha})
	panel.engine.StartRipple(ctx)
}

func (panel *Window) stopRipple() {
	if panel.cancelRipple != nil {
		panel.cancelRipple()
		panel.cancelRipple = nil
	}
	panel.engine.Stop()
	if panel.rippling {
		panel.rippling = false
		panel.target.SetRipple(target.Ripple{})
	}
}

func (panel *Window) selectDuration(direction session.Direction) {
	panel.session.SelectDuration(direction)
	panel.Refresh()
}

func (panel *Window) toggle() {
	panel.session.Toggle()
	panel.Refresh()
}

func (panel *Window) reset() {
	panel.session.Reset()
	panel.Refresh()
}

func (panel *Window) toggleMute() {
	panel.session.ToggleMute()
	panel.Refresh()
}

func (panel *Window) tap() {
	panel.session.RegisterTap()
	panel.Refresh()
}

func (panel *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace:
		panel.toggle()
	case fyne.KeyR:
		panel.reset()
	case fyne.KeyM:
		panel.toggleMute()
	case fyne.KeyUp:
		if !panel.upButton.Disabled() {
			panel.selectDuration(session.DirectionUp)
		}
	case fyne.KeyDown:
		if !panel.downButton.Disabled() {
			panel.selectDuration(session.DirectionDown)
		}
	case fyne.KeyReturn, fyne.KeyEnter:
		panel.tap()
	}
}
