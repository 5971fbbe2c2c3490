// Package target implements the circular focus target tapped on a lapse.
package target

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

var (
	activeColor   = color.NRGBA{R: 253, G: 224, B: 71, A: 255}
	inactiveColor = color.NRGBA{R: 156, G: 163, B: 175, A: 255}
	rippleColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	defaultDiameter = float32(256)
	rippleStroke    = float32(4)
)

// Ripple describes the pulse ring drawn around the target.
type Ripple struct {
	Visible bool
	Scale   float32
	Alpha   uint8
}

// Target is a round tappable widget. It is yellow while the session runs
// and grey otherwise.
type Target struct {
	widget.BaseWidget

	OnTapped func()

	active bool
	ripple Ripple
}

// New creates a target that calls onTapped on every tap.
func New(onTapped func()) *Target {
	target := &Target{OnTapped: onTapped}
	target.ExtendBaseWidget(target)
	return target
}

// SetActive switches between the running and idle look.
func (target *Target) SetActive(active bool) {
	if target.active == active {
		return
	}
	target.active = active
	target.Refresh()
}

// Active reports whether the running look is shown.
func (target *Target) Active() bool {
	return target.active
}

// SetRipple updates the pulse ring.
func (target *Target) SetRipple(ripple Ripple) {
	target.ripple = ripple
	target.Refresh()
}

// Ripple returns the current pulse ring.
func (target *Target) Ripple() Ripple {
	return target.ripple
}

// Tapped forwards the tap. Whether it counts is decided by the session.
func (target *Target) Tapped(*fyne.PointEvent) {
	if target.OnTapped != nil {
		target.OnTapped()
	}
}

// CreateRenderer implements fyne.Widget.
func (target *Target) CreateRenderer() fyne.WidgetRenderer {
	disc := canvas.NewCircle(inactiveColor)
	ring := canvas.NewCircle(color.Transparent)
	ring.StrokeWidth = rippleStroke
	ring.Hide()

	renderer := &targetRenderer{
		target: target,
		disc:   disc,
		ring:   ring,
	}
	renderer.Refresh()
	return renderer
}

type targetRenderer struct {
	target *Target
	disc   *canvas.Circle
	ring   *canvas.Circle
	size   fyne.Size
}

func (renderer *targetRenderer) Layout(size fyne.Size) {
	renderer.size = size
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	center := fyne.NewPos(size.Width/2, size.Height/2)

	renderer.disc.Resize(fyne.NewSize(side, side))
	renderer.disc.Move(fyne.NewPos(center.X-side/2, center.Y-side/2))

	scale := renderer.target.ripple.Scale
	if scale <= 0 {
		scale = 1
	}
	ringSide := side * scale
	renderer.ring.Resize(fyne.NewSize(ringSide, ringSide))
	renderer.ring.Move(fyne.NewPos(center.X-ringSide/2, center.Y-ringSide/2))
}

func (renderer *targetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(defaultDiameter, defaultDiameter)
}

func (renderer *targetRenderer) Refresh() {
	if renderer.target.active {
		renderer.disc.FillColor = activeColor
	} else {
		renderer.disc.FillColor = inactiveColor
	}

	ripple := renderer.target.ripple
	if ripple.Visible {
		stroke := rippleColor
		stroke.A = ripple.Alpha
		renderer.ring.StrokeColor = stroke
		renderer.ring.Show()
	} else {
		renderer.ring.Hide()
	}

	renderer.Layout(renderer.size)
	canvas.Refresh(renderer.disc)
	canvas.Refresh(renderer.ring)
}

func (renderer *targetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{renderer.disc, renderer.ring}
}

func (renderer *targetRenderer) Destroy() {}
