// Package metro draws the metronome: a static triangle body and a pendulum
// arm swinging about its apex-down pivot at the configured BPM.
package metro

import (
	"math"

	"github.com/sweepdial/sweepdial/internal/raster"
	"github.com/sweepdial/sweepdial/internal/render"
)

const (
	// upAngle points the arm straight up at the swing midpoint.
	upAngle = -math.Pi / 2
	// swingAmplitude is the arm's maximum deflection either side of up.
	swingAmplitude = math.Pi / 5
)

type Variant struct{}

func New() *Variant { return &Variant{} }

func (v *Variant) Name() string { return "metronome" }

// Render draws the border frame, the inverted-V body outline, then the arm
// at its phase within the current beat. The arm angle follows
// up + amplitude*cos(pi*t/beat) with beat = 60/bpm, so one full left-right
// swing spans two beats.
func (v *Variant) Render(cv *raster.Canvas, t float64, u *render.Uniforms) {
	stroke := u.StrokeWidth(cv)
	padding := u.FramePadding(cv)

	cv.DrawFrame(padding, stroke, u.Accent)

	center := cv.Center()
	half := cv.MinDim() / 4

	pivot := raster.Point{X: center.X, Y: center.Y + half}
	apex := raster.Point{X: center.X, Y: center.Y - half}
	baseLeft := raster.Point{X: center.X - half, Y: pivot.Y}
	baseRight := raster.Point{X: center.X + half, Y: pivot.Y}

	cv.DrawLine(baseLeft, apex, stroke, u.Accent)
	cv.DrawLine(baseRight, apex, stroke, u.Accent)
	cv.DrawLine(baseLeft, baseRight, stroke, u.Accent)

	bpm := u.BPM
	if bpm <= 0 {
		bpm = 60
	}
	beat := 60.0 / bpm
	angle := upAngle + swingAmplitude*math.Cos(math.Pi*t/beat)

	length := float64(cv.MinDim())/2 - 2*float64(padding)
	if length < 0 {
		length = 0
	}

	tip := render.Polar(pivot, length, angle)
	cv.DrawLine(pivot, tip, stroke, u.Accent)
}
