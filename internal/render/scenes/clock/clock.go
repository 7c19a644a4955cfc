// Package clock draws the sweep-hand dial: a stroked frame and one thick
// hand rotating from twelve o'clock, quantized to the current tick rate.
package clock

import (
	"math"

	"github.com/sweepdial/sweepdial/internal/raster"
	"github.com/sweepdial/sweepdial/internal/render"
)

// PeriodSeconds is one full revolution of the hand.
const PeriodSeconds = 60.0

type Variant struct{}

func New() *Variant { return &Variant{} }

func (v *Variant) Name() string { return "clock" }

// Render draws the border frame, then the hand for elapsed time t. At low
// rates the hand visibly steps from tick to tick; as the rate rises it
// approaches a continuous sweep. The same (t, rate) pair always produces
// the same pixels.
func (v *Variant) Render(cv *raster.Canvas, t float64, u *render.Uniforms) {
	stroke := u.StrokeWidth(cv)
	padding := u.FramePadding(cv)

	cv.DrawFrame(padding, stroke, u.Accent)

	phase := math.Mod(t, PeriodSeconds)
	ticks := phase
	if u.Rate > 0 {
		ticks = math.Round(phase*u.Rate) / u.Rate
		// Rounding just below the wrap boundary can land exactly on the
		// period; fold it back so the hand never overshoots twelve.
		ticks = math.Mod(ticks, PeriodSeconds)
	}
	angle := -math.Pi/2 + ticks*(2*math.Pi/PeriodSeconds)

	length := float64(cv.MinDim())/2 - 2*float64(padding)
	if length < 0 {
		length = 0
	}

	center := cv.Center()
	tip := render.Polar(center, length, angle)
	cv.DrawLine(center, tip, stroke, u.Accent)
}
