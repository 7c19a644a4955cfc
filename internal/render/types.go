package render

import (
	"math"

	"github.com/sweepdial/sweepdial/internal/raster"
)

// Uniforms are the shared per-frame knobs every variant reads.
type Uniforms struct {
	Background uint32
	Accent     uint32

	// Stroke width and frame padding as fractions of the canvas MinDim,
	// floored at one pixel after rounding.
	StrokeRatio  float64
	PaddingRatio float64

	// Rate is the clock hand's tick frequency in ticks per second.
	Rate float64
	// BPM is the metronome's beat frequency.
	BPM float64
}

// StrokeWidth resolves the stroke ratio against a canvas.
func (u *Uniforms) StrokeWidth(cv *raster.Canvas) int {
	return atLeastOne(int(math.Round(u.StrokeRatio * float64(cv.MinDim()))))
}

// FramePadding resolves the padding ratio against a canvas.
func (u *Uniforms) FramePadding(cv *raster.Canvas) int {
	return atLeastOne(int(math.Round(u.PaddingRatio * float64(cv.MinDim()))))
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// Polar returns center displaced by length at angle (radians), rounding each
// axis half away from zero so negative offsets mirror positive ones.
func Polar(center raster.Point, length, angle float64) raster.Point {
	return raster.Point{
		X: center.X + int(math.Round(length*math.Cos(angle))),
		Y: center.Y + int(math.Round(length*math.Sin(angle))),
	}
}

// Variant is an animation strategy: it draws one frame of its indicator for
// elapsed time t (seconds) into the canvas. Variants are registered by name
// and selected at startup.
type Variant interface {
	Name() string
	Render(cv *raster.Canvas, t float64, u *Uniforms)
}

type Registry struct{ m map[string]Variant }

func NewRegistry() *Registry { return &Registry{m: map[string]Variant{}} }

func (r *Registry) Register(v Variant) {
	if v == nil {
		return
	}
	r.m[v.Name()] = v
}

func (r *Registry) Get(name string) (Variant, bool) { v, ok := r.m[name]; return v, ok }

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	return out
}
