package render

import (
	"errors"
	"math"
	"sync/atomic"
	"time"

	"github.com/sweepdial/sweepdial/internal/raster"
)

// Sink receives the finished frame for presentation. The buffer is only
// valid for the duration of the call and must not be retained.
type Sink interface {
	Present(buf []uint32, size raster.Dimensions) error
}

// Engine owns the packed-word framebuffer for the current surface size and
// renders the active variant into it, once per scheduler tick.
type Engine struct {
	size    raster.Dimensions
	buf     []uint32
	variant Variant
	u       *Uniforms
	sink    Sink

	t0 time.Time

	// last render duration in ms, as float64 bits. Health handlers read it
	// from their own goroutines while the render loop writes it.
	lastRenderMS atomic.Uint64
}

// NewEngine allocates the framebuffer and returns an Engine.
func NewEngine(size raster.Dimensions, v Variant, u *Uniforms, sink Sink) (*Engine, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, errors.New("render: invalid dimensions")
	}
	if v == nil {
		return nil, errors.New("render: no variant")
	}
	if u == nil {
		u = &Uniforms{}
	}
	return &Engine{
		size:    size,
		buf:     make([]uint32, size.Width*size.Height),
		variant: v,
		u:       u,
		sink:    sink,
		t0:      time.Now(),
	}, nil
}

// SetSink wires the presentation target. Hosts that need the engine during
// their own construction install themselves afterwards.
func (e *Engine) SetSink(s Sink) { e.sink = s }

func (e *Engine) Size() raster.Dimensions { return e.size }
func (e *Engine) Uniforms() *Uniforms     { return e.u }
func (e *Engine) Start() time.Time        { return e.t0 }

// Now returns seconds since engine start.
func (e *Engine) Now() float64 { return time.Since(e.t0).Seconds() }

// LastRenderMS reports how long the most recent frame took to render, in
// milliseconds. Safe to call from any goroutine.
func (e *Engine) LastRenderMS() float64 {
	return math.Float64frombits(e.lastRenderMS.Load())
}

// Resize reallocates the framebuffer for a new surface size. Only call
// between frames; reports whether the size actually changed.
func (e *Engine) Resize(w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if w == e.size.Width && h == e.size.Height {
		return false
	}
	e.size = raster.Dimensions{Width: w, Height: h}
	e.buf = make([]uint32, w*h)
	return true
}

// SetVariant switches the active variant by registry name.
func (e *Engine) SetVariant(name string, reg *Registry) error {
	if reg == nil {
		return errors.New("render: registry is nil")
	}
	v, ok := reg.Get(name)
	if !ok {
		return errors.New("render: variant not found: " + name)
	}
	e.variant = v
	return nil
}

// RenderOnce renders a single frame at absolute time t (seconds since
// start). If t < 0, it uses Engine.Now(). The canvas view over the
// framebuffer lives only for this call; the buffer then goes to the sink
// before RenderOnce returns.
func (e *Engine) RenderOnce(t float64) error {
	if t < 0 {
		t = e.Now()
	}
	started := time.Now()

	cv, err := raster.New(e.buf, e.size)
	if err != nil {
		return err
	}
	cv.Clear(e.u.Background)
	e.variant.Render(cv, t, e.u)

	e.lastRenderMS.Store(math.Float64bits(float64(time.Since(started).Microseconds()) / 1000.0))

	if e.sink != nil {
		return e.sink.Present(e.buf, e.size)
	}
	return nil
}
