// Package display presents the engine's framebuffer in a resizable desktop
// window and routes keyboard input into rate adjustments. It is a host
// around the rasterizer core; the core never imports it.
package display

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/sweepdial/sweepdial/internal/pace"
	"github.com/sweepdial/sweepdial/internal/raster"
	"github.com/sweepdial/sweepdial/internal/render"
)

// Window is the ebiten game driving one Engine. Update is the idle callback:
// it polls input, asks the scheduler whether a frame is due and renders at
// most one. Draw hands the last finished frame to the compositor.
type Window struct {
	eng   *render.Engine
	sched *pace.Scheduler

	// fps supplies the scheduler rate; adjust applies a discrete
	// increase/decrease from the keyboard.
	fps    func() int
	adjust func(up bool)

	img       *ebiten.Image
	rgba      []byte
	size      raster.Dimensions
	dirty     bool
	needFrame bool
}

// NewWindow configures the desktop window and returns the game. The caller
// must wire the returned Window as the engine's sink.
func NewWindow(title string, w, h int, eng *render.Engine, sched *pace.Scheduler, fps func() int, adjust func(up bool)) *Window {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return &Window{
		eng:       eng,
		sched:     sched,
		fps:       fps,
		adjust:    adjust,
		needFrame: true,
	}
}

// Run blocks until the window closes or an error escapes Update.
func (w *Window) Run() error {
	err := ebiten.RunGame(w)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

// Present implements render.Sink: the packed 0x00RRGGBB words become RGBA
// bytes for the next Draw. The buffer is copied out before Present returns.
func (w *Window) Present(buf []uint32, size raster.Dimensions) error {
	n := size.Width * size.Height * 4
	if len(w.rgba) != n {
		w.rgba = make([]byte, n)
	}
	for i, px := range buf {
		j := i * 4
		w.rgba[j+0] = raster.R(px)
		w.rgba[j+1] = raster.G(px)
		w.rgba[j+2] = raster.B(px)
		w.rgba[j+3] = 0xFF
	}
	w.size = size
	w.dirty = true
	return nil
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if w.adjust != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
			w.adjust(true)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
			w.adjust(false)
		}
	}

	now := time.Now()
	if w.sched.Tick(now, w.fps()) || w.needFrame {
		w.needFrame = false
		return w.eng.RenderOnce(now.Sub(w.eng.Start()).Seconds())
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.dirty && w.size.Width > 0 && w.size.Height > 0 {
		if w.img == nil || w.img.Bounds().Dx() != w.size.Width || w.img.Bounds().Dy() != w.size.Height {
			if w.img != nil {
				w.img.Deallocate()
			}
			w.img = ebiten.NewImage(w.size.Width, w.size.Height)
		}
		w.img.WritePixels(w.rgba)
		w.dirty = false
	}
	if w.img != nil {
		screen.DrawImage(w.img, nil)
	}
}

// Layout reports the drawable size 1:1 with the window's client area and
// resizes the engine's framebuffer when it changes.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < 1 {
		outsideWidth = 1
	}
	if outsideHeight < 1 {
		outsideHeight = 1
	}
	if w.eng.Resize(outsideWidth, outsideHeight) {
		w.needFrame = true
	}
	return outsideWidth, outsideHeight
}
