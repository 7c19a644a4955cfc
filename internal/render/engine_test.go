package render

import (
	"sync"
	"testing"

	"github.com/sweepdial/sweepdial/internal/raster"
)

// fakeVariant records render calls and paints one accent pixel.
type fakeVariant struct {
	name  string
	calls int
	lastT float64
}

func (f *fakeVariant) Name() string { return f.name }
func (f *fakeVariant) Render(cv *raster.Canvas, t float64, u *Uniforms) {
	f.calls++
	f.lastT = t
	cv.PutPixel(0, 0, u.Accent)
}

// fakeSink captures the last frame presented.
type fakeSink struct {
	last []uint32
	size raster.Dimensions
}

func (s *fakeSink) Present(buf []uint32, size raster.Dimensions) error {
	s.last = make([]uint32, len(buf))
	copy(s.last, buf)
	s.size = size
	return nil
}

func TestNewEngineRejectsBadInput(t *testing.T) {
	u := &Uniforms{}
	if _, err := NewEngine(raster.Dimensions{Width: 0, Height: 10}, &fakeVariant{name: "x"}, u, nil); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := NewEngine(raster.Dimensions{Width: 10, Height: 10}, nil, u, nil); err == nil {
		t.Fatal("expected error for nil variant")
	}
}

func TestRenderOnceClearsAndPresents(t *testing.T) {
	u := &Uniforms{Background: 0x00101418, Accent: 0x004B5F64}
	v := &fakeVariant{name: "fake"}
	sink := &fakeSink{}
	e, err := NewEngine(raster.Dimensions{Width: 4, Height: 3}, v, u, sink)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	if err := e.RenderOnce(1.5); err != nil {
		t.Fatalf("render: %v", err)
	}
	if v.calls != 1 || v.lastT != 1.5 {
		t.Fatalf("variant saw calls=%d t=%v", v.calls, v.lastT)
	}
	if len(sink.last) != 12 || sink.size != (raster.Dimensions{Width: 4, Height: 3}) {
		t.Fatalf("sink got %d words for %v", len(sink.last), sink.size)
	}
	if sink.last[0] != u.Accent {
		t.Fatalf("variant pixel lost: %08x", sink.last[0])
	}
	for i := 1; i < len(sink.last); i++ {
		if sink.last[i] != u.Background {
			t.Fatalf("pixel %d not cleared to background: %08x", i, sink.last[i])
		}
	}
}

func TestResizeReallocatesBetweenFrames(t *testing.T) {
	u := &Uniforms{}
	sink := &fakeSink{}
	e, err := NewEngine(raster.Dimensions{Width: 2, Height: 2}, &fakeVariant{name: "fake"}, u, sink)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	if e.Resize(2, 2) {
		t.Fatal("same size reported as a change")
	}
	if e.Resize(0, 5) {
		t.Fatal("invalid size reported as a change")
	}
	if !e.Resize(5, 4) {
		t.Fatal("resize not applied")
	}
	if err := e.RenderOnce(0); err != nil {
		t.Fatalf("render after resize: %v", err)
	}
	if len(sink.last) != 20 {
		t.Fatalf("expected 20 words after resize, got %d", len(sink.last))
	}
}

// Mirrors the headless wiring: the render loop writes the metric while a
// health handler polls it from another goroutine. Run under -race.
func TestLastRenderMSConcurrentAccess(t *testing.T) {
	e, err := NewEngine(raster.Dimensions{Width: 8, Height: 8}, &fakeVariant{name: "fake"}, &Uniforms{}, nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				if ms := e.LastRenderMS(); ms < 0 {
					t.Errorf("negative render duration %v", ms)
					return
				}
			}
		}
	}()

	for i := 0; i < 200; i++ {
		if err := e.RenderOnce(float64(i)); err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
	}
	close(done)
	wg.Wait()
}

func TestSetVariantByName(t *testing.T) {
	reg := NewRegistry()
	a := &fakeVariant{name: "a"}
	b := &fakeVariant{name: "b"}
	reg.Register(a)
	reg.Register(b)

	e, err := NewEngine(raster.Dimensions{Width: 2, Height: 2}, a, &Uniforms{}, nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if err := e.SetVariant("b", reg); err != nil {
		t.Fatalf("set variant: %v", err)
	}
	if err := e.RenderOnce(0); err != nil {
		t.Fatalf("render: %v", err)
	}
	if b.calls != 1 || a.calls != 0 {
		t.Fatalf("expected b active, got a=%d b=%d", a.calls, b.calls)
	}
	if err := e.SetVariant("missing", reg); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}
