package stream

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/sweepdial/sweepdial/internal/raster"
)

func TestPresentWithoutClients(t *testing.T) {
	s := NewServer(func() int { return 5 }, func() float64 { return 0.2 }, Controls{})

	buf := []uint32{raster.Pack(1, 2, 3), raster.Pack(4, 5, 6)}
	if err := s.Present(buf, raster.Dimensions{Width: 2, Height: 1}); err != nil {
		t.Fatalf("present: %v", err)
	}
	if s.frameID != 1 {
		t.Fatalf("frame id = %d", s.frameID)
	}
	want := []byte{1, 2, 3, 4, 5, 6}
	for i, b := range want {
		if s.rgb[i] != b {
			t.Fatalf("rgb[%d] = %d, want %d", i, s.rgb[i], b)
		}
	}
}

func TestHealthReportsState(t *testing.T) {
	s := NewServer(func() int { return 7 }, func() float64 { return 1.25 }, Controls{
		Name:  "bpm",
		Value: func() int { return 96 },
	})
	_ = s.Present(make([]uint32, 6), raster.Dimensions{Width: 3, Height: 2})

	rec := httptest.NewRecorder()
	s.HandleHealth(rec, httptest.NewRequest("GET", "/health", nil))

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if resp["frame_id"].(float64) != 1 {
		t.Fatalf("frame_id = %v", resp["frame_id"])
	}
	if resp["width"].(float64) != 3 || resp["height"].(float64) != 2 {
		t.Fatalf("size = %vx%v", resp["width"], resp["height"])
	}
	if resp["fps"].(float64) != 7 {
		t.Fatalf("fps = %v", resp["fps"])
	}
	if resp["bpm"].(float64) != 96 {
		t.Fatalf("bpm = %v", resp["bpm"])
	}
	if resp["render_ms"].(float64) != 1.25 {
		t.Fatalf("render_ms = %v", resp["render_ms"])
	}
}

// The frame rate and the adjustable value are distinct for the metronome:
// health and control replies both address the value by the control's name.
func TestControlUsesVariantName(t *testing.T) {
	bpm := 96
	s := NewServer(func() int { return 60 }, nil, Controls{
		Name:  "bpm",
		Value: func() int { return bpm },
		Adjust: func(up bool) int {
			if up {
				bpm += 4
			} else {
				bpm -= 4
			}
			return bpm
		},
		Set: func(v int) int {
			bpm = v
			return bpm
		},
	})

	key, got, ok := s.applyControl(map[string]any{"bpm": float64(120)})
	if !ok || key != "bpm" || got != 120 {
		t.Fatalf("set: key=%q got=%d ok=%v", key, got, ok)
	}
	if _, got, ok := s.applyControl(map[string]any{"adjust": float64(1)}); !ok || got != 124 {
		t.Fatalf("adjust: got=%d ok=%v", got, ok)
	}
	// the clock's key does not address a metronome
	if _, _, ok := s.applyControl(map[string]any{"rate": float64(10)}); ok {
		t.Fatal("rate message applied to a bpm control")
	}

	rec := httptest.NewRecorder()
	s.HandleHealth(rec, httptest.NewRequest("GET", "/health", nil))
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if resp["fps"].(float64) != 60 || resp["bpm"].(float64) != 124 {
		t.Fatalf("health fps=%v bpm=%v", resp["fps"], resp["bpm"])
	}
}
