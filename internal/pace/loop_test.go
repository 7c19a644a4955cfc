package pace

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopDeliversFramesUntilError(t *testing.T) {
	errStop := errors.New("stop")
	s := NewScheduler(time.Now())

	frames := 0
	err := Loop(context.Background(), s, func() int { return 100 }, func(now time.Time) error {
		frames++
		if frames == 3 {
			return errStop
		}
		return nil
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("err = %v, want stop sentinel", err)
	}
	if frames != 3 {
		t.Fatalf("frames = %d, want 3", frames)
	}
}

func TestLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := NewScheduler(time.Now())
	err := Loop(ctx, s, func() int { return 1000 }, func(now time.Time) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}
