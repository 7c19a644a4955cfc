package pace

import (
	"context"
	"time"
)

// Loop drives fn from a timer re-armed at the scheduler's exact wake
// deadline rather than a fixed polling interval, so nothing wakes between
// frames. rate is sampled on every pass; adjustments take effect on the
// next scheduling decision. Loop returns the context's error on
// cancellation or fn's error if a frame fails.
func Loop(ctx context.Context, s *Scheduler, rate func() int, fn func(now time.Time) error) error {
	timer := time.NewTimer(time.Until(s.NextWake()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			now := time.Now()
			if s.Tick(now, rate()) {
				if err := fn(now); err != nil {
					return err
				}
			}
			timer.Reset(time.Until(s.NextWake()))
		}
	}
}
