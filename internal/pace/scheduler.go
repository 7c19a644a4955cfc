// Package pace decides when frames are due. The Scheduler emits at most one
// redraw per tick and re-synchronizes after stalls by jumping whole frame
// intervals forward, never by replaying missed frames.
package pace

import "time"

// Scheduler tracks the next wake deadline for one animation.
type Scheduler struct {
	start time.Time
	next  time.Time
}

// NewScheduler arms the first wake at the animation's start instant.
func NewScheduler(start time.Time) *Scheduler {
	return &Scheduler{start: start, next: start}
}

// Start returns the animation's reference instant.
func (s *Scheduler) Start() time.Time { return s.start }

// NextWake is the deadline the host should arm its wait for. It only moves
// forward.
func (s *Scheduler) NextWake() time.Time { return s.next }

// Tick reports whether a frame is due at now for the given rate (ticks per
// second). When it fires, the wake deadline advances past now in one step;
// a backlog of missed intervals collapses into this single redraw. A clock
// reading before the deadline, including one that stepped backward, simply
// does not fire.
func (s *Scheduler) Tick(now time.Time, rate int) bool {
	if now.Before(s.next) {
		return false
	}
	s.advance(now, rate)
	return true
}

// MaxRate caps the tick rate so time.Second/rate stays a positive interval
// and the deadline always lands strictly after now.
const MaxRate = 1000

func (s *Scheduler) advance(now time.Time, rate int) {
	if rate < 1 {
		rate = 1
	}
	if rate > MaxRate {
		rate = MaxRate
	}
	if rate == 1 {
		// Align to whole seconds from the start instant, not from the last
		// wake, so a one-tick-per-second hand never drifts off the second
		// boundary.
		elapsed := now.Sub(s.start)
		s.next = s.start.Add(elapsed.Truncate(time.Second) + time.Second)
		return
	}
	interval := time.Second / time.Duration(rate)
	behind := now.Sub(s.next)
	// Whole missed intervals in one jump, plus one so the deadline lands
	// strictly after now.
	s.next = s.next.Add(behind.Truncate(interval) + interval)
}
