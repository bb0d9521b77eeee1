package engine

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultMaxFrameDelta caps a single frame's delta so a stalled terminal
// does not fling bodies across their orbits on the next frame
const DefaultMaxFrameDelta = 100 * time.Millisecond

// FrameTimer measures real time between frames on a clockwork.Clock
// Tests drive it with clockwork.NewFakeClock
type FrameTimer struct {
	clock    clockwork.Clock
	last     time.Time
	maxDelta time.Duration
}

// NewFrameTimer creates a timer starting now; maxDelta <= 0 disables the cap
func NewFrameTimer(clock clockwork.Clock, maxDelta time.Duration) *FrameTimer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &FrameTimer{
		clock:    clock,
		last:     clock.Now(),
		maxDelta: maxDelta,
	}
}

// Tick returns seconds elapsed since the previous Tick, clamped to maxDelta
func (f *FrameTimer) Tick() float64 {
	now := f.clock.Now()
	d := now.Sub(f.last)
	f.last = now
	if d < 0 {
		d = 0
	}
	if f.maxDelta > 0 && d > f.maxDelta {
		d = f.maxDelta
	}
	return d.Seconds()
}

// Reset restarts measurement from now without reporting the gap
func (f *FrameTimer) Reset() {
	f.last = f.clock.Now()
}

// Clock exposes the underlying clock
func (f *FrameTimer) Clock() clockwork.Clock {
	return f.clock
}
