package engine

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// Speed bounds in simulated days per real second
const (
	MinSpeed = 0.1
	MaxSpeed = 50.0

	DaysPerYear = 365
)

// speedLadder is the discrete set walked by StepSpeed
var speedLadder = [...]float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 50}

// SimClock tracks elapsed simulated days
// Owned by the frame loop; not safe for concurrent use
type SimClock struct {
	days   float64
	speed  float64
	paused bool

	// Focus lock overrides the user speed without losing it
	locked      bool
	lockedSpeed float64
}

// NewSimClock creates a clock at day zero running at speed days/sec
func NewSimClock(speed float64) *SimClock {
	return &SimClock{speed: vmath.Clamp(speed, MinSpeed, MaxSpeed)}
}

// Advance moves the clock forward by frameDelta real seconds at the effective speed
// Returns true when the year readout changed
func (c *SimClock) Advance(frameDelta float64) bool {
	if c.paused || frameDelta <= 0 {
		return false
	}
	before := c.Year()
	c.days += frameDelta * c.Speed()
	return c.Year() != before
}

// Days returns elapsed simulated days
func (c *SimClock) Days() float64 {
	return c.days
}

// Day returns the whole-day readout
func (c *SimClock) Day() int {
	return int(math.Floor(c.days))
}

// Year returns the 1-based year readout
func (c *SimClock) Year() int {
	return c.Day()/DaysPerYear + 1
}

// Speed returns the effective speed, which is the lock speed while locked
func (c *SimClock) Speed() float64 {
	if c.locked {
		return c.lockedSpeed
	}
	return c.speed
}

// UserSpeed returns the speed selected by the user, ignoring any lock
func (c *SimClock) UserSpeed() float64 {
	return c.speed
}

// SetSpeed sets the user speed, clamped to [MinSpeed, MaxSpeed]
func (c *SimClock) SetSpeed(speed float64) {
	c.speed = vmath.Clamp(speed, MinSpeed, MaxSpeed)
}

// StepSpeed moves the user speed dir steps along the ladder
// From an off-ladder speed the first step lands on the nearest rung in that direction
func (c *SimClock) StepSpeed(dir int) {
	if dir == 0 {
		return
	}
	idx := -1
	for i, s := range speedLadder {
		if s == c.speed {
			idx = i
			break
		}
	}

	if idx < 0 {
		if dir > 0 {
			for _, s := range speedLadder {
				if s > c.speed {
					c.speed = s
					return
				}
			}
			c.speed = MaxSpeed
		} else {
			for i := len(speedLadder) - 1; i >= 0; i-- {
				if speedLadder[i] < c.speed {
					c.speed = speedLadder[i]
					return
				}
			}
			c.speed = MinSpeed
		}
		return
	}

	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(speedLadder) {
		idx = len(speedLadder) - 1
	}
	c.speed = speedLadder[idx]
}

// Lock pins the effective speed until Unlock
func (c *SimClock) Lock(speed float64) {
	c.locked = true
	c.lockedSpeed = vmath.Clamp(speed, MinSpeed, MaxSpeed)
}

// Unlock restores the user speed
func (c *SimClock) Unlock() {
	c.locked = false
}

// IsLocked reports whether a speed lock is active
func (c *SimClock) IsLocked() bool {
	return c.locked
}

// IsPaused returns current pause state
func (c *SimClock) IsPaused() bool {
	return c.paused
}

// SetPaused sets pause state
func (c *SimClock) SetPaused(paused bool) {
	c.paused = paused
}

// TogglePause flips pause state and returns the new state
func (c *SimClock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// Reset returns the clock to day zero, keeping speed and pause state
func (c *SimClock) Reset() {
	c.days = 0
}
