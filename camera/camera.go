// Package camera implements the eased orbit camera and its terminal projection
package camera

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// Mode selects what the camera frames
type Mode uint8

const (
	ModeOverview Mode = iota
	ModeFocus
)

func (m Mode) String() string {
	if m == ModeFocus {
		return "focus"
	}
	return "overview"
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeFocus {
		return ModeOverview
	}
	return ModeFocus
}

// Config holds the easing and lens parameters
type Config struct {
	Damping          float64 // fraction of remaining distance covered per frame
	OverviewDistance float64
	FocusDistance    float64
	FOVDegrees       float64 // vertical field of view
	InitialPitch     float64 // degrees above the orbit plane
}

// DefaultConfig returns the stock camera parameters
func DefaultConfig() Config {
	return Config{
		Damping:          0.05,
		OverviewDistance: 60,
		FocusDistance:    15,
		FOVDegrees:       50,
		InitialPitch:     25,
	}
}

const (
	minPitch = -85.0 * math.Pi / 180
	maxPitch = 85.0 * math.Pi / 180
	minZoom  = 0.25
	maxZoom  = 4.0
)

// Camera looks at Target from Distance along a yaw/pitch direction
// Target and Distance ease toward the mode goal every frame
type Camera struct {
	cfg  Config
	mode Mode

	Target   vmath.Vec3F
	Distance float64
	Yaw      float64
	Pitch    float64
	Zoom     float64
}

// New creates a camera already settled on the overview goal
func New(cfg Config) *Camera {
	c := &Camera{cfg: cfg}
	c.ResetView()
	c.Target = vmath.Vec3F{}
	c.Distance = cfg.OverviewDistance
	return c
}

// Mode returns the current mode
func (c *Camera) Mode() Mode {
	return c.mode
}

// SetMode switches mode immediately; the framing eases over following frames
func (c *Camera) SetMode(m Mode) {
	c.mode = m
}

// Goal returns the target point and distance the current mode eases toward
// focus is the tracked body's world position
func (c *Camera) Goal(focus vmath.Vec3F) (vmath.Vec3F, float64) {
	if c.mode == ModeFocus {
		return focus, c.cfg.FocusDistance
	}
	return vmath.Vec3F{}, c.cfg.OverviewDistance
}

// Ease advances Target and Distance one frame toward the goal
func (c *Camera) Ease(focus vmath.Vec3F) {
	goalTarget, goalDist := c.Goal(focus)
	c.Target = vmath.V3FLerp(c.Target, goalTarget, c.cfg.Damping)
	c.Distance = vmath.Lerp(c.Distance, goalDist, c.cfg.Damping)
}

// Orbit rotates the view direction by yaw/pitch deltas in radians
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw = vmath.WrapAngle(c.Yaw + dYaw)
	c.Pitch = vmath.Clamp(c.Pitch+dPitch, minPitch, maxPitch)
}

// ZoomBy multiplies the manual zoom factor
func (c *Camera) ZoomBy(f float64) {
	c.Zoom = vmath.Clamp(c.Zoom*f, minZoom, maxZoom)
}

// ResetView restores yaw, pitch and zoom; mode and easing state are kept
func (c *Camera) ResetView() {
	c.Yaw = 0
	c.Pitch = vmath.DegToRad(c.cfg.InitialPitch)
	c.Zoom = 1
}

// EffectiveDistance is the eased distance scaled by manual zoom
func (c *Camera) EffectiveDistance() float64 {
	return c.Distance / c.Zoom
}

// Eye returns the camera position in world space
func (c *Camera) Eye() vmath.Vec3F {
	sp, cp := math.Sincos(c.Pitch)
	sy, cy := math.Sincos(c.Yaw)
	dir := vmath.Vec3F{X: cp * sy, Y: sp, Z: cp * cy}
	return vmath.V3FAdd(c.Target, vmath.V3FScale(dir, c.EffectiveDistance()))
}
