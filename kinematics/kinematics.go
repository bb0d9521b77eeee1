// Package kinematics computes closed-form circular and inclined-circular
// orbit poses from elapsed simulated days
//
// Every function is memoryless: a pose depends only on the clock value and
// the body's fixed parameters, so the clock may jump backwards (reset) or
// skip frames without drift
package kinematics

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// Orbit holds the fixed parameters of a circular orbit around a parent
// A non-positive PeriodDays marks a stationary body
type Orbit struct {
	Radius      float64 // scene units
	PeriodDays  float64 // simulated days per revolution
	Inclination float64 // radians, tilt of the orbit plane about the X axis
}

// Transform is the per-frame pose written into a scene node
// Position is local to the parent; Rotation is Euler XYZ in radians
type Transform struct {
	Position vmath.Vec3F
	Rotation vmath.Vec3F
	Angle    float64 // orbital angle, unwrapped
}

// Angle returns the orbital angle after t days: (t / period) * 2π
// Not wrapped; callers needing [0, 2π) use vmath.WrapAngle
func Angle(t, periodDays float64) float64 {
	if periodDays <= 0 {
		return 0
	}
	return (t / periodDays) * vmath.TwoPi
}

// PlanarPosition places a point on a circle of radius r in the XZ plane
func PlanarPosition(angle, r float64) vmath.Vec3F {
	s, c := math.Sincos(angle)
	return vmath.Vec3F{X: c * r, Z: s * r}
}

// InclinedPosition places a point on a circle of radius r in a plane tilted
// by inclination about the X axis
func InclinedPosition(angle, inclination, r float64) vmath.Vec3F {
	s, c := math.Sincos(angle)
	si, ci := math.Sincos(inclination)
	return vmath.Vec3F{
		X: c * r,
		Y: s * si * r,
		Z: s * ci * r,
	}
}

// Position returns the orbit-local position at t days
// A zero inclination takes the planar form so uninclined bodies keep Y exactly 0
func Position(o Orbit, t float64) vmath.Vec3F {
	return PointAt(o, Angle(t, o.PeriodDays))
}

// PointAt returns the orbit-local point at an orbital angle, used for path sampling
func PointAt(o Orbit, angle float64) vmath.Vec3F {
	if o.Inclination == 0 {
		return PlanarPosition(angle, o.Radius)
	}
	return InclinedPosition(angle, o.Inclination, o.Radius)
}

// Spin returns the self-rotation angle after t days, zero when the body does not spin
func Spin(t, spinPeriodDays float64) float64 {
	if spinPeriodDays <= 0 {
		return 0
	}
	return (t / spinPeriodDays) * vmath.TwoPi
}

// Heading returns the Y rotation that turns a model whose forward axis is
// local -X along its direction of travel
func Heading(angle float64) float64 {
	return -angle + math.Pi/2
}

// ForwardAxis returns the world direction of a model's forward axis (local -X)
// after applying a Y rotation
func ForwardAxis(rotationY float64) vmath.Vec3F {
	return vmath.V3FRotateY(vmath.Vec3F{X: -1}, rotationY)
}
