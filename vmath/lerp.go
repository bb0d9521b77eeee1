package vmath

import "math"

// TwoPi is one full revolution in radians
const TwoPi = 2 * math.Pi

// Lerp moves current toward target by factor (0 = stay, 1 = snap)
// Applied once per frame with a fixed factor it is a discrete low-pass filter
func Lerp(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// V3FLerp is the component-wise Lerp
func V3FLerp(current, target Vec3F, factor float64) Vec3F {
	return Vec3F{
		X: Lerp(current.X, target.X, factor),
		Y: Lerp(current.Y, target.Y, factor),
		Z: Lerp(current.Z, target.Z, factor),
	}
}

// WrapAngle maps an angle into [0, 2π)
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// AngleDiff returns the signed shortest difference a-b in (-π, π]
func AngleDiff(a, b float64) float64 {
	d := WrapAngle(a - b)
	if d > math.Pi {
		d -= TwoPi
	}
	return d
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
