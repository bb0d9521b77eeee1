package camera

import (
	"math"

	"github.com/lixenwraith/orrery/vmath"
)

// CellAspect is the width:height ratio correction for terminal cells
const CellAspect = 2.0

const nearPlane = 0.1

var worldUp = vmath.Vec3F{Y: 1}

// View is a camera frozen for one frame and bound to a viewport in cells
type View struct {
	Eye     vmath.Vec3F
	Right   vmath.Vec3F
	Up      vmath.Vec3F
	Forward vmath.Vec3F

	Width  int
	Height int

	focal float64 // rows per unit of x/z at the view plane
}

// Viewport builds the per-frame view for a width x height cell area
func (c *Camera) Viewport(width, height int) View {
	eye := c.Eye()
	fwd := vmath.V3FNormalize(vmath.V3FSub(c.Target, eye))
	right := vmath.V3FNormalize(vmath.V3FCross(fwd, worldUp))
	if right == (vmath.Vec3F{}) {
		// Looking straight along Y; any horizontal right vector works
		right = vmath.Vec3F{X: 1}
	}
	up := vmath.V3FCross(right, fwd)

	half := vmath.DegToRad(c.cfg.FOVDegrees) / 2
	focal := float64(height) / 2 / math.Tan(half)

	return View{
		Eye:     eye,
		Right:   right,
		Up:      up,
		Forward: fwd,
		Width:   width,
		Height:  height,
		focal:   focal,
	}
}

// ToCamera expresses a world-space direction in camera axes (x right, y up, z forward)
func (v View) ToCamera(dir vmath.Vec3F) vmath.Vec3F {
	return vmath.Vec3F{
		X: vmath.V3FDot(dir, v.Right),
		Y: vmath.V3FDot(dir, v.Up),
		Z: vmath.V3FDot(dir, v.Forward),
	}
}

// Project maps a world point to fractional cell coordinates
// depth is distance along the view axis; ok is false behind the near plane
func (v View) Project(p vmath.Vec3F) (sx, sy, depth float64, ok bool) {
	c := v.ToCamera(vmath.V3FSub(p, v.Eye))
	if c.Z < nearPlane {
		return 0, 0, c.Z, false
	}
	inv := v.focal / c.Z
	sx = float64(v.Width)/2 + c.X*inv*CellAspect
	sy = float64(v.Height)/2 - c.Y*inv
	return sx, sy, c.Z, true
}

// ProjectDirection maps a direction at infinity (stars) to cell coordinates
func (v View) ProjectDirection(dir vmath.Vec3F) (sx, sy float64, ok bool) {
	c := v.ToCamera(dir)
	if c.Z <= 0 {
		return 0, 0, false
	}
	inv := v.focal / c.Z
	return float64(v.Width)/2 + c.X*inv*CellAspect, float64(v.Height)/2 - c.Y*inv, true
}

// RadiusRows returns the on-screen radius in rows of a sphere at depth
// Multiply by CellAspect for columns
func (v View) RadiusRows(radius, depth float64) float64 {
	if depth < nearPlane {
		return 0
	}
	return radius * v.focal / depth
}

// Cell maps projected coordinates to the containing cell, false when off screen
func (v View) Cell(sx, sy float64) (x, y int, ok bool) {
	x, y = int(math.Floor(sx)), int(math.Floor(sy))
	if x < 0 || y < 0 || x >= v.Width || y >= v.Height {
		return 0, 0, false
	}
	return x, y, true
}
