package render

import (
	"math"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/kinematics"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

const (
	minOrbitSamples = 48
	maxOrbitSamples = 720
)

// orbitSamples scales path resolution with the projected circumference
func orbitSamples(view camera.View, n *scene.Node) int {
	_, _, depth, ok := view.Project(n.OrbitCenter())
	if !ok {
		return minOrbitSamples
	}
	circ := 2 * math.Pi * view.RadiusRows(n.Body.Orbit.Radius, depth) * camera.CellAspect
	samples := int(circ * 1.5)
	if samples < minOrbitSamples {
		return minOrbitSamples
	}
	if samples > maxOrbitSamples {
		return maxOrbitSamples
	}
	return samples
}

// DrawOrbit plots the node's orbit path around its parent's current position
func DrawOrbit(buf *Buffer, view camera.View, n *scene.Node) {
	o := n.Body.Orbit
	if o.Radius <= 0 {
		return
	}

	center := n.OrbitCenter()
	col := FromColorful(RgbBackground.Colorful().BlendLab(n.Color, 0.45))
	samples := orbitSamples(view, n)

	for i := 0; i < samples; i++ {
		a := float64(i) * vmath.TwoPi / float64(samples)
		p := vmath.V3FAdd(center, kinematics.PointAt(o, a))
		sx, sy, _, ok := view.Project(p)
		if !ok {
			continue
		}
		x, y, ok := view.Cell(sx, sy)
		if !ok {
			continue
		}
		buf.SetFgOnly(x, y, '·', col)
	}
}
