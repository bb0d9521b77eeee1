package render

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/kinematics"
	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

// Radius in columns below which a body collapses to a single glyph
const glyphThreshold = 0.75

var (
	landColor    = colorful.Color{R: 0.36, G: 0.50, B: 0.23}
	iceColor     = colorful.Color{R: 0.91, G: 0.94, B: 0.97}
	mariaDarken  = 0.55
	nightScale   = 0.08
	ambientLight = 0.04
)

var headingGlyphs = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

type projected struct {
	node   *scene.Node
	cx, cy float64
	radius float64 // rows
	depth  float64
}

// projectBodies projects visible nodes and sorts them far to near
func projectBodies(view camera.View, nodes []*scene.Node) []projected {
	out := make([]projected, 0, len(nodes))
	for _, n := range nodes {
		sx, sy, depth, ok := view.Project(n.World)
		if !ok {
			continue
		}
		out = append(out, projected{
			node:   n,
			cx:     sx,
			cy:     sy,
			radius: view.RadiusRows(n.Radius, depth),
			depth:  depth,
		})
	}

	// Painter's algorithm: sort far to near
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].depth > out[j].depth
	})
	return out
}

// surfaceColor returns the unlit albedo for a body-frame normal
func surfaceColor(n *scene.Node, normal vmath.Vec3F) colorful.Color {
	base := n.Color
	lat := math.Asin(vmath.Clamp(normal.Y, -1, 1))
	lon := math.Atan2(normal.Z, normal.X)

	switch n.Role() {
	case kinematics.RolePlanet:
		if math.Abs(lat) > 1.2 {
			return iceColor
		}
		if math.Sin(3*lon+1.3*math.Sin(2*lat))*math.Cos(1.5*lat) > 0.35 {
			return landColor
		}
	case kinematics.RoleMoon:
		if math.Sin(2*lon)*math.Cos(lat) > 0.5 {
			return colorful.Color{R: base.R * mariaDarken, G: base.G * mariaDarken, B: base.B * mariaDarken}
		}
	}
	return base
}

// shade blends albedo from night to day side in Lab space
func shade(albedo colorful.Color, diffuse float64) colorful.Color {
	night := colorful.Color{R: albedo.R * nightScale, G: albedo.G * nightScale, B: albedo.B * nightScale}
	t := vmath.Clamp(diffuse+ambientLight, 0, 1)
	// Smoothstep softens the terminator over a couple of cells
	t = t * t * (3 - 2*t)
	return night.BlendLab(albedo, t)
}

// drawLitSphere rasterizes a sun-lit body with day/night shading and spin-driven surface detail
func drawLitSphere(buf *Buffer, view camera.View, p projected, sun vmath.Vec3F) {
	light := vmath.V3FNormalize(vmath.V3FSub(sun, p.node.World))
	spin := p.node.Body.Transform.Rotation.Y

	rx := p.radius * camera.CellAspect
	ry := p.radius
	minX := max(0, int(p.cx-rx-1))
	maxX := min(view.Width-1, int(p.cx+rx+1))
	minY := max(0, int(p.cy-ry-1))
	maxY := min(view.Height-1, int(p.cy+ry+1))

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			nx := (float64(sx) + 0.5 - p.cx) / rx
			ny := (float64(sy) + 0.5 - p.cy) / ry
			distSq := nx*nx + ny*ny
			if distSq > 1 {
				continue
			}
			nz := math.Sqrt(1 - distSq)

			// Camera axes: x right, y up, z forward; visible hemisphere faces the eye
			world := vmath.V3FAdd(vmath.V3FAdd(
				vmath.V3FScale(view.Right, nx),
				vmath.V3FScale(view.Up, -ny)),
				vmath.V3FScale(view.Forward, -nz))

			diffuse := math.Max(0, vmath.V3FDot(world, light))
			body := vmath.V3FRotateY(world, -spin)
			c := shade(surfaceColor(p.node, body), diffuse)

			if p.node.Role() == kinematics.RolePlanet {
				// Thin atmosphere on the lit limb
				rim := (1 - nz) * (1 - nz) * (1 - nz)
				c = c.BlendRgb(colorful.Color{R: 0.45, G: 0.7, B: 1}, vmath.Clamp(rim*0.6*diffuse, 0, 1))
			}

			alpha := 1.0
			if edge := 1.0 - math.Sqrt(distSq); edge < 0.08 {
				alpha = edge/0.08*0.7 + 0.3
			}
			buf.Set(sx, sy, ' ', RGB{}, FromColorful(c), BlendAlphaBg, alpha)
		}
	}
}

// drawEmissiveSphere rasterizes a self-lit body with a hot core and outer glow
func drawEmissiveSphere(buf *Buffer, view camera.View, p projected) {
	base := FromColorful(p.node.Color)
	glow := p.radius * 1.6

	minX := max(0, int(p.cx-glow*camera.CellAspect-1))
	maxX := min(view.Width-1, int(p.cx+glow*camera.CellAspect+1))
	minY := max(0, int(p.cy-glow-1))
	maxY := min(view.Height-1, int(p.cy+glow+1))

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			nx := (float64(sx) + 0.5 - p.cx) / (p.radius * camera.CellAspect)
			ny := (float64(sy) + 0.5 - p.cy) / p.radius
			distSq := nx*nx + ny*ny
			if distSq > 2.56 {
				continue
			}

			if distSq <= 1 {
				core := 1 - math.Sqrt(distSq)
				c := Lerp(base, RGB{255, 250, 235}, core*0.8)
				buf.Set(sx, sy, ' ', RGB{}, c, BlendAlphaBg, 1)
				continue
			}

			falloff := math.Exp(-(math.Sqrt(distSq)-1)*3) * 0.6
			buf.Set(sx, sy, 0, RGB{}, base, BlendScreenBg, falloff)
		}
	}
}

// headingGlyph picks an arrow for the projected direction (dx cols, dy rows)
func headingGlyph(dx, dy float64) rune {
	a := math.Atan2(-dy, dx/camera.CellAspect)
	idx := int(math.Round(vmath.WrapAngle(a)/(math.Pi/4))) % 8
	return headingGlyphs[idx]
}

// drawGlyphBody draws a body too small to rasterize
// Bodies facing their travel direction get an arrow along the projected heading
func drawGlyphBody(buf *Buffer, view camera.View, p projected, sun vmath.Vec3F) {
	x, y, ok := view.Cell(p.cx, p.cy)
	if !ok {
		return
	}

	// Phase lighting: fraction of the visible disc that is lit
	light := vmath.V3FNormalize(vmath.V3FSub(sun, p.node.World))
	toEye := vmath.V3FNormalize(vmath.V3FSub(view.Eye, p.node.World))
	phase := (1 + vmath.V3FDot(light, toEye)) / 2
	c := FromColorful(shade(p.node.Color, math.Max(phase, 0.35)))
	if p.node.Emissive {
		c = FromColorful(p.node.Color)
	}

	glyph := '•'
	if p.node.Body.FaceTravel {
		fwd := kinematics.ForwardAxis(p.node.Body.Transform.Rotation.Y)
		tip := vmath.V3FAdd(p.node.World, vmath.V3FScale(fwd, math.Max(p.node.Radius, 0.1)))
		if tx, ty, _, ok := view.Project(tip); ok && (tx != p.cx || ty != p.cy) {
			glyph = headingGlyph(tx-p.cx, ty-p.cy)
		}
	}
	buf.SetFgOnly(x, y, glyph, c)
}

// DrawBodies renders every visible body in painter's order
func DrawBodies(buf *Buffer, view camera.View, sc *scene.Scene) {
	sun := sc.WorldPosition(kinematics.RoleSun)
	for _, p := range projectBodies(view, sc.Nodes()) {
		switch {
		case p.node.Body.FaceTravel || p.radius*camera.CellAspect < glyphThreshold:
			drawGlyphBody(buf, view, p, sun)
		case p.node.Emissive:
			drawEmissiveSphere(buf, view, p)
		default:
			drawLitSphere(buf, view, p, sun)
		}
	}
}
