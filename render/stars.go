package render

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/vmath"
)

type star struct {
	dir        vmath.Vec3F
	brightness float64
}

// Starfield is a fixed set of directions at infinity; only camera rotation moves it
type Starfield struct {
	stars []star
}

// NewStarfield generates count stars uniformly on the sphere, deterministic per seed
func NewStarfield(count int, seed int64) *Starfield {
	rng := rand.New(rand.NewSource(seed))
	sf := &Starfield{stars: make([]star, count)}
	for i := range sf.stars {
		// Uniform on sphere: z uniform in [-1,1], azimuth uniform
		z := rng.Float64()*2 - 1
		az := rng.Float64() * vmath.TwoPi
		rxy := math.Sqrt(1 - z*z)
		sf.stars[i] = star{
			dir:        vmath.Vec3F{X: rxy * math.Cos(az), Y: z, Z: rxy * math.Sin(az)},
			brightness: 0.25 + 0.75*rng.Float64()*rng.Float64(),
		}
	}
	return sf
}

// Len returns the number of stars
func (sf *Starfield) Len() int {
	return len(sf.stars)
}

// Draw plots visible stars into the viewport area of buf
func (sf *Starfield) Draw(buf *Buffer, view camera.View) {
	for _, s := range sf.stars {
		sx, sy, ok := view.ProjectDirection(s.dir)
		if !ok {
			continue
		}
		x, y, ok := view.Cell(sx, sy)
		if !ok {
			continue
		}

		glyph := '.'
		switch {
		case s.brightness > 0.85:
			glyph = '*'
		case s.brightness > 0.6:
			glyph = '+'
		}
		v := clamp(s.brightness * 230)
		buf.SetFgOnly(x, y, glyph, RGB{R: v, G: v, B: clamp(float64(v) * 1.1)})
	}
}
