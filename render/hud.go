package render

import (
	"fmt"

	"github.com/lixenwraith/orrery/scene"
	"github.com/lixenwraith/orrery/vmath"
)

// HudRows is the number of rows reserved at the bottom of the screen
const HudRows = 2

const controlsLine = "space:pause  [/]:speed  r:reset  c:camera  i:info  arrows:orbit  +/-:zoom  0:view  m:mute  q:quit"

// HUD carries the readouts drawn over the scene
type HUD struct {
	Day    int
	Year   int
	Speed  float64
	Locked bool
	Paused bool
	Mode   string
	Muted  bool
	FPS    float64
}

// StatusLine formats the day/year/speed readout
func (h HUD) StatusLine() string {
	speed := fmt.Sprintf("%g d/s", h.Speed)
	if h.Locked {
		speed += " (locked)"
	}
	return fmt.Sprintf("Day %d  Year %d  Speed %s  Camera %s", h.Day, h.Year, speed, h.Mode)
}

// DrawHUD renders status and controls rows at the bottom of buf
func DrawHUD(buf *Buffer, h HUD) {
	w, hgt := buf.Size()
	if hgt < HudRows {
		return
	}
	statusY := hgt - 2
	controlY := hgt - 1

	for x := 0; x < w; x++ {
		buf.SetWithBg(x, statusY, ' ', RgbHudText, RgbPanelBg)
		buf.SetWithBg(x, controlY, ' ', RgbHudDim, RgbPanelBg)
	}

	buf.Text(1, statusY, h.StatusLine(), RgbHudText, false)

	right := w - 1
	if h.Paused {
		right -= len("[PAUSED]")
		buf.Text(right, statusY, "[PAUSED]", RgbHudAccent, true)
		right--
	}
	if h.Muted {
		right -= len("[MUTED]")
		buf.Text(right, statusY, "[MUTED]", RgbHudDim, false)
		right--
	}
	if h.FPS > 0 {
		fps := fmt.Sprintf("%.0f fps", h.FPS)
		right -= len(fps)
		buf.Text(right, statusY, fps, RgbHudDim, false)
	}

	buf.Text(1, controlY, controlsLine, RgbHudDim, false)
}

// InfoLines describes each body's parameters and current world position
func InfoLines(sc *scene.Scene) []string {
	lines := make([]string, 0, len(sc.Nodes())+1)
	lines = append(lines, fmt.Sprintf("%-9s %6s %8s %6s %7s  %s", "body", "orbit", "period", "incl", "spin", "position"))
	for _, n := range sc.Nodes() {
		b := n.Body
		w := n.World
		lines = append(lines, fmt.Sprintf("%-9s %6.1f %7.3gd %5.1f° %6.3gd  (%.1f, %.1f, %.1f)",
			b.Role, b.Orbit.Radius, b.Orbit.PeriodDays, vmath.RadToDeg(b.Orbit.Inclination),
			b.SpinPeriodDays, w.X, w.Y, w.Z))
	}
	return lines
}

// InfoPanel is the toggleable body table overlay
type InfoPanel struct {
	visible bool
}

// Toggle flips visibility and returns the new state
func (p *InfoPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// SetVisible sets visibility
func (p *InfoPanel) SetVisible(v bool) {
	p.visible = v
}

// IsVisible reports whether the panel is drawn
func (p *InfoPanel) IsVisible() bool {
	return p.visible
}

// Render draws the panel for the current scene
func (p *InfoPanel) Render(ctx RenderContext, buf *Buffer) {
	DrawInfoPanel(buf, ctx.Scene)
}

// DrawInfoPanel renders a translucent boxed panel in the top-left corner
func DrawInfoPanel(buf *Buffer, sc *scene.Scene) {
	lines := InfoLines(sc)
	width := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > width {
			width = n
		}
	}
	boxW := width + 4
	boxH := len(lines) + 2
	x0, y0 := 1, 1

	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			var r rune = ' '
			switch {
			case (y == y0 || y == y0+boxH-1) && (x == x0 || x == x0+boxW-1):
				r = cornerRune(x == x0, y == y0)
			case y == y0 || y == y0+boxH-1:
				r = '─'
			case x == x0 || x == x0+boxW-1:
				r = '│'
			}
			buf.Set(x, y, r, RgbPanelEdge, RgbPanelBg, BlendAlpha, 0.85)
		}
	}

	for i, l := range lines {
		col := RgbHudText
		if i == 0 {
			col = RgbHudAccent
		}
		buf.Text(x0+2, y0+1+i, l, col, i == 0)
	}
}

func cornerRune(left, top bool) rune {
	switch {
	case left && top:
		return '┌'
	case top:
		return '┐'
	case left:
		return '└'
	default:
		return '┘'
	}
}
