// Package stream pushes per-frame body snapshots to WebSocket viewers
package stream

import "github.com/lixenwraith/orrery/scene"

// Frame is one published snapshot of the clock and every body's pose
type Frame struct {
	Day    int               `json:"day"`
	Year   int               `json:"year"`
	Days   float64           `json:"days"`
	Speed  float64           `json:"speed"`
	Paused bool              `json:"paused"`
	Mode   string            `json:"mode"`
	Bodies []scene.BodyState `json:"bodies"`
}
