package render

import (
	"github.com/lixenwraith/orrery/camera"
	"github.com/lixenwraith/orrery/scene"
)

// RenderContext provides frame state for passes, passed by value
type RenderContext struct {
	Scene *scene.Scene
	View  camera.View
	HUD   HUD

	// Screen dimensions (terminal size); View covers the area above the HUD
	ScreenWidth  int
	ScreenHeight int
}

// NewRenderContext binds the camera to the drawable area of a width x height screen
func NewRenderContext(sc *scene.Scene, cam *camera.Camera, hud HUD, width, height int) RenderContext {
	viewH := height - HudRows
	if viewH < 1 {
		viewH = 1
	}
	return RenderContext{
		Scene:        sc,
		View:         cam.Viewport(width, viewH),
		HUD:          hud,
		ScreenWidth:  width,
		ScreenHeight: height,
	}
}
