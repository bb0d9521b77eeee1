package input

// actionNames is indexed by Action
var actionNames = [actionCount]string{
	ActionNone:         "none",
	ActionQuit:         "quit",
	ActionToggleMute:   "toggle_mute",
	ActionTogglePause:  "toggle_pause",
	ActionReset:        "reset",
	ActionSpeedUp:      "speed_up",
	ActionSpeedDown:    "speed_down",
	ActionToggleCamera: "toggle_camera",
	ActionToggleInfo:   "toggle_info",
	ActionOrbitLeft:    "orbit_left",
	ActionOrbitRight:   "orbit_right",
	ActionOrbitUp:      "orbit_up",
	ActionOrbitDown:    "orbit_down",
	ActionZoomIn:       "zoom_in",
	ActionZoomOut:      "zoom_out",
	ActionResetView:    "reset_view",
}

// actionRegistry maps canonical action names to actions
// Used by keymap config loader to resolve TOML action strings to bindings
var actionRegistry map[string]Action

func init() {
	actionRegistry = make(map[string]Action, len(actionNames))
	for i, name := range actionNames {
		actionRegistry[name] = Action(i)
	}
}

// ActionByName resolves a canonical action name
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}
