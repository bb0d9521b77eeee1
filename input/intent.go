package input

// Action is a semantic viewer command decoded from a key
type Action uint8

const (
	ActionNone Action = iota

	// System
	ActionQuit
	ActionToggleMute

	// Clock
	ActionTogglePause
	ActionReset
	ActionSpeedUp
	ActionSpeedDown

	// View
	ActionToggleCamera
	ActionToggleInfo
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionResetView

	actionCount
)

// String returns the canonical action name used in keymap config and metrics labels
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}
