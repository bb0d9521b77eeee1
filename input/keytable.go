package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to actions
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	SpecialKeys map[tcell.Key]Action

	// Printable rune bindings
	Runes map[rune]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Action{
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyLeft:   ActionOrbitLeft,
			tcell.KeyRight:  ActionOrbitRight,
			tcell.KeyUp:     ActionOrbitUp,
			tcell.KeyDown:   ActionOrbitDown,
		},

		Runes: map[rune]Action{
			'q': ActionQuit,
			'm': ActionToggleMute,
			' ': ActionTogglePause,
			'r': ActionReset,
			']': ActionSpeedUp,
			'[': ActionSpeedDown,
			'c': ActionToggleCamera,
			'i': ActionToggleInfo,
			'+': ActionZoomIn,
			'=': ActionZoomIn,
			'-': ActionZoomOut,
			'0': ActionResetView,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}

// Lookup returns the action bound to k, ActionNone when unbound
func (kt *KeyTable) Lookup(k Key) Action {
	if k.Code == tcell.KeyRune {
		return kt.Runes[k.Rune]
	}
	return kt.SpecialKeys[k.Code]
}

// Map resolves k against the default bindings
func Map(k Key) Action {
	return defaultTable.Lookup(k)
}

var defaultTable = DefaultKeyTable()
