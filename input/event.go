package input

import (
	"github.com/gdamore/tcell/v2"
)

// Key is a decoded key press, independent of the event source
type Key struct {
	Code tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// RuneKey builds a printable key
func RuneKey(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// SpecialKey builds a non-printable key
func SpecialKey(k tcell.Key) Key {
	return Key{Code: k}
}

// FromEvent decodes a tcell key event
// Ctrl+letter reported as a modified rune is normalized to the control key code
func FromEvent(ev *tcell.EventKey) Key {
	k := Key{Code: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}
	return normalize(k)
}

func normalize(k Key) Key {
	if k.Code == tcell.KeyRune && k.Mod&tcell.ModCtrl != 0 {
		r := k.Rune
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' {
			return Key{Code: tcell.KeyCtrlA + tcell.Key(r-'a'), Mod: k.Mod}
		}
	}
	return k
}
