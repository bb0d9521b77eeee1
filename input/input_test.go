package input

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

func decodeBindings(data string) (*KeyTable, error) {
	var b Bindings
	if _, err := toml.Decode(data, &b); err != nil {
		return nil, err
	}
	return b.Table()
}

func TestDefaultBindings(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want Action
	}{
		{"space pauses", RuneKey(' '), ActionTogglePause},
		{"r resets", RuneKey('r'), ActionReset},
		{"] speeds up", RuneKey(']'), ActionSpeedUp},
		{"[ slows down", RuneKey('['), ActionSpeedDown},
		{"c toggles camera", RuneKey('c'), ActionToggleCamera},
		{"i toggles info", RuneKey('i'), ActionToggleInfo},
		{"m mutes", RuneKey('m'), ActionToggleMute},
		{"plus zooms in", RuneKey('+'), ActionZoomIn},
		{"minus zooms out", RuneKey('-'), ActionZoomOut},
		{"0 resets view", RuneKey('0'), ActionResetView},
		{"q quits", RuneKey('q'), ActionQuit},
		{"esc quits", SpecialKey(tcell.KeyEscape), ActionQuit},
		{"ctrl-c quits", SpecialKey(tcell.KeyCtrlC), ActionQuit},
		{"left orbits", SpecialKey(tcell.KeyLeft), ActionOrbitLeft},
		{"up orbits", SpecialKey(tcell.KeyUp), ActionOrbitUp},
		{"unknown rune", RuneKey('z'), ActionNone},
		{"unknown special", SpecialKey(tcell.KeyF5), ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Map(tt.key); got != tt.want {
				t.Errorf("Map(%+v) = %s, want %s", tt.key, got, tt.want)
			}
		})
	}
}

func TestNormalizeCtrlRune(t *testing.T) {
	k := normalize(Key{Code: tcell.KeyRune, Rune: 'C', Mod: tcell.ModCtrl})
	if k.Code != tcell.KeyCtrlC {
		t.Fatalf("Expected KeyCtrlC, got %v", k.Code)
	}
	if Map(k) != ActionQuit {
		t.Errorf("Ctrl+C as modified rune should quit, got %s", Map(k))
	}

	plain := normalize(RuneKey('c'))
	if plain != RuneKey('c') {
		t.Errorf("Unmodified rune changed: %+v", plain)
	}
}

func TestActionNamesRoundTrip(t *testing.T) {
	for a := ActionNone; a < actionCount; a++ {
		name := a.String()
		if name == "" {
			t.Errorf("Action %d has no name", a)
			continue
		}
		got, ok := ActionByName(name)
		if !ok || got != a {
			t.Errorf("ActionByName(%q) = %v, %v; want %v", name, got, ok, a)
		}
	}
	if Action(200).String() != "unknown" {
		t.Errorf("Out of range action should be unknown")
	}
}

func TestBindingsTable(t *testing.T) {
	data := `
[keys]
p = "toggle_pause"
space = "none"
plus = "zoom_out"

[special_keys]
pgup = "speed_up"
Esc = "none"
`

	override, err := decodeBindings(data)
	if err != nil {
		t.Fatalf("Bindings.Table failed: %v", err)
	}

	kt := MergeKeyTable(DefaultKeyTable(), override)

	tests := []struct {
		key  Key
		want Action
	}{
		{RuneKey('p'), ActionTogglePause},
		{RuneKey(' '), ActionNone},
		{RuneKey('+'), ActionZoomOut},
		{RuneKey('r'), ActionReset},
		{SpecialKey(tcell.KeyPgUp), ActionSpeedUp},
		{SpecialKey(tcell.KeyEscape), ActionNone},
		{SpecialKey(tcell.KeyCtrlC), ActionQuit},
	}
	for _, tt := range tests {
		if got := kt.Lookup(tt.key); got != tt.want {
			t.Errorf("Lookup(%+v) = %s, want %s", tt.key, got, tt.want)
		}
	}

	// Defaults are untouched by the merge
	if Map(RuneKey(' ')) != ActionTogglePause {
		t.Error("MergeKeyTable mutated the default table")
	}
}

func TestBindingsTableErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown action", "[keys]\nx = \"warp\"\n"},
		{"multi-char key", "[keys]\nxy = \"reset\"\n"},
		{"unknown special", "[special_keys]\nf13 = \"reset\"\n"},
		{"bad toml", "[keys\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeBindings(tt.data); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}
