package input

import "github.com/pokedit/pokedit/pokedit/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// Backends translate their native key events into these generic key names and
// look the action up here (or in a config-supplied override map).
var DefaultKeyMap = map[string]action.Action{
	"Up":    action.DPadUp,
	"Down":  action.DPadDown,
	"Left":  action.DPadLeft,
	"Right": action.DPadRight,

	"Space":  action.ButtonA,
	"z":      action.ButtonA,
	"x":      action.ButtonB,
	"Enter":  action.ButtonStart,
	"Shift":  action.ButtonSelect,
	"Select": action.ButtonSelect,

	"F9":     action.AppSnapshot,
	"Escape": action.AppQuit,
	"q":      action.AppQuit,
}

// Resolve looks up a key name in overrides first, then the default map.
func Resolve(key string, overrides map[string]action.Action) (action.Action, bool) {
	if overrides != nil {
		if act, ok := overrides[key]; ok {
			return act, true
		}
	}
	act, ok := DefaultKeyMap[key]
	return act, ok
}
