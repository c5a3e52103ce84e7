package action

import "fmt"

// Action represents input actions that can be performed in the editor.
type Action int

const (
	// Device controls
	DPadUp Action = iota
	DPadDown
	DPadLeft
	DPadRight
	ButtonA
	ButtonB
	ButtonStart
	ButtonSelect

	// App features
	AppSnapshot
	AppQuit

	actionCount
)

var names = [...]string{
	DPadUp:       "dpad-up",
	DPadDown:     "dpad-down",
	DPadLeft:     "dpad-left",
	DPadRight:    "dpad-right",
	ButtonA:      "button-a",
	ButtonB:      "button-b",
	ButtonStart:  "button-start",
	ButtonSelect: "button-select",
	AppSnapshot:  "snapshot",
	AppQuit:      "quit",
}

// Known reports whether a is one of the defined actions.
func Known(a Action) bool {
	return a >= 0 && a < actionCount
}

func (a Action) String() string {
	if !Known(a) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return names[a]
}

// Parse resolves an action name as used in config files and scripts.
func Parse(name string) (Action, error) {
	for a, n := range names {
		if n == name {
			return Action(a), nil
		}
	}
	// Short aliases, matching the device key legend.
	switch name {
	case "up":
		return DPadUp, nil
	case "down":
		return DPadDown, nil
	case "left":
		return DPadLeft, nil
	case "right":
		return DPadRight, nil
	case "a":
		return ButtonA, nil
	case "b":
		return ButtonB, nil
	case "start":
		return ButtonStart, nil
	case "select":
		return ButtonSelect, nil
	}
	return 0, fmt.Errorf("unknown action: %q", name)
}
