package event

import "fmt"

// Type represents the type of input event.
type Type int

const (
	Press   Type = iota // Button pressed down
	Release             // Button released
	Hold                // Autorepeat while pressed
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case Hold:
		return "hold"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Known reports whether t is one of the defined event types.
func Known(t Type) bool {
	return t >= Press && t <= Hold
}

// Parse resolves an event type name as used in scripts.
func Parse(name string) (Type, error) {
	switch name {
	case "press":
		return Press, nil
	case "release":
		return Release, nil
	case "hold":
		return Hold, nil
	}
	return 0, fmt.Errorf("unknown event type: %q", name)
}
