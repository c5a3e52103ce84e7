package device

import (
	"fmt"
	"strings"
	"time"

	"github.com/pokedit/pokedit/pokedit/input/action"
	"github.com/pokedit/pokedit/pokedit/input/event"
)

// Event is the tagged union consumed by Apply: either a timer Tick or an
// Input from the user. Events are immutable and consumed exactly once.
type Event interface {
	isEvent()
}

// Tick advances simulated time by the elapsed duration.
type Tick struct {
	Elapsed time.Duration
}

// Input is a translated user input event.
type Input struct {
	Action action.Action
	Type   event.Type
	At     time.Time
}

func (Tick) isEvent()  {}
func (Input) isEvent() {}

func (t Tick) String() string {
	return fmt.Sprintf("tick:%s", t.Elapsed)
}

func (i Input) String() string {
	return fmt.Sprintf("%s:%s", i.Type, i.Action)
}

// ParseEvent parses the textual event form used by CLI arguments and script
// files: "tick:<duration>", "<type>:<action>", or a bare action name which
// is shorthand for a press.
func ParseEvent(s string) (Event, error) {
	kind, rest, found := strings.Cut(s, ":")
	if !found {
		act, err := action.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid event %q: %w", s, err)
		}
		return Input{Action: act, Type: event.Press}, nil
	}

	if kind == "tick" {
		d, err := time.ParseDuration(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid event %q: %w", s, err)
		}
		return Tick{Elapsed: d}, nil
	}

	typ, err := event.Parse(kind)
	if err != nil {
		return nil, fmt.Errorf("invalid event %q: %w", s, err)
	}
	act, err := action.Parse(rest)
	if err != nil {
		return nil, fmt.Errorf("invalid event %q: %w", s, err)
	}
	return Input{Action: act, Type: typ}, nil
}
