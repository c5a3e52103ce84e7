package device

import (
	"fmt"

	"github.com/pokedit/pokedit/pokedit/input/action"
	"github.com/pokedit/pokedit/pokedit/input/event"
	"github.com/pokedit/pokedit/pokedit/save"
)

// ResultKind classifies the outcome of a transition.
type ResultKind int

const (
	// Unchanged means no observable state delta; a redraw may be skipped.
	Unchanged ResultKind = iota
	// Changed means the state changed and the display should be refreshed.
	Changed
	// Rejected means the event payload was malformed; the state is untouched.
	Rejected
)

func (k ResultKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("ResultKind(%d)", int(k))
}

// Result is the outcome of applying one event.
type Result struct {
	Kind   ResultKind
	Reason string // set when Kind is Rejected
}

func unchanged() Result {
	return Result{Kind: Unchanged}
}

func changed() Result {
	return Result{Kind: Changed}
}

func rejected(reason string) Result {
	return Result{Kind: Rejected, Reason: reason}
}

// Apply advances the device state by one event. It is total over the event
// union and fully deterministic: every event has defined behavior for every
// reachable state, combinations with no effect return Unchanged, and
// malformed payloads return Rejected with the state bit-for-bit untouched.
// Both the simulation loop and the headless driver go through here.
func Apply(s *State, ev Event) Result {
	switch e := ev.(type) {
	case Tick:
		return s.applyTick(e)
	case Input:
		return s.applyInput(e)
	case nil:
		return rejected("nil event")
	default:
		return rejected(fmt.Sprintf("unknown event type %T", ev))
	}
}

// applyTick accumulates elapsed time. Ticks are additive: ten 16ms ticks and
// one 160ms tick produce the same state.
func (s *State) applyTick(t Tick) Result {
	if t.Elapsed < 0 {
		return rejected("negative tick duration")
	}
	before := s.BlinkOn()
	s.elapsed += t.Elapsed
	if s.BlinkOn() != before {
		return changed()
	}
	return unchanged()
}

func (s *State) applyInput(in Input) Result {
	if !action.Known(in.Action) {
		return rejected(fmt.Sprintf("unknown action %d", int(in.Action)))
	}
	if !event.Known(in.Type) {
		return rejected(fmt.Sprintf("unknown event type %d", int(in.Type)))
	}

	if in.Type == event.Release {
		if in.Action == action.ButtonA && s.step != 1 {
			s.step = 1
			return changed()
		}
		return unchanged()
	}

	// Press and Hold share bindings; Hold is the autorepeat path.
	switch in.Action {
	case action.DPadUp:
		return s.adjustMoney(1)
	case action.DPadDown:
		return s.adjustMoney(-1)
	case action.DPadLeft:
		s.field = (s.field + fieldCount - 1) % fieldCount
		return changed()
	case action.DPadRight:
		s.field = (s.field + 1) % fieldCount
		return changed()
	case action.ButtonA:
		// Toggle on press so press-only surfaces can turn the step
		// modifier back off; a release always resets it.
		if in.Type != event.Press {
			return unchanged()
		}
		if s.step == 1 {
			s.step = 10
		} else {
			s.step = 1
		}
		return changed()
	default:
		// Quit and snapshot are consumed by the loop; the remaining buttons
		// are unbound in the editor.
		return unchanged()
	}
}

// adjustMoney applies one edit step in the given direction, saturating at
// the representable range.
func (s *State) adjustMoney(dir int32) Result {
	if s.game == nil || s.field != FieldMoney {
		return unchanged()
	}

	cur := int64(s.game.Money())
	next := cur + int64(dir)*int64(s.step)
	if next < 0 {
		next = 0
	}
	if next > save.MaxMoney {
		next = save.MaxMoney
	}
	if next == cur {
		return unchanged()
	}

	s.game.SetMoney(uint32(next))
	s.dirty = true
	return changed()
}
