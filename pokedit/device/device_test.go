package device

import (
	"testing"
	"time"

	"github.com/pokedit/pokedit/pokedit/input/action"
	"github.com/pokedit/pokedit/pokedit/input/event"
	"github.com/pokedit/pokedit/pokedit/save"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(save.New(save.Emerald), "test.sav")
}

func press(a action.Action) Input {
	return Input{Action: a, Type: event.Press}
}

func TestApplyDeterminism(t *testing.T) {
	events := []Event{
		Tick{Elapsed: 16 * time.Millisecond},
		press(action.DPadUp),
		press(action.DPadRight),
		Input{Action: action.ButtonA, Type: event.Press},
		press(action.DPadUp),
		Input{Action: action.ButtonA, Type: event.Release},
		Tick{Elapsed: 700 * time.Millisecond},
	}

	s1 := newTestState(t)
	s2 := newTestState(t)
	for _, ev := range events {
		r1 := Apply(s1, ev)
		r2 := Apply(s2, ev)
		assert.Equal(t, r1, r2)
	}
	assert.True(t, s1.Equal(s2))
}

func TestTickAdditivity(t *testing.T) {
	many := newTestState(t)
	for i := 0; i < 10; i++ {
		Apply(many, Tick{Elapsed: 16 * time.Millisecond})
	}

	one := newTestState(t)
	Apply(one, Tick{Elapsed: 160 * time.Millisecond})

	assert.True(t, many.Equal(one))
}

func TestTickBlinkPhase(t *testing.T) {
	s := newTestState(t)
	assert.True(t, s.BlinkOn())

	res := Apply(s, Tick{Elapsed: 100 * time.Millisecond})
	assert.Equal(t, Unchanged, res.Kind)
	assert.True(t, s.BlinkOn())

	res = Apply(s, Tick{Elapsed: BlinkPeriod})
	assert.Equal(t, Changed, res.Kind)
	assert.False(t, s.BlinkOn())
}

func TestRejectedLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
	}{
		{"negative tick", Tick{Elapsed: -time.Second}},
		{"unknown action", press(action.Action(999))},
		{"unknown input type", Input{Action: action.DPadUp, Type: event.Type(42)}},
		{"nil event", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t)
			Apply(s, press(action.DPadUp)) // reach a non-initial state
			before := s.Snapshot()

			res := Apply(s, tt.ev)
			assert.Equal(t, Rejected, res.Kind)
			assert.NotEmpty(t, res.Reason)
			assert.True(t, s.Equal(before))
		})
	}
}

func TestMoneyEditing(t *testing.T) {
	s := newTestState(t)

	res := Apply(s, press(action.DPadUp))
	assert.Equal(t, Changed, res.Kind)
	assert.Equal(t, uint32(1), s.Game().Money())
	assert.True(t, s.Dirty())

	res = Apply(s, press(action.DPadDown))
	assert.Equal(t, Changed, res.Kind)
	assert.Equal(t, uint32(0), s.Game().Money())
}

func TestMoneySaturation(t *testing.T) {
	s := newTestState(t)

	// Decrement at zero is a defined no-op, not a failure.
	res := Apply(s, press(action.DPadDown))
	assert.Equal(t, Unchanged, res.Kind)
	assert.Equal(t, uint32(0), s.Game().Money())

	s.Game().SetMoney(save.MaxMoney)
	res = Apply(s, press(action.DPadUp))
	assert.Equal(t, Unchanged, res.Kind)
	assert.Equal(t, uint32(save.MaxMoney), s.Game().Money())
}

func TestStepModifier(t *testing.T) {
	s := newTestState(t)

	res := Apply(s, Input{Action: action.ButtonA, Type: event.Press})
	assert.Equal(t, Changed, res.Kind)
	assert.Equal(t, uint32(10), s.Step())

	Apply(s, press(action.DPadUp))
	assert.Equal(t, uint32(10), s.Game().Money())

	res = Apply(s, Input{Action: action.ButtonA, Type: event.Release})
	assert.Equal(t, Changed, res.Kind)
	assert.Equal(t, uint32(1), s.Step())

	// Releasing again is a no-op.
	res = Apply(s, Input{Action: action.ButtonA, Type: event.Release})
	assert.Equal(t, Unchanged, res.Kind)
}

func TestFieldCycling(t *testing.T) {
	s := newTestState(t)
	assert.Equal(t, FieldMoney, s.Field())

	Apply(s, press(action.DPadRight))
	assert.Equal(t, FieldTrainerID, s.Field())

	Apply(s, press(action.DPadLeft))
	assert.Equal(t, FieldMoney, s.Field())

	Apply(s, press(action.DPadLeft))
	assert.Equal(t, FieldGender, s.Field())

	// Edits only touch the money field.
	res := Apply(s, press(action.DPadUp))
	assert.Equal(t, Unchanged, res.Kind)
	assert.Equal(t, uint32(0), s.Game().Money())
}

func TestNoGameLoaded(t *testing.T) {
	s := NewState(nil, "")

	res := Apply(s, press(action.DPadUp))
	assert.Equal(t, Unchanged, res.Kind)

	res = Apply(s, press(action.DPadRight))
	assert.Equal(t, Changed, res.Kind)
}

func TestApplyIsTotalOverActions(t *testing.T) {
	// Every known action has defined behavior for every event type; nothing
	// errors or panics.
	for a := action.Action(0); a < action.Action(10); a++ {
		if !action.Known(a) {
			break
		}
		for _, typ := range []event.Type{event.Press, event.Release, event.Hold} {
			s := newTestState(t)
			res := Apply(s, Input{Action: a, Type: typ})
			assert.Contains(t, []ResultKind{Unchanged, Changed}, res.Kind,
				"action %s type %s", a, typ)
		}
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := newTestState(t)
	snap := s.Snapshot()

	Apply(s, press(action.DPadUp))
	assert.Equal(t, uint32(1), s.Game().Money())
	assert.Equal(t, uint32(0), snap.Game().Money())
	assert.False(t, s.Equal(snap))
}

func TestSaveRoundTrip(t *testing.T) {
	path := t.TempDir() + "/game.sav"
	g := save.New(save.Emerald)
	require.NoError(t, g.WriteFile(path))

	s := NewState(g, path)
	Apply(s, press(action.DPadUp))
	require.NoError(t, s.Save())
	assert.False(t, s.Dirty())

	loaded, err := save.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), loaded.Money())
}
