package device

import (
	"bytes"
	"time"

	"github.com/pokedit/pokedit/pokedit/save"
)

// BlinkPeriod is how long the field cursor stays visible or hidden.
const BlinkPeriod = 500 * time.Millisecond

// Field identifies one of the trainer fields shown by the editor. Only
// FieldMoney is editable.
type Field int

const (
	FieldMoney Field = iota
	FieldTrainerID
	FieldTimePlayed
	FieldGender

	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldMoney:
		return "Money"
	case FieldTrainerID:
		return "Trainer ID"
	case FieldTimePlayed:
		return "Time"
	case FieldGender:
		return "Gender"
	}
	return "?"
}

// State is the full snapshot of the simulated device at an instant: the
// loaded save game plus the transient editor state. It is owned by exactly
// one simulation session and never shared across goroutines.
type State struct {
	game    *save.Game
	path    string
	field   Field
	elapsed time.Duration
	step    uint32
	dirty   bool
}

// NewState creates the initial device state. game may be nil when no save
// file is loaded; path is where edits are persisted.
func NewState(game *save.Game, path string) *State {
	return &State{
		game: game,
		path: path,
		step: 1,
	}
}

func (s *State) Game() *save.Game {
	return s.game
}

func (s *State) Path() string {
	return s.path
}

// Field returns the currently selected field.
func (s *State) Field() Field {
	return s.field
}

// Elapsed returns the total simulated time accumulated from ticks.
func (s *State) Elapsed() time.Duration {
	return s.elapsed
}

// Step returns the current money edit step (1, or 10 while A is held).
func (s *State) Step() uint32 {
	return s.step
}

// Dirty reports whether the state holds unsaved edits.
func (s *State) Dirty() bool {
	return s.dirty
}

// BlinkOn reports the cursor blink phase derived from total elapsed time.
func (s *State) BlinkOn() bool {
	return (s.elapsed/BlinkPeriod)%2 == 0
}

// Snapshot returns a deep copy sharing nothing with the receiver.
func (s *State) Snapshot() *State {
	c := *s
	if s.game != nil {
		c.game = s.game.Clone()
	}
	return &c
}

// Equal reports whether two states are observably identical, including the
// underlying save bytes.
func (s *State) Equal(o *State) bool {
	if s.field != o.field || s.elapsed != o.elapsed ||
		s.step != o.step || s.dirty != o.dirty {
		return false
	}
	if (s.game == nil) != (o.game == nil) {
		return false
	}
	if s.game == nil {
		return true
	}
	return bytes.Equal(s.game.Bytes(), o.game.Bytes())
}

// Save persists pending edits to the state's save path. It is a no-op when
// nothing is loaded or nothing changed.
func (s *State) Save() error {
	if s.game == nil || !s.dirty {
		return nil
	}
	if err := s.game.WriteFile(s.path); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
