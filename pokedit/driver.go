package pokedit

import "github.com/pokedit/pokedit/pokedit/device"

// Driver applies a scripted event sequence to a device state without any
// display surface or timer. It exercises the same transition function as a
// live session, so a scripted run and a loop run fed the same events reach
// the same final state.
type Driver struct {
	state *device.State
}

// NewDriver creates a driver owning the given state.
func NewDriver(state *device.State) *Driver {
	return &Driver{state: state}
}

// Apply feeds one event through the device transition function and returns
// its result verbatim. Rejected events leave the state untouched.
func (d *Driver) Apply(ev device.Event) device.Result {
	return device.Apply(d.state, ev)
}

// ApplyAll feeds events in order and reports the results, one per event.
// Processing continues past rejections.
func (d *Driver) ApplyAll(events []device.Event) []device.Result {
	results := make([]device.Result, len(events))
	for i, ev := range events {
		results[i] = device.Apply(d.state, ev)
	}
	return results
}

// Snapshot returns a deep copy of the current state.
func (d *Driver) Snapshot() *device.State {
	return d.state.Snapshot()
}

// Save persists pending edits back to the save file, if any.
func (d *Driver) Save() error {
	return d.state.Save()
}
