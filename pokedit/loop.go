// Package pokedit wires the device model, renderer and display surface into
// a simulation session, and exposes the headless driver used by the CLI.
package pokedit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pokedit/pokedit/pokedit/backend"
	"github.com/pokedit/pokedit/pokedit/debug"
	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/input/action"
	"github.com/pokedit/pokedit/pokedit/input/event"
	"github.com/pokedit/pokedit/pokedit/render"
	"github.com/pokedit/pokedit/pokedit/timing"
	"github.com/pokedit/pokedit/pokedit/video"
)

// Phase is the simulation loop's position in its state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingEvent
	PhaseProcessing
	PhaseRendering
	PhaseTerminating
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingEvent:
		return "awaiting-event"
	case PhaseProcessing:
		return "processing"
	case PhaseRendering:
		return "rendering"
	case PhaseTerminating:
		return "terminating"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Loop drives one simulation session. It exclusively owns the device state
// and the display surface: a single goroutine runs the whole session, and
// the only suspension point is the wait for "next tick due or next input
// available". Timer ticks and surface input merge into that one wait; when
// both are pending in the same scheduling quantum, the tick is processed
// first to keep the timer cadence stable.
type Loop struct {
	state      *device.State
	surface    backend.Surface
	tickPeriod time.Duration
	phase      Phase
	fb         *video.FrameBuffer
	err        error

	// onProcess is a test hook observing each event in processing order.
	onProcess func(device.Event)
}

// Option configures a Loop.
type Option func(*Loop)

// WithTickPeriod overrides the tick cadence. A zero or negative period
// disables ticks entirely, which scripted runs use to stay deterministic.
func WithTickPeriod(d time.Duration) Option {
	return func(l *Loop) {
		l.tickPeriod = d
	}
}

// NewLoop creates a session over an initialized surface. The loop takes
// ownership of the surface and releases it exactly once when Run returns.
func NewLoop(state *device.State, surface backend.Surface, opts ...Option) *Loop {
	l := &Loop{
		state:      state,
		surface:    surface,
		tickPeriod: timing.DefaultTickPeriod,
		phase:      PhaseIdle,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Phase returns the loop's current state machine position.
func (l *Loop) Phase() Phase {
	return l.phase
}

// Snapshot returns a deep copy of the device state. After Run returns, even
// on a fatal display error, this is the last-known-good state.
func (l *Loop) Snapshot() *device.State {
	return l.state.Snapshot()
}

// Run executes the session until a quit input, surface closure, display
// failure, or context cancellation. Pending edits are saved on a clean
// shutdown; on a display failure the error is returned and the unsaved
// state stays retrievable through Snapshot.
func (l *Loop) Run(ctx context.Context) error {
	tick := timing.NewTicker(l.tickPeriod)
	defer tick.Stop()
	defer func() {
		if err := l.surface.Cleanup(); err != nil {
			slog.Error("surface cleanup failed", "error", err)
		}
	}()

	l.fb = video.NewFrameBuffer()

	// Paint the initial state before the first change arrives.
	if err := l.render(); err != nil {
		l.err = err
		l.phase = PhaseTerminating
	} else {
		l.phase = PhaseAwaitingEvent
	}

	for l.phase != PhaseTerminating {
		select {
		case <-ctx.Done():
			slog.Info("session cancelled")
			l.phase = PhaseTerminating

		case now := <-tick.C():
			l.process(device.Tick{Elapsed: tick.Mark(now)})

		case ev, ok := <-l.surface.Events():
			if !ok {
				slog.Info("input source exhausted")
				l.phase = PhaseTerminating
				break
			}
			// Tick before input within the same scheduling quantum.
			select {
			case now := <-tick.C():
				l.process(device.Tick{Elapsed: tick.Mark(now)})
			default:
			}
			if l.phase != PhaseTerminating {
				l.process(ev)
			}
		}
	}

	if l.err != nil {
		return l.err
	}
	if err := l.state.Save(); err != nil {
		return fmt.Errorf("failed to save on shutdown: %w", err)
	}
	return nil
}

// process runs one event to completion without yielding.
func (l *Loop) process(ev device.Event) {
	l.phase = PhaseProcessing
	if l.onProcess != nil {
		l.onProcess(ev)
	}

	if in, ok := ev.(device.Input); ok && in.Type == event.Press {
		switch in.Action {
		case action.AppQuit:
			slog.Info("quit requested")
			l.phase = PhaseTerminating
			return
		case action.AppSnapshot:
			l.saveSnapshot()
		}
	}

	res := device.Apply(l.state, ev)
	switch res.Kind {
	case device.Rejected:
		slog.Warn("event rejected", "event", fmt.Sprint(ev), "reason", res.Reason)
	case device.Changed:
		if err := l.render(); err != nil {
			l.err = err
			l.phase = PhaseTerminating
			return
		}
	}

	l.phase = PhaseAwaitingEvent
}

// render projects the state onto the framebuffer and presents it. Display
// failures are fatal for the session and are not retried.
func (l *Loop) render() error {
	l.phase = PhaseRendering
	frame := render.Render(l.state)
	frame.Draw(l.fb)
	if err := l.surface.Present(l.fb); err != nil {
		return fmt.Errorf("present failed: %w", err)
	}
	return nil
}

func (l *Loop) saveSnapshot() {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("pokedit_%d.txt", time.Now().Unix()))
	if err := debug.SaveFrameText(l.fb, path); err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("saved snapshot", "path", path)
}
