// Package backend defines the display surface contract the simulation loop
// drives, plus its concrete implementations (terminal, sdl2, headless).
package backend

import (
	"errors"
	"fmt"

	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/input/action"
	"github.com/pokedit/pokedit/pokedit/video"
)

// ErrClosed reports that the surface is gone (window closed, terminal
// detached). The loop treats it as fatal and shuts down; it is not retried.
var ErrClosed = errors.New("display surface closed")

// ErrConfig reports invalid session parameters detected at Init. No partial
// session is created.
var ErrConfig = errors.New("invalid surface configuration")

// Config holds session parameters for a display surface. Dimensions and
// pixel format are fixed by the device display; these knobs are negotiated
// once at Init and immutable afterwards.
type Config struct {
	Title string
	Scale int
	// Keys maps generic key names to actions, overriding the defaults.
	Keys map[string]action.Action
}

// Validate checks the session parameters.
func (c Config) Validate() error {
	if c.Scale < 1 || c.Scale > 8 {
		return fmt.Errorf("%w: scale %d out of range [1,8]", ErrConfig, c.Scale)
	}
	for key, act := range c.Keys {
		if !action.Known(act) {
			return fmt.Errorf("%w: key %q bound to unknown action %d", ErrConfig, key, int(act))
		}
	}
	return nil
}

// Surface is a complete presentation platform: a drawable canvas of fixed
// pixel dimensions plus an input source. Surfaces are responsible for:
//   - presenting composited frame buffers on their specific output
//   - translating platform input events into device events on the Events
//     channel (closing the channel counts as a quit request)
//
// A Surface is exclusively owned by one simulation loop; Cleanup is called
// exactly once on every exit path.
type Surface interface {
	// Init configures the surface. Required before any other call.
	Init(config Config) error

	// Present displays a composited frame buffer.
	Present(fb *video.FrameBuffer) error

	// Events delivers translated input events. The channel is closed when
	// the surface can produce no further input.
	Events() <-chan device.Event

	// Cleanup releases platform resources.
	Cleanup() error
}
