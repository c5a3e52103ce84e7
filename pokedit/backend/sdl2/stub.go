//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/pokedit/pokedit/pokedit/backend"
	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/video"
)

// Surface stub for when SDL2 is not available.
type Surface struct{}

// New creates a stub SDL2 surface that fails to initialize.
func New() *Surface {
	return &Surface{}
}

func (s *Surface) Init(config backend.Config) error {
	return fmt.Errorf("SDL2 surface not available - build with -tags sdl2 to enable")
}

func (s *Surface) Present(fb *video.FrameBuffer) error {
	return fmt.Errorf("SDL2 surface not available")
}

func (s *Surface) Events() <-chan device.Event {
	return nil
}

func (s *Surface) Cleanup() error {
	return nil
}
