//go:build sdl2

// Package sdl2 implements a display surface in a desktop window using SDL2
// bindings. Building it requires the SDL2 development libraries installed;
// default builds get a stub instead, see build tags (sdl2).
package sdl2

import (
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/pokedit/pokedit/pokedit/backend"
	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/input"
	"github.com/pokedit/pokedit/pokedit/input/event"
	"github.com/pokedit/pokedit/pokedit/video"
)

// pollInterval is how often the window's event queue is drained.
const pollInterval = 10 * time.Millisecond

// Surface implements backend.Surface in an SDL2 window.
type Surface struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	config   backend.Config
	events   chan device.Event
	done     chan struct{}
}

func New() *Surface {
	return &Surface{}
}

func (s *Surface) Init(config backend.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(video.FramebufferWidth*config.Scale),
		int32(video.FramebufferHeight*config.Scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %v", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %v", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(video.FramebufferWidth),
		int32(video.FramebufferHeight),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %v", err)
	}
	s.texture = texture

	s.events = make(chan device.Event)
	s.done = make(chan struct{})
	go s.pump()

	slog.Info("SDL2 surface initialized", "scale", config.Scale)
	return nil
}

// pump drains the SDL event queue on a short cadence and translates window
// events into device events.
func (s *Surface) pump() {
	defer close(s.events)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
		}

		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			in, ok := s.translate(ev)
			if !ok {
				continue
			}
			select {
			case s.events <- in:
			case <-s.done:
				return
			}
		}
	}
}

func (s *Surface) translate(ev sdl.Event) (device.Input, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		act, _ := input.Resolve("Escape", s.config.Keys)
		return device.Input{Action: act, Type: event.Press, At: time.Now()}, true

	case *sdl.KeyboardEvent:
		act, ok := input.Resolve(keyName(e.Keysym.Sym), s.config.Keys)
		if !ok {
			return device.Input{}, false
		}
		typ := event.Press
		switch {
		case e.Type == sdl.KEYUP:
			typ = event.Release
		case e.Repeat != 0:
			typ = event.Hold
		}
		return device.Input{Action: act, Type: typ, At: time.Now()}, true
	}
	return device.Input{}, false
}

// keyName maps an SDL keycode to the generic key names used by the shared
// keymap.
func keyName(key sdl.Keycode) string {
	switch key {
	case sdl.K_UP:
		return "Up"
	case sdl.K_DOWN:
		return "Down"
	case sdl.K_LEFT:
		return "Left"
	case sdl.K_RIGHT:
		return "Right"
	case sdl.K_SPACE:
		return "Space"
	case sdl.K_RETURN:
		return "Enter"
	case sdl.K_ESCAPE:
		return "Escape"
	case sdl.K_LSHIFT, sdl.K_RSHIFT:
		return "Shift"
	case sdl.K_F9:
		return "F9"
	}
	if key >= sdl.K_a && key <= sdl.K_z {
		return string(rune('a' + (key - sdl.K_a)))
	}
	return ""
}

// Present uploads the frame buffer into the streaming texture and draws it
// scaled to the window.
func (s *Surface) Present(fb *video.FrameBuffer) error {
	select {
	case <-s.done:
		return backend.ErrClosed
	default:
	}

	frameData := fb.ToSlice()
	pixels := make([]byte, len(frameData)*4)

	// ABGR byte order for little-endian RGBA8888.
	for i, px := range frameData {
		r, g, b, a := video.Color(px).RGBA()
		pixels[i*4] = a
		pixels[i*4+1] = b
		pixels[i*4+2] = g
		pixels[i*4+3] = r
	}

	if err := s.texture.Update(nil, unsafe.Pointer(&pixels[0]), fb.Width()*4); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	s.renderer.SetDrawColor(0, 0, 0, 255)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

func (s *Surface) Events() <-chan device.Event {
	return s.events
}

func (s *Surface) Cleanup() error {
	select {
	case <-s.done:
		return nil
	default:
	}
	close(s.done)

	slog.Info("cleaning up SDL2 surface")
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	return nil
}
