// Package terminal implements a display surface on top of tcell, rendering
// the device display with half-block characters so one terminal cell covers
// two vertically stacked pixels.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pokedit/pokedit/pokedit/backend"
	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/input"
	"github.com/pokedit/pokedit/pokedit/input/event"
	"github.com/pokedit/pokedit/pokedit/video"
)

// Surface implements backend.Surface using tcell for terminal rendering.
type Surface struct {
	screen tcell.Screen
	config backend.Config
	events chan device.Event
	done   chan struct{}

	logs    *logBuffer
	prevLog *slog.Logger
}

func New() *Surface {
	return &Surface{}
}

func (t *Surface) Init(config backend.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	t.config = config

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	t.screen = screen
	t.events = make(chan device.Event)
	t.done = make(chan struct{})

	// The screen owns the tty now; capture logs until Cleanup.
	t.logs = newLogBuffer(100)
	t.prevLog = slog.Default()
	slog.SetDefault(slog.New(&logBufferHandler{buffer: t.logs, level: slog.LevelInfo}))

	go t.pump()

	slog.Info("terminal surface initialized", "title", config.Title)
	return nil
}

// pump translates tcell events into device events until the screen is
// finalized, then closes the event channel.
func (t *Surface) pump() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			act, ok := input.Resolve(keyName(ev), t.config.Keys)
			if !ok {
				continue
			}
			// Terminals report key presses only, never releases.
			in := device.Input{Action: act, Type: event.Press, At: time.Now()}
			select {
			case t.events <- in:
			case <-t.done:
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// keyName maps a tcell key event to the generic key names used by the
// shared keymap.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "Up"
	case tcell.KeyDown:
		return "Down"
	case tcell.KeyLeft:
		return "Left"
	case tcell.KeyRight:
		return "Right"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyF9:
		return "F9"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "Space"
		}
		return string(ev.Rune())
	}
	return ""
}

// Present draws the frame buffer using '▀' cells: the foreground colors the
// top pixel, the background the bottom one. Output is clipped to the
// terminal size.
func (t *Surface) Present(fb *video.FrameBuffer) error {
	select {
	case <-t.done:
		return backend.ErrClosed
	default:
	}

	termW, termH := t.screen.Size()

	for y := 0; y < fb.Height(); y += 2 {
		if y/2 >= termH {
			break
		}
		for x := 0; x < fb.Width() && x < termW; x++ {
			top := video.Color(fb.GetPixel(x, y))
			bottom := top
			if y+1 < fb.Height() {
				bottom = video.Color(fb.GetPixel(x, y+1))
			}
			style := tcell.StyleDefault.
				Foreground(cellColor(top)).
				Background(cellColor(bottom))
			t.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}

	t.screen.Show()
	return nil
}

func cellColor(c video.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *Surface) Events() <-chan device.Event {
	return t.events
}

func (t *Surface) Cleanup() error {
	select {
	case <-t.done:
		return nil
	default:
	}
	close(t.done)
	// Fini makes the pending PollEvent return nil, unblocking the pump.
	t.screen.Fini()

	// Restore the previous logger and replay what the session captured.
	slog.SetDefault(t.prevLog)
	t.logs.flush(os.Stderr)

	slog.Info("terminal surface released")
	return nil
}
