// Package headless implements a display surface with no output device, fed
// by a pre-recorded input script. It backs scripted simulator runs and the
// loop's tests.
package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pokedit/pokedit/pokedit/backend"
	"github.com/pokedit/pokedit/pokedit/debug"
	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/video"
)

// Step is one scripted input: the event to deliver and how long to wait
// after the previous step before delivering it.
type Step struct {
	After time.Duration
	Event device.Event
}

// SnapshotConfig holds configuration for frame snapshots.
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N presented frames
	Directory string // Directory to save snapshots
	Name      string // Base name for snapshot filenames
}

// Surface implements backend.Surface for automated runs and batch
// processing.
type Surface struct {
	config         backend.Config
	script         []Step
	events         chan device.Event
	done           chan struct{}
	frameCount     int
	snapshotConfig SnapshotConfig
	lastFrame      *video.FrameBuffer
}

func New(script []Step, snapshotConfig SnapshotConfig) *Surface {
	return &Surface{
		script:         script,
		snapshotConfig: snapshotConfig,
	}
}

// Script builds an immediate-delivery script from parsed events.
func Script(events ...device.Event) []Step {
	steps := make([]Step, len(events))
	for i, ev := range events {
		steps[i] = Step{Event: ev}
	}
	return steps
}

func (h *Surface) Init(config backend.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	h.config = config
	h.events = make(chan device.Event)
	h.done = make(chan struct{})

	slog.Info("running headless",
		"script_steps", len(h.script),
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	go h.feed()
	return nil
}

// feed replays the script in order, honoring per-step delays, then closes
// the event channel so the loop knows input is exhausted.
func (h *Surface) feed() {
	defer close(h.events)
	for _, step := range h.script {
		if step.After > 0 {
			select {
			case <-time.After(step.After):
			case <-h.done:
				return
			}
		}
		select {
		case h.events <- step.Event:
		case <-h.done:
			return
		}
	}
}

func (h *Surface) Events() <-chan device.Event {
	return h.events
}

// Present counts the frame and saves a snapshot when due.
func (h *Surface) Present(fb *video.FrameBuffer) error {
	h.frameCount++
	h.lastFrame = fb

	if h.snapshotDue() {
		h.saveSnapshot(fb)
	}

	if h.frameCount%10 == 0 {
		slog.Info("frame progress", "presented", h.frameCount)
	}
	return nil
}

// snapshotDue reports whether the frame just presented should be saved. The
// interval must be positive even when snapshots are enabled.
func (h *Surface) snapshotDue() bool {
	return h.snapshotConfig.Enabled && h.snapshotConfig.Interval > 0 &&
		h.frameCount%h.snapshotConfig.Interval == 0
}

// FrameCount reports how many frames have been presented.
func (h *Surface) FrameCount() int {
	return h.frameCount
}

func (h *Surface) Cleanup() error {
	select {
	case <-h.done:
	default:
		close(h.done)
	}

	// Save a final snapshot if one wasn't just written.
	if h.snapshotConfig.Enabled && h.snapshotConfig.Interval > 0 &&
		h.lastFrame != nil && !h.snapshotDue() {
		h.saveSnapshot(h.lastFrame)
	}

	slog.Info("headless run completed", "frames", h.frameCount)
	return nil
}

func (h *Surface) saveSnapshot(fb *video.FrameBuffer) {
	baseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.Name, h.frameCount)
	if err := debug.SaveFrameTextToDir(fb, baseName, h.snapshotConfig.Directory); err != nil {
		slog.Error("failed to save snapshot", "frame", h.frameCount, "error", err)
	}
}

// CreateSnapshotConfig builds a snapshot configuration from CLI parameters,
// creating the target directory as needed.
func CreateSnapshotConfig(interval int, directory, savePath string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "pokedit-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %v", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %v", err)
		}
		config.Directory = directory
	}

	config.Name = filepath.Base(savePath)
	config.Name = strings.TrimSuffix(config.Name, filepath.Ext(config.Name))
	if config.Name == "" || config.Name == "." {
		config.Name = "pokedit"
	}

	return config, nil
}
