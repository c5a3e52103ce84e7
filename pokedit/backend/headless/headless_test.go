package headless

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pokedit/pokedit/pokedit/backend"
	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/input/action"
	"github.com/pokedit/pokedit/pokedit/input/event"
	"github.com/pokedit/pokedit/pokedit/video"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptDelivery(t *testing.T) {
	script := Script(
		device.Input{Action: action.DPadUp, Type: event.Press},
		device.Input{Action: action.AppQuit, Type: event.Press},
	)
	s := New(script, SnapshotConfig{})
	require.NoError(t, s.Init(backend.Config{Scale: 1}))
	defer s.Cleanup()

	var got []device.Event
	for ev := range s.Events() {
		got = append(got, ev)
	}
	require.Len(t, got, 2)
	assert.Equal(t, device.Input{Action: action.DPadUp, Type: event.Press}, got[0])
}

func TestEventsChannelClosesAfterScript(t *testing.T) {
	s := New(nil, SnapshotConfig{})
	require.NoError(t, s.Init(backend.Config{Scale: 1}))
	defer s.Cleanup()

	_, ok := <-s.Events()
	assert.False(t, ok, "empty script closes the channel immediately")
}

func TestPresentCountsFrames(t *testing.T) {
	s := New(nil, SnapshotConfig{})
	require.NoError(t, s.Init(backend.Config{Scale: 1}))
	defer s.Cleanup()

	fb := video.NewFrameBuffer()
	require.NoError(t, s.Present(fb))
	require.NoError(t, s.Present(fb))
	assert.Equal(t, 2, s.FrameCount())
}

func TestSnapshotSaving(t *testing.T) {
	dir := t.TempDir()
	s := New(nil, SnapshotConfig{Enabled: true, Interval: 2, Directory: dir, Name: "run"})
	require.NoError(t, s.Init(backend.Config{Scale: 1}))

	fb := video.NewFrameBuffer()
	require.NoError(t, s.Present(fb))
	require.NoError(t, s.Present(fb))
	require.NoError(t, s.Present(fb))
	require.NoError(t, s.Cleanup())

	// One periodic snapshot at frame 2, one final snapshot at frame 3.
	for _, name := range []string{"run_frame_2.txt", "run_frame_3.txt"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

// Snapshots enabled with no interval must behave as disabled, not divide
// by zero.
func TestSnapshotZeroInterval(t *testing.T) {
	dir := t.TempDir()
	s := New(nil, SnapshotConfig{Enabled: true, Interval: 0, Directory: dir, Name: "run"})
	require.NoError(t, s.Init(backend.Config{Scale: 1}))

	fb := video.NewFrameBuffer()
	require.NoError(t, s.Present(fb))
	require.NoError(t, s.Cleanup())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateSnapshotConfig(t *testing.T) {
	cfg, err := CreateSnapshotConfig(0, "", "whatever.sav")
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)

	dir := t.TempDir()
	cfg, err = CreateSnapshotConfig(5, dir, "/saves/emerald.sav")
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, dir, cfg.Directory)
	assert.Equal(t, "emerald", cfg.Name)
}

func TestInitRejectsBadConfig(t *testing.T) {
	s := New(nil, SnapshotConfig{})
	err := s.Init(backend.Config{Scale: 0})
	assert.ErrorIs(t, err, backend.ErrConfig)
}
