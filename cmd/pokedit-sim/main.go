package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"github.com/pokedit/pokedit/pokedit"
	"github.com/pokedit/pokedit/pokedit/backend"
	"github.com/pokedit/pokedit/pokedit/backend/headless"
	"github.com/pokedit/pokedit/pokedit/backend/sdl2"
	"github.com/pokedit/pokedit/pokedit/backend/terminal"
	"github.com/pokedit/pokedit/pokedit/config"
	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/save"
)

func main() {
	app := cli.NewApp()
	app.Name = "pokedit-sim"
	app.Description = "A simulated handheld device for editing Gen 3 save files"
	app.Usage = "pokedit-sim [options] <save file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "save",
			Usage: "Path to the save file",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to the config file (default: user config directory)",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal, sdl2 or headless",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scale factor (sdl2 backend)",
		},
		cli.DurationFlag{
			Name:  "tick",
			Usage: "Tick period (0 disables ticks)",
		},
		cli.StringFlag{
			Name:  "script",
			Usage: "Event script for the headless backend, one event per line",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "no-backup",
			Usage: "Skip the .bkp copy made before editing",
		},
	}
	app.Action = runSimulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running simulator", "error", err)
		os.Exit(1)
	}
}

func runSimulator(c *cli.Context) error {
	savePath := c.String("save")
	if savePath == "" {
		if c.NArg() == 0 {
			cli.ShowAppHelp(c)
			return errors.New("no save file provided")
		}
		savePath = c.Args().Get(0)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("scale") {
		cfg.Scale = c.Int("scale")
	}
	if c.IsSet("tick") {
		cfg.TickPeriod = c.Duration("tick")
	}

	game, err := save.LoadFile(savePath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", savePath, err)
	}

	if !c.Bool("no-backup") {
		if err := backupSave(savePath); err != nil {
			return err
		}
	}

	surface, err := createSurface(c, cfg, savePath)
	if err != nil {
		return err
	}

	surfaceCfg := backend.Config{
		Title: "pokedit",
		Scale: cfg.Scale,
		Keys:  cfg.Keys,
	}
	if err := surface.Init(surfaceCfg); err != nil {
		return fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := device.NewState(game, savePath)
	loop := pokedit.NewLoop(state, surface, pokedit.WithTickPeriod(cfg.TickPeriod))

	slog.Info("starting session",
		"save", savePath,
		"game", game.Version().String(),
		"backend", cfg.Backend)

	return loop.Run(ctx)
}

func createSurface(c *cli.Context, cfg *config.Config, savePath string) (backend.Surface, error) {
	switch cfg.Backend {
	case "terminal":
		return terminal.New(), nil

	case "sdl2":
		return sdl2.New(), nil

	case "headless":
		script, err := loadScript(c.String("script"))
		if err != nil {
			return nil, err
		}
		snapCfg, err := headless.CreateSnapshotConfig(
			c.Int("snapshot-interval"), c.String("snapshot-dir"), savePath)
		if err != nil {
			return nil, err
		}
		return headless.New(script, snapCfg), nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// loadScript parses a headless event script, one event per line. Blank lines
// and # comments are skipped.
func loadScript(path string) ([]headless.Step, error) {
	if path == "" {
		return nil, errors.New("headless backend requires --script")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	var steps []headless.Step
	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := device.ParseEvent(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, n+1, err)
		}
		steps = append(steps, headless.Step{Event: ev})
	}
	return steps, nil
}

// backupSave copies the save file next to itself with a .bkp suffix before
// any edit can touch it.
func backupSave(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read save for backup: %w", err)
	}
	backupPath := path + ".bkp"
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	slog.Info("backup created", "path", backupPath)
	return nil
}
