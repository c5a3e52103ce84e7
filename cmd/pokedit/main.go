package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/pokedit/pokedit/pokedit"
	"github.com/pokedit/pokedit/pokedit/device"
	"github.com/pokedit/pokedit/pokedit/save"
)

func main() {
	app := cli.NewApp()
	app.Name = "pokedit"
	app.Description = "Inspect and edit Gen 3 save files from the command line"
	app.Usage = "pokedit [options] <save file> [event...]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "save",
			Usage: "Path to the save file",
		},
		cli.StringFlag{
			Name:  "script",
			Usage: "File with one event per line (tick:16ms, press:up, ...)",
		},
		cli.BoolFlag{
			Name:  "write",
			Usage: "Persist edits back to the save file",
		},
	}
	app.Action = runEditor

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running editor", "error", err)
		os.Exit(1)
	}
}

func runEditor(c *cli.Context) error {
	savePath := c.String("save")
	args := c.Args()
	if savePath == "" {
		if c.NArg() == 0 {
			cli.ShowAppHelp(c)
			return errors.New("no save file provided")
		}
		savePath = args.Get(0)
		args = args[1:]
	}

	events, err := collectEvents(c.String("script"), args)
	if err != nil {
		return err
	}

	game, err := save.LoadFile(savePath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", savePath, err)
	}

	driver := pokedit.NewDriver(device.NewState(game, savePath))

	rejections := 0
	for i, ev := range events {
		res := driver.Apply(ev)
		if res.Kind == device.Rejected {
			rejections++
			fmt.Fprintf(os.Stderr, "event %d (%s) rejected: %s\n", i+1, ev, res.Reason)
		}
	}

	printSummary(driver.Snapshot().Game())

	if c.Bool("write") {
		if err := driver.Save(); err != nil {
			return fmt.Errorf("failed to write %s: %w", savePath, err)
		}
		slog.Info("save written", "path", savePath)
	}

	if rejections > 0 {
		return fmt.Errorf("%d event(s) rejected", rejections)
	}
	return nil
}

// collectEvents parses the script file (if any) followed by command line
// event arguments, in that order.
func collectEvents(scriptPath string, args []string) ([]device.Event, error) {
	var events []device.Event

	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		for n, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			ev, err := device.ParseEvent(line)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", scriptPath, n+1, err)
			}
			events = append(events, ev)
		}
	}

	for _, arg := range args {
		ev, err := device.ParseEvent(arg)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, nil
}

func printSummary(game *save.Game) {
	fmt.Printf("Game:         %s\n", game.Version())

	if gender, err := game.Gender(); err != nil {
		fmt.Printf("Gender:       unknown (%v)\n", err)
	} else {
		fmt.Printf("Gender:       %s\n", gender)
	}

	id := game.TrainerID()
	fmt.Printf("Trainer ID:   %05d (private %05d)\n", id.Public, id.Private)
	fmt.Printf("Time played:  %s\n", game.TimePlayed())
	fmt.Printf("Security key: 0x%08X\n", game.SecurityKey())
	fmt.Printf("Money:        %d\n", game.Money())
}
