// Command dmgcore runs a Game Boy ROM against the dmgcore emulation core,
// presenting frames through a terminal, sdl2 (when built with -tags sdl2),
// or headless backend.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/dmgcore/dmgcore"
	"github.com/dmgcore/dmgcore/backend/headless"
	"github.com/dmgcore/dmgcore/backend/sdl2"
	"github.com/dmgcore/dmgcore/backend/terminal"
	"github.com/dmgcore/dmgcore/cpu"
	"github.com/dmgcore/dmgcore/display"
	"github.com/dmgcore/dmgcore/memory"
)

const defaultROMPath = "roms/default.gb"

func main() {
	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Usage = "run a Game Boy ROM"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "backend", Value: "terminal", Usage: "terminal, sdl2, or headless"},
		cli.IntFlag{Name: "frames", Value: 60, Usage: "frame budget for --backend headless"},
		cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug, info, warn, or error"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dmgcore:", err)
		os.Exit(exitCodeFor(err))
	}
}

func run(c *cli.Context) error {
	configureLogging(c.String("log-level"))

	romPath := c.Args().First()
	if romPath == "" {
		romPath = defaultROMPath
	}
	if _, err := os.Stat(romPath); err != nil {
		cli.ShowAppHelp(c)
		return fmt.Errorf("rom not found: %s: %w", romPath, err)
	}

	machine, err := dmgcore.LoadROMFile(romPath)
	if err != nil {
		return err
	}

	switch c.String("backend") {
	case "headless":
		return runHeadless(machine, c.Int("frames"))
	case "sdl2":
		return runWithFrontend(machine, newSDL2Frontend)
	default:
		return runWithFrontend(machine, newTerminalFrontend)
	}
}

func configureLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func runHeadless(machine *dmgcore.Machine, frames int) error {
	sink := &headless.Sink{}
	for i := 0; i < frames; i++ {
		if _, err := machine.StepFrame(); err != nil {
			return err
		}
		sink.Present(machine.PPU.FrameBuffer())
	}
	return nil
}

type frontend interface {
	display.DisplaySink
	display.InputSource
	Close()
}

func newTerminalFrontend() (frontend, error) {
	return terminal.New()
}

func newSDL2Frontend() (frontend, error) {
	r, err := sdl2.New("dmgcore")
	if err != nil {
		return nil, err
	}
	return sdl2Adapter{r}, nil
}

// sdl2Adapter satisfies frontend; sdl2.Renderer already implements
// Present/PollInto/Close but is declared separately to keep the sdl2
// package free of a dependency on this command's frontend interface.
type sdl2Adapter struct {
	*sdl2.Renderer
}

func runWithFrontend(machine *dmgcore.Machine, newFrontend func() (frontend, error)) error {
	f, err := newFrontend()
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		if _, err := machine.StepFrame(); err != nil {
			return err
		}
		f.Present(machine.PPU.FrameBuffer())
		f.PollInto(&machine.Bus.Joypad)
	}
}

func exitCodeFor(err error) int {
	var illegal *cpu.IllegalOpcodeError
	var unimplemented *memory.UnimplementedMBCError
	var invalidRTC *memory.InvalidRtcRegisterError
	switch {
	case errors.As(err, &illegal):
		return 2
	case errors.As(err, &unimplemented):
		return 3
	case errors.As(err, &invalidRTC):
		return 4
	default:
		return 1
	}
}
