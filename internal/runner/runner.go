// Package runner drives a machine in real time from a loaded ROM.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// FrameRate is the number of frames rendered per second.
const FrameRate = 60

// Runner loads ROMs and executes them.
type Runner struct {
	logger      *log.Logger
	loader      *loader.Loader
	newTerminal func(*log.Logger) (display.Renderer, error)
}

// New creates a new runner.
func New(logger *log.Logger) *Runner {
	return &Runner{
		logger: logger,
		loader: loader.New(),
		newTerminal: func(logger *log.Logger) (display.Renderer, error) {
			return display.NewTerminal(logger)
		},
	}
}

// Run loads the ROM configured in opts and either prints its disassembly or
// executes it. Headless runs write the final frame to out.
func (r *Runner) Run(ctx context.Context, opts options.Program, out io.Writer) error {
	rom, err := r.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	r.logger.Info("Loaded ROM",
		log.String("name", rom.Name),
		log.Int("size", len(rom.Data)),
		log.Hex("hash", rom.Hash))

	if opts.Disasm {
		if err := disasm.Listing(out, rom.Data); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	breakpoints, err := config.ParseBreakpoints(opts.Breakpoints)
	if err != nil {
		return fmt.Errorf("parsing breakpoints: %w", err)
	}

	m, err := r.createMachine(opts, rom.Data)
	if err != nil {
		return err
	}

	if opts.Headless {
		runErr := r.execute(ctx, m, nil, opts, breakpoints)
		if err := display.NewText(out).Render(m); err != nil {
			return fmt.Errorf("rendering final frame: %w", err)
		}
		return runErr
	}

	renderer, err := r.newTerminal(r.logger)
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	runErr := r.execute(ctx, m, renderer, opts, breakpoints)
	if err := renderer.Close(); err != nil {
		r.logger.Error("Closing terminal failed", log.Err(err))
	}
	return runErr
}

func (r *Runner) createMachine(opts options.Program, rom []byte) (*chip8.Machine, error) {
	machineOptions := []chip8.Option{
		chip8.WithLogger(r.logger),
		chip8.WithTrace(opts.Trace),
	}
	if opts.Seed != 0 {
		machineOptions = append(machineOptions, chip8.WithSeed(opts.Seed))
	}

	m := chip8.New(machineOptions...)
	if err := m.LoadROM(rom); err != nil {
		return nil, fmt.Errorf("loading rom into memory: %w", err)
	}
	return m, nil
}

// execute ticks the machine at the configured rate and renders frames until
// the context is canceled, the tick limit or a breakpoint is reached, the
// user quits or the machine halts.
func (r *Runner) execute(ctx context.Context, m *chip8.Machine, renderer display.Renderer,
	opts options.Program, breakpoints set.Set[uint16]) error {

	ticker := time.NewTicker(opts.TickInterval())
	defer ticker.Stop()
	frames := time.NewTicker(time.Second / FrameRate)
	defer frames.Stop()

	var ticks uint64
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running machine: %w", ctx.Err())

		case <-frames.C:
			if renderer == nil {
				continue
			}
			if renderer.Input(m.Keypad()) {
				r.logger.Info("Quit requested", log.Int("ticks", int(ticks)))
				return nil
			}
			if err := renderer.Render(m); err != nil {
				return fmt.Errorf("rendering frame: %w", err)
			}

		case <-ticker.C:
			if m.State() == chip8.StateRunning && breakpoints.Contains(m.PC()) {
				r.logger.Info("Breakpoint reached",
					log.Hex("address", m.PC()),
					log.Int("ticks", int(ticks)))
				return nil
			}

			if err := m.Tick(); err != nil {
				r.reportHalt(m, err)
				return fmt.Errorf("running machine: %w", err)
			}

			ticks++
			if opts.Ticks > 0 && ticks >= opts.Ticks {
				r.logger.Debug("Tick limit reached", log.Int("ticks", int(ticks)))
				return nil
			}
		}
	}
}

func (r *Runner) reportHalt(m *chip8.Machine, err error) {
	var execErr *chip8.ExecutionError
	if !errors.As(err, &execErr) {
		r.logger.Error("Machine stopped", log.Err(err))
		return
	}

	r.logger.Error("Execution halted",
		log.Hex("address", execErr.Address),
		log.Hex("opcode", execErr.Opcode),
		log.String("instruction", disasm.Format(execErr.Opcode)),
		log.Hex("i", m.I()),
		log.Uint8("sp", m.SP()),
		log.Err(execErr.Kind()))
}
