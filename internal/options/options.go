// Package options contains the program options.
package options

import "time"

// DefaultHz is the default instruction rate.
const DefaultHz = 500

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"rom" usage:"ROM file to run (.ch8, .rom, .zip, .gz, .7z)"`
}

// Flags contains behavior options.
type Flags struct {
	Hz          int    `flag:"hz" usage:"instructions executed per second" default:"500"`
	Ticks       uint64 `flag:"ticks" usage:"stop after the given number of ticks, 0 runs until stopped"`
	Breakpoints string `flag:"break" usage:"comma separated hex addresses to stop at, e.g. 2a4,300"`
	Seed        uint64 `flag:"seed" usage:"seed for the random number generator, 0 uses a random seed"`
	Headless    bool   `flag:"headless" usage:"run without terminal UI and print the final frame"`
	Disasm      bool   `flag:"disasm" usage:"print a disassembly listing of the ROM instead of running it"`
	Trace       bool   `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// TickInterval returns the duration between two ticks for the configured
// instruction rate.
func (p Program) TickInterval() time.Duration {
	hz := p.Hz
	if hz <= 0 {
		hz = DefaultHz
	}
	return time.Second / time.Duration(hz)
}
