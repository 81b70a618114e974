// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// CreateLogger creates a logger with appropriate settings. Tracing implies
// debug logging. While the terminal UI owns the screen only errors are
// logged unless debugging was requested.
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()

	switch {
	case opts.Debug, opts.Trace:
		cfg.Level = log.DebugLevel
	case opts.Quiet, usesTerminalUI(opts):
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func usesTerminalUI(opts options.Program) bool {
	return !opts.Headless && !opts.Disasm
}

// ParseBreakpoints parses a comma separated list of hex addresses.
// An optional $ or 0x prefix is accepted for every address.
func ParseBreakpoints(s string) (set.Set[uint16], error) {
	breakpoints := set.New[uint16]()
	if strings.TrimSpace(s) == "" {
		return breakpoints, nil
	}

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		field = strings.TrimPrefix(field, "$")
		field = strings.TrimPrefix(strings.ToLower(field), "0x")

		address, err := strconv.ParseUint(field, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint '%s': %w", field, err)
		}
		if address > chip8.MaxAddress {
			return nil, fmt.Errorf("breakpoint $%X exceeds address space", address)
		}
		breakpoints.Add(uint16(address))
	}
	return breakpoints, nil
}
