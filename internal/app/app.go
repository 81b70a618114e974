// Package app provides the main application helpers for the emulator.
package app

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, "")))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the run configuration.
func PrintInfo(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	switch {
	case opts.Disasm:
		logger.Info("Disassembling CHIP-8 ROM", log.String("file", opts.Input))

	default:
		logger.Info("Running CHIP-8 ROM",
			log.String("file", opts.Input),
			log.Int("hz", opts.Hz),
			log.String("breakpoints", opts.Breakpoints),
		)
		if opts.Ticks > 0 {
			logger.Info("Stopping after tick limit", log.Int("ticks", int(opts.Ticks)))
		}
	}
}
