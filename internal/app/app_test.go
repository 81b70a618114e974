package app

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		opts options.Program
	}{
		{"run", options.Program{Flags: options.Flags{Hz: options.DefaultHz, Ticks: 100}}},
		{"disasm", options.Program{Flags: options.Flags{Disasm: true}}},
		{"quiet", options.Program{Flags: options.Flags{Quiet: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := log.NewTestLogger(t)
			PrintBanner(logger, tt.opts, "1.0.0", "0123456789abcdef", "2026-01-01")
			PrintInfo(logger, tt.opts)
		})
	}
}
