// Package display implements the output and input surfaces of the emulator.
package display

import "github.com/retroenv/retrochip8/internal/chip8"

// Screen is a source of monochrome pixels, implemented by the machine.
type Screen interface {
	Pixel(x, y int) bool
}

// Renderer draws frames and feeds user input into the keypad.
type Renderer interface {
	// Render draws the current screen content.
	Render(screen Screen) error
	// Input applies pending key events to the keypad and returns whether
	// the user requested to quit.
	Input(keypad *chip8.Keypad) bool
	// Close releases all resources of the renderer.
	Close() error
}
