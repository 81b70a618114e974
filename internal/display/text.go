package display

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
)

const (
	pixelOn  = '#'
	pixelOff = '.'
)

// Text renders frames as rows of characters to a writer.
type Text struct {
	w io.Writer
}

// NewText returns a text renderer that writes to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// Render writes one line per screen row.
func (t *Text) Render(screen Screen) error {
	buf := bufio.NewWriter(t.w)
	for y := range chip8.ScreenHeight {
		for x := range chip8.ScreenWidth {
			ch := byte(pixelOff)
			if screen.Pixel(x, y) {
				ch = pixelOn
			}
			if err := buf.WriteByte(ch); err != nil {
				return fmt.Errorf("writing pixel: %w", err)
			}
		}
		if err := buf.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing line end: %w", err)
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing frame: %w", err)
	}
	return nil
}

// Input does nothing, the text renderer has no input source.
func (t *Text) Input(*chip8.Keypad) bool {
	return false
}

// Close does nothing.
func (t *Text) Close() error {
	return nil
}
