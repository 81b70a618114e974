package chip8

import "fmt"

// Display is the packed 64x32 monochrome framebuffer.
//
// Bytes are stored column-major: index = column*ScreenHeight + row, where a
// column spans 8 horizontal pixels and bit 7 is the leftmost pixel.
type Display struct {
	buf [FrameBufferSize]byte
}

// Clear turns off all pixels.
func (d *Display) Clear() {
	d.buf = [FrameBufferSize]byte{}
}

// Bytes returns a copy of the packed framebuffer.
func (d *Display) Bytes() []byte {
	b := make([]byte, FrameBufferSize)
	copy(b, d.buf[:])
	return b
}

// Pixel returns whether the pixel at the given coordinate is set.
// Coordinates outside of the screen return false.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	b := d.buf[index(x/8, y)]
	return b&(0x80>>(x%8)) != 0
}

// Draw XORs the sprite rows onto the framebuffer with the top left corner at
// pixel (x, y) and returns whether any set pixel was turned off.
// The screen wraps horizontally. Rows below the bottom of the screen return
// ErrOutOfBounds before anything is drawn.
func (d *Display) Draw(x, y uint8, sprite []byte) (bool, error) {
	if last := int(y) + len(sprite) - 1; len(sprite) > 0 && last >= ScreenHeight {
		return false, fmt.Errorf("sprite row %d exceeds display height %d: %w", last, ScreenHeight, ErrOutOfBounds)
	}

	column := int(x/8) % ScreenColumns
	overflowColumn := (column + 1) % ScreenColumns
	remainder := x % 8

	var collision bool
	for offset, row := range sprite {
		rowIndex := int(y) + offset

		if d.blit(index(column, rowIndex), row>>remainder) {
			collision = true
		}
		if remainder == 0 {
			continue
		}
		if d.blit(index(overflowColumn, rowIndex), row<<(8-remainder)) {
			collision = true
		}
	}
	return collision, nil
}

// blit XORs the bits into the byte at the given index and reports whether a
// previously set bit was hit.
func (d *Display) blit(idx int, bits byte) bool {
	collision := d.buf[idx]&bits != 0
	d.buf[idx] ^= bits
	return collision
}

func index(column, row int) int {
	return column*ScreenHeight + row
}
