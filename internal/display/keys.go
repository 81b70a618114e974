package display

import "github.com/retroenv/retrochip8/internal/chip8"

// holdFrames is the number of frames a key stays pressed after a key event.
// Terminals only report key presses, the release is simulated.
const holdFrames = 6

// keyMap maps the left side of a QWERTY keyboard to the hex keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keyMap = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// mapKey returns the keypad key for a keyboard character.
func mapKey(ch rune) (uint8, bool) {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	key, ok := keyMap[ch]
	return key, ok
}

// keyHolder keeps keys pressed for a number of frames after each press.
type keyHolder struct {
	frames [chip8.KeyCount]int
}

// press starts or restarts the hold period of the key.
func (h *keyHolder) press(key uint8) {
	h.frames[key&0xF] = holdFrames
}

// apply writes the held keys to the keypad and advances the hold periods
// by one frame.
func (h *keyHolder) apply(keypad *chip8.Keypad) {
	var mask uint16
	for key, remaining := range h.frames {
		if remaining == 0 {
			continue
		}
		mask |= 1 << key
		h.frames[key]--
	}
	keypad.Set(mask)
}
