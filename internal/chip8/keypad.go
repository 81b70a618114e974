package chip8

import "sync/atomic"

// Keypad holds the pressed state of the 16 hex keys as a bitmask.
// It is safe to press and release keys from a different goroutine than the
// one ticking the machine.
type Keypad struct {
	state atomic.Uint32
}

// Press marks the key as pressed. Keys above 0xF are ignored.
func (k *Keypad) Press(key uint8) {
	if key >= KeyCount {
		return
	}
	k.state.Or(1 << key)
}

// Release marks the key as released. Keys above 0xF are ignored.
func (k *Keypad) Release(key uint8) {
	if key >= KeyCount {
		return
	}
	k.state.And(^(uint32(1) << key))
}

// Set replaces the complete key state with the given bitmask.
func (k *Keypad) Set(mask uint16) {
	k.state.Store(uint32(mask))
}

// IsPressed returns whether the key is pressed. Only the low nibble of key
// is used.
func (k *Keypad) IsPressed(key uint8) bool {
	return k.state.Load()&(1<<(key&0xF)) != 0
}

// State returns the key bitmask, bit n is set when key n is pressed.
func (k *Keypad) State() uint16 {
	return uint16(k.state.Load())
}

// firstPressed returns the lowest key index that is set in pressed.
func firstPressed(pressed uint16) (uint8, bool) {
	for key := range uint8(KeyCount) {
		if pressed&(1<<key) != 0 {
			return key, true
		}
	}
	return 0, false
}
