package chip8

import "fmt"

// memoryRange returns the memory slice [address, address+length) after
// checking that the whole range is inside the address space.
func (m *Machine) memoryRange(address uint16, length int) ([]byte, error) {
	end := int(address) + length
	if end > MemorySize {
		return nil, fmt.Errorf("accessing range %04X-%04X: %w", address, end-1, ErrOutOfBounds)
	}
	return m.memory[address:end], nil
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("reading address %04X: %w", address, ErrOutOfBounds)
	}
	return m.memory[address], nil
}
