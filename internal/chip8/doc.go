// Package chip8 implements the CHIP-8 virtual machine interpreter.
//
// # Machine Overview
//
// The machine has 4KB of memory (0x000-MaxAddress), sixteen 8-bit registers
// V0-VF, a 16-bit index register I, a program counter, a 16 entry call stack,
// a delay timer, a sound timer, a 16 key hex keypad and a 64x32 monochrome
// display.
//
// # Memory Layout
//
//	0x000-0x04F: built-in hex glyph font (16 glyphs, 5 bytes each)
//	0x050-0x1FF: reserved interpreter area
//	0x200-0xFFF: program space, ROMs are loaded at ProgramStart
//
// # Display
//
// The framebuffer is packed one bit per pixel in column-major order. Each of
// the 8 byte columns holds 32 rows, so the byte for pixel (x, y) lives at
// index (x/8)*ScreenHeight + y and the leftmost pixel of a byte is its most
// significant bit.
//
// # Execution
//
// Tick executes exactly one instruction: the word at PC is fetched, decoded
// into an Instruction and handed to the handler for its Op. Afterwards both
// timers are decremented when nonzero. FX0A suspends execution until a key is
// pressed, in that state Tick only polls the keypad.
//
// Any fatal condition (undecodable word, stack overflow or underflow, out of
// bounds memory or display access) halts the machine. The error is returned
// as an *ExecutionError carrying the instruction address and opcode word, and
// every following Tick returns the same error.
//
// # Usage Example
//
//	m := chip8.New(chip8.WithLogger(logger))
//	if err := m.LoadROM(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for {
//		if err := m.Tick(); err != nil {
//			return err
//		}
//	}
package chip8
