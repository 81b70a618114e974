package chip8

// Memory layout and machine dimensions.
const (
	// MemorySize is the size of the address space in bytes.
	MemorySize = 0x1000

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// ProgramStart is the memory address where programs are loaded and
	// execution begins.
	ProgramStart = 0x200

	// MaxROMSize is the largest program that fits into memory.
	MaxROMSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, the carry, borrow and collision flag.
	FlagRegister = 0xF

	// StackSize is the number of stack entries.
	StackSize = 16

	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 16
)

// Display dimensions.
const (
	ScreenWidth  = 64
	ScreenHeight = 32

	// ScreenColumns is the number of 8 pixel byte columns of a row.
	ScreenColumns = ScreenWidth / 8

	// FrameBufferSize is the size of the packed framebuffer in bytes.
	FrameBufferSize = ScreenColumns * ScreenHeight
)

const opcodeSize = 2
