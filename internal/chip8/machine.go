package chip8

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// State is the externally visible execution state of the machine.
type State uint8

const (
	// StateRunning executes one instruction per tick.
	StateRunning State = iota
	// StateAwaitingKey is entered by FX0A, ticks only poll the keypad until a
	// key gets pressed.
	StateAwaitingKey
	// StateHalted is entered on a fatal error, no further instruction is
	// executed.
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateAwaitingKey:
		return "awaiting key"
	case StateHalted:
		return "halted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Machine is the complete CHIP-8 machine state and interpreter.
type Machine struct {
	logger *log.Logger
	trace  bool
	random func() byte

	memory [MemorySize]byte
	v      [RegisterCount]byte
	stack  [StackSize]uint16
	sp     uint8
	i      uint16
	pc     uint16
	dt     byte
	st     byte

	keypad  Keypad
	display Display

	state        State
	err          *ExecutionError
	waitRegister uint8  // register receiving the key of FX0A
	waitKeys     uint16 // key state at the last FX0A poll
}

// New returns a new machine with the font loaded and all registers zeroed.
func New(options ...Option) *Machine {
	m := &Machine{
		random: func() byte {
			return byte(rand.Uint32())
		},
	}
	for _, option := range options {
		option(m)
	}

	copy(m.memory[:], font[:])
	m.SoftReset()
	return m
}

// LoadROM copies the program into memory starting at ProgramStart.
// Programs larger than MaxROMSize are rejected without modifying memory.
func (m *Machine) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("rom size %d exceeds maximum of %d bytes: %w", len(rom), MaxROMSize, ErrInputSize)
	}
	copy(m.memory[ProgramStart:], rom)

	if m.logger != nil {
		m.logger.Debug("Loaded ROM", log.Int("size", len(rom)))
	}
	return nil
}

// SoftReset resets PC, I and SP, clears the display and leaves the halted
// state. Program memory, registers and timers are kept.
func (m *Machine) SoftReset() {
	m.pc = ProgramStart
	m.i = 0
	m.sp = 0
	m.display.Clear()
	m.state = StateRunning
	m.err = nil
}

// Tick executes a single instruction and decrements the timers.
// In the awaiting key state no instruction is executed, instead the keypad
// is checked for a newly pressed key. A returned error is an *ExecutionError
// and halts the machine permanently until SoftReset is called.
func (m *Machine) Tick() error {
	switch m.state {
	case StateHalted:
		return m.err

	case StateAwaitingKey:
		m.pollKey()

	default:
		if err := m.step(); err != nil {
			return err
		}
	}

	m.tickTimers()
	return nil
}

// step fetches, decodes and executes one instruction.
func (m *Machine) step() error {
	address := m.pc
	word, err := m.fetch()
	if err != nil {
		return m.halt(address, word, err)
	}

	ins, err := Decode(word)
	if err != nil {
		return m.halt(address, word, err)
	}

	if m.trace && m.logger != nil {
		m.logger.Debug("Executing",
			log.Hex("address", address),
			log.Hex("opcode", word),
			log.Stringer("op", ins.Op))
	}

	if err := handlers[ins.Op](m, ins); err != nil {
		return m.halt(address, word, err)
	}
	return nil
}

// fetch reads the big endian instruction word at PC and advances PC.
func (m *Machine) fetch() (uint16, error) {
	if m.pc > MaxAddress-1 {
		return 0, fmt.Errorf("fetching instruction at %04X: %w", m.pc, ErrOutOfBounds)
	}
	word := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += opcodeSize
	return word, nil
}

func (m *Machine) halt(address, word uint16, err error) error {
	m.state = StateHalted
	m.err = &ExecutionError{
		Address: address,
		Opcode:  word,
		Err:     err,
	}

	if m.logger != nil {
		m.logger.Debug("Machine halted",
			log.Hex("address", address),
			log.Hex("opcode", word),
			log.Err(err))
	}
	return m.err
}

// pollKey completes a pending FX0A once a key transitions to pressed.
func (m *Machine) pollKey() {
	keys := m.keypad.State()
	pressed := keys &^ m.waitKeys
	m.waitKeys = keys

	key, ok := firstPressed(pressed)
	if !ok {
		return
	}
	m.v[m.waitRegister] = key
	m.pc += opcodeSize
	m.state = StateRunning
}

func (m *Machine) tickTimers() {
	if m.dt > 0 {
		m.dt--
	}
	if m.st > 0 {
		m.st--
	}
}

// SetKey marks the hex key as pressed.
func (m *Machine) SetKey(key uint8) {
	if key >= KeyCount {
		m.logInvalidKey(key)
		return
	}
	m.keypad.Press(key)
}

// ClearKey marks the hex key as released.
func (m *Machine) ClearKey(key uint8) {
	if key >= KeyCount {
		m.logInvalidKey(key)
		return
	}
	m.keypad.Release(key)
}

func (m *Machine) logInvalidKey(key uint8) {
	if m.logger != nil {
		m.logger.Debug("Ignoring invalid key", log.Uint8("key", key))
	}
}

// Keypad returns the keypad of the machine, it can be shared with an input
// goroutine.
func (m *Machine) Keypad() *Keypad {
	return &m.keypad
}

// FrameBuffer returns a copy of the packed framebuffer.
func (m *Machine) FrameBuffer() []byte {
	return m.display.Bytes()
}

// Pixel returns whether the display pixel at the given coordinate is set.
func (m *Machine) Pixel(x, y int) bool {
	return m.display.Pixel(x, y)
}

// PC returns the program counter.
func (m *Machine) PC() uint16 { return m.pc }

// I returns the index register.
func (m *Machine) I() uint16 { return m.i }

// SP returns the stack pointer.
func (m *Machine) SP() uint8 { return m.sp }

// Register returns the value of register Vn. Only the low nibble of n is
// used, the same way instruction operands address registers.
func (m *Machine) Register(n uint8) byte { return m.v[n&0xF] }

// DelayTimer returns the delay timer value.
func (m *Machine) DelayTimer() byte { return m.dt }

// SoundTimer returns the sound timer value.
func (m *Machine) SoundTimer() byte { return m.st }

// State returns the execution state.
func (m *Machine) State() State { return m.state }

// Err returns the error that halted the machine or nil.
func (m *Machine) Err() error {
	if m.err == nil {
		return nil
	}
	return m.err
}
