package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// execute runs a single instruction word on the machine at its current PC.
func execute(t *testing.T, m *Machine, word uint16) {
	t.Helper()
	m.memory[m.pc] = byte(word >> 8)
	m.memory[m.pc+1] = byte(word)
	assert.NoError(t, m.Tick())
}

func TestAddCarry(t *testing.T) {
	for x := 0; x < 256; x += 5 {
		for y := 0; y < 256; y += 7 {
			m := New()
			m.v[0], m.v[1] = byte(x), byte(y)
			execute(t, m, 0x8014)

			assert.Equal(t, byte((x+y)%256), m.v[0])
			assert.Equal(t, boolToFlag(x+y > 255), m.v[FlagRegister])
		}
	}
}

func TestAddCarryScenario(t *testing.T) {
	m := New()
	m.v[0], m.v[1] = 5, 10
	execute(t, m, 0x8014)
	assert.Equal(t, byte(15), m.v[0])
	assert.Equal(t, byte(0), m.v[FlagRegister])

	m.v[0], m.v[1] = 250, 10
	execute(t, m, 0x8014)
	assert.Equal(t, byte(4), m.v[0])
	assert.Equal(t, byte(1), m.v[FlagRegister])
}

func TestSub(t *testing.T) {
	for x := 0; x < 256; x += 3 {
		for y := 0; y < 256; y += 11 {
			m := New()
			m.v[2], m.v[3] = byte(x), byte(y)
			execute(t, m, 0x8235)
			assert.Equal(t, byte(x-y), m.v[2])
			assert.Equal(t, boolToFlag(x >= y), m.v[FlagRegister])

			m.v[2], m.v[3] = byte(x), byte(y)
			execute(t, m, 0x8237)
			assert.Equal(t, byte(y-x), m.v[2])
			assert.Equal(t, boolToFlag(y >= x), m.v[FlagRegister])
		}
	}
}

func TestFlagRegisterAsOperand(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		vf   byte
		vy   byte
		want byte
	}{
		{"sub no borrow", 0x8F15, 10, 3, 1},
		{"sub borrow", 0x8F15, 3, 10, 0},
		{"subn no borrow", 0x8F17, 3, 10, 1},
		{"add carry", 0x8F14, 200, 100, 1},
		{"add no carry", 0x8F14, 1, 2, 0},
		{"shr", 0x8F16, 0x03, 0, 1},
		{"shl", 0x8F1E, 0x40, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.v[FlagRegister], m.v[1] = tt.vf, tt.vy
			execute(t, m, tt.word)
			assert.Equal(t, tt.want, m.v[FlagRegister])
		})
	}
}

func TestShift(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		value  byte
		want   byte
		wantVF byte
	}{
		{"shr odd", 0x8506, 0x81, 0x40, 1},
		{"shr even", 0x8506, 0x80, 0x40, 0},
		{"shr one", 0x8506, 0x01, 0x00, 1},
		{"shl high bit", 0x850E, 0x81, 0x02, 1},
		{"shl no high bit", 0x850E, 0x41, 0x82, 0},
		{"shl only high bit", 0x850E, 0x80, 0x00, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.v[5] = tt.value
			m.v[0] = 0x55
			execute(t, m, tt.word)
			assert.Equal(t, tt.want, m.v[5])
			assert.Equal(t, tt.wantVF, m.v[FlagRegister])
		})
	}
}

func TestRegisterOperations(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		x, y byte
		want byte
	}{
		{"ld byte", 0x6142, 0, 0, 0x42},
		{"add byte", 0x7105, 3, 0, 8},
		{"add byte wraps", 0x7110, 0xF8, 0, 0x08},
		{"ld reg", 0x8120, 1, 9, 9},
		{"or", 0x8121, 0xF0, 0x0F, 0xFF},
		{"and", 0x8122, 0xF3, 0x3F, 0x33},
		{"xor", 0x8123, 0xFF, 0x0F, 0xF0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.v[1], m.v[2] = tt.x, tt.y
			m.v[FlagRegister] = 0x77
			execute(t, m, tt.word)
			assert.Equal(t, tt.want, m.v[1])
			assert.Equal(t, byte(0x77), m.v[FlagRegister])
		})
	}
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		x, y byte
		skip bool
	}{
		{"se byte equal", 0x3142, 0x42, 0, true},
		{"se byte different", 0x3142, 0x41, 0, false},
		{"sne byte equal", 0x4142, 0x42, 0, false},
		{"sne byte different", 0x4142, 0x41, 0, true},
		{"se reg equal", 0x5120, 7, 7, true},
		{"se reg different", 0x5120, 7, 8, false},
		{"sne reg equal", 0x9120, 7, 7, false},
		{"sne reg different", 0x9120, 7, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.v[1], m.v[2] = tt.x, tt.y
			execute(t, m, tt.word)

			want := uint16(ProgramStart + 2)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, m.PC())
		})
	}
}

func TestJumps(t *testing.T) {
	m := New()
	execute(t, m, 0x1456)
	assert.Equal(t, uint16(0x456), m.PC())

	m.v[0] = 0x10
	execute(t, m, 0xB300)
	assert.Equal(t, uint16(0x310), m.PC())
}

func TestCallReturn(t *testing.T) {
	m := newTestMachine(t, 0x2400) // CALL $400
	m.memory[0x400] = 0x00
	m.memory[0x401] = 0xEE

	assert.NoError(t, m.Tick())
	assert.Equal(t, uint16(0x400), m.PC())
	assert.Equal(t, uint8(1), m.SP())

	assert.NoError(t, m.Tick())
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
	assert.Equal(t, uint8(0), m.SP())
}

func TestStackOverflow(t *testing.T) {
	m := newTestMachine(t, 0x2200) // CALL $200, recursing forever

	for range StackSize - 1 {
		assert.NoError(t, m.Tick())
	}
	assert.Equal(t, uint8(StackSize-1), m.SP())

	err := m.Tick()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, StateHalted, m.State())
	assert.Equal(t, uint8(StackSize-1), m.SP())
}

func TestStackUnderflow(t *testing.T) {
	m := newTestMachine(t, 0x00EE)

	err := m.Tick()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, StateHalted, m.State())
}

func TestIndexOperations(t *testing.T) {
	m := New()
	execute(t, m, 0xA123)
	assert.Equal(t, uint16(0x123), m.I())

	m.v[4] = 0xFF
	execute(t, m, 0xF41E)
	assert.Equal(t, uint16(0x222), m.I())

	m.v[4] = 0xA
	execute(t, m, 0xF429)
	assert.Equal(t, uint16(0xA*5), m.I())
	assert.Equal(t, byte(0xF0), m.memory[m.I()])
}

func TestIndexAddOverflow(t *testing.T) {
	m := New()
	m.i = 0xFF00
	m.v[1] = 0xFF
	execute(t, m, 0xF11E)
	assert.Equal(t, uint16(0xFFFF), m.I())

	// keep adding to I until it would leave the 16 bit range
	m = newTestMachine(t,
		0xAFFF, // LD I, $FFF
		0x60FF, // LD V0, $FF
		0xF01E, // ADD I, V0
		0x1204, // JP $204
	)
	fontBefore := append([]byte(nil), m.memory[:len(font)]...)

	var err error
	for range 1000 {
		if err = m.Tick(); err != nil {
			break
		}
	}

	assert.True(t, errors.Is(err, ErrOutOfBounds))
	var execErr *ExecutionError
	assert.True(t, errors.As(err, &execErr))
	assert.Equal(t, uint16(0xF01E), execErr.Opcode)
	assert.Equal(t, uint16(0x204), execErr.Address)
	assert.Equal(t, uint16(0xFFF+240*0xFF), m.I())
	assert.Equal(t, StateHalted, m.State())
	assert.Equal(t, fontBefore, m.memory[:len(font)])
}

func TestRandom(t *testing.T) {
	m := New(WithRandom(func() byte { return 0xAB }))
	execute(t, m, 0xC30F)
	assert.Equal(t, byte(0x0B), m.v[3])

	a := New(WithSeed(42))
	b := New(WithSeed(42))
	execute(t, a, 0xC3FF)
	execute(t, b, 0xC3FF)
	assert.Equal(t, a.v[3], b.v[3])
}

func TestTimerOperations(t *testing.T) {
	m := New()
	m.v[1] = 10
	execute(t, m, 0xF115)
	assert.Equal(t, byte(9), m.DelayTimer())

	execute(t, m, 0xF207)
	assert.Equal(t, byte(9), m.v[2])
	assert.Equal(t, byte(8), m.DelayTimer())

	execute(t, m, 0xF118)
	assert.Equal(t, byte(9), m.SoundTimer())
}

func TestBCD(t *testing.T) {
	tests := []struct {
		value byte
		want  []byte
	}{
		{255, []byte{2, 5, 5}},
		{128, []byte{1, 2, 8}},
		{42, []byte{0, 4, 2}},
		{7, []byte{0, 0, 7}},
		{0, []byte{0, 0, 0}},
	}

	for _, tt := range tests {
		m := New()
		m.v[6] = tt.value
		m.i = 0x300
		execute(t, m, 0xF633)
		assert.Equal(t, tt.want, m.memory[0x300:0x303])
		assert.Equal(t, uint16(0x300), m.I())
	}
}

func TestBCDOutOfBounds(t *testing.T) {
	m := newTestMachine(t, 0xF033)
	m.i = 0xFFE

	err := m.Tick()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestRegisterTransfer(t *testing.T) {
	m := New()
	for n := range byte(RegisterCount) {
		m.v[n] = n + 1
	}
	m.i = 0x400
	execute(t, m, 0xF355)
	assert.Equal(t, []byte{1, 2, 3, 4, 0}, m.memory[0x400:0x405])
	assert.Equal(t, uint16(0x400), m.I())

	m.v = [RegisterCount]byte{}
	execute(t, m, 0xF265)
	assert.Equal(t, []byte{1, 2, 3, 0}, m.v[:4])
}

func TestRegisterTransferOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		word uint16
	}{
		{"store", 0xF455},
		{"load", 0xF465},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.word)
			m.i = 0xFFD

			err := m.Tick()
			assert.True(t, errors.Is(err, ErrOutOfBounds))
		})
	}
}

func TestKeySkips(t *testing.T) {
	m := New()
	m.v[1] = 0xB

	execute(t, m, 0xE19E)
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
	execute(t, m, 0xE1A1)
	assert.Equal(t, uint16(ProgramStart+6), m.PC())

	m.SetKey(0xB)
	execute(t, m, 0xE19E)
	assert.Equal(t, uint16(ProgramStart+10), m.PC())
	execute(t, m, 0xE1A1)
	assert.Equal(t, uint16(ProgramStart+12), m.PC())
}

func TestWaitForKey(t *testing.T) {
	m := newTestMachine(t,
		0xF50A, // LD V5, K
		0x6101, // LD V1, $01
	)
	m.dt = 5
	m.SetKey(0x3)

	assert.NoError(t, m.Tick())
	assert.Equal(t, StateAwaitingKey, m.State())
	assert.Equal(t, uint16(ProgramStart), m.PC())

	// a key held since before the wait does not count as a press
	assert.NoError(t, m.Tick())
	assert.Equal(t, StateAwaitingKey, m.State())
	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, byte(0), m.Register(1))
	assert.Equal(t, byte(3), m.DelayTimer())

	m.SetKey(0x7)
	assert.NoError(t, m.Tick())
	assert.Equal(t, StateRunning, m.State())
	assert.Equal(t, byte(7), m.Register(5))
	assert.Equal(t, uint16(ProgramStart+2), m.PC())

	assert.NoError(t, m.Tick())
	assert.Equal(t, byte(1), m.Register(1))
}

func TestWaitForKeyHeldAtStart(t *testing.T) {
	m := newTestMachine(t, 0xF00A)
	m.SetKey(0x2)

	assert.NoError(t, m.Tick())
	assert.NoError(t, m.Tick())
	assert.Equal(t, StateAwaitingKey, m.State())

	m.ClearKey(0x2)
	assert.NoError(t, m.Tick())
	m.SetKey(0x2)
	assert.NoError(t, m.Tick())
	assert.Equal(t, StateRunning, m.State())
	assert.Equal(t, byte(2), m.Register(0))
}
