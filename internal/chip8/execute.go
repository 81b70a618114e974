package chip8

import (
	"fmt"
	"math"
)

type handler func(m *Machine, ins Instruction) error

// handlers maps every operation to its implementation.
var handlers = [opCount]handler{
	OpInvalid: execInvalid,
	OpCls:     execCls,
	OpRet:     execRet,
	OpJp:      execJp,
	OpCall:    execCall,
	OpSeByte:  execSeByte,
	OpSneByte: execSneByte,
	OpSeReg:   execSeReg,
	OpLdByte:  execLdByte,
	OpAddByte: execAddByte,
	OpLdReg:   execLdReg,
	OpOr:      execOr,
	OpAnd:     execAnd,
	OpXor:     execXor,
	OpAddReg:  execAddReg,
	OpSub:     execSub,
	OpShr:     execShr,
	OpSubn:    execSubn,
	OpShl:     execShl,
	OpSneReg:  execSneReg,
	OpLdI:     execLdI,
	OpJpV0:    execJpV0,
	OpRnd:     execRnd,
	OpDrw:     execDrw,
	OpSkp:     execSkp,
	OpSknp:    execSknp,
	OpLdVxDT:  execLdVxDT,
	OpLdVxK:   execLdVxK,
	OpLdDTVx:  execLdDTVx,
	OpLdSTVx:  execLdSTVx,
	OpAddIVx:  execAddIVx,
	OpLdFVx:   execLdFVx,
	OpLdBVx:   execLdBVx,
	OpLdIVx:   execLdIVx,
	OpLdVxI:   execLdVxI,
}

func execInvalid(_ *Machine, ins Instruction) error {
	return fmt.Errorf("word %04X: %w", ins.Raw, ErrDecodeFailure)
}

func execCls(m *Machine, _ Instruction) error {
	m.display.Clear()
	return nil
}

func execRet(m *Machine, _ Instruction) error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.pc = m.stack[m.sp]
	m.sp--
	return nil
}

func execJp(m *Machine, ins Instruction) error {
	m.pc = ins.NNN
	return nil
}

func execCall(m *Machine, ins Instruction) error {
	if m.sp >= StackSize-1 {
		return fmt.Errorf("call depth %d: %w", m.sp, ErrStackOverflow)
	}
	m.sp++
	m.stack[m.sp] = m.pc
	m.pc = ins.NNN
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

func execSeByte(m *Machine, ins Instruction) error {
	m.skipIf(m.v[ins.X] == ins.NN)
	return nil
}

func execSneByte(m *Machine, ins Instruction) error {
	m.skipIf(m.v[ins.X] != ins.NN)
	return nil
}

func execSeReg(m *Machine, ins Instruction) error {
	m.skipIf(m.v[ins.X] == m.v[ins.Y])
	return nil
}

func execSneReg(m *Machine, ins Instruction) error {
	m.skipIf(m.v[ins.X] != m.v[ins.Y])
	return nil
}

func execLdByte(m *Machine, ins Instruction) error {
	m.v[ins.X] = ins.NN
	return nil
}

func execAddByte(m *Machine, ins Instruction) error {
	m.v[ins.X] += ins.NN
	return nil
}

func execLdReg(m *Machine, ins Instruction) error {
	m.v[ins.X] = m.v[ins.Y]
	return nil
}

func execOr(m *Machine, ins Instruction) error {
	m.v[ins.X] |= m.v[ins.Y]
	return nil
}

func execAnd(m *Machine, ins Instruction) error {
	m.v[ins.X] &= m.v[ins.Y]
	return nil
}

func execXor(m *Machine, ins Instruction) error {
	m.v[ins.X] ^= m.v[ins.Y]
	return nil
}

// The flag setting operations below compute the flag from the operand
// values before writing the result, and write VF last so that the flag
// wins when X is F.

func execAddReg(m *Machine, ins Instruction) error {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.v[ins.X] = byte(sum)
	m.v[FlagRegister] = byte(sum >> 8)
	return nil
}

func execSub(m *Machine, ins Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = x - y
	m.v[FlagRegister] = boolToFlag(x >= y)
	return nil
}

func execSubn(m *Machine, ins Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = y - x
	m.v[FlagRegister] = boolToFlag(y >= x)
	return nil
}

func execShr(m *Machine, ins Instruction) error {
	x := m.v[ins.X]
	m.v[ins.X] = x >> 1
	m.v[FlagRegister] = x & 1
	return nil
}

func execShl(m *Machine, ins Instruction) error {
	x := m.v[ins.X]
	m.v[ins.X] = x << 1
	m.v[FlagRegister] = x >> 7
	return nil
}

func execLdI(m *Machine, ins Instruction) error {
	m.i = ins.NNN
	return nil
}

func execJpV0(m *Machine, ins Instruction) error {
	m.pc = ins.NNN + uint16(m.v[0])
	return nil
}

func execRnd(m *Machine, ins Instruction) error {
	m.v[ins.X] = m.random() & ins.NN
	return nil
}

func execDrw(m *Machine, ins Instruction) error {
	sprite, err := m.memoryRange(m.i, int(ins.N))
	if err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}

	collision, err := m.display.Draw(m.v[ins.X], m.v[ins.Y], sprite)
	if err != nil {
		return fmt.Errorf("drawing sprite: %w", err)
	}
	m.v[FlagRegister] = boolToFlag(collision)
	return nil
}

func execSkp(m *Machine, ins Instruction) error {
	m.skipIf(m.keypad.IsPressed(m.v[ins.X]))
	return nil
}

func execSknp(m *Machine, ins Instruction) error {
	m.skipIf(!m.keypad.IsPressed(m.v[ins.X]))
	return nil
}

func execLdVxDT(m *Machine, ins Instruction) error {
	m.v[ins.X] = m.dt
	return nil
}

// execLdVxK rewinds PC onto the instruction and suspends execution until
// pollKey sees a newly pressed key.
func execLdVxK(m *Machine, ins Instruction) error {
	m.pc -= opcodeSize
	m.state = StateAwaitingKey
	m.waitRegister = ins.X
	m.waitKeys = m.keypad.State()
	return nil
}

func execLdDTVx(m *Machine, ins Instruction) error {
	m.dt = m.v[ins.X]
	return nil
}

func execLdSTVx(m *Machine, ins Instruction) error {
	m.st = m.v[ins.X]
	return nil
}

// execAddIVx rejects a sum that does not fit into I instead of wrapping it
// back into low memory.
func execAddIVx(m *Machine, ins Instruction) error {
	sum := uint32(m.i) + uint32(m.v[ins.X])
	if sum > math.MaxUint16 {
		return fmt.Errorf("index %04X + %02X overflows I: %w", m.i, m.v[ins.X], ErrOutOfBounds)
	}
	m.i = uint16(sum)
	return nil
}

func execLdFVx(m *Machine, ins Instruction) error {
	m.i = uint16(m.v[ins.X]) * glyphSize
	return nil
}

func execLdBVx(m *Machine, ins Instruction) error {
	digits, err := m.memoryRange(m.i, 3)
	if err != nil {
		return fmt.Errorf("storing bcd: %w", err)
	}
	value := m.v[ins.X]
	digits[0] = value / 100
	digits[1] = value / 10 % 10
	digits[2] = value % 10
	return nil
}

func execLdIVx(m *Machine, ins Instruction) error {
	dst, err := m.memoryRange(m.i, int(ins.X)+1)
	if err != nil {
		return fmt.Errorf("storing registers: %w", err)
	}
	copy(dst, m.v[:ins.X+1])
	return nil
}

func execLdVxI(m *Machine, ins Instruction) error {
	src, err := m.memoryRange(m.i, int(ins.X)+1)
	if err != nil {
		return fmt.Errorf("loading registers: %w", err)
	}
	copy(m.v[:ins.X+1], src)
	return nil
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
