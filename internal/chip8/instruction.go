package chip8

import "fmt"

// Op identifies one of the 35 CHIP-8 operations.
type Op uint8

// Operations in opcode table order.
const (
	OpInvalid Op = iota
	OpCls        // 00E0
	OpRet        // 00EE
	OpJp         // 1NNN
	OpCall       // 2NNN
	OpSeByte     // 3XNN
	OpSneByte    // 4XNN
	OpSeReg      // 5XY0
	OpLdByte     // 6XNN
	OpAddByte    // 7XNN
	OpLdReg      // 8XY0
	OpOr         // 8XY1
	OpAnd        // 8XY2
	OpXor        // 8XY3
	OpAddReg     // 8XY4
	OpSub        // 8XY5
	OpShr        // 8XY6
	OpSubn       // 8XY7
	OpShl        // 8XYE
	OpSneReg     // 9XY0
	OpLdI        // ANNN
	OpJpV0       // BNNN
	OpRnd        // CXNN
	OpDrw        // DXYN
	OpSkp        // EX9E
	OpSknp       // EXA1
	OpLdVxDT     // FX07
	OpLdVxK      // FX0A
	OpLdDTVx     // FX15
	OpLdSTVx     // FX18
	OpAddIVx     // FX1E
	OpLdFVx      // FX29
	OpLdBVx      // FX33
	OpLdIVx      // FX55
	OpLdVxI      // FX65

	opCount
)

var opNames = [opCount]string{
	OpInvalid: "INVALID",
	OpCls:     "CLS",
	OpRet:     "RET",
	OpJp:      "JP",
	OpCall:    "CALL",
	OpSeByte:  "SE",
	OpSneByte: "SNE",
	OpSeReg:   "SE reg",
	OpLdByte:  "LD",
	OpAddByte: "ADD",
	OpLdReg:   "LD reg",
	OpOr:      "OR",
	OpAnd:     "AND",
	OpXor:     "XOR",
	OpAddReg:  "ADD carry",
	OpSub:     "SUB",
	OpShr:     "SHR",
	OpSubn:    "SUBN",
	OpShl:     "SHL",
	OpSneReg:  "SNE reg",
	OpLdI:     "LD I",
	OpJpV0:    "JP+V0",
	OpRnd:     "RND",
	OpDrw:     "DRW",
	OpSkp:     "SKP",
	OpSknp:    "SKNP",
	OpLdVxDT:  "LD Vx,DT",
	OpLdVxK:   "LD Vx,K",
	OpLdDTVx:  "LD DT,Vx",
	OpLdSTVx:  "LD ST,Vx",
	OpAddIVx:  "ADD I,Vx",
	OpLdFVx:   "LD F,Vx",
	OpLdBVx:   "LD B,Vx",
	OpLdIVx:   "LD [I],Vx",
	OpLdVxI:   "LD Vx,[I]",
}

// String returns the operation name.
func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opNames[o]
}

// Instruction is a decoded instruction word with its operand fields.
type Instruction struct {
	Op  Op
	Raw uint16 // instruction word

	X   uint8  // register index in nibble 2
	Y   uint8  // register index in nibble 1
	N   uint8  // low nibble
	NN  uint8  // low byte
	NNN uint16 // low 12 bits
}

// Nibbles splits an instruction word into its four nibbles, most
// significant first.
func Nibbles(word uint16) (n3, n2, n1, n0 uint8) {
	return uint8(word >> 12), uint8(word>>8) & 0xF, uint8(word>>4) & 0xF, uint8(word) & 0xF
}

// Decode maps an instruction word to its operation. Words that do not match
// any opcode pattern return ErrDecodeFailure.
func Decode(word uint16) (Instruction, error) {
	n3, n2, n1, n0 := Nibbles(word)
	ins := Instruction{
		Raw: word,
		X:   n2,
		Y:   n1,
		N:   n0,
		NN:  uint8(word),
		NNN: word & 0x0FFF,
	}

	ins.Op = decodeOp(n3, n1, n0, word)
	if ins.Op == OpInvalid {
		return ins, fmt.Errorf("word %04X: %w", word, ErrDecodeFailure)
	}
	return ins, nil
}

func decodeOp(n3, n1, n0 uint8, word uint16) Op {
	switch n3 {
	case 0x0:
		switch word {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1:
		return OpJp
	case 0x2:
		return OpCall
	case 0x3:
		return OpSeByte
	case 0x4:
		return OpSneByte
	case 0x5:
		if n0 == 0 {
			return OpSeReg
		}
	case 0x6:
		return OpLdByte
	case 0x7:
		return OpAddByte
	case 0x8:
		return decodeALU(n0)
	case 0x9:
		if n0 == 0 {
			return OpSneReg
		}
	case 0xA:
		return OpLdI
	case 0xB:
		return OpJpV0
	case 0xC:
		return OpRnd
	case 0xD:
		return OpDrw
	case 0xE:
		switch {
		case n1 == 0x9 && n0 == 0xE:
			return OpSkp
		case n1 == 0xA && n0 == 0x1:
			return OpSknp
		}
	case 0xF:
		return decodeMisc(n1, n0)
	}
	return OpInvalid
}

func decodeALU(n0 uint8) Op {
	switch n0 {
	case 0x0:
		return OpLdReg
	case 0x1:
		return OpOr
	case 0x2:
		return OpAnd
	case 0x3:
		return OpXor
	case 0x4:
		return OpAddReg
	case 0x5:
		return OpSub
	case 0x6:
		return OpShr
	case 0x7:
		return OpSubn
	case 0xE:
		return OpShl
	}
	return OpInvalid
}

func decodeMisc(n1, n0 uint8) Op {
	switch n1<<4 | n0 {
	case 0x07:
		return OpLdVxDT
	case 0x0A:
		return OpLdVxK
	case 0x15:
		return OpLdDTVx
	case 0x18:
		return OpLdSTVx
	case 0x1E:
		return OpAddIVx
	case 0x29:
		return OpLdFVx
	case 0x33:
		return OpLdBVx
	case 0x55:
		return OpLdIVx
	case 0x65:
		return OpLdVxI
	}
	return OpInvalid
}
