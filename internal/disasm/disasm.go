// Package disasm formats CHIP-8 instruction words as assembly text.
// Mnemonics are taken from the retrogolib CHIP-8 instruction definitions.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// instructions maps every operation to its retrogolib instruction.
var instructions = map[chip8.Op]*chip8cpu.Instruction{
	chip8.OpCls:     chip8cpu.ClsInst,
	chip8.OpRet:     chip8cpu.RetInst,
	chip8.OpJp:      chip8cpu.JpInst,
	chip8.OpCall:    chip8cpu.CallInst,
	chip8.OpSeByte:  chip8cpu.SeInst,
	chip8.OpSneByte: chip8cpu.SneInst,
	chip8.OpSeReg:   chip8cpu.SeInst,
	chip8.OpLdByte:  chip8cpu.LdInst,
	chip8.OpAddByte: chip8cpu.AddInst,
	chip8.OpLdReg:   chip8cpu.LdInst,
	chip8.OpOr:      chip8cpu.OrInst,
	chip8.OpAnd:     chip8cpu.AndInst,
	chip8.OpXor:     chip8cpu.XorInst,
	chip8.OpAddReg:  chip8cpu.AddInst,
	chip8.OpSub:     chip8cpu.SubInst,
	chip8.OpShr:     chip8cpu.ShrInst,
	chip8.OpSubn:    chip8cpu.SubnInst,
	chip8.OpShl:     chip8cpu.ShlInst,
	chip8.OpSneReg:  chip8cpu.SneInst,
	chip8.OpLdI:     chip8cpu.LdInst,
	chip8.OpJpV0:    chip8cpu.JpInst,
	chip8.OpRnd:     chip8cpu.RndInst,
	chip8.OpDrw:     chip8cpu.DrwInst,
	chip8.OpSkp:     chip8cpu.SkpInst,
	chip8.OpSknp:    chip8cpu.SknpInst,
	chip8.OpLdVxDT:  chip8cpu.LdInst,
	chip8.OpLdVxK:   chip8cpu.LdInst,
	chip8.OpLdDTVx:  chip8cpu.LdInst,
	chip8.OpLdSTVx:  chip8cpu.LdInst,
	chip8.OpAddIVx:  chip8cpu.AddInst,
	chip8.OpLdFVx:   chip8cpu.LdInst,
	chip8.OpLdBVx:   chip8cpu.LdInst,
	chip8.OpLdIVx:   chip8cpu.LdInst,
	chip8.OpLdVxI:   chip8cpu.LdInst,
}

// Line is a single disassembled instruction.
type Line struct {
	Address uint16
	Data    []byte
	Code    string
}

// Name returns the mnemonic of the operation.
func Name(op chip8.Op) string {
	ins, ok := instructions[op]
	if !ok {
		return ""
	}
	return ins.Name
}

// Format returns the assembly text of an instruction word. Words that do not
// decode to an instruction are returned as a data directive.
func Format(word uint16) string {
	ins, err := chip8.Decode(word)
	if err != nil {
		return fmt.Sprintf(".word $%04X", word)
	}

	name := Name(ins.Op)
	if params := formatParams(ins); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operands of a decoded instruction.
func formatParams(ins chip8.Instruction) string {
	switch ins.Op {
	case chip8.OpCls, chip8.OpRet:
		return ""
	case chip8.OpJp, chip8.OpCall:
		return fmt.Sprintf("$%03X", ins.NNN)
	case chip8.OpJpV0:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case chip8.OpSeByte, chip8.OpSneByte, chip8.OpLdByte, chip8.OpAddByte, chip8.OpRnd:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case chip8.OpSeReg, chip8.OpSneReg, chip8.OpLdReg, chip8.OpOr, chip8.OpAnd, chip8.OpXor,
		chip8.OpAddReg, chip8.OpSub, chip8.OpSubn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case chip8.OpShr, chip8.OpShl, chip8.OpSkp, chip8.OpSknp:
		return fmt.Sprintf("V%X", ins.X)
	case chip8.OpLdI:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case chip8.OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	case chip8.OpLdVxDT:
		return fmt.Sprintf("V%X, DT", ins.X)
	case chip8.OpLdVxK:
		return fmt.Sprintf("V%X, K", ins.X)
	case chip8.OpLdDTVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case chip8.OpLdSTVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case chip8.OpAddIVx:
		return fmt.Sprintf("I, V%X", ins.X)
	case chip8.OpLdFVx:
		return fmt.Sprintf("F, V%X", ins.X)
	case chip8.OpLdBVx:
		return fmt.Sprintf("B, V%X", ins.X)
	case chip8.OpLdIVx:
		return fmt.Sprintf("[I], V%X", ins.X)
	case chip8.OpLdVxI:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}

// Disassemble splits the ROM into 2 byte instruction words and formats them
// with their memory addresses. A trailing odd byte is returned as data.
func Disassemble(rom []byte) []Line {
	lines := make([]Line, 0, (len(rom)+1)/2)

	for offset := 0; offset < len(rom); offset += 2 {
		address := uint16(chip8.ProgramStart + offset)
		if offset+1 >= len(rom) {
			lines = append(lines, Line{
				Address: address,
				Data:    rom[offset : offset+1],
				Code:    fmt.Sprintf(".byte $%02X", rom[offset]),
			})
			break
		}

		word := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		lines = append(lines, Line{
			Address: address,
			Data:    rom[offset : offset+2],
			Code:    Format(word),
		})
	}
	return lines
}

// Listing writes the disassembly of the ROM to the writer, one instruction
// per line with address and hex bytes.
func Listing(w io.Writer, rom []byte) error {
	for _, line := range Disassemble(rom) {
		data := fmt.Sprintf("% X", line.Data)
		if _, err := fmt.Fprintf(w, "$%03X  %-5s  %s\n", line.Address, data, line.Code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}
