package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// lookupOpcode finds the opcode of the full CHIP-8 instruction set that
// matches the instruction word.
func lookupOpcode(word uint16) (chip8cpu.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8cpu.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8cpu.Opcode{}, false
}

// lookupName returns the mnemonic of the instruction word in the full CHIP-8
// instruction set.
func lookupName(word uint16) string {
	op, ok := lookupOpcode(word)
	if !ok {
		return ""
	}
	return op.Instruction.Name
}
