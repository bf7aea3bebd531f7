package chip8

import "fmt"

// Line is a single line of a program listing.
type Line struct {
	Address     uint16
	Data        []byte
	Instruction Instruction
}

// String returns the line formatted as assembly code with the address and
// opcode bytes as comment.
func (l Line) String() string {
	if len(l.Data) < opcodeSize {
		return fmt.Sprintf("  .byte $%02X  ; $%04X", l.Data[0], l.Address)
	}
	return fmt.Sprintf("  %-16s ; $%04X %02X %02X", l.Instruction, l.Address, l.Data[0], l.Data[1])
}

// Disassemble returns a linear listing of the program as it would be placed
// in memory at the given origin. A trailing odd byte is listed as data.
func Disassemble(program []byte, origin uint16) []Line {
	lines := make([]Line, 0, (len(program)+1)/opcodeSize)

	for offset := 0; offset < len(program); offset += opcodeSize {
		address := origin + uint16(offset)
		if offset+1 >= len(program) {
			lines = append(lines, Line{
				Address: address,
				Data:    program[offset : offset+1],
			})
			break
		}

		data := program[offset : offset+opcodeSize]
		word := uint16(data[0])<<8 | uint16(data[1])
		lines = append(lines, Line{
			Address:     address,
			Data:        data,
			Instruction: Decode(word),
		})
	}
	return lines
}
