package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies the handler a decoded instruction is dispatched to.
type Kind uint8

// Instruction kinds supported by the core.
const (
	KindUnsupported Kind = iota
	KindSys
	KindClear
	KindReturn
	KindJump
	KindCall
	KindLoadIndex
)

const sysName = "sys"

var kindNames = map[Kind]string{
	KindUnsupported: "unsupported",
	KindSys:         "sys",
	KindClear:       "clear",
	KindReturn:      "return",
	KindJump:        "jump",
	KindCall:        "call",
	KindLoadIndex:   "load index",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Instruction is a decoded 16-bit instruction word.
type Instruction struct {
	Kind Kind
	Word uint16
}

// Decode decodes an instruction word. Words outside of the supported subset
// decode to KindUnsupported and keep the raw word for reporting.
func Decode(word uint16) Instruction {
	ins := Instruction{Word: word}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			ins.Kind = KindClear
		case 0x00EE:
			ins.Kind = KindReturn
		default:
			ins.Kind = KindSys
		}
	case 0x1:
		ins.Kind = KindJump
	case 0x2:
		ins.Kind = KindCall
	case 0xA:
		ins.Kind = KindLoadIndex
	default:
		ins.Kind = KindUnsupported
	}
	return ins
}

// Address returns the 12-bit address operand of the instruction.
func (i Instruction) Address() uint16 {
	return i.Word & addressMask
}

// Supported returns whether the core has a handler for the instruction.
func (i Instruction) Supported() bool {
	return i.Kind != KindUnsupported
}

// Name returns the assembler mnemonic of the instruction. Unsupported words
// are looked up in the full CHIP-8 opcode table, an empty string is returned
// for words that are not valid CHIP-8 instructions.
func (i Instruction) Name() string {
	switch i.Kind {
	case KindSys:
		return sysName
	case KindClear:
		return chip8cpu.ClsName
	case KindReturn:
		return chip8cpu.RetName
	case KindJump:
		return chip8cpu.JpName
	case KindCall:
		return chip8cpu.CallName
	case KindLoadIndex:
		return chip8cpu.LdName
	default:
		return lookupName(i.Word)
	}
}

// String returns the instruction formatted as assembly code.
func (i Instruction) String() string {
	switch i.Kind {
	case KindClear, KindReturn:
		return i.Name()
	case KindSys, KindJump, KindCall:
		return fmt.Sprintf("%s $%03X", i.Name(), i.Address())
	case KindLoadIndex:
		return fmt.Sprintf("%s I, $%03X", i.Name(), i.Address())
	default:
		return fmt.Sprintf(".word $%04X", i.Word)
	}
}
