// Package writer implements the assembly listing output of CHIP-8 programs.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8core/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

// Options of the writer.
type Options struct {
	HexComments    bool // output opcode bytes as hex values in comments
	OffsetComments bool // output addresses in comments
	ZeroBytes      bool // output trailing zero bytes of the program
}

// Writer writes a program listing with labels for all jump, call and data targets.
type Writer struct {
	lines   []chip8.Line
	origin  uint16
	options Options
	writer  io.Writer

	functions set.Set[uint16]
	jumps     set.Set[uint16]
	data      set.Set[uint16]
}

// New creates a new writer for the program placed at the given origin.
func New(program []byte, origin uint16, writer io.Writer, options Options) *Writer {
	w := &Writer{
		lines:     chip8.Disassemble(program, origin),
		origin:    origin,
		options:   options,
		writer:    writer,
		functions: set.New[uint16](),
		jumps:     set.New[uint16](),
		data:      set.New[uint16](),
	}
	w.collectLabels()
	return w
}

// Write writes the complete listing.
func (w *Writer) Write() error {
	if _, err := fmt.Fprintf(w.writer, "; CHIP-8 ROM listing\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, ".org $%03X\n\n", w.origin); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	for _, line := range w.lines[:w.endIndex()] {
		if err := w.writeLabel(line.Address); err != nil {
			return err
		}
		if err := w.writeLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Label returns the label name of an address, or an empty string if no
// instruction of the program references the address.
func (w *Writer) Label(address uint16) string {
	switch {
	case w.functions.Contains(address):
		return fmt.Sprintf("_func_%04x", address)
	case w.jumps.Contains(address):
		return fmt.Sprintf("_label_%04x", address)
	case w.data.Contains(address):
		return fmt.Sprintf("_data_%04x", address)
	default:
		return ""
	}
}

// collectLabels marks all addresses inside the program that are targeted by
// a supported instruction. Lines start at even offsets from the origin, so
// unaligned targets can not be labeled and keep their numeric operand.
func (w *Writer) collectLabels() {
	for _, line := range w.lines {
		ins := line.Instruction
		target := ins.Address()
		if len(line.Data) < 2 || !w.inProgram(target) || (target-w.origin)%2 != 0 {
			continue
		}

		switch ins.Kind {
		case chip8.KindCall:
			w.functions.Add(target)
		case chip8.KindJump:
			w.jumps.Add(target)
		case chip8.KindLoadIndex:
			w.data.Add(target)
		}
	}
}

func (w *Writer) inProgram(address uint16) bool {
	if address < w.origin || len(w.lines) == 0 {
		return false
	}
	last := w.lines[len(w.lines)-1]
	return int(address) < int(last.Address)+len(last.Data)
}

func (w *Writer) writeLabel(address uint16) error {
	label := w.Label(address)
	if label == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w.writer, "%s:\n", label); err != nil {
		return fmt.Errorf("writing label %s: %w", label, err)
	}
	return nil
}

func (w *Writer) writeLine(line chip8.Line) error {
	code := "    " + w.code(line)
	comment := w.comment(line)

	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "%s\n", code); err != nil {
			return fmt.Errorf("writing code: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "%-32s ; %s\n", code, comment); err != nil {
		return fmt.Errorf("writing code with comment: %w", err)
	}
	return nil
}

// code returns the assembly code of a line, targets inside the program are
// referenced by their label.
func (w *Writer) code(line chip8.Line) string {
	if len(line.Data) < 2 {
		return fmt.Sprintf(".byte $%02X", line.Data[0])
	}

	ins := line.Instruction
	label := w.Label(ins.Address())
	if label == "" {
		return ins.String()
	}

	switch ins.Kind {
	case chip8.KindJump, chip8.KindCall:
		return fmt.Sprintf("%s %s", ins.Name(), label)
	case chip8.KindLoadIndex:
		return fmt.Sprintf("%s I, %s", ins.Name(), label)
	default:
		return ins.String()
	}
}

func (w *Writer) comment(line chip8.Line) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", line.Address))
	}
	if w.options.HexComments {
		hex := make([]string, len(line.Data))
		for i, b := range line.Data {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		parts = append(parts, strings.Join(hex, " "))
	}
	return strings.Join(parts, " ")
}

// endIndex returns the index after the last line that is labeled or
// contains non zero bytes.
func (w *Writer) endIndex() int {
	if w.options.ZeroBytes {
		return len(w.lines)
	}

	for i := len(w.lines) - 1; i >= 0; i-- {
		line := w.lines[i]
		if w.Label(line.Address) != "" {
			return i + 1
		}
		for _, b := range line.Data {
			if b != 0 {
				return i + 1
			}
		}
	}
	return 0
}
