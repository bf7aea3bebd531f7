package chip8

import "fmt"

// CHIP-8 machine layout constants.
const (
	// RegisterCount is the number of general-purpose registers V0-VF.
	RegisterCount = 16

	// MemorySize is the size of the addressable memory (4KB).
	MemorySize = 4096

	// ProgramStart is the conventional load origin of CHIP-8 programs.
	ProgramStart = 0x200

	// StackDepth is the call depth of the original hardware stack.
	// The core only enforces a limit when Options.StackLimit is set.
	StackDepth = 16

	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight

	addressMask = 0x0FFF
	opcodeSize  = 2
)

// Options configures a CPU instance. The zero value loads programs at
// address 0 and runs without any stack or step limit.
type Options struct {
	LoadOrigin uint16      // memory address the program is copied to
	StackLimit int         // maximum call depth, 0 for unbounded
	StepLimit  uint64      // maximum executed instructions per run, 0 for unlimited
	Tracer     func(Trace) // called for every executed instruction
}

// Trace describes an instruction that is about to be dispatched.
type Trace struct {
	Address     uint16
	Instruction Instruction
}

// CPU is the processor state together with the dispatch loop operating on it.
type CPU struct {
	PC         uint16
	V          [RegisterCount]uint8
	I          uint16
	Stack      []uint16
	Memory     [MemorySize]byte
	Display    [DisplaySize]byte
	DelayTimer uint8
	SoundTimer uint8

	opts       Options
	programEnd int // first address after the loaded program
	steps      uint64
}

// New returns a new zero-initialized CPU.
func New(opts Options) *CPU {
	return &CPU{
		PC:    opts.LoadOrigin,
		Stack: make([]uint16, 0, StackDepth),
		opts:  opts,
	}
}

// Reset zeroes the complete processor state, the loaded program included.
func (c *CPU) Reset() {
	opts := c.opts
	*c = CPU{
		PC:    opts.LoadOrigin,
		Stack: make([]uint16, 0, StackDepth),
		opts:  opts,
	}
}

// Load copies the program into memory at the load origin and points the
// program counter at its first instruction. Registers, stack, display and
// timers keep their values.
func (c *CPU) Load(program []byte) error {
	if len(program) == 0 {
		return ErrEmptyProgram
	}
	origin := int(c.opts.LoadOrigin)
	if origin+len(program) > MemorySize {
		return fmt.Errorf("%w: %d bytes at origin $%04X", ErrProgramTooLarge, len(program), origin)
	}

	clear(c.Memory[:])
	copy(c.Memory[origin:], program)
	c.PC = c.opts.LoadOrigin
	c.programEnd = origin + len(program)
	c.steps = 0
	return nil
}

// Steps returns the number of instructions executed since the last Load.
func (c *CPU) Steps() uint64 {
	return c.steps
}

// Running returns whether the program counter points into the loaded program.
func (c *CPU) Running() bool {
	return c.inProgram(c.PC)
}

func (c *CPU) inProgram(address uint16) bool {
	return address >= c.opts.LoadOrigin && int(address) < c.programEnd
}
