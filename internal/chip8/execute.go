package chip8

import (
	"context"
	"fmt"
)

// contextCheckInterval is the number of instructions executed between
// checks for context cancellation.
const contextCheckInterval = 1024

// Execute loads the program and runs it until the program counter leaves the
// program or an instruction fails.
func (c *CPU) Execute(program []byte) error {
	if err := c.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	return c.Run(context.Background())
}

// Run executes instructions of the loaded program until the program counter
// leaves the program. It returns nil for a program that ran to its end and
// the first instruction failure otherwise.
func (c *CPU) Run(ctx context.Context) error {
	for n := 0; c.inProgram(c.PC); n++ {
		if n%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("execution stopped at $%04X: %w", c.PC, err)
			}
		}

		if err := c.step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes a single instruction. It returns ErrHalted if the program
// counter does not point into the loaded program.
func (c *CPU) Step() error {
	if !c.inProgram(c.PC) {
		return ErrHalted
	}
	return c.step()
}

func (c *CPU) step() error {
	if c.opts.StepLimit > 0 && c.steps >= c.opts.StepLimit {
		return fmt.Errorf("%w: %d instructions executed", ErrStepLimit, c.steps)
	}

	address := c.PC
	word, err := c.fetch(address)
	if err != nil {
		return err
	}
	c.PC += opcodeSize
	c.steps++

	ins := Decode(word)
	if c.opts.Tracer != nil {
		c.opts.Tracer(Trace{Address: address, Instruction: ins})
	}
	return c.dispatch(address, ins)
}

// fetch reads the big-endian instruction word at the given address.
func (c *CPU) fetch(address uint16) (uint16, error) {
	if !c.inProgram(address) || !c.inProgram(address+1) {
		return 0, &FetchError{Address: address}
	}
	return uint16(c.Memory[address])<<8 | uint16(c.Memory[address+1]), nil
}

func (c *CPU) dispatch(address uint16, ins Instruction) error {
	switch ins.Kind {
	case KindSys:
		// machine code routines have no equivalent in the virtual machine
		return nil
	case KindClear:
		c.clearDisplay()
		return nil
	case KindReturn:
		return c.ret(address)
	case KindJump:
		c.PC = ins.Address()
		return nil
	case KindCall:
		return c.call(address, ins.Address())
	case KindLoadIndex:
		c.I = ins.Address()
		return nil
	default:
		return &UnimplementedOpcodeError{
			Address: address,
			Word:    ins.Word,
			Name:    ins.Name(),
		}
	}
}

func (c *CPU) clearDisplay() {
	clear(c.Display[:])
}

func (c *CPU) call(address, target uint16) error {
	if c.opts.StackLimit > 0 && len(c.Stack) >= c.opts.StackLimit {
		return &StackError{Address: address, Depth: len(c.Stack), Err: ErrStackOverflow}
	}
	c.Stack = append(c.Stack, c.PC)
	c.PC = target
	return nil
}

func (c *CPU) ret(address uint16) error {
	depth := len(c.Stack)
	if depth == 0 {
		return &StackError{Address: address, Err: ErrStackUnderflow}
	}
	c.PC = c.Stack[depth-1]
	c.Stack = c.Stack[:depth-1]
	return nil
}
