package chip8

import (
	"errors"
	"fmt"
)

// Errors returned by the execution core. Structured errors wrap one of these,
// use errors.Is to test for the kind.
var (
	ErrEmptyProgram         = errors.New("empty program")
	ErrProgramTooLarge      = errors.New("program does not fit into memory")
	ErrTruncatedInstruction = errors.New("truncated instruction")
	ErrStackUnderflow       = errors.New("return with empty call stack")
	ErrStackOverflow        = errors.New("call stack limit reached")
	ErrUnimplementedOpcode  = errors.New("unimplemented opcode")
	ErrStepLimit            = errors.New("step limit reached")
	ErrHalted               = errors.New("program counter outside of program")
)

// FetchError is returned when the program counter does not address two
// bytes of the loaded program.
type FetchError struct {
	Address uint16
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching instruction at $%04X: %s", e.Address, ErrTruncatedInstruction)
}

// Unwrap returns ErrTruncatedInstruction.
func (e *FetchError) Unwrap() error {
	return ErrTruncatedInstruction
}

// StackError is returned by call and return instructions that violate the
// call stack bounds. Err is ErrStackUnderflow or ErrStackOverflow.
type StackError struct {
	Address uint16 // address of the faulting instruction
	Depth   int    // stack depth when the fault occurred
	Err     error
}

func (e *StackError) Error() string {
	return fmt.Sprintf("instruction at $%04X with stack depth %d: %s", e.Address, e.Depth, e.Err)
}

func (e *StackError) Unwrap() error {
	return e.Err
}

// UnimplementedOpcodeError is returned when execution reaches an instruction
// the core has no handler for. Name is the mnemonic of the instruction in the
// full CHIP-8 instruction set, empty if the word is not a valid instruction.
type UnimplementedOpcodeError struct {
	Address uint16
	Word    uint16
	Name    string
}

func (e *UnimplementedOpcodeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s $%04X at $%04X", ErrUnimplementedOpcode, e.Word, e.Address)
	}
	return fmt.Sprintf("%s $%04X (%s) at $%04X", ErrUnimplementedOpcode, e.Word, e.Name, e.Address)
}

// Unwrap returns ErrUnimplementedOpcode.
func (e *UnimplementedOpcodeError) Unwrap() error {
	return ErrUnimplementedOpcode
}
