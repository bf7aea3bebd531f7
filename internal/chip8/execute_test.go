package chip8

import (
	"context"
	"errors"
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestExecute_LoadIndex(t *testing.T) {
	cpu := New(Options{})

	err := cpu.Execute([]byte{0xA2, 0x34, 0xFF, 0xFF})
	assert.True(t, errors.Is(err, ErrUnimplementedOpcode))
	assert.Equal(t, uint16(0x0234), cpu.I)

	var opErr *UnimplementedOpcodeError
	assert.True(t, errors.As(err, &opErr))
	assert.Equal(t, uint16(0x0002), opErr.Address)
	assert.Equal(t, uint16(0xFFFF), opErr.Word)
}

func TestExecute_LoadIndexAllAddresses(t *testing.T) {
	for n := uint16(0); n <= addressMask; n++ {
		cpu := New(Options{})
		program := []byte{0xA0 | byte(n>>8), byte(n), 0xFF, 0xFF}

		err := cpu.Execute(program)
		assert.True(t, errors.Is(err, ErrUnimplementedOpcode))
		assert.Equal(t, n, cpu.I)
		assert.Equal(t, uint16(4), cpu.PC)
		assert.Len(t, cpu.Stack, 0)
		assert.Equal(t, uint64(2), cpu.Steps())
	}
}

func TestExecute_Call(t *testing.T) {
	cpu := New(Options{})

	err := cpu.Execute([]byte{0x20, 0x04, 0xFF, 0xFF, 0xA1, 0x23, 0xFF, 0xFF})
	assert.True(t, errors.Is(err, ErrUnimplementedOpcode))
	assert.Equal(t, uint16(0x0123), cpu.I)
	assert.Len(t, cpu.Stack, 1)
	assert.Equal(t, uint16(0x0002), cpu.Stack[0])
}

func TestExecute_Return(t *testing.T) {
	cpu := New(Options{})

	// call $006, ld I $456, ret, ld I $123, halt at $004
	err := cpu.Execute([]byte{0x20, 0x06, 0xA1, 0x23, 0xFF, 0xFF, 0xA4, 0x56, 0x00, 0xEE, 0xFF, 0xFF})

	var opErr *UnimplementedOpcodeError
	assert.True(t, errors.As(err, &opErr))
	assert.Equal(t, uint16(0x0004), opErr.Address)
	assert.Equal(t, uint16(0x0123), cpu.I)
	assert.Len(t, cpu.Stack, 0)
	assert.Equal(t, uint64(5), cpu.Steps())
}

func TestExecute_Clear(t *testing.T) {
	cpu := New(Options{})
	for i := range cpu.Display {
		cpu.Display[i] = byte(i%255) + 1
	}

	err := cpu.Execute([]byte{0x00, 0xE0})
	assert.NoError(t, err)
	for i, pixel := range cpu.Display {
		if pixel != 0 {
			t.Fatalf("display cell %d not cleared: %d", i, pixel)
		}
	}
}

func TestExecute_Jump(t *testing.T) {
	cpu := New(Options{})
	assert.NoError(t, cpu.Load([]byte{0x12, 0x34, 0xA1, 0x11}))

	assert.NoError(t, cpu.Step())
	assert.Equal(t, uint16(0x0234), cpu.PC)
	assert.False(t, cpu.Running())

	// the jump skips the load index instruction
	cpu = New(Options{})
	err := cpu.Execute([]byte{0x10, 0x04, 0xA1, 0x11, 0xA2, 0x22})
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0222), cpu.I)
	assert.Equal(t, uint16(0x0006), cpu.PC)
}

func TestExecute_JumpPastEnd(t *testing.T) {
	cpu := New(Options{})

	err := cpu.Execute([]byte{0x1F, 0xFF})
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0FFF), cpu.PC)
}

func TestExecute_Sys(t *testing.T) {
	cpu := New(Options{})

	err := cpu.Execute([]byte{0x01, 0x23, 0x00, 0x00, 0xA1, 0x11})
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0111), cpu.I)
	assert.Equal(t, uint16(0x0006), cpu.PC)
	assert.Len(t, cpu.Stack, 0)
}

func TestExecute_StackUnderflow(t *testing.T) {
	cpu := New(Options{})

	err := cpu.Execute([]byte{0xA1, 0x23, 0x00, 0xEE})
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	var stackErr *StackError
	assert.True(t, errors.As(err, &stackErr))
	assert.Equal(t, uint16(0x0002), stackErr.Address)
	assert.Equal(t, 0, stackErr.Depth)
	assert.Equal(t, uint16(0x0123), cpu.I)
}

func TestExecute_StackLimit(t *testing.T) {
	cpu := New(Options{StackLimit: StackDepth})

	// call $000 recurses until the limit is reached
	err := cpu.Execute([]byte{0x20, 0x00})
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Len(t, cpu.Stack, StackDepth)

	var stackErr *StackError
	assert.True(t, errors.As(err, &stackErr))
	assert.Equal(t, StackDepth, stackErr.Depth)
}

func TestExecute_UnboundedStack(t *testing.T) {
	cpu := New(Options{StepLimit: 100})

	err := cpu.Execute([]byte{0x20, 0x00})
	assert.True(t, errors.Is(err, ErrStepLimit))
	assert.Len(t, cpu.Stack, 100)
	assert.Equal(t, uint64(100), cpu.Steps())
}

func TestExecute_TruncatedInstruction(t *testing.T) {
	cpu := New(Options{})

	err := cpu.Execute([]byte{0xA1, 0x23, 0xA4})
	assert.True(t, errors.Is(err, ErrTruncatedInstruction))

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, uint16(0x0002), fetchErr.Address)
	assert.Equal(t, uint16(0x0123), cpu.I)
}

func TestExecute_NaturalEnd(t *testing.T) {
	cpu := New(Options{})

	assert.NoError(t, cpu.Execute([]byte{0xA1, 0x23}))
	assert.Equal(t, uint16(0x0002), cpu.PC)
	assert.False(t, cpu.Running())
	assert.True(t, errors.Is(cpu.Step(), ErrHalted))
}

func TestExecute_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		origin  uint16
		program []byte
		err     error
	}{
		{"empty program", 0, nil, ErrEmptyProgram},
		{"too large at origin 0", 0, make([]byte, MemorySize+1), ErrProgramTooLarge},
		{"too large at program start", ProgramStart, make([]byte, MemorySize-ProgramStart+1), ErrProgramTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := New(Options{LoadOrigin: tt.origin})
			err := cpu.Execute(tt.program)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestExecute_ProgramStartOrigin(t *testing.T) {
	cpu := New(Options{LoadOrigin: ProgramStart})

	// call $204, halt, ld I $123, ret
	err := cpu.Execute([]byte{0x22, 0x04, 0xFF, 0xFF, 0xA1, 0x23, 0x00, 0xEE})

	var opErr *UnimplementedOpcodeError
	assert.True(t, errors.As(err, &opErr))
	assert.Equal(t, uint16(0x0202), opErr.Address)
	assert.Equal(t, uint16(0x0123), cpu.I)
	assert.Len(t, cpu.Stack, 0)
	assert.Equal(t, byte(0x22), cpu.Memory[ProgramStart])
	assert.Equal(t, byte(0x00), cpu.Memory[0])
}

func TestExecute_JumpBelowOrigin(t *testing.T) {
	cpu := New(Options{LoadOrigin: ProgramStart})

	err := cpu.Execute([]byte{0x11, 0x00, 0xA1, 0x23})
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0100), cpu.PC)
	assert.Equal(t, uint16(0), cpu.I)
}

func TestExecute_UnimplementedName(t *testing.T) {
	cpu := New(Options{})

	err := cpu.Execute([]byte{0xD1, 0x23})

	var opErr *UnimplementedOpcodeError
	assert.True(t, errors.As(err, &opErr))
	assert.Equal(t, chip8cpu.DrwName, opErr.Name)
	assert.Contains(t, err.Error(), chip8cpu.DrwName)
}

func TestExecute_KeepsStateBetweenRuns(t *testing.T) {
	cpu := New(Options{})
	cpu.V[0xF] = 0x01

	assert.NoError(t, cpu.Execute([]byte{0x20, 0x04, 0x00, 0x00, 0xA1, 0x23}))
	assert.Len(t, cpu.Stack, 1)

	assert.NoError(t, cpu.Execute([]byte{0x00, 0xEE}))
	assert.Equal(t, uint16(0x0002), cpu.PC)
	assert.Len(t, cpu.Stack, 0)
	assert.Equal(t, uint16(0x0123), cpu.I)
	assert.Equal(t, uint8(0x01), cpu.V[0xF])
}

func TestRun_ContextCanceled(t *testing.T) {
	cpu := New(Options{})
	assert.NoError(t, cpu.Load([]byte{0x10, 0x00}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cpu.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, uint64(0), cpu.Steps())
}

func TestRun_Tracer(t *testing.T) {
	var traces []Trace
	cpu := New(Options{
		Tracer: func(trace Trace) {
			traces = append(traces, trace)
		},
	})

	err := cpu.Execute([]byte{0x20, 0x06, 0xA1, 0x23, 0xFF, 0xFF, 0xA4, 0x56, 0x00, 0xEE})
	assert.True(t, errors.Is(err, ErrUnimplementedOpcode))

	expected := []struct {
		address uint16
		kind    Kind
	}{
		{0x0000, KindCall},
		{0x0006, KindLoadIndex},
		{0x0008, KindReturn},
		{0x0002, KindLoadIndex},
		{0x0004, KindUnsupported},
	}
	assert.Len(t, traces, len(expected))
	for i, exp := range expected {
		assert.Equal(t, exp.address, traces[i].Address)
		assert.Equal(t, exp.kind, traces[i].Instruction.Kind)
	}
}
