// Package chip8 implements the execution core of a CHIP-8 style virtual machine.
//
// # Processor State
//
// The CPU type holds everything the core mutates:
//   - PC: 16-bit program counter, advanced by 2 on every fetch
//   - V0-VF: RegisterCount general-purpose 8-bit registers
//   - I: 16-bit index register
//   - Stack: growable call stack of return addresses
//   - Memory: MemorySize bytes, the execution medium
//   - Display: DisplayWidth x DisplayHeight one-byte pixel cells
//   - DelayTimer, SoundTimer: 8-bit counters driven from outside the core
//
// # Execution
//
// A program is copied into memory at the load origin (0 unless configured,
// ProgramStart is the conventional value) and executed until the program
// counter leaves the loaded image. Every instruction is 2 bytes, big-endian.
//
// Supported instructions:
//   - 00E0 cls: clear the display
//   - 00EE ret: return from subroutine
//   - 0nnn sys: legacy machine call, ignored
//   - 1nnn jp: absolute jump
//   - 2nnn call: subroutine call
//   - Annn ld I: load index register
//
// Any other instruction stops execution with an UnimplementedOpcodeError so
// callers can tell a finished program apart from an unsupported one.
//
// # Usage Example
//
//	cpu := chip8.New(chip8.Options{})
//	if err := cpu.Execute([]byte{0xA2, 0x34}); err != nil {
//		return fmt.Errorf("executing program: %w", err)
//	}
//	fmt.Printf("I=$%03X\n", cpu.I)
package chip8
