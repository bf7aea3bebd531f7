// Package options contains the program options.
package options

import (
	"github.com/retroenv/chip8core/internal/chip8"
)

// Positional contains positional arguments.
type Positional struct {
	File string `arg:"positional" usage:"ROM file to execute"`
}

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output file for display and listing (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	System     string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Origin     uint   `flag:"origin" usage:"memory address the program is loaded to, 0x200 for the conventional layout"`
	MaxSteps   uint64 `flag:"max-steps" usage:"maximum instructions to execute, 0 for unlimited" default:"1000000"`
	StackLimit int    `flag:"stack-limit" usage:"maximum call depth, 0 for unbounded"`
	Strict     bool   `flag:"strict" usage:"fail on unimplemented opcodes"`
	Debug      bool   `flag:"debug" usage:"enable debug logging and instruction tracing"`
	Quiet      bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output options.
type OutputFlags struct {
	Display bool `flag:"display" usage:"render the display buffer after execution"`
	Listing bool `flag:"list" usage:"print a disassembly listing of the program"`
}

// Program options of the runner.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// DefaultMaxSteps is the default instruction budget of a single run.
const DefaultMaxSteps = 1_000_000

// CPU returns the execution core options for the program options.
func (p Program) CPU() chip8.Options {
	return chip8.Options{
		LoadOrigin: uint16(p.Origin),
		StackLimit: p.StackLimit,
		StepLimit:  p.MaxSteps,
	}
}
