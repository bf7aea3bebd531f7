// Package pipeline orchestrates the execution workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/chip8core/internal/chip8"
	"github.com/retroenv/chip8core/internal/config"
	"github.com/retroenv/chip8core/internal/detector"
	"github.com/retroenv/chip8core/internal/loader"
	"github.com/retroenv/chip8core/internal/options"
	"github.com/retroenv/chip8core/internal/render"
	"github.com/retroenv/chip8core/internal/writer"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Pipeline orchestrates the complete execution workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// Result contains the outcome of a single program execution.
type Result struct {
	System  arch.System
	Program []byte
	CPU     *chip8.CPU

	// Halt is set when execution stopped on an unimplemented opcode and
	// strict mode was not enabled.
	Halt *chip8.UnimplementedOpcodeError

	// Executed contains the addresses of all executed instructions.
	Executed set.Set[uint16]
}

// New creates a new execution pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete execution pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, out io.Writer) (*Result, error) {
	system, err := p.detector.Detect(opts)
	if err != nil {
		return nil, fmt.Errorf("detecting system: %w", err)
	}

	program, err := p.loader.Load(opts.Input, uint16(opts.Origin))
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	result, err := p.ExecuteProgram(ctx, program, opts, out)
	if err != nil {
		return nil, err
	}
	result.System = system
	return result, nil
}

// ExecuteProgram runs the execution pipeline with a pre-loaded program.
// This is useful for testing and programmatic usage where the program is already in memory.
func (p *Pipeline) ExecuteProgram(ctx context.Context, program []byte, opts options.Program,
	out io.Writer) (*Result, error) {

	result := &Result{
		System:   arch.CHIP8System,
		Program:  program,
		Executed: set.New[uint16](),
	}

	p.printInfo(opts, program)

	if opts.Listing {
		if err := writeListing(out, program, uint16(opts.Origin)); err != nil {
			return nil, fmt.Errorf("writing listing: %w", err)
		}
	}

	cpuOpts := config.CreateCPUOptions(p.logger, opts, func(t chip8.Trace) {
		result.Executed.Add(t.Address)
	})
	result.CPU = chip8.New(cpuOpts)

	if err := result.CPU.Load(program); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	runErr := result.CPU.Run(ctx)
	p.printState(result)

	if err := p.handleRunError(runErr, opts, result); err != nil {
		return nil, err
	}

	if opts.Display {
		if err := render.New(out).Render(result.CPU.Display[:]); err != nil {
			return nil, fmt.Errorf("rendering display: %w", err)
		}
	}

	return result, nil
}

// handleRunError classifies the error returned by the execution core.
// Unimplemented opcodes stop execution without failing unless strict mode is enabled.
func (p *Pipeline) handleRunError(err error, opts options.Program, result *Result) error {
	if err == nil {
		p.logger.Debug("Program finished")
		return nil
	}

	var opErr *chip8.UnimplementedOpcodeError
	if errors.As(err, &opErr) && !opts.Strict {
		result.Halt = opErr
		p.logger.Warn("Execution halted on unimplemented opcode",
			log.Hex("address", opErr.Address),
			log.Hex("opcode", opErr.Word),
			log.String("instruction", opErr.Name))
		return nil
	}

	return fmt.Errorf("executing program: %w", err)
}

// printInfo prints information about the program being executed.
func (p *Pipeline) printInfo(opts options.Program, program []byte) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Executing Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.Hex("origin", uint16(opts.Origin)),
	)
}

// printState logs the processor state after execution.
func (p *Pipeline) printState(result *Result) {
	cpu := result.CPU
	p.logger.Info("Processor state",
		log.Hex("pc", cpu.PC),
		log.Hex("i", cpu.I),
		log.Int("stack_depth", len(cpu.Stack)),
		log.Int("steps", int(cpu.Steps())),
		log.Int("addresses", len(result.Executed)),
	)

	if len(cpu.Stack) > 0 {
		p.logger.Debug("Call stack not balanced",
			log.Hex("top", cpu.Stack[len(cpu.Stack)-1]))
	}
}

// writeListing writes the disassembly listing of the program.
func writeListing(w io.Writer, program []byte, origin uint16) error {
	listing := writer.New(program, origin, w, writer.Options{
		HexComments:    true,
		OffsetComments: true,
	})
	return listing.Write()
}
