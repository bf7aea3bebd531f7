// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8core/internal/chip8"
	"github.com/retroenv/chip8core/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateCPUOptions returns the execution core options for the program options.
// Every executed instruction is passed to the trace function, in debug mode
// it is also logged.
func CreateCPUOptions(logger *log.Logger, opts options.Program, trace func(chip8.Trace)) chip8.Options {
	cpuOpts := opts.CPU()
	cpuOpts.Tracer = func(t chip8.Trace) {
		if trace != nil {
			trace(t)
		}
		if opts.Debug {
			logger.Debug("Executing",
				log.Hex("address", t.Address),
				log.Hex("opcode", t.Instruction.Word),
				log.String("instruction", t.Instruction.String()))
		}
	}
	return cpuOpts
}
