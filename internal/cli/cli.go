// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8core/internal/chip8"
	"github.com/retroenv/chip8core/internal/options"
	"github.com/retroenv/retrogolib/arch"
	retrocli "github.com/retroenv/retrogolib/cli"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	var opts options.Program
	var positional options.Positional
	flags := newFlagSet(&opts, &positional)

	args, err := flags.Parse(os.Args[1:])
	if err != nil {
		// the flag set already printed the usage for invalid flags and -h
		return opts, &UsageError{err: err}
	}
	if positional.File == "" && opts.Batch == "" && opts.Input == "" {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" && positional.File != "" {
		opts.Input = positional.File
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// newFlagSet registers all option sections of the runner.
func newFlagSet(opts *options.Program, positional *options.Positional) *retrocli.FlagSet {
	flags := retrocli.NewFlagSet("chip8run")
	flags.AddSection("Parameters", &opts.Parameters)
	flags.AddSection("Flags", &opts.Flags)
	flags.AddSection("Output", &opts.OutputFlags)
	flags.AddPositional(positional)
	return flags
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *retrocli.FlagSet
	msg   string
	err   error
}

func (e *UsageError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage prints the usage information grouped by option section,
// or the reason of the error if the usage was already printed.
func (e *UsageError) ShowUsage() {
	switch {
	case e.flags != nil:
		e.flags.ShowUsage()
	case e.err == nil && e.msg != "":
		fmt.Println(e.msg)
	}
}

// validateArgs checks that no flags follow the file to execute.
// The file itself is consumed as positional argument before.
func validateArgs(args []string) error {
	for _, arg := range args {
		if arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to execute, please pass the file to execute as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(opts.System)
	if opts.System == "chip-8" {
		opts.System = string(arch.CHIP8System)
	}

	if opts.System != "" {
		system, _ := arch.SystemFromString(opts.System)
		if system != arch.CHIP8System {
			return fmt.Errorf("unsupported system: %s. Valid options: %s", opts.System, arch.CHIP8System)
		}
	}

	if opts.Origin >= chip8.MemorySize {
		return fmt.Errorf("load origin $%X outside of memory (max $%X)", opts.Origin, chip8.MemorySize-1)
	}
	if opts.StackLimit < 0 {
		return fmt.Errorf("invalid stack limit %d", opts.StackLimit)
	}
	return nil
}

// validateOptionCombinations checks for conflicting option combinations
func validateOptionCombinations(opts options.Program) error {
	if opts.Batch != "" && opts.Output != "" {
		return errors.New("-o can not be combined with -batch, output of every file is written to the console")
	}
	if opts.Output != "" && !opts.Display && !opts.Listing {
		return errors.New("-o requires -display or -list")
	}
	return nil
}
