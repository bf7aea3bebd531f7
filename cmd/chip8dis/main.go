// Package main implements a CHIP-8 ROM listing tool
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8core/internal/chip8"
	"github.com/retroenv/chip8core/internal/loader"
	"github.com/retroenv/chip8core/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	Output string `flag:"o" usage:"name of the output .asm file, printed on console if no name given"`
	Origin uint   `flag:"origin" usage:"memory address the program is loaded to" default:"512"`

	Quiet       bool `flag:"q" usage:"perform operations quietly"`
	Unsupported bool `flag:"unsupported" usage:"report instructions the execution core does not support"`

	NoHexComments bool `flag:"nohexcomments" usage:"do not output opcode bytes as hex values in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"do not output offsets in comments"`
	ZeroBytes     bool `flag:"z" usage:"output the trailing zero bytes of the program"`
}

type positionalArgs struct {
	File string `arg:"positional" usage:"file to list" required:"true"`
}

func main() {
	options, input := readArguments()

	if !options.Quiet {
		printBanner()
	}

	if err := listFile(options, input); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("listing failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() (optionFlags, string) {
	var options optionFlags
	var positional positionalArgs

	flags := cli.NewFlagSet("chip8dis")
	flags.AddSection("Options", &options)
	flags.AddPositional(&positional)

	_, err := flags.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, cli.ErrHelpRequested) {
			os.Exit(0)
		}
		var missing *cli.MissingArgsError
		if errors.As(err, &missing) {
			fmt.Fprintln(os.Stderr, err)
			printBanner()
			flags.ShowUsage()
		}
		os.Exit(1)
	}

	if options.Origin >= chip8.MemorySize {
		fmt.Fprintf(os.Stderr, "load origin $%X outside of memory (max $%X)\n", options.Origin, chip8.MemorySize-1)
		os.Exit(1)
	}
	return options, positional.File
}

func printBanner() {
	fmt.Println("[-----------------------------------]")
	fmt.Println("[ chip8dis - CHIP-8 ROM listing     ]")
	fmt.Printf("[-----------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func listFile(options optionFlags, input string) error {
	origin := uint16(options.Origin)
	program, err := loader.New().Load(input, origin)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var outputFile io.WriteCloser
	if options.Output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(options.Output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", options.Output, err)
		}
	}

	listing := writer.New(program, origin, outputFile, writer.Options{
		HexComments:    !options.NoHexComments,
		OffsetComments: !options.NoOffsets,
		ZeroBytes:      options.ZeroBytes,
	})
	if err = listing.Write(); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	if options.Output != "" {
		if err = outputFile.Close(); err != nil {
			return fmt.Errorf("closing file: %w", err)
		}
	}

	if options.Unsupported {
		reportUnsupported(chip8.Disassemble(program, origin))
	}
	return nil
}

// reportUnsupported prints every instruction the execution core would halt on.
func reportUnsupported(lines []chip8.Line) {
	var count int
	for _, line := range lines {
		if len(line.Data) < 2 || line.Instruction.Supported() {
			continue
		}
		count++
		name := line.Instruction.Name()
		if name == "" {
			name = "invalid"
		}
		fmt.Fprintf(os.Stderr, "%s %s\n", line, name)
	}
	fmt.Fprintf(os.Stderr, "%d of %d instructions not supported by the execution core\n", count, len(lines))
}
