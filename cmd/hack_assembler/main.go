package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/teris-io/cli"
	"n2t.dev/toolchain/pkg/asm"
)

var Description = strings.ReplaceAll(`
The Hack Assembler takes assembly language code written in the Hack assembly language
and translates it into machine code that can be executed by the Hack computer. The process
involves parsing the assembly code, resolving symbols, and generating machine code.
`, "\n", " ")

var HackAssembler = cli.New(Description).
	WithArg(cli.NewArg("input", "The assembler (.asm) file to be compiled")).
	WithOption(cli.NewOption("out", "The compiled binary output (.hack)").
		WithType(cli.TypeString).WithChar('o')).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	outPath := options["out"]
	if outPath == "" {
		outPath = "out.hack"
	}

	input, err := os.Open(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}
	defer input.Close()

	output, err := os.Create(outPath)
	if err != nil {
		fmt.Printf("ERROR: Unable to open output file: %s\n", err)
		return -1
	}
	defer output.Close()

	start := time.Now()

	// Assemble drives the full two-pass translation itself; parse errors are
	// collected and logged rather than aborting the run, per the driver's
	// own MaxParseErrors bound.
	result, err := asm.Assemble(input)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete assembly: %s\n", err)
		return -1
	}

	for _, parseErr := range result.Errors {
		fmt.Printf("ERROR: %s\n", parseErr)
	}

	for _, line := range result.Lines {
		if _, err := fmt.Fprintf(output, "%s\n", line); err != nil {
			fmt.Printf("ERROR: Unable to write output file: %s\n", err)
			return -1
		}
	}

	fmt.Printf("Translated %d instructions (%d lines) in %s\n",
		result.InstructionCount, result.LineCount, time.Since(start))
	return 0
}

func main() { os.Exit(HackAssembler.Run(os.Args, os.Stdout)) }
