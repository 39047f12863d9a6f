package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/teris-io/cli"
	"n2t.dev/toolchain/pkg/vm"
)

var Description = strings.ReplaceAll(`
The VM Translator translates programs (composed of multiple modules/files) written in
the VM language into Hack assembly code that can be further elaborated. The VM language
is a higher-level (bytecode-like) language tailored for use with the Hack computer arch.
`, "\n", " ")

var VmTranslator = cli.New(Description).
	// 'AsOptional()' allows to have more than one input, each either a .vm file or a
	// directory that is walked recursively for .vm files.
	WithArg(cli.NewArg("inputs", "The bytecode (.vm) files or directories to be compiled").
		AsOptional().WithType(cli.TypeString)).
	WithOption(cli.NewOption("out", "The compiled binary output (.asm)").
		WithType(cli.TypeString).WithChar('o')).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	outPath := options["out"]
	if outPath == "" {
		outPath = "out.asm"
	}

	paths, err := collectVmFiles(args)
	if err != nil {
		fmt.Printf("ERROR: Unable to walk input paths: %s\n", err)
		return -1
	}
	if len(paths) == 0 {
		fmt.Printf("ERROR: No .vm files found among the given inputs\n")
		return -1
	}

	var sources []vm.Source
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			fmt.Printf("ERROR: Unable to open input file: %s\n", err)
			return -1
		}
		defer f.Close()

		stem := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		sources = append(sources, vm.Source{Stem: stem, Reader: f})
	}

	output, err := os.Create(outPath)
	if err != nil {
		fmt.Printf("ERROR: Unable to open output file: %s\n", err)
		return -1
	}
	defer output.Close()

	start := time.Now()

	// Translate has no error recovery: the first malformed command in any
	// source aborts the whole run.
	result, err := vm.Translate(sources, output)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete translation: %s\n", err)
		return -1
	}

	fmt.Printf("Translated %d instructions (%d lines) in %s\n",
		result.InstructionCount, result.LineCount, time.Since(start))
	return 0
}

// collectVmFiles expands each input argument into a flat list of .vm file
// paths, in argument order: a file argument is taken as-is, a directory is
// walked recursively in filepath.Walk's lexical order.
func collectVmFiles(inputs []string) ([]string, error) {
	var paths []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			paths = append(paths, input)
			continue
		}

		err = filepath.Walk(input, func(p string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || filepath.Ext(p) != ".vm" {
				return nil
			}
			paths = append(paths, p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func main() { os.Exit(VmTranslator.Run(os.Args, os.Stdout)) }
