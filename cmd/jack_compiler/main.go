package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/teris-io/cli"
	"n2t.dev/toolchain/pkg/jack"
)

var Description = strings.ReplaceAll(`
The Jack front end tokenizes and parses programs (composed of multiple classes/files)
written in the Jack language into a class-level AST skeleton: class name, subroutine
signatures and statement shapes. Type-checking and lowering to VM code are out of scope;
this is the front end of a higher-level compiler the rest of the toolchain doesn't need.
`, "\n", " ")

var JackCompiler = cli.New(Description).
	WithArg(cli.NewArg("inputs", "The source (.jack) files or directories to be parsed").
		AsOptional().WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	paths, err := collectJackFiles(args)
	if err != nil {
		fmt.Printf("ERROR: Unable to walk input paths: %s\n", err)
		return -1
	}
	if len(paths) == 0 {
		fmt.Printf("ERROR: No .jack files found among the given inputs\n")
		return -1
	}

	start := time.Now()
	program := jack.Program{}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			fmt.Printf("ERROR: Unable to open input file: %s\n", err)
			return -1
		}

		parser := jack.NewParser(f)
		class, err := parser.Parse()
		f.Close()
		if err != nil {
			fmt.Printf("ERROR: Unable to parse %s: %s\n", path, err)
			return -1
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		program[stem] = class
	}

	for _, stem := range sortedKeys(program) {
		class := program[stem]
		fmt.Printf("%s: class %s, %d field(s), %d subroutine(s)\n",
			stem, class.Name, class.Fields.Len(), class.Subroutines.Len())
		for _, sub := range class.Subroutines.Entries() {
			fmt.Printf("  %s %s(%d arg(s)) -> %s\n", sub.Type, sub.Name, sub.Arguments.Len(), sub.Return)
		}
	}

	fmt.Printf("Parsed %d class(es) in %s\n", len(program), time.Since(start))
	return 0
}

func sortedKeys(program jack.Program) []string {
	keys := make([]string, 0, len(program))
	for k := range program {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// collectJackFiles expands each input argument into a flat list of .jack
// file paths: a file argument is taken as-is, a directory is walked
// recursively.
func collectJackFiles(inputs []string) ([]string, error) {
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
			if info.IsDir() || filepath.Ext(p) != ".jack" {
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

func main() { os.Exit(JackCompiler.Run(os.Args, os.Stdout)) }
