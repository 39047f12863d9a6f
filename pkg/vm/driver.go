package vm

import (
	"bytes"
	"fmt"
	"io"
)

// Source is one .vm translation unit: its file stem (used to namespace
// labels and static variables) and a reader over its contents.
type Source struct {
	Stem   string
	Reader io.Reader
}

// Result reports what one translator run produced, for the CLI's status
// line.
type Result struct {
	InstructionCount int
	LineCount        int
}

// Translate runs the full VM-to-assembly translation described by the code
// emitter's component design: the prologue is written once, then each
// source is tokenized, parsed, and coded in turn, sharing one Coder so its
// call/eq/lt/gt counters stay monotone across the whole run. The VM
// translator has no error recovery: the first error terminates translation.
func Translate(sources []Source, out io.Writer) (*Result, error) {
	lc := &lineCountingWriter{w: out}
	coder := NewCoder()
	if err := coder.WritePrologue(lc); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, src := range sources {
		ctx := &Context{FileName: src.Stem}
		tok := NewTokenizer(src.Reader)
		parser := NewParser(tok)

		for {
			cmd, ok, err := parser.Next()
			if err != nil {
				return result, fmt.Errorf("%s: %w", src.Stem, err)
			}
			if !ok {
				break
			}
			if fn, isFunction := cmd.(Function); isFunction {
				ctx.FunctionName = fn.Name
			}
			if err := coder.WriteCommand(lc, cmd, ctx); err != nil {
				return result, fmt.Errorf("%s: %w", src.Stem, err)
			}
			result.InstructionCount++
		}
	}
	result.LineCount = lc.lines
	return result, nil
}

// lineCountingWriter counts emitted newlines so the driver can report the
// CLI's "(M lines)" figure without the coder threading a counter through
// every write call.
type lineCountingWriter struct {
	w     io.Writer
	lines int
}

func (c *lineCountingWriter) Write(p []byte) (int, error) {
	c.lines += bytes.Count(p, []byte{'\n'})
	return c.w.Write(p)
}
