package asm

import (
	"fmt"
	"io"

	"n2t.dev/toolchain/pkg/hack"
	"n2t.dev/toolchain/pkg/reader"
)

// MaxParseErrors bounds how many per-line parse errors the driver tolerates
// in one assembly before it gives up and flushes whatever it has.
const MaxParseErrors = 10

// Result is everything produced by one run of Assemble: the binary output
// lines (pass 2), the accumulated diagnostics (pass 1), and the counters
// the CLI reports on success.
type Result struct {
	Lines            []string
	Errors           []error
	InstructionCount int
	LineCount        int
}

// Assemble runs the full two-pass translation described by the assembler's
// component design: pass 1 parses every line, resolving labels immediately
// and deferring variables; the interpass step distributes RAM addresses to
// pending variables; pass 2 encodes the retained instruction list to 16-bit
// binary text lines.
func Assemble(src io.Reader) (*Result, error) {
	cr := reader.New(src)
	syms := NewSymbolTable()
	lexer := NewLexer(cr, syms)

	var program []Statement
	var errs []error
	var ip uint16

	for {
		stmt, ok, err := lexer.Next(ip)
		if err != nil {
			errs = append(errs, err)
			if len(errs) >= MaxParseErrors {
				break
			}
			continue
		}
		if !ok {
			break
		}

		if _, isLabel := stmt.(LabelDecl); isLabel {
			continue // labels resolve the symbol table but never advance IP
		}

		if ip >= hack.MaxROMAddress {
			errs = append(errs, errROMExhausted)
			break
		}
		program = append(program, stmt)
		ip++
	}

	ramErr := syms.DistributeRAMAddresses()
	if ramErr != nil {
		errs = append(errs, ramErr)
	}

	result := &Result{
		Errors:           errs,
		InstructionCount: len(program),
		LineCount:        cr.LineNumber(),
	}

	// RAM exhaustion leaves variables without an address: nothing is encoded.
	if ramErr != nil {
		return result, nil
	}

	for _, stmt := range program {
		word, err := encode(stmt, syms)
		if err != nil {
			// The lexer and symbol table already validated everything that
			// reaches pass 2; an error here means those invariants broke.
			return result, fmt.Errorf("internal error encoding %#v: %w", stmt, err)
		}
		result.Lines = append(result.Lines, fmt.Sprintf("%016b", word))
	}

	return result, nil
}

func encode(stmt Statement, syms *SymbolTable) (uint16, error) {
	switch s := stmt.(type) {
	case AInstruction:
		addr := s.Value
		if s.Kind == ASymbol {
			addr = syms.Address(s.Slot)
		}
		return hack.EncodeA(addr)
	case CInstruction:
		return hack.EncodeC(s.Dest, s.Comp, s.Jump)
	default:
		return 0, fmt.Errorf("unrecognised statement type %T", stmt)
	}
}
