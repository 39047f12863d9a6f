package asm

import (
	"strconv"
	"strings"

	"n2t.dev/toolchain/pkg/hack"
	"n2t.dev/toolchain/pkg/reader"
)

const maxASCII = rune(127)

const maxSymbolLen = 255

// Lexer recognises one Hack assembly instruction at a time from a character
// stream, following the eleven-state recogniser of the assembly grammar:
// Start, AOpen, ASym, AInt, LFirst, LRest, LClose, CFirst, CComp, CJump1,
// CJump2. The states are not reified as a literal enum here; they fall out
// of which parse* method is entered and how far it gets before returning.
type Lexer struct {
	cr   *reader.CharReader
	syms *SymbolTable
}

// NewLexer builds a Lexer reading from cr, interning A-operand and label
// symbols into syms as it goes.
func NewLexer(cr *reader.CharReader, syms *SymbolTable) *Lexer {
	return &Lexer{cr: cr, syms: syms}
}

// Next returns the next statement. ok is false only at clean end of input;
// a non-nil err means this line failed to parse (stmt is nil) but the
// stream has already been resynchronised to the following line, so callers
// should keep calling Next to continue past the error. ip is the driver's
// current ROM instruction pointer, needed to resolve a label declaration
// to its target address without waiting for the driver to round-trip it.
func (lx *Lexer) Next(ip uint16) (Statement, bool, error) {
	for {
		r, ok, err := lx.nextRune()
		if err != nil {
			lx.skipToEOL()
			if !isParseError(err) {
				return nil, false, err
			}
			return nil, true, err
		}
		if !ok {
			return nil, false, nil
		}

		switch {
		case r == '\n', r == ' ', r == '\t':
			continue
		case r == '#':
			lx.skipToEOL()
			continue
		case r == '@':
			stmt, err := lx.parseAInstruction()
			if err == nil {
				err = lx.expectLineEnd()
			}
			if err != nil {
				lx.skipToEOL()
				if !isParseError(err) {
					return nil, false, err
				}
				return nil, true, err
			}
			return stmt, true, nil
		case r == '(':
			stmt, err := lx.parseLabelDecl(ip)
			if err == nil {
				err = lx.expectLineEnd()
			}
			if err != nil {
				lx.skipToEOL()
				if !isParseError(err) {
					return nil, false, err
				}
				return nil, true, err
			}
			return stmt, true, nil
		case isMnemonicChar(r):
			stmt, err := lx.parseCInstruction(r)
			if err == nil {
				err = lx.expectLineEnd()
			}
			if err != nil {
				lx.skipToEOL()
				if !isParseError(err) {
					return nil, false, err
				}
				return nil, true, err
			}
			return stmt, true, nil
		default:
			err := lx.errAtRune(ErrUnexpectedChar, r)
			lx.skipToEOL()
			return nil, true, err
		}
	}
}

func isParseError(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}

// nextRune consumes the next rune, turning a non-ASCII byte into a
// positioned ErrNotASCII error rather than letting it reach token
// classification.
func (lx *Lexer) nextRune() (rune, bool, error) {
	r, ok, err := lx.cr.Next()
	if err != nil || !ok {
		return r, ok, err
	}
	if r > maxASCII {
		return r, true, lx.errAt(ErrNotASCII)
	}
	return r, true, nil
}

// peekRune mirrors nextRune without consuming.
func (lx *Lexer) peekRune() (rune, bool, error) {
	r, ok, err := lx.cr.Peek()
	if err != nil || !ok {
		return r, ok, err
	}
	if r > maxASCII {
		return r, true, lx.errAt(ErrNotASCII)
	}
	return r, true, nil
}

// ----------------------------------------------------------------------------
// A-instructions: AOpen -> ASym | AInt

func (lx *Lexer) parseAInstruction() (Statement, error) {
	r, ok, err := lx.peekSkipSpaces()
	if err != nil {
		return nil, err
	}
	if !ok || r == '\n' || r == '#' {
		return nil, lx.errAt(ErrAInsMissingArg)
	}

	switch {
	case isDigit(r):
		lit := lx.scanDigits()
		if err := lx.checkDigitTerminator(); err != nil {
			return nil, err
		}
		value, convErr := strconv.ParseUint(lit, 10, 32)
		if convErr != nil || value > uint64(hack.MaxROMAddress) {
			return nil, lx.errAtLiteral(ErrIntOverflow, lit)
		}
		return AInstruction{Kind: ALiteral, Value: uint16(value)}, nil

	case isSymbolFirst(r):
		name, err := lx.scanSymbol()
		if err != nil {
			return nil, err
		}
		if err := lx.checkSymbolTerminator(); err != nil {
			return nil, err
		}
		return AInstruction{Kind: ASymbol, Slot: lx.syms.Intern(name)}, nil

	default:
		return nil, lx.errAtRune(ErrExpectedFirstSymChar, r)
	}
}

// ----------------------------------------------------------------------------
// Label declarations: LFirst -> LRest -> LClose

func (lx *Lexer) parseLabelDecl(ip uint16) (Statement, error) {
	r, ok, err := lx.peekSkipSpaces()
	if err != nil {
		return nil, err
	}
	if !ok || r == '\n' || r == '#' || r == ')' {
		return nil, lx.errAt(ErrLInsMissingSym)
	}
	if !isSymbolFirst(r) {
		return nil, lx.errAtRune(ErrExpectedFirstSymChar, r)
	}

	name, err := lx.scanSymbol()
	if err != nil {
		return nil, err
	}

	r, ok, err = lx.peekSkipSpaces()
	if err != nil {
		return nil, err
	}
	if !ok || r == '\n' || r == '#' {
		return nil, lx.errAt(ErrLInsMissingClose)
	}
	if r != ')' {
		return nil, lx.errAtRune(ErrExpectedSymChar, r)
	}
	lx.nextRune() // consume ')'

	if !lx.syms.SetLabel(name, ip) {
		return nil, lx.errAtLiteral(ErrDuplicateLabel, name)
	}
	return LabelDecl{Name: name}, nil
}

// ----------------------------------------------------------------------------
// C-instructions: CFirst -> CComp | CJump1 -> CJump2

func (lx *Lexer) parseCInstruction(first rune) (Statement, error) {
	tok1, err := lx.scanMnemonicToken(first)
	if err != nil {
		return nil, err
	}

	r, ok, err := lx.peekRune()
	if err != nil {
		return nil, err
	}

	switch {
	case ok && r == '=':
		lx.nextRune()
		dest := tok1
		if _, valid := hack.DestTable[dest]; !valid {
			return nil, lx.errAtMnemonic(SlotDest, dest)
		}

		c, ok, err := lx.nextRune()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, lx.errAt(ErrUnexpectedChar)
		}
		comp, err := lx.scanMnemonicToken(c)
		if err != nil {
			return nil, err
		}
		if _, valid := hack.CompTable[comp]; !valid {
			return nil, lx.errAtMnemonic(SlotComp, comp)
		}

		jump, hasJump, err := lx.maybeScanJump()
		if err != nil {
			return nil, err
		}
		if hasJump {
			return CInstruction{Dest: dest, Comp: comp, Jump: jump}, nil
		}
		return CInstruction{Dest: dest, Comp: comp}, nil

	case ok && r == ';':
		comp := tok1
		if _, valid := hack.CompTable[comp]; !valid {
			return nil, lx.errAtMnemonic(SlotComp, comp)
		}
		lx.nextRune()

		j, ok, err := lx.nextRune()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, lx.errAt(ErrUnexpectedChar)
		}
		jump, err := lx.scanMnemonicToken(j)
		if err != nil {
			return nil, err
		}
		if _, valid := hack.JumpTable[jump]; !valid {
			return nil, lx.errAtMnemonic(SlotJump, jump)
		}
		return CInstruction{Comp: comp, Jump: jump}, nil

	default:
		comp := tok1
		if _, valid := hack.CompTable[comp]; !valid {
			return nil, lx.errAtMnemonic(SlotComp, comp)
		}
		return nil, lx.errAt(ErrCInsNop)
	}
}

// maybeScanJump consumes an optional ";<jump>" suffix after a comp mnemonic.
func (lx *Lexer) maybeScanJump() (jump string, ok bool, err error) {
	r, has, err := lx.peekRune()
	if err != nil || !has || r != ';' {
		return "", false, err
	}
	lx.nextRune()

	j, has, err := lx.nextRune()
	if err != nil {
		return "", false, err
	}
	if !has {
		return "", false, lx.errAt(ErrUnexpectedChar)
	}
	jump, err = lx.scanMnemonicToken(j)
	if err != nil {
		return "", false, err
	}
	if _, valid := hack.JumpTable[jump]; !valid {
		return "", false, lx.errAtMnemonic(SlotJump, jump)
	}
	return jump, true, nil
}

// ----------------------------------------------------------------------------
// Shared scanning helpers

func (lx *Lexer) scanDigits() string {
	var sb strings.Builder
	for {
		r, ok, _ := lx.peekRune()
		if !ok || !isDigit(r) {
			break
		}
		lx.nextRune()
		sb.WriteRune(r)
	}
	return sb.String()
}

func (lx *Lexer) checkDigitTerminator() error {
	r, ok, err := lx.peekRune()
	if err != nil {
		return err
	}
	if !ok || r == '\n' || r == ' ' || r == '\t' || r == '#' {
		return nil
	}
	return lx.errAtRune(ErrExpectedDigit, r)
}

// scanSymbol consumes a symbol starting at the rune last peeked by the
// caller (which must already be confirmed to satisfy isSymbolFirst).
func (lx *Lexer) scanSymbol() (string, error) {
	first, _, err := lx.nextRune()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteRune(first)

	for {
		r, ok, err := lx.peekRune()
		if err != nil {
			return "", err
		}
		if !ok || !isSymbolRest(r) {
			break
		}
		lx.nextRune()
		sb.WriteRune(r)
	}

	if sb.Len() > maxSymbolLen {
		return "", lx.errAtLiteral(ErrSymOverflow, sb.String())
	}
	return sb.String(), nil
}

func (lx *Lexer) checkSymbolTerminator() error {
	r, ok, err := lx.peekRune()
	if err != nil {
		return err
	}
	if !ok || r == '\n' || r == ' ' || r == '\t' || r == '#' {
		return nil
	}
	return lx.errAtRune(ErrExpectedSymChar, r)
}

func (lx *Lexer) scanMnemonicToken(first rune) (string, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		r, ok, err := lx.peekRune()
		if err != nil {
			return "", err
		}
		if !ok || !isMnemonicChar(r) {
			break
		}
		lx.nextRune()
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// peekSkipSpaces consumes any run of spaces/tabs and returns the first rune
// after them, without consuming it.
func (lx *Lexer) peekSkipSpaces() (rune, bool, error) {
	for {
		r, ok, err := lx.peekRune()
		if err != nil || !ok || (r != ' ' && r != '\t') {
			return r, ok, err
		}
		lx.nextRune()
	}
}

// skipToEOL discards the remainder of the current line, consuming the
// trailing newline itself, so the lexer resynchronises cleanly after an
// error.
func (lx *Lexer) skipToEOL() {
	for {
		r, ok, err := lx.cr.Next()
		if err != nil || !ok || r == '\n' {
			return
		}
	}
}

// expectLineEnd allows only trailing whitespace and an optional comment
// after a complete instruction.
func (lx *Lexer) expectLineEnd() error {
	r, ok, err := lx.peekSkipSpaces()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if r == '#' {
		lx.skipToEOL()
		return nil
	}
	if r == '\n' {
		lx.nextRune()
		return nil
	}
	return lx.errAtRune(ErrUnexpectedChar, r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isASCIILetter(r rune) bool { return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') }

func isSymbolFirst(r rune) bool {
	return isASCIILetter(r) || r == '_' || r == '.' || r == '$' || r == ':'
}

func isSymbolRest(r rune) bool { return isSymbolFirst(r) || isDigit(r) }

func isMnemonicChar(r rune) bool {
	return isASCIILetter(r) || isDigit(r) || r == '+' || r == '-' || r == '!' || r == '&' || r == '|'
}

// ----------------------------------------------------------------------------
// Error constructors, stamped with the lexer's current source position.

func (lx *Lexer) errAt(kind ErrorKind) *ParseError {
	return &ParseError{Kind: kind, Line: lx.cr.LineNumber(), Column: lx.cr.ColumnOffset(), Source: lx.cr.Line()}
}

func (lx *Lexer) errAtRune(kind ErrorKind, r rune) *ParseError {
	e := lx.errAt(kind)
	e.Literal = string(r)
	return e
}

func (lx *Lexer) errAtLiteral(kind ErrorKind, lit string) *ParseError {
	e := lx.errAt(kind)
	e.Literal = lit
	return e
}

func (lx *Lexer) errAtMnemonic(slot MnemonicSlot, lit string) *ParseError {
	e := lx.errAt(ErrUnknownMnemonic)
	e.Slot = slot
	e.Literal = lit
	return e
}
