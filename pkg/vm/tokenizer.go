package vm

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Tokenizer reads a .vm source one line at a time, truncating each line at
// the first "//", splitting the remainder on whitespace, and classifying
// every word. Grounded on the source tokenizer's per-line buffering
// strategy: VM tokens never need sub-line column tracking, so a
// bufio.Scanner replaces the assembly lexer's rune-at-a-time reader here.
type Tokenizer struct {
	scanner *bufio.Scanner
	pending []Token
	pos     int
	err     error // classification error reported once pending is drained
}

// NewTokenizer builds a Tokenizer reading from r.
func NewTokenizer(r io.Reader) *Tokenizer {
	return &Tokenizer{scanner: bufio.NewScanner(r)}
}

// Next returns the next token, or ok=false at clean end of input. A non-nil
// err is a *TokenError for the first unclassifiable word on a line, returned
// after the tokens that precede it on that line.
func (t *Tokenizer) Next() (Token, bool, error) {
	for t.pos >= len(t.pending) {
		if t.err != nil {
			err := t.err
			t.err = nil
			return Token{}, false, err
		}
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return Token{}, false, err
			}
			return Token{}, false, nil
		}
		line := t.scanner.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		tokens := make([]Token, 0, len(words))
		for _, w := range words {
			tok, err := classify(w)
			if err != nil {
				t.err = err
				break
			}
			tokens = append(tokens, tok)
		}
		t.pending = tokens
		t.pos = 0
	}
	tok := t.pending[t.pos]
	t.pos++
	return tok, true, nil
}

func classify(word string) (Token, error) {
	if n, err := strconv.ParseUint(word, 10, 16); err == nil {
		return Token{Kind: TokIntConst, IntConst: uint16(n)}, nil
	}
	if cmd, ok := commandWords[word]; ok {
		return Token{Kind: TokCommand, Command: cmd}, nil
	}
	if seg, ok := segmentWords[word]; ok {
		return Token{Kind: TokSegment, Segment: seg}, nil
	}
	if isIdentifier(word) {
		return Token{Kind: TokIdentifier, Identifier: word}, nil
	}
	return Token{}, &TokenError{Word: word}
}

func isIdentifier(word string) bool {
	if word == "" || !isIdentFirst(rune(word[0])) {
		return false
	}
	for _, r := range word[1:] {
		if !isIdentRest(r) {
			return false
		}
	}
	return true
}

func isIdentFirst(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_' || r == '.' || r == '$' || r == ':'
}

func isIdentRest(r rune) bool {
	return isIdentFirst(r) || (r >= '0' && r <= '9')
}
