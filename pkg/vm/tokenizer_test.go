package vm

import (
	"strings"
	"testing"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	tok := NewTokenizer(strings.NewReader(src))
	var tokens []Token
	for {
		tk, ok, err := tok.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		tokens = append(tokens, tk)
	}
	return tokens
}

func cmdTok(c Cmd) Token      { return Token{Kind: TokCommand, Command: c} }
func segTok(s Segment) Token  { return Token{Kind: TokSegment, Segment: s} }
func identTok(s string) Token { return Token{Kind: TokIdentifier, Identifier: s} }
func intTok(n uint16) Token    { return Token{Kind: TokIntConst, IntConst: n} }

func assertTokens(t *testing.T, got, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// Grounded on the Rust tokenizer's embedded "simple function" test.
func TestTokenizerSimpleFunction(t *testing.T) {
	src := strings.Join([]string{
		"// File name: projects/08/FunctionCalls/SimpleFunction/SimpleFunction.vm",
		"",
		"function SimpleFunction.test 2",
		"push local 0",
		"push local 1 // another comment",
		"add",
		"not//comment",
		"push argument 0//comment",
		"add",
		"push argument 1",
		"sub",
		"return",
	}, "\n")

	got := collectTokens(t, src)
	want := []Token{
		cmdTok(CmdFunction), identTok("SimpleFunction.test"), intTok(2),
		cmdTok(CmdPush), segTok(Local), intTok(0),
		cmdTok(CmdPush), segTok(Local), intTok(1),
		cmdTok(CmdAdd),
		cmdTok(CmdNot),
		cmdTok(CmdPush), segTok(Argument), intTok(0),
		cmdTok(CmdAdd),
		cmdTok(CmdPush), segTok(Argument), intTok(1),
		cmdTok(CmdSub),
		cmdTok(CmdReturn),
	}
	assertTokens(t, got, want)
}

// Grounded on the Rust tokenizer's embedded "class 2" (static segment) test.
func TestTokenizerStaticSegment(t *testing.T) {
	src := strings.Join([]string{
		"function Class2.set 0",
		"push argument 0",
		"pop static 0",
		"push constant 0",
		"return",
	}, "\n")

	got := collectTokens(t, src)
	want := []Token{
		cmdTok(CmdFunction), identTok("Class2.set"), intTok(0),
		cmdTok(CmdPush), segTok(Argument), intTok(0),
		cmdTok(CmdPop), segTok(Static), intTok(0),
		cmdTok(CmdPush), segTok(Constant), intTok(0),
		cmdTok(CmdReturn),
	}
	assertTokens(t, got, want)
}

func TestTokenizerInvalidToken(t *testing.T) {
	tok := NewTokenizer(strings.NewReader("push argument !bad\n"))
	for i := 0; i < 2; i++ {
		if _, ok, err := tok.Next(); !ok || err != nil {
			t.Fatalf("unexpected failure on token %d: ok=%v err=%v", i, ok, err)
		}
	}
	_, _, err := tok.Next()
	if err == nil {
		t.Fatalf("expected an error for !bad")
	}
	if _, ok := err.(*TokenError); !ok {
		t.Fatalf("expected *TokenError, got %T", err)
	}
}
