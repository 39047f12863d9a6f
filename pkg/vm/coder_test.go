package vm

import (
	"strconv"
	"strings"
	"testing"
)

func TestCoderPushConstantAdd(t *testing.T) {
	var sb strings.Builder
	coder := NewCoder()
	ctx := &Context{FileName: "Main"}

	cmds := []Command{
		Push{Segment: Constant, Index: 7},
		Push{Segment: Constant, Index: 8},
		Add{},
	}
	for _, cmd := range cmds {
		if err := coder.WriteCommand(&sb, cmd, ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got := sb.String()
	for _, want := range []string{"@7\nD=A\n@SP\nM=M+1\nA=M-1\nM=D\n", "@SP\nAM=M-1\nD=M\nA=A-1\nM=D+M\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing fragment %q in:\n%s", want, got)
		}
	}
}

func TestCoderSegmentLabels(t *testing.T) {
	ctx := &Context{FileName: "Main"}

	test := func(name string, seg Segment, idx uint16, want string) {
		t.Run(name, func(t *testing.T) {
			label, err := segmentLabel(ctx, seg, idx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if label != want {
				t.Fatalf("got %q, want %q", label, want)
			}
		})
	}

	test("argument", Argument, 3, "ARG")
	test("local", Local, 0, "LCL")
	test("this", This, 0, "THIS")
	test("that", That, 0, "THAT")
	test("pointer 0", Pointer, 0, "THIS")
	test("pointer 1", Pointer, 1, "THAT")
	test("temp 0", Temp, 0, "R5")
	test("temp 7", Temp, 7, "R12")
	test("static", Static, 3, "Main.3")

	if _, err := segmentLabel(ctx, Pointer, 2); err == nil {
		t.Fatalf("expected out-of-bounds error for pointer 2")
	}
	if _, err := segmentLabel(ctx, Temp, 8); err == nil {
		t.Fatalf("expected out-of-bounds error for temp 8")
	}
	if _, err := segmentLabel(ctx, Static, 240); err == nil {
		t.Fatalf("expected out-of-bounds error for static 240")
	}
}

func TestCoderStaticNamespacing(t *testing.T) {
	a, err := segmentLabel(&Context{FileName: "A"}, Static, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := segmentLabel(&Context{FileName: "B"}, Static, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct static labels across files, got %q for both", a)
	}
	if a != "A.3" || b != "B.3" {
		t.Fatalf("got %q, %q, want A.3, B.3", a, b)
	}
}

func TestCoderCallEmitsReturnLabel(t *testing.T) {
	var sb strings.Builder
	coder := NewCoder()
	ctx := &Context{FileName: "Main", FunctionName: "main"}

	if err := coder.WriteCommand(&sb, Call{Target: "Foo.bar", Argc: 2}, ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := sb.String()
	if !strings.Contains(got, "(Main.Foo.bar$ret.1)") {
		t.Fatalf("expected return-site label declaration in:\n%s", got)
	}
	if !strings.Contains(got, "@__CALL_IMPL\n0;JMP\n") {
		t.Fatalf("expected jump to call trampoline in:\n%s", got)
	}
}

func TestCoderComparisonLabelsAreUnique(t *testing.T) {
	var sb strings.Builder
	coder := NewCoder()
	ctx := &Context{FileName: "Main"}

	for i := 0; i < 3; i++ {
		if err := coder.WriteCommand(&sb, Eq{}, ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	got := sb.String()
	for i := 1; i <= 3; i++ {
		if !strings.Contains(got, "__RET_EQ"+strconv.Itoa(i)) {
			t.Fatalf("expected unique label __RET_EQ%d in:\n%s", i, got)
		}
	}
}

func TestCoderPointerAndTempDirectAccess(t *testing.T) {
	var sb strings.Builder
	coder := NewCoder()
	ctx := &Context{FileName: "Main"}

	cmds := []Command{
		Push{Segment: Pointer, Index: 1},
		Pop{Segment: Pointer, Index: 1},
		Push{Segment: Temp, Index: 2},
		Pop{Segment: Temp, Index: 2},
	}
	for _, cmd := range cmds {
		if err := coder.WriteCommand(&sb, cmd, ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got := sb.String()
	for _, want := range []string{
		"@THAT\nD=M\n@SP\nAM=M+1\nA=A-1\nM=D\n",
		"@SP\nM=M-1\nA=M\nD=M\n@THAT\nM=D\n",
		"@R7\nD=M\n@SP\nAM=M+1\nA=A-1\nM=D\n",
		"@SP\nM=M-1\nA=M\nD=M\n@R7\nM=D\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing direct-access fragment %q in:\n%s", want, got)
		}
	}
	for _, notWant := range []string{"A=M+1", "A=M+D", "D=D+M\nA=D-M"} {
		if strings.Contains(got, notWant) {
			t.Fatalf("output should not use address arithmetic for pointer/temp, found %q in:\n%s", notWant, got)
		}
	}
}

func TestCoderPrologueWrittenOnce(t *testing.T) {
	var sb strings.Builder
	coder := NewCoder()
	if err := coder.WritePrologue(&sb); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := sb.String()
	for _, label := range []string{"(__EQ_IMPL)", "(__GT_IMPL)", "(__LT_IMPL)", "(__RETURN_IMPL)", "(__CALL_IMPL)"} {
		if strings.Count(got, label) != 1 {
			t.Fatalf("expected %s exactly once in prologue:\n%s", label, got)
		}
	}
}
