package jack

import (
	"strings"
	"testing"
)

func parseSource(t *testing.T, src string) Class {
	t.Helper()
	parser := NewParser(strings.NewReader(src))
	class, err := parser.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return class
}

func TestParseClassSkeletonNameAndFields(t *testing.T) {
	class := parseSource(t, strings.Join([]string{
		"class Point {",
		"  field int x, y;",
		"  static int count;",
		"  constructor Point new(int ax, int ay) {",
		"    let x = ax;",
		"    let y = ay;",
		"    return this;",
		"  }",
		"}",
	}, "\n"))

	if class.Name != "Point" {
		t.Fatalf("class name = %q, want Point", class.Name)
	}
	if class.Fields.Len() != 3 {
		t.Fatalf("field count = %d, want 3", class.Fields.Len())
	}
	if class.Subroutines.Len() != 1 {
		t.Fatalf("subroutine count = %d, want 1", class.Subroutines.Len())
	}

	ctor, ok := class.Subroutines.Get("new")
	if !ok {
		t.Fatalf("expected subroutine 'new'")
	}
	if ctor.Type != Constructor {
		t.Fatalf("subroutine type = %v, want Constructor", ctor.Type)
	}
	if ctor.Arguments.Len() != 2 {
		t.Fatalf("argument count = %d, want 2", ctor.Arguments.Len())
	}
	if len(ctor.Statements) != 3 {
		t.Fatalf("statement count = %d, want 3", len(ctor.Statements))
	}
	if _, ok := ctor.Statements[0].(LetStmt); !ok {
		t.Fatalf("statement 0 = %T, want LetStmt", ctor.Statements[0])
	}
	if _, ok := ctor.Statements[2].(ReturnStmt); !ok {
		t.Fatalf("statement 2 = %T, want ReturnStmt", ctor.Statements[2])
	}
}

func TestParseStatementShapes(t *testing.T) {
	class := parseSource(t, strings.Join([]string{
		"class Main {",
		"  function void main() {",
		"    var int i;",
		"    let i = 0;",
		"    while (i) {",
		"      do Output.printInt(i);",
		"    }",
		"    if (i) {",
		"      let i = 1;",
		"    } else {",
		"      let i = 2;",
		"    }",
		"    return;",
		"  }",
		"}",
	}, "\n"))

	sub, ok := class.Subroutines.Get("main")
	if !ok {
		t.Fatalf("expected subroutine 'main'")
	}
	if len(sub.Statements) != 5 {
		t.Fatalf("statement count = %d, want 5", len(sub.Statements))
	}

	if _, ok := sub.Statements[0].(VarStmt); !ok {
		t.Fatalf("statement 0 = %T, want VarStmt", sub.Statements[0])
	}

	whileStmt, ok := sub.Statements[2].(WhileStmt)
	if !ok {
		t.Fatalf("statement 2 = %T, want WhileStmt", sub.Statements[2])
	}
	if len(whileStmt.Block) != 1 {
		t.Fatalf("while block length = %d, want 1", len(whileStmt.Block))
	}

	ifStmt, ok := sub.Statements[3].(IfStmt)
	if !ok {
		t.Fatalf("statement 3 = %T, want IfStmt", sub.Statements[3])
	}
	if len(ifStmt.ThenBlock) != 1 || len(ifStmt.ElseBlock) != 1 {
		t.Fatalf("if/else blocks = %d/%d, want 1/1", len(ifStmt.ThenBlock), len(ifStmt.ElseBlock))
	}
}

func TestParseDoStmtExternalCall(t *testing.T) {
	class := parseSource(t, strings.Join([]string{
		"class Main {",
		"  function void main() {",
		"    do Output.printString(\"hi\");",
		"    return;",
		"  }",
		"}",
	}, "\n"))

	sub, _ := class.Subroutines.Get("main")
	doStmt, ok := sub.Statements[0].(DoStmt)
	if !ok {
		t.Fatalf("statement 0 = %T, want DoStmt", sub.Statements[0])
	}
	if !doStmt.FuncCall.IsExtCall || doStmt.FuncCall.Var != "Output" || doStmt.FuncCall.FuncName != "printString" {
		t.Fatalf("unexpected call shape: %#v", doStmt.FuncCall)
	}
	if len(doStmt.FuncCall.Arguments) != 1 {
		t.Fatalf("argument count = %d, want 1", len(doStmt.FuncCall.Arguments))
	}
}
