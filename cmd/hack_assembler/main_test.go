package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHackAssemblerAddTwoConstants(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Add.asm")
	output := filepath.Join(dir, "Add.hack")

	source := strings.Join([]string{
		"@0", "D=A", "@SP", "M=D",
		"@1", "D=A", "@SP", "AM=M+1", "M=D",
	}, "\n") + "\n"
	if err := os.WriteFile(input, []byte(source), 0o644); err != nil {
		t.Fatalf("unable to write input fixture: %v", err)
	}

	status := Handler([]string{input}, map[string]string{"out": output})
	if status != 0 {
		t.Fatalf("unexpected exit status: %d", status)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("unable to read output file: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(got), "\n"), "\n")
	want := []string{"0000000000000000", "1110110000010000", "0000000000000000", "1110001100001000"}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestHackAssemblerDefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Add.asm")
	if err := os.WriteFile(input, []byte("@0\nD=A\n"), 0o644); err != nil {
		t.Fatalf("unable to write input fixture: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("unable to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("unable to chdir: %v", err)
	}
	defer os.Chdir(wd)

	if status := Handler([]string{input}, nil); status != 0 {
		t.Fatalf("unexpected exit status: %d", status)
	}
	if _, err := os.Stat("out.hack"); err != nil {
		t.Fatalf("expected default output file out.hack: %v", err)
	}
}
