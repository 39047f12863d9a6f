package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVmTranslatorSingleFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "Main.vm")
	output := filepath.Join(dir, "Main.asm")

	if err := os.WriteFile(input, []byte("push constant 7\npush constant 8\nadd\n"), 0o644); err != nil {
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
	if !strings.Contains(string(got), "(__CALL_IMPL)") {
		t.Fatalf("expected runtime prologue in output:\n%s", got)
	}
}

func TestVmTranslatorDirectoryWalk(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "A.vm"), []byte("push constant 0\npop static 3\n"), 0o644); err != nil {
		t.Fatalf("unable to write fixture A.vm: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "B.vm"), []byte("push constant 0\npop static 3\n"), 0o644); err != nil {
		t.Fatalf("unable to write fixture B.vm: %v", err)
	}
	output := filepath.Join(dir, "out.asm")

	status := Handler([]string{dir}, map[string]string{"out": output})
	if status != 0 {
		t.Fatalf("unexpected exit status: %d", status)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("unable to read output file: %v", err)
	}
	if !strings.Contains(string(got), "@A.3") || !strings.Contains(string(got), "@B.3") {
		t.Fatalf("expected distinct static symbols for both files in:\n%s", got)
	}
}

func TestVmTranslatorMissingInput(t *testing.T) {
	if status := Handler(nil, nil); status == 0 {
		t.Fatalf("expected a non-zero exit status for no inputs")
	}
}
