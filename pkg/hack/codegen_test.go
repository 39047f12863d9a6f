package hack

import (
	"fmt"
	"testing"
)

func TestEncodeA(t *testing.T) {
	test := func(address uint16, expected string, fail bool) {
		t.Run(fmt.Sprintf("@%d", address), func(t *testing.T) {
			got, err := EncodeA(address)
			if fail {
				if err == nil {
					t.Fatalf("expected an error, got %016b", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := fmt.Sprintf("%016b", got); want != expected {
				t.Fatalf("got %s, want %s", want, expected)
			}
		})
	}

	test(0, "0000000000000000", false)
	test(1, "0000000000000001", false)
	test(25, "0000000000011001", false)
	test(32767, "0111111111111111", false)
	test(32768, "", true)
}

func TestEncodeC(t *testing.T) {
	test := func(dest, comp, jump, expected string, fail bool) {
		t.Run(dest+"="+comp+";"+jump, func(t *testing.T) {
			got, err := EncodeC(dest, comp, jump)
			if fail {
				if err == nil {
					t.Fatalf("expected an error, got %016b", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := fmt.Sprintf("%016b", got); want != expected {
				t.Fatalf("got %s, want %s", want, expected)
			}
		})
	}

	// D=A, emitted for "@0\nD=A" in the add-two-constants scenario.
	test("D", "A", "", "1110110000010000", false)
	// M=D, "@SP\nM=D".
	test("M", "D", "", "1110001100001000", false)
	// AM=M+1, "@SP\nAM=M+1".
	test("AM", "M+1", "", "1111110111101000", false)
	// 0;JMP, unconditional jump used to close the infinite loop.
	test("", "0", "JMP", "1110101010000111", false)

	test("X", "0", "", "", true)
	test("", "D+D", "", "", true)
	test("", "0", "JXX", "", true)
}
