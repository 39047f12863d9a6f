package asm

import "n2t.dev/toolchain/pkg/hack"

// SymbolKind distinguishes RAM variables from ROM labels.
type SymbolKind uint8

const (
	KindRAM SymbolKind = iota
	KindROM
)

type symbolEntry struct {
	Address uint16
	Kind    SymbolKind
	Pending bool // RAM slot awaiting DistributeRAMAddresses; false for every
	// pre-seeded built-in (address 0 is a legitimate resolved RAM address for
	// SP, so "pending" has to be tracked explicitly rather than inferred from
	// Address == 0).
}

// SymbolTable is the dual name->slot map plus indexed slot vector described
// by the assembler's data model: slot ids are stable for the lifetime of one
// assembly, so parser output can reference a pending variable slot before it
// is resolved.
type SymbolTable struct {
	slots []symbolEntry
	index map[string]int
}

// NewSymbolTable returns a table pre-seeded with the twenty-three built-in Hack
// symbols (R0-R15, SP, LCL, ARG, THIS, THAT, SCREEN, KBD).
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{index: make(map[string]int, 32)}
	for name, addr := range hack.BuiltInTable {
		t.seed(name, addr)
	}
	return t
}

func (t *SymbolTable) seed(name string, addr uint16) {
	if _, ok := t.index[name]; ok {
		return
	}
	t.index[name] = len(t.slots)
	t.slots = append(t.slots, symbolEntry{Address: addr, Kind: KindRAM})
}

// Intern returns the slot id for name, allocating a new pending RAM slot if
// name has not been seen before.
func (t *SymbolTable) Intern(name string) int {
	if slot, ok := t.index[name]; ok {
		return slot
	}
	slot := len(t.slots)
	t.index[name] = slot
	t.slots = append(t.slots, symbolEntry{Kind: KindRAM, Pending: true})
	return slot
}

// SetLabel interns name as a ROM label pointing at the instruction that
// follows the label declaration, and reports whether it succeeded. ip is
// the count of non-label instructions emitted so far, which is exactly the
// address the next instruction will receive. SetLabel fails (returns
// false, leaving the table untouched) when name is already a ROM label — a
// duplicate label declaration. Label always wins over a prior variable use
// of the same name: a RAM slot is happily overwritten to ROM.
func (t *SymbolTable) SetLabel(name string, ip uint16) bool {
	slot := t.Intern(name)
	if t.slots[slot].Kind == KindROM {
		return false
	}
	t.slots[slot] = symbolEntry{Address: ip, Kind: KindROM}
	return true
}

// Address returns the slot's current resolved address. For a pending RAM
// slot this is meaningless until DistributeRAMAddresses has run.
func (t *SymbolTable) Address(slot int) uint16 { return t.slots[slot].Address }

// Kind returns the slot's kind (RAM or ROM).
func (t *SymbolTable) Kind(slot int) SymbolKind { return t.slots[slot].Kind }

// DistributeRAMAddresses assigns consecutive addresses, starting at 16, to
// every slot still pending. Returns a RAM-exhaustion error if the counter
// would reach the screen base before all pending slots are assigned.
func (t *SymbolTable) DistributeRAMAddresses() error {
	next := uint16(16)
	for i := range t.slots {
		if !t.slots[i].Pending {
			continue
		}
		if next >= hack.ScreenBaseAddress {
			return errRAMExhausted
		}
		t.slots[i].Address = next
		t.slots[i].Pending = false
		next++
	}
	return nil
}
