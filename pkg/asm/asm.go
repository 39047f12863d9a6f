package asm

// ----------------------------------------------------------------------------
// General information

// This section contains some general information about the Asm language.
//
// We declare a shared 'Statement' interface for both A and C instructions as well as defining
// custom labels for specific code section (allowing arbitrary jumps) at runtime during code execution.
// This in turns enables iterations and conditionals both here and at the upper levels (VM, Compiler).

// Just used to put together label declaration, A inst and C inst in the same datatype.
type Statement interface{}

// ----------------------------------------------------------------------------
// Label Declarations

// In memory representation of a label declaration statement for the Assembler language.
//
// There's not much here to be honest, we just keep track of the user defined name to resolve
// future references to the same label (e.g. when referencing a label in an A Instruction).
// Label declarations do not advance the instruction pointer and produce no emitted word; they
// exist purely to update the symbol table during the parse pass.
type LabelDecl struct {
	Name string // The symbol/ident chosen by the user for the label
}

// ----------------------------------------------------------------------------
// A Instructions

// AOperandKind distinguishes the two forms an A-instruction operand can take
// once parsed. Built-in symbols (SP, R3, SCREEN, ...) are not a distinct
// kind: they are pre-seeded rows in the symbol table, so they resolve
// through ASymbol exactly like a user label or variable.
type AOperandKind uint8

const (
	ALiteral AOperandKind = iota // a decimal literal, already range-checked
	ASymbol                      // a label/variable/built-in, resolved via the symbol table
)

// AInstruction is the in-memory representation of an A Instruction.
//
// The A instruction has only one functionality in the Hack computer: it instructs
// the CPU to load a specific memory address/location from the computer memory (this
// includes both the RAM and the memory mapped I/O). The location can be referenced
// either by an alias (label, variable, built-in) or by specifying the raw location.
type AInstruction struct {
	Kind  AOperandKind
	Value uint16 // valid when Kind == ALiteral
	Slot  int    // valid when Kind == ASymbol; index into the driver's SymbolTable
}

// ----------------------------------------------------------------------------
// C Instructions

// CInstruction is the in-memory representation of a C Instruction.
//
// The C instruction handles the computation side of the Hack computer, it instructs
// the CPU on what operation to execute and which register to use, also it allows to
// specify jump conditions to change the execution flow at runtime.
type CInstruction struct {
	Comp string // The 'computation' mnemonic, defines the calculation that the CPU should perform
	Dest string // The 'destination' mnemonic, defines if/where the result should be saved (may be empty)
	Jump string // The 'jump' mnemonic, defines on what premise the jump to another instruction should occur (may be empty)
}
