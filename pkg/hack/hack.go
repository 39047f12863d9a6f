// Package hack encodes already-resolved Hack instructions into their 16-bit
// binary representation. It owns the fixed mnemonic and built-in symbol
// tables defined by the Hack architecture; symbol resolution itself (labels,
// user variables) is the assembler's job, done before an instruction reaches
// this package.
package hack

// MaxAddressableMemory is the upper bound (exclusive) on an A-instruction's
// 15-bit address operand.
const MaxAddressableMemory uint16 = 1 << 15

// MaxROMAddress is the highest instruction pointer value the Hack ROM can
// hold; reaching it is a resource-exhaustion error for the driver.
const MaxROMAddress uint16 = 32767

// ScreenBaseAddress is the first RAM address reserved for memory-mapped
// video output; it also doubles as the ceiling for user-variable allocation.
const ScreenBaseAddress uint16 = 16384

// KeyboardAddress is the memory-mapped keyboard input register.
const KeyboardAddress uint16 = 24576
