// Package isa defines the language-neutral value types shared by the
// assembler, decoder and execution engine: register/immediate/memory-operand
// shapes, the closed enumerations that tag them, and the instruction
// descriptor that flows between decode and execute.
package isa

import "fmt"

// RegWidth selects the 32-bit (W) or 64-bit (X) view of a register.
type RegWidth int

const (
	W RegWidth = iota // 32-bit
	X                 // 64-bit
)

func (w RegWidth) String() string {
	if w == W {
		return "W"
	}
	return "X"
}

// Register identifies one of the 32 general-purpose registers and the width
// at which it is being accessed. The underlying storage is always 64 bits;
// W-width reads yield the low 32 bits and W-width writes zero the high 32.
type Register struct {
	Number uint8
	Width  RegWidth
}

// SP is register 31, the stack pointer.
const SP = 31

// LR is register 30, the link register.
const LR = 30

func (r Register) String() string {
	if r.Number == SP && r.Width == X {
		return "SP"
	}
	return fmt.Sprintf("%s%d", r.Width, r.Number)
}

// Is32Bit reports whether this register reference is W-width.
func (r Register) Is32Bit() bool { return r.Width == W }
