package vm

import "github.com/DumpA1n/TinyAArch64/isa"

// Registers is the 32-entry general-purpose register file. Storage is
// always 64 bits; W-width reads yield the low 32 bits, W-width writes
// zero-extend into the full slot.
type Registers struct {
	slots [NumRegs]uint64
}

// NewRegisters returns a zeroed register file.
func NewRegisters() *Registers {
	return &Registers{}
}

// Reset zeroes every register.
func (r *Registers) Reset() {
	for i := range r.slots {
		r.slots[i] = 0
	}
}

// Get reads register reg at the given width.
func (r *Registers) Get(reg isa.Register) uint64 {
	v := r.slots[reg.Number]
	if reg.Width == isa.W {
		return v & 0xFFFFFFFF
	}
	return v
}

// Set writes value into register reg at the given width. A W-width write
// zero-extends into the full 64-bit slot.
func (r *Registers) Set(reg isa.Register, value uint64) {
	if reg.Width == isa.W {
		r.slots[reg.Number] = value & 0xFFFFFFFF
		return
	}
	r.slots[reg.Number] = value
}

// GetRaw reads the full 64-bit slot regardless of width, for accessors like
// getReg/getSP that expose raw register contents.
func (r *Registers) GetRaw(n int) uint64 {
	return r.slots[n]
}

// SetRaw writes the full 64-bit slot directly.
func (r *Registers) SetRaw(n int, value uint64) {
	r.slots[n] = value
}
