package vm

import "github.com/DumpA1n/TinyAArch64/isa"

// Flags holds NZCV, reset to false on vm reset.
type Flags struct {
	N, Z, C, V bool
}

// ToISA converts to the isa package's condition-evaluation shape.
func (f Flags) ToISA() isa.Flags {
	return isa.Flags{N: f.N, Z: f.Z, C: f.C, V: f.V}
}

func signBit64(v uint64, is32 bool) bool {
	if is32 {
		return v&0x80000000 != 0
	}
	return v&0x8000000000000000 != 0
}

// addFlags computes carry/overflow for a + b = result at the given width,
// per spec.md §4.4.
func addFlags(a, b, result uint64, is32 bool) (carry, overflow bool) {
	if is32 {
		carry = uint32(result) < uint32(a)
	} else {
		carry = result < a
	}
	signA, signB, signR := signBit64(a, is32), signBit64(b, is32), signBit64(result, is32)
	overflow = signA == signB && signR != signA
	return
}

// subFlags computes carry ("no borrow") and overflow for a - b = result at
// the given width, per spec.md §4.4.
func subFlags(a, b, result uint64, is32 bool) (carry, overflow bool) {
	if is32 {
		carry = uint32(a) >= uint32(b)
	} else {
		carry = a >= b
	}
	signA, signB, signR := signBit64(a, is32), signBit64(b, is32), signBit64(result, is32)
	overflow = signA != signB && signR != signA
	return
}
