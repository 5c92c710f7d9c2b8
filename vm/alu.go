package vm

import "github.com/DumpA1n/TinyAArch64/isa"

// aluResult is the outcome of one ALU operation: the (width-truncated)
// result value, and the flags it would set. setsFlags is false for
// AND/ORR/EOR/MUL, whose flag side effect is "leave flags unchanged" per
// spec.md §4.4 — callers must not overwrite the current Flags in that case.
type aluResult struct {
	value     uint64
	flags     Flags
	setsFlags bool
}

func mask(v uint64, is32 bool) uint64 {
	if is32 {
		return v & 0xFFFFFFFF
	}
	return v
}

// alu performs op on a and b at the 32- or 64-bit width selected by is32,
// per spec.md §4.4.
func alu(op isa.ALUOp, a, b uint64, is32 bool) aluResult {
	switch op {
	case isa.ALUAdd:
		result := mask(a+b, is32)
		c, v := addFlags(a, b, result, is32)
		return aluResult{
			value:     result,
			flags:     Flags{N: signBit64(result, is32), Z: result == 0, C: c, V: v},
			setsFlags: true,
		}
	case isa.ALUSub:
		result := mask(a-b, is32)
		c, v := subFlags(a, b, result, is32)
		return aluResult{
			value:     result,
			flags:     Flags{N: signBit64(result, is32), Z: result == 0, C: c, V: v},
			setsFlags: true,
		}
	case isa.ALUAnd:
		return aluResult{value: mask(a&b, is32)}
	case isa.ALUOrr:
		return aluResult{value: mask(a|b, is32)}
	case isa.ALUEor:
		return aluResult{value: mask(a^b, is32)}
	case isa.ALUMul:
		return aluResult{value: mask(a*b, is32)}
	}
	return aluResult{value: mask(a, is32)}
}
