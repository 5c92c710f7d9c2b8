package vm

import "github.com/DumpA1n/TinyAArch64/isa"

// execMulDiv handles Multiply (MUL, wraps at operand width, no flags) and
// Divide (SDIV/UDIV, signed/unsigned at operand width; division by zero
// fails with ErrDivisionByZero).
func (c *CPU) execMulDiv(instr *isa.Instruction) error {
	p := instr.MulDiv
	is32 := p.Rd.Width == isa.W
	a := c.Reg.Get(p.Rn)
	b := c.Reg.Get(p.Rm)

	if instr.Type == isa.TypeMultiply {
		c.Reg.Set(p.Rd, alu(isa.ALUMul, a, b, is32).value)
		return nil
	}

	if b == 0 {
		return errDivisionByZero
	}

	var result uint64
	if p.Signed {
		if is32 {
			result = uint64(uint32(int32(a) / int32(b)))
		} else {
			result = uint64(int64(a) / int64(b))
		}
	} else {
		if is32 {
			result = uint64(uint32(a) / uint32(b))
		} else {
			result = a / b
		}
	}
	c.Reg.Set(p.Rd, mask(result, is32))
	return nil
}
