package vm

import "github.com/DumpA1n/TinyAArch64/isa"

// execCompare performs a SUB in the ALU, discarding the result, and sets
// flags per the destination width of Rn. The register file is never
// written.
func (c *CPU) execCompare(instr *isa.Instruction) error {
	p := instr.Compare
	is32 := p.Rn.Width == isa.W

	a := c.Reg.Get(p.Rn)
	var b uint64
	if p.UseImm {
		b = uint64(p.Imm.SignExtended())
	} else {
		b = c.Reg.Get(p.Rm)
	}

	res := alu(isa.ALUSub, a, b, is32)
	c.Flags = res.flags
	return nil
}

// execMove handles MoveReg (Rd <- Rn, full-width copy) and MoveImm
// (Rd <- sign_extend(imm)). Neither form touches flags.
func (c *CPU) execMove(instr *isa.Instruction) error {
	p := instr.Move
	if p.UseImm {
		c.Reg.Set(p.Rd, uint64(p.Imm.SignExtended()))
		return nil
	}
	c.Reg.Set(p.Rd, c.Reg.Get(p.Rn))
	return nil
}
