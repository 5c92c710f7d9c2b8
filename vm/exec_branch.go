package vm

import "github.com/DumpA1n/TinyAArch64/isa"

// branchTo applies a PC-relative offset. PC has already been advanced by 4
// at fetch time, so the offset is relative to the next instruction.
func (c *CPU) branchTo(offsetWords int64) {
	c.PC = uint32(int64(c.PC) + offsetWords*4)
}

// execBranchUncond implements B.
func (c *CPU) execBranchUncond(instr *isa.Instruction) error {
	c.branchTo(instr.Branch.Offset.SignExtended())
	return nil
}

// execBranchCond implements B.cond: branch if the condition holds against
// the current NZCV, otherwise leave PC at the post-fetch value.
func (c *CPU) execBranchCond(instr *isa.Instruction) error {
	p := instr.Branch
	if p.Condition.Evaluate(c.Flags.ToISA()) {
		c.branchTo(p.Offset.SignExtended())
	}
	return nil
}

// execBranchLink implements BL: store the post-fetch PC into the link
// register, then branch PC-relative.
func (c *CPU) execBranchLink(instr *isa.Instruction) error {
	c.Reg.SetRaw(LR, uint64(c.PC))
	c.branchTo(instr.Branch.Offset.SignExtended())
	return nil
}

// execBranchReg implements BLR/BR: the target is a register value rather
// than a PC-relative offset. BLR additionally stores the post-fetch PC into
// the link register before branching.
func (c *CPU) execBranchReg(instr *isa.Instruction) error {
	if instr.Opcode == isa.OpBLR {
		c.Reg.SetRaw(LR, uint64(c.PC))
	}
	c.PC = uint32(c.Reg.GetRaw(int(instr.Branch.Target.Number)))
	return nil
}
