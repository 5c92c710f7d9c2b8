package vm

import "github.com/DumpA1n/TinyAArch64/isa"

// execDataProc handles DataProcReg and DataProcImm: fetch operand A from Rn,
// operand B from Rm (optionally shifted) or the sign-extended immediate,
// invoke the ALU, and write Rd unless the instruction is flag-only (it never
// is, for this dispatcher — that is Compare's job).
func (c *CPU) execDataProc(instr *isa.Instruction) error {
	p := instr.DataProc
	is32 := p.Rd.Width == isa.W

	a := c.Reg.Get(p.Rn)
	var b uint64
	if instr.Type == isa.TypeDataProcImm {
		b = uint64(p.Imm.SignExtended())
	} else {
		b = c.Reg.Get(p.Rm) << p.Shift
	}

	res := alu(p.Op, a, b, is32)
	if res.setsFlags {
		c.Flags = res.flags
	}
	c.Reg.Set(p.Rd, res.value)
	return nil
}
