package vm

import "github.com/DumpA1n/TinyAArch64/isa"

// execSystem implements NOP (no-op), RET (PC <- X30), and HLT (fails with
// the Halted sentinel, which callers treat as normal termination).
func (c *CPU) execSystem(instr *isa.Instruction) error {
	switch instr.System.Op {
	case isa.SysNOP:
		return nil
	case isa.SysRET:
		c.PC = uint32(c.Reg.GetRaw(LR))
		return nil
	case isa.SysHLT:
		return errHalted
	}
	return nil
}
