// Package vm implements the fetch/decode/execute cycle: the flat memory
// subsystem, the 32-entry register file, NZCV flags, the ALU, and the
// per-class execute dispatchers. vm owns all CPU state; isa and decode only
// describe values that pass through it.
package vm

import (
	"github.com/DumpA1n/TinyAArch64/decode"
	"github.com/DumpA1n/TinyAArch64/isa"
)

// CPU is the single locus of control: step() runs fetch, decode and
// execute to completion before returning. There are no suspension points;
// a failed step leaves memory and registers in whatever partial-update
// state was reached, and a subsequent step resumes from there.
type CPU struct {
	Mem   *Memory
	Reg   *Registers
	Flags Flags
	PC    uint32
	IR    uint32
}

// NewCPU returns a CPU in its reset state.
func NewCPU() *CPU {
	c := &CPU{Mem: NewMemory(), Reg: NewRegisters()}
	c.Reset()
	return c
}

// Reset zeroes memory and registers, sets SP = StackBase, clears flags, and
// sets PC = 0.
func (c *CPU) Reset() {
	c.Mem.Reset()
	c.Reg.Reset()
	c.Reg.SetRaw(SP, StackBase)
	c.Flags = Flags{}
	c.PC = 0
	c.IR = 0
}

// LoadProgram copies words into memory starting at address 0, little-endian.
func (c *CPU) LoadProgram(words []uint32) error {
	return c.Mem.LoadProgram(words)
}

// Step executes one instruction: fetch IR at PC, advance PC by 4, decode,
// dispatch to the matching execute handler. Decode and execute errors
// propagate to the caller and abort this step.
func (c *CPU) Step() error {
	word, err := c.Mem.ReadWord(c.PC)
	if err != nil {
		return err
	}
	c.IR = word
	c.PC += 4

	instr, err := decode.Decode(word)
	if err != nil {
		return err
	}

	switch instr.Type {
	case isa.TypeDataProcReg, isa.TypeDataProcImm:
		return c.execDataProc(instr)
	case isa.TypeLoadStore:
		return c.execLoadStore(instr)
	case isa.TypeBranchUncond:
		return c.execBranchUncond(instr)
	case isa.TypeBranchCond:
		return c.execBranchCond(instr)
	case isa.TypeBranchLink:
		return c.execBranchLink(instr)
	case isa.TypeBranchReg:
		return c.execBranchReg(instr)
	case isa.TypeCompare:
		return c.execCompare(instr)
	case isa.TypeMoveReg, isa.TypeMoveImm:
		return c.execMove(instr)
	case isa.TypeMultiply, isa.TypeDivide:
		return c.execMulDiv(instr)
	case isa.TypeSystem:
		return c.execSystem(instr)
	}
	return nil
}

// GetReg reads the raw 64-bit contents of register i.
func (c *CPU) GetReg(i int) uint64 { return c.Reg.GetRaw(i) }

// GetPC reads the program counter.
func (c *CPU) GetPC() uint32 { return c.PC }

// GetSP is an alias for GetReg(31).
func (c *CPU) GetSP() uint64 { return c.Reg.GetRaw(SP) }

// GetIR reads the last-fetched instruction word.
func (c *CPU) GetIR() uint32 { return c.IR }

// GetStatusReg packs NZCV into bits 31..28 of a word, N highest.
func (c *CPU) GetStatusReg() uint32 {
	var v uint32
	if c.Flags.N {
		v |= 1 << 31
	}
	if c.Flags.Z {
		v |= 1 << 30
	}
	if c.Flags.C {
		v |= 1 << 29
	}
	if c.Flags.V {
		v |= 1 << 28
	}
	return v
}

// GetMemory returns a snapshot of the entire address space.
func (c *CPU) GetMemory() []byte { return c.Mem.Snapshot() }
