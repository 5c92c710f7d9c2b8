package decode

import "github.com/DumpA1n/TinyAArch64/isa"

// Encode packs an isa.Instruction descriptor back into its 32-bit word,
// undoing Decode. Encode(Decode(w)) == w for every w produced by Decode,
// modulo don't-care bits the decoder never inspects (e.g. Rn on a
// zero-operand system instruction).
func Encode(instr *isa.Instruction) uint32 {
	switch instr.Type {
	case isa.TypeDataProcReg:
		p := instr.DataProc
		word := isa.EncodeHeader(instr.Opcode, p.Rd.Width == isa.X)
		word |= uint32(p.Rd.Number&0x1F) << 21
		word |= uint32(p.Rn.Number&0x1F) << 16
		word |= uint32(p.Rm.Number & 0x1F)
		return word

	case isa.TypeDataProcImm:
		p := instr.DataProc
		word := isa.EncodeHeader(instr.Opcode, p.Rd.Width == isa.X)
		word |= uint32(p.Rd.Number&0x1F) << 21
		word |= uint32(p.Rn.Number&0x1F) << 16
		word |= uint32(p.Imm.Value) & 0xFFFF
		return word

	case isa.TypeMoveReg:
		p := instr.Move
		word := isa.EncodeHeader(instr.Opcode, p.Rd.Width == isa.X)
		word |= uint32(p.Rd.Number&0x1F) << 21
		word |= uint32(p.Rn.Number&0x1F) << 16
		return word

	case isa.TypeMoveImm:
		p := instr.Move
		word := isa.EncodeHeader(instr.Opcode, p.Rd.Width == isa.X)
		word |= uint32(p.Rd.Number&0x1F) << 21
		word |= uint32(p.Imm.Value) & 0xFFFF
		return word

	case isa.TypeCompare:
		p := instr.Compare
		word := isa.EncodeHeader(instr.Opcode, p.Rn.Width == isa.X)
		word |= uint32(p.Rn.Number&0x1F) << 21
		if p.UseImm {
			word |= uint32(p.Imm.Value) & 0xFFFF
		} else {
			word |= uint32(p.Rm.Number&0x1F) << 16
		}
		return word

	case isa.TypeMultiply, isa.TypeDivide:
		p := instr.MulDiv
		word := isa.EncodeHeader(instr.Opcode, p.Rd.Width == isa.X)
		word |= uint32(p.Rd.Number&0x1F) << 21
		word |= uint32(p.Rn.Number&0x1F) << 16
		word |= uint32(p.Rm.Number & 0x1F)
		return word

	case isa.TypeLoadStore:
		p := instr.LoadStor
		word := isa.EncodeHeader(instr.Opcode, p.Rt.Width == isa.X)
		word |= uint32(p.Rt.Number&0x1F) << 21
		word |= uint32(p.Address.Base.Number&0x1F) << 16
		word |= uint32(p.Address.Offset.Value) & 0xFFFF
		return word

	case isa.TypeBranchUncond, isa.TypeBranchLink:
		p := instr.Branch
		word := isa.EncodeHeader(instr.Opcode, false)
		word |= uint32(p.Offset.Value) & 0x3FFFFFF
		return word

	case isa.TypeBranchCond:
		p := instr.Branch
		word := isa.EncodeHeader(isa.OpBCond, false)
		word |= (uint32(p.Condition) & 0xF) << 22
		word |= uint32(p.Offset.Value) & 0x3FFFFF
		return word

	case isa.TypeBranchReg:
		p := instr.Branch
		word := isa.EncodeHeader(instr.Opcode, false)
		word |= uint32(p.Target.Number&0x1F) << 16
		return word

	case isa.TypeSystem:
		return isa.EncodeHeader(instr.Opcode, false)
	}
	return 0
}
