// Package decode turns a 32-bit instruction word into an isa.Instruction
// descriptor, and back again. The assembler packs the same bit layout from
// spec.md §4.1 on its own; the vm only sees the tagged-union descriptor.
package decode

import (
	"fmt"

	"github.com/DumpA1n/TinyAArch64/isa"
)

// Error reports a word that does not decode to any known instruction.
type Error struct {
	Word uint32
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode: word 0x%08X: %s", e.Word, e.Msg)
}

func rd(word uint32) uint8  { return uint8((word >> 21) & 0x1F) }
func rn(word uint32) uint8  { return uint8((word >> 16) & 0x1F) }
func rm(word uint32) uint8  { return uint8(word & 0x1F) }
// imm16 extracts the raw (pre-sign-extension) low 16 bits of word, for
// storage in an isa.Immediate; callers sign-extend via SignExtended().
func imm16(word uint32) int64 { return int64(word & 0xFFFF) }

func regWidth(sf bool) isa.RegWidth {
	if sf {
		return isa.X
	}
	return isa.W
}

// Decode interprets a 32-bit instruction word as an isa.Instruction.
func Decode(word uint32) (*isa.Instruction, error) {
	op, sf, ok := isa.DecodeHeader(word)
	if !ok {
		return nil, &Error{Word: word, Msg: "unrecognized opcode field"}
	}
	width := regWidth(sf)

	switch op {
	case isa.OpADD, isa.OpSUB, isa.OpAND, isa.OpORR, isa.OpEOR:
		aluOp, _ := isa.DataProcOpOf(op)
		return &isa.Instruction{
			Type:   isa.TypeDataProcReg,
			Opcode: op,
			DataProc: &isa.DataProcPayload{
				Op: aluOp,
				Rd: isa.Register{Number: rd(word), Width: width},
				Rn: isa.Register{Number: rn(word), Width: width},
				Rm: isa.Register{Number: rm(word), Width: width},
			},
		}, nil

	case isa.OpADDI, isa.OpSUBI, isa.OpANDI, isa.OpORRI, isa.OpEORI:
		aluOp, _ := isa.DataProcOpOf(op)
		return &isa.Instruction{
			Type:   isa.TypeDataProcImm,
			Opcode: op,
			DataProc: &isa.DataProcPayload{
				Op:  aluOp,
				Rd:  isa.Register{Number: rd(word), Width: width},
				Rn:  isa.Register{Number: rn(word), Width: width},
				Imm: isa.Immediate{Value: imm16(word), Bits: 16},
			},
		}, nil

	case isa.OpMOV:
		return &isa.Instruction{
			Type:   isa.TypeMoveReg,
			Opcode: op,
			Move: &isa.MovePayload{
				Rd: isa.Register{Number: rd(word), Width: width},
				Rn: isa.Register{Number: rn(word), Width: width},
			},
		}, nil

	case isa.OpMOVI:
		return &isa.Instruction{
			Type:   isa.TypeMoveImm,
			Opcode: op,
			Move: &isa.MovePayload{
				Rd:     isa.Register{Number: rd(word), Width: width},
				Imm:    isa.Immediate{Value: imm16(word), Bits: 16},
				UseImm: true,
			},
		}, nil

	case isa.OpCMP:
		return &isa.Instruction{
			Type:   isa.TypeCompare,
			Opcode: op,
			Compare: &isa.ComparePayload{
				Rn: isa.Register{Number: rd(word), Width: width},
				Rm: isa.Register{Number: rn(word), Width: width},
			},
		}, nil

	case isa.OpCMPI:
		return &isa.Instruction{
			Type:   isa.TypeCompare,
			Opcode: op,
			Compare: &isa.ComparePayload{
				Rn:     isa.Register{Number: rd(word), Width: width},
				Imm:    isa.Immediate{Value: imm16(word), Bits: 16},
				UseImm: true,
			},
		}, nil

	case isa.OpMUL, isa.OpSDIV, isa.OpUDIV:
		typ := isa.TypeMultiply
		if op != isa.OpMUL {
			typ = isa.TypeDivide
		}
		return &isa.Instruction{
			Type:   typ,
			Opcode: op,
			MulDiv: &isa.MulDivPayload{
				Signed: op == isa.OpSDIV,
				Rd:     isa.Register{Number: rd(word), Width: width},
				Rn:     isa.Register{Number: rn(word), Width: width},
				Rm:     isa.Register{Number: rm(word), Width: width},
			},
		}, nil

	case isa.OpLDRB, isa.OpLDRH, isa.OpLDRW, isa.OpLDRD,
		isa.OpSTRB, isa.OpSTRH, isa.OpSTRW, isa.OpSTRD:
		return &isa.Instruction{
			Type:   isa.TypeLoadStore,
			Opcode: op,
			LoadStor: &isa.LoadStorePayload{
				Op: memoryOpOf(op),
				Rt: isa.Register{Number: rd(word), Width: width},
				Address: isa.MemoryOperand{
					Base:   isa.Register{Number: rn(word), Width: isa.X},
					Offset: isa.Immediate{Value: imm16(word), Bits: 16},
				},
			},
		}, nil

	case isa.OpB:
		return &isa.Instruction{
			Type:   isa.TypeBranchUncond,
			Opcode: op,
			Branch: &isa.BranchPayload{Offset: isa.Immediate{Value: rawField(word, 0x3FFFFFF), Bits: 26}},
		}, nil

	case isa.OpBL:
		return &isa.Instruction{
			Type:   isa.TypeBranchLink,
			Opcode: op,
			Branch: &isa.BranchPayload{Offset: isa.Immediate{Value: rawField(word, 0x3FFFFFF), Bits: 26}},
		}, nil

	case isa.OpBCond:
		cond := isa.BranchCondition((word >> 22) & 0xF)
		return &isa.Instruction{
			Type:   isa.TypeBranchCond,
			Opcode: op,
			Branch: &isa.BranchPayload{
				Condition: cond,
				Offset:    isa.Immediate{Value: rawField(word, 0x3FFFFF), Bits: 22},
			},
		}, nil

	case isa.OpBLR, isa.OpBR:
		return &isa.Instruction{
			Type:   isa.TypeBranchReg,
			Opcode: op,
			Branch: &isa.BranchPayload{Target: isa.Register{Number: rn(word), Width: isa.X}},
		}, nil

	case isa.OpRET:
		return &isa.Instruction{Type: isa.TypeSystem, Opcode: op, System: &isa.SystemPayload{Op: isa.SysRET}}, nil
	case isa.OpHLT:
		return &isa.Instruction{Type: isa.TypeSystem, Opcode: op, System: &isa.SystemPayload{Op: isa.SysHLT}}, nil
	case isa.OpNOP:
		return &isa.Instruction{Type: isa.TypeSystem, Opcode: op, System: &isa.SystemPayload{Op: isa.SysNOP}}, nil
	}

	return nil, &Error{Word: word, Msg: "opcode recognized but not handled"}
}

func memoryOpOf(op isa.Opcode) isa.MemoryOp {
	switch op {
	case isa.OpLDRB:
		return isa.MemLoadByte
	case isa.OpLDRH:
		return isa.MemLoadHalf
	case isa.OpLDRW:
		return isa.MemLoadWord
	case isa.OpLDRD:
		return isa.MemLoadDWord
	case isa.OpSTRB:
		return isa.MemStoreByte
	case isa.OpSTRH:
		return isa.MemStoreHalf
	case isa.OpSTRW:
		return isa.MemStoreWord
	case isa.OpSTRD:
		return isa.MemStoreDWord
	}
	return isa.MemLoadWord
}

// rawField extracts a masked field of word as a raw (pre-sign-extension)
// value, for storage in an isa.Immediate; callers sign-extend via
// SignExtended().
func rawField(word uint32, mask uint32) int64 {
	return int64(word & mask)
}
