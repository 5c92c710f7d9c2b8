package decode_test

import (
	"testing"

	"github.com/DumpA1n/TinyAArch64/decode"
	"github.com/DumpA1n/TinyAArch64/isa"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	instrs := []*isa.Instruction{
		{
			Type: isa.TypeDataProcReg, Opcode: isa.OpADD,
			DataProc: &isa.DataProcPayload{Op: isa.ALUAdd,
				Rd: isa.Register{Number: 1, Width: isa.X},
				Rn: isa.Register{Number: 2, Width: isa.X},
				Rm: isa.Register{Number: 3, Width: isa.X}},
		},
		{
			Type: isa.TypeDataProcImm, Opcode: isa.OpADDI,
			DataProc: &isa.DataProcPayload{Op: isa.ALUAdd,
				Rd:  isa.Register{Number: 4, Width: isa.W},
				Rn:  isa.Register{Number: 5, Width: isa.W},
				Imm: isa.Immediate{Value: 100, Bits: 16}},
		},
		{
			Type: isa.TypeMoveImm, Opcode: isa.OpMOVI,
			Move: &isa.MovePayload{Rd: isa.Register{Number: 0, Width: isa.X},
				Imm: isa.Immediate{Value: 0xFFFF, Bits: 16}, UseImm: true},
		},
		{
			Type: isa.TypeCompare, Opcode: isa.OpCMP,
			Compare: &isa.ComparePayload{
				Rn: isa.Register{Number: 1, Width: isa.X},
				Rm: isa.Register{Number: 2, Width: isa.X},
			},
		},
		{
			Type: isa.TypeLoadStore, Opcode: isa.OpLDRD,
			LoadStor: &isa.LoadStorePayload{Op: isa.MemLoadDWord,
				Rt: isa.Register{Number: 0, Width: isa.X},
				Address: isa.MemoryOperand{
					Base:   isa.Register{Number: 31, Width: isa.X},
					Offset: isa.Immediate{Value: 8, Bits: 16},
				}},
		},
		{
			Type: isa.TypeBranchUncond, Opcode: isa.OpB,
			Branch: &isa.BranchPayload{Offset: isa.Immediate{Value: -2 & 0x3FFFFFF, Bits: 26}},
		},
		{
			Type: isa.TypeBranchCond, Opcode: isa.OpBCond,
			Branch: &isa.BranchPayload{Condition: isa.CondLT, Offset: isa.Immediate{Value: 5, Bits: 22}},
		},
		{
			Type: isa.TypeBranchReg, Opcode: isa.OpBLR,
			Branch: &isa.BranchPayload{Target: isa.Register{Number: 9, Width: isa.X}},
		},
		{
			Type: isa.TypeMultiply, Opcode: isa.OpMUL,
			MulDiv: &isa.MulDivPayload{Rd: isa.Register{Number: 0, Width: isa.X},
				Rn: isa.Register{Number: 1, Width: isa.X}, Rm: isa.Register{Number: 2, Width: isa.X}},
		},
		{Type: isa.TypeSystem, Opcode: isa.OpHLT, System: &isa.SystemPayload{Op: isa.SysHLT}},
	}

	for _, want := range instrs {
		word := decode.Encode(want)
		got, err := decode.Decode(word)
		if err != nil {
			t.Fatalf("Decode(Encode(%+v)) failed: %v", want, err)
		}
		if got.Type != want.Type || got.Opcode != want.Opcode {
			t.Errorf("round-trip type/opcode mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestDecodeUnknownOpcode(t *testing.T) {
	// Field value 58 sets the sf bit over OpBCond's low bits, which is not a
	// valid encoding: branch opcodes never carry sf.
	word := uint32(58) << 26
	_, err := decode.Decode(word)
	if err == nil {
		t.Fatal("expected decode error for unknown opcode")
	}
}

func TestDecodeRegisterWidthFromSF(t *testing.T) {
	instr := &isa.Instruction{
		Type: isa.TypeMoveImm, Opcode: isa.OpMOVI,
		Move: &isa.MovePayload{Rd: isa.Register{Number: 3, Width: isa.W}, Imm: isa.Immediate{Value: 1, Bits: 16}, UseImm: true},
	}
	word := decode.Encode(instr)
	got, err := decode.Decode(word)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.Move.Rd.Width != isa.W {
		t.Errorf("expected W-width register, got %v", got.Move.Rd.Width)
	}
}
