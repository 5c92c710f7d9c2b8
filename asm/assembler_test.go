package asm_test

import (
	"testing"

	"github.com/DumpA1n/TinyAArch64/asm"
	"github.com/DumpA1n/TinyAArch64/decode"
	"github.com/DumpA1n/TinyAArch64/isa"
)

func mustAssemble(t *testing.T, src string) []uint32 {
	t.Helper()
	words, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble(%q) failed: %v", src, err)
	}
	return words
}

func TestAssembleMoveImmediate(t *testing.T) {
	words := mustAssemble(t, "MOV X0, #42")
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	instr, err := decode.Decode(words[0])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if instr.Type != isa.TypeMoveImm || !instr.Move.UseImm {
		t.Fatalf("expected MoveImm, got %+v", instr)
	}
	if instr.Move.Imm.SignExtended() != 42 {
		t.Errorf("expected imm 42, got %d", instr.Move.Imm.SignExtended())
	}
	if instr.Move.Rd.Number != 0 || instr.Move.Rd.Width != isa.X {
		t.Errorf("expected Rd=X0, got %+v", instr.Move.Rd)
	}
}

func TestAssembleAddRegisterForm(t *testing.T) {
	words := mustAssemble(t, "ADD W1, W2, W3")
	instr, err := decode.Decode(words[0])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if instr.Type != isa.TypeDataProcReg || instr.DataProc.Op != isa.ALUAdd {
		t.Fatalf("expected DataProcReg/Add, got %+v", instr)
	}
	if instr.DataProc.Rd.Width != isa.W {
		t.Errorf("expected W-width destination")
	}
}

func TestAssembleAddImmediateForm(t *testing.T) {
	words := mustAssemble(t, "ADD X1, X2, #16")
	instr, _ := decode.Decode(words[0])
	if instr.Type != isa.TypeDataProcImm {
		t.Fatalf("expected DataProcImm, got %+v", instr)
	}
	if instr.DataProc.Imm.SignExtended() != 16 {
		t.Errorf("expected imm 16, got %d", instr.DataProc.Imm.SignExtended())
	}
}

func TestAssembleLoadStore(t *testing.T) {
	words := mustAssemble(t, "STR X0, [SP, #8]\nLDR X1, [SP, #8]")
	st, _ := decode.Decode(words[0])
	if st.Type != isa.TypeLoadStore || st.LoadStor.Op != isa.MemStoreDWord {
		t.Fatalf("expected STRD, got %+v", st)
	}
	if st.LoadStor.Address.Base.Number != isa.SP {
		t.Errorf("expected base register SP, got %+v", st.LoadStor.Address.Base)
	}
	ld, _ := decode.Decode(words[1])
	if ld.Type != isa.TypeLoadStore || ld.LoadStor.Op != isa.MemLoadDWord {
		t.Fatalf("expected LDRD, got %+v", ld)
	}
}

func TestAssembleBranchLabelForward(t *testing.T) {
	src := "B target\nNOP\ntarget:\nHLT"
	words := mustAssemble(t, src)
	if len(words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(words))
	}
	instr, _ := decode.Decode(words[0])
	if instr.Type != isa.TypeBranchUncond {
		t.Fatalf("expected BranchUncond, got %+v", instr)
	}
	// target is at word index 2 (byte 8); branch site is word 0 (byte 0).
	// offset_words = (8 - (0+4))/4 = 1.
	if instr.Branch.Offset.SignExtended() != 1 {
		t.Errorf("expected offset 1, got %d", instr.Branch.Offset.SignExtended())
	}
}

func TestAssembleBranchLabelBackward(t *testing.T) {
	src := "loop:\nNOP\nB loop"
	words := mustAssemble(t, src)
	instr, _ := decode.Decode(words[1])
	if instr.Type != isa.TypeBranchUncond {
		t.Fatalf("expected BranchUncond, got %+v", instr)
	}
	// target=0, site=4: offset_words = (0 - (4+4))/4 = -2.
	if instr.Branch.Offset.SignExtended() != -2 {
		t.Errorf("expected offset -2, got %d", instr.Branch.Offset.SignExtended())
	}
}

func TestAssembleConditionalBranchBothSpellings(t *testing.T) {
	for _, src := range []string{"B.EQ target\ntarget:\nHLT", "BEQ target\ntarget:\nHLT"} {
		words := mustAssemble(t, src)
		instr, err := decode.Decode(words[0])
		if err != nil {
			t.Fatalf("decode(%q) failed: %v", src, err)
		}
		if instr.Type != isa.TypeBranchCond || instr.Branch.Condition != isa.CondEQ {
			t.Errorf("%q: expected BranchCond/EQ, got %+v", src, instr)
		}
	}
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	_, err := asm.Assemble("FOO X0, X1")
	if err == nil {
		t.Fatal("expected error for unknown mnemonic")
	}
}

func TestAssembleUnknownLabel(t *testing.T) {
	_, err := asm.Assemble("B nowhere")
	if err == nil {
		t.Fatal("expected error for unknown label")
	}
}

func TestAssembleTooFewOperands(t *testing.T) {
	_, err := asm.Assemble("ADD X0, X1")
	if err == nil {
		t.Fatal("expected error for too few operands")
	}
}

func TestAssembleSystemInstructions(t *testing.T) {
	words := mustAssemble(t, "NOP\nRET\nHLT")
	for i, want := range []isa.SystemOp{isa.SysNOP, isa.SysRET, isa.SysHLT} {
		instr, err := decode.Decode(words[i])
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if instr.Type != isa.TypeSystem || instr.System.Op != want {
			t.Errorf("word %d: expected system op %v, got %+v", i, want, instr)
		}
	}
}

func TestAssembleCommentsAndBlankLinesIgnored(t *testing.T) {
	src := "// a comment\n\nNOP\n// trailing\n"
	words := mustAssemble(t, src)
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
}
