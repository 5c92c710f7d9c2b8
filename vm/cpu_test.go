package vm_test

import (
	"testing"

	"github.com/DumpA1n/TinyAArch64/asm"
	"github.com/DumpA1n/TinyAArch64/vm"
)

func run(t *testing.T, src string) *vm.CPU {
	t.Helper()
	words, err := asm.Assemble(src)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	cpu := vm.NewCPU()
	if err := cpu.LoadProgram(words); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	for {
		if err := cpu.Step(); err != nil {
			if vm.IsHalted(err) {
				return cpu
			}
			t.Fatalf("step failed: %v", err)
		}
	}
}

func TestResetClearsState(t *testing.T) {
	cpu := vm.NewCPU()
	cpu.Reg.SetRaw(0, 123)
	cpu.PC = 40
	cpu.Flags.Z = true
	cpu.Reset()

	if cpu.GetReg(0) != 0 {
		t.Errorf("expected reg 0 reset to 0, got %d", cpu.GetReg(0))
	}
	if cpu.GetPC() != 0 {
		t.Errorf("expected PC reset to 0, got %d", cpu.GetPC())
	}
	if cpu.GetSP() != vm.StackBase {
		t.Errorf("expected SP=StackBase, got 0x%X", cpu.GetSP())
	}
	if cpu.Flags.Z {
		t.Error("expected flags cleared")
	}
}

func TestMemoryLittleEndianInvariance(t *testing.T) {
	m := vm.NewMemory()
	if err := m.WriteWord(100, 0x12345678); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := m.ReadWord(100)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got != 0x12345678 {
		t.Errorf("got 0x%X, want 0x12345678", got)
	}
	b0, _ := m.ReadByte(100)
	if b0 != 0x78 {
		t.Errorf("expected low byte 0x78 at address 100 (little-endian), got 0x%X", b0)
	}
}

func TestMemoryOutOfBounds(t *testing.T) {
	m := vm.NewMemory()
	if _, err := m.ReadWord(vm.MemSize - 1); err == nil {
		t.Error("expected out-of-bounds error")
	}
	if err := m.WriteByte(vm.MemSize, 1); err == nil {
		t.Error("expected out-of-bounds error")
	}
}

func TestWWriteZeroExtends(t *testing.T) {
	cpu := run(t, "MOV X0, #-1\nADD W0, W0, #0\nHLT")
	if cpu.GetReg(0) != 0xFFFFFFFF {
		t.Errorf("expected W-write to zero-extend high bits, got 0x%X", cpu.GetReg(0))
	}
}

func TestPCAdvancesByFour(t *testing.T) {
	cpu := vm.NewCPU()
	words, _ := asm.Assemble("NOP\nHLT")
	cpu.LoadProgram(words)
	cpu.Step()
	if cpu.GetPC() != 4 {
		t.Errorf("expected PC=4 after one step, got %d", cpu.GetPC())
	}
}

func TestAddFlagRules(t *testing.T) {
	cpu := run(t, "MOV W0, #0\nMOV W1, #0\nADD W2, W0, W1\nHLT")
	if !cpu.Flags.Z {
		t.Error("expected Z set for 0+0")
	}
	if cpu.Flags.N || cpu.Flags.C || cpu.Flags.V {
		t.Errorf("expected only Z set, got %+v", cpu.Flags)
	}
}

func TestCompareFlagRules(t *testing.T) {
	// CMP W0(5), W1(5): Z=true, N=false, C=true (no borrow), V=false.
	cpu := run(t, "MOV W0, #5\nMOV W1, #5\nCMP W0, W1\nHLT")
	if !cpu.Flags.Z || cpu.Flags.N || !cpu.Flags.C || cpu.Flags.V {
		t.Errorf("unexpected flags for CMP 5,5: %+v", cpu.Flags)
	}
}

func TestBranchOffsetPCRelative(t *testing.T) {
	cpu := run(t, "B skip\nMOV X0, #1\nskip:\nADD X0, X0, #2\nHLT")
	if cpu.GetReg(0) != 2 {
		t.Errorf("expected branch to skip first MOV, got X0=%d", cpu.GetReg(0))
	}
}

func TestDivisionByZero(t *testing.T) {
	words, err := asm.Assemble("MOV W0, #10\nMOV W1, #0\nUDIV W2, W0, W1\nHLT")
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	cpu := vm.NewCPU()
	cpu.LoadProgram(words)
	var lastErr error
	for i := 0; i < 10; i++ {
		lastErr = cpu.Step()
		if lastErr != nil {
			break
		}
	}
	if lastErr == nil || vm.IsHalted(lastErr) {
		t.Fatalf("expected division-by-zero error, got %v", lastErr)
	}
}

func TestBranchAndLinkSetsLR(t *testing.T) {
	cpu := run(t, "BL func\nHLT\nfunc:\nRET")
	// BL at word 0 (4 bytes): LR should hold the post-fetch PC, 4.
	if cpu.GetReg(vm.LR) != 4 {
		t.Errorf("expected LR=4, got %d", cpu.GetReg(vm.LR))
	}
}

func TestLoadStoreRoundTrip(t *testing.T) {
	// SP resets to StackBase, one byte past the end of memory (a full
	// descending stack must decrement before its first access).
	cpu := run(t, "SUB SP, SP, #16\nMOV X0, #1234\nSTR X0, [SP, #0]\nLDR X1, [SP, #0]\nHLT")
	if cpu.GetReg(1) != 1234 {
		t.Errorf("expected X1=1234 after store/load round trip, got %d", cpu.GetReg(1))
	}
}

func TestConditionalBranchTaken(t *testing.T) {
	cpu := run(t, "MOV W0, #5\nCMP W0, #5\nB.EQ matched\nMOV X1, #1\nmatched:\nADD X1, X1, #2\nHLT")
	if cpu.GetReg(1) != 2 {
		t.Errorf("expected conditional branch taken, X1=%d", cpu.GetReg(1))
	}
}

func TestConditionalBranchNotTaken(t *testing.T) {
	cpu := run(t, "MOV W0, #5\nCMP W0, #6\nB.EQ matched\nMOV X1, #1\nmatched:\nADD X1, X1, #2\nHLT")
	if cpu.GetReg(1) != 3 {
		t.Errorf("expected fallthrough through MOV X1, #1 into matched label, X1=%d", cpu.GetReg(1))
	}
}
