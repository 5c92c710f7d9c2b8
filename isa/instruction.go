package isa

// Instruction is the language-neutral IR handed from Decode to Execute (and
// packed back into a 32-bit word by decode.Encode; the assembler builds its
// words directly without going through this type). It is a tagged union: Type selects which of the payload
// pointers below is populated; all others are nil. This follows the
// "sum type, one variant per class" shape spec.md §9 recommends in place of
// the original C++ source's std::variant-of-anonymous-structs.
type Instruction struct {
	Type   InstructionType
	Opcode Opcode

	DataProc *DataProcPayload
	LoadStor *LoadStorePayload
	Branch   *BranchPayload
	Compare  *ComparePayload
	Move     *MovePayload
	MulDiv   *MulDivPayload
	System   *SystemPayload
}

// DataProcPayload backs TypeDataProcReg and TypeDataProcImm.
type DataProcPayload struct {
	Op    ALUOp
	Rd    Register
	Rn    Register
	Rm    Register    // register form only
	Shift uint8       // register form only: Rm is shifted left by Shift bits
	Imm   Immediate   // immediate form only
}

// LoadStorePayload backs TypeLoadStore.
type LoadStorePayload struct {
	Op      MemoryOp
	Rt      Register
	Address MemoryOperand
}

// BranchPayload backs TypeBranchUncond, TypeBranchCond, TypeBranchLink and
// TypeBranchReg. Offset is the signed word offset as stored in the encoding
// (the executor multiplies by 4); Target is only meaningful for
// TypeBranchReg (BR/BLR/RET, though RET is modeled as isa.SystemOp instead).
type BranchPayload struct {
	Condition BranchCondition // TypeBranchCond only
	Offset    Immediate       // PC-relative forms only, signed word offset
	Target    Register        // register-indirect forms only (BR/BLR)
}

// ComparePayload backs TypeCompare.
type ComparePayload struct {
	Rn          Register
	Rm          Register  // register form only
	Imm         Immediate // immediate form only
	UseImm      bool
}

// MovePayload backs TypeMoveReg and TypeMoveImm.
type MovePayload struct {
	Rd     Register
	Rn     Register  // register form only
	Imm    Immediate // immediate form only
	UseImm bool
}

// MulDivPayload backs TypeMultiply and TypeDivide.
type MulDivPayload struct {
	Signed bool // SDIV vs UDIV; meaningless for MUL
	Rd     Register
	Rn     Register
	Rm     Register
}

// SystemPayload backs TypeSystem.
type SystemPayload struct {
	Op SystemOp
}
