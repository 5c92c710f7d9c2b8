package isa

// OpcodeClass groups opcodes by the instruction descriptor variant they
// decode into.
type OpcodeClass int

const (
	ClassDataProc OpcodeClass = iota
	ClassMove
	ClassCompare
	ClassMulDiv
	ClassLoadStore
	ClassBranch
	ClassSystem
)

// OpcodeInfo is one row of the authoritative opcode table from spec.md §4.1.
// This is the single copy of the table; the source's three divergent drafts
// (spec.md §9) collapse into this.
type OpcodeInfo struct {
	Mnemonic string
	Opcode   Opcode
	Class    OpcodeClass
}

// MnemonicTable maps an upper-cased mnemonic to its opcode/class row. Entries
// that come in register/immediate pairs (ADD/ADDI, MOV/MOVI, ...) are keyed
// by the register-form mnemonic; the assembler chooses ADDI-vs-ADD (etc) at
// encode time based on the operand shape, mirroring the original
// TinyAArch64 Assembler.cpp's OpcodeMap<std::pair<Opcode,Opcode>>.
var MnemonicTable = map[string]OpcodeInfo{
	"ADD": {"ADD", OpADD, ClassDataProc},
	"SUB": {"SUB", OpSUB, ClassDataProc},
	"AND": {"AND", OpAND, ClassDataProc},
	"ORR": {"ORR", OpORR, ClassDataProc},
	"EOR": {"EOR", OpEOR, ClassDataProc},

	"MOV": {"MOV", OpMOV, ClassMove},
	"CMP": {"CMP", OpCMP, ClassCompare},

	"MUL":  {"MUL", OpMUL, ClassMulDiv},
	"SDIV": {"SDIV", OpSDIV, ClassMulDiv},
	"UDIV": {"UDIV", OpUDIV, ClassMulDiv},

	"LDRB": {"LDRB", OpLDRB, ClassLoadStore},
	"LDRH": {"LDRH", OpLDRH, ClassLoadStore},
	"LDRW": {"LDRW", OpLDRW, ClassLoadStore},
	"LDR":  {"LDR", OpLDRW, ClassLoadStore}, // width resolved from register at encode time
	"LDRD": {"LDRD", OpLDRD, ClassLoadStore},
	"STRB": {"STRB", OpSTRB, ClassLoadStore},
	"STRH": {"STRH", OpSTRH, ClassLoadStore},
	"STRW": {"STRW", OpSTRW, ClassLoadStore},
	"STR":  {"STR", OpSTRW, ClassLoadStore},
	"STRD": {"STRD", OpSTRD, ClassLoadStore},

	"B":   {"B", OpB, ClassBranch},
	"BL":  {"BL", OpBL, ClassBranch},
	"BLR": {"BLR", OpBLR, ClassBranch},
	"BR":  {"BR", OpBR, ClassBranch},

	"RET": {"RET", OpRET, ClassSystem},
	"HLT": {"HLT", OpHLT, ClassSystem},
	"NOP": {"NOP", OpNOP, ClassSystem},
}

// ImmediateOpcodeOf returns the immediate-form opcode for a register-form
// data-processing/compare/move opcode, per the ADD/ADDI-style pairs in
// spec.md §4.1.
func ImmediateOpcodeOf(op Opcode) (Opcode, bool) {
	switch op {
	case OpADD:
		return OpADDI, true
	case OpSUB:
		return OpSUBI, true
	case OpAND:
		return OpANDI, true
	case OpORR:
		return OpORRI, true
	case OpEOR:
		return OpEORI, true
	case OpMOV:
		return OpMOVI, true
	case OpCMP:
		return OpCMPI, true
	}
	return op, false
}

// DataProcOpOf maps a register/immediate-form data-processing opcode to the
// ALUOp it exercises.
func DataProcOpOf(op Opcode) (ALUOp, bool) {
	switch op {
	case OpADD, OpADDI:
		return ALUAdd, true
	case OpSUB, OpSUBI:
		return ALUSub, true
	case OpAND, OpANDI:
		return ALUAnd, true
	case OpORR, OpORRI:
		return ALUOrr, true
	case OpEOR, OpEORI:
		return ALUEor, true
	}
	return 0, false
}
