package isa

// Opcode is the 6-bit primary opcode carried in bits 31..26 of the encoded
// word (the high bit of this field doubles as the sf/size flag for
// width-bearing instructions; see opcode_table.go for the authoritative
// mnemonic table).
type Opcode uint8

const (
	OpADD  Opcode = 0
	OpADDI Opcode = 1
	OpSUB  Opcode = 2
	OpSUBI Opcode = 3
	OpAND  Opcode = 4
	OpANDI Opcode = 5
	OpORR  Opcode = 6
	OpORRI Opcode = 7
	OpEOR  Opcode = 8
	OpEORI Opcode = 9
	OpMOV  Opcode = 10
	OpMOVI Opcode = 11
	OpCMP  Opcode = 12
	OpCMPI Opcode = 13
	OpMUL  Opcode = 14
	OpSDIV Opcode = 15
	OpUDIV Opcode = 16
	OpLDRB Opcode = 17
	OpLDRH Opcode = 18
	OpLDRW Opcode = 19
	OpLDRD Opcode = 20
	OpSTRB Opcode = 21
	OpSTRH Opcode = 22
	OpSTRW Opcode = 23
	OpSTRD Opcode = 24
	OpB        Opcode = 25
	OpBCond    Opcode = 26
	OpBL       Opcode = 27
	OpBLR      Opcode = 28
	OpBR       Opcode = 29
	OpRET      Opcode = 30
	OpHLT      Opcode = 31
	OpNOP      Opcode = 63
)

// InstructionType classifies a decoded instruction into the descriptor
// variant it populates.
type InstructionType int

const (
	TypeDataProcReg InstructionType = iota
	TypeDataProcImm
	TypeLoadStore
	TypeBranchUncond
	TypeBranchCond
	TypeBranchLink
	TypeBranchReg
	TypeCompare
	TypeMoveReg
	TypeMoveImm
	TypeMultiply
	TypeDivide
	TypeSystem
)

// DataProcOp is the ALU operation a DataProcReg/DataProcImm instruction maps
// onto. ADD/SUB set flags; AND/ORR/EOR do not (see vm's alu).
type DataProcOp int

const (
	DPAdd DataProcOp = iota
	DPSub
	DPAnd
	DPOrr
	DPEor
)

// MemoryOp selects the access width and direction of a LoadStore instruction.
type MemoryOp int

const (
	MemLoadByte MemoryOp = iota
	MemLoadHalf
	MemLoadWord
	MemLoadDWord
	MemStoreByte
	MemStoreHalf
	MemStoreWord
	MemStoreDWord
)

// SystemOp selects the System instruction variant.
type SystemOp int

const (
	SysNOP SystemOp = iota
	SysRET
	SysHLT
)

// ALUOp is the operation vm's ALU performs. It has one member per
// DataProcOp plus ALUMul, which the multiply dispatcher also routes through
// the ALU; compare uses ALUSub.
type ALUOp int

const (
	ALUAdd ALUOp = iota
	ALUSub
	ALUAnd
	ALUOrr
	ALUEor
	ALUMul
)
