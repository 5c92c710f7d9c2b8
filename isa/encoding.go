package isa

// opcodeClassByValue is the reverse of MnemonicTable, keyed by the numeric
// opcode rather than mnemonic spelling (several mnemonics map to the same
// register-form opcode, e.g. "LDR" and "LDRW" both decode OpLDRW).
var opcodeClassByValue = func() map[Opcode]OpcodeClass {
	m := make(map[Opcode]OpcodeClass)
	for _, info := range MnemonicTable {
		m[info.Opcode] = info.Class
	}
	// Opcodes reachable only via ImmediateOpcodeOf (ADDI, SUBI, ...) share
	// their register form's class.
	for _, op := range []Opcode{OpADDI, OpSUBI, OpANDI, OpORRI, OpEORI, OpMOVI, OpCMPI} {
		m[op] = ClassDataProc
	}
	m[OpMOVI] = ClassMove
	m[OpCMPI] = ClassCompare
	m[OpBCond] = ClassBranch
	return m
}()

// IsWidthBearing reports whether instructions of this class carry a W/X
// size flag at all (branches and system instructions do not: their
// registers, where present, are always full 64-bit address values).
func IsWidthBearing(class OpcodeClass) bool {
	return class != ClassBranch && class != ClassSystem
}

// ClassOf returns the instruction class a numeric opcode belongs to.
func ClassOf(op Opcode) (OpcodeClass, bool) {
	c, ok := opcodeClassByValue[op]
	return c, ok
}

// EncodeHeader packs the 6-bit opcode field (spec.md §4.1) into the top six
// bits of an instruction word. Width-bearing classes (opcode value < 32
// always, since every width-bearing mnemonic in the table is numbered 0-24)
// store sf in the field's top bit and the opcode in the low 5 bits;
// non-width-bearing classes (branch/system, numbered 25-63) store the
// literal opcode value directly, leaving no room for sf (and needing none).
func EncodeHeader(op Opcode, sf bool) uint32 {
	class, ok := ClassOf(op)
	if ok && IsWidthBearing(class) {
		field := uint32(op) & 0x1F
		if sf {
			field |= 0x20
		}
		return field << 26
	}
	return (uint32(op) & 0x3F) << 26
}

// DecodeHeader extracts the opcode and size flag from the top six bits of an
// instruction word, undoing EncodeHeader. ok is false if the field names no
// opcode known to ClassOf, or sets the sf bit over a branch/system opcode.
func DecodeHeader(word uint32) (op Opcode, sf bool, ok bool) {
	field := (word >> 26) & 0x3F
	if field == uint32(OpNOP) {
		return OpNOP, false, true
	}
	if field < 32 {
		op = Opcode(field)
		if _, known := ClassOf(op); known {
			return op, false, true
		}
		return 0, false, false
	}
	op = Opcode(field & 0x1F)
	if class, known := ClassOf(op); known && IsWidthBearing(class) {
		return op, true, true
	}
	return 0, false, false
}
