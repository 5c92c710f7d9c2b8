package asm

import (
	"math"
	"strconv"
	"strings"

	"github.com/DumpA1n/TinyAArch64/isa"
)

// fixup records a deferred label resolution: the instruction word at
// byte address Site needs its branch-offset field filled in once Label's
// address is known.
type fixup struct {
	Site  uint32
	Label string
	Cond  bool // conditional (22-bit field) vs unconditional (26-bit field)
}

// Assemble assembles a multi-line assembly source string into a flat stream
// of 32-bit encoded instruction words.
func Assemble(source string) ([]uint32, error) {
	return AssembleLines(strings.Split(source, "\n"))
}

// AssembleLines assembles a sequence of assembly source lines, one
// statement per line, into a flat stream of 32-bit encoded instruction
// words. This is the two-pass assembler described in spec.md §4.1: pass 1
// collects label addresses, pass 2 encodes instructions (recording a fixup
// for any branch whose operand is a label), and a final fixup pass patches
// the resolved branch offsets back into the already-emitted words.
func AssembleLines(lines []string) ([]uint32, error) {
	labels := make(map[string]uint32)

	// Pass 1: label collection.
	pc := uint32(0)
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasSuffix(line, ":") {
			name := strings.TrimSuffix(line, ":")
			if _, dup := labels[name]; dup {
				return nil, newError(ErrBadOperand, i+1, raw, "duplicate label: "+name)
			}
			labels[name] = pc
			continue
		}
		pc += 4
	}

	// Pass 2: encoding.
	var words []uint32
	var fixups []fixup
	pc = 0
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasSuffix(line, ":") {
			continue
		}

		tokens := tokenizeLine(line)
		if len(tokens) == 0 {
			return nil, newError(ErrTooFewOperands, i+1, raw, "empty instruction")
		}

		if tokens[0] == ".INT" || tokens[0] == ".FLOAT" {
			word, err := encodeDirective(tokens, i+1, raw)
			if err != nil {
				return nil, err
			}
			words = append(words, word)
			pc += 4
			continue
		}

		word, fx, err := encodeInstruction(tokens, pc, i+1, raw, labels)
		if err != nil {
			return nil, err
		}
		if fx != nil {
			if _, ok := labels[fx.Label]; !ok {
				return nil, newError(ErrUnknownLabel, i+1, raw, "unknown label: "+fx.Label)
			}
			fixups = append(fixups, *fx)
		}
		words = append(words, word)
		pc += 4
	}

	// Fixup pass.
	for _, fx := range fixups {
		target, ok := labels[fx.Label]
		if !ok {
			return nil, &Error{Kind: ErrUnknownLabel, Msg: "unknown label: " + fx.Label}
		}
		offsetWords := (int64(target) - int64(fx.Site+4)) / 4
		idx := fx.Site / 4
		if fx.Cond {
			words[idx] |= uint32(offsetWords) & 0x3FFFFF
		} else {
			words[idx] |= uint32(offsetWords) & 0x3FFFFFF
		}
	}

	return words, nil
}

func encodeDirective(tokens []string, line int, raw string) (uint32, error) {
	if len(tokens) < 2 {
		return 0, newError(ErrTooFewOperands, line, raw, "directive missing value")
	}
	tok := tokens[1]
	if tokens[0] == ".FLOAT" {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return 0, newError(ErrBadOperand, line, raw, "invalid float literal: "+tok)
		}
		return math.Float32bits(float32(f)), nil
	}
	base := 10
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		base = 16
		tok = tok[2:]
	}
	v, err := strconv.ParseUint(tok, base, 32)
	if err != nil {
		return 0, newError(ErrBadOperand, line, raw, "invalid integer literal: "+tokens[1])
	}
	return uint32(v), nil
}

func encodeInstruction(tokens []string, pc uint32, line int, raw string, labels map[string]uint32) (uint32, *fixup, error) {
	mnemonic := tokens[0]
	operands := tokens[1:]

	switch mnemonic {
	case "ADD", "SUB", "AND", "ORR", "EOR":
		return encodeDataProc(mnemonic, operands, line, raw)
	case "MOV":
		return encodeMove(operands, line, raw)
	case "CMP":
		return encodeCompare(operands, line, raw)
	case "MUL", "SDIV", "UDIV":
		return encodeMulDiv(mnemonic, operands, line, raw)
	case "LDR", "LDRB", "LDRH", "LDRW", "LDRD", "STR", "STRB", "STRH", "STRW", "STRD":
		return encodeLoadStore(mnemonic, operands, line, raw)
	case "B", "BL":
		return encodeBranchLabel(mnemonic, operands, pc, line, raw)
	case "BLR", "BR":
		return encodeBranchReg(mnemonic, operands, line, raw)
	case "RET", "HLT", "NOP":
		return encodeSystem(mnemonic, line, raw)
	}

	if cond, ok := splitConditionalBranch(mnemonic); ok {
		return encodeBranchCond(cond, operands, pc, line, raw)
	}

	return 0, nil, newError(ErrUnknownMnemonic, line, raw, "unknown mnemonic: "+mnemonic)
}

// splitConditionalBranch recognizes both "B.EQ"-style and the original
// TinyAArch64 source's bare "BEQ"-style conditional branch spellings.
func splitConditionalBranch(mnemonic string) (cond isa.BranchCondition, ok bool) {
	if strings.HasPrefix(mnemonic, "B.") {
		return isa.ParseCondition(mnemonic[2:])
	}
	if strings.HasPrefix(mnemonic, "B") && len(mnemonic) > 1 {
		switch mnemonic {
		case "BL", "BLR", "BR":
			return 0, false
		}
		return isa.ParseCondition(mnemonic[1:])
	}
	return 0, false
}

func requireOperands(n int, operands []string, line int, raw string) error {
	if len(operands) < n {
		return newError(ErrTooFewOperands, line, raw, "expected at least "+strconv.Itoa(n)+" operands")
	}
	return nil
}

func encodeDataProc(mnemonic string, operands []string, line int, raw string) (uint32, *fixup, error) {
	if err := requireOperands(3, operands, line, raw); err != nil {
		return 0, nil, err
	}
	rd, err := classifyOperand(operands[0])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	rn, err := classifyOperand(operands[1])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	third, err := classifyOperand(operands[2])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	if rd.kind != operandRegister || rn.kind != operandRegister {
		return 0, nil, newError(ErrBadOperand, line, raw, "expected register operands")
	}

	regInfo := isa.MnemonicTable[mnemonic]
	sf := rd.reg.Width == isa.X
	op := regInfo.Opcode
	if third.kind == operandImmediate {
		op, _ = isa.ImmediateOpcodeOf(regInfo.Opcode)
	}
	word := isa.EncodeHeader(op, sf)
	word |= uint32(rd.reg.Number&0x1F) << 21
	word |= uint32(rn.reg.Number&0x1F) << 16

	switch third.kind {
	case operandRegister:
		word |= uint32(third.reg.Number & 0x1F)
	case operandImmediate:
		word |= uint32(third.imm) & 0xFFFF
	default:
		return 0, nil, newError(ErrBadOperand, line, raw, "expected register or immediate third operand")
	}
	return word, nil, nil
}

func encodeMove(operands []string, line int, raw string) (uint32, *fixup, error) {
	if err := requireOperands(2, operands, line, raw); err != nil {
		return 0, nil, err
	}
	rd, err := classifyOperand(operands[0])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	src, err := classifyOperand(operands[1])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	if rd.kind != operandRegister {
		return 0, nil, newError(ErrBadOperand, line, raw, "expected destination register")
	}
	sf := rd.reg.Width == isa.X

	switch src.kind {
	case operandRegister:
		word := isa.EncodeHeader(isa.OpMOV, sf)
		word |= uint32(rd.reg.Number&0x1F) << 21
		word |= uint32(src.reg.Number&0x1F) << 16
		return word, nil, nil
	case operandImmediate:
		word := isa.EncodeHeader(isa.OpMOVI, sf)
		word |= uint32(rd.reg.Number&0x1F) << 21
		word |= uint32(src.imm) & 0xFFFF
		return word, nil, nil
	}
	return 0, nil, newError(ErrBadOperand, line, raw, "expected register or immediate source")
}

func encodeCompare(operands []string, line int, raw string) (uint32, *fixup, error) {
	if err := requireOperands(2, operands, line, raw); err != nil {
		return 0, nil, err
	}
	rn, err := classifyOperand(operands[0])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	rhs, err := classifyOperand(operands[1])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	if rn.kind != operandRegister {
		return 0, nil, newError(ErrBadOperand, line, raw, "expected register operand")
	}
	sf := rn.reg.Width == isa.X

	switch rhs.kind {
	case operandRegister:
		word := isa.EncodeHeader(isa.OpCMP, sf)
		word |= uint32(rn.reg.Number&0x1F) << 21
		word |= uint32(rhs.reg.Number&0x1F) << 16
		return word, nil, nil
	case operandImmediate:
		word := isa.EncodeHeader(isa.OpCMPI, sf)
		word |= uint32(rn.reg.Number&0x1F) << 21
		word |= uint32(rhs.imm) & 0xFFFF
		return word, nil, nil
	}
	return 0, nil, newError(ErrBadOperand, line, raw, "expected register or immediate")
}

func encodeMulDiv(mnemonic string, operands []string, line int, raw string) (uint32, *fixup, error) {
	if err := requireOperands(3, operands, line, raw); err != nil {
		return 0, nil, err
	}
	rd, err := classifyOperand(operands[0])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	rn, err := classifyOperand(operands[1])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	rm, err := classifyOperand(operands[2])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	if rd.kind != operandRegister || rn.kind != operandRegister || rm.kind != operandRegister {
		return 0, nil, newError(ErrBadOperand, line, raw, "expected three register operands")
	}
	info := isa.MnemonicTable[mnemonic]
	sf := rd.reg.Width == isa.X
	word := isa.EncodeHeader(info.Opcode, sf)
	word |= uint32(rd.reg.Number&0x1F) << 21
	word |= uint32(rn.reg.Number&0x1F) << 16
	word |= uint32(rm.reg.Number & 0x1F)
	return word, nil, nil
}

func encodeLoadStore(mnemonic string, operands []string, line int, raw string) (uint32, *fixup, error) {
	if err := requireOperands(2, operands, line, raw); err != nil {
		return 0, nil, err
	}
	rt, err := classifyOperand(operands[0])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	rn, err := classifyOperand(operands[1])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	if rt.kind != operandRegister || rn.kind != operandRegister {
		return 0, nil, newError(ErrBadOperand, line, raw, "expected register operands")
	}

	var immVal int64
	if len(operands) > 2 {
		imm, err := classifyOperand(operands[2])
		if err != nil {
			return 0, nil, withPos(err, line, raw)
		}
		if imm.kind != operandImmediate {
			return 0, nil, newError(ErrBadOperand, line, raw, "expected immediate offset")
		}
		immVal = imm.imm
	}

	op := loadStoreOpcode(mnemonic, rt.reg.Width == isa.X)
	sf := rt.reg.Width == isa.X
	word := isa.EncodeHeader(op, sf)
	word |= uint32(rt.reg.Number&0x1F) << 21
	word |= uint32(rn.reg.Number&0x1F) << 16
	word |= uint32(immVal) & 0xFFFF
	return word, nil, nil
}

func loadStoreOpcode(mnemonic string, isX bool) isa.Opcode {
	switch mnemonic {
	case "LDR":
		if isX {
			return isa.OpLDRD
		}
		return isa.OpLDRW
	case "STR":
		if isX {
			return isa.OpSTRD
		}
		return isa.OpSTRW
	case "LDRB":
		return isa.OpLDRB
	case "LDRH":
		return isa.OpLDRH
	case "LDRW":
		return isa.OpLDRW
	case "LDRD":
		return isa.OpLDRD
	case "STRB":
		return isa.OpSTRB
	case "STRH":
		return isa.OpSTRH
	case "STRW":
		return isa.OpSTRW
	case "STRD":
		return isa.OpSTRD
	}
	return isa.OpLDRW
}

func encodeBranchLabel(mnemonic string, operands []string, pc uint32, line int, raw string) (uint32, *fixup, error) {
	if err := requireOperands(1, operands, line, raw); err != nil {
		return 0, nil, err
	}
	op := isa.OpB
	if mnemonic == "BL" {
		op = isa.OpBL
	}
	word := isa.EncodeHeader(op, false)
	return word, &fixup{Site: pc, Label: operands[0], Cond: false}, nil
}

func encodeBranchCond(cond isa.BranchCondition, operands []string, pc uint32, line int, raw string) (uint32, *fixup, error) {
	if err := requireOperands(1, operands, line, raw); err != nil {
		return 0, nil, err
	}
	word := isa.EncodeHeader(isa.OpBCond, false)
	word |= (uint32(cond) & 0xF) << 22
	return word, &fixup{Site: pc, Label: operands[0], Cond: true}, nil
}

func encodeBranchReg(mnemonic string, operands []string, line int, raw string) (uint32, *fixup, error) {
	if err := requireOperands(1, operands, line, raw); err != nil {
		return 0, nil, err
	}
	target, err := classifyOperand(operands[0])
	if err != nil {
		return 0, nil, withPos(err, line, raw)
	}
	if target.kind != operandRegister {
		return 0, nil, newError(ErrBadOperand, line, raw, "expected target register")
	}
	op := isa.OpBR
	if mnemonic == "BLR" {
		op = isa.OpBLR
	}
	word := isa.EncodeHeader(op, false)
	word |= uint32(target.reg.Number&0x1F) << 16
	return word, nil, nil
}

func encodeSystem(mnemonic string, line int, raw string) (uint32, *fixup, error) {
	var op isa.Opcode
	switch mnemonic {
	case "RET":
		op = isa.OpRET
	case "HLT":
		op = isa.OpHLT
	case "NOP":
		op = isa.OpNOP
	}
	return isa.EncodeHeader(op, false), nil, nil
}

// withPos re-stamps an *Error produced deep in operand classification (which
// does not know the source line) with the enclosing statement's position.
func withPos(err error, line int, raw string) error {
	if ae, ok := err.(*Error); ok {
		ae.Line = line
		ae.Text = raw
		return ae
	}
	return err
}
