package isa

// MemoryOperand describes a load/store addressing mode: a base register,
// an optional index register, a signed immediate offset, and at most one of
// PreIndex/PostIndex describing when the base register is updated with the
// computed effective address.
type MemoryOperand struct {
	Base      Register
	Index     Register
	HasIndex  bool
	Offset    Immediate
	PreIndex  bool
	PostIndex bool
}
