package vm

// Constants are the stable, user-visible machine parameters.
const (
	NumRegs    = 32
	MemSize    = 0x100000
	StackBase  = 0x100000
	StackLimit = 0x000800 // soft; no enforcement in the core

	LR = 30
	SP = 31
)
