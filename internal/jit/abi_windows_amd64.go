//go:build windows && amd64

package jit

// Microsoft x64 calling convention. The Go asm trampoline (call_windows_amd64.s)
// always invokes the generated entry point with four pointer arguments in
// (state, base, base, end) order; on Windows those land in RCX, RDX, R8, R9
// respectively. The original implementation this backend is modeled on
// binds the live data pointer to RDX (the second argument slot) rather than
// R8 (the generic "third argument" slot), leaving R8 as a redundant spilled
// copy of the tape base — this backend reproduces that exact register
// assignment rather than the more obvious one, since it is the documented
// binary contract (see package doc comment).
const (
	abiStateReg    = regRCX
	abiDptrReg     = regRDX
	abiBaseReg     = regR8
	abiEndReg      = regR9
	abiShadowSpace = 0x20 // 32 bytes, Microsoft x64 shadow space
	abiStackAlign  = 16
)

// arrangeThunkArgs is a no-op on Windows: the thunk call convention is
// (state, cell) in (RCX, RDX), which already matches abiStateReg/abiDptrReg.
func (g *CodeGen) arrangeThunkArgs() {}
