package jit

import "github.com/nullptr-dev/bfjit/internal/ir"

// Stack slot offsets (rbp-relative) where the four argument registers are
// homed so a host call's clobbering of volatile registers can be undone.
// DPTR (abiDptrReg) is also spilled here immediately before every host
// call, even though it doubles as that call's second argument, because it
// is caller-saved and must be reloaded once the call returns.
const (
	stateSlot = 8
	dptrSlot  = 16
	baseSlot  = 24
	endSlot   = 32

	frameSize = 32 // four 8-byte home slots
)

// thunkTarget records one call site that needs its absolute thunk address
// patched in once that address is known. On Windows the address (a
// syscall.NewCallback result) is known before code generation starts, so
// no fixup is needed there; on Linux/amd64 the thunk is machine code
// embedded in this same buffer and its address depends on where the OS
// ultimately maps the buffer, so the fixup is resolved post-mmap.
type thunkTarget struct {
	immOffset int // offset of the movAbs64 8-byte immediate field
	output    bool
}

// loweredProgram is the result of lowering an IR program: the raw instruction
// bytes (not yet executable), the entry offset, and the bookkeeping needed
// to finish wiring host I/O once the buffer is placed in memory.
type loweredProgram struct {
	code        []byte
	entry       int
	fixups      []thunkTarget // unresolved (Linux embedded-thunk) call sites
	outputThunk int           // offset of embedded output thunk, -1 if none
	inputThunk  int           // offset of embedded input thunk, -1 if none
}

// compile lowers nodes into a loweredProgram. outputAddr/inputAddr are
// absolute host thunk addresses to embed directly (the Windows case,
// syscall.NewCallback results); pass 0 for both to request Linux-style
// embedded thunks instead, appended to the buffer and left as pending
// fixups in the returned loweredProgram.
func compile(nodes []ir.Node, outputAddr, inputAddr uint64) *loweredProgram {
	g := newCodeGen()
	entry := g.offset()

	g.prologue()
	g.compileBlock(nodes, outputAddr, inputAddr)
	g.epilogue()

	lp := &loweredProgram{code: g.code, entry: entry, fixups: g.fixups, outputThunk: -1, inputThunk: -1}

	if outputAddr == 0 && inputAddr == 0 {
		lp.outputThunk = g.offset()
		emitLinuxOutputThunk(g)
		lp.inputThunk = g.offset()
		emitLinuxInputThunk(g)
		lp.code = g.code
	}
	return lp
}

func (g *CodeGen) prologue() {
	g.pushR(regRBP)
	g.movRR(regRBP, regRSP)
	total := alignUp(frameSize+abiShadowSpace, abiStackAlign)
	g.subRegImm32(regRSP, int32(total))
	g.storeLocal(stateSlot, abiStateReg)
	g.storeLocal(dptrSlot, abiDptrReg)
	g.storeLocal(baseSlot, abiBaseReg)
	g.storeLocal(endSlot, abiEndReg)
}

func (g *CodeGen) epilogue() {
	g.xorRR(regRAX, regRAX)
	g.movRR(regRSP, regRBP)
	g.popR(regRBP)
	g.emitByte(0xc3) // ret
}

// compileBlock lowers a sibling sequence of IR nodes in order.
func (g *CodeGen) compileBlock(nodes []ir.Node, outputAddr, inputAddr uint64) {
	for _, n := range nodes {
		g.compileNode(n, outputAddr, inputAddr)
	}
}

func (g *CodeGen) compileNode(n ir.Node, outputAddr, inputAddr uint64) {
	switch n.Kind {
	case ir.AdvancePointer:
		g.addRegImm32(abiDptrReg, int32(n.Count))
	case ir.RetreatPointer:
		g.subRegImm32(abiDptrReg, int32(n.Count))
	case ir.AddCell:
		g.addMemImm8(abiDptrReg, int8(byte(n.Count)))
	case ir.SubCell:
		g.subMemImm8(abiDptrReg, int8(byte(n.Count)))
	case ir.Output:
		g.emitHostCall(true, outputAddr)
	case ir.Input:
		g.emitHostCall(false, inputAddr)
	case ir.Loop:
		g.compileLoop(n.Body, outputAddr, inputAddr)
	}
}

// compileLoop lowers a Loop node, applying peephole A ("[-]" clears the
// current cell) when it applies. Peephole B ("[<]") is deliberately not
// implemented — see DESIGN.md.
func (g *CodeGen) compileLoop(body []ir.Node, outputAddr, inputAddr uint64) {
	if ir.IsZeroClear(body) {
		g.movMemImm8(abiDptrReg, 0)
		return
	}

	head := g.offset()
	g.cmpMemImm8(abiDptrReg, 0)
	exitFixup := g.jccRel32(ccE)
	g.compileBlock(body, outputAddr, inputAddr)
	g.jmpTo(head)
	g.patchRel32(exitFixup)
}

// jmpTo emits `jmp rel32` to a known, already-encoded target (used for the
// backward edge of a loop).
func (g *CodeGen) jmpTo(target int) {
	g.emitByte(0xe9)
	rel := int32(target - (g.offset() + 4))
	g.emitU32(uint32(rel))
}

// emitHostCall spills the data pointer, arranges the call-site argument
// registers for the target ABI's two-argument thunk convention, calls the
// thunk, and reloads all four argument registers (every one of them is
// caller-saved and may have been clobbered).
//
// addr == 0 means "use the embedded Linux thunk appended to this buffer";
// the call target is then an unresolved fixup patched in once the buffer's
// load address is known (see compile and program_linux_amd64.go).
func (g *CodeGen) emitHostCall(output bool, addr uint64) {
	g.storeLocal(dptrSlot, abiDptrReg)
	g.arrangeThunkArgs()

	if addr != 0 {
		g.movAbs64(regRAX, addr)
	} else {
		g.movAbs64(regRAX, 0)
		g.fixups = append(g.fixups, thunkTarget{immOffset: g.offset() - 8, output: output})
	}
	g.callR(regRAX)

	g.loadLocal(stateSlot, abiStateReg)
	g.loadLocal(dptrSlot, abiDptrReg)
	g.loadLocal(baseSlot, abiBaseReg)
	g.loadLocal(endSlot, abiEndReg)
}
