//go:build linux && amd64

package jit

import (
	"testing"

	"github.com/nullptr-dev/bfjit/internal/ir"
)

func TestCompileEntryIsFirstInstruction(t *testing.T) {
	lp := compile([]ir.Node{{Kind: ir.AddCell, Count: 1}}, 0, 0)
	if lp.entry != 0 {
		t.Errorf("entry = %d, want 0 (prologue is the first thing emitted)", lp.entry)
	}
}

func TestCompileEmbedsLinuxThunksWhenNoAddrGiven(t *testing.T) {
	lp := compile([]ir.Node{{Kind: ir.Output}}, 0, 0)
	if lp.outputThunk < 0 || lp.inputThunk < 0 {
		t.Fatalf("expected embedded thunk offsets, got output=%d input=%d", lp.outputThunk, lp.inputThunk)
	}
	if lp.outputThunk >= len(lp.code) || lp.inputThunk >= len(lp.code) {
		t.Fatalf("thunk offsets fall outside the generated code buffer")
	}
}

func TestCompileRecordsOneFixupPerHostCall(t *testing.T) {
	nodes := []ir.Node{{Kind: ir.Output}, {Kind: ir.Input}, {Kind: ir.Output}}
	lp := compile(nodes, 0, 0)
	if len(lp.fixups) != 3 {
		t.Fatalf("expected 3 fixups (one per Output/Input node), got %d", len(lp.fixups))
	}
	wantOutput := []bool{true, false, true}
	for i, fx := range lp.fixups {
		if fx.output != wantOutput[i] {
			t.Errorf("fixup %d: output = %v, want %v", i, fx.output, wantOutput[i])
		}
	}
}

func TestCompileNoFixupsWhenThunkAddrsGiven(t *testing.T) {
	lp := compile([]ir.Node{{Kind: ir.Output}}, 0x1000, 0x2000)
	if len(lp.fixups) != 0 {
		t.Fatalf("expected no fixups when thunk addresses are provided directly, got %d", len(lp.fixups))
	}
	if lp.outputThunk != -1 || lp.inputThunk != -1 {
		t.Fatalf("expected no embedded thunks when addresses are provided directly")
	}
}

func TestCompileZeroClearLoopUsesPeepholeA(t *testing.T) {
	withLoop := compile([]ir.Node{{Kind: ir.Loop, Body: []ir.Node{{Kind: ir.SubCell, Count: 1}}}}, 0x1000, 0x2000)
	generalLoop := compile([]ir.Node{{Kind: ir.Loop, Body: []ir.Node{{Kind: ir.SubCell, Count: 2}}}}, 0x1000, 0x2000)

	// Peephole A lowers "[-]" to a single mov-immediate store (no branches),
	// which is strictly shorter than the general compare/jump/jump-back form
	// a non-idiomatic body like "[--]" must use.
	if len(withLoop.code) >= len(generalLoop.code) {
		t.Errorf("expected the zero-clear idiom to lower to shorter code: got %d bytes vs %d for the general form",
			len(withLoop.code), len(generalLoop.code))
	}
}
