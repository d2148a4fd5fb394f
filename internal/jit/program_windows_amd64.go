//go:build windows && amd64

package jit

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/nullptr-dev/bfjit/internal/ir"
	"github.com/nullptr-dev/bfjit/internal/tape"
)

// windowsPorts is the state box handed to the program as arg0. Unlike
// Linux's jitState (a pair of file descriptors a raw syscall reads), the
// thunks here are syscall.NewCallback trampolines that close over this box
// directly; its job is letting Run swap in a fresh *tape.Tape between calls
// without recompiling the program or its callbacks.
type windowsPorts struct {
	tape *tape.Tape
	err  error
}

// Program is a JIT-compiled program sealed into executable memory. Its two
// host thunks are syscall.NewCallback trampolines baked into the generated
// code at compile time (Windows has no portable raw-syscall equivalent to
// Linux's embedded thunks), so a Program owns one fixed callback pair that
// every Run call routes through the current windowsPorts box.
type Program struct {
	lp    *loweredProgram
	buf   *execBuffer
	ports *windowsPorts

	// outputCB/inputCB are unused after Compile but keep the closures they
	// were built from reachable for the Program's lifetime, per
	// syscall.NewCallback's requirement that a callback never be collected
	// while foreign code might still call it.
	outputCB uintptr
	inputCB  uintptr
}

// Compile lowers nodes to native x86-64, wires up a pair of
// syscall.NewCallback host thunks, and seals the result into executable
// memory.
func Compile(nodes []ir.Node) (*Program, error) {
	ports := &windowsPorts{}

	outputCB := syscall.NewCallback(func(state, cell uintptr) uintptr {
		c := (*byte)(unsafe.Pointer(cell))
		if err := ports.tape.Output(c); err != nil && ports.err == nil {
			ports.err = err
		}
		return 0
	})
	inputCB := syscall.NewCallback(func(state, cell uintptr) uintptr {
		c := (*byte)(unsafe.Pointer(cell))
		if err := ports.tape.Input(c); err != nil {
			// Input exhaustion/transport failures are fatal (spec §7), and
			// the native loop that just called this thunk has no way to
			// observe ports.err — it will simply call again. Abort the
			// process directly here, matching the original JIT's
			// read_exact().expect() abort, instead of spinning forever.
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return 0
	})

	lp := compile(nodes, uint64(outputCB), uint64(inputCB))

	buf, err := allocExecBuffer(len(lp.code))
	if err != nil {
		return nil, err
	}
	if err := buf.seal(lp.code); err != nil {
		buf.close()
		return nil, err
	}

	return &Program{lp: lp, buf: buf, ports: ports, outputCB: outputCB, inputCB: inputCB}, nil
}

// Run executes the compiled program against t. Native code cannot be
// preempted mid-flight, so cancellation is only honored before the call
// starts.
func (p *Program) Run(ctx context.Context, t *tape.Tape) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.ports.tape = t
	p.ports.err = nil

	entry := p.buf.baseAddr() + uint64(p.lp.entry)
	base := uintptrOf(t.Cells)
	end := base + uintptr(len(t.Cells))

	callEntry(uintptr(entry), uintptr(unsafe.Pointer(p.ports)), base, base, end)
	return p.ports.err
}

func (p *Program) Close() error {
	return p.buf.close()
}
