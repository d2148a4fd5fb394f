//go:build linux && amd64

package jit

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/nullptr-dev/bfjit/internal/ir"
	"github.com/nullptr-dev/bfjit/internal/tape"
)

// Program is a JIT-compiled program sealed into executable memory, ready to
// run against any number of tapes/ports in turn. Its two host I/O thunks
// are embedded machine code (see thunk_linux_amd64.go) rather than
// addresses baked in at compile time, so the same Program can be reused
// across Run calls with different io.Writer/io.Reader pairs.
type Program struct {
	lp  *loweredProgram
	buf *execBuffer
}

// Compile lowers nodes to native x86-64 and seals the result into
// executable memory, patching the embedded thunks' call targets once the
// buffer's load address is known.
func Compile(nodes []ir.Node) (*Program, error) {
	lp := compile(nodes, 0, 0)

	buf, err := allocExecBuffer(len(lp.code))
	if err != nil {
		return nil, err
	}

	base := buf.baseAddr()
	patched := append([]byte(nil), lp.code...)
	for _, fx := range lp.fixups {
		target := base + uint64(lp.outputThunk)
		if !fx.output {
			target = base + uint64(lp.inputThunk)
		}
		putU64(patched, fx.immOffset, target)
	}

	if err := buf.seal(patched); err != nil {
		buf.close()
		return nil, err
	}

	return &Program{lp: lp, buf: buf}, nil
}

// Run executes the compiled program against t, directing cell I/O through
// t.Out/t.In for the duration of the call. Native code cannot be preempted
// mid-flight the way the interpreter's per-iteration ctx check can, so
// cancellation is only honored before the call starts.
func (p *Program) Run(ctx context.Context, t *tape.Tape) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	state, closePorts, err := bindPorts(t.Out, t.In)
	if err != nil {
		return fmt.Errorf("jit: binding host ports: %w", err)
	}
	defer closePorts()

	entry := p.buf.baseAddr() + uint64(p.lp.entry)
	base := uintptrOf(t.Cells)
	end := base + uintptr(len(t.Cells))

	callEntry(uintptr(entry), uintptr(unsafe.Pointer(state)), base, base, end)
	return nil
}

func (p *Program) Close() error {
	return p.buf.close()
}

func putU64(b []byte, off int, v uint64) {
	for i := 0; i < 8; i++ {
		b[off+i] = byte(v >> (8 * i))
	}
}
