// Package tape owns the fixed-size byte buffer a compiled or interpreted
// program executes against, and the host I/O thunks invoked from generated
// code or the interpreter to perform the language's two I/O operations.
package tape

import (
	"errors"
	"io"
)

// DefaultSize is the tape length used when no override is given. The
// original implementation this system is modeled on declares its tape as
// 16000 bytes, not the nearer round number 16384 ("16 KiB"); that choice is
// kept verbatim and exposed as a named, overridable constant rather than
// silently changed.
const DefaultSize = 16000

// ErrInputExhausted is returned by Input when the configured source has no
// more bytes. The language has no in-band way to observe this; callers
// should treat it as fatal.
var ErrInputExhausted = errors.New("tape: input exhausted")

// ErrInputTransport wraps any other error encountered while reading a byte
// from the input source.
var ErrInputTransport = errors.New("tape: input transport error")

// Tape is the runtime state shared by both backends: the cell array plus
// the injected I/O ports. The interpreter holds a *Tape directly; the JIT
// backend instead wraps Out/In in its own platform-specific host state
// (see internal/jit) since generated code calls host thunks, not Go methods.
type Tape struct {
	Cells []byte
	Out   io.Writer
	In    io.Reader
}

// New allocates a zero-filled tape of size bytes, wired to out/in.
func New(size int, out io.Writer, in io.Reader) *Tape {
	return &Tape{
		Cells: make([]byte, size),
		Out:   out,
		In:    in,
	}
}

// Output writes *cell to the configured sink. Mirrors the host thunk's
// (state, cell_ptr) arguments with the Tape as state; unlike the thunk, it
// returns the sink's write error.
func (t *Tape) Output(cell *byte) error {
	_, err := t.Out.Write([]byte{*cell})
	return err
}

// Input reads exactly one byte from the configured source into *cell.
func (t *Tape) Input(cell *byte) error {
	var buf [1]byte
	n, err := t.In.Read(buf[:])
	if n == 1 {
		*cell = buf[0]
		return nil
	}
	if errors.Is(err, io.EOF) {
		return ErrInputExhausted
	}
	if err != nil {
		return errors.Join(ErrInputTransport, err)
	}
	return ErrInputExhausted
}
