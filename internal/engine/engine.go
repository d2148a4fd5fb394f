// Package engine is the façade tying parsing, the native JIT backend, and
// the portable interpreter fallback into a single Compile entry point,
// mirroring the original implementation's #[cfg(target_arch = "x86_64")]
// split between its compiler and fallback modules.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/nullptr-dev/bfjit/internal/interp"
	"github.com/nullptr-dev/bfjit/internal/ir"
	"github.com/nullptr-dev/bfjit/internal/runio"
	"github.com/nullptr-dev/bfjit/internal/tape"
)

// Options configures a Compile call. The zero value selects the default
// tape size and lets the engine pick the best available backend.
type Options struct {
	// TapeSize overrides tape.DefaultSize when non-zero.
	TapeSize int

	// ForceInterp skips native code generation even on a supported
	// platform, used by tests that want to compare both backends against
	// the same program.
	ForceInterp bool
}

// Program is satisfied by both the jit and interp backends: something that
// can run a compiled/parsed instruction sequence against a tape and be torn
// down afterward.
type Program interface {
	Run(ctx context.Context, t *tape.Tape) error
	Close() error
}

// Compile parses src and lowers it to the best backend available on the
// current platform: native machine code where supported, the interpreter
// everywhere else (or when opts.ForceInterp is set). If native compilation
// fails for any reason, including an executable-memory allocation or
// finalization failure, Compile returns the interpreter instead; such
// code-generation errors are not returned to the caller.
func Compile(src io.Reader, opts Options) (Program, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("engine: reading source: %w", err)
	}

	nodes, err := ir.Parse([]rune(string(buf)))
	if err != nil {
		return nil, fmt.Errorf("engine: parsing source: %w", err)
	}

	if !opts.ForceInterp {
		if p, err := compileNative(nodes); err == nil {
			return p, nil
		}
	}
	return interp.Compile(nodes), nil
}

// NewTape allocates a tape sized per opts, wired to ports.
func NewTape(opts Options, ports runio.Ports) *tape.Tape {
	size := opts.TapeSize
	if size <= 0 {
		size = tape.DefaultSize
	}
	return tape.New(size, ports.Stdout, ports.Stdin)
}
