// Package interp implements the portable interpreter fallback: it walks the
// IR directly with a recursive function dispatching on the node's Kind,
// rather than building a per-node closure tree. Used whenever native code
// generation is unavailable, and as a comparison backend in tests.
package interp

import (
	"context"

	"github.com/nullptr-dev/bfjit/internal/ir"
	"github.com/nullptr-dev/bfjit/internal/tape"
)

// Program is the interpreter's analogue of a compiled jit.Program: a parsed
// instruction sequence ready to run against a tape.
type Program struct {
	nodes []ir.Node
}

// Compile stores the parsed program for later execution. Unlike the JIT,
// there is no separate code-generation step; "compiling" is just keeping
// the IR around.
func Compile(nodes []ir.Node) *Program {
	return &Program{nodes: nodes}
}

// Close is a no-op; present so Program satisfies the same shape the engine
// expects of both backends.
func (p *Program) Close() error { return nil }

// Run walks the program against t, starting with the data pointer at index
// 0 (tape base). Returns any error encountered (a fatal I/O error, or ctx
// cancellation); the data pointer's final value is not reported.
func (p *Program) Run(ctx context.Context, t *tape.Tape) error {
	_, err := run(ctx, p.nodes, t, 0)
	return err
}

// run walks nodes against t starting at data pointer idx, returning the
// pointer's value after the last instruction executes.
func run(ctx context.Context, nodes []ir.Node, t *tape.Tape, idx int) (int, error) {
	for _, n := range nodes {
		switch n.Kind {
		case ir.AdvancePointer:
			idx += n.Count
		case ir.RetreatPointer:
			idx -= n.Count
		case ir.AddCell:
			t.Cells[idx] += byte(n.Count)
		case ir.SubCell:
			t.Cells[idx] -= byte(n.Count)
		case ir.Output:
			if err := t.Output(&t.Cells[idx]); err != nil {
				return idx, err
			}
		case ir.Input:
			if err := t.Input(&t.Cells[idx]); err != nil {
				return idx, err
			}
		case ir.Loop:
			for t.Cells[idx] != 0 {
				select {
				case <-ctx.Done():
					return idx, ctx.Err()
				default:
				}
				var err error
				idx, err = run(ctx, n.Body, t, idx)
				if err != nil {
					return idx, err
				}
			}
		}
	}
	return idx, nil
}
