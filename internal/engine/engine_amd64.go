//go:build (linux || windows) && amd64

package engine

import (
	"github.com/nullptr-dev/bfjit/internal/ir"
	"github.com/nullptr-dev/bfjit/internal/jit"
)

func compileNative(nodes []ir.Node) (Program, error) {
	return jit.Compile(nodes)
}
