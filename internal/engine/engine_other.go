//go:build !((linux || windows) && amd64)

package engine

import (
	"errors"

	"github.com/nullptr-dev/bfjit/internal/ir"
)

var errNoNativeBackend = errors.New("engine: no native backend for this platform")

func compileNative(nodes []ir.Node) (Program, error) {
	return nil, errNoNativeBackend
}
