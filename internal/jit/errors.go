package jit

import "errors"

var (
	// ErrAllocationFailed is returned when the host OS refuses to hand back
	// an executable-capable memory mapping (mmap/VirtualAlloc).
	ErrAllocationFailed = errors.New("jit: executable memory allocation failed")

	// ErrFinalizationFailed is returned when a sealed buffer's protection
	// bits cannot be switched from writable to executable.
	ErrFinalizationFailed = errors.New("jit: executable memory finalization failed")

	// ErrUnsupportedPlatform names the case of a GOOS/GOARCH combination
	// with no native code generator. Compile does not return it: on such
	// platforms internal/engine selects the interpreter by build tag and
	// reports its own error instead.
	ErrUnsupportedPlatform = errors.New("jit: unsupported platform")
)
