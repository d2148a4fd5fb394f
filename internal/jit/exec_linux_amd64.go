//go:build linux && amd64

package jit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// execBuffer is an mmap'd region holding finalized machine code. It starts
// life PROT_READ|PROT_WRITE so seal can copy in the code (whose embedded
// thunk addresses Compile in program_linux_amd64.go has already patched in
// a separate copy), then is sealed to PROT_READ|PROT_EXEC and never written
// to again.
type execBuffer struct {
	mem []byte
}

// allocExecBuffer reserves a page-rounded anonymous mapping of size bytes,
// writable but not yet executable.
func allocExecBuffer(size int) (*execBuffer, error) {
	page := unix.Getpagesize()
	n := alignUp(size, page)
	mem, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}
	return &execBuffer{mem: mem}, nil
}

// seal copies code into the buffer and switches it to read+execute.
func (b *execBuffer) seal(code []byte) error {
	copy(b.mem, code)
	if err := unix.Mprotect(b.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return fmt.Errorf("%w: %v", ErrFinalizationFailed, err)
	}
	return nil
}

// baseAddr returns the load address of the mapping, used to resolve
// Linux's embedded-thunk call fixups (see loweredProgram.fixups).
func (b *execBuffer) baseAddr() uint64 {
	return uint64(uintptrOf(b.mem))
}

func (b *execBuffer) close() error {
	return unix.Munmap(b.mem)
}
