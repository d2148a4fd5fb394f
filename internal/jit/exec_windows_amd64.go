//go:build windows && amd64

package jit

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// execBuffer wraps a VirtualAlloc'd region, mirroring the Unix
// mmap-then-mprotect sequence: committed read/write first so code can be
// copied in, then switched to read/execute and never written again.
type execBuffer struct {
	addr uintptr
	size uintptr
}

func allocExecBuffer(size int) (*execBuffer, error) {
	n := uintptr(alignUp(size, 4096))
	addr, err := windows.VirtualAlloc(0, n, windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}
	return &execBuffer{addr: addr, size: n}, nil
}

func (b *execBuffer) seal(code []byte) error {
	dst := unsafe.Slice((*byte)(unsafe.Pointer(b.addr)), b.size)
	copy(dst, code)
	var old uint32
	if err := windows.VirtualProtect(b.addr, b.size, windows.PAGE_EXECUTE_READ, &old); err != nil {
		return fmt.Errorf("%w: %v", ErrFinalizationFailed, err)
	}
	return nil
}

// baseAddr is used on Windows only to locate the entry point: thunk
// addresses are syscall.NewCallback results known before code generation,
// so there are no fixups to resolve against the buffer's own load address.
func (b *execBuffer) baseAddr() uint64 { return uint64(b.addr) }

func (b *execBuffer) close() error {
	return windows.VirtualFree(b.addr, 0, windows.MEM_RELEASE)
}
