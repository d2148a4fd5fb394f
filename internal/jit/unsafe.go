//go:build (linux || windows) && amd64

package jit

import "unsafe"

// uintptrOf returns the address of a byte slice's backing array. Used only
// to compute absolute addresses for fixups and for handing the entry point
// to the call trampoline; never used to extend the slice's lifetime
// assumptions beyond what the caller already guarantees.
func uintptrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
