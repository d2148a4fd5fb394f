// Package jit lowers a parsed program into native x86-64 machine code and
// runs it directly, falling back to the interpreter on platforms it does
// not cover (see internal/engine).
//
// # Register contract
//
// The generated function body is entered with four live arguments — a
// pointer to host-call state, the tape's base address, the current data
// pointer (DPTR), and the tape's end address — homed in the platform's
// native argument registers (abiStateReg/abiBaseReg/abiDptrReg/abiEndReg in
// abi_linux_amd64.go and abi_windows_amd64.go). DPTR is the only one of the
// four that moves during execution; the other three are read-only for the
// lifetime of the call.
//
// Every host I/O call is a real CALL/RET through a two-argument thunk
// (state, cell-address). Because all four argument registers are
// caller-saved under both the System V and Microsoft x64 conventions, a
// call first spills them to the stack frame built in the function
// prologue and reloads them immediately after (see emitHostCall in
// lower.go) — the host thunk is free to clobber them exactly as a
// standards-conforming callee would.
package jit
