//go:build linux && amd64

package jit

// Linux has no equivalent of Windows' syscall.NewCallback (there is no
// portable, officially supported way to hand the kernel or generated code
// a callable pointer into the Go runtime without cgo). Rather than bridge
// foreign machine code back into a Go function call — which would require
// hand-rolling the G-register and stack-growth bookkeeping the runtime
// normally handles on every Go call — the two host thunks are themselves
// emitted as small position-independent machine code blocks appended to
// the same executable buffer as the compiled program, doing the I/O with
// a direct `write`/`read` syscall. This mirrors the teacher's own
// generated-code I/O path (see backend_linux_x64.go's emitStart/compilePanic,
// which emit SYS_write directly) rather than the original Rust bfc's
// host-callback design, and keeps the register-preservation contract
// testable: call sites still spill/reload across a real CALL/RET boundary.
//
// Each thunk reads the target file descriptor from the state struct
// (*jitState, see state_linux_amd64.go) at a fixed offset, so output/input
// can be redirected per invocation instead of being hardcoded to fd 1/0.
const (
	sysRead      = 0
	sysWrite     = 1
	sysExitGroup = 231
)

// exhaustedExitCode is the process exit code used when the embedded input
// thunk hits a short or failed read. Its value carries no meaning beyond
// "nonzero"; callers observe input exhaustion as the process dying, the
// same way the original Rust JIT's read_exact().expect() aborts.
const exhaustedExitCode = 1

// emitLinuxOutputThunk appends a thunk with C signature
// void(*)(jitState *state, byte *cell) that writes *cell to state.OutFD.
//
// Entry: RDI = state, RSI = cell.
func emitLinuxOutputThunk(g *CodeGen) {
	// mov rax, [rdi]        ; OutFD (offset 0 of jitState)
	g.emitBytes(0x48, 0x8b, 0x07)
	// mov rdi, rax          ; fd arg for write(2)
	g.emitBytes(0x48, 0x89, 0xc7)
	// (rsi already holds the cell pointer = buf arg)
	// mov rdx, 1            ; len = 1
	g.emitBytes(0xba, 0x01, 0x00, 0x00, 0x00)
	// mov eax, 1            ; SYS_write
	g.emitBytes(0xb8, byte(sysWrite), 0x00, 0x00, 0x00)
	g.emitBytes(0x0f, 0x05) // syscall
	g.emitByte(0xc3)        // ret
}

// emitLinuxInputThunk appends a thunk with the same signature that reads
// one byte from state.InFD into *cell. A short read (EOF) or a negative
// return (error) means input is exhausted, which spec classifies as fatal
// rather than undefined behavior — the thunk checks RAX after the syscall
// and calls exit_group(1) itself on anything but a clean one-byte read,
// reproducing the original Rust JIT's read_exact().expect() abort directly
// in machine code instead of silently looping or leaving *cell stale.
func emitLinuxInputThunk(g *CodeGen) {
	// mov rax, [rdi+8]      ; InFD (offset 8 of jitState)
	g.emitBytes(0x48, 0x8b, 0x47, 0x08)
	// mov rdi, rax          ; fd arg for read(2)
	g.emitBytes(0x48, 0x89, 0xc7)
	// (rsi already holds the cell pointer = buf arg)
	// mov rdx, 1            ; len = 1
	g.emitBytes(0xba, 0x01, 0x00, 0x00, 0x00)
	// mov eax, 0            ; SYS_read
	g.emitBytes(0xb8, byte(sysRead), 0x00, 0x00, 0x00)
	g.emitBytes(0x0f, 0x05) // syscall

	// cmp rax, 1 ; je ok
	g.emitBytes(0x48, 0x83, 0xf8, 0x01)
	okFixup := g.jccRel32(ccE)

	// mov edi, exhaustedExitCode ; mov eax, SYS_exit_group ; syscall
	g.emitBytes(0xbf, byte(exhaustedExitCode), 0x00, 0x00, 0x00)
	g.emitBytes(0xb8, byte(sysExitGroup), 0x00, 0x00, 0x00)
	g.emitBytes(0x0f, 0x05)

	g.patchRel32(okFixup)
	g.emitByte(0xc3) // ret
}
