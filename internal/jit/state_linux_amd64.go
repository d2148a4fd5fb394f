//go:build linux && amd64

package jit

import (
	"io"
	"os"
)

// jitState is the "pointer to runtime state" argument (arg0) the register
// contract reserves for future extension; on Linux it currently holds just
// the two file descriptors the embedded thunks syscall against.
type jitState struct {
	OutFD int64
	InFD  int64
}

// bindPorts resolves w/r to real file descriptors the embedded thunks can
// syscall against directly. *os.File values are used as-is; anything else
// is bridged through an os.Pipe with a copying goroutine, since a raw
// `write`/`read` syscall has no notion of an arbitrary io.Writer/io.Reader.
// The returned close func must run after the program finishes to flush and
// tear down any bridge goroutines.
func bindPorts(w io.Writer, r io.Reader) (state *jitState, closeFn func() error, err error) {
	st := &jitState{}
	var closers []func() error

	if f, ok := w.(*os.File); ok {
		st.OutFD = int64(f.Fd())
	} else {
		pr, pw, perr := os.Pipe()
		if perr != nil {
			return nil, nil, perr
		}
		st.OutFD = int64(pw.Fd())
		done := make(chan struct{})
		go func() {
			defer close(done)
			io.Copy(w, pr)
		}()
		closers = append(closers, func() error {
			pw.Close()
			<-done
			return pr.Close()
		})
	}

	if f, ok := r.(*os.File); ok {
		st.InFD = int64(f.Fd())
	} else {
		pr, pw, perr := os.Pipe()
		if perr != nil {
			return nil, nil, perr
		}
		st.InFD = int64(pr.Fd())
		done := make(chan struct{})
		go func() {
			defer close(done)
			io.Copy(pw, r)
			pw.Close()
		}()
		closers = append(closers, func() error {
			pr.Close()
			<-done
			return nil
		})
	}

	return st, func() error {
		var first error
		for _, c := range closers {
			if e := c(); e != nil && first == nil {
				first = e
			}
		}
		return first
	}, nil
}
