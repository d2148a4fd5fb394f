//go:build linux && amd64

package jit

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/nullptr-dev/bfjit/internal/ir"
	"github.com/nullptr-dev/bfjit/internal/tape"
)

// TestProgramInputExhaustionIsFatal re-execs this test binary as a child
// process to observe the embedded input thunk's exit_group call: a ",[.,]"
// program reading from an exhausted stdin must terminate the process
// instead of looping forever past EOF (see thunk_linux_amd64.go).
func TestProgramInputExhaustionIsFatal(t *testing.T) {
	if os.Getenv("BFJIT_FATAL_INPUT_CHILD") == "1" {
		runFatalInputChild()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestProgramInputExhaustionIsFatal")
	cmd.Env = append(os.Environ(), "BFJIT_FATAL_INPUT_CHILD=1")
	cmd.Stdin = strings.NewReader("hi")
	var out bytes.Buffer
	cmd.Stdout = &out

	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected the child process to exit nonzero on input exhaustion, got success with output %q", out.String())
	}
	if got := out.String(); got != "hi" {
		t.Errorf("expected the two input bytes to be echoed before exhaustion, got %q", got)
	}
}

// runFatalInputChild runs under BFJIT_FATAL_INPUT_CHILD=1 and is expected
// to never return: the program's own embedded thunk calls exit_group once
// stdin is exhausted.
func runFatalInputChild() {
	nodes, err := ir.Parse([]rune(",[.,]"))
	if err != nil {
		panic(err)
	}
	prog, err := Compile(nodes)
	if err != nil {
		panic(err)
	}
	defer prog.Close()

	tp := tape.New(10, os.Stdout, os.Stdin)
	_ = prog.Run(context.Background(), tp)
}
