// Command bfjit compiles and runs a tape-language source file, using the
// native x86-64 JIT backend where available and the portable interpreter
// everywhere else.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
