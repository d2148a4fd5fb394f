package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nullptr-dev/bfjit/internal/engine"
	"github.com/nullptr-dev/bfjit/internal/ir"
	"github.com/nullptr-dev/bfjit/internal/runio"
)

var (
	flagTapeSize int
	flagInterp   bool
	flagVerbose  bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bfjit <source-file>",
		Short: "JIT-compile and run a tape-language program",
		Long: "bfjit compiles a tape-language source file to native x86-64 machine code " +
			"and runs it directly, falling back to a portable interpreter on platforms " +
			"without a native backend.",
		Args: cobra.ExactArgs(1),
		RunE: runBfjit,
	}

	cmd.Flags().IntVar(&flagTapeSize, "tape-size", 0, "override the tape size in bytes (default 16000)")
	cmd.Flags().BoolVar(&flagInterp, "interp", false, "force the portable interpreter even on a supported platform")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func runBfjit(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(flagVerbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return logAndWrap(logger, "open", err, "opening %s: %w", path, err)
	}
	defer f.Close()

	opts := engine.Options{TapeSize: flagTapeSize, ForceInterp: flagInterp}

	logger.Debug("compiling", zap.String("file", path), zap.Bool("force_interp", flagInterp))

	prog, err := engine.Compile(f, opts)
	if err != nil {
		return logAndWrap(logger, "compile", err, "compiling %s: %w", path, err)
	}
	defer prog.Close()

	t := engine.NewTape(opts, runio.Std(os.Stdout, os.Stdin))

	logger.Debug("running", zap.Int("tape_size", len(t.Cells)))

	if err := prog.Run(context.Background(), t); err != nil {
		return logAndWrap(logger, "run", err, "running %s: %w", path, err)
	}

	// The original implementation this system is modeled on always prints a
	// trailing newline after a successful run, independent of what the
	// program itself wrote; kept for output compatibility.
	fmt.Println()
	return nil
}

// logAndWrap logs err at Error level with a phase field (and a pos field
// when err carries a source position, e.g. an *ir.ParseError) before
// wrapping it for return to main, which prints and exits non-zero. Every
// error runBfjit returns after its logger is built passes through here —
// nothing is swallowed; a failure to build the logger itself is returned
// unlogged.
func logAndWrap(logger *zap.Logger, phase string, err error, format string, args ...any) error {
	fields := []zap.Field{zap.String("phase", phase)}
	var perr *ir.ParseError
	if errors.As(err, &perr) {
		fields = append(fields, zap.Int("pos", perr.Pos))
	}
	logger.Error(err.Error(), fields...)
	return fmt.Errorf(format, args...)
}
