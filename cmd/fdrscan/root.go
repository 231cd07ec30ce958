// Command fdrscan is the driver for the FDR multi-literal matcher: it reads
// a pattern file and a rulesets file, filters patterns to fdr.MaxPatternLen
// bytes, runs the FDR scanner over each ruleset line, and writes a
// metadata.txt/results.txt pair a separate comparison run can consume.
//
// The core matching algorithm lives in github.com/coregx/fdrscan/fdr; this
// package is purely the I/O and CLI boundary around it.
package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// newLogger builds the structured logger every subcommand shares, mirroring
// the single-configured-logger-passed-down convention this corpus's CLI
// example (grafana-k6's cmd package) uses in place of global log.Printf
// calls.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: !isTerminal(os.Stderr),
	})
	return logger
}

// isTerminal reports whether f is attached to a terminal, checking both a
// standard and a Cygwin/MSYS pty the way grafana-k6's cmd package does for
// its own stdout/stderr TTY detection.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newRootCommand() *cobra.Command {
	logger := newLogger()

	root := &cobra.Command{
		Use:           "fdrscan",
		Short:         "bit-parallel multi-literal string matcher",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newScanCommand(logger),
		newCompareCommand(logger),
	)

	return root
}

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		root.PrintErrln(err)
		os.Exit(1)
	}
}
