// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"promoscan/internal/appcore"
	"promoscan/internal/cli"
	"promoscan/internal/clibase"
	"promoscan/internal/cmdutil"
	"promoscan/internal/partition"
	"promoscan/internal/version"
	"promoscan/internal/writers"
)

const name = "promoscan"

// flush writes buffered output and maps the result to an exit code.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return code
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return appcore.ExitRuntime
	}
	return code
}

// RunContext parses argv and runs one analysis. It returns the process exit
// code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, appcore.ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, appcore.ExitOK)
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			cli.PrintExamples(outw, name)
			return flush(outw, stderr, appcore.ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flush(outw, stderr, appcore.ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
		return flush(outw, stderr, appcore.ExitOK)
	}

	if opts.Quiet && opts.Verbose {
		cmdutil.Warnf(stderr, false, "--verbose overrides --quiet")
	}
	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)
	if len(opts.FromConfig) > 0 {
		log.Debugf("settings from config/env: %s", strings.Join(opts.FromConfig, ", "))
	}

	return appcore.Run(parent, stdout, stderr, appcore.Options{
		References:    opts.References,
		Inputs:        opts.Inputs,
		Strategy:      partition.Strategy(opts.Strategy),
		Threads:       opts.Threads,
		Upstream:      opts.Upstream,
		MinScore:      opts.MinScore,
		GapOpen:       opts.GapOpen,
		GapExtend:     opts.GapExtend,
		MinConfidence: opts.MinConfidence,
		Output:        opts.Output,
		Baseline:      opts.Baseline,
		WriteBaseline: opts.WriteBaseline,
		Verify:        opts.Verify,
		Progress:      opts.Progress,
		Profile:       opts.Profile,
		ProfileDir:    opts.ProfileDir,
	}, log)
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
