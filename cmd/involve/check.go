package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/involve/internal/selector"
)

// runCheck is the per-file predicate for host test frameworks: exit 0
// when the test should run, exit 1 when it is safe to skip.
func runCheck(args []string) error {
	var flags projectFlags

	fs := flag.NewFlagSet("involve check", flag.ContinueOnError)
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: involve check --involving <target> <test-file>")
	}
	if err := flags.applyConfig(); err != nil {
		return err
	}

	logger := setupLogger(flags.Verbose)

	sel, err := selector.New(selector.Options{
		Root:        flags.Root,
		Involving:   flags.Involving,
		Languages:   flags.languages(),
		ExcludeDirs: flags.ExcludeDirs,
		SourceRoots: flags.SourceRoots,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ok, err := sel.ShouldRun(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}
	if !ok {
		os.Exit(1)
	}
	return nil
}
