package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dusk-indust/involve/internal/selector"
)

func runSelect(args []string) error {
	var flags projectFlags
	var asJSON bool

	fs := flag.NewFlagSet("involve select", flag.ContinueOnError)
	flags.register(fs)
	fs.BoolVar(&asJSON, "json", false, "print the selection as JSON")
	if err := fs.Parse(args); err != nil {
		return err
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

	// Positional arguments narrow the candidate set; without them every
	// test file found in the project is a candidate.
	candidates := fs.Args()
	if len(candidates) == 0 {
		candidates = sel.FindTestFiles()
	}

	printHeader(sel)

	selected, err := sel.Select(context.Background(), candidates)
	if err != nil {
		return err
	}

	if asJSON {
		out, err := json.MarshalIndent(struct {
			Targets    []string `json:"targets"`
			Candidates int      `json:"candidates"`
			Selected   []string `json:"selected"`
		}{sel.Targets().Describe(), len(candidates), selected}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		_, err = os.Stdout.Write(append(out, '\n'))
		return err
	}

	for _, tf := range selected {
		fmt.Println(tf)
	}
	fmt.Fprintf(os.Stderr, "%d of %d test files selected\n", len(selected), len(candidates))
	return nil
}

// printHeader echoes the resolved targets, mirroring the preamble a test
// runner would print.
func printHeader(sel *selector.Selector) {
	fmt.Fprintln(os.Stderr, "Running tests involving:")
	for _, t := range sel.Targets().Describe() {
		fmt.Fprintf(os.Stderr, "    %s\n", t)
	}
}
