package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dreamengine-xyz/go-vscript/compiler"
	"github.com/dreamengine-xyz/go-vscript/parser"
)

func deps(args []string) error {
	fs := flag.NewFlagSet("deps", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: vscript deps <script.json>

Print the external capabilities (component kinds and subsystems) a
script requires, one per line, in first-use order. The build step
consumes this list to decide which optional subsystems to link.
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("script file required")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	s, err := parser.FromJSON(data)
	if err != nil {
		return err
	}

	for _, dep := range compiler.ExtractDependencies(s) {
		fmt.Println(dep)
	}
	return nil
}
