package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dreamengine-xyz/go-vscript/compiler"
	"github.com/dreamengine-xyz/go-vscript/parser"
	"github.com/dreamengine-xyz/go-vscript/script"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: vscript validate <script.json>

Check a visual script without generating code.

Checks performed:
  - Structural integrity (connections referencing missing nodes)
  - Dependency cycles among top-level nodes
  - Unconnected inputs and unknown node types (reported, non-fatal)
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
		var malformed *script.MalformedGraphError
		if errors.As(err, &malformed) {
			return fmt.Errorf("structural error: %w", err)
		}
		return err
	}

	result, err := compiler.Compile(s)
	if err != nil {
		var cycle *compiler.CycleError
		if errors.As(err, &cycle) {
			return fmt.Errorf("dependency error: %w", err)
		}
		return err
	}

	fmt.Printf("%s: %d nodes, %d connections, OK\n", s.Name, len(s.Nodes), len(s.Connections))
	for _, d := range result.Diagnostics {
		fmt.Printf("  %s\n", d)
	}
	return nil
}
