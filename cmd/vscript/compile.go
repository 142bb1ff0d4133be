package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dreamengine-xyz/go-vscript/compiler"
	"github.com/dreamengine-xyz/go-vscript/parser"
)

func compile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	output := fs.String("output", "", "Write generated code to file instead of stdout")
	asJSON := fs.Bool("json", false, "Output the full compile result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: vscript compile <script.json> [options]

Compile one visual script to a system procedure body.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Print generated code
  vscript compile player_movement.json

  # Save to file
  vscript compile player_movement.json -output movement.rs

  # Full result with dependencies and diagnostics
  vscript compile player_movement.json -json
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

	result, err := compiler.Compile(s)
	if err != nil {
		return err
	}

	if *asJSON {
		out := map[string]interface{}{
			"name":         result.Name,
			"code":         result.Code,
			"dependencies": result.Dependencies,
			"diagnostics":  result.Diagnostics,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(result.Code+"\n"), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else {
		fmt.Println(result.Code)
	}

	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s\n", d)
	}
	return nil
}
