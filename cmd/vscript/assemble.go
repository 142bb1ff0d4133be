package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dreamengine-xyz/go-vscript/codegen/rust"
	"github.com/dreamengine-xyz/go-vscript/compiler"
	"github.com/dreamengine-xyz/go-vscript/parser"
)

func assemble(args []string) error {
	fs := flag.NewFlagSet("assemble", flag.ExitOnError)
	output := fs.String("output", "", "Write the generated source file to this path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: vscript assemble <script.json>... [options]

Compile one or more scripts and assemble them into a complete systems
source file: imports, one system type per script, and the
register_systems function.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("at least one script file required")
	}

	var systems []*compiler.CompiledSystem
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		s, err := parser.FromJSON(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		result, err := compiler.Compile(s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, d := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s: %s\n", s.Name, d)
		}
		systems = append(systems, result)
	}

	file := rust.AssembleFile(systems)
	if *output != "" {
		if err := os.WriteFile(*output, []byte(file), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	fmt.Print(file)
	return nil
}
