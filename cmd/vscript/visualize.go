package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dreamengine-xyz/go-vscript/parser"
	"github.com/dreamengine-xyz/go-vscript/visualization"
)

func visualize(args []string) error {
	fs := flag.NewFlagSet("visualize", flag.ExitOnError)
	output := fs.String("output", "", "Write the SVG to this path instead of stdout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: vscript visualize <script.json> [options]

Render a script graph as a static SVG using the editor's canvas
positions. Synthetic branch/loop subgraph connections draw dashed.

Options:
`)
		fs.PrintDefaults()
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

	if *output != "" {
		return visualization.SaveSVG(s, *output)
	}
	fmt.Print(visualization.RenderSVG(s))
	return nil
}
