// Command vscript compiles visual script graphs into runtime system
// code and manages script projects.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "compile":
		if err := compile(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "deps":
		if err := deps(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "assemble":
		if err := assemble(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "visualize":
		if err := visualize(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "project":
		if err := projectCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vscript - visual script compiler for the dream engine runtime

Usage: vscript <command> [options]

Commands:
  compile     Compile a script JSON file to a system procedure body
  validate    Check a script for structural errors and cycles
  deps        Print the external capabilities a script requires
  assemble    Generate a complete systems source file from scripts
  visualize   Render a script graph as SVG
  project     Create, inspect, and build SQLite-backed projects
  help        Show this help

Run 'vscript <command> -h' for command-specific options.
`)
}
