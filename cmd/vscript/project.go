package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dreamengine-xyz/go-vscript/buildlog"
	"github.com/dreamengine-xyz/go-vscript/codegen/rust"
	"github.com/dreamengine-xyz/go-vscript/compiler"
	"github.com/dreamengine-xyz/go-vscript/parser"
	"github.com/dreamengine-xyz/go-vscript/project"
)

func projectCmd(args []string) error {
	if len(args) < 1 {
		printProjectUsage()
		return fmt.Errorf("project subcommand required")
	}

	switch args[0] {
	case "create":
		return projectCreate(args[1:])
	case "add-script":
		return projectAddScript(args[1:])
	case "build":
		return projectBuild(args[1:])
	case "list":
		return projectList(args[1:])
	case "builds":
		return projectBuilds(args[1:])
	default:
		printProjectUsage()
		return fmt.Errorf("unknown project subcommand: %s", args[0])
	}
}

func printProjectUsage() {
	fmt.Fprintf(os.Stderr, `Usage: vscript project <subcommand> [options]

Subcommands:
  create      Create a new project in the store
  add-script  Add a script JSON file to a project
  build       Compile all project scripts and record a build
  list        List projects in the store
  builds      List build history for a project

All subcommands take -db <path> (default vscript.db).
`)
}

func projectCreate(args []string) error {
	fs := flag.NewFlagSet("project create", flag.ExitOnError)
	dbPath := fs.String("db", "vscript.db", "Project store database path")
	name := fs.String("name", "", "Project name (required)")
	engine := fs.String("engine", "dream", "Engine type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("project name required (-name)")
	}

	store, err := project.OpenStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	p := project.New(*name, *engine)
	if err := store.SaveProject(p); err != nil {
		return err
	}
	fmt.Println(p.ID)
	return nil
}

func projectAddScript(args []string) error {
	fs := flag.NewFlagSet("project add-script", flag.ExitOnError)
	dbPath := fs.String("db", "vscript.db", "Project store database path")
	id := fs.String("id", "", "Project id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("project id required (-id)")
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("script file required")
	}

	store, err := project.OpenStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.LoadProject(*id)
	if err != nil {
		return err
	}
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		s, err := parser.FromJSON(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		p.AddScript(s)
	}
	return store.SaveProject(p)
}

// projectBuild compiles every script in a project, assembles the full
// systems source file, and records a build row plus a JSONL build log.
func projectBuild(args []string) error {
	fs := flag.NewFlagSet("project build", flag.ExitOnError)
	dbPath := fs.String("db", "vscript.db", "Project store database path")
	id := fs.String("id", "", "Project id (required)")
	logPath := fs.String("log", "", "Also write the build log as JSONL to this path")
	output := fs.String("output", "", "Also write the assembled source file to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("project id required (-id)")
	}

	store, err := project.OpenStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.LoadProject(*id)
	if err != nil {
		return err
	}

	build := project.NewBuild(p.ID)
	blog := buildlog.NewLog()
	logger := slog.Default()

	var systems []*compiler.CompiledSystem
	for _, s := range p.Scripts {
		result, err := compiler.Compile(s)
		if err != nil {
			build.Status = "failed"
			build.Error = fmt.Sprintf("%s: %v", s.Name, err)
			blog.Add(buildlog.Event{
				BuildID: build.ID, Script: s.Name,
				Stage: "compile", Severity: "error", Message: err.Error(),
			})
			if recErr := store.RecordBuild(build, ""); recErr != nil {
				return recErr
			}
			if *logPath != "" {
				if logErr := buildlog.SaveJSONL(*logPath, blog); logErr != nil {
					return logErr
				}
			}
			return fmt.Errorf("build failed: %s: %w", s.Name, err)
		}
		for _, d := range result.Diagnostics {
			severity := "warning"
			if d.Kind == compiler.DiagUnknownNodeType {
				severity = "notice"
			}
			blog.Add(buildlog.Event{
				BuildID: build.ID, Script: s.Name,
				Stage: "compile", Severity: severity, Message: d.String(),
			})
		}
		build.Diagnostics += len(result.Diagnostics)
		systems = append(systems, result)
		logger.Info("compiled script",
			"script", s.Name,
			"dependencies", len(result.Dependencies),
			"diagnostics", len(result.Diagnostics))
	}

	code := rust.AssembleFile(systems)
	build.Systems = len(systems)
	build.Status = "ok"
	blog.Add(buildlog.Event{
		BuildID: build.ID, Stage: "assemble", Severity: "info",
		Message: fmt.Sprintf("assembled %d systems", len(systems)),
	})

	if err := store.RecordBuild(build, code); err != nil {
		return err
	}
	if *output != "" {
		if err := os.WriteFile(*output, []byte(code), 0644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if *logPath != "" {
		if err := buildlog.SaveJSONL(*logPath, blog); err != nil {
			return err
		}
	}

	logger.Info("build recorded",
		"build", build.ID,
		"systems", build.Systems,
		"diagnostics", build.Diagnostics)
	return nil
}

func projectList(args []string) error {
	fs := flag.NewFlagSet("project list", flag.ExitOnError)
	dbPath := fs.String("db", "vscript.db", "Project store database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := project.OpenStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	projects, err := store.ListProjects()
	if err != nil {
		return err
	}
	for _, p := range projects {
		fmt.Printf("%s  %s (%s, created %s)\n",
			p.ID, p.Name, p.EngineType, p.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func projectBuilds(args []string) error {
	fs := flag.NewFlagSet("project builds", flag.ExitOnError)
	dbPath := fs.String("db", "vscript.db", "Project store database path")
	id := fs.String("id", "", "Project id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("project id required (-id)")
	}

	store, err := project.OpenStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	builds, err := store.ListBuilds(*id)
	if err != nil {
		return err
	}
	for _, b := range builds {
		line := fmt.Sprintf("%s  %s  %s  %d systems, %d diagnostics",
			b.ID, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Status, b.Systems, b.Diagnostics)
		if b.Error != "" {
			line += "  (" + b.Error + ")"
		}
		fmt.Println(line)
	}
	return nil
}
