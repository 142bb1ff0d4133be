// Package project manages game projects: named collections of visual
// scripts with stable identities, plus the record of builds produced
// from them. Persistence is SQLite-backed; see Store.
package project

import (
	"time"

	"github.com/google/uuid"

	"github.com/dreamengine-xyz/go-vscript/script"
)

// Project is a named collection of visual scripts.
type Project struct {
	ID         string
	Name       string
	EngineType string
	Version    string
	CreatedAt  time.Time
	Scripts    []*script.VisualScript
}

// New creates a project with a fresh UUID identity.
func New(name, engineType string) *Project {
	return &Project{
		ID:         uuid.New().String(),
		Name:       name,
		EngineType: engineType,
		Version:    "0.1.0",
		CreatedAt:  time.Now().UTC(),
	}
}

// AddScript appends a script to the project.
func (p *Project) AddScript(s *script.VisualScript) {
	p.Scripts = append(p.Scripts, s)
}

// ScriptByName returns the script with the given name, or nil.
func (p *Project) ScriptByName(name string) *script.VisualScript {
	for _, s := range p.Scripts {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Build is the record of one compile-all run over a project.
type Build struct {
	ID          string
	ProjectID   string
	CreatedAt   time.Time
	Systems     int    // number of systems compiled
	Diagnostics int    // total non-fatal diagnostics across systems
	Status      string // "ok" or "failed"
	Error       string // failure reason when Status is "failed"
}

// NewBuild creates a build record for the given project.
func NewBuild(projectID string) *Build {
	return &Build{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		CreatedAt: time.Now().UTC(),
	}
}
