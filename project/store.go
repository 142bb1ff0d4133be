package project

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dreamengine-xyz/go-vscript/parser"
)

// Store handles SQLite persistence for projects, their scripts, and
// build records. Scripts are stored as the editor's JSON documents so
// the database stays the single source of truth for a project.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the store at the given database path.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		engine_type TEXT NOT NULL DEFAULT 'dream',
		version TEXT NOT NULL DEFAULT '0.1.0',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS scripts (
		project_id TEXT NOT NULL,
		script_id TEXT NOT NULL,
		name TEXT NOT NULL,
		document TEXT NOT NULL,
		PRIMARY KEY (project_id, script_id),
		FOREIGN KEY (project_id) REFERENCES projects(id)
	);

	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		systems INTEGER NOT NULL DEFAULT 0,
		diagnostics INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		error TEXT,
		code TEXT,
		FOREIGN KEY (project_id) REFERENCES projects(id)
	);

	CREATE INDEX IF NOT EXISTS idx_builds_project ON builds(project_id, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveProject upserts a project and replaces its stored scripts.
func (s *Store) SaveProject(p *Project) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO projects (id, name, engine_type, version, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name,
			engine_type=excluded.engine_type, version=excluded.version`,
		p.ID, p.Name, p.EngineType, p.Version, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM scripts WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear scripts: %w", err)
	}
	for _, sc := range p.Scripts {
		doc, err := parser.ToJSON(sc)
		if err != nil {
			return fmt.Errorf("serialize script %q: %w", sc.Name, err)
		}
		_, err = tx.Exec(`
			INSERT INTO scripts (project_id, script_id, name, document)
			VALUES (?, ?, ?, ?)`,
			p.ID, sc.ID, sc.Name, string(doc))
		if err != nil {
			return fmt.Errorf("insert script %q: %w", sc.Name, err)
		}
	}

	return tx.Commit()
}

// LoadProject retrieves a project and its scripts by id.
func (s *Store) LoadProject(id string) (*Project, error) {
	p := &Project{}
	row := s.db.QueryRow(`
		SELECT id, name, engine_type, version, created_at
		FROM projects WHERE id = ?`, id)
	if err := row.Scan(&p.ID, &p.Name, &p.EngineType, &p.Version, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project %q not found", id)
		}
		return nil, fmt.Errorf("load project: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT document FROM scripts WHERE project_id = ? ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan script: %w", err)
		}
		sc, err := parser.FromJSON([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("parse stored script: %w", err)
		}
		p.Scripts = append(p.Scripts, sc)
	}
	return p, rows.Err()
}

// ListProjects returns all projects (without scripts), newest first.
func (s *Store) ListProjects() ([]*Project, error) {
	rows, err := s.db.Query(`
		SELECT id, name, engine_type, version, created_at
		FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p := &Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.EngineType, &p.Version, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// RecordBuild stores a build record together with the assembled source
// text it produced (empty on failure).
func (s *Store) RecordBuild(b *Build, code string) error {
	_, err := s.db.Exec(`
		INSERT INTO builds (id, project_id, created_at, systems, diagnostics, status, error, code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.ProjectID, b.CreatedAt, b.Systems, b.Diagnostics, b.Status, b.Error, code)
	if err != nil {
		return fmt.Errorf("record build: %w", err)
	}
	return nil
}

// ListBuilds returns the build history of a project, newest first.
func (s *Store) ListBuilds(projectID string) ([]*Build, error) {
	rows, err := s.db.Query(`
		SELECT id, project_id, created_at, systems, diagnostics, status, COALESCE(error, '')
		FROM builds WHERE project_id = ? ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	var builds []*Build
	for rows.Next() {
		b := &Build{}
		var created time.Time
		if err := rows.Scan(&b.ID, &b.ProjectID, &created, &b.Systems, &b.Diagnostics, &b.Status, &b.Error); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		b.CreatedAt = created
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

// LoadBuildCode returns the assembled source text stored with a build.
func (s *Store) LoadBuildCode(buildID string) (string, error) {
	var code sql.NullString
	row := s.db.QueryRow(`SELECT code FROM builds WHERE id = ?`, buildID)
	if err := row.Scan(&code); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("build %q not found", buildID)
		}
		return "", fmt.Errorf("load build code: %w", err)
	}
	return code.String, nil
}
