package project

import (
	"path/filepath"
	"testing"

	"github.com/dreamengine-xyz/go-vscript/script"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewProjectIdentity(t *testing.T) {
	a := New("game one", "dream")
	b := New("game one", "dream")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty UUIDs, got %q and %q", a.ID, b.ID)
	}
	if a.Version != "0.1.0" || a.CreatedAt.IsZero() {
		t.Errorf("unexpected defaults: %+v", a)
	}
}

func TestSaveAndLoadProject(t *testing.T) {
	store := openTestStore(t)

	p := New("platformer", "dream")
	p.AddScript(script.Build("movement").
		Node("tick", "event/update", nil).
		Node("mul", "math/multiply", nil).
		Connect("tick", "dt", "mul", "a").
		Done())

	if err := store.SaveProject(p); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	loaded, err := store.LoadProject(p.ID)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if loaded.Name != "platformer" || loaded.EngineType != "dream" {
		t.Errorf("unexpected project: %+v", loaded)
	}
	if len(loaded.Scripts) != 1 {
		t.Fatalf("expected 1 script, got %d", len(loaded.Scripts))
	}
	s := loaded.Scripts[0]
	if s.Name != "movement" || len(s.Nodes) != 2 || len(s.Connections) != 1 {
		t.Errorf("script did not round-trip: %+v", s)
	}
}

func TestSaveProjectReplacesScripts(t *testing.T) {
	store := openTestStore(t)

	p := New("p", "dream")
	p.AddScript(script.Build("one").Node("a", "math/add", nil).Done())
	if err := store.SaveProject(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	p.Scripts = nil
	p.AddScript(script.Build("two").Node("b", "math/add", nil).Done())
	if err := store.SaveProject(p); err != nil {
		t.Fatalf("resave: %v", err)
	}

	loaded, err := store.LoadProject(p.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Scripts) != 1 || loaded.Scripts[0].Name != "two" {
		t.Errorf("expected scripts replaced, got %d scripts", len(loaded.Scripts))
	}
}

func TestLoadProjectNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.LoadProject("nope"); err == nil {
		t.Error("expected error for unknown project")
	}
}

func TestListProjects(t *testing.T) {
	store := openTestStore(t)
	for _, name := range []string{"alpha", "beta"} {
		if err := store.SaveProject(New(name, "dream")); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	projects, err := store.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("expected 2 projects, got %d", len(projects))
	}
}

func TestRecordAndListBuilds(t *testing.T) {
	store := openTestStore(t)

	p := New("p", "dream")
	if err := store.SaveProject(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	b := NewBuild(p.ID)
	b.Systems = 3
	b.Diagnostics = 1
	b.Status = "ok"
	if err := store.RecordBuild(b, "pub struct XSystem {}\n"); err != nil {
		t.Fatalf("RecordBuild failed: %v", err)
	}

	builds, err := store.ListBuilds(p.ID)
	if err != nil {
		t.Fatalf("ListBuilds failed: %v", err)
	}
	if len(builds) != 1 {
		t.Fatalf("expected 1 build, got %d", len(builds))
	}
	got := builds[0]
	if got.ID != b.ID || got.Systems != 3 || got.Diagnostics != 1 || got.Status != "ok" {
		t.Errorf("build did not round-trip: %+v", got)
	}

	code, err := store.LoadBuildCode(b.ID)
	if err != nil {
		t.Fatalf("LoadBuildCode failed: %v", err)
	}
	if code != "pub struct XSystem {}\n" {
		t.Errorf("unexpected stored code: %q", code)
	}
}
