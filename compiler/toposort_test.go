package compiler

import (
	"errors"
	"testing"

	"github.com/dreamengine-xyz/go-vscript/script"
)

func nodesOf(ids ...string) []*script.Node {
	out := make([]*script.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, script.NewNode(id, "math/add", nil))
	}
	return out
}

func conn(source, target string) *script.Connection {
	return script.NewConnection(source+"->"+target, source, "result", target, "a")
}

func TestTopoSortRespectsDependencies(t *testing.T) {
	nodes := nodesOf("c", "a", "b")
	conns := []*script.Connection{conn("a", "b"), conn("b", "c")}

	sorted, err := topoSort(nodes, conns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := make(map[string]int)
	for i, n := range sorted {
		pos[n.ID] = i
	}
	if !(pos["a"] < pos["b"] && pos["b"] < pos["c"]) {
		t.Errorf("dependency order violated: %v", pos)
	}
}

func TestTopoSortTieBreakIsAuthoringOrder(t *testing.T) {
	// No edges at all: output must be the input order.
	nodes := nodesOf("z", "m", "a")
	sorted, err := topoSort(nodes, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"z", "m", "a"}
	for i, n := range sorted {
		if n.ID != want[i] {
			t.Fatalf("expected authoring order %v, got position %d = %q", want, i, n.ID)
		}
	}
}

func TestTopoSortCycle(t *testing.T) {
	nodes := nodesOf("a", "b")
	conns := []*script.Connection{conn("a", "b"), conn("b", "a")}

	_, err := topoSort(nodes, conns)
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected CycleError, got %v", err)
	}
	if len(cycle.Nodes) != 2 {
		t.Errorf("expected both stuck nodes reported, got %v", cycle.Nodes)
	}
}

func TestTopoSortIgnoresEdgesOutsideSet(t *testing.T) {
	// Connection to a node outside the set contributes no edge.
	nodes := nodesOf("a")
	conns := []*script.Connection{conn("a", "elsewhere"), conn("elsewhere", "a")}

	sorted, err := topoSort(nodes, conns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sorted) != 1 || sorted[0].ID != "a" {
		t.Errorf("expected single node result, got %v", sorted)
	}
}
