package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/dreamengine-xyz/go-vscript/script"
)

func TestCompileUpdateAndMultiply(t *testing.T) {
	s := script.Build("spin").
		Node("tick", "event/update", nil).
		Node("mul", "math/multiply", nil).
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count := strings.Count(result.Code, "let "); count != 1 {
		t.Errorf("expected exactly one binding statement, got %d:\n%s", count, result.Code)
	}
	if !strings.Contains(result.Code, "let result_mul = 0.0 * 0.0;") {
		t.Errorf("expected default multiply statement, got:\n%s", result.Code)
	}
	if len(result.Dependencies) != 0 {
		t.Errorf("expected empty dependency list, got %v", result.Dependencies)
	}
	// Both inputs unconnected: two warnings.
	if len(result.Diagnostics) != 2 {
		t.Errorf("expected 2 diagnostics, got %d: %v", len(result.Diagnostics), result.Diagnostics)
	}
}

func TestCompileConnectedInputs(t *testing.T) {
	s := script.Build("scaled").
		Node("tick", "event/update", nil).
		Node("speed", "math/add", nil).
		Node("scaled", "math/multiply", nil).
		Connect("tick", "dt", "scaled", "a").
		Connect("speed", "result", "scaled", "b").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Code, "let result_scaled = dt * result_speed;") {
		t.Errorf("expected connected multiply statement, got:\n%s", result.Code)
	}
}

func TestCompileOrderingInvariant(t *testing.T) {
	// c depends on b depends on a, authored in reverse order.
	s := script.Build("chain").
		Node("c", "math/add", nil).
		Node("b", "math/add", nil).
		Node("a", "math/add", nil).
		Connect("a", "result", "b", "a").
		Connect("b", "result", "c", "a").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	posA := strings.Index(result.Code, "let result_a")
	posB := strings.Index(result.Code, "let result_b")
	posC := strings.Index(result.Code, "let result_c")
	if posA < 0 || posB < 0 || posC < 0 {
		t.Fatalf("missing binding statements:\n%s", result.Code)
	}
	if !(posA < posB && posB < posC) {
		t.Errorf("emission order violates dependencies (a=%d b=%d c=%d):\n%s",
			posA, posB, posC, result.Code)
	}
}

func TestCompileDeterminism(t *testing.T) {
	build := func() *script.VisualScript {
		return script.Build("det").
			Node("tick", "event/update", nil).
			Node("q", "query/get_entities", map[string]interface{}{
				"components": []string{"Transform", "Health"},
			}).
			Node("mul", "math/multiply", nil).
			Connect("tick", "dt", "mul", "a").
			Done()
	}

	first, err := Compile(build())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Compile(build())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Code != second.Code {
		t.Error("compiling the same script twice produced different code")
	}
	if len(first.Dependencies) != len(second.Dependencies) {
		t.Fatalf("dependency lists differ: %v vs %v", first.Dependencies, second.Dependencies)
	}
	for i := range first.Dependencies {
		if first.Dependencies[i] != second.Dependencies[i] {
			t.Errorf("dependency %d differs: %q vs %q", i, first.Dependencies[i], second.Dependencies[i])
		}
	}
}

func TestCompileCycleDetected(t *testing.T) {
	s := script.Build("loop").
		Node("a", "math/add", nil).
		Node("b", "math/add", nil).
		Connect("a", "result", "b", "a").
		Connect("b", "result", "a", "a").
		Done()

	_, err := Compile(s)
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected CycleError, got %T: %v", err, err)
	}
	if len(cycle.Nodes) == 0 {
		t.Error("cycle error should name at least one stuck node")
	}
}

func TestCompileMalformedGraph(t *testing.T) {
	s := script.Build("broken").
		Node("a", "math/add", nil).
		Connect("a", "result", "ghost", "a").
		Done()

	_, err := Compile(s)
	if err == nil {
		t.Fatal("expected malformed graph error, got nil")
	}
	var malformed *script.MalformedGraphError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedGraphError, got %T: %v", err, err)
	}
	if malformed.MissingNode != "ghost" {
		t.Errorf("expected missing node %q, got %q", "ghost", malformed.MissingNode)
	}
}

func TestCompileBranchThenOnly(t *testing.T) {
	s := script.Build("branch").
		Node("if1", "flow/if", nil).
		Node("t1", "math/add", nil).
		Branch("if1", "then", "t1").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Code, "if false {") {
		t.Errorf("expected if block with default condition:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, indentUnit+"let result_t1 = 0.0 + 0.0;") {
		t.Errorf("expected then-branch body indented inside the if block:\n%s", result.Code)
	}
	if strings.Contains(result.Code, "else") {
		t.Errorf("no else connections, but else block emitted:\n%s", result.Code)
	}
}

func TestCompileBranchWithElse(t *testing.T) {
	s := script.Build("branch2").
		Node("if1", "flow/if", nil).
		Node("t1", "math/add", nil).
		Node("e1", "math/subtract", nil).
		Branch("if1", "then", "t1").
		Branch("if1", "else", "e1").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Code, "} else {") {
		t.Errorf("expected else block:\n%s", result.Code)
	}
	elsePos := strings.Index(result.Code, "} else {")
	bodyPos := strings.Index(result.Code, "let result_e1 = 0.0 - 0.0;")
	if bodyPos < elsePos {
		t.Errorf("else-branch body should follow the else opener:\n%s", result.Code)
	}
}

func TestCompileBranchSubgraphOrdering(t *testing.T) {
	// Inside the then-branch, y depends on x but is attached first.
	// The subgraph sorts its members, so x must still emit before y.
	s := script.Build("branch3").
		Node("if1", "flow/if", nil).
		Node("y", "math/add", nil).
		Node("x", "math/add", nil).
		Branch("if1", "then", "y").
		Branch("if1", "then", "x").
		Connect("x", "result", "y", "a").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	posX := strings.Index(result.Code, "let result_x")
	posY := strings.Index(result.Code, "let result_y")
	if posX < 0 || posY < 0 || posX > posY {
		t.Errorf("subgraph members emitted out of dependency order:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "let result_y = result_x + 0.0;") {
		t.Errorf("y should consume x's symbol:\n%s", result.Code)
	}
}

func TestCompileCollisionScope(t *testing.T) {
	s := script.Build("hit").
		Node("col", "event/collision", nil).
		Node("get", "component/get", map[string]interface{}{"componentType": "Health"}).
		Connect("col", "entity_a", "get", "entity").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Code, "for event in physics.collision_events() {") {
		t.Errorf("expected collision iteration construct:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, `world.get_component(event.entity_a, "Health")`) {
		t.Errorf("expected entity_a symbol resolved inside the scope:\n%s", result.Code)
	}

	open := strings.Count(result.Code, "{")
	closed := strings.Count(result.Code, "}")
	if open != closed {
		t.Errorf("unbalanced braces (%d open, %d closed):\n%s", open, closed, result.Code)
	}
	// The scope must close after the dependent node compiled.
	gotPos := strings.Index(result.Code, "get_component")
	closePos := strings.LastIndex(result.Code, "}")
	if closePos < gotPos {
		t.Errorf("collision scope closed before its dependent node:\n%s", result.Code)
	}
}

func TestCompileForeach(t *testing.T) {
	s := script.Build("cleanup").
		Node("q", "query/get_entities", map[string]interface{}{
			"components": []string{"Transform"},
		}).
		Node("loop", "flow/foreach", nil).
		Node("kill", "action/destroy", nil).
		Connect("q", "entities", "loop", "array").
		Body("loop", "kill").
		Connect("loop", "item", "kill", "entity").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Code, `let query_q = world.query(&["Transform"]);`) {
		t.Errorf("expected query construction statement:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "for item_loop in query_q.iter() {") {
		t.Errorf("expected foreach over the query result:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, indentUnit+"world.destroy_entity(item_loop);") {
		t.Errorf("expected destroy using the per-item symbol inside the loop:\n%s", result.Code)
	}
}

func TestCompileForeachMissingArray(t *testing.T) {
	s := script.Build("empty_loop").
		Node("loop", "flow/foreach", nil).
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Code, "for item_loop in missing_array.iter() {") {
		t.Errorf("expected explicit missing marker for the array input:\n%s", result.Code)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != DiagUnresolvedInput {
		t.Errorf("expected one unresolved-input warning, got %v", result.Diagnostics)
	}
}

func TestCompileComponentSet(t *testing.T) {
	s := script.Build("writeback").
		Node("col", "event/collision", nil).
		Node("get", "component/get", map[string]interface{}{"componentType": "Health"}).
		Node("set", "component/set", map[string]interface{}{"componentType": "Health"}).
		Connect("col", "entity_a", "get", "entity").
		Connect("col", "entity_b", "set", "entity").
		Connect("get", "component", "set", "component").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Code, "world.set_component(event.entity_b, comp_get);") {
		t.Errorf("expected set statement consuming the fetched component:\n%s", result.Code)
	}
}

func TestCompileUnknownNodeType(t *testing.T) {
	s := script.Build("future").
		Node("x1", "particle/emit", nil).
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unknown node types must not abort: %v", err)
	}
	if !strings.Contains(result.Code, "// unimplemented node type: particle/emit (node x1)") {
		t.Errorf("expected placeholder comment naming the type:\n%s", result.Code)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != DiagUnknownNodeType {
		t.Errorf("expected one unknown-node-type notice, got %v", result.Diagnostics)
	}
}

func TestCompileSanitizationStability(t *testing.T) {
	s := script.Build("punct").
		Node("node-1 x", "math/add", nil).
		Node("sink", "math/add", nil).
		Connect("node-1 x", "result", "sink", "a").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Code, "let result_node_1_x = 0.0 + 0.0;") {
		t.Errorf("expected sanitized binding identifier:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "let result_sink = result_node_1_x + 0.0;") {
		t.Errorf("downstream reference should reuse the same sanitized identifier:\n%s", result.Code)
	}
}

func TestCompileSpawnAndTranslate(t *testing.T) {
	s := script.Build("spawner").
		Node("sp", "action/spawn", map[string]interface{}{"prefab": "enemy"}).
		Node("get", "component/get", nil).
		Node("move", "transform/translate", nil).
		Connect("sp", "entity", "get", "entity").
		Connect("get", "component", "move", "transform").
		Done()

	result, err := Compile(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Code, `let result_sp = world.spawn("enemy", Vec3::ZERO);`) {
		t.Errorf("expected spawn statement with default position:\n%s", result.Code)
	}
	if !strings.Contains(result.Code, "comp_get.position += Vec3::ZERO;") {
		t.Errorf("expected translate statement with default delta:\n%s", result.Code)
	}
}

func TestCompileConcurrentScripts(t *testing.T) {
	build := func(name string) *script.VisualScript {
		return script.Build(name).
			Node("tick", "event/update", nil).
			Node("mul", "math/multiply", nil).
			Connect("tick", "dt", "mul", "a").
			Done()
	}

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := Compile(build("worker"))
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent compile failed: %v", err)
		}
	}
}
