// Package compiler transforms a visual script node graph into linear,
// control-flow-aware procedure text for the runtime engine. Compilation
// orders top-level nodes by dependency, emits one statement template per
// node kind, recurses into branch/loop subgraphs, and extracts the
// external capabilities the compiled system requires.
//
// Compilation is a pure function of one script: all internal state
// (symbol table, emitter, scope stack) is constructed fresh per call,
// so independent scripts may be compiled concurrently.
package compiler

import "github.com/dreamengine-xyz/go-vscript/script"

// CompiledSystem is the compiler's output record: the emitted procedure
// body plus the external capabilities it requires. The code is intended
// to be embedded into a larger generated source file by the codegen
// assembly step, which supplies imports and the enclosing declarations.
type CompiledSystem struct {
	Name         string
	Code         string
	Dependencies []string
	Diagnostics  []Diagnostic
}

// Compile transforms a visual script into a CompiledSystem.
//
// Fatal conditions abort with no partial output: a connection
// referencing a missing node returns script.MalformedGraphError, and a
// dependency cycle among top-level nodes returns CycleError. Non-fatal
// conditions (unconnected inputs, unknown node types) substitute
// defaults or placeholders and accumulate as Diagnostics on the result.
func Compile(s *script.VisualScript) (*CompiledSystem, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	c := &compilation{
		script:  s,
		index:   buildConnectionIndex(s),
		symbols: newSymbolTable(),
		out:     newEmitter(),
	}

	topLevel := c.topLevelNodes()
	sorted, err := topoSort(topLevel, s.Connections)
	if err != nil {
		return nil, err
	}

	c.order = sorted
	for i, n := range sorted {
		c.pos = i
		c.compileNode(n)
		c.settleScopes(n.ID)
	}
	c.closeAllScopes()

	return &CompiledSystem{
		Name:         s.Name,
		Code:         c.out.finalize(),
		Dependencies: ExtractDependencies(s),
		Diagnostics:  c.diagnostics,
	}, nil
}

// compilation is the per-call compiler state. It is never reused or
// shared; Compile builds a new one each invocation.
type compilation struct {
	script      *script.VisualScript
	index       *connectionIndex
	symbols     *symbolTable
	out         *emitter
	diagnostics []Diagnostic

	// order and pos track the top-level walk so event scopes can count
	// how many of their members are still waiting to compile.
	order []*script.Node
	pos   int

	// scopes tracks enclosing iteration constructs opened by event
	// nodes (collision pairs). A scope closes once every top-level node
	// causally inside it has compiled.
	scopes []*eventScope
}

type eventScope struct {
	nodeID  string
	inside  map[string]bool
	pending int
}

// topLevelNodes returns the nodes not nested inside a branch/loop
// subgraph, in original authoring order. A node is nested when it is
// the target of a connection leaving a synthetic subgraph handle
// ("<id>_then", "<id>_else", "<id>_body").
func (c *compilation) topLevelNodes() []*script.Node {
	nested := make(map[string]bool)
	for _, conn := range c.script.Connections {
		if isSyntheticHandle(conn.Source, conn.SourceHandle) {
			nested[conn.Target] = true
		}
	}

	top := make([]*script.Node, 0, len(c.script.Nodes))
	for _, n := range c.script.Nodes {
		if !nested[n.ID] {
			top = append(top, n)
		}
	}
	return top
}

// isSyntheticHandle reports whether handle is a manufactured subgraph
// port on the given source node.
func isSyntheticHandle(source, handle string) bool {
	switch handle {
	case source + "_then", source + "_else", source + "_body":
		return true
	}
	return false
}

// descendants returns the set of nodes reachable from start by
// following connections forward, including start itself. Used to decide
// which nodes are causally inside an event scope.
func (c *compilation) descendants(start string) map[string]bool {
	reach := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, conn := range c.script.Connections {
			if conn.Source == id && !reach[conn.Target] {
				reach[conn.Target] = true
				stack = append(stack, conn.Target)
			}
		}
	}
	return reach
}

// openScope starts an enclosing iteration construct owned by the given
// event node. The caller has already emitted the opening line. The
// scope's pending count is the number of top-level nodes still ahead in
// the walk that are causally inside it.
func (c *compilation) openScope(nodeID string) {
	c.out.indent()
	scope := &eventScope{
		nodeID: nodeID,
		inside: c.descendants(nodeID),
	}
	for i := c.pos + 1; i < len(c.order); i++ {
		if scope.inside[c.order[i].ID] {
			scope.pending++
		}
	}
	c.scopes = append(c.scopes, scope)
}

// settleScopes records that the given top-level node has compiled and
// closes any innermost scopes left with no pending members.
func (c *compilation) settleScopes(nodeID string) {
	for _, scope := range c.scopes {
		if nodeID != scope.nodeID && scope.inside[nodeID] {
			scope.pending--
		}
	}
	for len(c.scopes) > 0 {
		top := c.scopes[len(c.scopes)-1]
		if top.pending > 0 {
			return
		}
		c.scopes = c.scopes[:len(c.scopes)-1]
		c.out.dedent()
		c.out.emit("}")
	}
}

// closeAllScopes closes any scopes still open after the last node.
func (c *compilation) closeAllScopes() {
	for len(c.scopes) > 0 {
		c.scopes = c.scopes[:len(c.scopes)-1]
		c.out.dedent()
		c.out.emit("}")
	}
}

func (c *compilation) warn(nodeID, port, message string) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Kind:    DiagUnresolvedInput,
		NodeID:  nodeID,
		Port:    port,
		Message: message,
	})
}

func (c *compilation) notice(nodeID, message string) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Kind:    DiagUnknownNodeType,
		NodeID:  nodeID,
		Message: message,
	})
}
