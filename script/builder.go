package script

import "fmt"

// Builder provides a fluent API for constructing visual scripts.
// It is mainly used by tests, examples, and tooling that needs to author
// a graph without going through the editor's JSON format.
//
// Example:
//
//	s := script.Build("gravity").
//	    Node("tick", "event/update", nil).
//	    Node("mul", "math/multiply", nil).
//	    Connect("tick", "dt", "mul", "a").
//	    Done()
type Builder struct {
	script  *VisualScript
	nextX   float64
	nextY   float64
	connSeq int
}

// Build creates a new Builder for a script with the given name.
// The script id defaults to the name; use ID to override.
func Build(name string) *Builder {
	return &Builder{
		script: NewVisualScript(name, name),
		nextX:  100,
		nextY:  100,
	}
}

// ID overrides the script id.
func (b *Builder) ID(id string) *Builder {
	b.script.ID = id
	return b
}

// Node adds a node with the given id, type, and configuration data.
// Uses auto-incrementing X coordinates for visualization.
func (b *Builder) Node(id, nodeType string, data map[string]interface{}) *Builder {
	n := NewNode(id, nodeType, data)
	n.X = b.nextX
	n.Y = b.nextY
	b.nextX += 160
	b.script.AddNode(n)
	return b
}

// NodeAt adds a node with explicit canvas coordinates.
func (b *Builder) NodeAt(id, nodeType string, data map[string]interface{}, x, y float64) *Builder {
	n := NewNode(id, nodeType, data)
	n.X = x
	n.Y = y
	b.script.AddNode(n)
	return b
}

// Connect adds a connection from an output port to an input port.
// Connection ids are generated sequentially.
func (b *Builder) Connect(source, sourceHandle, target, targetHandle string) *Builder {
	b.connSeq++
	id := fmt.Sprintf("c%d", b.connSeq)
	b.script.AddConnection(NewConnection(id, source, sourceHandle, target, targetHandle))
	return b
}

// Flow adds an execution-flow connection between two nodes using the
// conventional "exec" ports on both sides.
func (b *Builder) Flow(source, target string) *Builder {
	return b.Connect(source, "exec", target, "exec")
}

// Branch connects a nested node to a flow/if node's then or else subgraph
// via the synthetic "<id>_then" / "<id>_else" output handle.
func (b *Builder) Branch(ifNode, arm, target string) *Builder {
	return b.Connect(ifNode, ifNode+"_"+arm, target, "exec")
}

// Body connects a nested node to a flow/foreach node's body subgraph
// via the synthetic "<id>_body" output handle.
func (b *Builder) Body(loopNode, target string) *Builder {
	return b.Connect(loopNode, loopNode+"_body", target, "exec")
}

// Done returns the constructed script.
func (b *Builder) Done() *VisualScript {
	return b.script
}

// MustValid returns the constructed script, panicking if it fails
// structural validation. Intended for tests and examples.
func (b *Builder) MustValid() *VisualScript {
	if err := b.script.Validate(); err != nil {
		panic(err)
	}
	return b.script
}
