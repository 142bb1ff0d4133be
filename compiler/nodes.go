package compiler

import (
	"fmt"
	"strings"

	"github.com/dreamengine-xyz/go-vscript/script"
)

// inputKind selects the default literal substituted when an input port
// has no connection or its producer bound no symbol.
type inputKind int

const (
	numberInput inputKind = iota
	booleanInput
	referenceInput
	vectorInput
)

// resolveInput returns the expression for a node's input port. Resolution
// is a reverse-index lookup: the connection feeding (node, port) names the
// producer, whose bound symbol is fetched from the symbol table, first
// under the compound "<source>_<sourceHandle>" key and then under the
// plain source id. Unresolvable inputs substitute the type-appropriate
// default and record an UnresolvedInput diagnostic.
func (c *compilation) resolveInput(n *script.Node, port string, kind inputKind) string {
	conn := c.index.incoming(n.ID, port)
	if conn != nil {
		if sym, ok := c.symbols.lookup(conn.Source + "_" + conn.SourceHandle); ok {
			return sym
		}
		if sym, ok := c.symbols.lookup(conn.Source); ok {
			return sym
		}
	}

	def := defaultLiteral(port, kind)
	if conn == nil {
		c.warn(n.ID, port, fmt.Sprintf("no connection; using %s", def))
	} else {
		c.warn(n.ID, port, fmt.Sprintf("producer %q bound no value; using %s", conn.Source, def))
	}
	return def
}

func defaultLiteral(port string, kind inputKind) string {
	switch kind {
	case booleanInput:
		return "false"
	case referenceInput:
		return "missing_" + port
	case vectorInput:
		return "Vec3::ZERO"
	default:
		return "0.0"
	}
}

// mathOperators maps math node kinds to their operator symbol.
var mathOperators = map[string]string{
	"math/add":      "+",
	"math/subtract": "-",
	"math/multiply": "*",
	"math/divide":   "/",
}

// compileNode emits the statement template for one node and binds its
// output symbols. Dispatch is by node type with an explicit default arm:
// unrecognized kinds leave a placeholder comment rather than vanishing.
func (c *compilation) compileNode(n *script.Node) {
	c.out.emit("// " + n.Label())

	switch {
	case n.Type == "event/update":
		// The per-frame update event is implicit in the enclosing
		// procedure; it only exposes the frame delta.
		c.symbols.bind(n.ID+"_dt", "dt")

	case n.Type == "event/collision":
		c.out.emit("for event in physics.collision_events() {")
		c.symbols.bind(n.ID+"_entity_a", "event.entity_a")
		c.symbols.bind(n.ID+"_entity_b", "event.entity_b")
		c.openScope(n.ID)

	case n.Type == "query/get_entities":
		kinds := n.DataStrings("components")
		if len(kinds) == 0 {
			kinds = []string{"Transform"}
		}
		sym := "query_" + sanitizeIdent(n.ID)
		c.out.emit(fmt.Sprintf("let %s = world.query(&[%s]);", sym, quoteList(kinds)))
		c.symbols.bind(n.ID, sym)

	case n.Type == "component/get":
		entity := c.resolveInput(n, "entity", referenceInput)
		kind, ok := n.DataString("componentType")
		if !ok {
			kind = "Transform"
		}
		sym := "comp_" + sanitizeIdent(n.ID)
		c.out.emit(fmt.Sprintf("let %s = world.get_component(%s, %q).expect(\"missing %s\");",
			sym, entity, kind, kind))
		c.symbols.bind(n.ID, sym)

	case n.Type == "component/set":
		entity := c.resolveInput(n, "entity", referenceInput)
		value := c.resolveInput(n, "component", referenceInput)
		c.out.emit(fmt.Sprintf("world.set_component(%s, %s);", entity, value))

	case n.Type == "transform/translate":
		transform := c.resolveInput(n, "transform", referenceInput)
		delta := c.resolveInput(n, "delta", vectorInput)
		c.out.emit(fmt.Sprintf("%s.position += %s;", transform, delta))

	case mathOperators[n.Type] != "":
		a := c.resolveInput(n, "a", numberInput)
		b := c.resolveInput(n, "b", numberInput)
		sym := "result_" + sanitizeIdent(n.ID)
		c.out.emit(fmt.Sprintf("let %s = %s %s %s;", sym, a, mathOperators[n.Type], b))
		c.symbols.bind(n.ID, sym)

	case n.Type == "flow/if":
		c.compileBranch(n)

	case n.Type == "flow/foreach":
		c.compileLoop(n)

	case n.Type == "action/spawn":
		prefab, ok := n.DataString("prefab")
		if !ok {
			prefab = "default"
		}
		position := c.resolveInput(n, "position", vectorInput)
		sym := "result_" + sanitizeIdent(n.ID)
		c.out.emit(fmt.Sprintf("let %s = world.spawn(%q, %s);", sym, prefab, position))
		c.symbols.bind(n.ID, sym)

	case n.Type == "action/destroy":
		entity := c.resolveInput(n, "entity", referenceInput)
		c.out.emit(fmt.Sprintf("world.destroy_entity(%s);", entity))

	default:
		c.out.emit(fmt.Sprintf("// unimplemented node type: %s (node %s)", n.Type, n.ID))
		c.notice(n.ID, fmt.Sprintf("node type %q not supported by this compiler version", n.Type))
	}
}

// compileBranch emits a flow/if node. The condition defaults to false
// when unconnected. Nodes attached to the synthetic "<id>_then" handle
// compile inside the if block; the else block appears only when the
// "<id>_else" handle has connections.
func (c *compilation) compileBranch(n *script.Node) {
	condition := c.resolveInput(n, "condition", booleanInput)

	c.out.emit(fmt.Sprintf("if %s {", condition))
	c.out.indent()
	c.compileSubgraph(n.ID, n.ID+"_then")
	c.out.dedent()

	if len(c.index.outgoing(n.ID, n.ID+"_else")) > 0 {
		c.out.emit("} else {")
		c.out.indent()
		c.compileSubgraph(n.ID, n.ID+"_else")
		c.out.dedent()
	}
	c.out.emit("}")
}

// compileLoop emits a flow/foreach node: an iteration over the resolved
// array input binding a fresh per-item symbol, with the nodes attached
// to the synthetic "<id>_body" handle compiled inside the block.
func (c *compilation) compileLoop(n *script.Node) {
	array := c.resolveInput(n, "array", referenceInput)
	item := "item_" + sanitizeIdent(n.ID)

	c.out.emit(fmt.Sprintf("for %s in %s.iter() {", item, array))
	c.out.indent()
	c.symbols.bind(n.ID+"_item", item)
	c.compileSubgraph(n.ID, n.ID+"_body")
	c.out.dedent()
	c.out.emit("}")
}

// compileSubgraph compiles the nodes attached to a synthetic subgraph
// handle. Entry connections are taken in declaration order, then the
// collected nodes are topologically sorted among themselves so internal
// data dependencies never emit use-before-define code; declaration
// order remains the tie-break between independent nodes.
func (c *compilation) compileSubgraph(nodeID, handle string) {
	var members []*script.Node
	seen := make(map[string]bool)
	for _, conn := range c.index.outgoing(nodeID, handle) {
		if seen[conn.Target] {
			continue
		}
		seen[conn.Target] = true
		if n := c.script.NodeByID(conn.Target); n != nil {
			members = append(members, n)
		}
	}

	sorted, err := topoSort(members, c.script.Connections)
	if err != nil {
		// A cycle confined to a subgraph cannot abort an already
		// half-emitted compile; fall back to declaration order and
		// leave a visible trace.
		c.out.emit(fmt.Sprintf("// warning: dependency cycle in %s subgraph", handle))
		sorted = members
	}
	for _, m := range sorted {
		c.compileNode(m)
	}
}

// quoteList renders a string list as comma-separated quoted literals.
func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
