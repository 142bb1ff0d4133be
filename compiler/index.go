package compiler

import "github.com/dreamengine-xyz/go-vscript/script"

// connectionIndex provides O(1) lookup of connections by either endpoint.
// The forward index keys on (source node, output handle) and yields every
// connection leaving that output; it drives topological edge construction
// and lets branch/loop nodes find their nested-subgraph entries through
// synthetic handles such as "<id>_then". The reverse index keys on
// (target node, input handle) and resolves a node's input to the single
// connection feeding it.
type connectionIndex struct {
	bySource map[portKey][]*script.Connection
	byTarget map[portKey]*script.Connection
}

type portKey struct {
	node   string
	handle string
}

func buildConnectionIndex(s *script.VisualScript) *connectionIndex {
	idx := &connectionIndex{
		bySource: make(map[portKey][]*script.Connection),
		byTarget: make(map[portKey]*script.Connection),
	}
	for _, c := range s.Connections {
		sk := portKey{c.Source, c.SourceHandle}
		idx.bySource[sk] = append(idx.bySource[sk], c)

		tk := portKey{c.Target, c.TargetHandle}
		if _, taken := idx.byTarget[tk]; !taken {
			// First connection to an input port wins; an input has at
			// most one producer in well-formed graphs.
			idx.byTarget[tk] = c
		}
	}
	return idx
}

// outgoing returns all connections leaving the given output port,
// in declaration order.
func (idx *connectionIndex) outgoing(node, handle string) []*script.Connection {
	return idx.bySource[portKey{node, handle}]
}

// incoming returns the connection feeding the given input port, or nil.
func (idx *connectionIndex) incoming(node, handle string) *script.Connection {
	return idx.byTarget[portKey{node, handle}]
}
