// Package script implements the core visual script data structures.
// A visual script is a node graph authored in the editor, consisting of
// Nodes (units of behavior), named ports on those nodes, and Connections
// (directed edges from an output port to an input port).
package script

import "fmt"

// Node represents one unit of the visual graph.
// The Type is a dot-namespaced kind such as "flow/if" or "math/add".
// Data carries node-specific configuration, e.g. a component kind name
// or a list of required component kinds.
type Node struct {
	ID   string
	Type string
	Data map[string]interface{}
	X    float64 // X coordinate in the editor canvas
	Y    float64 // Y coordinate in the editor canvas
}

// NewNode creates a new Node with the given id, type, and configuration data.
// A nil data map is replaced by an empty one.
func NewNode(id, nodeType string, data map[string]interface{}) *Node {
	if data == nil {
		data = make(map[string]interface{})
	}
	return &Node{ID: id, Type: nodeType, Data: data}
}

// Label returns the display label from the node's data, or the node type
// when no label was set.
func (n *Node) Label() string {
	if v, ok := n.Data["label"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return n.Type
}

// DataString returns a string value from the node's data.
func (n *Node) DataString(key string) (string, bool) {
	v, ok := n.Data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// DataStrings returns a list of string values from the node's data.
// Accepts both []string and the []interface{} produced by JSON decoding.
func (n *Node) DataStrings(key string) []string {
	v, ok := n.Data[key]
	if !ok {
		return nil
	}
	switch x := v.(type) {
	case []string:
		return x
	case []interface{}:
		out := make([]string, 0, len(x))
		for _, xi := range x {
			if s, ok := xi.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Connection represents a directed edge from one node's output port
// to another node's input port. Ports are addressed by handle name.
type Connection struct {
	ID           string
	Source       string // producing node id
	SourceHandle string // output port name on the source node
	Target       string // consuming node id
	TargetHandle string // input port name on the target node
}

// NewConnection creates a new Connection between the given ports.
func NewConnection(id, source, sourceHandle, target, targetHandle string) *Connection {
	return &Connection{
		ID:           id,
		Source:       source,
		SourceHandle: sourceHandle,
		Target:       target,
		TargetHandle: targetHandle,
	}
}

// VisualScript is a complete node graph. Node order is insertion order,
// not semantic; the compiler derives execution order itself.
type VisualScript struct {
	ID          string
	Name        string
	Nodes       []*Node
	Connections []*Connection

	byID map[string]*Node
}

// NewVisualScript creates an empty script with the given id and name.
func NewVisualScript(id, name string) *VisualScript {
	return &VisualScript{
		ID:   id,
		Name: name,
		byID: make(map[string]*Node),
	}
}

// AddNode appends a node to the script.
func (s *VisualScript) AddNode(n *Node) *Node {
	s.Nodes = append(s.Nodes, n)
	if s.byID == nil {
		s.byID = make(map[string]*Node)
	}
	s.byID[n.ID] = n
	return n
}

// AddConnection appends a connection to the script.
func (s *VisualScript) AddConnection(c *Connection) *Connection {
	s.Connections = append(s.Connections, c)
	return c
}

// NodeByID returns the node with the given id, or nil if absent.
func (s *VisualScript) NodeByID(id string) *Node {
	if s.byID == nil || len(s.byID) != len(s.Nodes) {
		s.byID = make(map[string]*Node, len(s.Nodes))
		for _, n := range s.Nodes {
			s.byID[n.ID] = n
		}
	}
	return s.byID[id]
}

// MalformedGraphError reports a connection that references a node id
// not present in the script.
type MalformedGraphError struct {
	ConnectionID string
	MissingNode  string
}

func (e *MalformedGraphError) Error() string {
	return fmt.Sprintf("malformed graph: connection %q references missing node %q",
		e.ConnectionID, e.MissingNode)
}

// Validate checks structural integrity: every connection endpoint must
// reference a node present in the script. Returns a MalformedGraphError
// for the first violation found.
func (s *VisualScript) Validate() error {
	for _, c := range s.Connections {
		if s.NodeByID(c.Source) == nil {
			return &MalformedGraphError{ConnectionID: c.ID, MissingNode: c.Source}
		}
		if s.NodeByID(c.Target) == nil {
			return &MalformedGraphError{ConnectionID: c.ID, MissingNode: c.Target}
		}
	}
	return nil
}
