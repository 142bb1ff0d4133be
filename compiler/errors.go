package compiler

import (
	"fmt"
	"strings"
)

// CycleError reports that the top-level nodes of a script do not fully
// topologically sort. Nodes lists at least one node that still had
// unresolved dependencies when the sort stalled.
type CycleError struct {
	Nodes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected among nodes: %s", strings.Join(e.Nodes, ", "))
}

// DiagnosticKind classifies a non-fatal compile condition.
type DiagnosticKind string

const (
	// DiagUnresolvedInput marks an input port with no connection; a
	// type-appropriate default literal was substituted.
	DiagUnresolvedInput DiagnosticKind = "unresolved_input"

	// DiagUnknownNodeType marks a node type not recognized by this
	// compiler version; a placeholder comment was emitted in its place.
	DiagUnknownNodeType DiagnosticKind = "unknown_node_type"
)

// Diagnostic records one non-fatal condition encountered during a compile.
// Diagnostics accumulate on the result and are never silently discarded.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	NodeID  string         `json:"node_id"`
	Port    string         `json:"port,omitempty"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Port != "" {
		return fmt.Sprintf("%s: node %q port %q: %s", d.Kind, d.NodeID, d.Port, d.Message)
	}
	return fmt.Sprintf("%s: node %q: %s", d.Kind, d.NodeID, d.Message)
}
