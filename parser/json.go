// Package parser handles JSON import/export for visual scripts.
// It reads the document format the graph editor saves: a script object
// with "nodes" and "connections" arrays. The editor's canvas positions
// are preserved so a re-exported script round-trips.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/dreamengine-xyz/go-vscript/script"
)

type scriptDoc struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Nodes       []nodeDoc `json:"nodes"`
	Connections []connDoc `json:"connections,omitempty"`
	Edges       []connDoc `json:"edges,omitempty"`
}

type nodeDoc struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Position *positionDoc           `json:"position,omitempty"`
}

type positionDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type connDoc struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
}

// FromJSON parses a visual script from JSON bytes.
//
// Both "connections" and the editor's "edges" key are accepted for the
// connection array. The parsed script is structurally validated: a
// connection referencing a missing node id fails with
// script.MalformedGraphError.
func FromJSON(data []byte) (*script.VisualScript, error) {
	var doc scriptDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("script name is required")
	}

	s := script.NewVisualScript(doc.ID, doc.Name)
	for _, nd := range doc.Nodes {
		if nd.ID == "" {
			return nil, fmt.Errorf("node with empty id")
		}
		if nd.Type == "" {
			return nil, fmt.Errorf("node %q has no type", nd.ID)
		}
		n := script.NewNode(nd.ID, nd.Type, nd.Data)
		if nd.Position != nil {
			n.X = nd.Position.X
			n.Y = nd.Position.Y
		}
		s.AddNode(n)
	}

	conns := doc.Connections
	if len(conns) == 0 {
		conns = doc.Edges
	}
	for _, cd := range conns {
		s.AddConnection(script.NewConnection(cd.ID, cd.Source, cd.SourceHandle, cd.Target, cd.TargetHandle))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ToJSON serializes a visual script to indented JSON in the editor's
// document format.
func ToJSON(s *script.VisualScript) ([]byte, error) {
	doc := scriptDoc{
		ID:    s.ID,
		Name:  s.Name,
		Nodes: make([]nodeDoc, 0, len(s.Nodes)),
	}
	for _, n := range s.Nodes {
		nd := nodeDoc{ID: n.ID, Type: n.Type}
		if len(n.Data) > 0 {
			nd.Data = n.Data
		}
		if n.X != 0 || n.Y != 0 {
			nd.Position = &positionDoc{X: n.X, Y: n.Y}
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	for _, c := range s.Connections {
		doc.Connections = append(doc.Connections, connDoc{
			ID:           c.ID,
			Source:       c.Source,
			SourceHandle: c.SourceHandle,
			Target:       c.Target,
			TargetHandle: c.TargetHandle,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}
