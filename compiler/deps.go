package compiler

import (
	"strings"

	"github.com/dreamengine-xyz/go-vscript/script"
)

// ExtractDependencies scans a script for the external capabilities its
// compiled form requires: component kinds named in node configuration,
// plus subsystem capabilities implied by node types (the physics engine
// for collision and physics-query nodes, the audio subsystem for
// playback nodes). The build step uses this list to decide which
// optional subsystems to link.
//
// The pass is side-effect-free and independent of compilation. Results
// are de-duplicated and returned in first-seen order, following node
// insertion order, so the list is deterministic.
func ExtractDependencies(s *script.VisualScript) []string {
	deps := make([]string, 0)
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		deps = append(deps, name)
	}

	for _, n := range s.Nodes {
		switch {
		case n.Type == "component/get" || n.Type == "component/set":
			if kind, ok := n.DataString("componentType"); ok {
				add(kind)
			}
		case n.Type == "query/get_entities":
			for _, kind := range n.DataStrings("components") {
				add(kind)
			}
		}

		switch {
		case n.Type == "event/collision", strings.HasPrefix(n.Type, "physics/"):
			add("physics")
		case strings.HasPrefix(n.Type, "audio/"):
			add("audio")
		}
	}
	return deps
}
