package compiler

import "github.com/dreamengine-xyz/go-vscript/script"

// topoSort orders nodes by dependency using Kahn's algorithm. Only
// connections with both endpoints inside the given node set contribute
// edges. The queue is seeded with zero-in-degree nodes in original array
// order, which is the only tie-break: authoring order decides between
// independent nodes, so output is deterministic.
//
// If fewer nodes come out than went in, the remainder form at least one
// cycle and a CycleError naming them is returned. Dropping the stuck
// nodes silently would emit code that omits part of the script.
func topoSort(nodes []*script.Node, conns []*script.Connection) ([]*script.Node, error) {
	inSet := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		inSet[n.ID] = true
	}

	inDegree := make(map[string]int, len(nodes))
	successors := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}
	for _, c := range conns {
		if !inSet[c.Source] || !inSet[c.Target] {
			continue
		}
		successors[c.Source] = append(successors[c.Source], c.Target)
		inDegree[c.Target]++
	}

	queue := make([]*script.Node, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n)
		}
	}

	byID := make(map[string]*script.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	sorted := make([]*script.Node, 0, len(nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		sorted = append(sorted, n)

		for _, succ := range successors[n.ID] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, byID[succ])
			}
		}
	}

	if len(sorted) < len(nodes) {
		stuck := make([]string, 0)
		for _, n := range nodes {
			if inDegree[n.ID] > 0 {
				stuck = append(stuck, n.ID)
			}
		}
		return nil, &CycleError{Nodes: stuck}
	}
	return sorted, nil
}
