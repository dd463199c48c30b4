package daghealth

import "fmt"

// Validate verifies the graph before any probing: the node set is non-empty,
// every dependency and edge endpoint resolves to a declared node, declared
// dependencies and edges agree where both are given, and no directed cycle
// exists. Pure; the graph is not modified.
func (g *Graph) Validate() error {
	if len(g.order) == 0 {
		return ErrEmptyGraph
	}

	for _, id := range g.order {
		for _, dep := range g.declaredDeps[id] {
			if _, ok := g.nodes[dep]; !ok {
				return fmt.Errorf("%w: %q (dependency of %q)", ErrUnknownNode, dep, id)
			}
		}
	}
	for _, e := range g.edges {
		if _, ok := g.nodes[e.From]; !ok {
			return fmt.Errorf("%w: %q (edge endpoint)", ErrUnknownNode, e.From)
		}
		if _, ok := g.nodes[e.To]; !ok {
			return fmt.Errorf("%w: %q (edge endpoint)", ErrUnknownNode, e.To)
		}
	}

	if err := g.checkConsistency(); err != nil {
		return err
	}

	if id, cyclic := g.findCycle(); cyclic {
		return fmt.Errorf("%w (at node %q)", ErrCycleDetected, id)
	}

	return nil
}

// checkConsistency rejects graphs where declared dependencies and the edge
// list both exist but describe different relations. Either representation
// alone is accepted as-is.
func (g *Graph) checkConsistency() error {
	if len(g.edges) == 0 {
		return nil
	}
	declared := 0
	for _, deps := range g.declaredDeps {
		declared += len(deps)
	}
	if declared == 0 {
		return nil
	}

	for _, id := range g.order {
		if !sameSet(g.declaredDeps[id], g.edgeDeps[id]) {
			return fmt.Errorf("%w: node %q", ErrInconsistentGraph, id)
		}
	}
	return nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		found := false
		for _, w := range b {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// findCycle runs an iterative depth-first walk over an index-based adjacency
// with white/grey/black marking. A grey node reached again closes a cycle;
// that node's id is returned. Linear in nodes+edges, no recursion.
func (g *Graph) findCycle() (string, bool) {
	idx := make(map[string]int, len(g.order))
	for i, id := range g.order {
		idx[id] = i
	}

	adj := make([][]int, len(g.order))
	for i, id := range g.order {
		for _, dep := range g.deps[id] {
			if j, ok := idx[dep]; ok {
				adj[i] = append(adj[i], j)
			}
		}
	}

	const (
		white = 0 // unvisited
		grey  = 1 // on the current walk
		black = 2 // fully explored
	)
	state := make([]uint8, len(g.order))

	type frame struct {
		node int
		next int // index into adj[node]
	}

	for start := range g.order {
		if state[start] != white {
			continue
		}
		stack := []frame{{node: start}}
		state[start] = grey

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(adj[top.node]) {
				child := adj[top.node][top.next]
				top.next++
				switch state[child] {
				case grey:
					return g.order[child], true
				case white:
					state[child] = grey
					stack = append(stack, frame{node: child})
				}
				continue
			}
			state[top.node] = black
			stack = stack[:len(stack)-1]
		}
	}

	return "", false
}
