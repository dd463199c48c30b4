package daghealth

// TraversalOrder computes a breadth-first, dependency-respecting order over
// the node ids: nodes with no dependencies form layer 0, and a node enters a
// layer once all of its dependencies sit in earlier layers. Within a layer,
// nodes keep their declaration order, so the output is deterministic for
// identical input. The order is advisory — it is reported for layout and
// display and does not gate probe execution.
//
// Returns ErrCycleDetected if the layering cannot place every node, which
// only happens when Validate was skipped on a cyclic graph.
func (g *Graph) TraversalOrder() ([]string, error) {
	remaining := make(map[string]int, len(g.order))
	for _, id := range g.order {
		remaining[id] = len(g.deps[id])
	}

	order := make([]string, 0, len(g.order))

	layer := make([]string, 0)
	for _, id := range g.order {
		if remaining[id] == 0 {
			layer = append(layer, id)
		}
	}

	for len(layer) > 0 {
		order = append(order, layer...)

		released := make(map[string]bool)
		for _, id := range layer {
			for _, dep := range g.dependents[id] {
				remaining[dep]--
				if remaining[dep] == 0 {
					released[dep] = true
				}
			}
		}

		// rebuild the next layer in declaration order to keep output stable
		layer = layer[:0]
		for _, id := range g.order {
			if released[id] {
				layer = append(layer, id)
			}
		}
	}

	if len(order) != len(g.order) {
		return nil, ErrCycleDetected
	}
	return order, nil
}
