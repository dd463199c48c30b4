// Package daghealth checks the operational health of a set of interdependent
// components described as a directed acyclic graph. A graph of nodes, each
// with an HTTP health endpoint, is validated, ordered, probed concurrently,
// classified, and persisted as a self-contained check record.
package daghealth

// Node is one monitored component.
// Dependencies lists the ids of nodes this node depends on.
type Node struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	HealthEndpoint string   `json:"health_endpoint"`
	Dependencies   []string `json:"dependencies,omitempty"`
}

// Edge is a directed connection between two nodes: To depends on From.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph owns the node set and the adjacency derived from edges and declared
// dependencies. Built once per request and immutable after construction.
type Graph struct {
	nodes map[string]Node
	order []string // declaration order of node ids

	deps       map[string][]string // node id -> ids it depends on
	dependents map[string][]string // node id -> ids that depend on it

	edges []Edge

	// kept separate so Validate can cross-check the two representations
	declaredDeps map[string][]string
	edgeDeps     map[string][]string
}

// NewGraph builds a Graph from node descriptors and edges. The dependency
// relation is the union of each node's declared dependencies and the edge
// list; duplicates are dropped and insertion order is preserved so traversal
// output is reproducible. Construction never fails — Validate reports
// malformed input.
func NewGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		nodes:        make(map[string]Node, len(nodes)),
		order:        make([]string, 0, len(nodes)),
		deps:         make(map[string][]string, len(nodes)),
		dependents:   make(map[string][]string, len(nodes)),
		edges:        edges,
		declaredDeps: make(map[string][]string),
		edgeDeps:     make(map[string][]string),
	}

	for _, n := range nodes {
		if _, ok := g.nodes[n.ID]; ok {
			continue // first declaration wins
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}

	for _, id := range g.order {
		for _, dep := range g.nodes[id].Dependencies {
			g.declaredDeps[id] = appendUnique(g.declaredDeps[id], dep)
		}
	}
	for _, e := range edges {
		g.edgeDeps[e.To] = appendUnique(g.edgeDeps[e.To], e.From)
	}

	for _, id := range g.order {
		for _, dep := range g.declaredDeps[id] {
			g.addDep(id, dep)
		}
	}
	for _, e := range edges {
		g.addDep(e.To, e.From)
	}

	return g
}

func (g *Graph) addDep(id, dep string) {
	for _, d := range g.deps[id] {
		if d == dep {
			return
		}
	}
	g.deps[id] = append(g.deps[id], dep)
	g.dependents[dep] = append(g.dependents[dep], id)
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

// Node returns the node declared under id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len reports the number of declared nodes.
func (g *Graph) Len() int { return len(g.order) }

// NodeIDs returns node ids in declaration order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Dependencies returns the ids the given node directly depends on.
func (g *Graph) Dependencies(id string) []string {
	return append([]string(nil), g.deps[id]...)
}

// Dependents returns the ids that directly depend on the given node.
func (g *Graph) Dependents(id string) []string {
	return append([]string(nil), g.dependents[id]...)
}
