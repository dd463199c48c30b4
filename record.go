package daghealth

import "time"

// GraphNode is the node summary handed to rendering consumers.
type GraphNode struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	HealthEndpoint string `json:"health_endpoint"`
}

// GraphEdge is the edge summary handed to rendering consumers.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GraphData is a display hint only — the engine never reads it back.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// CheckRecord is the self-contained outcome of one health check. It is also
// the response body of the check endpoint, created once per request and
// immutable afterwards.
type CheckRecord struct {
	DagID          string        `json:"dag_id"`
	OverallStatus  OverallStatus `json:"overall_status"`
	Nodes          []ProbeResult `json:"nodes"`
	GraphData      GraphData     `json:"graph_data"`
	TraversalOrder []string      `json:"traversal_order"`
	CheckedAt      time.Time     `json:"checked_at"`
}

func buildGraphData(g *Graph) GraphData {
	gd := GraphData{
		Nodes: make([]GraphNode, 0, g.Len()),
		Edges: make([]GraphEdge, 0, len(g.edges)),
	}
	for _, id := range g.order {
		n := g.nodes[id]
		gd.Nodes = append(gd.Nodes, GraphNode{
			ID:             n.ID,
			Label:          n.Name,
			HealthEndpoint: n.HealthEndpoint,
		})
	}
	for _, e := range g.edges {
		gd.Edges = append(gd.Edges, GraphEdge{From: e.From, To: e.To})
	}
	// graphs declared through per-node dependencies alone still get edges
	// in the summary, derived from the adjacency
	if len(gd.Edges) == 0 {
		for _, id := range g.order {
			for _, dep := range g.deps[id] {
				gd.Edges = append(gd.Edges, GraphEdge{From: dep, To: id})
			}
		}
	}
	return gd
}
