package daghealth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Checker runs full health checks: build, validate, plan, probe, aggregate,
// persist. One Checker serves many concurrent requests; no graph state is
// shared between them.
type Checker struct {
	prober *Prober
	store  Store
	logger *slog.Logger
}

// NewChecker wires a Checker. store may be nil to skip persistence; a nil
// logger falls back to slog.Default().
func NewChecker(prober *Prober, store Store, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{prober: prober, store: store, logger: logger}
}

// Check validates the described graph and probes every node concurrently.
// Validation errors (ErrEmptyGraph, ErrUnknownNode, ErrInconsistentGraph,
// ErrCycleDetected) abort the request before any probe is issued. Probe
// failures are not errors — they come back as node statuses. The record is
// persisted best-effort: a store failure is logged and the completed check
// is still returned.
func (c *Checker) Check(ctx context.Context, nodes []Node, edges []Edge) (*CheckRecord, error) {
	g := NewGraph(nodes, edges)
	if err := g.Validate(); err != nil {
		return nil, err
	}

	order, err := g.TraversalOrder()
	if err != nil {
		return nil, err
	}

	results, err := c.prober.Probe(ctx, g, order)
	if err != nil {
		return nil, err
	}

	rec := &CheckRecord{
		DagID:          uuid.NewString(),
		OverallStatus:  OverallOf(results),
		Nodes:          results,
		GraphData:      buildGraphData(g),
		TraversalOrder: order,
		CheckedAt:      time.Now().UTC(),
	}

	if c.store != nil {
		if err := c.store.Save(ctx, rec); err != nil {
			// persistence failure must not mask a completed check
			c.logger.Error("persist check record",
				"dag_id", rec.DagID, "error", err)
		}
	}

	return rec, nil
}
