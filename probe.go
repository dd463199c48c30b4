package daghealth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

// NodeStatus classifies the outcome of one probe.
type NodeStatus string

const (
	StatusHealthy     NodeStatus = "healthy"     // HTTP 200
	StatusUnhealthy   NodeStatus = "unhealthy"   // any non-200 response
	StatusUnreachable NodeStatus = "unreachable" // timeout, connection or DNS failure
)

// ProbeResult is the outcome of a single health probe. Created once per node
// and never mutated. ResponseTimeMS is present only when a response arrived.
type ProbeResult struct {
	NodeID         string     `json:"node_id"`
	NodeName       string     `json:"node_name"`
	Status         NodeStatus `json:"status"`
	ResponseTimeMS *float64   `json:"response_time_ms,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CheckedAt      time.Time  `json:"checked_at"`
}

// DefaultProbeTimeout bounds a single probe when no timeout is configured.
const DefaultProbeTimeout = 10 * time.Second

// Prober issues one health request per node, all concurrently. Probe-level
// failures are classified into a NodeStatus, never returned as errors.
// Safe for concurrent use; one Prober can serve many checks.
type Prober struct {
	client  *http.Client
	method  string
	timeout time.Duration
}

// NewProber creates a Prober with the given per-probe timeout. A zero
// timeout falls back to DefaultProbeTimeout.
func NewProber(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Prober{
		client:  &http.Client{},
		method:  http.MethodGet,
		timeout: timeout,
	}
}

// WithClient replaces the underlying HTTP client. The per-probe timeout is
// still enforced through the request context.
func (p *Prober) WithClient(c *http.Client) *Prober {
	p.client = c
	return p
}

// Probe checks every node in order, fanning out one request per node and
// joining before return. Results come back indexed by order. A slow or
// failing node never delays another's probe — the per-probe timeout is the
// only bound. If ctx is cancelled the in-flight probes are abandoned and no
// results are returned.
func (p *Prober) Probe(ctx context.Context, g *Graph, order []string) ([]ProbeResult, error) {
	results := make([]ProbeResult, len(order))

	grp, gctx := errgroup.WithContext(ctx)
	for i, id := range order {
		node, ok := g.Node(id)
		if !ok {
			continue
		}
		grp.Go(func() error {
			res := p.probeOne(gctx, node)
			if err := ctx.Err(); err != nil {
				return err // caller cancelled: discard everything
			}
			results[i] = res
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Prober) probeOne(ctx context.Context, n Node) ProbeResult {
	res := ProbeResult{NodeID: n.ID, NodeName: n.Name}

	pctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(pctx, p.method, n.HealthEndpoint, nil)
	if err != nil {
		res.Status = StatusUnreachable
		res.ErrorMessage = err.Error()
		res.CheckedAt = time.Now().UTC()
		return res
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	res.CheckedAt = time.Now().UTC()
	if err != nil {
		res.Status = StatusUnreachable
		res.ErrorMessage = probeErrorMessage(err)
		return res
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	rtt := roundMS(time.Since(start))
	res.ResponseTimeMS = &rtt

	if resp.StatusCode == http.StatusOK {
		res.Status = StatusHealthy
	} else {
		res.Status = StatusUnhealthy
		res.ErrorMessage = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return res
}

// probeErrorMessage turns transport errors into the short human-readable
// form reported to callers, stripping the url.Error envelope.
func probeErrorMessage(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "connection timeout"
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err.Error()
	}
	return err.Error()
}

func roundMS(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
