package daghealth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resultsWith(statuses ...NodeStatus) []ProbeResult {
	out := make([]ProbeResult, len(statuses))
	for i, s := range statuses {
		out[i] = ProbeResult{NodeID: nodeID(i), Status: s}
	}
	return out
}

func TestOverallOf(t *testing.T) {
	cases := []struct {
		name     string
		statuses []NodeStatus
		want     OverallStatus
	}{
		{"all healthy", []NodeStatus{StatusHealthy, StatusHealthy, StatusHealthy}, OverallHealthy},
		{"single node healthy", []NodeStatus{StatusHealthy}, OverallHealthy},
		{"one of three down", []NodeStatus{StatusHealthy, StatusUnhealthy, StatusHealthy}, OverallUnhealthy},
		{"unreachable counts as non-healthy", []NodeStatus{StatusHealthy, StatusUnreachable, StatusHealthy}, OverallUnhealthy},
		{"exactly half is still unhealthy", []NodeStatus{StatusHealthy, StatusHealthy, StatusUnhealthy, StatusUnreachable}, OverallUnhealthy},
		{"majority down is critical", []NodeStatus{StatusHealthy, StatusUnhealthy, StatusUnreachable}, OverallCritical},
		{"three of four down is critical", []NodeStatus{StatusHealthy, StatusUnhealthy, StatusUnhealthy, StatusUnreachable}, OverallCritical},
		{"all down is critical", []NodeStatus{StatusUnreachable, StatusUnhealthy}, OverallCritical},
		{"single node down is critical", []NodeStatus{StatusUnreachable}, OverallCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, OverallOf(resultsWith(tc.statuses...)))
		})
	}
}

func TestOverallOfDeterministic(t *testing.T) {
	in := resultsWith(StatusHealthy, StatusUnhealthy, StatusHealthy, StatusUnreachable)
	first := OverallOf(in)
	for range 5 {
		assert.Equal(t, first, OverallOf(in))
	}
}
