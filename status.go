package daghealth

// OverallStatus is the system-wide health classification.
type OverallStatus string

const (
	OverallHealthy   OverallStatus = "healthy"   // every node healthy
	OverallUnhealthy OverallStatus = "unhealthy" // a non-healthy minority
	OverallCritical  OverallStatus = "critical"  // more than half non-healthy
)

// OverallOf derives the overall status from the full probe result set.
// Strictly more than half of the nodes being non-healthy means critical;
// exactly half of an even count is still unhealthy. Pure and deterministic.
func OverallOf(results []ProbeResult) OverallStatus {
	nonHealthy := 0
	for _, r := range results {
		if r.Status != StatusHealthy {
			nonHealthy++
		}
	}

	switch {
	case nonHealthy == 0:
		return OverallHealthy
	case nonHealthy*2 > len(results):
		return OverallCritical
	default:
		return OverallUnhealthy
	}
}
