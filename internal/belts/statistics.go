package belts

import "factoryplan/pkg/numeric"

// computeStatistics derives supplemental flow metrics directly from the
// solved residual graph, before presentation rounding (SPEC_FULL.md §C):
// how many original edges carry any flow at all, how many are saturated at
// their upper bound, and the mean utilization across all edges. These never
// appear in the stdout document; they exist for callers embedding this
// package directly.
func computeStatistics(b *built) Statistics {
	var stats Statistics
	utilizationSum := 0.0

	for _, rec := range b.edges {
		e := b.graph.At(rec.handle)
		used := e.OrigCap - e.Cap
		if used < 0 {
			used = 0
		}
		flow := used + rec.lo
		stats.TotalFlow += flow

		if flow > numeric.Epsilon {
			stats.ActiveEdges++
		}
		if rec.hi < numeric.Infinity && numeric.Equal(flow, rec.hi) {
			stats.SaturatedEdges++
		}
		if rec.hi < numeric.Infinity && rec.hi > numeric.Epsilon {
			utilizationSum += flow / rec.hi
		}
	}
	if len(b.edges) > 0 {
		stats.AverageUtilization = utilizationSum / float64(len(b.edges))
	}
	return stats
}
