package belts

import (
	"sort"

	"factoryplan/pkg/numeric"
)

// reconstruct reads the post-flow residual graph back into per-edge flow
// values. The amount consumed from an edge's reduced capacity is
// OrigCap-Cap (not the Flow field, which a reverse-edge cancellation can
// leave stale); adding the edge's own lower bound back recovers the true
// flow on the original, unreduced edge (spec.md §4.3: "the flow realized on
// the reduced edge is used = max(0, cap' − remaining)").
func reconstruct(b *built) []FlowEntry {
	flows := make([]FlowEntry, 0, len(b.edges))
	for _, rec := range b.edges {
		e := b.graph.At(rec.handle)
		used := e.OrigCap - e.Cap
		if used < 0 {
			used = 0
		}
		flows = append(flows, FlowEntry{From: rec.from, To: rec.to, Flow: numeric.Round2(used + rec.lo)})
	}

	sort.Slice(flows, func(i, j int) bool {
		if flows[i].From != flows[j].From {
			return flows[i].From < flows[j].From
		}
		return flows[i].To < flows[j].To
	})
	return flows
}
