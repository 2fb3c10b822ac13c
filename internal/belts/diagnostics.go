package belts

import (
	"sort"

	"factoryplan/internal/belts/residual"
	"factoryplan/pkg/numeric"
)

// diagnose extracts an infeasibility certificate from b's residual graph
// once the superSource-to-superSink max-flow has fallen short of bPlus
// (spec.md §4.4).
//
// It runs a BFS from the super-source over edges with residual capacity
// above Epsilon, then reports:
//   - cut_reachable: the original node names reached.
//   - tight_nodes: split nodes whose in->out capacity edge is saturated and
//     whose in vertex was reached.
//   - tight_edges: original edges whose tail was reached, whose head was
//     not, and whose forward residual is exhausted; each is reported with
//     flow_needed equal to its lower bound.
func diagnose(b *built, achieved float64) ([]string, *Deficit) {
	reached := bfsReachable(b.graph, b.ids.superSource)

	nodeReached := make(map[string]bool)
	cutSet := make(map[string]struct{})
	for v, ok := range reached {
		if !ok {
			continue
		}
		name, isReal := b.ids.nodeOf(v)
		if !isReal {
			continue
		}
		nodeReached[name] = true
		cutSet[name] = struct{}{}
	}

	cutReachable := make([]string, 0, len(cutSet))
	for name := range cutSet {
		cutReachable = append(cutReachable, name)
	}
	sort.Strings(cutReachable)

	tightNodeSet := make(map[string]struct{})
	for name := range nodeReached {
		if !b.ids.isSplit(name) {
			continue
		}
		if !reached[b.ids.in(name)] {
			continue
		}
		sp := b.ids.byName[name]
		for _, e := range b.graph.Neighbors(sp.in) {
			if e.To == sp.out && !e.IsReverse && e.Cap <= numeric.Epsilon {
				tightNodeSet[name] = struct{}{}
			}
		}
	}
	tightNodes := make([]string, 0, len(tightNodeSet))
	for name := range tightNodeSet {
		tightNodes = append(tightNodes, name)
	}
	sort.Strings(tightNodes)

	tightEdges := make([]TightEdge, 0)
	for _, rec := range b.edges {
		tailReached := reached[b.ids.out(rec.from)]
		headReached := reached[b.ids.in(rec.to)]
		if !tailReached || headReached {
			continue
		}
		e := b.graph.At(rec.handle)
		if e.Cap > numeric.Epsilon {
			continue
		}
		tightEdges = append(tightEdges, TightEdge{From: rec.from, To: rec.to, FlowNeeded: rec.lo})
	}
	sort.Slice(tightEdges, func(i, j int) bool {
		if tightEdges[i].From != tightEdges[j].From {
			return tightEdges[i].From < tightEdges[j].From
		}
		return tightEdges[i].To < tightEdges[j].To
	})

	return cutReachable, &Deficit{
		DemandBalance: numeric.RoundNearInteger(b.bPlus-achieved, 1e-6),
		TightNodes:    tightNodes,
		TightEdges:    tightEdges,
	}
}

// bfsReachable returns, for every vertex, whether it is reachable from
// source over edges with residual capacity above Epsilon.
func bfsReachable(g *residual.Graph, source int) []bool {
	reached := make([]bool, g.NumVertices())
	reached[source] = true

	queue := make([]int, 0, g.NumVertices())
	queue = append(queue, source)

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, e := range g.Neighbors(u) {
			if !reached[e.To] && e.Cap > numeric.Epsilon {
				reached[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
	return reached
}
