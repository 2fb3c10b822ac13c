package belts

import (
	"fmt"

	"factoryplan/internal/belts/residual"
	"factoryplan/pkg/apperror"
	"factoryplan/pkg/numeric"
)

// edgeRecord remembers one original input edge's handle and bounds, so the
// reconstructor and diagnostic extractor can read it back by name rather
// than by internal vertex id.
type edgeRecord struct {
	from, to string
	lo, hi   float64
	handle   residual.Handle
}

// boundsError reports a single edge whose hi is below its lo, an immediate
// infeasibility spec.md §4.1 and §7 call out as a schema-adjacent, edge-local
// defect rather than a graph-wide one.
type boundsError struct {
	from, to string
	lo, hi   float64
}

func (e *boundsError) Error() string {
	return fmt.Sprintf("edge %s->%s: hi (%v) below lo (%v)", e.from, e.to, e.hi, e.lo)
}

// built is everything the feasibility/reconstruction/diagnostics stages need
// out of the graph builder.
type built struct {
	graph       *residual.Graph
	ids         *idSpace
	edges       []edgeRecord
	totalSupply float64
	bPlus       float64
}

// build runs the graph builder (spec.md §4.1): it splits capacity-bearing
// nodes, reduces every edge to its hi-lo residual capacity, folds each
// edge's lower bound and each source/sink's supply or demand into a
// per-vertex balance b(v), and attaches a super-source/super-sink pair so
// that a single max-flow run from superSource to superSink decides lower
// bound feasibility: the instance is feasible iff that flow equals bPlus
// (spec.md §4.3).
func build(p *Problem) (*built, error) {
	if p.Sink == "" {
		return nil, apperror.New(apperror.CodeMissingField, "sink is required")
	}

	ids := buildIDSpace(p)
	g := residual.NewGraph(ids.n)

	balance := make([]float64, ids.n)

	for name := range p.NodeCaps {
		if !ids.isSplit(name) {
			continue // source or sink: never split, per spec.md §4.1
		}
		cap := p.NodeCaps[name]
		g.AddEdge(ids.in(name), ids.out(name), cap)
	}

	edges := make([]edgeRecord, 0, len(p.Edges))
	for _, e := range p.Edges {
		lo := e.ResolvedLo()
		hi := e.ResolvedHi()
		if hi+numeric.Epsilon < lo {
			return nil, &boundsError{from: e.From, to: e.To, lo: lo, hi: hi}
		}

		tail := ids.out(e.From)
		head := ids.in(e.To)
		handle := g.AddEdge(tail, head, hi-lo)

		balance[head] += lo
		balance[tail] -= lo

		edges = append(edges, edgeRecord{from: e.From, to: e.To, lo: lo, hi: hi, handle: handle})
	}

	totalSupply := 0.0
	for _, supply := range p.Sources {
		totalSupply += supply
	}
	for name, supply := range p.Sources {
		balance[ids.out(name)] += supply
	}
	balance[ids.in(p.Sink)] -= totalSupply

	bPlus := 0.0
	for v := 0; v < ids.n-2; v++ { // exclude superSource/superSink themselves
		if balance[v] > numeric.Epsilon {
			g.AddEdge(ids.superSource, v, balance[v])
			bPlus += balance[v]
		} else if balance[v] < -numeric.Epsilon {
			g.AddEdge(v, ids.superSink, -balance[v])
		}
	}

	return &built{graph: g, ids: ids, edges: edges, totalSupply: totalSupply, bPlus: bPlus}, nil
}
