package belts

import (
	"errors"

	"factoryplan/pkg/logger"
	"factoryplan/pkg/numeric"
)

// Solve runs the full Belts pipeline: build the reduced graph and
// super-source/super-sink feasibility network (§4.1), run Dinic's algorithm
// from the super-source to the super-sink (§4.2), and either reconstruct
// the per-edge flow (§4.3) or extract an infeasibility certificate (§4.4).
//
// A chained single-graph design is used rather than a separate main-flow
// pass: the feasibility network's source/sink balance terms already force
// exactly the declared total supply through the graph when the super-source
// to super-sink flow saturates, so that same residual state already is the
// maximum flow; max_flow_per_min is then read back as the flow landing on
// edges into the sink. This is the same design the original reference
// implementation uses (see DESIGN.md), and resolves the open design choice
// spec.md §9 leaves between a chained and a two-pass computation.
func Solve(p *Problem) (*Result, error) {
	b, err := build(p)
	if err != nil {
		var bad *boundsError
		if errors.As(err, &bad) {
			logger.WithComponent("belts").Debug("edge bounds inconsistent", "from", bad.from, "to", bad.to)
			return &Result{
				Status:       "infeasible",
				CutReachable: []string{},
				Deficit: &Deficit{
					TightNodes: []string{},
					TightEdges: []TightEdge{{From: bad.from, To: bad.to, FlowNeeded: bad.lo}},
				},
			}, nil
		}
		return nil, err
	}

	achieved := maxFlow(b.graph, b.ids.superSource, b.ids.superSink)

	if achieved < b.bPlus-numeric.Epsilon {
		logger.WithComponent("belts").Debug("lower-bound feasibility failed",
			"achieved", achieved, "required", b.bPlus)
		cutReachable, deficit := diagnose(b, achieved)
		return &Result{
			Status:       "infeasible",
			CutReachable: cutReachable,
			Deficit:      deficit,
		}, nil
	}

	stats := computeStatistics(b)
	flows := reconstruct(b)

	flowIntoSink := 0.0
	for _, f := range flows {
		if f.To == p.Sink {
			flowIntoSink += f.Flow
		}
	}

	return &Result{
		Status:        "ok",
		MaxFlowPerMin: numeric.Round2(flowIntoSink),
		Flows:         flows,
		Stats:         stats,
	}, nil
}
