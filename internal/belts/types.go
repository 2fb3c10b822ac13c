// Package belts implements the feasible-flow solver described in spec.md §3
// and §4.1–§4.4: a directed graph with per-edge lower/upper bounds, per-node
// throughput caps, multiple weighted sources and a single sink, solved by
// reducing to a standard max-flow instance and either reporting the
// resulting flow or a certificate of infeasibility.
package belts

import (
	"encoding/json"

	"factoryplan/pkg/numeric"
)

// EdgeInput is one (from, to) edge as given in the input document. Lo and Hi
// are pointers so a missing value can be told apart from an explicit zero;
// ResolvedLo/ResolvedHi apply the spec's defaults (lo=0, hi=+inf).
type EdgeInput struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Lo   *float64 `json:"lo,omitempty"`
	Hi   *float64 `json:"hi,omitempty"`
}

// ResolvedLo returns the edge's lower bound, defaulting to 0.
func (e EdgeInput) ResolvedLo() float64 {
	if e.Lo == nil {
		return 0
	}
	return *e.Lo
}

// ResolvedHi returns the edge's upper bound, defaulting to the Infinity
// sentinel when absent.
func (e EdgeInput) ResolvedHi() float64 {
	if e.Hi == nil {
		return numeric.Infinity
	}
	return *e.Hi
}

// Problem is the full Belts input document (spec.md §6).
type Problem struct {
	Nodes    []string           `json:"nodes"`
	Edges    []EdgeInput        `json:"edges"`
	Sources  map[string]float64 `json:"sources"`
	Sink     string             `json:"sink"`
	NodeCaps map[string]float64 `json:"node_caps"`
}

// FlowEntry is one reported edge flow in the "ok" output.
type FlowEntry struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Flow float64 `json:"flow"`
}

// TightEdge names an edge witnessing infeasibility (spec.md §4.4).
type TightEdge struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	FlowNeeded float64 `json:"flow_needed"`
}

// Deficit is the infeasibility certificate's detail block.
type Deficit struct {
	DemandBalance float64     `json:"demand_balance"`
	TightNodes    []string    `json:"tight_nodes"`
	TightEdges    []TightEdge `json:"tight_edges"`
}

// Statistics are supplemental, non-schema metrics about the solved flow
// (SPEC_FULL.md §C) — never part of the stdout document, but returned to
// programmatic callers of Solve.
type Statistics struct {
	TotalFlow          float64
	ActiveEdges        int
	SaturatedEdges     int
	AverageUtilization float64
}

// Result is the outcome of a Belts solve. Exactly one of the "ok" fields
// (MaxFlowPerMin, Flows) or the "infeasible" fields (CutReachable, Deficit)
// is populated, matching Status.
type Result struct {
	Status        string
	MaxFlowPerMin float64
	Flows         []FlowEntry
	CutReachable  []string
	Deficit       *Deficit
	Stats         Statistics
}

// MarshalJSON renders Result in the exact shape spec.md §6 defines,
// omitting the supplemental Stats field entirely.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Status == "ok" {
		return json.Marshal(struct {
			Status        string      `json:"status"`
			MaxFlowPerMin float64     `json:"max_flow_per_min"`
			Flows         []FlowEntry `json:"flows"`
		}{
			Status:        r.Status,
			MaxFlowPerMin: r.MaxFlowPerMin,
			Flows:         r.Flows,
		})
	}

	deficit := r.Deficit
	if deficit == nil {
		deficit = &Deficit{}
	}
	return json.Marshal(struct {
		Status       string   `json:"status"`
		CutReachable []string `json:"cut_reachable"`
		Deficit      *Deficit `json:"deficit"`
	}{
		Status:       r.Status,
		CutReachable: r.CutReachable,
		Deficit:      deficit,
	})
}
