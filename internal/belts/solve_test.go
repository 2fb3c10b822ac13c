package belts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factoryplan/pkg/apperror"
)

func f64(v float64) *float64 { return &v }

func TestSolve_Feasible(t *testing.T) {
	p := &Problem{
		Nodes: []string{"s1", "a", "b", "sink"},
		Edges: []EdgeInput{
			{From: "s1", To: "a", Lo: f64(50), Hi: f64(200)},
			{From: "a", To: "b", Lo: f64(40), Hi: f64(150)},
			{From: "b", To: "sink", Lo: f64(0), Hi: f64(120)},
		},
		Sources:  map[string]float64{"s1": 120},
		Sink:     "sink",
		NodeCaps: map[string]float64{"b": 120},
	}

	result, err := Solve(p)
	require.NoError(t, err)
	require.Equal(t, "ok", result.Status)
	assert.InDelta(t, 120.0, result.MaxFlowPerMin, 1e-6)

	require.Len(t, result.Flows, 3)
	for _, flow := range result.Flows {
		assert.InDelta(t, 120.0, flow.Flow, 1e-6, "%s->%s should carry full flow", flow.From, flow.To)
	}

	// s1->a (hi 200) and a->b (hi 150) carry 120/200 and 120/150 of their
	// capacity; b->sink (hi 120) is the only one that saturates.
	assert.InDelta(t, 360.0, result.Stats.TotalFlow, 1e-6)
	assert.Equal(t, 3, result.Stats.ActiveEdges)
	assert.Equal(t, 1, result.Stats.SaturatedEdges)
	assert.InDelta(t, 0.8, result.Stats.AverageUtilization, 1e-6)
}

func TestSolve_CapacityInfeasible(t *testing.T) {
	p := &Problem{
		Nodes: []string{"s1", "a", "b", "sink"},
		Edges: []EdgeInput{
			{From: "s1", To: "a", Lo: f64(50), Hi: f64(200)},
			{From: "a", To: "b", Lo: f64(40), Hi: f64(150)},
			{From: "b", To: "sink", Lo: f64(0), Hi: f64(60)},
		},
		Sources:  map[string]float64{"s1": 120},
		Sink:     "sink",
		NodeCaps: map[string]float64{"b": 120},
	}

	result, err := Solve(p)
	require.NoError(t, err)
	require.Equal(t, "infeasible", result.Status)
	require.NotNil(t, result.Deficit)

	assert.Contains(t, result.CutReachable, "s1")
	assert.Contains(t, result.CutReachable, "a")
	assert.Contains(t, result.CutReachable, "b")
	assert.NotContains(t, result.CutReachable, "sink")

	found := false
	for _, te := range result.Deficit.TightEdges {
		if te.From == "b" && te.To == "sink" {
			found = true
		}
	}
	assert.True(t, found, "expected b->sink among tight edges")
}

func TestSolve_LowerBoundInfeasible(t *testing.T) {
	p := &Problem{
		Nodes: []string{"s1", "a", "sink"},
		Edges: []EdgeInput{
			{From: "s1", To: "a"},
			{From: "a", To: "sink", Lo: f64(80), Hi: f64(100)},
		},
		Sources: map[string]float64{"s1": 50},
		Sink:    "sink",
	}

	result, err := Solve(p)
	require.NoError(t, err)
	assert.Equal(t, "infeasible", result.Status)
}

func TestSolve_BadEdgeBounds(t *testing.T) {
	p := &Problem{
		Nodes: []string{"a", "b"},
		Edges: []EdgeInput{
			{From: "a", To: "b", Lo: f64(10), Hi: f64(5)},
		},
		Sources: map[string]float64{"a": 10},
		Sink:    "b",
	}

	result, err := Solve(p)
	require.NoError(t, err)
	require.Equal(t, "infeasible", result.Status)
	require.Len(t, result.Deficit.TightEdges, 1)
	assert.Equal(t, "a", result.Deficit.TightEdges[0].From)
	assert.Equal(t, "b", result.Deficit.TightEdges[0].To)
}

func TestSolve_MultipleSourcesWeighted(t *testing.T) {
	p := &Problem{
		Nodes: []string{"s1", "s2", "sink"},
		Edges: []EdgeInput{
			{From: "s1", To: "sink", Hi: f64(100)},
			{From: "s2", To: "sink", Hi: f64(100)},
		},
		Sources: map[string]float64{"s1": 30, "s2": 70},
		Sink:    "sink",
	}

	result, err := Solve(p)
	require.NoError(t, err)
	require.Equal(t, "ok", result.Status)
	assert.InDelta(t, 100.0, result.MaxFlowPerMin, 1e-6)
}

func TestSolve_MissingSinkRejected(t *testing.T) {
	p := &Problem{
		Nodes:   []string{"s1", "a"},
		Edges:   []EdgeInput{{From: "s1", To: "a"}},
		Sources: map[string]float64{"s1": 10},
	}

	result, err := Solve(p)
	assert.Nil(t, result)
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeMissingField, appErr.Code)
}

func TestSolve_ParallelEdgesKeptDistinct(t *testing.T) {
	p := &Problem{
		Nodes: []string{"s1", "sink"},
		Edges: []EdgeInput{
			{From: "s1", To: "sink", Hi: f64(10)},
			{From: "s1", To: "sink", Hi: f64(10)},
		},
		Sources: map[string]float64{"s1": 20},
		Sink:    "sink",
	}

	result, err := Solve(p)
	require.NoError(t, err)
	require.Equal(t, "ok", result.Status)
	require.Len(t, result.Flows, 2)
	assert.InDelta(t, 10.0, result.Flows[0].Flow, 1e-6)
	assert.InDelta(t, 10.0, result.Flows[1].Flow, 1e-6)
}
