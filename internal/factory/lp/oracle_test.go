package lp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGonumOracle_MinimizeWithBoundedVariable(t *testing.T) {
	o := NewGonumOracle()
	x := o.AddVariable(nil)
	bound := 10.0
	y := o.AddVariable(&bound)

	// x + y = 10, minimize x -> x should go to 0, y to 10.
	o.AddConstraint(map[int]float64{x: 1, y: 1}, Equal, 10)
	o.SetObjective(true, map[int]float64{x: 1})

	sol, err := o.Solve()
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 0.0, sol.Values[x], 1e-6)
	assert.InDelta(t, 10.0, sol.Values[y], 1e-6)
}

func TestGonumOracle_MaximizeRespectsLessEqual(t *testing.T) {
	o := NewGonumOracle()
	x := o.AddVariable(nil)

	o.AddConstraint(map[int]float64{x: 1}, LessEqual, 42)
	o.SetObjective(false, map[int]float64{x: 1})

	sol, err := o.Solve()
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, sol.Status)
	assert.InDelta(t, 42.0, sol.Objective, 1e-6)
	assert.InDelta(t, 42.0, sol.Values[x], 1e-6)
}

func TestGonumOracle_Infeasible(t *testing.T) {
	o := NewGonumOracle()
	x := o.AddVariable(nil)
	zero := 0.0
	y := o.AddVariable(&zero)

	// x + y = 10 but y is pinned to 0 and x is bounded below 10.
	bound := 5.0
	o.AddConstraint(map[int]float64{x: 1, y: 1}, Equal, 10)
	o.AddConstraint(map[int]float64{x: 1}, LessEqual, bound)
	o.SetObjective(true, map[int]float64{x: 1})

	sol, err := o.Solve()
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, sol.Status)
}
