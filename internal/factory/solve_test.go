package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factoryplan/pkg/apperror"
)

// factoryAProblem is the seed scenario from spec.md §8: two furnace recipes
// and one assembler recipe producing green_circuit at 1800/min, with
// generous raw caps.
func factoryAProblem() *Problem {
	return &Problem{
		Machines: map[string]MachineInput{
			"furnace":     {CraftsPerMin: 60},
			"assembler_1": {CraftsPerMin: 30},
		},
		Recipes: map[string]RecipeInput{
			"iron_plate": {
				Machine: "furnace",
				TimeS:   3.2,
				In:      map[string]float64{"iron_ore": 1},
				Out:     map[string]float64{"iron_plate": 1},
			},
			"copper_plate": {
				Machine: "furnace",
				TimeS:   3.2,
				In:      map[string]float64{"copper_ore": 1},
				Out:     map[string]float64{"copper_plate": 1},
			},
			"green_circuit": {
				Machine: "assembler_1",
				TimeS:   0.5,
				In:      map[string]float64{"iron_plate": 1, "copper_plate": 3},
				Out:     map[string]float64{"green_circuit": 1},
			},
		},
		Limits: Limits{
			RawSupplyPerMin: map[string]float64{"iron_ore": 5000, "copper_ore": 6000},
		},
		Target: Target{Item: "green_circuit", RatePerMin: 1800},
	}
}

func TestSolve_FactoryA_Feasible(t *testing.T) {
	result, err := Solve(factoryAProblem())
	require.NoError(t, err)
	require.Equal(t, "ok", result.Status)

	assert.InDelta(t, 1800.0, result.PerRecipeCraftsPerMin["green_circuit"], 1e-6)
	assert.InDelta(t, 1800.0, result.PerRecipeCraftsPerMin["iron_plate"], 1e-6)
	assert.InDelta(t, 5400.0, result.PerRecipeCraftsPerMin["copper_plate"], 1e-6)

	assert.Equal(t, int64(60), result.PerMachineCounts["assembler_1"])
	assert.Equal(t, int64(120), result.PerMachineCounts["furnace"])

	assert.InDelta(t, 1800.0, result.RawConsumptionPerMin["iron_ore"], 1e-6)
	assert.InDelta(t, 5400.0, result.RawConsumptionPerMin["copper_ore"], 1e-6)
}

func TestSolve_FactoryB_RawLimited(t *testing.T) {
	p := factoryAProblem()
	p.Limits.RawSupplyPerMin["iron_ore"] = 500

	result, err := Solve(p)
	require.NoError(t, err)
	require.Equal(t, "infeasible", result.Status)
	assert.Contains(t, result.BottleneckHint, "iron_ore supply")
}

func TestSolve_FactoryC_MachineLimited(t *testing.T) {
	p := factoryAProblem()
	p.Limits.MaxMachines = map[string]float64{"assembler_1": 1}

	result, err := Solve(p)
	require.NoError(t, err)
	require.Equal(t, "infeasible", result.Status)
	assert.Contains(t, result.BottleneckHint, "assembler_1 cap")
}

func TestSolve_MissingTargetItemRejected(t *testing.T) {
	p := &Problem{
		Machines: map[string]MachineInput{"assembler_1": {CraftsPerMin: 30}},
		Recipes: map[string]RecipeInput{
			"green_circuit": {
				Machine: "assembler_1",
				In:      map[string]float64{"iron_plate": 1},
				Out:     map[string]float64{"green_circuit": 1},
			},
		},
		Target: Target{RatePerMin: 100},
	}

	result, err := Solve(p)
	assert.Nil(t, result)
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeMissingField, appErr.Code)
}

func TestSolve_UnknownMachineReference(t *testing.T) {
	p := &Problem{
		Machines: map[string]MachineInput{"assembler_1": {CraftsPerMin: 120}},
		Recipes: map[string]RecipeInput{
			"green_circuit": {
				Machine: "assembler_2",
				In:      map[string]float64{"iron_plate": 1},
				Out:     map[string]float64{"green_circuit": 1},
			},
		},
		Target: Target{Item: "green_circuit", RatePerMin: 100},
	}

	_, err := Solve(p)
	assert.Error(t, err)
}

func TestSolve_ZeroEffRecipePinned(t *testing.T) {
	p := &Problem{
		Machines: map[string]MachineInput{"assembler_1": {CraftsPerMin: 0}},
		Recipes: map[string]RecipeInput{
			"green_circuit": {
				Machine: "assembler_1",
				In:      map[string]float64{"iron_plate": 1},
				Out:     map[string]float64{"green_circuit": 1},
			},
		},
		Target: Target{Item: "green_circuit", RatePerMin: 100},
	}

	result, err := Solve(p)
	require.NoError(t, err)
	assert.Equal(t, "infeasible", result.Status)
}
