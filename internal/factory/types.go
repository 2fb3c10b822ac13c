// Package factory implements the steady-state production LP described in
// spec.md §4.5–§4.6: translating a recipe/machine description into a linear
// program, probing feasibility of a target rate at minimum machine count,
// and falling back to a diagnostic maximization when the target cannot be
// met.
package factory

import "encoding/json"

// MachineInput is one machine class: name to base throughput.
type MachineInput struct {
	CraftsPerMin float64 `json:"crafts_per_min"`
}

// RecipeInput is one recipe: the machine class it runs on, its nominal
// duration, and its input/output item bags.
type RecipeInput struct {
	Machine string             `json:"machine"`
	TimeS   float64            `json:"time_s"`
	In      map[string]float64 `json:"in"`
	Out     map[string]float64 `json:"out"`
}

// ModuleInput is a machine class's speed/productivity profile. Both are
// additive to a base multiplier of 1 and default to 0 when omitted.
type ModuleInput struct {
	Speed *float64 `json:"speed,omitempty"`
	Prod  *float64 `json:"prod,omitempty"`
}

func (m ModuleInput) speed() float64 {
	if m.Speed == nil {
		return 0
	}
	return *m.Speed
}

func (m ModuleInput) prod() float64 {
	if m.Prod == nil {
		return 0
	}
	return *m.Prod
}

// Limits bounds raw consumption per item and machine count per class.
type Limits struct {
	RawSupplyPerMin map[string]float64 `json:"raw_supply_per_min"`
	MaxMachines     map[string]float64 `json:"max_machines"`
}

// Target names the one item the plan must produce, and at what rate.
type Target struct {
	Item       string  `json:"item"`
	RatePerMin float64 `json:"rate_per_min"`
}

// Problem is the full Factory input document (spec.md §6).
type Problem struct {
	Machines map[string]MachineInput `json:"machines"`
	Recipes  map[string]RecipeInput  `json:"recipes"`
	Modules  map[string]ModuleInput  `json:"modules"`
	Limits   Limits                  `json:"limits"`
	Target   Target                  `json:"target"`
}

// Result is the outcome of a Factory solve. Exactly one of the "ok" fields
// or the "infeasible" fields is populated, matching Status.
type Result struct {
	Status                  string
	PerRecipeCraftsPerMin   map[string]float64
	PerMachineCounts        map[string]int64
	RawConsumptionPerMin    map[string]float64
	MaxFeasibleTargetPerMin float64
	BottleneckHint          []string
}

// MarshalJSON renders Result in the exact shape spec.md §6 defines.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Status == "ok" {
		return json.Marshal(struct {
			Status                string             `json:"status"`
			PerRecipeCraftsPerMin map[string]float64 `json:"per_recipe_crafts_per_min"`
			PerMachineCounts      map[string]int64    `json:"per_machine_counts"`
			RawConsumptionPerMin  map[string]float64 `json:"raw_consumption_per_min"`
		}{
			Status:                r.Status,
			PerRecipeCraftsPerMin: r.PerRecipeCraftsPerMin,
			PerMachineCounts:      r.PerMachineCounts,
			RawConsumptionPerMin:  r.RawConsumptionPerMin,
		})
	}

	return json.Marshal(struct {
		Status                  string   `json:"status"`
		MaxFeasibleTargetPerMin float64  `json:"max_feasible_target_per_min"`
		BottleneckHint          []string `json:"bottleneck_hint"`
	}{
		Status:                  r.Status,
		MaxFeasibleTargetPerMin: r.MaxFeasibleTargetPerMin,
		BottleneckHint:          r.BottleneckHint,
	})
}
