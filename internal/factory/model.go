package factory

import (
	"fmt"
	"sort"

	"factoryplan/internal/factory/lp"
	"factoryplan/pkg/apperror"
	"factoryplan/pkg/numeric"
)

// recipeInfo is a recipe's resolved per-solve quantities (spec.md §3,
// invariants a/b): its effective crafts-per-minute and productivity
// multiplier, derived once from its machine class and that class's module
// profile.
type recipeInfo struct {
	machine string
	eff     float64 // effective crafts/min; <=0 pins the recipe's variable to 0
	mult    float64 // productivity multiplier applied to every output
	in, out map[string]float64
}

// model is the built LP plus the bookkeeping the orchestration layer needs
// to read the solution back into domain terms: which oracle variable id
// belongs to which recipe or raw item, and the resolved recipe/machine
// metadata used for machine-count and bottleneck computations.
type model struct {
	oracle     lp.Oracle
	recipes    map[string]recipeInfo
	recipeVar  map[string]int
	rawVar     map[string]int
	targetVar  int // -1 unless targetFree
	machineOf  map[string][]string // machine class -> recipe names
	maxMachine map[string]float64
	rawCap     map[string]float64
}

// build translates p into an LP (spec.md §4.5). When targetFree is false,
// the target item's balance equation is pinned to p.Target.RatePerMin and
// the objective minimizes total machines. When targetFree is true, an
// unbounded variable T replaces that fixed rate and the objective maximizes
// T instead (the diagnostic pass, spec.md §4.6).
func build(p *Problem, targetFree bool) (*model, error) {
	if p.Target.Item == "" {
		return nil, apperror.New(apperror.CodeMissingField, "target item is required")
	}

	recipes := make(map[string]recipeInfo, len(p.Recipes))
	for name, r := range p.Recipes {
		machine, ok := p.Machines[r.Machine]
		if !ok {
			return nil, apperror.NewWithField(apperror.CodeUnknownNode,
				fmt.Sprintf("recipe %q references unknown machine %q", name, r.Machine), "machine")
		}
		mod := p.Modules[r.Machine]
		eff := machine.CraftsPerMin * (1 + mod.speed())
		recipes[name] = recipeInfo{
			machine: r.Machine,
			eff:     eff,
			mult:    1 + mod.prod(),
			in:      r.In,
			out:     r.Out,
		}
	}

	items := make(map[string]struct{})
	for _, r := range recipes {
		for item := range r.in {
			items[item] = struct{}{}
		}
		for item := range r.out {
			items[item] = struct{}{}
		}
	}
	items[p.Target.Item] = struct{}{}

	rawCap := p.Limits.RawSupplyPerMin

	oracle := lp.NewGonumOracle()

	recipeNames := sortedKeys(recipes)
	recipeVar := make(map[string]int, len(recipeNames))
	for _, name := range recipeNames {
		info := recipes[name]
		if info.eff <= numeric.Epsilon {
			zero := 0.0
			recipeVar[name] = oracle.AddVariable(&zero)
			continue
		}
		recipeVar[name] = oracle.AddVariable(nil)
	}

	rawNames := sortedKeys(rawCap)
	rawVar := make(map[string]int, len(rawNames))
	for _, item := range rawNames {
		cap := rawCap[item]
		rawVar[item] = oracle.AddVariable(&cap)
	}

	targetVar := -1
	if targetFree {
		targetVar = oracle.AddVariable(nil)
	}

	for _, item := range sortedKeys(items) {
		coeffs := make(map[int]float64)
		for _, name := range recipeNames {
			info := recipes[name]
			coeff := info.out[item]*info.mult - info.in[item]
			if coeff != 0 {
				coeffs[recipeVar[name]] = coeff
			}
		}
		if v, isRaw := rawVar[item]; isRaw {
			coeffs[v] = 1
		}

		rhs := 0.0
		if item == p.Target.Item {
			if targetFree {
				coeffs[targetVar] = -1
			} else {
				rhs = p.Target.RatePerMin
			}
		}
		oracle.AddConstraint(coeffs, lp.Equal, rhs)
	}

	machineOf := make(map[string][]string)
	for _, name := range recipeNames {
		m := recipes[name].machine
		machineOf[m] = append(machineOf[m], name)
	}

	for _, m := range sortedKeys(machineOf) {
		cap, hasCap := p.Limits.MaxMachines[m]
		if !hasCap {
			continue
		}
		coeffs := make(map[int]float64)
		for _, name := range machineOf[m] {
			info := recipes[name]
			if info.eff <= numeric.Epsilon {
				continue
			}
			coeffs[recipeVar[name]] = 1 / info.eff
		}
		if len(coeffs) > 0 {
			oracle.AddConstraint(coeffs, lp.LessEqual, cap)
		}
	}

	objective := make(map[int]float64)
	minimize := true
	if targetFree {
		minimize = false
		objective[targetVar] = 1
	} else {
		for _, name := range recipeNames {
			info := recipes[name]
			if info.eff <= numeric.Epsilon {
				continue
			}
			objective[recipeVar[name]] = 1 / info.eff
		}
	}
	oracle.SetObjective(minimize, objective)

	return &model{
		oracle:     oracle,
		recipes:    recipes,
		recipeVar:  recipeVar,
		rawVar:     rawVar,
		targetVar:  targetVar,
		machineOf:  machineOf,
		maxMachine: p.Limits.MaxMachines,
		rawCap:     rawCap,
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
