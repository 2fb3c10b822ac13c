package factory

import (
	"math"
	"sort"

	"factoryplan/internal/factory/lp"
	"factoryplan/pkg/logger"
	"factoryplan/pkg/numeric"
)

// Solve runs the Factory orchestration (spec.md §4.6): build the primary LP
// at the requested target rate and minimize total machines. If the oracle
// reports optimal, emit per-recipe crafts, per-machine counts (a ceiling
// applied once, after solving — the only place integrality enters), and raw
// consumption. Otherwise rebuild with the target rate free, maximize it,
// and report the feasible rate plus which caps are binding.
func Solve(p *Problem) (*Result, error) {
	m, err := build(p, false)
	if err != nil {
		return nil, err
	}

	sol, err := m.oracle.Solve()
	if err != nil {
		return nil, err
	}

	if sol.Status == lp.StatusOptimal {
		return feasibleResult(m, sol), nil
	}

	logger.WithComponent("factory").Debug("primary LP infeasible, running diagnostic pass")
	return diagnose(p)
}

func feasibleResult(m *model, sol *lp.Solution) *Result {
	perRecipe := make(map[string]float64, len(m.recipeVar))
	for name, v := range m.recipeVar {
		perRecipe[name] = numeric.Round2(sol.Values[v])
	}

	usage := make(map[string]float64, len(m.machineOf))
	for mach, names := range m.machineOf {
		total := 0.0
		for _, name := range names {
			info := m.recipes[name]
			if info.eff <= numeric.Epsilon {
				continue
			}
			total += sol.Values[m.recipeVar[name]] / info.eff
		}
		usage[mach] = total
	}

	perMachine := make(map[string]int64, len(usage))
	for mach, total := range usage {
		perMachine[mach] = int64(math.Ceil(total - numeric.Epsilon))
	}

	rawConsumption := make(map[string]float64, len(m.rawVar))
	for item, v := range m.rawVar {
		rawConsumption[item] = numeric.Round2(sol.Values[v])
	}

	return &Result{
		Status:                "ok",
		PerRecipeCraftsPerMin: perRecipe,
		PerMachineCounts:      perMachine,
		RawConsumptionPerMin:  rawConsumption,
	}
}

// diagnose rebuilds the LP with the target rate free and maximizes it
// (spec.md §4.6). When even that relaxed LP is infeasible, it reports a
// zero feasible rate and the sentinel hint "unsatisfiable".
func diagnose(p *Problem) (*Result, error) {
	m, err := build(p, true)
	if err != nil {
		return nil, err
	}

	sol, err := m.oracle.Solve()
	if err != nil {
		return nil, err
	}

	if sol.Status != lp.StatusOptimal {
		return &Result{
			Status:                  "infeasible",
			MaxFeasibleTargetPerMin: 0,
			BottleneckHint:          []string{"unsatisfiable"},
		}, nil
	}

	return &Result{
		Status:                  "infeasible",
		MaxFeasibleTargetPerMin: numeric.Round2(sol.Values[m.targetVar]),
		BottleneckHint:          bottleneckHint(m, sol),
	}, nil
}

// bottleneckHint lists every machine class whose usage reaches its cap
// within 1e-6, sorted by name, followed by every raw item whose consumption
// reaches its cap within 1e-6, also sorted by name (spec.md §4.6).
func bottleneckHint(m *model, sol *lp.Solution) []string {
	const tol = 1e-6

	machines := make([]string, 0)
	for mach, cap := range m.maxMachine {
		total := 0.0
		for _, name := range m.machineOf[mach] {
			info := m.recipes[name]
			if info.eff <= numeric.Epsilon {
				continue
			}
			total += sol.Values[m.recipeVar[name]] / info.eff
		}
		if math.Abs(total-cap) <= tol {
			machines = append(machines, mach)
		}
	}
	sort.Strings(machines)

	raws := make([]string, 0)
	for item, cap := range m.rawCap {
		v, ok := m.rawVar[item]
		if !ok {
			continue
		}
		if math.Abs(sol.Values[v]-cap) <= tol {
			raws = append(raws, item)
		}
	}
	sort.Strings(raws)

	hint := make([]string, 0, len(machines)+len(raws))
	for _, mach := range machines {
		hint = append(hint, mach+" cap")
	}
	for _, item := range raws {
		hint = append(hint, item+" supply")
	}
	return hint
}
