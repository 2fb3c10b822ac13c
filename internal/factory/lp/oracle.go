// Package lp adapts the factory model translator's variables and
// constraints to a concrete continuous LP solver, behind the four-operation
// abstraction spec.md §9 describes: add a variable, add a constraint, set
// the objective, solve.
package lp

import (
	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"

	"factoryplan/pkg/apperror"
)

// Sense is the relational operator a constraint's row enforces.
type Sense int

const (
	// Equal enforces Σ coeffs·x = rhs.
	Equal Sense = iota
	// LessEqual enforces Σ coeffs·x ≤ rhs.
	LessEqual
)

// Status classifies a Solve outcome.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnknown
)

// Solution is what Solve returns: the objective value achieved and the
// value assigned to every variable, indexed by the id AddVariable returned.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

type constraint struct {
	coeffs map[int]float64
	sense  Sense
	rhs    float64
}

// Oracle is the continuous LP abstraction the factory model translator
// builds against. A concrete implementation only needs to accumulate state
// and resolve it into a solver call at Solve time — spec.md §9 calls this
// out explicitly so the translator itself never depends on a specific
// solver's API.
type Oracle interface {
	AddVariable(upperBound *float64) int
	AddConstraint(coeffs map[int]float64, sense Sense, rhs float64)
	SetObjective(minimize bool, coeffs map[int]float64)
	Solve() (*Solution, error)
}

// GonumOracle accumulates variables and constraints, then converts them to
// the standard form gonum's simplex implementation requires (minimize
// c^T x subject to Ax = b, x ≥ 0), adding one slack variable per ≤
// constraint and per explicit variable upper bound.
type GonumOracle struct {
	numVars     int
	upperBounds map[int]float64
	constraints []constraint
	minimize    bool
	objective   map[int]float64
}

// NewGonumOracle returns an empty oracle ready to accept variables.
func NewGonumOracle() *GonumOracle {
	return &GonumOracle{upperBounds: make(map[int]float64), objective: make(map[int]float64)}
}

func (o *GonumOracle) AddVariable(upperBound *float64) int {
	id := o.numVars
	o.numVars++
	if upperBound != nil {
		o.upperBounds[id] = *upperBound
	}
	return id
}

func (o *GonumOracle) AddConstraint(coeffs map[int]float64, sense Sense, rhs float64) {
	cp := make(map[int]float64, len(coeffs))
	for k, v := range coeffs {
		cp[k] = v
	}
	o.constraints = append(o.constraints, constraint{coeffs: cp, sense: sense, rhs: rhs})
}

func (o *GonumOracle) SetObjective(minimize bool, coeffs map[int]float64) {
	o.minimize = minimize
	o.objective = make(map[int]float64, len(coeffs))
	for k, v := range coeffs {
		o.objective[k] = v
	}
}

// Solve builds the standard-form system and calls gonum's simplex. Maximize
// requests are solved by negating the objective and negating the result
// back, since gonum's lp.Simplex only minimizes.
func (o *GonumOracle) Solve() (*Solution, error) {
	slackFor := make([]int, len(o.constraints))
	nextVar := o.numVars
	for i, c := range o.constraints {
		if c.sense == LessEqual {
			slackFor[i] = nextVar
			nextVar++
		} else {
			slackFor[i] = -1
		}
	}

	boundSlack := make(map[int]int, len(o.upperBounds))
	for v := range o.upperBounds {
		boundSlack[v] = nextVar
		nextVar++
	}

	totalVars := nextVar
	rows := len(o.constraints) + len(o.upperBounds)

	a := mat.NewDense(rows, totalVars, nil)
	b := make([]float64, rows)

	row := 0
	for i, c := range o.constraints {
		for v, coeff := range c.coeffs {
			a.Set(row, v, coeff)
		}
		if slackFor[i] >= 0 {
			a.Set(row, slackFor[i], 1)
		}
		b[row] = c.rhs
		row++
	}
	for v, bound := range o.upperBounds {
		a.Set(row, v, 1)
		a.Set(row, boundSlack[v], 1)
		b[row] = bound
		row++
	}

	c := make([]float64, totalVars)
	for v, coeff := range o.objective {
		if o.minimize {
			c[v] = coeff
		} else {
			c[v] = -coeff
		}
	}

	objective, x, err := gonumlp.Simplex(c, a, b, 1e-8, nil)
	if err != nil {
		if err == gonumlp.ErrInfeasible {
			return &Solution{Status: StatusInfeasible}, nil
		}
		if err == gonumlp.ErrUnbounded {
			return &Solution{Status: StatusUnknown}, nil
		}
		return nil, apperror.Wrap(err, apperror.CodeOracleFailure, "lp oracle returned an unexpected error")
	}

	if !o.minimize {
		objective = -objective
	}

	values := make([]float64, o.numVars)
	copy(values, x[:o.numVars])

	return &Solution{Status: StatusOptimal, Objective: objective, Values: values}, nil
}
