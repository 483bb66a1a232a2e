package solver

import (
	"fmt"
	"math"
)

// Domain is the value domain of a variable.
type Domain int

const (
	// Continuous variables take any value within their bounds.
	Continuous Domain = iota
	// Binary variables take 0 or 1.
	Binary
)

func (d Domain) String() string {
	switch d {
	case Continuous:
		return "continuous"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// Sense is the relation of a linear constraint.
type Sense int

const (
	LessEq Sense = iota
	Equal
	GreaterEq
)

func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case Equal:
		return "="
	case GreaterEq:
		return ">="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Var is a decision variable. Binary variables always have bounds [0, 1].
type Var struct {
	Name   string
	Domain Domain
	Lower  float64
	Upper  float64 // may be +Inf
	Cost   float64 // objective coefficient
}

// Term is coef·x[Var].
type Term struct {
	Var  int
	Coef float64
}

// Constraint is Σ Terms (Sense) RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a linear minimisation problem. Variables and constraints are
// append-only; a Model is owned by one caller and is not safe for concurrent
// mutation.
type Model struct {
	Name   string
	vars   []Var
	cons   []Constraint
	offset float64
}

// NewModel returns an empty model.
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddVar appends a variable and returns its index. Binary variables get
// bounds [0, 1] whatever lower and upper say.
func (m *Model) AddVar(name string, d Domain, lower, upper, cost float64) int {
	if d == Binary {
		lower, upper = 0, 1
	}
	m.vars = append(m.vars, Var{Name: name, Domain: d, Lower: lower, Upper: upper, Cost: cost})

	return len(m.vars) - 1
}

// AddConstraint appends a constraint and returns its index.
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs float64) int {
	m.cons = append(m.cons, Constraint{Name: name, Terms: terms, Sense: sense, RHS: rhs})

	return len(m.cons) - 1
}

// SetObjectiveOffset sets a constant added to every objective value.
func (m *Model) SetObjectiveOffset(c float64) { m.offset = c }

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.cons) }

// Var returns variable i.
func (m *Model) Var(i int) Var { return m.vars[i] }

// Constraint returns constraint i.
func (m *Model) Constraint(i int) Constraint { return m.cons[i] }

// Objective evaluates the objective at x.
func (m *Model) Objective(x []float64) float64 {
	z := m.offset
	for i, v := range m.vars {
		z += v.Cost * x[i]
	}

	return z
}

// Validate checks indices, bounds and coefficients.
//
// Errors: ErrModel wrapped with the offending item.
func (m *Model) Validate() error {
	for i, v := range m.vars {
		if math.IsNaN(v.Lower) || math.IsInf(v.Lower, 0) {
			return fmt.Errorf("%w: var %d (%s) needs a finite lower bound", ErrModel, i, v.Name)
		}
		if math.IsNaN(v.Upper) || math.IsInf(v.Upper, -1) || v.Upper < v.Lower {
			return fmt.Errorf("%w: var %d (%s) has bounds [%v, %v]", ErrModel, i, v.Name, v.Lower, v.Upper)
		}
		if math.IsNaN(v.Cost) || math.IsInf(v.Cost, 0) {
			return fmt.Errorf("%w: var %d (%s) has cost %v", ErrModel, i, v.Name, v.Cost)
		}
	}
	for k, c := range m.cons {
		if c.Sense < LessEq || c.Sense > GreaterEq {
			return fmt.Errorf("%w: constraint %d (%s) has sense %v", ErrModel, k, c.Name, c.Sense)
		}
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return fmt.Errorf("%w: constraint %d (%s) has rhs %v", ErrModel, k, c.Name, c.RHS)
		}
		for _, t := range c.Terms {
			if t.Var < 0 || t.Var >= len(m.vars) {
				return fmt.Errorf("%w: constraint %d (%s) references var %d", ErrModel, k, c.Name, t.Var)
			}
			if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
				return fmt.Errorf("%w: constraint %d (%s) has coefficient %v", ErrModel, k, c.Name, t.Coef)
			}
		}
	}

	return nil
}
