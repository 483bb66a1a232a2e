// Package tsp - model glue shared by the three formulations.
//
// Every formulation owns a *solver.Model built on the same skeleton:
//
//	x[i][j] ∈ {0,1} (or [0,1] when relaxed) for every ordered pair i≠j,
//	cost  Σ dist[i][j]·x[i][j],
//	Σ_j x[i][j] = 1  for every i  (out-degree),
//	Σ_i x[i][j] = 1  for every j  (in-degree).
//
// Variable handles live in a dense n×n grid (−1 on the diagonal), so
// constraint builders index by city pair instead of by name.
package tsp

import (
	"fmt"
	"time"

	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/katalvlaran/lvlath-tsp/solver"
)

// ArcSelection is an n×n matrix of arc values in [0,1] read back from a
// solved model. Diagonal entries are always 0.
type ArcSelection [][]float64

// arcGrid maps (i, j) to the model variable of arc i→j; −1 on the diagonal.
type arcGrid [][]int

func newArcGrid(n int) arcGrid {
	g := make(arcGrid, n)
	for i := range g {
		g[i] = make([]int, n)
		for j := range g[i] {
			g[i][j] = -1
		}
	}

	return g
}

// selection extracts the arc values from a solver assignment.
func (g arcGrid) selection(x []float64) ArcSelection {
	n := len(g)
	sel := make(ArcSelection, n)

	var i, j int
	for i = 0; i < n; i++ {
		sel[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			if v := g[i][j]; v >= 0 {
				sel[i][j] = x[v]
			}
		}
	}

	return sel
}

// within returns the terms x[i][j] for all ordered pairs inside cities.
func (g arcGrid) within(cities []int) []solver.Term {
	terms := make([]solver.Term, 0, len(cities)*(len(cities)-1))
	for _, i := range cities {
		for _, j := range cities {
			if i != j {
				terms = append(terms, solver.Term{Var: g[i][j], Coef: 1})
			}
		}
	}

	return terms
}

// session is the state one formulation instance owns exclusively: the
// instance, the engine, the growing model and the last selection.
type session struct {
	kind  Kind
	inst  *instance.Instance
	opts  Options
	eng   solver.Solver
	model *solver.Model
	arcs  arcGrid
	sel   ArcSelection
	obj   float64
}

func newSession(kind Kind, inst *instance.Instance, opts Options) (session, error) {
	if err := inst.Validate(); err != nil {
		return session{}, err
	}
	if err := opts.validate(); err != nil {
		return session{}, err
	}
	eng, err := opts.engine()
	if err != nil {
		return session{}, err
	}

	return session{kind: kind, inst: inst, opts: opts, eng: eng}, nil
}

// buildAssignment creates the model skeleton: arc variables, objective and
// degree constraints. With a single city there are no arcs and no degree
// rows (the empty tour [0 0] has cost 0).
func (s *session) buildAssignment() {
	var (
		n   = s.inst.N
		dom = solver.Binary
		i   int
		j   int
	)
	if s.opts.Relaxed {
		dom = solver.Continuous
	}

	s.model = solver.NewModel(fmt.Sprintf("%s_%s", s.kind, s.inst.Name))
	s.arcs = newArcGrid(n)
	s.sel = nil

	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				s.arcs[i][j] = s.model.AddVar(fmt.Sprintf("x_%d_%d", i, j), dom, 0, 1, s.inst.Dist[i][j])
			}
		}
	}
	if n < 2 {
		return
	}

	for i = 0; i < n; i++ {
		out := make([]solver.Term, 0, n-1)
		for j = 0; j < n; j++ {
			if i != j {
				out = append(out, solver.Term{Var: s.arcs[i][j], Coef: 1})
			}
		}
		s.model.AddConstraint(fmt.Sprintf("out_%d", i), out, solver.Equal, 1)
	}
	for j = 0; j < n; j++ {
		in := make([]solver.Term, 0, n-1)
		for i = 0; i < n; i++ {
			if i != j {
				in = append(in, solver.Term{Var: s.arcs[i][j], Coef: 1})
			}
		}
		s.model.AddConstraint(fmt.Sprintf("in_%d", j), in, solver.Equal, 1)
	}
}

// solveOnce runs the engine on the current model. Any non-optimal status is
// a SolverFault: every model built here is feasible and bounded.
func (s *session) solveOnce() (time.Duration, error) {
	if s.model == nil {
		return 0, fmt.Errorf("%w: %s: Solve before Build", ErrBadOptions, s.kind)
	}

	start := time.Now()
	sol, err := s.eng.Solve(s.model)
	elapsed := time.Since(start)
	if err != nil {
		return elapsed, fmt.Errorf("tsp: %s: %w", s.kind, err)
	}
	if sol.Status != solver.Optimal {
		return elapsed, &SolverFault{Kind: s.kind, Status: sol.Status}
	}

	s.sel = s.arcs.selection(sol.X)
	s.obj = sol.Objective

	return elapsed, nil
}

// staticResult runs a one-shot formulation (MTZ, DFJEnumerated).
func (s *session) staticResult() (Result, error) {
	elapsed, err := s.solveOnce()
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Kind:           s.kind,
		Relaxed:        s.opts.Relaxed,
		Status:         solver.Optimal,
		Objective:      s.obj,
		Elapsed:        elapsed,
		Iterations:     1,
		NumVars:        s.model.NumVars(),
		NumConstraints: s.model.NumConstraints(),
	}
	if !s.opts.Relaxed {
		if res.Tour, err = s.successorTour(); err != nil {
			return Result{}, err
		}
	}

	return res, nil
}

// successorTour walks the integral selection from city 0.
func (s *session) successorTour() ([]int, error) {
	if s.sel == nil || s.opts.Relaxed {
		return nil, ErrNoTour
	}
	tour, err := SuccessorTour(s.sel)
	if err != nil {
		return nil, &SolverFault{Kind: s.kind, Status: solver.Optimal, Detail: err.Error()}
	}

	return tour, nil
}
