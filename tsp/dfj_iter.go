// Package tsp - DFJ with lazily generated subtour cuts (cutting-plane loop).
//
// State machine:
//
//	building ──► solving ──► extracting ──► converged
//	               ▲              │
//	               └── iterating ◄┘
//
//   - building:   assignment skeleton only (no subtour constraints).
//   - solving:    one engine call; a non-optimal status is a SolverFault and
//     ends the session (the model is feasible by construction, and the same
//     deterministic model would fail again).
//   - extracting: split the selection into cycles; a single cycle over all n
//     cities converges.
//   - iterating:  one cut Σ_{i,j∈C} x[i][j] ≤ |C|−1 per cycle C, then solve
//     again.
//
// Every cut excludes the selection that produced it and there are finitely
// many subsets, so the loop terminates. A cycle over a subset that was
// already cut means the engine ignored a constraint: that is reported as a
// SolverFault rather than looped on. Objectives are non-decreasing across
// rounds because cuts only remove feasible points.
//
// Cuts accumulate on the formulation's model, so a repeat Solve rebuilds the
// skeleton and runs the loop from the first round again.
package tsp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlath-tsp/solver"
)

type loopState int

const (
	stateBuilding loopState = iota
	stateSolving
	stateExtracting
	stateIterating
	stateConverged
)

type dfjIterFormulation struct {
	session
	cuts   map[string]struct{}
	cycle  []int // the converged Hamiltonian cycle
	solved bool  // the model carries cuts from an earlier Solve
}

func (f *dfjIterFormulation) Kind() Kind { return DFJIterative }

func (f *dfjIterFormulation) Build() error {
	f.buildAssignment()
	f.cuts = make(map[string]struct{})
	f.cycle = nil
	f.solved = false

	return nil
}

func (f *dfjIterFormulation) Solve() (Result, error) {
	var (
		n      = f.inst.N
		state  = stateBuilding
		res    = Result{Kind: DFJIterative}
		cycles [][]int
		err    error
	)
	f.cycle = nil

	for state != stateConverged {
		switch state {
		case stateBuilding:
			if f.model == nil || f.solved {
				if err = f.Build(); err != nil {
					return Result{}, err
				}
			}
			f.solved = true
			state = stateSolving

		case stateSolving:
			if f.opts.MaxRounds > 0 && res.Iterations >= f.opts.MaxRounds {
				return Result{}, fmt.Errorf("%w: %d rounds", ErrRoundLimit, res.Iterations)
			}
			elapsed, serr := f.solveOnce()
			res.Elapsed += elapsed
			res.Iterations++
			if serr != nil {
				return Result{}, serr
			}
			res.Rounds = append(res.Rounds, Round{Objective: f.obj, Elapsed: elapsed})
			state = stateExtracting

		case stateExtracting:
			cycles, err = ExtractCycles(f.sel)
			if err != nil {
				return Result{}, &SolverFault{Kind: DFJIterative, Status: solver.Optimal, Detail: err.Error()}
			}
			res.Rounds[len(res.Rounds)-1].Cycles = cycles
			if len(cycles) == 1 && len(cycles[0]) == n {
				f.cycle = cycles[0]
				state = stateConverged
			} else {
				state = stateIterating
			}

		case stateIterating:
			for _, c := range cycles {
				if err = f.addCut(c, res.Iterations); err != nil {
					return Result{}, err
				}
			}
			res.Rounds[len(res.Rounds)-1].CutsAdded = len(cycles)
			state = stateSolving
		}
	}

	res.Status = solver.Optimal
	res.Objective = f.obj
	res.NumVars = f.model.NumVars()
	res.NumConstraints = f.model.NumConstraints()
	if res.Tour, err = f.ExtractTour(); err != nil {
		return Result{}, err
	}

	return res, nil
}

// addCut appends the subtour elimination constraint for cycle c.
func (f *dfjIterFormulation) addCut(c []int, round int) error {
	key := subsetKey(c)
	if _, dup := f.cuts[key]; dup {
		return &SolverFault{
			Kind:   DFJIterative,
			Status: solver.Optimal,
			Detail: fmt.Sprintf("selection repeats already cut subtour {%s}", key),
		}
	}
	f.cuts[key] = struct{}{}
	f.model.AddConstraint(fmt.Sprintf("sec_r%d_%d", round, c[0]), f.arcs.within(c), solver.LessEq, float64(len(c)-1))

	return nil
}

// ExtractTour returns the converged cycle closed at city 0.
func (f *dfjIterFormulation) ExtractTour() ([]int, error) {
	if f.cycle == nil {
		return nil, ErrNoTour
	}
	// Cycles start at their smallest city, so the Hamiltonian one starts at 0.
	tour := make([]int, 0, len(f.cycle)+1)
	tour = append(tour, f.cycle...)

	return append(tour, f.cycle[0]), nil
}

// subsetKey is the canonical (sorted, comma-joined) form of a city set.
func subsetKey(c []int) string {
	s := append([]int(nil), c...)
	sort.Ints(s)
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}

	return strings.Join(parts, ",")
}
