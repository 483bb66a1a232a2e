// Package tsp - Miller–Tucker–Zemlin formulation.
//
// On top of the assignment skeleton, every city gets a continuous position
// pos[i] ∈ [0, n−1], and for every ordered pair of non-zero cities i≠j:
//
//	pos[i] − pos[j] + n·x[i][j] ≤ n − 1.
//
// With x[i][j] = 1 this forces pos[j] ≥ pos[i] + 1, so any cycle that does
// not pass through city 0 would need strictly increasing positions around a
// loop, which is impossible. City 0 is excluded on purpose: the one cycle
// through it must be allowed to wrap around.
//
// Size: n(n−1) arc + n position variables; 2n + (n−1)(n−2) constraints.
package tsp

import (
	"fmt"

	"github.com/katalvlaran/lvlath-tsp/solver"
)

type mtzFormulation struct {
	session
	pos []int
}

func (f *mtzFormulation) Kind() Kind { return MTZ }

func (f *mtzFormulation) Build() error {
	f.buildAssignment()

	var (
		n   = f.inst.N
		big = float64(n)
		i   int
		j   int
	)
	f.pos = make([]int, n)
	for i = 0; i < n; i++ {
		f.pos[i] = f.model.AddVar(fmt.Sprintf("pos_%d", i), solver.Continuous, 0, float64(n-1), 0)
	}
	for i = 1; i < n; i++ {
		for j = 1; j < n; j++ {
			if i == j {
				continue
			}
			f.model.AddConstraint(fmt.Sprintf("mtz_%d_%d", i, j), []solver.Term{
				{Var: f.pos[i], Coef: 1},
				{Var: f.pos[j], Coef: -1},
				{Var: f.arcs[i][j], Coef: big},
			}, solver.LessEq, big-1)
		}
	}

	return nil
}

func (f *mtzFormulation) Solve() (Result, error) {
	if f.model == nil {
		if err := f.Build(); err != nil {
			return Result{}, err
		}
	}

	return f.staticResult()
}

func (f *mtzFormulation) ExtractTour() ([]int, error) { return f.successorTour() }
