// Package tsp - Dantzig–Fulkerson–Johnson formulation, all subsets up front.
//
// For every subset S of cities with 2 ≤ |S| ≤ n−1:
//
//	Σ_{i,j ∈ S, i≠j} x[i][j] ≤ |S| − 1.
//
// There are 2ⁿ − n − 2 such subsets. The builder writes all of them and does
// not police n: bounding it is the caller's job (Options.MaxEnumCities in
// Solve, max_enum_cities in the benchmark). Only the representational limit
// of the subset masks is enforced here.
package tsp

import (
	"fmt"
	"math/bits"

	"github.com/katalvlaran/lvlath-tsp/solver"
)

type dfjEnumFormulation struct {
	session
}

func (f *dfjEnumFormulation) Kind() Kind { return DFJEnumerated }

func (f *dfjEnumFormulation) Build() error {
	n := f.inst.N
	if n > maxSubsetCities {
		return fmt.Errorf("%w: %d cities, subset masks hold %d", ErrTooManyCities, n, maxSubsetCities)
	}
	f.buildAssignment()

	var (
		full    = uint64(1)<<uint(n) - 1
		mask    uint64
		members = make([]int, 0, n)
		size    int
		i       int
	)
	for mask = 1; mask < full; mask++ {
		size = bits.OnesCount64(mask)
		if size < 2 {
			continue
		}
		members = members[:0]
		for i = 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				members = append(members, i)
			}
		}
		f.model.AddConstraint(fmt.Sprintf("sec_%x", mask), f.arcs.within(members), solver.LessEq, float64(size-1))
	}

	return nil
}

func (f *dfjEnumFormulation) Solve() (Result, error) {
	if f.model == nil {
		if err := f.Build(); err != nil {
			return Result{}, err
		}
	}

	return f.staticResult()
}

func (f *dfjEnumFormulation) ExtractTour() ([]int, error) { return f.successorTour() }
