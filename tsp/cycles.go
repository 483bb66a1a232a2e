// Package tsp - cycle extraction from an integral arc selection.
//
// A selection satisfying the degree constraints is a permutation matrix:
// next[i] is the unique j with x[i][j] = 1. Following next from any city
// must come back to it, so the cities split into disjoint cycles.
package tsp

import "fmt"

// selectedTol is the cut-off above which an arc counts as selected.
const selectedTol = 0.5

// successors builds next[i] and checks out-degree = in-degree = 1.
//
// Complexity: O(n²).
func successors(sel ArcSelection) ([]int, error) {
	n := len(sel)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty selection", ErrDegreeViolation)
	}
	next := make([]int, n)
	indeg := make([]int, n)

	var i, j int
	for i = 0; i < n; i++ {
		if len(sel[i]) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrDegreeViolation, i, len(sel[i]), n)
		}
		next[i] = -1
		for j = 0; j < n; j++ {
			if sel[i][j] <= selectedTol {
				continue
			}
			if next[i] >= 0 {
				return nil, fmt.Errorf("%w: city %d has several successors", ErrDegreeViolation, i)
			}
			next[i] = j
			indeg[j]++
		}
	}
	if n == 1 && next[0] < 0 {
		next[0] = 0
		indeg[0] = 1
	}
	for i = 0; i < n; i++ {
		if next[i] < 0 {
			return nil, fmt.Errorf("%w: city %d has no successor", ErrDegreeViolation, i)
		}
		if indeg[i] != 1 {
			return nil, fmt.Errorf("%w: city %d has in-degree %d", ErrDegreeViolation, i, indeg[i])
		}
	}

	return next, nil
}

// ExtractCycles decomposes an integral selection into its disjoint cycles.
// Each cycle is listed in successor order starting at its smallest city, and
// cycles are ordered by that city; together they partition {0..n−1}.
// A single city forms the cycle [0].
//
// Errors: ErrDegreeViolation when the selection is not a permutation.
//
// Complexity: O(n²) to read the matrix, O(n) to walk.
func ExtractCycles(sel ArcSelection) ([][]int, error) {
	next, err := successors(sel)
	if err != nil {
		return nil, err
	}

	var (
		n       = len(next)
		visited = make([]bool, n)
		cycles  [][]int
		start   int
	)
	for start = 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var cycle []int
		for v := start; !visited[v]; v = next[v] {
			visited[v] = true
			cycle = append(cycle, v)
		}
		cycles = append(cycles, cycle)
	}

	return cycles, nil
}

// SuccessorTour walks the selection from city 0 and returns the closed tour
// [0 … 0]. The walk stops on returning to 0 or after n steps.
//
// Errors: ErrDegreeViolation for a non-permutation, ErrNotHamiltonian when
// the walk closes early.
func SuccessorTour(sel ArcSelection) ([]int, error) {
	next, err := successors(sel)
	if err != nil {
		return nil, err
	}

	n := len(next)
	tour := make([]int, 0, n+1)
	tour = append(tour, 0)
	for v := next[0]; v != 0 && len(tour) < n; v = next[v] {
		tour = append(tour, v)
	}
	// next is a permutation, so a walk of n cities closes on 0.
	if len(tour) != n {
		return nil, fmt.Errorf("%w: walk from 0 visits %d of %d cities", ErrNotHamiltonian, len(tour), n)
	}

	return append(tour, 0), nil
}
