// Package tsp_test - shared fixtures for the formulation tests.
package tsp_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/katalvlaran/lvlath-tsp/solver"
	"github.com/stretchr/testify/require"
)

const (
	// objTol is the tolerance for comparing objectives across formulations.
	objTol = 1e-6
)

// fromMatrix wraps a distance matrix into a validated instance.
func fromMatrix(t *testing.T, name string, dist [][]float64) *instance.Instance {
	t.Helper()
	inst := &instance.Instance{
		Name:   name,
		N:      len(dist),
		Coords: make([]instance.Point, len(dist)),
		Dist:   dist,
	}
	require.NoError(t, inst.Validate())

	return inst
}

// square4 is the unit square with diagonals of 1.5: the only optimal cycle
// is 0-1-2-3-0 (either direction), length 4.
func square4(t *testing.T) *instance.Instance {
	return fromMatrix(t, "square4", [][]float64{
		{0, 1, 1.5, 1},
		{1, 0, 1, 1.5},
		{1.5, 1, 0, 1},
		{1, 1.5, 1, 0},
	})
}

// twoClusters5 has clusters {0,1} and {2,3,4}: arcs inside a cluster cost 1,
// arcs between clusters cost 10. The assignment optimum is the 2-cycle
// 0↔1 plus a 3-cycle over {2,3,4} (cost 5); the best tour costs 23.
func twoClusters5(t *testing.T) *instance.Instance {
	cluster := func(i int) int {
		if i < 2 {
			return 0
		}
		return 1
	}
	dist := make([][]float64, 5)
	for i := range dist {
		dist[i] = make([]float64, 5)
		for j := range dist[i] {
			switch {
			case i == j:
			case cluster(i) == cluster(j):
				dist[i][j] = 1
			default:
				dist[i][j] = 10
			}
		}
	}

	return fromMatrix(t, "clusters5", dist)
}

// randomAsymmetric returns an instance with independent integer arc costs.
func randomAsymmetric(t *testing.T, n int, seed int64) *instance.Instance {
	rng := rand.New(rand.NewSource(seed))
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = float64(1 + rng.Intn(50))
			}
		}
	}

	return fromMatrix(t, fmt.Sprintf("asym%d_%d", n, seed), dist)
}

// scriptedSolver ignores the model's constraints and answers every call
// with the same arc selection (given as a successor list), or with a fixed
// non-optimal status.
type scriptedSolver struct {
	next   []int
	status solver.Status
	calls  int
}

func (s *scriptedSolver) Solve(m *solver.Model) (solver.Solution, error) {
	s.calls++
	if s.status != solver.Optimal {
		return solver.Solution{Status: s.status}, nil
	}
	x := make([]float64, m.NumVars())
	for v := 0; v < m.NumVars(); v++ {
		var i, j int
		if _, err := fmt.Sscanf(m.Var(v).Name, "x_%d_%d", &i, &j); err != nil {
			continue
		}
		if s.next[i] == j {
			x[v] = 1
		}
	}

	return solver.Solution{Status: solver.Optimal, X: x, Objective: m.Objective(x), Nodes: 1}, nil
}
