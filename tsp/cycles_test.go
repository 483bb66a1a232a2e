package tsp_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvlath-tsp/tsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// permutationSelection turns a successor list into a 0/1 matrix.
func permutationSelection(next []int) tsp.ArcSelection {
	sel := make(tsp.ArcSelection, len(next))
	for i := range sel {
		sel[i] = make([]float64, len(next))
		sel[i][next[i]] = 1
	}

	return sel
}

func TestExtractCycles_TwoSubtours(t *testing.T) {
	// 0→1→0, 2→4→3→2
	cycles, err := tsp.ExtractCycles(permutationSelection([]int{1, 0, 4, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}, {2, 4, 3}}, cycles)
}

func TestExtractCycles_Hamiltonian(t *testing.T) {
	cycles, err := tsp.ExtractCycles(permutationSelection([]int{2, 0, 3, 1}))
	require.NoError(t, err)
	require.Len(t, cycles, 1)
	assert.Equal(t, []int{0, 2, 3, 1}, cycles[0])
}

func TestExtractCycles_FractionalNoise(t *testing.T) {
	sel := permutationSelection([]int{1, 2, 0})
	sel[0][1] = 0.9999999
	sel[0][2] = 1e-9
	cycles, err := tsp.ExtractCycles(sel)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}}, cycles)
}

func TestExtractCycles_SingleCity(t *testing.T) {
	cycles, err := tsp.ExtractCycles(tsp.ArcSelection{{0}})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}}, cycles)
}

func TestExtractCycles_PartitionProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(12)
		next := rng.Perm(n)
		cycles, err := tsp.ExtractCycles(permutationSelection(next))
		require.NoError(t, err)

		seen := make([]int, n)
		for _, c := range cycles {
			require.NotEmpty(t, c)
			for k, v := range c {
				seen[v]++
				// consecutive members follow the successor relation, and the last closes the loop
				assert.Equal(t, c[(k+1)%len(c)], next[v])
				assert.GreaterOrEqual(t, v, c[0], "cycles start at their smallest city")
			}
		}
		for v, cnt := range seen {
			assert.Equal(t, 1, cnt, "city %d must belong to exactly one cycle", v)
		}
	}
}

func TestExtractCycles_DegreeViolations(t *testing.T) {
	cases := map[string]tsp.ArcSelection{
		"empty":         {},
		"ragged":        {{0, 1}, {1}},
		"no successor":  {{0, 0}, {1, 0}},
		"two out":       {{0, 1, 1}, {1, 0, 0}, {1, 0, 0}},
		"in-degree two": {{0, 1, 0}, {0, 0, 1}, {0, 1, 0}},
	}
	for name, sel := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tsp.ExtractCycles(sel)
			require.ErrorIs(t, err, tsp.ErrDegreeViolation)
		})
	}
}

func TestSuccessorTour(t *testing.T) {
	tour, err := tsp.SuccessorTour(permutationSelection([]int{3, 0, 1, 2}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 2, 1, 0}, tour)

	_, err = tsp.SuccessorTour(permutationSelection([]int{1, 0, 3, 2}))
	require.ErrorIs(t, err, tsp.ErrNotHamiltonian)

	tour, err = tsp.SuccessorTour(tsp.ArcSelection{{0}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, tour)
}

func TestTourHelpers(t *testing.T) {
	dist := [][]float64{{0, 1, 4}, {2, 0, 1}, {1, 5, 0}}
	c, err := tsp.TourCost(dist, []int{0, 1, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, 3.0, c)

	_, err = tsp.TourCost(dist, []int{0, 1, 1, 0})
	require.ErrorIs(t, err, tsp.ErrNotHamiltonian)
	require.ErrorIs(t, tsp.ValidateTour([]int{1, 0, 2, 1}, 3), tsp.ErrNotHamiltonian)

	assert.True(t, tsp.SameCycle([]int{0, 1, 2, 3, 0}, []int{2, 3, 0, 1, 2}))
	assert.True(t, tsp.SameCycle([]int{0, 1, 2, 3, 0}, []int{0, 3, 2, 1, 0}))
	assert.False(t, tsp.SameCycle([]int{0, 1, 2, 3, 0}, []int{0, 2, 1, 3, 0}))
}
