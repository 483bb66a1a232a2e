package tsp

import (
	"fmt"
	"math"
)

// HeldKarpMaxCities bounds HeldKarp; its tables hold n·2ⁿ entries.
const HeldKarpMaxCities = 20

// HeldKarp solves the TSP exactly on dist with the Held–Karp dynamic
// program. It is independent of the LP machinery and serves as an oracle for
// the integer-programming formulations. Asymmetric matrices are supported;
// the diagonal is ignored.
//
// It returns the closed tour [0 … 0] (len n+1) and its cost. A single city
// yields [0 0] with cost 0.
//
// dp[mask][j] is the cheapest path that starts at 0, visits exactly the
// cities in mask (which always contains 0) and ends at j.
//
// Errors: ErrDegreeViolation for a non-square matrix, ErrTooManyCities for
// n > HeldKarpMaxCities.
//
// Time complexity:  O(n²·2ⁿ)
// Memory complexity: O(n·2ⁿ)
func HeldKarp(dist [][]float64) ([]int, float64, error) {
	n := len(dist)
	if n == 0 {
		return nil, 0, fmt.Errorf("%w: empty matrix", ErrDegreeViolation)
	}
	if n > HeldKarpMaxCities {
		return nil, 0, fmt.Errorf("%w: Held–Karp supports n ≤ %d, got %d", ErrTooManyCities, HeldKarpMaxCities, n)
	}
	for i := 0; i < n; i++ {
		if len(dist[i]) != n {
			return nil, 0, fmt.Errorf("%w: row %d length %d, want %d", ErrDegreeViolation, i, len(dist[i]), n)
		}
	}
	if n == 1 {
		return []int{0, 0}, 0, nil
	}

	allMask := (1 << n) - 1

	dp := make([][]float64, 1<<n)
	parent := make([][]int, 1<<n)
	for mask := 0; mask <= allMask; mask++ {
		dp[mask] = make([]float64, n)
		parent[mask] = make([]int, n)
		for j := 0; j < n; j++ {
			dp[mask][j] = math.Inf(1)
			parent[mask][j] = -1
		}
	}
	dp[1][0] = 0

	for mask := 1; mask <= allMask; mask += 2 { // odd masks contain city 0
		for j := 1; j < n; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			prev := mask ^ (1 << j)
			for k := 0; k < n; k++ {
				if prev&(1<<k) == 0 || math.IsInf(dp[prev][k], 1) {
					continue
				}
				if cand := dp[prev][k] + dist[k][j]; cand < dp[mask][j] {
					dp[mask][j] = cand
					parent[mask][j] = k
				}
			}
		}
	}

	best, last := math.Inf(1), -1
	for j := 1; j < n; j++ {
		if total := dp[allMask][j] + dist[j][0]; total < best {
			best, last = total, j
		}
	}

	tour := make([]int, n+1)
	mask, j := allMask, last
	for i := n - 1; i >= 1; i-- {
		tour[i] = j
		p := parent[mask][j]
		mask ^= 1 << j
		j = p
	}

	return tour, best, nil
}
