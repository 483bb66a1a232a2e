// Package tsp - tour utilities.
//
// Helpers operating on closed tours (len n+1, tour[0]==tour[n]):
//   - ValidateTour: Hamiltonian-cycle invariants.
//   - TourCost: sum of arc distances along the tour.
//   - SameCycle: equality up to rotation and reflection.
//
// No logging and no panics on user input; failures are sentinel errors from types.go.
package tsp

import "fmt"

// ValidateTour enforces len(tour) == n+1, tour[0] == tour[n] == 0 and that
// every city 0..n−1 appears exactly once in tour[0..n−1].
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int) error {
	if n <= 0 || len(tour) != n+1 {
		return fmt.Errorf("%w: tour length %d for n=%d", ErrNotHamiltonian, len(tour), n)
	}
	if tour[0] != 0 || tour[n] != 0 {
		return fmt.Errorf("%w: tour must start and end at 0", ErrNotHamiltonian)
	}

	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n || seen[v] {
			return fmt.Errorf("%w: city %d out of range or repeated", ErrNotHamiltonian, v)
		}
		seen[v] = true
	}

	return nil
}

// TourCost sums dist[tour[i]][tour[i+1]] over the closed tour.
//
// Complexity: O(n).
func TourCost(dist [][]float64, tour []int) (float64, error) {
	if err := ValidateTour(tour, len(dist)); err != nil {
		return 0, err
	}

	var (
		sum float64
		i   int
	)
	for i = 0; i+1 < len(tour); i++ {
		if tour[i] == tour[i+1] {
			continue // single-city tour
		}
		sum += dist[tour[i]][tour[i+1]]
	}

	return sum, nil
}

// SameCycle reports whether two closed tours describe the same cycle up to
// rotation and reflection.
//
// Complexity: O(n).
func SameCycle(a, b []int) bool {
	if len(a) != len(b) || len(a) < 2 {
		return false
	}
	n := len(a) - 1
	if a[0] != a[n] || b[0] != b[n] {
		return false
	}

	p := -1
	for j := 0; j < n; j++ {
		if b[j] == a[0] {
			p = j
			break
		}
	}
	if p < 0 {
		return false
	}

	forward, backward := true, true
	for i := 0; i < n; i++ {
		if a[i] != b[(p+i)%n] {
			forward = false
		}
		if a[i] != b[(p-i+n)%n] {
			backward = false
		}
	}

	return forward || backward
}
