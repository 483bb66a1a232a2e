// Package solver - dense two-phase tableau simplex.
//
// Solves
//
//	minimize cᵀy  s.t.  A·y = b,  y ≥ 0,  b ≥ 0
//
// on a gonum mat.Dense tableau [A | b]. Rows that carry a +1 slack start
// with that slack basic; every other row gets an artificial column.
// Phase 1 minimises the sum of artificials, phase 2 the real cost with
// artificials barred from entering.
//
// Pricing is Dantzig (most negative reduced cost). After blandAfter
// consecutive degenerate pivots the method switches to Bland's rule
// (lowest eligible index, ratio ties to the lowest basic index) for the rest
// of the phase, which cannot cycle. A pivot cap and an optional deadline
// bound every call.
package solver

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// defaultOptTol is the reduced-cost threshold for optimality.
	defaultOptTol = 1e-9

	// pivotTol is the smallest tableau entry accepted as a pivot.
	pivotTol = 1e-9

	// feasTol bounds the phase-1 residual of a feasible problem, relative
	// to max(1, max b).
	feasTol = 1e-7

	// blandAfter is the degenerate-pivot streak that switches pricing to
	// Bland's rule.
	blandAfter = 32
)

// errDeadline is returned by the pivot loop when the deadline passes.
var errDeadline = errors.New("solver: deadline reached")

// tableau holds one LP in canonical form. Column n of t is the right-hand
// side; rc has n+1 entries, the last one unused.
type tableau struct {
	t       *mat.Dense
	rc      []float64
	basis   []int
	m, n    int
	artFrom int    // artificial columns are [artFrom, n)
	barred  []bool // columns that may not enter

	optTol   float64
	deadline time.Time
	pivots   int
	maxPiv   int
}

// newTableau builds [A | b] plus artificials. a is m×k (dense rows), slack
// is the per-row index of a +1 slack column usable as initial basis (-1
// when none).
func newTableau(a [][]float64, b []float64, slack []int, k int) *tableau {
	m := len(a)
	nart := 0
	for i := 0; i < m; i++ {
		if slack[i] < 0 {
			nart++
		}
	}
	n := k + nart
	tb := &tableau{
		t:       mat.NewDense(max(m, 1), n+1, nil),
		rc:      make([]float64, n+1),
		basis:   make([]int, m),
		m:       m,
		n:       n,
		artFrom: k,
		barred:  make([]bool, n),
		optTol:  defaultOptTol,
		maxPiv:  50*(m+n) + 1000,
	}

	art := k
	for i := 0; i < m; i++ {
		row := tb.t.RawRowView(i)
		copy(row, a[i])
		row[n] = b[i]
		if slack[i] >= 0 {
			tb.basis[i] = slack[i]
			continue
		}
		row[art] = 1
		tb.basis[i] = art
		art++
	}

	return tb
}

// price sets the reduced costs for cost (length n).
func (tb *tableau) price(cost []float64) {
	copy(tb.rc, cost)
	tb.rc[tb.n] = 0
	for i := 0; i < tb.m; i++ {
		if cb := cost[tb.basis[i]]; cb != 0 {
			floats.AddScaled(tb.rc, -cb, tb.t.RawRowView(i))
		}
	}
}

// pivot makes column j basic in row r.
func (tb *tableau) pivot(r, j int) {
	pr := tb.t.RawRowView(r)
	floats.Scale(1/pr[j], pr)
	pr[j] = 1

	for i := 0; i < tb.m; i++ {
		if i == r {
			continue
		}
		row := tb.t.RawRowView(i)
		if f := row[j]; f != 0 {
			floats.AddScaled(row, -f, pr)
			row[j] = 0
			if v := row[tb.n]; v < 0 && v > -feasTol {
				row[tb.n] = 0
			}
		}
	}
	if f := tb.rc[j]; f != 0 {
		floats.AddScaled(tb.rc, -f, pr)
		tb.rc[j] = 0
	}
	tb.basis[r] = j
	tb.pivots++
}

// optimize runs primal simplex from the current (feasible) basis for cost.
// It returns Optimal, Unbounded, errDeadline or an ErrNumerical error.
func (tb *tableau) optimize(cost []float64) (Status, error) {
	tb.price(cost)

	var (
		bland     bool
		streak    int
		rhs       = tb.n
		j, i, r   int
		best, a   float64
		ratio     float64
		bestRatio float64
	)
	for {
		if tb.pivots >= tb.maxPiv {
			return 0, fmt.Errorf("%w: pivot limit %d reached", ErrNumerical, tb.maxPiv)
		}
		if !tb.deadline.IsZero() && time.Now().After(tb.deadline) {
			return 0, errDeadline
		}

		// entering column
		enter := -1
		best = -tb.optTol
		for j = 0; j < tb.n; j++ {
			if tb.barred[j] || tb.rc[j] >= best {
				continue
			}
			enter = j
			if bland {
				break
			}
			best = tb.rc[j]
		}
		if enter < 0 {
			return Optimal, nil
		}

		// leaving row
		r = -1
		bestRatio = math.Inf(1)
		for i = 0; i < tb.m; i++ {
			row := tb.t.RawRowView(i)
			if a = row[enter]; a <= pivotTol {
				continue
			}
			ratio = row[rhs] / a
			switch {
			case r < 0 || ratio < bestRatio-pivotTol:
				r, bestRatio = i, ratio
			case ratio <= bestRatio+pivotTol:
				if bland {
					if tb.basis[i] < tb.basis[r] {
						r, bestRatio = i, ratio
					}
				} else if a > tb.t.At(r, enter) {
					r, bestRatio = i, ratio
				}
			}
		}
		if r < 0 {
			return Unbounded, nil
		}

		if bestRatio <= pivotTol {
			streak++
			if streak >= blandAfter {
				bland = true
			}
		} else {
			streak = 0
		}
		tb.pivot(r, enter)
	}
}

// solve runs both phases. On Optimal it returns y over the first artFrom
// columns.
func (tb *tableau) solve(cost []float64) (Status, []float64, error) {
	k := tb.artFrom

	if tb.n > k {
		phase1 := make([]float64, tb.n)
		for j := k; j < tb.n; j++ {
			phase1[j] = 1
		}
		if _, err := tb.optimize(phase1); err != nil {
			return 0, nil, err
		}

		scale := 1.0
		for i := 0; i < tb.m; i++ {
			scale = math.Max(scale, math.Abs(tb.t.At(i, tb.n)))
		}
		residual := 0.0
		for i := 0; i < tb.m; i++ {
			if tb.basis[i] >= k {
				residual += tb.t.At(i, tb.n)
			}
		}
		if residual > feasTol*scale {
			return Infeasible, nil, nil
		}

		// Drive artificials out of the basis; a row with no usable entry is
		// redundant and keeps its artificial at zero.
		for i := 0; i < tb.m; i++ {
			if tb.basis[i] < k {
				continue
			}
			row := tb.t.RawRowView(i)
			piv, big := -1, pivotTol
			for j := 0; j < k; j++ {
				if v := math.Abs(row[j]); v > big {
					piv, big = j, v
				}
			}
			if piv >= 0 {
				row[tb.n] = 0
				tb.pivot(i, piv)
			}
		}
		for j := k; j < tb.n; j++ {
			tb.barred[j] = true
		}
	}

	phase2 := make([]float64, tb.n)
	copy(phase2, cost)
	status, err := tb.optimize(phase2)
	if err != nil || status != Optimal {
		return status, nil, err
	}

	y := make([]float64, k)
	for i := 0; i < tb.m; i++ {
		if j := tb.basis[i]; j < k {
			y[j] = math.Max(0, tb.t.At(i, tb.n))
		}
	}

	return Optimal, y, nil
}
