// Package solver - conversion of a bounded Model to the tableau's form.
//
// The tableau solves
//
//	minimize cᵀy  s.t.  A·y = b,  y ≥ 0,  b ≥ 0
//
// The conversion below:
//  1. shifts every variable by its lower bound (x = lo + y),
//  2. fixes variables with lo == hi and variables that appear in no
//     constraint, dropping their columns,
//  3. turns finite upper bounds into y ≤ hi − lo rows, except where a
//     nonnegative ≤ or = row already implies the bound (for an assignment
//     skeleton this removes every x ≤ 1 row),
//  4. adds one slack (≤) or surplus (≥) column per inequality row and
//     flips rows so that b ≥ 0.
//
// Dependent and inconsistent equality rows are left to phase 1.
package solver

import (
	"errors"
	"math"
	"time"
)

// rowTol decides whether an all-zero row's right-hand side holds and
// whether a row implies a bound.
const rowTol = 1e-9

// stdRow is one constraint row restricted to the kept columns.
type stdRow struct {
	coef  []float64
	sense Sense
	rhs   float64
}

// lpOutcome is the result of a single LP relaxation.
type lpOutcome struct {
	status Status
	x      []float64
	z      float64
}

// solveLP solves the LP relaxation of m under the bounds lo/hi (which
// override the model's own bounds, so branch-and-bound can tighten them).
// A non-zero deadline that passes mid-solve yields TimedOut.
//
// Complexity: O(m·n) to build, plus O(m·n) per pivot.
func solveLP(m *Model, lo, hi []float64, tol float64, deadline time.Time) (lpOutcome, error) {
	nv := m.NumVars()

	// Stage 1: decide which variables keep a column.
	used := make([]bool, nv)
	var (
		k int
		t Term
	)
	for k = 0; k < m.NumConstraints(); k++ {
		for _, t = range m.cons[k].Terms {
			if t.Coef != 0 {
				used[t.Var] = true
			}
		}
	}

	x := make([]float64, nv)
	colOf := make([]int, nv) // var -> column, -1 when fixed
	var (
		cols []int // column -> var
		j    int
	)
	for j = 0; j < nv; j++ {
		x[j] = lo[j]
		colOf[j] = -1
		switch {
		case hi[j] == lo[j]:
			// fixed at lo
		case !used[j]:
			if m.vars[j].Cost < 0 {
				if math.IsInf(hi[j], 1) {
					return lpOutcome{status: Unbounded}, nil
				}
				x[j] = hi[j]
			}
		default:
			colOf[j] = len(cols)
			cols = append(cols, j)
		}
	}
	nc := len(cols)

	// Stage 2: constraint rows over kept columns, shifted by lower bounds.
	var (
		rows []stdRow
		c    Constraint
	)
	for k = 0; k < m.NumConstraints(); k++ {
		c = m.cons[k]
		r := stdRow{coef: make([]float64, nc), sense: c.Sense, rhs: c.RHS}
		nonzero := false
		for _, t = range c.Terms {
			r.rhs -= t.Coef * x[t.Var]
			if col := colOf[t.Var]; col >= 0 {
				r.coef[col] += t.Coef
			}
		}
		for j = 0; j < nc; j++ {
			if r.coef[j] != 0 {
				nonzero = true
				break
			}
		}
		if !nonzero {
			if !trivialRowHolds(r.sense, r.rhs) {
				return lpOutcome{status: Infeasible}, nil
			}
			continue
		}
		rows = append(rows, r)
	}

	if nc == 0 {
		return lpOutcome{status: Optimal, x: x, z: m.Objective(x)}, nil
	}

	// Stage 3: finite upper bounds become y_j ≤ hi−lo unless implied.
	implied := impliedBounds(rows, nc)
	for j = 0; j < nc; j++ {
		v := cols[j]
		if math.IsInf(hi[v], 1) || implied[j] <= hi[v]-lo[v]+rowTol {
			continue
		}
		r := stdRow{coef: make([]float64, nc), sense: LessEq, rhs: hi[v] - lo[v]}
		r.coef[j] = 1
		rows = append(rows, r)
	}

	// Stage 4: [A | ±I] with b ≥ 0.
	var nslack int
	for _, r := range rows {
		if r.sense != Equal {
			nslack++
		}
	}
	var (
		width = nc + nslack
		a     = make([][]float64, len(rows))
		b     = make([]float64, len(rows))
		basic = make([]int, len(rows))
		cost  = make([]float64, width)
		slack = nc
		i     int
	)
	for j = 0; j < nc; j++ {
		cost[j] = m.vars[cols[j]].Cost
	}
	for i = range rows {
		r := rows[i]
		sign := 1.0
		if r.rhs < 0 {
			sign = -1
		}
		a[i] = make([]float64, width)
		for j = 0; j < nc; j++ {
			a[i][j] = sign * r.coef[j]
		}
		b[i] = sign * r.rhs
		basic[i] = -1
		switch r.sense {
		case LessEq:
			a[i][slack] = sign
		case GreaterEq:
			a[i][slack] = -sign
		}
		if r.sense != Equal {
			if a[i][slack] > 0 {
				basic[i] = slack
			}
			slack++
		}
	}

	tb := newTableau(a, b, basic, width)
	tb.deadline = deadline
	if tol > 0 {
		tb.optTol = tol
	}
	status, y, err := tb.solve(cost)
	switch {
	case errors.Is(err, errDeadline):
		return lpOutcome{status: TimedOut}, nil
	case err != nil:
		return lpOutcome{}, err
	case status != Optimal:
		return lpOutcome{status: status}, nil
	}

	for j = 0; j < nc; j++ {
		v := cols[j]
		x[v] = lo[v] + y[j]
	}

	return lpOutcome{status: Optimal, x: x, z: m.Objective(x)}, nil
}

// impliedBounds returns, per column, the tightest upper bound implied by a
// ≤ or = row whose coefficients are all nonnegative (+Inf when none).
func impliedBounds(rows []stdRow, nc int) []float64 {
	ub := make([]float64, nc)
	for j := range ub {
		ub[j] = math.Inf(1)
	}

	var j int
	for _, r := range rows {
		if r.sense == GreaterEq || r.rhs < 0 {
			continue
		}
		nonneg := true
		for j = 0; j < nc; j++ {
			if r.coef[j] < 0 {
				nonneg = false
				break
			}
		}
		if !nonneg {
			continue
		}
		for j = 0; j < nc; j++ {
			if r.coef[j] > 0 {
				ub[j] = math.Min(ub[j], r.rhs/r.coef[j])
			}
		}
	}

	return ub
}

// trivialRowHolds evaluates 0 (sense) rhs.
func trivialRowHolds(s Sense, rhs float64) bool {
	switch s {
	case LessEq:
		return rhs >= -rowTol
	case GreaterEq:
		return rhs <= rowTol
	default:
		return math.Abs(rhs) <= rowTol
	}
}
