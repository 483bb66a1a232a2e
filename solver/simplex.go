// Package solver - Simplex: tableau LP relaxations + depth-first branch-and-bound.
//
// Search:
//  1. Solve the root relaxation. Infeasible/Unbounded there is final.
//  2. Pop the deepest open node, solve its relaxation, prune when its bound
//     z ≥ incumbent − pruneEps.
//  3. If every binary is within IntegralityTolerance of 0/1 the node is a
//     new incumbent; otherwise branch on the most fractional binary (ties →
//     lowest index) by fixing it to 0 and to 1. The child nearest the LP
//     value is explored first.
//  4. TimeLimit / MaxNodes end the search with TimedOut; a partial incumbent
//     is not reported, since it is not proven optimal. The deadline is also
//     checked on every pivot, so one long relaxation cannot outlive it.
//
// Binaries in the returned assignment are snapped to exactly 0 or 1.
package solver

import (
	"fmt"
	"math"
	"time"
)

// Simplex is the bundled Solver. The zero value is not usable; call
// NewSimplex.
type Simplex struct {
	cfg Config
}

var _ Solver = (*Simplex)(nil)

// NewSimplex returns an engine with cfg. Zero tolerances are replaced by
// their defaults.
func NewSimplex(cfg Config) (*Simplex, error) {
	if cfg.IntegralityTolerance == 0 {
		cfg.IntegralityTolerance = DefaultIntegralityTolerance
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Simplex{cfg: cfg}, nil
}

// Config returns the engine settings.
func (s *Simplex) Config() Config { return s.cfg }

// bbNode is an open branch-and-bound subproblem: the model's bounds with
// some binaries fixed.
type bbNode struct {
	lo, hi []float64
}

// Solve implements Solver.
func (s *Simplex) Solve(m *Model) (Solution, error) {
	if m == nil {
		return Solution{}, fmt.Errorf("%w: nil model", ErrModel)
	}
	if err := m.Validate(); err != nil {
		return Solution{}, err
	}

	var deadline time.Time
	if s.cfg.TimeLimit > 0 {
		deadline = time.Now().Add(s.cfg.TimeLimit)
	}

	nv := m.NumVars()
	root := bbNode{lo: make([]float64, nv), hi: make([]float64, nv)}
	var j int
	for j = 0; j < nv; j++ {
		root.lo[j] = m.vars[j].Lower
		root.hi[j] = m.vars[j].Upper
	}

	var (
		stack     = []bbNode{root}
		incumbent *lpOutcome
		nodes     int
	)
	for len(stack) > 0 {
		if s.cfg.MaxNodes > 0 && nodes >= s.cfg.MaxNodes {
			return Solution{Status: TimedOut, Nodes: nodes}, nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return Solution{Status: TimedOut, Nodes: nodes}, nil
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out, err := solveLP(m, node.lo, node.hi, s.cfg.Tolerance, deadline)
		nodes++
		if err != nil {
			return Solution{Nodes: nodes}, err
		}
		if out.status == TimedOut {
			return Solution{Status: TimedOut, Nodes: nodes}, nil
		}
		if nodes == 1 && out.status != Optimal {
			return Solution{Status: out.status, Nodes: nodes}, nil
		}
		if out.status != Optimal {
			// Infeasible child; an unbounded child cannot occur once the root is bounded.
			continue
		}
		if incumbent != nil && out.z >= incumbent.z-pruneEps {
			continue
		}

		branch := s.mostFractional(m, out.x)
		if branch < 0 {
			snapBinaries(m, out.x)
			out.z = m.Objective(out.x)
			cand := out
			incumbent = &cand
			continue
		}

		down := bbNode{lo: append([]float64(nil), node.lo...), hi: append([]float64(nil), node.hi...)}
		up := bbNode{lo: append([]float64(nil), node.lo...), hi: append([]float64(nil), node.hi...)}
		down.hi[branch] = 0
		up.lo[branch] = 1
		// LIFO: the child pushed last is explored first.
		if out.x[branch] >= 0.5 {
			stack = append(stack, down, up)
		} else {
			stack = append(stack, up, down)
		}
	}

	if incumbent == nil {
		return Solution{Status: Infeasible, Nodes: nodes}, nil
	}

	return Solution{Status: Optimal, X: incumbent.x, Objective: incumbent.z, Nodes: nodes}, nil
}

// mostFractional returns the binary variable farthest from integrality, or
// -1 when all binaries are integral within tolerance.
func (s *Simplex) mostFractional(m *Model, x []float64) int {
	var (
		best     = -1
		bestDist = s.cfg.IntegralityTolerance
		j        int
	)
	for j = range m.vars {
		if m.vars[j].Domain != Binary {
			continue
		}
		d := math.Abs(x[j] - math.Round(x[j]))
		if d > bestDist {
			best, bestDist = j, d
		}
	}

	return best
}

func snapBinaries(m *Model, x []float64) {
	for j := range m.vars {
		if m.vars[j].Domain == Binary {
			x[j] = math.Round(x[j])
		}
	}
}
