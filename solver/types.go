package solver

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrModel is returned for malformed models.
	ErrModel = errors.New("solver: malformed model")

	// ErrNumerical is returned when the LP engine breaks down numerically.
	ErrNumerical = errors.New("solver: numerical failure")
)

// Status is the outcome of a solve.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Unbounded
	TimedOut
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case TimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Solution is what a Solver returns. X and Objective are set only when
// Status == Optimal.
type Solution struct {
	Status    Status
	X         []float64
	Objective float64

	// Nodes is the number of LP relaxations solved (1 for a pure LP).
	Nodes int
}

// Solver is the contract every LP/MILP engine satisfies.
type Solver interface {
	Solve(m *Model) (Solution, error)
}

// Config carries engine settings explicitly; there is no package-level
// solver state.
type Config struct {
	// Tolerance is the simplex's reduced-cost optimality tolerance.
	// 0 selects 1e-9.
	Tolerance float64 `yaml:"tolerance"`

	// IntegralityTolerance is how far from 0/1 a binary may sit and still
	// count as integral.
	IntegralityTolerance float64 `yaml:"integrality_tolerance"`

	// TimeLimit bounds one Solve call; 0 means unlimited. Exceeding it
	// yields TimedOut.
	TimeLimit time.Duration `yaml:"time_limit"`

	// MaxNodes bounds branch-and-bound nodes per Solve; 0 means unlimited.
	// Exceeding it yields TimedOut.
	MaxNodes int `yaml:"max_nodes"`
}

// Default tolerances.
const (
	DefaultIntegralityTolerance = 1e-6

	// pruneEps is the slack used when comparing a node bound to the incumbent.
	pruneEps = 1e-9
)

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{IntegralityTolerance: DefaultIntegralityTolerance}
}

func (c Config) validate() error {
	if c.Tolerance < 0 || c.IntegralityTolerance < 0 || c.IntegralityTolerance >= 0.5 {
		return fmt.Errorf("%w: tolerances out of range", ErrModel)
	}
	if c.TimeLimit < 0 || c.MaxNodes < 0 {
		return fmt.Errorf("%w: negative limits", ErrModel)
	}

	return nil
}
