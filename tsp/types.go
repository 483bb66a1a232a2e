package tsp

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/lvlath-tsp/solver"
)

// Sentinel errors. Wrap with fmt.Errorf("ctx: %w", ErrX) at boundaries;
// callers match with errors.Is.
var (
	// ErrSolverFault is matched by every *SolverFault.
	ErrSolverFault = errors.New("tsp: solver fault")

	// ErrScaleLimitExceeded is the caller-side policy error for running the
	// enumerated DFJ formulation above Options.MaxEnumCities.
	ErrScaleLimitExceeded = errors.New("tsp: instance too large for enumerated DFJ")

	// ErrTooManyCities is returned when n exceeds what an algorithm can
	// represent at all (subset masks, DP tables).
	ErrTooManyCities = errors.New("tsp: too many cities")

	// ErrDegreeViolation is returned by ExtractCycles when a city does not
	// have exactly one selected outgoing and one selected incoming arc.
	ErrDegreeViolation = errors.New("tsp: arc selection violates degree constraints")

	// ErrNotHamiltonian is returned when a successor walk from city 0 closes
	// before visiting every city.
	ErrNotHamiltonian = errors.New("tsp: selection is not a Hamiltonian cycle")

	// ErrNoTour is returned by ExtractTour before a successful integral solve
	// or after a relaxed one.
	ErrNoTour = errors.New("tsp: no integral tour available")

	// ErrRelaxationUnsupported is returned when a relaxed DFJIterative is
	// requested; cycle extraction needs an integral selection.
	ErrRelaxationUnsupported = errors.New("tsp: formulation has no relaxed variant")

	// ErrRoundLimit is returned when the cutting-plane loop hits
	// Options.MaxRounds before converging.
	ErrRoundLimit = errors.New("tsp: cutting-plane round limit reached")

	// ErrUnknownFormulation is returned for an unknown Kind or selector code.
	ErrUnknownFormulation = errors.New("tsp: unknown formulation")

	// ErrBadOptions is returned for inconsistent Options.
	ErrBadOptions = errors.New("tsp: invalid options")
)

// SolverFault reports an engine result that contradicts the model it was
// given: a non-optimal status on a model feasible by construction, or a
// selection that violates constraints already present. It is never retried.
type SolverFault struct {
	Kind   Kind
	Status solver.Status
	Detail string
}

func (e *SolverFault) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("tsp: %s: solver fault (status %s): %s", e.Kind, e.Status, e.Detail)
	}

	return fmt.Sprintf("tsp: %s: solver fault (status %s)", e.Kind, e.Status)
}

// Is makes every SolverFault match ErrSolverFault.
func (e *SolverFault) Is(target error) bool { return target == ErrSolverFault }

// Kind selects a formulation.
type Kind int

const (
	MTZ Kind = iota
	DFJEnumerated
	DFJIterative
)

// Kinds lists every formulation in benchmark order.
var Kinds = []Kind{MTZ, DFJEnumerated, DFJIterative}

// String returns the label used in reports.
func (k Kind) String() string {
	switch k {
	case MTZ:
		return "MTZ"
	case DFJEnumerated:
		return "DFJ_enum"
	case DFJIterative:
		return "DFJ_iter"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String (case-sensitive).
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFormulation, s)
}

// Defaults.
const (
	// DefaultMaxEnumCities caps DFJEnumerated in Solve and the benchmark.
	DefaultMaxEnumCities = 15

	// maxSubsetCities bounds the uint64 subset masks of the enumerated builder.
	maxSubsetCities = 62
)

// Options configure one solve session.
type Options struct {
	// Relaxed replaces binary arc variables by continuous ones in [0,1].
	Relaxed bool

	// Solver is the LP/MILP engine. nil means solver.NewSimplex(solver.DefaultConfig()).
	Solver solver.Solver

	// MaxEnumCities is the largest n Solve accepts for DFJEnumerated.
	// 0 means DefaultMaxEnumCities.
	MaxEnumCities int

	// MaxRounds bounds Solving visits of the cutting-plane loop; 0 means
	// unlimited.
	MaxRounds int
}

// DefaultOptions returns integral solving with the bundled engine.
func DefaultOptions() Options {
	return Options{MaxEnumCities: DefaultMaxEnumCities}
}

func (o Options) maxEnumCities() int {
	if o.MaxEnumCities == 0 {
		return DefaultMaxEnumCities
	}

	return o.MaxEnumCities
}

func (o Options) validate() error {
	if o.MaxEnumCities < 0 || o.MaxRounds < 0 {
		return fmt.Errorf("%w: negative limit", ErrBadOptions)
	}

	return nil
}

func (o Options) engine() (solver.Solver, error) {
	if o.Solver != nil {
		return o.Solver, nil
	}

	return solver.NewSimplex(solver.DefaultConfig())
}

// Round is one Solving+Extracting pass of the cutting-plane loop.
type Round struct {
	// Objective of the model solved in this round.
	Objective float64

	// Cycles the selection decomposed into.
	Cycles [][]int

	// CutsAdded is the number of subtour constraints added after this round
	// (0 for the converging round).
	CutsAdded int

	// Elapsed is the engine time of this round.
	Elapsed time.Duration
}

// Result is the outcome of a solve session.
type Result struct {
	Kind    Kind
	Relaxed bool

	// Status is solver.Optimal for every successful solve.
	Status solver.Status

	// Objective is the sum of selected arc distances (fractional for
	// relaxations).
	Objective float64

	// Tour is closed and starts at city 0; nil for relaxations.
	Tour []int

	// Elapsed is the engine wall-clock time, summed over rounds.
	Elapsed time.Duration

	// Iterations is the number of engine calls.
	Iterations int

	// Model size at the end of the session (diagnostic only).
	NumVars        int
	NumConstraints int

	// Rounds traces the cutting-plane loop; nil for static formulations.
	Rounds []Round
}
