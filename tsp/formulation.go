package tsp

import (
	"fmt"

	"github.com/katalvlaran/lvlath-tsp/instance"
)

// Formulation is one integer-programming model of the TSP over a fixed
// instance. An instance of a Formulation is a single solve session: it owns
// its model and constraint set exclusively and is not safe for concurrent
// use.
type Formulation interface {
	// Kind identifies the formulation.
	Kind() Kind

	// Build constructs the model. Calling it again starts from scratch.
	Build() error

	// Solve runs the engine (building first when needed) and reports the
	// result. Errors: *SolverFault, ErrRoundLimit, engine errors.
	Solve() (Result, error)

	// ExtractTour returns the closed tour of the last integral solve.
	// Errors: ErrNoTour before a solve or after a relaxed one.
	ExtractTour() ([]int, error)
}

// New returns the formulation selected by kind over inst.
//
// Errors: instance validation errors, ErrBadOptions, ErrUnknownFormulation,
// ErrRelaxationUnsupported (relaxed DFJIterative).
func New(kind Kind, inst *instance.Instance, opts Options) (Formulation, error) {
	if kind == DFJIterative && opts.Relaxed {
		return nil, ErrRelaxationUnsupported
	}
	switch kind {
	case MTZ, DFJEnumerated, DFJIterative:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormulation, kind)
	}

	s, err := newSession(kind, inst, opts)
	if err != nil {
		return nil, err
	}

	switch kind {
	case MTZ:
		return &mtzFormulation{session: s}, nil
	case DFJEnumerated:
		return &dfjEnumFormulation{session: s}, nil
	default:
		return &dfjIterFormulation{session: s}, nil
	}
}

// Selector maps the command-line formulation codes:
//
//	0 MTZ, 1 MTZ relaxed, 2 DFJ enumerated, 3 DFJ enumerated relaxed,
//	4 DFJ iterative.
func Selector(code int) (Kind, bool, error) {
	switch code {
	case 0:
		return MTZ, false, nil
	case 1:
		return MTZ, true, nil
	case 2:
		return DFJEnumerated, false, nil
	case 3:
		return DFJEnumerated, true, nil
	case 4:
		return DFJIterative, false, nil
	default:
		return 0, false, fmt.Errorf("%w: selector %d, want 0..4", ErrUnknownFormulation, code)
	}
}

// NewMTZ is New(MTZ, inst, opts).
func NewMTZ(inst *instance.Instance, opts Options) (Formulation, error) {
	return New(MTZ, inst, opts)
}

// NewDFJEnumerated is New(DFJEnumerated, inst, opts). It does not apply the
// MaxEnumCities policy; Solve does.
func NewDFJEnumerated(inst *instance.Instance, opts Options) (Formulation, error) {
	return New(DFJEnumerated, inst, opts)
}

// NewDFJIterative is New(DFJIterative, inst, opts).
func NewDFJIterative(inst *instance.Instance, opts Options) (Formulation, error) {
	return New(DFJIterative, inst, opts)
}
