// Package tsp - dispatcher.
//
// Solve is the one-call entry point: validate, apply the caller-side scale
// policy for the enumerated DFJ model, build, solve. The policy lives here
// and not in the builder so that a caller who knows what they are doing can
// still build a larger enumerated model through New.
package tsp

import (
	"fmt"

	"github.com/katalvlaran/lvlath-tsp/instance"
)

// Solve builds and solves the formulation selected by kind.
//
// Errors: ErrScaleLimitExceeded (DFJEnumerated with n > MaxEnumCities), and
// everything New and Formulation.Solve return.
func Solve(inst *instance.Instance, kind Kind, opts Options) (Result, error) {
	if kind == DFJEnumerated && inst != nil && inst.N > opts.maxEnumCities() {
		return Result{}, fmt.Errorf("%w: n=%d > %d", ErrScaleLimitExceeded, inst.N, opts.maxEnumCities())
	}

	f, err := New(kind, inst, opts)
	if err != nil {
		return Result{}, err
	}
	if err = f.Build(); err != nil {
		return Result{}, err
	}

	return f.Solve()
}

// Gap is the relative optimality gap (integral − relaxed) / integral, or 0
// when the integral objective is 0.
func Gap(integral, relaxed float64) float64 {
	if integral == 0 {
		return 0
	}

	return (integral - relaxed) / integral
}
