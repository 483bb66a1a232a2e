package tsp_test

import (
	"errors"
	"testing"
	"time"

	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/katalvlaran/lvlath-tsp/solver"
	"github.com/katalvlaran/lvlath-tsp/tsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_Square4AllFormulations(t *testing.T) {
	inst := square4(t)
	want := []int{0, 1, 2, 3, 0}

	for _, kind := range tsp.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			res, err := tsp.Solve(inst, kind, tsp.DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, kind, res.Kind)
			assert.Equal(t, solver.Optimal, res.Status)
			assert.InDelta(t, 4.0, res.Objective, objTol)
			require.NoError(t, tsp.ValidateTour(res.Tour, 4))
			assert.True(t, tsp.SameCycle(want, res.Tour), "tour %v", res.Tour)

			cost, err := tsp.TourCost(inst.Dist, res.Tour)
			require.NoError(t, err)
			assert.InDelta(t, res.Objective, cost, objTol)
			assert.GreaterOrEqual(t, res.Iterations, 1)
		})
	}
}

func TestSolve_ModelSizes(t *testing.T) {
	inst := square4(t)

	res, err := tsp.Solve(inst, tsp.MTZ, tsp.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 4*3+4, res.NumVars)
	assert.Equal(t, 2*4+3*2, res.NumConstraints)
	assert.Nil(t, res.Rounds)

	res, err = tsp.Solve(inst, tsp.DFJEnumerated, tsp.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 4*3, res.NumVars)
	assert.Equal(t, 2*4+(16-4-2), res.NumConstraints)
}

func TestDFJIterative_CutsSubtours(t *testing.T) {
	inst := twoClusters5(t)

	res, err := tsp.Solve(inst, tsp.DFJIterative, tsp.DefaultOptions())
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.Iterations, 2)
	require.Len(t, res.Rounds, res.Iterations)

	first := res.Rounds[0]
	assert.InDelta(t, 5.0, first.Objective, objTol)
	assert.Equal(t, [][]int{{0, 1}, {2, 3, 4}}, sortedCycleSets(first.Cycles))
	assert.Equal(t, 2, first.CutsAdded)

	last := res.Rounds[len(res.Rounds)-1]
	assert.Zero(t, last.CutsAdded)
	require.Len(t, last.Cycles, 1)

	cuts := 0
	for k := 1; k < len(res.Rounds); k++ {
		assert.GreaterOrEqual(t, res.Rounds[k].Objective, res.Rounds[k-1].Objective-objTol)
		cuts += res.Rounds[k-1].CutsAdded
	}
	assert.Equal(t, 5*4, res.NumVars)
	assert.Equal(t, 2*5+cuts, res.NumConstraints)

	_, best, err := tsp.HeldKarp(inst.Dist)
	require.NoError(t, err)
	assert.InDelta(t, 23.0, best, objTol)
	assert.InDelta(t, best, res.Objective, objTol)
	require.NoError(t, tsp.ValidateTour(res.Tour, 5))
}

// sortedCycleSets returns the cycles with their members sorted, so rounds can
// be compared independently of orientation.
func sortedCycleSets(cycles [][]int) [][]int {
	out := make([][]int, len(cycles))
	for k, c := range cycles {
		s := append([]int(nil), c...)
		for i := 1; i < len(s); i++ {
			for j := i; j > 0 && s[j] < s[j-1]; j-- {
				s[j], s[j-1] = s[j-1], s[j]
			}
		}
		out[k] = s
	}

	return out
}

func TestSolve_AgreesWithHeldKarp(t *testing.T) {
	var cases []*instance.Instance
	for _, seed := range []int64{1, 2, 3} {
		inst, err := instance.Generate(5, seed)
		require.NoError(t, err)
		cases = append(cases, inst)
	}
	inst6, err := instance.Generate(6, 42)
	require.NoError(t, err)
	cases = append(cases, inst6, randomAsymmetric(t, 5, 11), randomAsymmetric(t, 6, 12))

	for _, inst := range cases {
		t.Run(inst.Name, func(t *testing.T) {
			_, best, err := tsp.HeldKarp(inst.Dist)
			require.NoError(t, err)

			for _, kind := range tsp.Kinds {
				res, err := tsp.Solve(inst, kind, tsp.DefaultOptions())
				require.NoError(t, err, kind.String())
				assert.InDelta(t, best, res.Objective, objTol, kind.String())

				cost, err := tsp.TourCost(inst.Dist, res.Tour)
				require.NoError(t, err)
				assert.InDelta(t, best, cost, objTol, kind.String())
			}
		})
	}
}

func TestSolve_RelaxationBounds(t *testing.T) {
	insts := []*instance.Instance{square4(t), twoClusters5(t), randomAsymmetric(t, 5, 3)}
	relaxed := tsp.DefaultOptions()
	relaxed.Relaxed = true

	for _, inst := range insts {
		t.Run(inst.Name, func(t *testing.T) {
			integral, err := tsp.Solve(inst, tsp.DFJIterative, tsp.DefaultOptions())
			require.NoError(t, err)

			mtz, err := tsp.Solve(inst, tsp.MTZ, relaxed)
			require.NoError(t, err)
			dfj, err := tsp.Solve(inst, tsp.DFJEnumerated, relaxed)
			require.NoError(t, err)

			assert.True(t, mtz.Relaxed)
			assert.Nil(t, mtz.Tour)
			assert.Nil(t, dfj.Tour)
			assert.LessOrEqual(t, mtz.Objective, dfj.Objective+objTol)
			assert.LessOrEqual(t, dfj.Objective, integral.Objective+objTol)

			gap := tsp.Gap(integral.Objective, mtz.Objective)
			assert.GreaterOrEqual(t, gap, -objTol)
			assert.Less(t, gap, 1.0)
		})
	}
}

func TestSolve_TinyInstances(t *testing.T) {
	one := fromMatrix(t, "one", [][]float64{{0}})
	two := fromMatrix(t, "two", [][]float64{{0, 3}, {5, 0}})

	for _, kind := range tsp.Kinds {
		res, err := tsp.Solve(one, kind, tsp.DefaultOptions())
		require.NoError(t, err, kind.String())
		assert.Equal(t, []int{0, 0}, res.Tour)
		assert.Zero(t, res.Objective)

		res, err = tsp.Solve(two, kind, tsp.DefaultOptions())
		require.NoError(t, err, kind.String())
		assert.Equal(t, []int{0, 1, 0}, res.Tour)
		assert.InDelta(t, 8.0, res.Objective, objTol)
	}
}

func TestSolve_ScaleLimit(t *testing.T) {
	inst, err := instance.Generate(6, 1)
	require.NoError(t, err)

	opts := tsp.DefaultOptions()
	opts.MaxEnumCities = 5
	_, err = tsp.Solve(inst, tsp.DFJEnumerated, opts)
	require.ErrorIs(t, err, tsp.ErrScaleLimitExceeded)

	// the cap is a Solve policy; other formulations ignore it
	_, err = tsp.Solve(inst, tsp.MTZ, opts)
	require.NoError(t, err)
}

func TestNew_Errors(t *testing.T) {
	inst := square4(t)

	_, err := tsp.New(tsp.DFJIterative, inst, tsp.Options{Relaxed: true})
	require.ErrorIs(t, err, tsp.ErrRelaxationUnsupported)

	_, err = tsp.New(tsp.Kind(9), inst, tsp.DefaultOptions())
	require.ErrorIs(t, err, tsp.ErrUnknownFormulation)

	_, err = tsp.New(tsp.MTZ, inst, tsp.Options{MaxRounds: -1})
	require.ErrorIs(t, err, tsp.ErrBadOptions)

	_, err = tsp.New(tsp.MTZ, nil, tsp.DefaultOptions())
	require.ErrorIs(t, err, instance.ErrInvalid)
}

func TestFormulation_ExtractTour(t *testing.T) {
	inst := square4(t)

	f, err := tsp.New(tsp.DFJEnumerated, inst, tsp.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, tsp.DFJEnumerated, f.Kind())
	_, err = f.ExtractTour()
	require.ErrorIs(t, err, tsp.ErrNoTour)

	require.NoError(t, f.Build())
	res, err := f.Solve()
	require.NoError(t, err)
	tour, err := f.ExtractTour()
	require.NoError(t, err)
	assert.Equal(t, res.Tour, tour)

	relaxed, err := tsp.New(tsp.MTZ, inst, tsp.Options{Relaxed: true})
	require.NoError(t, err)
	_, err = relaxed.Solve()
	require.NoError(t, err)
	_, err = relaxed.ExtractTour()
	require.ErrorIs(t, err, tsp.ErrNoTour)
}

func TestDFJIterative_RoundLimit(t *testing.T) {
	opts := tsp.DefaultOptions()
	opts.MaxRounds = 1
	_, err := tsp.Solve(twoClusters5(t), tsp.DFJIterative, opts)
	require.ErrorIs(t, err, tsp.ErrRoundLimit)
}

func TestSolverFault_NonOptimalStatus(t *testing.T) {
	inst := square4(t)
	for _, kind := range tsp.Kinds {
		eng := &scriptedSolver{status: solver.Infeasible}
		_, err := tsp.Solve(inst, kind, tsp.Options{Solver: eng})
		require.ErrorIs(t, err, tsp.ErrSolverFault, kind.String())

		var fault *tsp.SolverFault
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, kind, fault.Kind)
		assert.Equal(t, solver.Infeasible, fault.Status)
		assert.Equal(t, 1, eng.calls)
	}
}

func TestDFJIterative_RepeatSolve(t *testing.T) {
	f, err := tsp.NewDFJIterative(twoClusters5(t), tsp.DefaultOptions())
	require.NoError(t, err)

	first, err := f.Solve()
	require.NoError(t, err)
	second, err := f.Solve()
	require.NoError(t, err)

	assert.Equal(t, first.Iterations, second.Iterations)
	assert.Equal(t, first.NumConstraints, second.NumConstraints)
	assert.InDelta(t, first.Objective, second.Objective, objTol)
	require.Len(t, second.Rounds, len(first.Rounds))
	for k := range first.Rounds {
		assert.Equal(t, first.Rounds[k].Cycles, second.Rounds[k].Cycles)
		assert.Equal(t, first.Rounds[k].CutsAdded, second.Rounds[k].CutsAdded)
	}
}

func TestSolve_TimeLimitIsSolverFault(t *testing.T) {
	inst, err := instance.Generate(8, 7)
	require.NoError(t, err)
	eng, err := solver.NewSimplex(solver.Config{TimeLimit: time.Nanosecond})
	require.NoError(t, err)

	for _, kind := range tsp.Kinds {
		_, err := tsp.Solve(inst, kind, tsp.Options{Solver: eng})
		require.ErrorIs(t, err, tsp.ErrSolverFault, kind.String())

		var fault *tsp.SolverFault
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, solver.TimedOut, fault.Status)
	}
}

func TestSolverFault_IgnoredCut(t *testing.T) {
	// an engine that keeps returning the same two subtours
	eng := &scriptedSolver{next: []int{1, 0, 3, 4, 2}}
	_, err := tsp.Solve(twoClusters5(t), tsp.DFJIterative, tsp.Options{Solver: eng})
	require.ErrorIs(t, err, tsp.ErrSolverFault)
	assert.Equal(t, 2, eng.calls)
}

func TestSolverFault_SubtourFromStaticModel(t *testing.T) {
	eng := &scriptedSolver{next: []int{1, 0, 3, 4, 2}}
	_, err := tsp.Solve(twoClusters5(t), tsp.MTZ, tsp.Options{Solver: eng})
	require.ErrorIs(t, err, tsp.ErrSolverFault)
}

func TestSelectorAndParseKind(t *testing.T) {
	cases := []struct {
		code    int
		kind    tsp.Kind
		relaxed bool
	}{
		{0, tsp.MTZ, false},
		{1, tsp.MTZ, true},
		{2, tsp.DFJEnumerated, false},
		{3, tsp.DFJEnumerated, true},
		{4, tsp.DFJIterative, false},
	}
	for _, c := range cases {
		kind, relaxed, err := tsp.Selector(c.code)
		require.NoError(t, err)
		assert.Equal(t, c.kind, kind)
		assert.Equal(t, c.relaxed, relaxed)
	}
	for _, bad := range []int{-1, 5} {
		_, _, err := tsp.Selector(bad)
		require.ErrorIs(t, err, tsp.ErrUnknownFormulation)
	}

	for _, k := range tsp.Kinds {
		got, err := tsp.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	assert.Equal(t, "DFJ_enum", tsp.DFJEnumerated.String())
	_, err := tsp.ParseKind("mtz")
	require.ErrorIs(t, err, tsp.ErrUnknownFormulation)
}

func TestGap(t *testing.T) {
	assert.Zero(t, tsp.Gap(0, 0))
	assert.InDelta(t, 0.25, tsp.Gap(4, 3), 1e-12)
}

func TestConstructors(t *testing.T) {
	inst := square4(t)
	ctors := map[tsp.Kind]func(*instance.Instance, tsp.Options) (tsp.Formulation, error){
		tsp.MTZ:           tsp.NewMTZ,
		tsp.DFJEnumerated: tsp.NewDFJEnumerated,
		tsp.DFJIterative:  tsp.NewDFJIterative,
	}
	for kind, ctor := range ctors {
		f, err := ctor(inst, tsp.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, kind, f.Kind())

		// Build twice starts from scratch
		require.NoError(t, f.Build())
		require.NoError(t, f.Build())
		res, err := f.Solve()
		require.NoError(t, err)
		assert.InDelta(t, 4.0, res.Objective, objTol)
	}

	// the enumerated builder ignores the MaxEnumCities policy
	f, err := tsp.NewDFJEnumerated(inst, tsp.Options{MaxEnumCities: 3})
	require.NoError(t, err)
	require.NoError(t, f.Build())
	res, err := f.Solve()
	require.NoError(t, err)
	assert.InDelta(t, 4.0, res.Objective, objTol)
}
