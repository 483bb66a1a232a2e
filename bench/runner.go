package bench

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/katalvlaran/lvlath-tsp/solver"
	"github.com/katalvlaran/lvlath-tsp/tsp"
	"go.uber.org/zap"
)

// verifyTol is the absolute tolerance for the Held–Karp cross-check.
const verifyTol = 1e-6

// relaxationDFJ labels the DFJ family in the relaxation analysis.
const relaxationDFJ = "DFJ"

// Runner executes benchmark runs for one Config. A Runner is not safe for
// concurrent use.
type Runner struct {
	cfg Config
	eng solver.Solver
	log *zap.Logger

	sum *collector
}

// NewRunner validates cfg and creates the engine. A nil logger discards
// output.
func NewRunner(cfg Config, log *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eng, err := solver.NewSimplex(cfg.Solver)
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Runner{cfg: cfg, eng: eng, log: log}, nil
}

// Instances lists the *.txt files of InstancesDir in lexical order.
func (r *Runner) Instances() ([]string, error) {
	entries, err := os.ReadDir(r.cfg.InstancesDir)
	if err != nil {
		return nil, fmt.Errorf("bench: list instances: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), instance.FileExt) {
			continue
		}
		paths = append(paths, filepath.Join(r.cfg.InstancesDir, e.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}

// Run writes the batch report to w and returns the run summary. It stops
// only on report or directory errors.
func (r *Runner) Run(w ReportWriter) (Summary, error) {
	paths, err := r.Instances()
	if err != nil {
		return Summary{}, err
	}
	r.sum = newCollector()

	for _, path := range paths {
		inst, lerr := instance.LoadFile(path)
		if lerr != nil {
			r.log.Warn("skipping instance", zap.String("path", path), zap.Error(lerr))
			r.sum.skipped++
			continue
		}
		r.sum.instances++
		r.log.Info("processing instance", zap.String("instance", inst.Name), zap.Int("n", inst.N))

		if err = r.runInstance(inst, w); err != nil {
			return Summary{}, err
		}
	}

	return r.sum.summary(), nil
}

func (r *Runner) runInstance(inst *instance.Instance, w ReportWriter) error {
	var (
		best     = math.NaN()
		verified = r.cfg.Verify && inst.N <= r.cfg.VerifyMaxCities
	)
	if verified {
		_, cost, err := tsp.HeldKarp(inst.Dist)
		if err != nil {
			r.log.Error("held-karp failed", zap.String("instance", inst.Name), zap.Error(err))
			verified = false
		} else {
			best = cost
		}
	}

	for _, kind := range tsp.Kinds {
		if kind == tsp.DFJEnumerated && inst.N > r.cfg.MaxEnumCities {
			r.log.Debug("skipping enumerated DFJ", zap.String("instance", inst.Name), zap.Int("max", r.cfg.MaxEnumCities))
			continue
		}

		row, ok := r.measure(inst, kind)
		if !ok {
			continue
		}
		if verified && math.Abs(row.ObjInt-best) > verifyTol {
			r.sum.mismatches++
			r.log.Error("objective disagrees with held-karp",
				zap.String("instance", inst.Name),
				zap.Stringer("formulation", kind),
				zap.Float64("obj_int", row.ObjInt),
				zap.Float64("held_karp", best))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// measure solves kind integrally and, where a relaxation exists, relaxed.
func (r *Runner) measure(inst *instance.Instance, kind tsp.Kind) (Row, bool) {
	row := Row{Instance: inst.Name, Formulation: kind.String()}

	if kind != tsp.DFJIterative {
		relaxed, err := r.solve(inst, kind, true)
		if err != nil {
			return Row{}, false
		}
		row.Relaxed = true
		row.ObjRelax = relaxed.Objective
		row.TimeRelax = relaxed.Elapsed.Seconds()
	}

	res, err := r.solve(inst, kind, false)
	if err != nil {
		return Row{}, false
	}
	row.ObjInt = res.Objective
	row.TimeInt = res.Elapsed.Seconds()
	row.Vars = int64(res.NumVars)
	row.Constr = int64(res.NumConstraints)
	if row.Relaxed {
		row.Gap = tsp.Gap(row.ObjInt, row.ObjRelax)
		r.sum.addGap(kind, row.Gap)
	}
	r.sum.addTime(kind, row.TimeInt)

	return row, true
}

// solve runs one session, logging and counting failures.
func (r *Runner) solve(inst *instance.Instance, kind tsp.Kind, relaxed bool) (tsp.Result, error) {
	opts := tsp.Options{Relaxed: relaxed, Solver: r.eng, MaxEnumCities: r.cfg.MaxEnumCities}
	res, err := tsp.Solve(inst, kind, opts)
	if err != nil {
		r.sum.failed++
		r.log.Error("solve failed",
			zap.String("instance", inst.Name),
			zap.Stringer("formulation", kind),
			zap.Bool("relaxed", relaxed),
			zap.Error(err))
		return tsp.Result{}, err
	}
	r.log.Debug("solved",
		zap.String("instance", inst.Name),
		zap.Stringer("formulation", kind),
		zap.Bool("relaxed", relaxed),
		zap.Float64("objective", res.Objective),
		zap.Duration("elapsed", res.Elapsed),
		zap.Int("iterations", res.Iterations))

	return res, nil
}

// RunRelaxation writes the relaxation analysis to w: MTZ for every
// instance, the DFJ family when n ≤ MaxEnumCities.
func (r *Runner) RunRelaxation(w ReportWriter) (Summary, error) {
	paths, err := r.Instances()
	if err != nil {
		return Summary{}, err
	}
	r.sum = newCollector()

	for _, path := range paths {
		inst, lerr := instance.LoadFile(path)
		if lerr != nil {
			r.log.Warn("skipping instance", zap.String("path", path), zap.Error(lerr))
			r.sum.skipped++
			continue
		}
		r.sum.instances++
		r.log.Info("analyzing instance", zap.String("instance", inst.Name), zap.Int("n", inst.N))

		for _, kind := range []tsp.Kind{tsp.MTZ, tsp.DFJEnumerated} {
			if kind == tsp.DFJEnumerated && inst.N > r.cfg.MaxEnumCities {
				continue
			}
			relaxed, rerr := r.solve(inst, kind, true)
			if rerr != nil {
				continue
			}
			integral, ierr := r.solve(inst, kind, false)
			if ierr != nil {
				continue
			}

			label := kind.String()
			if kind == tsp.DFJEnumerated {
				label = relaxationDFJ
			}
			gap := tsp.Gap(integral.Objective, relaxed.Objective)
			r.sum.addGap(kind, gap)
			r.sum.addTime(kind, integral.Elapsed.Seconds())

			if err = w.Write(GapRow{
				Instance:    inst.Name,
				Formulation: label,
				ObjInt:      integral.Objective,
				ObjRelax:    relaxed.Objective,
				Gap:         gap,
			}); err != nil {
				return Summary{}, err
			}
		}
	}

	return r.sum.summary(), nil
}
