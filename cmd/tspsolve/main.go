// Command tspsolve solves one instance with one formulation.
//
// Usage:
//
//	tspsolve [-dir instances] [-time-limit 0] [-max-nodes 0] <instance> <formulation>
//
// formulation: 0 MTZ, 1 MTZ relaxed, 2 DFJ enumerated, 3 DFJ enumerated
// relaxed, 4 DFJ iterative. A bare instance name is looked up in -dir with
// ".txt" appended.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/katalvlaran/lvlath-tsp/solver"
	"github.com/katalvlaran/lvlath-tsp/tsp"
	"go.uber.org/zap"
)

func main() {
	var (
		dir       = flag.String("dir", "instances", "directory searched for bare instance names")
		timeLimit = flag.Duration("time-limit", 0, "branch-and-bound wall-clock limit (0 = none)")
		maxNodes  = flag.Int("max-nodes", 0, "branch-and-bound node limit (0 = none)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <instance> <0..4>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}
	cfg := solver.DefaultConfig()
	cfg.TimeLimit = *timeLimit
	cfg.MaxNodes = *maxNodes
	if err = run(*dir, flag.Arg(0), flag.Arg(1), cfg); err != nil {
		log.Error("tspsolve failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(dir, name, code string, cfg solver.Config) error {
	sel, err := strconv.Atoi(code)
	if err != nil {
		return fmt.Errorf("formulation %q: %w", code, tsp.ErrUnknownFormulation)
	}
	kind, relaxed, err := tsp.Selector(sel)
	if err != nil {
		return err
	}

	inst, err := instance.LoadFile(instance.Resolve(dir, name))
	if err != nil {
		return err
	}
	eng, err := solver.NewSimplex(cfg)
	if err != nil {
		return err
	}

	opts := tsp.DefaultOptions()
	opts.Relaxed = relaxed
	opts.Solver = eng
	res, err := tsp.Solve(inst, kind, opts)
	if err != nil {
		return err
	}

	label := kind.String()
	if relaxed {
		label += " (relaxed)"
	}
	fmt.Printf("instance:    %s (n=%d)\n", inst.Name, inst.N)
	fmt.Printf("formulation: %s\n", label)
	fmt.Printf("status:      %s\n", res.Status)
	fmt.Printf("objective:   %.4f\n", res.Objective)
	if res.Tour != nil {
		fmt.Printf("tour:        %v\n", res.Tour)
	}
	fmt.Printf("time:        %.4fs\n", res.Elapsed.Seconds())
	if kind == tsp.DFJIterative {
		fmt.Printf("iterations:  %d\n", res.Iterations)
	}
	fmt.Printf("variables:   %s\n", humanize.Comma(int64(res.NumVars)))
	fmt.Printf("constraints: %s\n", humanize.Comma(int64(res.NumConstraints)))

	return nil
}
