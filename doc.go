// Package lvlathtsp is an exact Travelling Salesman toolkit built on
// integer programming: three formulations of the same problem, the LP/MILP
// engine they run on, and a benchmark that compares them.
//
// Packages:
//
//	instance/ — the instance model, text loader and random generator
//	solver/   — linear models and the simplex + branch-and-bound engine
//	tsp/      — MTZ, DFJ (enumerated) and DFJ (cutting-plane) formulations,
//	            the cycle extractor and the Held–Karp oracle
//	bench/    — batch runs, CSV/Parquet reports, relaxation analysis
//
// Binaries live under cmd/: tspsolve (one instance, one formulation),
// tspbench (the batch report) and tspgen (random instances).
//
// Quick start:
//
//	inst, _ := instance.LoadFile("instances/rand10.txt")
//	res, _ := tsp.Solve(inst, tsp.DFJIterative, tsp.DefaultOptions())
//	fmt.Println(res.Objective, res.Tour)
//
// Library packages never log and never panic on user input; they return
// sentinel errors to be matched with errors.Is.
package lvlathtsp
