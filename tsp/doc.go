// Package tsp solves the Travelling Salesman Problem exactly with three
// integer-programming formulations over a complete weighted digraph:
//
//   - MTZ — Miller–Tucker–Zemlin. Arc variables plus one position variable
//     per city; n·(n−1) big-M ordering constraints forbid subtours that avoid
//     city 0. Polynomial size, weak LP bound.
//
//   - DFJEnumerated — Dantzig–Fulkerson–Johnson with every subtour
//     elimination constraint written up front (2ⁿ − n − 2 of them). Tightest
//     LP bound; only tractable for small n (callers cap it, 15 by default).
//
//   - DFJIterative — the same DFJ family generated lazily: solve the
//     assignment model, split the selection into cycles, cut every cycle,
//     re-solve, until one Hamiltonian cycle remains.
//
// All three share the variable layout (one variable per ordered city pair
// i≠j, binary or, when relaxed, continuous in [0,1]) and the degree
// constraints, and talk to an LP/MILP engine only through solver.Solver.
//
// Entry points:
//
//	res, err := tsp.Solve(inst, tsp.DFJIterative, tsp.DefaultOptions())
//
// or, for finer control, New + Build + Solve on a Formulation.
//
// Tours are closed: len(Tour) == n+1 and Tour[0] == Tour[n] == 0.
//
// HeldKarp is an independent dynamic-programming oracle (O(n²·2ⁿ)) used to
// cross-check the formulations on small instances.
//
// Nothing in this package logs; failures are reported with the sentinel
// errors in types.go (match them with errors.Is).
package tsp
