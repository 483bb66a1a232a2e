// Package solver is the boundary between the TSP formulations and an LP/MILP
// engine.
//
// A Model is a minimisation problem over named variables with a domain
// (Binary or Continuous), finite lower bounds and possibly infinite upper
// bounds, subject to linear constraints with sense ≤, = or ≥. A Solver
// returns a Solution whose Status is one of Optimal, Infeasible, Unbounded or
// TimedOut; the assignment and objective are meaningful only when Optimal.
// The error return is reserved for malformed models and numerical breakdown
// inside the engine.
//
// Simplex is the bundled engine: each LP relaxation is converted to standard
// form and solved by a two-phase tableau simplex on gonum mat/floats
// (Dantzig pricing, Bland's rule once pivots stall, a pivot cap), and binary
// variables are enforced by depth-first branch-and-bound. It is dense and
// meant for the small instances exact TSP formulations are tractable on.
// Any other engine satisfying the Solver interface is substitutable.
//
// Engines never log and keep no state between Solve calls.
package solver
