// Package bench runs every TSP formulation over a directory of instances and
// writes one report row per (instance, formulation).
//
// Two tables are produced:
//
//   - the batch report (Run): instance, formulation, obj_int, time_int,
//     obj_relax, time_relax, gap, vars, constr. DFJ_enum appears only for
//     n ≤ Config.MaxEnumCities; DFJ_iter has no relaxed columns.
//   - the relaxation analysis (RunRelaxation): instance, formulation,
//     obj_int, obj_relax, gap, for MTZ and the DFJ family.
//
// Reports are written as CSV (flushed after every row) or Parquet. Instances
// that fail to load are logged and skipped. Formulation failures are logged
// and counted in the Summary; only report I/O errors abort a run.
//
// Unlike the library packages, bench logs: it takes a *zap.Logger and falls
// back to zap.NewNop().
package bench
