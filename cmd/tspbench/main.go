// Command tspbench runs every formulation over a directory of instances and
// writes the batch report, or with -relaxation the relaxation analysis.
//
// Usage:
//
//	tspbench [-config bench.yaml] [-relaxation] [-o path] [-v]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/lvlath-tsp/bench"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config (defaults when empty)")
		relaxation = flag.Bool("relaxation", false, "write the relaxation analysis instead of the batch report")
		output     = flag.String("o", "", "report path (overrides the config)")
		verbose    = flag.Bool("v", false, "log every solve")
	)
	flag.Parse()

	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if *verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err = run(log, *configPath, *output, *relaxation); err != nil {
		log.Error("tspbench failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.Logger, configPath, output string, relaxation bool) error {
	cfg := bench.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = bench.LoadConfig(configPath); err != nil {
			return err
		}
	}
	switch {
	case output != "":
		cfg.Output = output
	case relaxation && cfg.Output == bench.DefaultConfig().Output:
		cfg.Output = "relaxation_results.csv"
	}

	r, err := bench.NewRunner(cfg, log)
	if err != nil {
		return err
	}

	var schema bench.Record = new(bench.Row)
	if relaxation {
		schema = new(bench.GapRow)
	}
	w, err := bench.NewReportWriter(cfg.Format, cfg.Output, schema)
	if err != nil {
		return err
	}

	var sum bench.Summary
	if relaxation {
		sum, err = r.RunRelaxation(w)
	} else {
		sum, err = r.Run(w)
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.Info("benchmark completed",
		zap.String("output", cfg.Output),
		zap.String("instances", humanize.Comma(int64(sum.Instances))),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
		zap.Int("mismatches", sum.Mismatches))
	for _, fs := range sum.Formulations {
		fields := []zap.Field{
			zap.String("formulation", fs.Formulation),
			zap.Int("runs", fs.Runs),
			zap.Float64("mean_time_s", fs.MeanTime),
			zap.Float64("median_time_s", fs.MedianTime),
			zap.Float64("max_time_s", fs.MaxTime),
		}
		if fs.HasGap {
			fields = append(fields, zap.Float64("mean_gap", fs.MeanGap), zap.Float64("median_gap", fs.MedianGap))
		}
		log.Info("summary", fields...)
	}

	return nil
}
