// Command tspgen writes a random symmetric Euclidean instance.
//
// Usage:
//
//	tspgen -n 10 [-seed 1] [-o instances/rand10.txt]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/katalvlaran/lvlath-tsp/instance"
	"go.uber.org/zap"
)

func main() {
	var (
		n    = flag.Int("n", 10, "number of cities")
		seed = flag.Int64("seed", 1, "random seed (0 maps to the default seed)")
		out  = flag.String("o", "", "output path (stdout when empty)")
	)
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err = run(*n, *seed, *out); err != nil {
		log.Error("tspgen failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	if *out != "" {
		log.Info("instance written", zap.String("path", *out), zap.Int("n", *n), zap.Int64("seed", *seed))
	}
}

func run(n int, seed int64, out string) error {
	inst, err := instance.Generate(n, seed)
	if err != nil {
		return err
	}
	if out == "" {
		return instance.Write(os.Stdout, inst)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err = instance.Write(f, inst); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
