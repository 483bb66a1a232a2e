package bench

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/lvlath-tsp/solver"
	"github.com/katalvlaran/lvlath-tsp/tsp"
	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// ErrConfig is returned for an unusable benchmark configuration.
var ErrConfig = errors.New("bench: invalid config")

// Config drives a benchmark run. The zero value is not usable; start from
// DefaultConfig or LoadConfig.
type Config struct {
	// InstancesDir is scanned (non-recursively) for *.txt instances.
	InstancesDir string `yaml:"instances_dir"`

	// Output is the report path.
	Output string `yaml:"output"`

	// Format is FormatCSV or FormatParquet.
	Format string `yaml:"format"`

	// MaxEnumCities is the largest n for which DFJ_enum is run. It is also
	// the tsp.Options cap, so it must be at least 1.
	MaxEnumCities int `yaml:"max_enum_cities"`

	// Verify cross-checks integral objectives against Held–Karp for
	// instances with n ≤ VerifyMaxCities.
	Verify          bool `yaml:"verify"`
	VerifyMaxCities int  `yaml:"verify_max_cities"`

	// Solver configures the LP/MILP engine shared by every formulation.
	Solver solver.Config `yaml:"solver"`
}

// DefaultConfig mirrors the classic batch setup: ./instances, results.csv,
// DFJ_enum up to 15 cities.
func DefaultConfig() Config {
	return Config{
		InstancesDir:    "instances",
		Output:          "results.csv",
		Format:          FormatCSV,
		MaxEnumCities:   tsp.DefaultMaxEnumCities,
		VerifyMaxCities: 12,
		Solver:          solver.DefaultConfig(),
	}
}

// LoadConfig reads a YAML file over DefaultConfig: keys absent from the
// file keep their default. An empty file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("bench: open config: %w", err)
	}
	defer f.Close()

	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err = d.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the fields bench interprets itself; solver settings are
// checked by solver.NewSimplex.
func (c Config) Validate() error {
	switch c.Format {
	case FormatCSV, FormatParquet:
	default:
		return fmt.Errorf("%w: format %q, want %q or %q", ErrConfig, c.Format, FormatCSV, FormatParquet)
	}
	if c.InstancesDir == "" || c.Output == "" {
		return fmt.Errorf("%w: instances_dir and output are required", ErrConfig)
	}
	if c.MaxEnumCities < 1 {
		return fmt.Errorf("%w: max_enum_cities=%d, want ≥ 1", ErrConfig, c.MaxEnumCities)
	}
	if c.Verify && (c.VerifyMaxCities < 1 || c.VerifyMaxCities > tsp.HeldKarpMaxCities) {
		return fmt.Errorf("%w: verify_max_cities=%d, want 1..%d", ErrConfig, c.VerifyMaxCities, tsp.HeldKarpMaxCities)
	}

	return nil
}
