package bench_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/katalvlaran/lvlath-tsp/bench"
	"github.com/katalvlaran/lvlath-tsp/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// instanceDir writes a4.txt (n=4), b5.txt (n=5), an unreadable bad.txt and
// an unrelated notes.md.
func instanceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for name, gen := range map[string][2]int64{"a4": {4, 1}, "b5": {5, 2}} {
		inst, err := instance.Generate(int(gen[0]), gen[1])
		require.NoError(t, err)
		f, err := os.Create(filepath.Join(dir, name+instance.FileExt))
		require.NoError(t, err)
		require.NoError(t, instance.Write(f, inst))
		require.NoError(t, f.Close())
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.txt"), []byte("3\n1 2\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644))

	return dir
}

func testConfig(t *testing.T, dir string) bench.Config {
	cfg := bench.DefaultConfig()
	cfg.InstancesDir = dir
	cfg.Output = filepath.Join(t.TempDir(), "results.csv")

	return cfg
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return records
}

func runBatch(t *testing.T, cfg bench.Config) bench.Summary {
	t.Helper()
	r, err := bench.NewRunner(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	w, err := bench.NewReportWriter(cfg.Format, cfg.Output, new(bench.Row))
	require.NoError(t, err)
	sum, err := r.Run(w)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return sum
}

func TestRunner_Instances(t *testing.T) {
	dir := instanceDir(t)
	r, err := bench.NewRunner(testConfig(t, dir), nil)
	require.NoError(t, err)

	paths, err := r.Instances()
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a4.txt"),
		filepath.Join(dir, "b5.txt"),
		filepath.Join(dir, "bad.txt"),
	}, paths)
}

func TestRun_CSV(t *testing.T) {
	cfg := testConfig(t, instanceDir(t))
	cfg.Verify = true
	sum := runBatch(t, cfg)

	assert.Equal(t, 2, sum.Instances)
	assert.Equal(t, 1, sum.Skipped)
	assert.Zero(t, sum.Failed)
	assert.Zero(t, sum.Mismatches)
	require.Len(t, sum.Formulations, 3)
	for _, fs := range sum.Formulations {
		assert.Equal(t, 2, fs.Runs)
		assert.Equal(t, fs.Formulation != "DFJ_iter", fs.HasGap, fs.Formulation)
	}

	records := readCSV(t, cfg.Output)
	require.Len(t, records, 1+6)
	assert.Equal(t, bench.Row{}.Header(), records[0])

	var formulations []string
	for _, rec := range records[1:] {
		formulations = append(formulations, rec[1])
		objInt, err := strconv.ParseFloat(rec[2], 64)
		require.NoError(t, err)
		assert.Greater(t, objInt, 0.0)

		if rec[1] == "DFJ_iter" {
			assert.Equal(t, []string{"", "", ""}, rec[4:7])
			continue
		}
		objRelax, err := strconv.ParseFloat(rec[4], 64)
		require.NoError(t, err)
		assert.LessOrEqual(t, objRelax, objInt+1e-3)
	}
	assert.Equal(t, []string{"MTZ", "DFJ_enum", "DFJ_iter", "MTZ", "DFJ_enum", "DFJ_iter"}, formulations)
	assert.Equal(t, "a4", records[1][0])
	assert.Equal(t, "b5", records[4][0])

	// the three integral objectives of an instance agree
	for _, block := range [][]string{{records[1][2], records[2][2], records[3][2]}, {records[4][2], records[5][2], records[6][2]}} {
		assert.Equal(t, block[0], block[1])
		assert.Equal(t, block[0], block[2])
	}
}

func TestRun_EnumCap(t *testing.T) {
	cfg := testConfig(t, instanceDir(t))
	cfg.MaxEnumCities = 4
	runBatch(t, cfg)

	records := readCSV(t, cfg.Output)
	var b5 []string
	for _, rec := range records[1:] {
		if rec[0] == "b5" {
			b5 = append(b5, rec[1])
		}
	}
	assert.Equal(t, []string{"MTZ", "DFJ_iter"}, b5)
}

func TestRun_Parquet(t *testing.T) {
	cfg := testConfig(t, instanceDir(t))
	cfg.Format = bench.FormatParquet
	cfg.Output = filepath.Join(t.TempDir(), "results.parquet")
	runBatch(t, cfg)

	fr, err := local.NewLocalFileReader(cfg.Output)
	require.NoError(t, err)
	defer fr.Close()
	pr, err := reader.NewParquetReader(fr, new(bench.Row), 4)
	require.NoError(t, err)
	defer pr.ReadStop()

	n := int(pr.GetNumRows())
	require.Equal(t, 6, n)
	rows := make([]bench.Row, n)
	require.NoError(t, pr.Read(&rows))
	assert.Equal(t, "a4", rows[0].Instance)
	assert.Equal(t, "MTZ", rows[0].Formulation)
	assert.True(t, rows[0].Relaxed)
	assert.False(t, rows[2].Relaxed)
	assert.Equal(t, int64(4*3+4), rows[0].Vars)
}

func TestRunRelaxation(t *testing.T) {
	cfg := testConfig(t, instanceDir(t))
	r, err := bench.NewRunner(cfg, zap.NewNop())
	require.NoError(t, err)
	w, err := bench.NewReportWriter(bench.FormatCSV, cfg.Output, new(bench.GapRow))
	require.NoError(t, err)
	sum, err := r.RunRelaxation(w)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, 2, sum.Instances)

	records := readCSV(t, cfg.Output)
	require.Len(t, records, 1+4)
	assert.Equal(t, []string{"instance", "formulation", "obj_int", "obj_relax", "gap"}, records[0])
	assert.Equal(t, "MTZ", records[1][1])
	assert.Equal(t, "DFJ", records[2][1])
	for _, rec := range records[1:] {
		gap, err := strconv.ParseFloat(rec[4], 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, gap, 0.0)
		assert.Less(t, gap, 1.0)
	}
}

func TestRowFields_Rounding(t *testing.T) {
	row := bench.Row{
		Instance: "x", Formulation: "MTZ",
		ObjInt: 12.345678, TimeInt: 0.000049, ObjRelax: 10.5, TimeRelax: 1, Gap: 0.149994,
		Relaxed: true, Vars: 20, Constr: 14,
	}
	assert.Equal(t, []string{"x", "MTZ", "12.3457", "0", "10.5", "1", "0.15", "20", "14"}, row.Fields())

	row.Relaxed = false
	assert.Equal(t, []string{"", "", ""}, row.Fields()[4:7])

	g := bench.GapRow{Instance: "x", Formulation: "DFJ", ObjInt: 2, ObjRelax: 1.75, Gap: 0.123456}
	assert.Equal(t, []string{"x", "DFJ", "2", "1.75", "0.12346"}, g.Fields())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
instances_dir: data
format: parquet
output: out.parquet
verify: true
solver:
  time_limit: 30s
  max_nodes: 500
`), 0o644))

	cfg, err := bench.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.InstancesDir)
	assert.Equal(t, bench.FormatParquet, cfg.Format)
	assert.True(t, cfg.Verify)
	assert.Equal(t, 15, cfg.MaxEnumCities)
	assert.Equal(t, 30*time.Second, cfg.Solver.TimeLimit)
	assert.Equal(t, 500, cfg.Solver.MaxNodes)
	assert.Equal(t, bench.DefaultConfig().Solver.IntegralityTolerance, cfg.Solver.IntegralityTolerance)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	cfg, err = bench.LoadConfig(empty)
	require.NoError(t, err)
	assert.Equal(t, bench.DefaultConfig(), cfg)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("format: xml\n"), 0o644))
	_, err = bench.LoadConfig(bad)
	require.ErrorIs(t, err, bench.ErrConfig)

	// 0 would mean "skip" here but "default cap" to tsp.Options
	zero := filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(zero, []byte("instances_dir: data\nmax_enum_cities: 0\n"), 0o644))
	_, err = bench.LoadConfig(zero)
	require.ErrorIs(t, err, bench.ErrConfig)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("instance_dir: typo\n"), 0o644))
	_, err = bench.LoadConfig(unknown)
	require.ErrorIs(t, err, bench.ErrConfig)

	_, err = bench.LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestNewReportWriter_UnknownFormat(t *testing.T) {
	_, err := bench.NewReportWriter("xml", filepath.Join(t.TempDir(), "r"), new(bench.Row))
	require.ErrorIs(t, err, bench.ErrConfig)
}
