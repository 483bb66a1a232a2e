package bench

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetGoRoutines is the parallelism of the Parquet column encoder.
const parquetGoRoutines int64 = 4

// Record is one report row. Header and Fields drive the CSV form; the
// Parquet form is taken from the struct tags.
type Record interface {
	Header() []string
	Fields() []string
}

// Row is one line of the batch report. Relaxed is false when the
// formulation has no relaxation (DFJ_iter): ObjRelax, TimeRelax and Gap are
// then undefined and written as empty CSV cells.
type Row struct {
	Instance    string  `parquet:"name=instance, type=UTF8"`
	Formulation string  `parquet:"name=formulation, type=UTF8"`
	ObjInt      float64 `parquet:"name=obj_int, type=DOUBLE"`
	TimeInt     float64 `parquet:"name=time_int, type=DOUBLE"`
	ObjRelax    float64 `parquet:"name=obj_relax, type=DOUBLE"`
	TimeRelax   float64 `parquet:"name=time_relax, type=DOUBLE"`
	Gap         float64 `parquet:"name=gap, type=DOUBLE"`
	Relaxed     bool    `parquet:"name=relaxed, type=BOOLEAN"`
	Vars        int64   `parquet:"name=vars, type=INT64"`
	Constr      int64   `parquet:"name=constr, type=INT64"`
}

// Header returns the batch report columns.
func (Row) Header() []string {
	return []string{"instance", "formulation", "obj_int", "time_int", "obj_relax", "time_relax", "gap", "vars", "constr"}
}

// Fields renders the row with values rounded to 4 digits.
func (r Row) Fields() []string {
	objRelax, timeRelax, gap := "", "", ""
	if r.Relaxed {
		objRelax = formatRounded(r.ObjRelax, 4)
		timeRelax = formatRounded(r.TimeRelax, 4)
		gap = formatRounded(r.Gap, 4)
	}

	return []string{
		r.Instance,
		r.Formulation,
		formatRounded(r.ObjInt, 4),
		formatRounded(r.TimeInt, 4),
		objRelax,
		timeRelax,
		gap,
		strconv.FormatInt(r.Vars, 10),
		strconv.FormatInt(r.Constr, 10),
	}
}

// GapRow is one line of the relaxation analysis.
type GapRow struct {
	Instance    string  `parquet:"name=instance, type=UTF8"`
	Formulation string  `parquet:"name=formulation, type=UTF8"`
	ObjInt      float64 `parquet:"name=obj_int, type=DOUBLE"`
	ObjRelax    float64 `parquet:"name=obj_relax, type=DOUBLE"`
	Gap         float64 `parquet:"name=gap, type=DOUBLE"`
}

// Header returns the relaxation analysis columns.
func (GapRow) Header() []string {
	return []string{"instance", "formulation", "obj_int", "obj_relax", "gap"}
}

// Fields renders objectives with 4 digits and the gap with 5.
func (r GapRow) Fields() []string {
	return []string{
		r.Instance,
		r.Formulation,
		formatRounded(r.ObjInt, 4),
		formatRounded(r.ObjRelax, 4),
		formatRounded(r.Gap, 5),
	}
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))

	return math.Round(v*p) / p
}

func formatRounded(v float64, digits int) string {
	return strconv.FormatFloat(round(v, digits), 'f', -1, 64)
}

// ReportWriter receives records as they are produced.
type ReportWriter interface {
	Write(rec Record) error
	Close() error
}

// NewReportWriter creates path in the given format. schema must be a
// pointer to the record type that will be written (e.g. new(Row)).
func NewReportWriter(format, path string, schema Record) (ReportWriter, error) {
	switch format {
	case FormatCSV:
		return newCSVReport(path, schema)
	case FormatParquet:
		return newParquetReport(path, schema)
	default:
		return nil, fmt.Errorf("%w: format %q", ErrConfig, format)
	}
}

type csvReport struct {
	f *os.File
	w *csv.Writer
}

func newCSVReport(path string, schema Record) (*csvReport, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("bench: create report: %w", err)
	}
	r := &csvReport{f: f, w: csv.NewWriter(f)}
	if err = r.writeLine(schema.Header()); err != nil {
		f.Close()
		return nil, err
	}

	return r, nil
}

func (r *csvReport) writeLine(fields []string) error {
	if err := r.w.Write(fields); err != nil {
		return fmt.Errorf("bench: write csv: %w", err)
	}
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return fmt.Errorf("bench: flush csv: %w", err)
	}

	return nil
}

func (r *csvReport) Write(rec Record) error { return r.writeLine(rec.Fields()) }

func (r *csvReport) Close() error { return r.f.Close() }

type parquetReport struct {
	fw source.ParquetFile
	pw *writer.ParquetWriter
}

func newParquetReport(path string, schema Record) (*parquetReport, error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("bench: create report: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, schema, parquetGoRoutines)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("bench: create parquet writer: %w", err)
	}

	return &parquetReport{fw: fw, pw: pw}, nil
}

func (r *parquetReport) Write(rec Record) error {
	if err := r.pw.Write(rec); err != nil {
		return fmt.Errorf("bench: write parquet: %w", err)
	}

	return nil
}

// Close finalises the footer; rows are buffered until then.
func (r *parquetReport) Close() error {
	if err := r.pw.WriteStop(); err != nil {
		r.fw.Close()
		return fmt.Errorf("bench: parquet WriteStop: %w", err)
	}

	return r.fw.Close()
}
