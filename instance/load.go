package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileExt is the extension instance files carry on disk.
const FileExt = ".txt"

// row is one non-blank input line together with its physical line number.
type row struct {
	line   int
	fields []string
}

// Load reads an instance from r. The returned instance has an empty Name;
// LoadFile fills it from the file name.
//
// Errors: *ParseError (ErrCityCount, ErrFieldCount, ErrNumber) for malformed
// input, or the underlying read error.
func Load(r io.Reader) (*Instance, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("%w: empty input", ErrCityCount)}
	}

	n, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	// Exactly n coordinate rows and n distance rows must follow.
	want := 1 + 2*n
	if len(rows) < want {
		return nil, &ParseError{Err: fmt.Errorf("%w: declared %d cities, found %d data rows, want %d",
			ErrCityCount, n, len(rows)-1, 2*n)}
	}
	if len(rows) > want {
		return nil, &ParseError{Line: rows[want].line, Err: fmt.Errorf("%w: declared %d cities, unexpected extra row",
			ErrCityCount, n)}
	}

	inst := &Instance{
		N:      n,
		Coords: make([]Point, n),
		Dist:   make([][]float64, n),
	}

	var (
		i    int
		vals []float64
	)
	for i = 0; i < n; i++ {
		vals, err = parseFloats(rows[1+i], 2)
		if err != nil {
			return nil, err
		}
		inst.Coords[i] = Point{X: vals[0], Y: vals[1]}
	}
	for i = 0; i < n; i++ {
		vals, err = parseFloats(rows[1+n+i], n)
		if err != nil {
			return nil, err
		}
		inst.Dist[i] = vals
	}

	if err = inst.Validate(); err != nil {
		return nil, err
	}

	return inst, nil
}

// LoadFile opens path and parses it with Load. The instance is named after
// the file stem.
func LoadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	inst.Name = strings.TrimSuffix(filepath.Base(path), FileExt)

	return inst, nil
}

// Resolve maps a user-supplied instance name to a path. An existing path is
// returned unchanged; otherwise the name is looked up inside dir with FileExt
// appended when missing.
func Resolve(dir, name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	if !strings.HasSuffix(name, FileExt) {
		name += FileExt
	}

	return filepath.Join(dir, name)
}

// readRows splits r into non-blank rows of whitespace-separated fields.
func readRows(r io.Reader) ([]row, error) {
	var (
		rows []row
		line int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, row{line: line, fields: fields})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}

func parseHeader(r row) (int, error) {
	if len(r.fields) != 1 {
		return 0, &ParseError{Line: r.line, Err: fmt.Errorf("%w: header has %d fields, want 1", ErrFieldCount, len(r.fields))}
	}
	n, err := strconv.Atoi(r.fields[0])
	if err != nil {
		return 0, &ParseError{Line: r.line, Err: fmt.Errorf("%w: city count %q", ErrNumber, r.fields[0])}
	}
	if n < 1 {
		return 0, &ParseError{Line: r.line, Err: fmt.Errorf("%w: city count %d < 1", ErrCityCount, n)}
	}

	return n, nil
}

func parseFloats(r row, want int) ([]float64, error) {
	if len(r.fields) != want {
		return nil, &ParseError{Line: r.line, Err: fmt.Errorf("%w: got %d fields, want %d", ErrFieldCount, len(r.fields), want)}
	}
	out := make([]float64, want)

	var (
		k   int
		err error
	)
	for k = 0; k < want; k++ {
		out[k], err = strconv.ParseFloat(r.fields[k], 64)
		if err != nil {
			return nil, &ParseError{Line: r.line, Err: fmt.Errorf("%w: field %d %q", ErrNumber, k+1, r.fields[k])}
		}
	}

	return out, nil
}
