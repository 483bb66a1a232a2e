// Package instance - model type, sentinel errors and validation.
//
// Validation mirrors the distance-matrix checks used by the solvers:
// shape first, then values. The diagonal is never inspected because no
// formulation creates self-arcs.
package instance

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("instance: parse error")

	// ErrCityCount is returned when the declared city count disagrees with
	// the number of coordinate or distance rows present.
	ErrCityCount = errors.New("instance: city count mismatch")

	// ErrFieldCount is returned when a row has the wrong number of fields.
	ErrFieldCount = errors.New("instance: wrong field count")

	// ErrNumber is returned when a field is not a valid number.
	ErrNumber = errors.New("instance: invalid number")

	// ErrInvalid is returned by Validate for structurally broken instances
	// (wrong shape, negative or non-finite distances, n < 1).
	ErrInvalid = errors.New("instance: invalid instance")
)

// ParseError reports a malformed instance file. Line is 1-based and counts
// physical lines, blank ones included; it is 0 when the problem is the
// file as a whole (e.g. missing rows at EOF).
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("instance: line %d: %v", e.Line, e.Err)
	}

	return fmt.Sprintf("instance: %v", e.Err)
}

// Unwrap exposes the concrete cause (ErrCityCount, ErrFieldCount, ErrNumber).
func (e *ParseError) Unwrap() error { return e.Err }

// Is makes every ParseError match ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Point is a city location in the plane.
type Point struct {
	X, Y float64
}

// Instance is a complete weighted digraph over N cities.
type Instance struct {
	// Name identifies the instance in reports (usually the file stem).
	Name string

	// N is the number of cities, N ≥ 1.
	N int

	// Coords has exactly N entries.
	Coords []Point

	// Dist is the N×N row-major distance matrix; Dist[i][j] is the cost of
	// arc i→j. It need not be symmetric.
	Dist [][]float64
}

// Validate enforces the model invariants:
//   - N ≥ 1 and len(Coords) == N,
//   - Dist is exactly N×N,
//   - every off-diagonal distance is finite and non-negative.
//
// Complexity: O(N²).
func (in *Instance) Validate() error {
	if in == nil {
		return fmt.Errorf("%w: nil instance", ErrInvalid)
	}
	if in.N < 1 {
		return fmt.Errorf("%w: n=%d, want n ≥ 1", ErrInvalid, in.N)
	}
	if len(in.Coords) != in.N {
		return fmt.Errorf("%w: %d coordinates for n=%d", ErrInvalid, len(in.Coords), in.N)
	}
	if len(in.Dist) != in.N {
		return fmt.Errorf("%w: %d distance rows for n=%d", ErrInvalid, len(in.Dist), in.N)
	}

	var (
		i, j int
		d    float64
	)
	for i = 0; i < in.N; i++ {
		if len(in.Dist[i]) != in.N {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalid, i, len(in.Dist[i]), in.N)
		}
		for j = 0; j < in.N; j++ {
			if i == j {
				continue
			}
			d = in.Dist[i][j]
			if math.IsNaN(d) || math.IsInf(d, 0) {
				return fmt.Errorf("%w: dist[%d][%d] is not finite", ErrInvalid, i, j)
			}
			if d < 0 {
				return fmt.Errorf("%w: dist[%d][%d]=%v is negative", ErrInvalid, i, j, d)
			}
		}
	}

	return nil
}

// Symmetric reports whether Dist[i][j] == Dist[j][i] within tol for all i<j.
func (in *Instance) Symmetric(tol float64) bool {
	var i, j int
	for i = 0; i < in.N; i++ {
		for j = i + 1; j < in.N; j++ {
			if math.Abs(in.Dist[i][j]-in.Dist[j][i]) > tol {
				return false
			}
		}
	}

	return true
}
