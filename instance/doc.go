// Package instance holds the TSP instance model: a complete weighted digraph
// over n cities, given as an n×n distance matrix plus the planar coordinates
// the matrix was derived from.
//
// Instances are read from a line-oriented text format:
//
//	n
//	x_0 y_0
//	...
//	x_{n-1} y_{n-1}
//	d_00 d_01 ... d_0{n-1}
//	...
//	d_{n-1}0 ... d_{n-1}{n-1}
//
// Blank lines are ignored. Any disagreement between the declared n and the
// rows actually present, or a row with the wrong number of fields, yields a
// *ParseError (errors.Is(err, ErrParse) is always true for those).
//
// Coordinates are carried for reporting only; no solver reads them.
// The diagonal of the distance matrix is ignored by every formulation.
package instance
