// Package dataset: dense row-major backend.
//
// Storage is a single flat buffer with the explicit index formula
// offset = i*cols + j (cache-friendly, deterministic loop orders, no maps).
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense is a concrete row-major feature matrix.
type Dense struct {
	r, c int       // dimensions (both > 0 after construction)
	data []float64 // flat row-major buffer, len == r*c
}

// Compile-time interface conformance.
var _ Matrix = (*Dense)(nil)

// NewDense builds an r×c dense matrix backed by data (adopted, not copied).
// A nil data slice allocates a zero matrix. Returns ErrBadShape on
// non-positive dimensions or a length mismatch.
func NewDense(r, c int, data []float64) (*Dense, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", r, c, ErrBadShape)
	}
	if data == nil {
		data = make([]float64, r*c)
	}
	if len(data) != r*c {
		return nil, fmt.Errorf("NewDense(%d,%d): len(data)=%d: %w", r, c, len(data), ErrBadShape)
	}

	return &Dense{r: r, c: c, data: data}, nil
}

// FromRows builds a Dense from a slice of equally-sized rows (copied).
// Ragged or empty input is reported as ErrBadShape, never a panic.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w", ErrBadShape)
	}
	c := len(rows[0])
	d := &Dense{r: len(rows), c: c, data: make([]float64, len(rows)*c)}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromRows: row %d has %d cols, want %d: %w", i, len(row), c, ErrBadShape)
		}
		copy(d.data[i*c:(i+1)*c], row)
	}

	return d, nil
}

// Rows returns the row count.
func (d *Dense) Rows() int { return d.r }

// Cols returns the column count.
func (d *Dense) Cols() int { return d.c }

// At returns the element at (i, j), or ErrOutOfRange.
func (d *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= d.r || j < 0 || j >= d.c {
		return 0, fmt.Errorf("Dense.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return d.data[i*d.c+j], nil
}

// Row copies row i into dst and returns it.
func (d *Dense) Row(dst []float64, i int) ([]float64, error) {
	if i < 0 || i >= d.r {
		return nil, fmt.Errorf("Dense.Row(%d): %w", i, ErrOutOfRange)
	}
	if dst == nil {
		dst = make([]float64, d.c)
	}
	copy(dst, d.data[i*d.c:(i+1)*d.c])

	return dst, nil
}

// RowMatrix extracts row i as an independent 1×c Dense.
func (d *Dense) RowMatrix(i int) (Matrix, error) {
	row, err := d.Row(nil, i)
	if err != nil {
		return nil, err
	}

	return NewDense(1, d.c, row)
}

// Tile repeats the full row block n times: the result is (n*r)×c.
func (d *Dense) Tile(n int) Matrix {
	out := &Dense{r: d.r * n, c: d.c, data: make([]float64, d.r*d.c*n)}
	for k := 0; k < n; k++ {
		copy(out.data[k*len(d.data):(k+1)*len(d.data)], d.data)
	}

	return out
}

// SetColumnBlock overwrites column col with v for rows [row0, row0+n).
func (d *Dense) SetColumnBlock(row0, n, col int, v float64) error {
	if row0 < 0 || n < 0 || row0+n > d.r || col < 0 || col >= d.c {
		return fmt.Errorf("Dense.SetColumnBlock(%d,%d,%d): %w", row0, n, col, ErrOutOfRange)
	}
	for i := row0; i < row0+n; i++ {
		d.data[i*d.c+col] = v
	}

	return nil
}

// ColumnNonzero returns ascending row indices with a nonzero value in col.
func (d *Dense) ColumnNonzero(col int) []int {
	if col < 0 || col >= d.c {
		return nil
	}
	var idx []int
	for i := 0; i < d.r; i++ {
		if d.data[i*d.c+col] != 0 {
			idx = append(idx, i)
		}
	}

	return idx
}

// ToDense materializes the matrix as a gonum *mat.Dense (copy).
func (d *Dense) ToDense() *mat.Dense {
	out := make([]float64, len(d.data))
	copy(out, d.data)

	return mat.NewDense(d.r, d.c, out)
}

// Clone returns a deep copy.
func (d *Dense) Clone() Matrix {
	data := make([]float64, len(d.data))
	copy(data, d.data)

	return &Dense{r: d.r, c: d.c, data: data}
}
