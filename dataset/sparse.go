// Package dataset: sparse row-compressed backend.
//
// Sparse keeps, per row, parallel slices of ascending column indices and
// stored values. This is the insertion-friendly layout the synthetic-data
// builder needs: pinning a feature to the instance value touches one row at
// a time and costs O(nnz(row)) in the worst case, never O(total nnz).
package dataset

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Sparse is a row-compressed sparse feature matrix.
type Sparse struct {
	r, c int
	ind  [][]int     // per row: ascending column indices of stored entries
	val  [][]float64 // per row: values parallel to ind
}

// Compile-time interface conformance.
var _ Matrix = (*Sparse)(nil)

// NewSparse builds an empty (all structurally zero) r×c sparse matrix.
func NewSparse(r, c int) (*Sparse, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("NewSparse(%d,%d): %w", r, c, ErrBadShape)
	}

	return &Sparse{r: r, c: c, ind: make([][]int, r), val: make([][]float64, r)}, nil
}

// NewCSR builds a Sparse from canonical CSR arrays: indptr of length r+1,
// and parallel column-index/value slices. Column indices must be ascending
// within each row and inside [0, c).
func NewCSR(r, c int, indptr, cols []int, data []float64) (*Sparse, error) {
	if r <= 0 || c <= 0 || len(indptr) != r+1 || len(cols) != len(data) || indptr[r] != len(data) {
		return nil, fmt.Errorf("NewCSR(%d,%d): %w", r, c, ErrBadShape)
	}
	s, err := NewSparse(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		lo, hi := indptr[i], indptr[i+1]
		if lo > hi || lo < 0 {
			return nil, fmt.Errorf("NewCSR: indptr row %d: %w", i, ErrBadShape)
		}
		prev := -1
		for k := lo; k < hi; k++ {
			j := cols[k]
			if j <= prev || j >= c {
				return nil, fmt.Errorf("NewCSR: row %d col %d: %w", i, j, ErrBadShape)
			}
			prev = j
			s.ind[i] = append(s.ind[i], j)
			s.val[i] = append(s.val[i], data[k])
		}
	}

	return s, nil
}

// SparseFromRows builds a Sparse from dense rows, storing only nonzeros.
func SparseFromRows(rows [][]float64) (*Sparse, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("SparseFromRows: %w", ErrBadShape)
	}
	c := len(rows[0])
	s, err := NewSparse(len(rows), c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("SparseFromRows: row %d has %d cols, want %d: %w", i, len(row), c, ErrBadShape)
		}
		for j, v := range row {
			if v != 0 {
				s.ind[i] = append(s.ind[i], j)
				s.val[i] = append(s.val[i], v)
			}
		}
	}

	return s, nil
}

// Rows returns the row count.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the column count.
func (s *Sparse) Cols() int { return s.c }

// find returns the position of column j in row i's index slice, or
// (insertion point, false) when absent.
func (s *Sparse) find(i, j int) (int, bool) {
	k := sort.SearchInts(s.ind[i], j)
	if k < len(s.ind[i]) && s.ind[i][k] == j {
		return k, true
	}

	return k, false
}

// At returns the element at (i, j); structural zeros read as 0.
func (s *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, fmt.Errorf("Sparse.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if k, ok := s.find(i, j); ok {
		return s.val[i][k], nil
	}

	return 0, nil
}

// Row decompresses row i into dst and returns it.
func (s *Sparse) Row(dst []float64, i int) ([]float64, error) {
	if i < 0 || i >= s.r {
		return nil, fmt.Errorf("Sparse.Row(%d): %w", i, ErrOutOfRange)
	}
	if dst == nil {
		dst = make([]float64, s.c)
	}
	for j := range dst {
		dst[j] = 0
	}
	for k, j := range s.ind[i] {
		dst[j] = s.val[i][k]
	}

	return dst, nil
}

// RowMatrix extracts row i as an independent 1×c Sparse.
func (s *Sparse) RowMatrix(i int) (Matrix, error) {
	if i < 0 || i >= s.r {
		return nil, fmt.Errorf("Sparse.RowMatrix(%d): %w", i, ErrOutOfRange)
	}
	out := &Sparse{r: 1, c: s.c, ind: make([][]int, 1), val: make([][]float64, 1)}
	out.ind[0] = append([]int(nil), s.ind[i]...)
	out.val[0] = append([]float64(nil), s.val[i]...)

	return out, nil
}

// Tile repeats the full row block n times, preserving sparsity.
func (s *Sparse) Tile(n int) Matrix {
	out := &Sparse{r: s.r * n, c: s.c, ind: make([][]int, s.r*n), val: make([][]float64, s.r*n)}
	for k := 0; k < n; k++ {
		for i := 0; i < s.r; i++ {
			out.ind[k*s.r+i] = append([]int(nil), s.ind[i]...)
			out.val[k*s.r+i] = append([]float64(nil), s.val[i]...)
		}
	}

	return out
}

// SetColumnBlock overwrites column col with v for rows [row0, row0+n).
// Writing v=0 over a structural zero is a no-op, so pinning a sparse
// instance onto a sparse background never densifies the buffer.
func (s *Sparse) SetColumnBlock(row0, n, col int, v float64) error {
	if row0 < 0 || n < 0 || row0+n > s.r || col < 0 || col >= s.c {
		return fmt.Errorf("Sparse.SetColumnBlock(%d,%d,%d): %w", row0, n, col, ErrOutOfRange)
	}
	for i := row0; i < row0+n; i++ {
		k, ok := s.find(i, col)
		switch {
		case ok:
			s.val[i][k] = v
		case v != 0:
			s.ind[i] = append(s.ind[i], 0)
			copy(s.ind[i][k+1:], s.ind[i][k:])
			s.ind[i][k] = col
			s.val[i] = append(s.val[i], 0)
			copy(s.val[i][k+1:], s.val[i][k:])
			s.val[i][k] = v
		}
	}

	return nil
}

// ColumnNonzero returns ascending row indices with a nonzero stored value
// in col. Entries stored as exact zero are skipped.
func (s *Sparse) ColumnNonzero(col int) []int {
	if col < 0 || col >= s.c {
		return nil
	}
	var idx []int
	for i := 0; i < s.r; i++ {
		if k, ok := s.find(i, col); ok && s.val[i][k] != 0 {
			idx = append(idx, i)
		}
	}

	return idx
}

// NonzeroCols returns the ascending union of columns holding a nonzero
// stored value in any row. The varying-feature detector uses this to skip
// columns that are structurally zero everywhere.
func (s *Sparse) NonzeroCols() []int {
	seen := make([]bool, s.c)
	for i := 0; i < s.r; i++ {
		for k, j := range s.ind[i] {
			if s.val[i][k] != 0 {
				seen[j] = true
			}
		}
	}
	var cols []int
	for j, ok := range seen {
		if ok {
			cols = append(cols, j)
		}
	}

	return cols
}

// ToDense materializes the matrix as a gonum *mat.Dense.
func (s *Sparse) ToDense() *mat.Dense {
	out := mat.NewDense(s.r, s.c, nil)
	for i := 0; i < s.r; i++ {
		for k, j := range s.ind[i] {
			out.Set(i, j, s.val[i][k])
		}
	}

	return out
}

// Clone returns a deep copy.
func (s *Sparse) Clone() Matrix {
	return s.Tile(1)
}
