package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/shapkit/dataset"
)

// TestNewCSR_Validation rejects malformed index structure.
func TestNewCSR_Validation(t *testing.T) {
	// indptr must have r+1 entries and be nondecreasing.
	_, err := dataset.NewCSR(2, 2, []int{0, 1}, []int{0}, []float64{1})
	assert.ErrorIs(t, err, dataset.ErrBadShape, "short indptr must error")

	_, err = dataset.NewCSR(2, 2, []int{0, 2, 1}, []int{0, 1}, []float64{1, 2})
	assert.ErrorIs(t, err, dataset.ErrBadShape, "decreasing indptr must error")

	// Column indices within a row must be strictly ascending and in range.
	_, err = dataset.NewCSR(1, 3, []int{0, 2}, []int{1, 1}, []float64{1, 2})
	assert.ErrorIs(t, err, dataset.ErrBadShape, "duplicate column must error")

	_, err = dataset.NewCSR(1, 2, []int{0, 1}, []int{5}, []float64{1})
	assert.ErrorIs(t, err, dataset.ErrBadShape, "column out of range must error")
}

// TestSparse_At_Row checks stored and structural-zero reads.
func TestSparse_At_Row(t *testing.T) {
	// [0 4 0]
	// [7 0 0]
	s, err := dataset.NewCSR(2, 3, []int{0, 1, 2}, []int{1, 0}, []float64{4, 7})
	require.NoError(t, err)

	v, err := s.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = s.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v, "structural zeros read as 0")

	_, err = s.At(3, 0)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)

	row, err := s.Row(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 0, 0}, row)
}

// TestSparse_SetColumnBlock covers overwrite, structural insert and zero skip.
func TestSparse_SetColumnBlock(t *testing.T) {
	s, err := dataset.NewCSR(2, 3, []int{0, 1, 2}, []int{1, 0}, []float64{4, 7})
	require.NoError(t, err)

	// Overwrite an existing entry.
	require.NoError(t, s.SetColumnBlock(0, 1, 1, 9))
	v, _ := s.At(0, 1)
	assert.Equal(t, 9.0, v)

	// Insert into a structural zero, ascending order must be preserved.
	require.NoError(t, s.SetColumnBlock(1, 1, 2, 5))
	v, _ = s.At(1, 2)
	assert.Equal(t, 5.0, v)
	row, _ := s.Row(nil, 1)
	assert.Equal(t, []float64{7, 0, 5}, row)

	// Writing zero over a structural zero stays implicit.
	require.NoError(t, s.SetColumnBlock(0, 1, 2, 0))
	assert.NotContains(t, s.ColumnNonzero(2), 0)

	assert.ErrorIs(t, s.SetColumnBlock(1, 2, 0, 1), dataset.ErrOutOfRange)
}

// TestSparse_ColumnNonzero skips explicitly stored zeros.
func TestSparse_ColumnNonzero(t *testing.T) {
	s, err := dataset.NewCSR(3, 2, []int{0, 1, 2, 3}, []int{0, 0, 0}, []float64{1, 0, 3})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, s.ColumnNonzero(0), "stored zero at row 1 is not a nonzero")
	assert.Empty(t, s.ColumnNonzero(1))
}

// TestSparse_NonzeroCols returns ascending columns with any nonzero entry.
func TestSparse_NonzeroCols(t *testing.T) {
	s, err := dataset.NewCSR(2, 4, []int{0, 2, 3}, []int{1, 3, 1}, []float64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, s.NonzeroCols())
}

// TestSparse_Tile repeats the row block without densifying.
func TestSparse_Tile(t *testing.T) {
	s, err := dataset.SparseFromRows([][]float64{{0, 2}, {3, 0}})
	require.NoError(t, err)

	tiled := s.Tile(2)
	require.IsType(t, &dataset.Sparse{}, tiled, "tiling a sparse matrix stays sparse")
	assert.Equal(t, 4, tiled.Rows())

	row, err := tiled.Row(nil, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0}, row)
}

// TestSparse_RowMatrix_Independent verifies the extracted row is a copy.
func TestSparse_RowMatrix_Independent(t *testing.T) {
	s, err := dataset.SparseFromRows([][]float64{{0, 2}, {3, 0}})
	require.NoError(t, err)

	r, err := s.RowMatrix(0)
	require.NoError(t, err)
	require.IsType(t, &dataset.Sparse{}, r)

	require.NoError(t, r.SetColumnBlock(0, 1, 1, 42))
	v, _ := s.At(0, 1)
	assert.Equal(t, 2.0, v)
}

// TestSparse_Clone returns a deep, still-sparse copy: structural inserts
// on the clone never touch the source.
func TestSparse_Clone(t *testing.T) {
	s, err := dataset.SparseFromRows([][]float64{{0, 2}, {3, 0}})
	require.NoError(t, err)

	c := s.Clone()
	require.IsType(t, &dataset.Sparse{}, c, "cloning a sparse matrix stays sparse")
	require.NoError(t, c.SetColumnBlock(0, 1, 0, 9))

	v, _ := c.At(0, 0)
	assert.Equal(t, 9.0, v)
	v, _ = s.At(0, 0)
	assert.Equal(t, 0.0, v, "the source must be unaffected")
}

// TestSparse_ToDense materializes stored entries only.
func TestSparse_ToDense(t *testing.T) {
	s, err := dataset.SparseFromRows([][]float64{{0, 2}, {3, 0}})
	require.NoError(t, err)

	g := s.ToDense()
	assert.Equal(t, 0.0, g.At(0, 0))
	assert.Equal(t, 2.0, g.At(0, 1))
	assert.Equal(t, 3.0, g.At(1, 0))
}
