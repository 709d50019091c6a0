package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/shapkit/dataset"
)

// TestNewDense_BadShape verifies shape validation before any allocation.
func TestNewDense_BadShape(t *testing.T) {
	_, err := dataset.NewDense(0, 3, nil)
	assert.ErrorIs(t, err, dataset.ErrBadShape, "zero rows must error")

	_, err = dataset.NewDense(2, -1, nil)
	assert.ErrorIs(t, err, dataset.ErrBadShape, "negative cols must error")

	_, err = dataset.NewDense(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, dataset.ErrBadShape, "data length mismatch must error")
}

// TestFromRows_Ragged ensures ragged input errors instead of panicking.
func TestFromRows_Ragged(t *testing.T) {
	_, err := dataset.FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, dataset.ErrBadShape)

	_, err = dataset.FromRows(nil)
	assert.ErrorIs(t, err, dataset.ErrBadShape)
}

// TestDense_Accessors covers At/Row bounds and values.
func TestDense_Accessors(t *testing.T) {
	d, err := dataset.FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	assert.Equal(t, 2, d.Rows())
	assert.Equal(t, 3, d.Cols())

	v, err := d.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = d.At(2, 0)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)
	_, err = d.At(0, 3)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)

	row, err := d.Row(nil, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, row)

	_, err = d.Row(nil, -1)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)
}

// TestDense_Tile verifies the row block repeats in order.
func TestDense_Tile(t *testing.T) {
	d, err := dataset.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	tiled := d.Tile(3)
	assert.Equal(t, 6, tiled.Rows())
	assert.Equal(t, 2, tiled.Cols())
	for k := 0; k < 3; k++ {
		row, rErr := tiled.Row(nil, 2*k)
		require.NoError(t, rErr)
		assert.Equal(t, []float64{1, 2}, row, "block %d first row", k)
		row, rErr = tiled.Row(nil, 2*k+1)
		require.NoError(t, rErr)
		assert.Equal(t, []float64{3, 4}, row, "block %d second row", k)
	}
}

// TestDense_SetColumnBlock overwrites one column across a row range only.
func TestDense_SetColumnBlock(t *testing.T) {
	d, err := dataset.FromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)

	require.NoError(t, d.SetColumnBlock(0, 2, 1, 9))
	v, _ := d.At(0, 1)
	assert.Equal(t, 9.0, v)
	v, _ = d.At(1, 1)
	assert.Equal(t, 9.0, v)
	v, _ = d.At(2, 1)
	assert.Equal(t, 6.0, v, "rows outside the block stay untouched")
	v, _ = d.At(0, 0)
	assert.Equal(t, 1.0, v, "other columns stay untouched")

	assert.ErrorIs(t, d.SetColumnBlock(2, 2, 0, 1), dataset.ErrOutOfRange)
	assert.ErrorIs(t, d.SetColumnBlock(0, 1, 5, 1), dataset.ErrOutOfRange)
}

// TestDense_ColumnNonzero returns ascending nonzero row indices.
func TestDense_ColumnNonzero(t *testing.T) {
	d, err := dataset.FromRows([][]float64{{0, 1}, {2, 0}, {0, 3}})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, d.ColumnNonzero(0))
	assert.Equal(t, []int{0, 2}, d.ColumnNonzero(1))
	assert.Nil(t, d.ColumnNonzero(7))
}

// TestDense_RowMatrix_Independent verifies the extracted row is a copy.
func TestDense_RowMatrix_Independent(t *testing.T) {
	d, err := dataset.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	r, err := d.RowMatrix(1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Rows())

	require.NoError(t, r.SetColumnBlock(0, 1, 0, 99))
	v, _ := d.At(1, 0)
	assert.Equal(t, 3.0, v, "mutating the extracted row must not touch the source")

	_, err = d.RowMatrix(5)
	assert.ErrorIs(t, err, dataset.ErrOutOfRange)
}

// TestDense_Clone returns a deep copy: mutating it never touches the
// source.
func TestDense_Clone(t *testing.T) {
	d, err := dataset.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	c := d.Clone()
	require.NoError(t, c.SetColumnBlock(0, 2, 0, 9))

	v, _ := c.At(1, 0)
	assert.Equal(t, 9.0, v)
	v, _ = d.At(1, 0)
	assert.Equal(t, 3.0, v, "the source must be unaffected")
}

// TestDense_ToDense round-trips values into the gonum representation.
func TestDense_ToDense(t *testing.T) {
	d, err := dataset.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	g := d.ToDense()
	r, c := g.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 4.0, g.At(1, 1))
}
