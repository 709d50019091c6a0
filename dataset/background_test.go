package dataset_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/shapkit/dataset"
)

// TestNew_Defaults checks uniform weights and singleton groups.
func TestNew_Defaults(t *testing.T) {
	data, err := dataset.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	bg, err := dataset.New(data)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 0.5}, bg.Weights())
	assert.Equal(t, [][]int{{0}, {1}}, bg.Groups())
	assert.Equal(t, 2, bg.Rows())
	assert.Equal(t, 2, bg.Cols())
	assert.Equal(t, 2, bg.GroupCount())
}

// TestNew_WeightNormalization scales caller weights to unit sum.
func TestNew_WeightNormalization(t *testing.T) {
	data, err := dataset.FromRows([][]float64{{1}, {2}, {3}})
	require.NoError(t, err)

	bg, err := dataset.New(data, dataset.WithWeights([]float64{2, 2, 4}))
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.5}, bg.Weights(), 1e-15)
}

// TestNew_Errors walks the documented validation order.
func TestNew_Errors(t *testing.T) {
	_, err := dataset.New(nil)
	assert.ErrorIs(t, err, dataset.ErrEmptyData)

	data, err := dataset.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	_, err = dataset.New(data, dataset.WithTransposed(true))
	assert.ErrorIs(t, err, dataset.ErrTransposed)

	_, err = dataset.New(data, dataset.WithWeights([]float64{1}))
	assert.ErrorIs(t, err, dataset.ErrWeightLength)

	_, err = dataset.New(data, dataset.WithWeights([]float64{0, 0}))
	assert.ErrorIs(t, err, dataset.ErrWeightSum)

	_, err = dataset.New(data, dataset.WithGroups([][]int{{0}, {}}))
	assert.ErrorIs(t, err, dataset.ErrBadGroups)

	_, err = dataset.New(data, dataset.WithGroups([][]int{{0}, {5}}))
	assert.ErrorIs(t, err, dataset.ErrBadGroups)
}

// TestNew_GroupsCopied verifies caller slices cannot mutate the Background.
func TestNew_GroupsCopied(t *testing.T) {
	data, err := dataset.FromRows([][]float64{{1, 2}})
	require.NoError(t, err)

	groups := [][]int{{0, 1}}
	bg, err := dataset.New(data, dataset.WithGroups(groups))
	require.NoError(t, err)

	groups[0][0] = 1
	assert.Equal(t, [][]int{{0, 1}}, bg.Groups())
}

// TestNew_LargeBackgroundWarns logs a soft warning above the row threshold.
func TestNew_LargeBackgroundWarns(t *testing.T) {
	n := dataset.WarnRowThreshold + 1
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = []float64{float64(i)}
	}
	data, err := dataset.FromRows(rows)
	require.NoError(t, err)

	var buf bytes.Buffer
	bg, err := dataset.New(data, dataset.WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)
	require.NotNil(t, bg, "a large background is a warning, never an error")

	assert.Contains(t, buf.String(), "background rows")
}

// TestSample_Deterministic draws without replacement, repeatably per seed.
func TestSample_Deterministic(t *testing.T) {
	rows := make([][]float64, 10)
	for i := range rows {
		rows[i] = []float64{float64(i)}
	}
	data, err := dataset.FromRows(rows)
	require.NoError(t, err)

	a, err := dataset.Sample(data, 4, 7)
	require.NoError(t, err)
	b, err := dataset.Sample(data, 4, 7)
	require.NoError(t, err)

	assert.Equal(t, 4, a.Rows())
	seen := map[float64]bool{}
	for i := 0; i < 4; i++ {
		va, aErr := a.At(i, 0)
		require.NoError(t, aErr)
		vb, bErr := b.At(i, 0)
		require.NoError(t, bErr)
		assert.Equal(t, va, vb, "same seed must reproduce the same draw")
		assert.False(t, seen[va], "rows are drawn without replacement")
		seen[va] = true
	}
}

// TestSample_Errors rejects empty data and out-of-range sample sizes.
func TestSample_Errors(t *testing.T) {
	_, err := dataset.Sample(nil, 1, 1)
	assert.ErrorIs(t, err, dataset.ErrEmptyData)

	data, err := dataset.FromRows([][]float64{{1}, {2}})
	require.NoError(t, err)

	_, err = dataset.Sample(data, 0, 1)
	assert.ErrorIs(t, err, dataset.ErrBadSampleSize)
	_, err = dataset.Sample(data, 3, 1)
	assert.ErrorIs(t, err, dataset.ErrBadSampleSize)
}
