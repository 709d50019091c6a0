package kernelshap_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/shapkit/dataset"
	"github.com/katalvlaran/shapkit/kernelshap"
)

// TestVarying_NaNTreatedAsEqual: a NaN feature matching a NaN background
// value does not vary and earns no attribution.
func TestVarying_NaNTreatedAsEqual(t *testing.T) {
	data, err := dataset.FromRows([][]float64{{math.NaN(), 0}})
	require.NoError(t, err)
	bg, err := dataset.New(data)
	require.NoError(t, err)

	// f(x) = x1 so the NaN column never reaches arithmetic.
	model := kernelshap.ScalarModelFunc(func(x dataset.Matrix) ([]float64, error) {
		out := make([]float64, x.Rows())
		for i := range out {
			v, vErr := x.At(i, 1)
			if vErr != nil {
				return nil, vErr
			}
			out[i] = v
		}

		return out, nil
	})

	ex, err := kernelshap.New(model, bg)
	require.NoError(t, err)

	attr, err := ex.Explain([]float64{math.NaN(), 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5}, attr.Phi(0))
}

// TestVarying_Tolerance: differences below the relative/absolute tolerance
// do not count as varying.
func TestVarying_Tolerance(t *testing.T) {
	data, err := dataset.FromRows([][]float64{{1, 1}})
	require.NoError(t, err)
	bg, err := dataset.New(data)
	require.NoError(t, err)

	ex, err := kernelshap.New(sumModel(), bg)
	require.NoError(t, err)

	// Column 0 moves within tolerance, column 1 clearly varies.
	attr, err := ex.Explain([]float64{1 + 1e-9, 3})
	require.NoError(t, err)

	phi := attr.Phi(0)
	assert.Equal(t, 0.0, phi[0])
	assert.NotZero(t, phi[1])
}

// TestVarying_SparsePartialCoverage: a column whose stored background
// values all match the instance still varies when the instance is nonzero
// and some background rows hold a structural zero there.
func TestVarying_SparsePartialCoverage(t *testing.T) {
	// Column 0: rows (2, 0) — instance value 2 matches the stored row but
	// not the structural zero, so it varies.
	// Column 1: both rows store 7 and the instance matches — not varying.
	bgData, err := dataset.SparseFromRows([][]float64{{2, 7}, {0, 7}})
	require.NoError(t, err)
	bg, err := dataset.New(bgData)
	require.NoError(t, err)

	ex, err := kernelshap.New(sumModel(), bg)
	require.NoError(t, err)

	x, err := dataset.SparseFromRows([][]float64{{2, 7}})
	require.NoError(t, err)

	attr, err := ex.ExplainMatrix(x)
	require.NoError(t, err)

	phi := attr.Phi(0)
	assert.NotZero(t, phi[0], "partially covered nonzero column must vary")
	assert.Equal(t, 0.0, phi[1])
}

// TestLink_Inverses checks both links round-trip.
func TestLink_Inverses(t *testing.T) {
	var id kernelshap.Identity
	assert.Equal(t, 0.3, id.F(0.3))
	assert.Equal(t, 0.3, id.Finv(0.3))

	var lg kernelshap.Logit
	for _, p := range []float64{0.05, 0.5, 0.93} {
		assert.InDelta(t, p, lg.Finv(lg.F(p)), 1e-12)
	}
	assert.Equal(t, 0.0, lg.F(0.5))
}
