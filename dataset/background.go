// Package dataset: Background construction and the Sample subsampler.
package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Background pairs a reference data matrix with normalized row weights and
// feature-group membership. It is immutable after construction and safe to
// share across concurrent explanations.
type Background struct {
	data    Matrix
	weights []float64 // length Rows(), sums to 1
	groups  [][]int   // length GroupCount(), ordered column indices
}

// New validates and assembles a Background.
//
// Validation order (fail fast, before any allocation):
//  1. nil/empty data            → ErrEmptyData
//  2. transposed declaration    → ErrTransposed
//  3. weight length mismatch    → ErrWeightLength
//  4. non-positive weight sum   → ErrWeightSum
//  5. malformed feature groups  → ErrBadGroups
//
// Weights are copied and renormalized to sum to exactly 1; when absent,
// uniform 1/N weights are used. When groups are absent, every column is
// its own group. Backgrounds above WarnRowThreshold rows log a soft
// warning (never an error).
func New(data Matrix, opts ...Option) (*Background, error) {
	if data == nil || data.Rows() == 0 || data.Cols() == 0 {
		return nil, ErrEmptyData
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.transposed {
		return nil, ErrTransposed
	}

	n, p := data.Rows(), data.Cols()

	w := make([]float64, n)
	if o.weights == nil {
		for i := range w {
			w[i] = 1.0 / float64(n)
		}
	} else {
		if len(o.weights) != n {
			return nil, fmt.Errorf("New: got %d weights for %d rows: %w", len(o.weights), n, ErrWeightLength)
		}
		copy(w, o.weights)
		sum := floats.Sum(w)
		if !(sum > 0) || math.IsInf(sum, 0) {
			return nil, ErrWeightSum
		}
		floats.Scale(1/sum, w)
	}

	groups := o.groups
	if groups == nil {
		groups = make([][]int, p)
		for j := 0; j < p; j++ {
			groups[j] = []int{j}
		}
	} else {
		for gi, g := range groups {
			if len(g) == 0 {
				return nil, fmt.Errorf("New: group %d is empty: %w", gi, ErrBadGroups)
			}
			for _, j := range g {
				if j < 0 || j >= p {
					return nil, fmt.Errorf("New: group %d references column %d of %d: %w", gi, j, p, ErrBadGroups)
				}
			}
		}
		copied := make([][]int, len(groups))
		for gi, g := range groups {
			copied[gi] = append([]int(nil), g...)
		}
		groups = copied
	}

	if n > WarnRowThreshold {
		o.logger.Warn().
			Int("rows", n).
			Msgf("dataset: using %d background rows may cause slow explanations; consider dataset.Sample to summarize", n)
	}

	return &Background{data: data, weights: w, groups: groups}, nil
}

// Data returns the underlying feature matrix. Callers must not mutate it.
func (b *Background) Data() Matrix { return b.data }

// Weights returns the normalized row weights. Callers must not mutate them.
func (b *Background) Weights() []float64 { return b.weights }

// Groups returns the feature-group membership, one ordered column list per
// group. Callers must not mutate it.
func (b *Background) Groups() [][]int { return b.groups }

// Rows returns N, the number of background rows.
func (b *Background) Rows() int { return b.data.Rows() }

// Cols returns P, the number of raw feature columns.
func (b *Background) Cols() int { return b.data.Cols() }

// GroupCount returns M', the number of feature groups.
func (b *Background) GroupCount() int { return len(b.groups) }

// Sample returns a Dense holding k rows drawn without replacement from
// data, in draw order, using a deterministic seeded source. Subsampling a
// large background before constructing it keeps explanation cost bounded.
func Sample(data Matrix, k int, seed int64) (*Dense, error) {
	if data == nil || data.Rows() == 0 || data.Cols() == 0 {
		return nil, ErrEmptyData
	}
	if k < 1 || k > data.Rows() {
		return nil, fmt.Errorf("Sample: k=%d of %d rows: %w", k, data.Rows(), ErrBadSampleSize)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(data.Rows())[:k]

	out := make([]float64, k*data.Cols())
	row := make([]float64, data.Cols())
	for i, src := range perm {
		if _, err := data.Row(row, src); err != nil {
			return nil, err
		}
		copy(out[i*data.Cols():(i+1)*data.Cols()], row)
	}

	return NewDense(k, data.Cols(), out)
}
