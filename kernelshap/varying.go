package kernelshap

import (
	"math"
	"sort"

	"github.com/katalvlaran/shapkit/dataset"
)

// Tolerances for the varying-feature comparison. closeAtol/closeRtol
// mirror the conventional absolute/relative tolerance split; sparseTol is
// the coarser threshold of the nonzero-value comparison path.
const (
	closeAtol = 1e-8
	closeRtol = 1e-5
	sparseTol = 1e-7
)

// varyingGroups returns the ascending indices of feature groups whose
// value differs between the instance x (1×P) and at least one background
// row. Groups that cannot differ cannot earn a nonzero attribution, so
// the rest of the pipeline only ever sees this subset; the returned order
// is authoritative for mask-column meaning.
//
// Two paths:
//   - sparse fast path, when instance and background are both
//     row-compressed and every group is a single column: only columns
//     with a stored nonzero on either side are examined, and a column is
//     varying unless all stored background values match the instance
//     within sparseTol (a column nonzero in the instance but only
//     partially stored in the background always stays varying);
//   - generic path: tolerant elementwise compare, treating matched NaNs
//     as equal.
func (e *Explainer) varyingGroups(x dataset.Matrix) ([]int, error) {
	xs, xSparse := x.(*dataset.Sparse)
	bs, bgSparse := e.bg.Data().(*dataset.Sparse)
	if xSparse && bgSparse && singletonGroups(e.bg.Groups()) {
		return e.varyingSparse(xs, bs)
	}

	return e.varyingDense(x)
}

func (e *Explainer) varyingDense(x dataset.Matrix) ([]int, error) {
	var varying []int
	bg := e.bg.Data()
	n := bg.Rows()

groups:
	for gi, group := range e.bg.Groups() {
		for _, col := range group {
			xv, err := x.At(0, col)
			if err != nil {
				return nil, err
			}
			for r := 0; r < n; r++ {
				bv, err := bg.At(r, col)
				if err != nil {
					return nil, err
				}
				if !closeEqual(xv, bv) {
					varying = append(varying, gi)
					continue groups
				}
			}
		}
	}

	return varying, nil
}

// varyingSparse ports the nonzero-position comparison: columns where both
// instance and all background rows are structurally zero are excluded
// without examination.
func (e *Explainer) varyingSparse(x, bg *dataset.Sparse) ([]int, error) {
	n := bg.Rows()

	candidates := map[int]struct{}{}
	for _, j := range bg.NonzeroCols() {
		candidates[j] = struct{}{}
	}
	for _, j := range x.NonzeroCols() {
		candidates[j] = struct{}{}
	}

	var varying []int
	for j := range candidates {
		xv, err := x.At(0, j)
		if err != nil {
			return nil, err
		}
		rows := bg.ColumnNonzero(j)
		if len(rows) > 0 {
			mismatches := 0
			for _, r := range rows {
				bv, bErr := bg.At(r, j)
				if bErr != nil {
					return nil, bErr
				}
				if math.Abs(bv-xv) > sparseTol {
					mismatches++
				}
			}
			// All stored values match: still varying when the instance is
			// nonzero and some background rows hold a structural zero.
			if mismatches == 0 && !(math.Abs(xv) > sparseTol && len(rows) < n) {
				continue
			}
		}
		varying = append(varying, j)
	}
	sort.Ints(varying)

	return varying, nil
}

// closeEqual is a numerically tolerant equality with NaN==NaN.
func closeEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}

	return math.Abs(a-b) <= closeAtol+closeRtol*math.Abs(b)
}

func singletonGroups(groups [][]int) bool {
	for gi, g := range groups {
		if len(g) != 1 || g[0] != gi {
			return false
		}
	}

	return true
}
