package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solve — sum-constrained weighted least squares
//
// Description:
//
//	Recovers the attribution vector phi (length M) for one output
//	dimension from the sampled coalition system. The sum-to-total
//	constraint Σphi = TotalDiff holds exactly by construction: the last
//	selected feature is eliminated from the regression, its forced
//	contribution is folded into the target and the design, and its
//	coefficient is recovered as TotalDiff minus the sum of the rest.
//
// Algorithm outline:
//  1. Optional feature selection on the augmented ±mask system (see
//     package doc); skipped supports yield phi = 0 for those features.
//  2. eyAdj2 = EyAdj − mask[:,last]·TotalDiff;
//     etmp   = mask[:,others] − mask[:,last] (column broadcast).
//  3. Normal equations weighted by the kernel weights:
//     w = (etmpᵀ·W·etmp)⁻¹ · etmpᵀ·W·eyAdj2.
//  4. phi[others] = w; phi[last] = TotalDiff − Σw; entries with
//     |phi| < 1e-10 are clamped to zero.
//
// Returns (phi, phiVar, error). phiVar is a unit placeholder variance.
//
// Errors:
//   - ErrBadProblem — inconsistent dimensions or NumFeatures(k<1).
//   - ErrSingular   — the weighted normal-equations matrix is not
//     invertible. Fatal, surfaced to the caller, never retried.
func Solve(p Problem) ([]float64, []float64, error) {
	if p.Masks == nil {
		return nil, nil, fmt.Errorf("Solve: nil mask matrix: %w", ErrBadProblem)
	}
	n, m := p.Masks.Dims()
	if n < 1 || m < 2 || len(p.Weights) != n || len(p.EyAdj) != n {
		return nil, nil, fmt.Errorf("Solve: n=%d m=%d weights=%d targets=%d: %w",
			n, m, len(p.Weights), len(p.EyAdj), ErrBadProblem)
	}
	if p.Reg.mode == regNumFeatures && p.Reg.k < 1 {
		return nil, nil, fmt.Errorf("Solve: num_features(%d): %w", p.Reg.k, ErrBadProblem)
	}

	if p.Reg.mode == regAuto {
		p.Logger.Warn().Msg("solver: Auto regularization is deprecated; its conditional-AIC behavior " +
			"is kept for compatibility but a future default will be num_features based")
	}

	// Selection runs when explicitly requested, or implicitly under Auto
	// when the sampled fraction of the coalition space is small.
	// Alpha(0) is a zero penalty: selection off, like None.
	selected := ascending(m)
	runSelection := p.Reg.mode == regAIC || p.Reg.mode == regBIC || p.Reg.mode == regNumFeatures ||
		(p.Reg.mode == regAlpha && p.Reg.alpha != 0) ||
		(p.Reg.mode == regAuto && p.FractionEvaluated < ImplicitSelectionThreshold)
	if runSelection {
		xAug, yAug := augment(p)
		sel := p.Reg.selector()
		inds, err := sel.Select(xAug, yAug)
		if err != nil {
			return nil, nil, fmt.Errorf("Solve: %s selection: %w", p.Reg, err)
		}
		selected = inds
		p.Logger.Debug().Str("mode", p.Reg.String()).Ints("support", selected).
			Msg("solver: feature selection done")
	}

	phi := make([]float64, m)
	phiVar := make([]float64, m)
	for i := range phiVar {
		phiVar[i] = 1
	}
	if len(selected) == 0 {
		return phi, phiVar, nil
	}

	// Eliminate the last selected feature to enforce the constraint.
	last := selected[len(selected)-1]
	rest := selected[:len(selected)-1]

	if len(rest) > 0 {
		eyAdj2 := make([]float64, n)
		for i := 0; i < n; i++ {
			eyAdj2[i] = p.EyAdj[i] - p.Masks.At(i, last)*p.TotalDiff
		}

		etmp := mat.NewDense(n, len(rest), nil)
		wtmp := mat.NewDense(n, len(rest), nil)
		for i := 0; i < n; i++ {
			ml := p.Masks.At(i, last)
			for j, col := range rest {
				v := p.Masks.At(i, col) - ml
				etmp.Set(i, j, v)
				wtmp.Set(i, j, v*p.Weights[i])
			}
		}

		var a mat.Dense
		a.Mul(wtmp.T(), etmp)
		var ainv mat.Dense
		if err := ainv.Inverse(&a); err != nil {
			return nil, nil, fmt.Errorf("Solve: %v: %w", err, ErrSingular)
		}

		var b mat.VecDense
		b.MulVec(wtmp.T(), mat.NewVecDense(n, eyAdj2))
		var w mat.VecDense
		w.MulVec(&ainv, &b)

		sum := 0.0
		for j, col := range rest {
			phi[col] = w.AtVec(j)
			sum += w.AtVec(j)
		}
		phi[last] = p.TotalDiff - sum
	} else {
		// A single selected feature carries the whole difference.
		phi[last] = p.TotalDiff
	}

	// Clean up rounding noise.
	for i := range phi {
		if math.Abs(phi[i]) < phiEpsilon {
			phi[i] = 0
		}
	}
	p.Logger.Debug().Floats64("phi", phi).Float64("total_diff", p.TotalDiff).Msg("solver: solved")

	return phi, phiVar, nil
}

// augment stacks the coalition design with its complement (mask − 1), each
// row weighted by √(kernelWeight · size factor), and builds the matching
// target: the complement half answers for the part of TotalDiff the
// coalition itself does not explain.
func augment(p Problem) (*mat.Dense, []float64) {
	n, m := p.Masks.Dims()
	xAug := mat.NewDense(2*n, m, nil)
	yAug := make([]float64, 2*n)

	for i := 0; i < n; i++ {
		s := floats.Sum(p.Masks.RawRowView(i))
		wTop := math.Sqrt(p.Weights[i] * (float64(m) - s))
		wBot := math.Sqrt(p.Weights[i] * s)
		for j := 0; j < m; j++ {
			v := p.Masks.At(i, j)
			xAug.Set(i, j, v*wTop)
			xAug.Set(n+i, j, (v-1)*wBot)
		}
		yAug[i] = p.EyAdj[i] * wTop
		yAug[n+i] = (p.EyAdj[i] - p.TotalDiff) * wBot
	}

	return xAug, yAug
}

// selector maps a Regularization to its SparseSelector implementation.
// Auto keeps the legacy AIC semantics.
func (r Regularization) selector() SparseSelector {
	switch r.mode {
	case regNumFeatures:
		return larsSelector{k: r.k}
	case regBIC:
		return icSelector{bic: true}
	case regAlpha:
		return lassoSelector{alpha: r.alpha}
	default: // regAuto, regAIC
		return icSelector{}
	}
}

func ascending(m int) []int {
	out := make([]int, m)
	for i := range out {
		out[i] = i
	}

	return out
}
