// Package solver: the three SparseSelector backends.
//
//   - larsSelector  — least-angle regression path, fixed cardinality.
//   - icSelector    — lasso over a geometric alpha grid, support picked by
//     AIC or BIC.
//   - lassoSelector — coordinate-descent lasso at a fixed penalty.
//
// All three operate on the augmented weighted system built by augment();
// they only decide WHICH coefficients may be nonzero. The constrained
// solve re-estimates the surviving coefficients without shrinkage, which
// is what makes the overall procedure a debiased lasso.
package solver

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const (
	// cdMaxIter caps coordinate-descent sweeps per alpha.
	cdMaxIter = 1000

	// cdTol stops coordinate descent once no weight moves by more.
	cdTol = 1e-6

	// icGridSize is the number of alphas on the information-criterion grid.
	icGridSize = 30

	// icGridEps is the ratio of the smallest to the largest grid alpha.
	icGridEps = 1e-3

	// corrTiny treats residual correlations below it as converged.
	corrTiny = 1e-12
)

// larsSelector returns the first k features entering a least-angle
// regression path, in entry order. Entry order matters downstream: the
// constrained solve eliminates the LAST selected feature.
type larsSelector struct {
	k int
}

func (s larsSelector) Select(x *mat.Dense, y []float64) ([]int, error) {
	n, m := x.Dims()
	maxK := s.k
	if maxK > m {
		maxK = m
	}

	mu := make([]float64, n) // current prediction
	resid := make([]float64, n)
	corr := make([]float64, m)
	inActive := make([]bool, m)
	var active []int

	for len(active) < maxK {
		// Correlation of each column with the residual.
		for i := 0; i < n; i++ {
			resid[i] = y[i] - mu[i]
		}
		cmax, jstar := 0.0, -1
		for j := 0; j < m; j++ {
			corr[j] = colDot(x, j, resid)
			if !inActive[j] && math.Abs(corr[j]) > cmax {
				cmax = math.Abs(corr[j])
				jstar = j
			}
		}
		if jstar < 0 || cmax < corrTiny {
			break
		}
		active = append(active, jstar)
		inActive[jstar] = true

		// Equiangular direction over the signed active columns.
		na := len(active)
		xa := mat.NewDense(n, na, nil)
		for j, col := range active {
			sign := 1.0
			if corr[col] < 0 {
				sign = -1
			}
			for i := 0; i < n; i++ {
				xa.Set(i, j, sign*x.At(i, col))
			}
		}
		var gram mat.Dense
		gram.Mul(xa.T(), xa)
		ones := mat.NewVecDense(na, nil)
		for i := 0; i < na; i++ {
			ones.SetVec(i, 1)
		}
		var ga mat.VecDense
		if err := ga.SolveVec(&gram, ones); err != nil {
			// Collinear active set: the newest column adds nothing.
			active = active[:na-1]
			break
		}
		norm := 1 / math.Sqrt(mat.Sum(&ga))
		var u mat.VecDense
		u.MulVec(xa, &ga)
		u.ScaleVec(norm, &u)

		// Step to the point where the next column ties in correlation.
		gamma := cmax / norm
		if len(active) < m {
			for j := 0; j < m; j++ {
				if inActive[j] {
					continue
				}
				aj := colDotVec(x, j, &u)
				for _, g := range []float64{(cmax - corr[j]) / (norm - aj), (cmax + corr[j]) / (norm + aj)} {
					if g > corrTiny && g < gamma {
						gamma = g
					}
				}
			}
		}
		for i := 0; i < n; i++ {
			mu[i] += gamma * u.AtVec(i)
		}
	}

	return active, nil
}

// icSelector fits a lasso path over a descending geometric alpha grid with
// warm starts and keeps the support minimizing the information criterion
// n·ln(RSS/n) + penalty·df, penalty = 2 for AIC, ln(n) for BIC.
type icSelector struct {
	bic bool
}

func (s icSelector) Select(x *mat.Dense, y []float64) ([]int, error) {
	n, m := x.Dims()
	xc, yc := centered(x, y)

	alphaMax := 0.0
	for j := 0; j < m; j++ {
		if c := math.Abs(colDot(xc, j, yc)) / float64(n); c > alphaMax {
			alphaMax = c
		}
	}
	if alphaMax <= 0 {
		return nil, nil
	}

	penalty := 2.0
	if s.bic {
		penalty = math.Log(float64(n))
	}

	w := make([]float64, m)
	bestIC := math.Inf(1)
	var best []int
	for g := 0; g < icGridSize; g++ {
		alpha := alphaMax * math.Pow(icGridEps, float64(g)/float64(icGridSize-1))
		coordinateDescent(xc, yc, alpha, w)

		rss, df := 0.0, 0
		for i := 0; i < n; i++ {
			r := yc[i]
			for j := 0; j < m; j++ {
				r -= xc.At(i, j) * w[j]
			}
			rss += r * r
		}
		for _, wj := range w {
			if wj != 0 {
				df++
			}
		}
		ic := float64(n)*math.Log(math.Max(rss, corrTiny)/float64(n)) + penalty*float64(df)
		if ic < bestIC {
			bestIC = ic
			best = support(w)
		}
	}

	return best, nil
}

// lassoSelector runs coordinate descent at a single fixed penalty and
// returns the resulting support.
type lassoSelector struct {
	alpha float64
}

func (s lassoSelector) Select(x *mat.Dense, y []float64) ([]int, error) {
	xc, yc := centered(x, y)
	_, m := x.Dims()
	w := make([]float64, m)
	coordinateDescent(xc, yc, s.alpha, w)

	return support(w), nil
}

// coordinateDescent minimizes (1/2n)·||y − Xw||² + alpha·||w||₁ in place,
// one coordinate at a time with soft thresholding, maintaining the
// residual incrementally.
func coordinateDescent(x *mat.Dense, y []float64, alpha float64, w []float64) {
	n, m := x.Dims()
	thresh := alpha * float64(n)

	xtx := make([]float64, m)
	for j := 0; j < m; j++ {
		for i := 0; i < n; i++ {
			v := x.At(i, j)
			xtx[j] += v * v
		}
	}

	resid := make([]float64, n)
	copy(resid, y)
	for j := 0; j < m; j++ {
		if w[j] != 0 {
			for i := 0; i < n; i++ {
				resid[i] -= x.At(i, j) * w[j]
			}
		}
	}

	for iter := 0; iter < cdMaxIter; iter++ {
		maxDelta := 0.0
		for j := 0; j < m; j++ {
			if xtx[j] == 0 {
				continue
			}
			// rho = x_jᵀ(resid + w_j·x_j)
			rho := w[j] * xtx[j]
			for i := 0; i < n; i++ {
				rho += x.At(i, j) * resid[i]
			}
			next := softThreshold(rho, thresh) / xtx[j]
			if delta := next - w[j]; delta != 0 {
				for i := 0; i < n; i++ {
					resid[i] -= x.At(i, j) * delta
				}
				if ad := math.Abs(delta); ad > maxDelta {
					maxDelta = ad
				}
				w[j] = next
			}
		}
		if maxDelta < cdTol {
			break
		}
	}
}

// softThreshold is the lasso shrinkage operator.
func softThreshold(z, t float64) float64 {
	switch {
	case z > t:
		return z - t
	case z < -t:
		return z + t
	default:
		return 0
	}
}

// centered returns column-centered copies of x and y (the intercept is
// fit implicitly, as the reference lasso implementations do).
func centered(x *mat.Dense, y []float64) (*mat.Dense, []float64) {
	n, m := x.Dims()
	xc := mat.DenseCopyOf(x)
	for j := 0; j < m; j++ {
		mean := 0.0
		for i := 0; i < n; i++ {
			mean += xc.At(i, j)
		}
		mean /= float64(n)
		for i := 0; i < n; i++ {
			xc.Set(i, j, xc.At(i, j)-mean)
		}
	}
	yc := make([]float64, n)
	ymean := 0.0
	for _, v := range y {
		ymean += v
	}
	ymean /= float64(n)
	for i, v := range y {
		yc[i] = v - ymean
	}

	return xc, yc
}

// support returns the ascending indices of nonzero weights.
func support(w []float64) []int {
	var idx []int
	for j, v := range w {
		if v != 0 {
			idx = append(idx, j)
		}
	}
	sort.Ints(idx)

	return idx
}

// colDot returns xᵀ[:,j]·v.
func colDot(x *mat.Dense, j int, v []float64) float64 {
	n, _ := x.Dims()
	out := 0.0
	for i := 0; i < n; i++ {
		out += x.At(i, j) * v[i]
	}

	return out
}

// colDotVec returns xᵀ[:,j]·v for a gonum vector.
func colDotVec(x *mat.Dense, j int, v *mat.VecDense) float64 {
	n, _ := x.Dims()
	out := 0.0
	for i := 0; i < n; i++ {
		out += x.At(i, j) * v.AtVec(i)
	}

	return out
}
