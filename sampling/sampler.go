package sampling

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"
)

// Plan — weighted coalition sampling for Kernel SHAP
//
// Description:
//
//	Given M varying feature groups and a sample budget, Plan produces the
//	mask matrix and kernel weights of every coalition to evaluate. Subset
//	sizes are processed in increasing order of k ∈ [1, ceil((M-1)/2)]; a
//	size is enumerated exhaustively while the remaining budget, weighted
//	by the remaining normalized kernel mass, covers all C(M,k) coalitions
//	(times two in the paired range, where each coalition's bitwise
//	complement is emitted alongside it). Leftover budget is spent on
//	weighted random draws over the remaining sizes, deduplicated by a
//	canonical packed-bitset key: a repeated mask increments the weight of
//	its first occurrence (and of the complement stored right after it)
//	instead of allocating a new row.
//
// Algorithm outline:
//  1. w(k) = (M-1)/(k·(M-k)) for k = 1..ceil((M-1)/2); double w(k) for
//     k ≤ floor((M-1)/2); normalize to sum 1.
//  2. Greedy exact enumeration (per-coalition weight w(k)/C(M,k), halved
//     again in the paired range).
//  3. Weighted random fill with dedup, unit provisional weights.
//  4. Random-phase weights rescaled so their total equals the kernel mass
//     the exact phase left unassigned.
//
// Errors:
//   - ErrTooFewGroups — M < 2.
//   - ErrBadBudget    — explicit budget below 2.
//
// Complexity: O(n·M) time and memory for n sampled coalitions.
func Plan(m int, opts ...Option) (*CoalitionSet, error) {
	if m < 2 {
		return nil, ErrTooFewGroups
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	budget := o.budget
	if budget == AutoBudget {
		budget = 2*m + baseBudget
	}
	if budget < 2 {
		return nil, ErrBadBudget
	}

	// Full non-trivial coalition space; budget fractions use 2^30 beyond
	// the exactly enumerable range.
	maxSamples := math.Pow(2, float64(maxEnumerableGroups))
	if m <= maxEnumerableGroups {
		maxSamples = math.Pow(2, float64(m)) - 2
		if full := int(maxSamples); budget > full {
			budget = full
		}
	}

	numSubsetSizes := int(math.Ceil(float64(m-1) / 2))
	numPairedSubsetSizes := int(math.Floor(float64(m-1) / 2))

	weightVector := make([]float64, numSubsetSizes)
	for i := range weightVector {
		k := float64(i + 1)
		weightVector[i] = float64(m-1) / (k * (float64(m) - k))
	}
	for i := 0; i < numPairedSubsetSizes; i++ {
		weightVector[i] *= 2
	}
	floats.Scale(1/floats.Sum(weightVector), weightVector)
	o.logger.Debug().Floats64("weight_vector", weightVector).Int("m", m).Int("budget", budget).
		Msg("sampling: kernel weights per subset size")

	c := &collector{
		masks:   mat.NewDense(budget, m, nil),
		weights: make([]float64, budget),
	}

	// Phase 1: exact enumeration of the leading subset sizes.
	numFullSubsets := 0
	numSamplesLeft := float64(budget)
	mask := make([]float64, m)
	remaining := append([]float64(nil), weightVector...)
	for size := 1; size <= numSubsetSizes; size++ {
		nsubsets := binomialFloat(m, size)
		if size <= numPairedSubsetSizes {
			nsubsets *= 2
		}
		if numSamplesLeft*remaining[size-1]/nsubsets < 1.0-enumSlack {
			break
		}
		numFullSubsets++
		numSamplesLeft -= nsubsets

		// Rescale what is left of the remaining weight vector to sum to 1.
		if remaining[size-1] < 1.0 {
			floats.Scale(1/(1-remaining[size-1]), remaining)
		}

		w := weightVector[size-1] / binomialFloat(m, size)
		if size <= numPairedSubsetSizes {
			w /= 2
		}
		gen := combin.NewCombinationGenerator(m, size)
		inds := make([]int, size)
		for gen.Next() {
			gen.Combination(inds)
			zero(mask)
			for _, j := range inds {
				mask[j] = 1
			}
			c.add(mask, w)
			if size <= numPairedSubsetSizes {
				complement(mask)
				c.add(mask, w)
			}
		}
	}
	o.logger.Debug().Int("num_full_subsets", numFullSubsets).Int("enumerated", c.added).
		Msg("sampling: exact enumeration done")

	// Phase 2: weighted random fill over the remaining sizes, with dedup.
	numFixed := c.added
	samplesLeft := budget - c.added
	if numFullSubsets != numSubsetSizes {
		remaining = append([]float64(nil), weightVector...)
		// Paired sizes yield two rows per draw below.
		for i := 0; i < numPairedSubsetSizes; i++ {
			remaining[i] /= 2
		}
		remaining = remaining[numFullSubsets:]
		floats.Scale(1/floats.Sum(remaining), remaining)

		rng := rand.New(rand.NewSource(o.seed))
		pool := drawSizes(rng, remaining, 4*samplesLeft)
		used := make(map[string]int, samplesLeft)
		key := make([]byte, (m+7)/8)

		for pos := 0; samplesLeft > 0 && pos < len(pool); pos++ {
			zero(mask)
			size := pool[pos] + numFullSubsets + 1
			for _, j := range rng.Perm(m)[:size] {
				mask[j] = 1
			}

			// A repeated mask only bumps the weight of its first occurrence.
			k := maskKey(key, mask)
			row, seen := used[k]
			newSample := !seen
			if newSample {
				used[k] = c.added
				row = c.added
				samplesLeft--
				c.add(mask, 1)
			} else {
				c.weights[row]++
			}

			if samplesLeft > 0 && size <= numPairedSubsetSizes {
				complement(mask)
				// The complement of a fresh mask lands in the very next row,
				// so a duplicate's complement weight lives at row+1.
				if newSample {
					samplesLeft--
					c.add(mask, 1)
				} else {
					c.weights[row+1]++
				}
			}
		}

		// Rescale random-phase weights to the kernel mass the exact phase
		// left unassigned.
		weightLeft := floats.Sum(weightVector[numFullSubsets:])
		randTotal := floats.Sum(c.weights[numFixed:c.added])
		if randTotal > 0 {
			floats.Scale(weightLeft/randTotal, c.weights[numFixed:c.added])
		}
		o.logger.Debug().Float64("weight_left", weightLeft).Int("random_rows", c.added-numFixed).
			Msg("sampling: random fill done")
	}

	return &CoalitionSet{
		Masks:      c.masks.Slice(0, c.added, 0, m).(*mat.Dense),
		Weights:    c.weights[:c.added],
		Enumerated: numFixed,
		FullSizes:  numFullSubsets,
		Budget:     budget,
		MaxSamples: maxSamples,
	}, nil
}

// collector accumulates mask rows append-only, never past the allocated
// budget.
type collector struct {
	masks   *mat.Dense
	weights []float64
	added   int
}

func (c *collector) add(mask []float64, w float64) {
	c.masks.SetRow(c.added, mask)
	c.weights[c.added] = w
	c.added++
}

// binomialFloat computes C(n, k) in floating point; unlike integer
// binomials it does not overflow for the sizes budget accounting needs.
func binomialFloat(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	out := 1.0
	for i := 1; i <= k; i++ {
		out *= float64(n-k+i) / float64(i)
	}

	return out
}

// drawSizes draws n indices from the categorical distribution p (assumed
// normalized) using inverse-CDF sampling on the given source.
func drawSizes(rng *rand.Rand, p []float64, n int) []int {
	cum := make([]float64, len(p))
	floats.CumSum(cum, p)
	out := make([]int, n)
	for i := range out {
		u := rng.Float64()
		j := 0
		for j < len(cum)-1 && u > cum[j] {
			j++
		}
		out[i] = j
	}

	return out
}

// maskKey packs the 0/1 mask into buf as a fixed-width bitset and returns
// it as a string key. Encoding bits rather than float values keeps dedup
// independent of floating-point representation.
func maskKey(buf []byte, mask []float64) string {
	for i := range buf {
		buf[i] = 0
	}
	for j, v := range mask {
		if v == 1 {
			buf[j/8] |= 1 << uint(j%8)
		}
	}

	return string(buf)
}

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}

// complement flips a 0/1 mask in place.
func complement(mask []float64) {
	for i, v := range mask {
		mask[i] = 1 - v
	}
}
