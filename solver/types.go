// Package solver: sentinel errors, the Problem input, the Regularization
// value type, and the SparseSelector contract.
package solver

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned by Solve.
var (
	// ErrSingular indicates the weighted normal-equations matrix could not
	// be inverted. Fatal for the affected output dimension; not retried.
	ErrSingular = errors.New("solver: singular normal-equations matrix")

	// ErrBadProblem indicates inconsistent problem dimensions (mask rows,
	// weights and targets must agree, and at least two coalitions with at
	// least two features are required).
	ErrBadProblem = errors.New("solver: inconsistent problem dimensions")
)

const (
	// ImplicitSelectionThreshold is the enumeration fraction below which
	// Auto regularization falls back to AIC-based feature selection.
	ImplicitSelectionThreshold = 0.2

	// phiEpsilon zeroes attribution entries that are numerical noise.
	phiEpsilon = 1e-10
)

// Problem is one weighted regression instance: a single output dimension
// of a single explanation.
type Problem struct {
	// Masks is the n×M coalition design matrix with entries exactly 0/1.
	Masks *mat.Dense

	// Weights holds the Shapley kernel weight of each coalition row.
	Weights []float64

	// EyAdj is link(E[f|coalition]) − link(fnull) per coalition row.
	EyAdj []float64

	// TotalDiff is link(f(x)) − link(fnull): the value the attributions
	// must sum to, exactly.
	TotalDiff float64

	// FractionEvaluated is the sampled share of the coalition space;
	// below ImplicitSelectionThreshold the Auto mode activates selection.
	FractionEvaluated float64

	// Reg selects the feature-selection strategy. Zero value is Auto().
	Reg Regularization

	// Logger receives solver debug traces and the Auto deprecation
	// warning. Zero value (disabled logger) is fine.
	Logger zerolog.Logger
}

// regMode enumerates feature-selection strategies.
type regMode int

const (
	regAuto regMode = iota // legacy: AIC only below the enumeration-fraction threshold
	regNone                // selection off
	regAIC
	regBIC
	regNumFeatures
	regAlpha
)

// Regularization selects how (and whether) the solver restricts the
// support of nonzero attributions before the constrained solve. The zero
// value is Auto().
type Regularization struct {
	mode  regMode
	k     int
	alpha float64
}

// Auto preserves the legacy behavior: AIC-based selection when less than
// 20% of the coalition space was enumerated, no selection otherwise.
//
// Deprecated: Auto exists for compatibility with the historical default
// and logs a warning when it triggers; choose an explicit mode instead.
func Auto() Regularization { return Regularization{mode: regAuto} }

// None disables feature selection; every varying group may receive a
// nonzero attribution.
func None() Regularization { return Regularization{mode: regNone} }

// AIC selects the support by lasso with the Akaike information criterion.
func AIC() Regularization { return Regularization{mode: regAIC} }

// BIC selects the support by lasso with the Bayesian information criterion.
func BIC() Regularization { return Regularization{mode: regBIC} }

// NumFeatures keeps at most k features, chosen by a least-angle-regression
// path. k < 1 is a programmer error reported by Solve as ErrBadProblem.
func NumFeatures(k int) Regularization { return Regularization{mode: regNumFeatures, k: k} }

// Alpha runs a coordinate-descent lasso at the fixed penalty a.
// Alpha(0) is a zero penalty and therefore disables selection entirely,
// behaving like None.
func Alpha(a float64) Regularization { return Regularization{mode: regAlpha, alpha: a} }

// String reports the mode for logs and error messages.
func (r Regularization) String() string {
	switch r.mode {
	case regAuto:
		return "auto"
	case regNone:
		return "none"
	case regAIC:
		return "aic"
	case regBIC:
		return "bic"
	case regNumFeatures:
		return fmt.Sprintf("num_features(%d)", r.k)
	default:
		return fmt.Sprintf("alpha(%g)", r.alpha)
	}
}

// SparseSelector chooses the support of nonzero coefficients on the
// augmented weighted system. Implementations must return ascending-unique
// column indices; order is meaningful only for path-based selectors
// (entry order). An empty result is valid and yields an all-zero
// attribution.
type SparseSelector interface {
	// Select returns the chosen column indices of X for target y.
	Select(x *mat.Dense, y []float64) ([]int, error)
}
