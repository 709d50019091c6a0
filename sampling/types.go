// Package sampling: sentinel errors, defaults and option plumbing.
package sampling

import (
	"errors"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned by Plan.
var (
	// ErrTooFewGroups indicates M < 2. Zero- and one-group instances are
	// degenerate cases the orchestrator resolves without sampling.
	ErrTooFewGroups = errors.New("sampling: need at least two varying groups")

	// ErrBadBudget indicates a requested sample budget below 2; a single
	// coalition cannot identify more than one attribution.
	ErrBadBudget = errors.New("sampling: sample budget must be at least 2")
)

const (
	// AutoBudget requests the default budget 2·M + 2048 (capped at
	// 2^M − 2 when M ≤ 30).
	AutoBudget = 0

	// DefaultSeed seeds the coalition sampler when WithSeed is not given.
	// A fixed default keeps repeated explanations bit-identical.
	DefaultSeed int64 = 1

	// baseBudget is the constant part of the auto budget (2^11).
	baseBudget = 2048

	// maxEnumerableGroups bounds exact full-space accounting: above 30
	// groups the coalition space is treated as 2^30 for budget fractions.
	maxEnumerableGroups = 30

	// enumSlack forgives float round-off when deciding whether the budget
	// covers a full subset size.
	enumSlack = 1e-8
)

// CoalitionSet is the output of Plan: the mask matrix, per-row kernel
// weights, and the bookkeeping the solver needs.
type CoalitionSet struct {
	// Masks is n×M with entries exactly 0 or 1; row i marks the groups
	// "known" in coalition i. Rows are unique.
	Masks *mat.Dense

	// Weights holds the Shapley-kernel weight of each row. Weights across
	// both phases sum to 1 before the random-phase renormalization split.
	Weights []float64

	// Enumerated is the number of leading rows produced by exact
	// enumeration; rows beyond it come from the random phase.
	Enumerated int

	// FullSizes is the count of subset sizes enumerated exhaustively.
	FullSizes int

	// Budget is the effective sample budget after auto/cap resolution.
	Budget int

	// MaxSamples is the size of the non-trivial coalition space used for
	// budget fractions: 2^M − 2 when M ≤ 30, else 2^30.
	MaxSamples float64
}

// Len returns the number of sampled coalitions (rows actually populated).
func (c *CoalitionSet) Len() int { return len(c.Weights) }

// FractionEvaluated returns Budget / MaxSamples, the share of the
// coalition space the plan covers. The solver uses it to decide whether
// implicit feature selection is warranted.
func (c *CoalitionSet) FractionEvaluated() float64 {
	return float64(c.Budget) / c.MaxSamples
}

// Option configures Plan.
type Option func(*options)

type options struct {
	budget int
	seed   int64
	logger zerolog.Logger
}

func defaultOptions() options {
	return options{budget: AutoBudget, seed: DefaultSeed, logger: zerolog.Nop()}
}

// WithBudget sets the sample budget (number of coalitions to evaluate).
// AutoBudget selects 2·M + 2048. Budgets above the full coalition space
// are silently capped; that is not an error.
func WithBudget(n int) Option {
	return func(o *options) { o.budget = n }
}

// WithSeed fixes the pseudo-random source for the random fill phase.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLogger routes phase-by-phase debug traces to the given logger.
// Default: zerolog.Nop(), silent.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}
