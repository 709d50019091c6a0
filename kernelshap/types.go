// Package kernelshap: canonical callable contracts, sentinel errors,
// the Attribution result type, and option plumbing.
package kernelshap

import (
	"errors"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/shapkit/dataset"
	"github.com/katalvlaran/shapkit/sampling"
	"github.com/katalvlaran/shapkit/solver"
)

// Sentinel errors returned by the kernelshap package.
var (
	// ErrNilModel indicates a nil model was passed to New.
	ErrNilModel = errors.New("kernelshap: model is nil")

	// ErrNilBackground indicates a nil background dataset was passed to New.
	ErrNilBackground = errors.New("kernelshap: background is nil")

	// ErrDimensionMismatch indicates an instance whose feature count does
	// not match the background's column count. Detected before sampling.
	ErrDimensionMismatch = errors.New("kernelshap: instance dimensions do not match background")

	// ErrModelShape indicates the model returned a row count different
	// from its input row count, violating the Model contract.
	ErrModelShape = errors.New("kernelshap: model output rows do not match input rows")

	// ErrInstanceShape indicates ExplainMatrix received a matrix that is
	// not a single row.
	ErrInstanceShape = errors.New("kernelshap: instance matrix must have exactly one row")
)

// Model is the canonical target-function contract: Predict accepts a batch
// of rows and returns one output row per input row, in input order, as a
// rows×D dense matrix (D=1 for scalar models). Adapters convert user
// callables into this shape once, at the boundary, not per call.
type Model interface {
	Predict(x dataset.Matrix) (*mat.Dense, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(x dataset.Matrix) (*mat.Dense, error)

// Predict implements Model.
func (f ModelFunc) Predict(x dataset.Matrix) (*mat.Dense, error) { return f(x) }

// ScalarModelFunc adapts a scalar-output function (one float per row) to
// the Model interface; outputs become a rows×1 matrix.
type ScalarModelFunc func(x dataset.Matrix) ([]float64, error)

// Predict implements Model.
func (f ScalarModelFunc) Predict(x dataset.Matrix) (*mat.Dense, error) {
	out, err := f(x)
	if err != nil {
		return nil, err
	}

	return mat.NewDense(len(out), 1, out), nil
}

// Attribution is the result of one explanation: per-group, per-output
// Shapley values. Rows span ALL feature groups of the background (M′);
// groups that do not vary from the background hold exact zeros.
type Attribution struct {
	// Values is M′×D; column d sums to link(f(x))[d] − BaseValue[d].
	Values *mat.Dense

	// Variance is an M′×D placeholder variance (unit for estimated
	// entries); kept for interface stability.
	Variance *mat.Dense

	// BaseValue is link(E[f(background)]) per output dimension.
	BaseValue []float64
}

// Phi returns column d of Values as a fresh slice: one attribution per
// feature group.
func (a *Attribution) Phi(d int) []float64 {
	return mat.Col(nil, d, a.Values)
}

// Option configures the Explainer at construction.
type Option func(*config)

// CallOption adjusts a single Explain / ExplainBatch call.
type CallOption func(*callConfig)

type config struct {
	link   Link
	logger zerolog.Logger
}

type callConfig struct {
	nsamples int
	reg      solver.Regularization
	seed     int64
}

func defaultConfig() config {
	return config{link: Identity{}, logger: zerolog.Nop()}
}

func defaultCallConfig() callConfig {
	return callConfig{
		nsamples: sampling.AutoBudget,
		reg:      solver.Auto(),
		seed:     sampling.DefaultSeed,
	}
}

// WithLink sets the link function connecting attributions (which sum in
// link space) to raw model output. Default: Identity.
func WithLink(l Link) Option {
	return func(c *config) { c.link = l }
}

// WithLogger routes warnings and debug traces from the whole pipeline
// (dataset advisory, sampling phases, solver) to the given logger.
// Default: zerolog.Nop(), silent.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithNSamples sets the coalition budget for this call: how many times the
// model output is re-evaluated per explanation. sampling.AutoBudget
// (default) picks 2·M + 2048.
func WithNSamples(n int) CallOption {
	return func(c *callConfig) { c.nsamples = n }
}

// WithL1Reg selects the sparse feature-selection strategy for this call.
// Default: solver.Auto(), the deprecated legacy behavior.
func WithL1Reg(r solver.Regularization) CallOption {
	return func(c *callConfig) { c.reg = r }
}

// WithSeed fixes the coalition sampler's pseudo-random seed for this call;
// identical inputs and seed yield bit-identical attributions.
func WithSeed(seed int64) CallOption {
	return func(c *callConfig) { c.seed = seed }
}
