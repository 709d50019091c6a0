// Package dataset: domain types, sentinel errors and option plumbing.
// Errors follow the package convention: every message carries the
// "dataset: " prefix, algorithms return these sentinels (possibly wrapped
// with %w), and tests match them via errors.Is.
package dataset

import (
	"errors"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Sentinel errors returned by the dataset package.
var (
	// ErrEmptyData indicates a nil or zero-sized data matrix.
	ErrEmptyData = errors.New("dataset: data matrix is nil or empty")

	// ErrTransposed indicates the data matrix was declared column-major
	// (transposed); only row-per-sample layouts are supported.
	ErrTransposed = errors.New("dataset: transposed data layout is not supported")

	// ErrWeightLength indicates len(weights) != number of rows.
	ErrWeightLength = errors.New("dataset: weight vector length does not match row count")

	// ErrWeightSum indicates the weight vector does not have a positive,
	// finite sum and therefore cannot be normalized.
	ErrWeightSum = errors.New("dataset: weights must have a positive finite sum")

	// ErrBadGroups indicates an empty feature group or a column index
	// outside [0, Cols).
	ErrBadGroups = errors.New("dataset: invalid feature group definition")

	// ErrOutOfRange indicates a row or column index outside matrix bounds.
	ErrOutOfRange = errors.New("dataset: index out of range")

	// ErrBadShape indicates non-positive dimensions or a data slice whose
	// length does not match rows*cols.
	ErrBadShape = errors.New("dataset: invalid matrix shape")

	// ErrBadSampleSize indicates a subsample size k outside [1, Rows].
	ErrBadSampleSize = errors.New("dataset: subsample size out of range")
)

// WarnRowThreshold is the background size above which New logs a soft
// warning: each sampled coalition evaluates the model once per background
// row, so cost grows linearly with N.
const WarnRowThreshold = 100

// Matrix is the feature-matrix abstraction every higher-level stage of the
// explanation pipeline depends on. Implementations: Dense (row-major flat
// buffer) and Sparse (compressed rows). Both are safe for concurrent
// reads; mutation (SetColumnBlock) is reserved for exclusively-owned
// synthetic buffers.
type Matrix interface {
	// Rows returns the number of rows. O(1).
	Rows() int

	// Cols returns the number of columns. O(1).
	Cols() int

	// At returns the element at (i, j), or ErrOutOfRange.
	// O(1) for Dense, O(log nnz(row)) for CSR.
	At(i, j int) (float64, error)

	// Row copies row i into dst (allocated when nil) and returns it as a
	// dense slice of length Cols. Returns ErrOutOfRange on a bad index.
	Row(dst []float64, i int) ([]float64, error)

	// RowMatrix extracts row i as an independent 1×Cols matrix of the
	// same representation (dense stays dense, sparse stays sparse).
	RowMatrix(i int) (Matrix, error)

	// Tile returns a new matrix with the full row block repeated n times:
	// (n*Rows) × Cols. The receiver is not modified.
	Tile(n int) Matrix

	// SetColumnBlock overwrites column col with value v for the row range
	// [row0, row0+n). Used by the synthetic-data builder to pin a "known"
	// feature to the instance value across one background block.
	SetColumnBlock(row0, n, col int, v float64) error

	// ColumnNonzero returns the (ascending) row indices holding a nonzero
	// stored value in column col.
	ColumnNonzero(col int) []int

	// ToDense materializes the matrix as a gonum *mat.Dense, one output
	// row per input row. Model adapters that want BLAS-backed math use
	// this; sparse-aware models may type-assert *Sparse instead.
	ToDense() *mat.Dense

	// Clone returns a deep, independent copy.
	Clone() Matrix
}

// Option configures Background construction.
type Option func(*options)

type options struct {
	weights    []float64
	groups     [][]int
	transposed bool
	logger     zerolog.Logger
}

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}

// WithWeights sets per-row weights. They are copied and normalized so the
// stored weights sum to exactly 1. Default: uniform 1/N.
func WithWeights(w []float64) Option {
	return func(o *options) { o.weights = w }
}

// WithGroups assigns columns to feature groups; each group is an ordered
// list of column indices and becomes one atomic attribution unit.
// Default: every column is its own group.
func WithGroups(groups [][]int) Option {
	return func(o *options) { o.groups = groups }
}

// WithTransposed declares the data matrix column-major (features as rows).
// The pipeline only supports row-per-sample layouts, so New rejects a
// transposed declaration with ErrTransposed; transpose the data first.
func WithTransposed(t bool) Option {
	return func(o *options) { o.transposed = t }
}

// WithLogger routes construction warnings (large-background advisory) to
// the given logger. Default: zerolog.Nop(), silent.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}
