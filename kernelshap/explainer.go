package kernelshap

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/shapkit/dataset"
	"github.com/katalvlaran/shapkit/sampling"
	"github.com/katalvlaran/shapkit/solver"
)

// Explainer estimates Shapley-value attributions for single predictions
// of an arbitrary model against a fixed background dataset. It is
// immutable after New and safe for concurrent Explain calls: all per-call
// buffers live in a session value created fresh inside each call.
type Explainer struct {
	model    Model
	link     Link
	bg       *dataset.Background
	fnull    []float64 // E[f(background)], length D
	expected []float64 // link(fnull), length D
	d        int       // output dimensions
	logger   zerolog.Logger
}

// New wraps the model and link behind the canonical contracts, adopts the
// background dataset, and computes the baseline expectation
// fnull = Σᵢ weightᵢ·f(backgroundᵢ) once, with a single batched model
// call.
//
// Errors:
//   - ErrNilModel / ErrNilBackground — missing collaborators.
//   - ErrModelShape — the model broke its one-output-row-per-input-row
//     contract on the background batch.
//   - any model error, propagated unwrapped.
func New(model Model, bg *dataset.Background, opts ...Option) (*Explainer, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if bg == nil {
		return nil, ErrNilBackground
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	out, err := model.Predict(bg.Data())
	if err != nil {
		return nil, err
	}
	rows, d := out.Dims()
	if rows != bg.Rows() || d < 1 {
		return nil, fmt.Errorf("New: background output %d×%d for %d rows: %w", rows, d, bg.Rows(), ErrModelShape)
	}

	fnull := make([]float64, d)
	for i, w := range bg.Weights() {
		for dd := 0; dd < d; dd++ {
			fnull[dd] += out.At(i, dd) * w
		}
	}
	expected := make([]float64, d)
	for dd := range fnull {
		expected[dd] = cfg.link.F(fnull[dd])
	}
	cfg.logger.Debug().Floats64("fnull", fnull).Floats64("expected_value", expected).
		Msg("kernelshap: baseline computed")

	return &Explainer{
		model:    model,
		link:     cfg.link,
		bg:       bg,
		fnull:    fnull,
		expected: expected,
		d:        d,
		logger:   cfg.logger,
	}, nil
}

// ExpectedValue returns link(E[f(background)]) per output dimension: the
// baseline every attribution is measured against.
func (e *Explainer) ExpectedValue() []float64 {
	return append([]float64(nil), e.expected...)
}

// OutputDims returns D, the model's output dimensionality.
func (e *Explainer) OutputDims() int { return e.d }

// Explain attributes a single dense instance. The returned Attribution
// spans all feature groups; for every output dimension its column sums to
// link(f(x)) − ExpectedValue.
//
// Degenerate instances are resolved without sampling: when no group
// varies from the background, phi is all zero; when exactly one group
// varies, it carries the entire link-space difference.
func (e *Explainer) Explain(x []float64, opts ...CallOption) (*Attribution, error) {
	if len(x) != e.bg.Cols() {
		return nil, fmt.Errorf("Explain: instance has %d features, background has %d: %w",
			len(x), e.bg.Cols(), ErrDimensionMismatch)
	}
	xm, err := dataset.NewDense(1, len(x), append([]float64(nil), x...))
	if err != nil {
		return nil, err
	}

	return e.explainOne(xm, resolveCallOptions(opts))
}

// ExplainMatrix attributes a single-row instance in either representation;
// a sparse instance over a sparse background keeps sparsity end-to-end.
func (e *Explainer) ExplainMatrix(x dataset.Matrix, opts ...CallOption) (*Attribution, error) {
	if x == nil || x.Rows() != 1 {
		return nil, ErrInstanceShape
	}
	if x.Cols() != e.bg.Cols() {
		return nil, fmt.Errorf("ExplainMatrix: instance has %d features, background has %d: %w",
			x.Cols(), e.bg.Cols(), ErrDimensionMismatch)
	}

	return e.explainOne(x, resolveCallOptions(opts))
}

// ExplainBatch dispatches each row of X to the single-instance pipeline
// and reassembles the results preserving input row order.
func (e *Explainer) ExplainBatch(x dataset.Matrix, opts ...CallOption) ([]*Attribution, error) {
	if x == nil || x.Rows() == 0 {
		return nil, ErrInstanceShape
	}
	if x.Cols() != e.bg.Cols() {
		return nil, fmt.Errorf("ExplainBatch: instances have %d features, background has %d: %w",
			x.Cols(), e.bg.Cols(), ErrDimensionMismatch)
	}
	cc := resolveCallOptions(opts)

	out := make([]*Attribution, x.Rows())
	for i := range out {
		row, err := x.RowMatrix(i)
		if err != nil {
			return nil, err
		}
		if out[i], err = e.explainOne(row, cc); err != nil {
			return nil, fmt.Errorf("ExplainBatch: row %d: %w", i, err)
		}
	}

	return out, nil
}

// explainOne runs the full per-instance pipeline:
// varying-group detection → coalition plan → synthetic batch → one model
// call → per-dimension constrained solve → expansion to all groups.
func (e *Explainer) explainOne(x dataset.Matrix, cc callConfig) (*Attribution, error) {
	varying, err := e.varyingGroups(x)
	if err != nil {
		return nil, err
	}

	fxOut, err := e.model.Predict(x)
	if err != nil {
		return nil, err
	}
	if r, c := fxOut.Dims(); r != 1 || c != e.d {
		return nil, fmt.Errorf("explain: instance output %d×%d, want 1×%d: %w", r, c, e.d, ErrModelShape)
	}
	fx := fxOut.RawRowView(0)

	mPrime := e.bg.GroupCount()
	phi := mat.NewDense(mPrime, e.d, nil)
	phiVar := mat.NewDense(mPrime, e.d, nil)

	switch m := len(varying); {
	case m == 0:
		// Nothing varies, nothing to attribute.

	case m == 1:
		// One varying group carries the whole link-space difference.
		for dd := 0; dd < e.d; dd++ {
			phi.Set(varying[0], dd, e.link.F(fx[dd])-e.link.F(e.fnull[dd]))
		}

	default:
		plan, planErr := sampling.Plan(m,
			sampling.WithBudget(cc.nsamples),
			sampling.WithSeed(cc.seed),
			sampling.WithLogger(e.logger))
		if planErr != nil {
			return nil, planErr
		}

		sess := newSession(e.bg, varying, e.d, plan.Len())
		for i := 0; i < plan.Len(); i++ {
			if err = sess.addSample(x, plan.Masks.RawRowView(i), plan.Weights[i]); err != nil {
				return nil, err
			}
		}
		if err = sess.run(e.model); err != nil {
			return nil, err
		}

		eyAdj := make([]float64, plan.Len())
		for dd := 0; dd < e.d; dd++ {
			for i := range eyAdj {
				eyAdj[i] = e.link.F(sess.ey.At(i, dd)) - e.link.F(e.fnull[dd])
			}
			vphi, vvar, solveErr := solver.Solve(solver.Problem{
				Masks:             sess.masks,
				Weights:           sess.weights,
				EyAdj:             eyAdj,
				TotalDiff:         e.link.F(fx[dd]) - e.link.F(e.fnull[dd]),
				FractionEvaluated: plan.FractionEvaluated(),
				Reg:               cc.reg,
				Logger:            e.logger,
			})
			if solveErr != nil {
				return nil, solveErr
			}
			for j, gi := range varying {
				phi.Set(gi, dd, vphi[j])
				phiVar.Set(gi, dd, vvar[j])
			}
		}
	}

	return &Attribution{
		Values:    phi,
		Variance:  phiVar,
		BaseValue: e.ExpectedValue(),
	}, nil
}

func resolveCallOptions(opts []CallOption) callConfig {
	cc := defaultCallConfig()
	for _, opt := range opts {
		opt(&cc)
	}

	return cc
}
