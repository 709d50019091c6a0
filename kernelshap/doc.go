// Package kernelshap explains individual predictions of an arbitrary
// black-box model with Kernel SHAP: a per-feature-group attribution
// (Shapley value) of the difference between the prediction and the
// background expectation.
//
// 🚀 How an explanation is produced
//
//	For one instance, the explainer:
//	  1. detects which feature groups differ from the background at all
//	     (only those can earn a nonzero attribution);
//	  2. plans a weighted set of coalitions to evaluate (sampling.Plan);
//	  3. materializes, per coalition, the background tiled with "known"
//	     groups pinned to the instance values;
//	  4. invokes the model ONCE on the whole synthetic batch and reduces
//	     each coalition block to its background-weighted expectation;
//	  5. recovers the attribution vector with the sum-constrained
//	     weighted regression (solver.Solve), per output dimension.
//
// The attributions of each output dimension sum exactly to
// link(f(x)) − link(E[f(background)]), by solver construction.
//
// ✨ Key properties:
//   - degenerate instances short-circuit: nothing varies → zero phi;
//     one group varies → it carries the whole link-space difference
//   - batched evaluation: the model runs once per Explain call, never
//     once per coalition
//   - all per-call state lives in a session value created fresh inside
//     Explain, so concurrent explanations against one Explainer are safe
//   - deterministic for a fixed seed
//
// ⚙️ Usage:
//
//	import (
//	    "github.com/katalvlaran/shapkit/dataset"
//	    "github.com/katalvlaran/shapkit/kernelshap"
//	)
//
//	bg, _ := dataset.FromRows([][]float64{{0, 0, 0}})
//	background, _ := dataset.New(bg)
//	model := kernelshap.ScalarModelFunc(func(x dataset.Matrix) ([]float64, error) {
//	    out := make([]float64, x.Rows())
//	    for i := range out {
//	        row, _ := x.Row(nil, i)
//	        out[i] = row[0] + row[1] + row[2]
//	    }
//	    return out, nil
//	})
//	exp, _ := kernelshap.New(model, background)
//	attr, _ := exp.Explain([]float64{1, 2, 3})
//	// attr.Phi(0) == [1, 2, 3]
//
// See sampling and solver for the two algorithmic halves, and dataset for
// the background representation.
package kernelshap
