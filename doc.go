// Package shapkit is a model-agnostic toolkit for explaining single
// predictions: it estimates Shapley-value attributions for any black-box
// model by sampling feature coalitions against a background dataset.
//
// 🚀 What is shapkit?
//
//	A Kernel SHAP implementation that brings together:
//		• Background datasets: dense & sparse matrices, row weights, feature groups
//		• Coalition sampling: exact enumeration + weighted random fill, deduplicated
//		• Synthetic evaluation: one batched model call per explanation
//		• Constrained solving: weighted least squares with an exact sum-to-total guarantee
//		• Sparse selection: LARS path, AIC/BIC lasso, fixed-penalty lasso
//		• Link functions: identity & logit, for attribution in log-odds space
//
// ✨ Why choose shapkit?
//
//   - Model-agnostic – any func(batch) → outputs works, no model internals needed
//   - Deterministic – fixed seeds make every explanation bit-identical
//   - Concurrent-safe – one Explainer, many goroutines, zero shared mutable state
//   - Sparse end-to-end – a sparse instance over a sparse background never densifies
//
// Everything is organized under four subpackages:
//
//	dataset/    — background data: dense/sparse matrices, weights, groups, subsampling
//	sampling/   — Shapley-kernel coalition plans: masks, weights, budget accounting
//	solver/     — sum-constrained weighted least squares + sparse feature selection
//	kernelshap/ — the Explainer orchestrating detection, sampling, evaluation, solving
//
// Quick start:
//
//	bg, _ := dataset.New(backgroundMatrix)
//	ex, _ := kernelshap.New(model, bg)
//	attr, _ := ex.Explain(instance)
//	phi := attr.Phi(0) // one attribution per feature group
//
// Each column of attr.Values sums exactly to link(f(x)) − link(E[f(background)]),
// so an explanation is always a complete decomposition of the prediction.
//
// Dive into the examples/ directory for end-to-end scenarios.
//
//	go get github.com/katalvlaran/shapkit
package shapkit
