// Package solver recovers per-group Shapley attributions from sampled
// coalitions by a sum-constrained weighted least-squares regression, with
// pluggable sparse feature selection.
//
// 🚀 The debiased-lasso estimation in one paragraph
//
//	Each sampled coalition contributes one regression row: the 0/1 mask is
//	the design, the link-space deviation of the model's expected output
//	from the baseline is the target, and the Shapley kernel weight is the
//	row weight. The sum-to-total constraint (all attributions add up to
//	link(f(x)) − link(E[f])) is enforced exactly by eliminating one
//	feature: its contribution is folded into the target and design, the
//	reduced system is solved by weighted normal equations, and the
//	eliminated coefficient is recovered as the total minus the rest.
//
// ✨ Feature selection (optional, or implicit under Auto when less than
// 20% of the coalition space was enumerated) runs on an augmented system —
// the mask matrix stacked with its complement, each row weighted by
// √(kernelWeight · size factor) — and supports three strategies:
//   - NumFeatures(k): least-angle-regression path, first k entrants
//   - AIC()/BIC(): lasso over an alpha grid, support chosen by the
//     information criterion
//   - Alpha(a): coordinate-descent lasso at a fixed penalty
//
// A singular normal-equations matrix is fatal for that output dimension
// (ErrSingular); it is surfaced, never retried or masked.
//
// The Auto() mode preserves legacy semantics (conditional AIC below the
// 20% threshold) and logs a deprecation warning when used.
package solver
