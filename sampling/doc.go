// Package sampling builds the weighted coalition plan a Kernel SHAP
// explanation evaluates: which subsets ("coalitions") of varying feature
// groups to test, and the Shapley-kernel weight of each.
//
// 🚀 How coalitions are chosen
//
//	The Shapley kernel weights a coalition of size k by
//	(M-1) / (k·(M-k)·C(M,k)), which concentrates nearly all mass on the
//	smallest and largest subsets. Plan exploits that:
//	  1. sizes are enumerated exactly, in increasing order, for as long as
//	     the remaining budget covers every C(M,k) coalition of the size at
//	     no less than its nominal per-coalition share;
//	  2. the remaining budget is filled by weighted random draws over the
//	     leftover sizes, deduplicated so a repeated mask increments the
//	     weight of its first occurrence instead of wasting a row;
//	  3. random-phase weights are renormalized to the theoretical mass the
//	     exact phase left unassigned.
//
// Complement pairing: for every coalition in the paired size range its
// bitwise complement is emitted with matching weight, halving estimator
// variance at no extra budget.
//
// ✨ Guarantees:
//   - mask entries are exactly 0 or 1; rows are unique by construction
//   - at most 2^M − 2 rows when M ≤ 30 (the full non-trivial space),
//     never more than the requested budget otherwise
//   - deterministic output for a fixed seed
//
// See kernelshap for the orchestrator that consumes the plan.
package sampling
