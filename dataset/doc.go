// Package dataset provides the background-data layer for Kernel SHAP
// explanations: a FeatureMatrix abstraction with dense and sparse (CSR)
// backends, and the Background container that pairs a data matrix with
// normalized row weights and feature-group membership.
//
// 🚀 Why a background dataset?
//
//	Kernel SHAP simulates a "missing" feature by replacing it with the
//	values that feature takes in a reference population. The Background
//	holds that population: N rows × P columns, a weight per row (weights
//	always sum to 1), and an optional grouping of columns into atomic
//	attribution units.
//
// ✨ Key features:
//   - Matrix interface with exactly the operations the sampling pipeline
//     needs: row-tiling, column-block overwrite, nonzero-set queries
//   - Dense backend: row-major flat buffer, O(1) access
//   - CSR backend: compressed sparse rows, tiling and overwrite preserve
//     sparsity end-to-end
//   - Weight normalization at construction; immutable afterwards
//   - Sample helper to subsample large backgrounds deterministically
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/shapkit/dataset"
//
//	data, _ := dataset.FromRows([][]float64{
//	    {0, 0, 0},
//	    {1, 0, 2},
//	})
//	bg, err := dataset.New(data)
//
// A Background with more than 100 rows triggers a soft log warning: every
// sampled coalition costs one model row per background row, so large
// backgrounds multiply explanation cost. Subsample first.
package dataset
