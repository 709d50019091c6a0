package kernelshap_test

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/shapkit/dataset"
	"github.com/katalvlaran/shapkit/kernelshap"
)

// ExampleExplainer attributes one prediction of an additive model against
// a zero background: each feature earns exactly its own contribution.
func ExampleExplainer() {
	model := kernelshap.ScalarModelFunc(func(x dataset.Matrix) ([]float64, error) {
		out := make([]float64, x.Rows())
		row := make([]float64, x.Cols())
		for i := range out {
			if _, err := x.Row(row, i); err != nil {
				return nil, err
			}
			out[i] = floats.Sum(row)
		}

		return out, nil
	})

	data, err := dataset.NewDense(1, 3, nil)
	if err != nil {
		fmt.Println("dataset:", err)
		return
	}
	bg, err := dataset.New(data)
	if err != nil {
		fmt.Println("background:", err)
		return
	}
	ex, err := kernelshap.New(model, bg)
	if err != nil {
		fmt.Println("explainer:", err)
		return
	}

	attr, err := ex.Explain([]float64{1, 2, 3})
	if err != nil {
		fmt.Println("explain:", err)
		return
	}

	phi := attr.Phi(0)
	fmt.Printf("phi  = [%.0f %.0f %.0f]\n", phi[0], phi[1], phi[2])
	fmt.Printf("base = %.0f\n", attr.BaseValue[0])
	fmt.Printf("sum  = %.0f\n", floats.Sum(phi))

	// Output:
	// phi  = [1 2 3]
	// base = 0
	// sum  = 6
}
