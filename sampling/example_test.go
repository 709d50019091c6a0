package sampling_test

import (
	"fmt"

	"github.com/katalvlaran/shapkit/sampling"
)

// ExamplePlan enumerates the whole coalition space of three groups: six
// masks, each with the uniform Shapley-kernel weight 1/6.
func ExamplePlan() {
	plan, err := sampling.Plan(3)
	if err != nil {
		fmt.Println("plan:", err)
		return
	}

	fmt.Println("coalitions:", plan.Len())
	fmt.Println("enumerated:", plan.Enumerated)
	fmt.Printf("weight:     %.4f\n", plan.Weights[0])

	// Output:
	// coalitions: 6
	// enumerated: 6
	// weight:     0.1667
}
