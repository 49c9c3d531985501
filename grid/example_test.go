package grid_test

import (
	"fmt"

	"github.com/katalvlaran/lvlpiv/grid"
)

// ExampleGradient differentiates u(x) = x² sampled on four points.
func ExampleGradient() {
	u, _ := grid.NewDenseFrom(1, 4, []float64{0, 1, 4, 9})
	dudx, _, _ := grid.Gradient(u, []float64{0, 1, 2, 3}, []float64{0})
	fmt.Println(dudx.Raw())
	// Output: [1 2 4 5]
}

// ExampleNaNMean averages a field with one masked vector.
func ExampleNaNMean() {
	m, _ := grid.NewDenseFrom(2, 2, []float64{1, 2, 3, 0})
	_ = m.Set(1, 1, nan())
	fmt.Println(grid.NaNMean(m), grid.CountValid(m))
	// Output: 2 3
}
