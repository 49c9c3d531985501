package sample_test

import (
	"fmt"

	"github.com/katalvlaran/lvlpiv/sample"
)

// ExampleDataset builds a three-frame ramp dataset.
func ExampleDataset() {
	ds, err := sample.Dataset(3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	rows, cols := ds.Shape()
	u, _ := ds.Frames[2].U.At(0, 0)
	fmt.Println(ds.Len(), rows, cols, u)
	// Output: 3 5 8 3
}
