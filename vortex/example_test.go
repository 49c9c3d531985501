package vortex_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvlpiv/sample"
	"github.com/katalvlaran/lvlpiv/vortex"
)

// ExampleDetect locates a counter-clockwise Lamb–Oseen vortex.
func ExampleDetect() {
	ds, _ := sample.LambOseen(sample.WithCenter(10, 6))
	found, err := vortex.Detect(context.Background(), ds, 0, 2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	core := found[0]
	fmt.Printf("centre=(%g, %g) sign=%+d\n", core.X, core.Y, core.Sign)
	// Output: centre=(10, 6) sign=+1
}
