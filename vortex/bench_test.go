package vortex_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvlpiv/sample"
	"github.com/katalvlaran/lvlpiv/vortex"
)

func BenchmarkGamma2(b *testing.B) {
	ds, err := sample.LambOseen(sample.WithRows(128), sample.WithCols(128), sample.WithCore(12))
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = vortex.Gamma2(ctx, ds, 2); err != nil {
			b.Fatal(err)
		}
	}
}
