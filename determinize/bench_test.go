package determinize_test

import (
	"testing"

	"github.com/katalvlaran/hyperlath/builder"
	"github.com/katalvlaran/hyperlath/determinize"
	"github.com/katalvlaran/hyperlath/weight"
)

func BenchmarkDeterminizeRandomDAG(b *testing.B) {
	// 1) 40 states over a 4-symbol alphabet, p=0.05 per (pair, symbol).
	h, err := builder.Build[weight.Viterbi](nil,
		[]builder.Option{builder.WithSeed(1), builder.WithWeightFn(builder.UniformWeightFn(0.05, 0.95))},
		builder.RandomDAG[weight.Viterbi](40, 0.05, "a", "b", "c", "d"))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = determinize.Determinize(h)
	}
}
