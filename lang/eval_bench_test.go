package lang

import (
	"context"
	"testing"
)

func BenchmarkEvaluate(b *testing.B) {
	tests := []struct {
		name string
		expr string
	}{
		{"arithmetic", "1+2-3+4"},
		{"dice", "3d6+2"},
		{"keep_highest", "4d6h3"},
		{"labels", "[(str:4d6h3), (dex:4d6h3), (con:4d6h3)]"},
		{"large_pool", "1000d20>15!"},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			ctx := context.Background()
			rng := NewRand(1)

			for b.Loop() {
				if _, _, err := Evaluate(ctx, tt.expr, WithRand(rng)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	for b.Loop() {
		if _, err := Parse("$fish:2d10H + [1, 2..5, orc]! push 3d6 pop"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompile_Cached(b *testing.B) {
	if _, err := Compile("$fish:2d10H + [1, 2..5, orc]!"); err != nil {
		b.Fatal(err)
	}

	for b.Loop() {
		if _, err := Compile("$fish:2d10H + [1, 2..5, orc]!"); err != nil {
			b.Fatal(err)
		}
	}
}
