package benchmarks

import (
	"fmt"
	"io"
	"testing"

	"sortbench/internal/benchmark/core"
)

// BenchmarkRunnerIteration measures one full generate/sort/verify iteration
// of the driver, i.e. the overhead a sweep pays per iteration on top of the
// sorts themselves.
func BenchmarkRunnerIteration(b *testing.B) {
	for _, size := range []int{16, 128, 1024} {
		for _, check := range []bool{false, true} {
			b.Run(fmt.Sprintf("size=%d/check=%t", size, check), func(b *testing.B) {
				cfg := core.DefaultConfig()
				cfg.Size = size
				cfg.Iterations = b.N
				cfg.PrintProgress = false
				cfg.CheckResults = check
				cfg.Seed = 1
				r := core.NewRunner(cfg, core.Options{Diag: io.Discard})
				b.ReportAllocs()
				b.ResetTimer()
				res := r.Run()
				if res.Completed != b.N {
					b.Fatalf("completed %d of %d iterations", res.Completed, b.N)
				}
			})
		}
	}
}
