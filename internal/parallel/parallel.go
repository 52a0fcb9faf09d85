// Package parallel provides the fork-join runtime used by stepnet's parallel kernels.
//
// Work is split into contiguous index ranges, one goroutine per range, and
// the caller blocks until every range has finished. Ranges never overlap, so
// callers that write only to the slots they were handed need no locking.
package parallel

import (
	"runtime"
	"sync"

	"github.com/born-ml/stepnet/internal/envconfig"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 1, // One output row is already O(columns*k) work.
	}
}

// FromEnv returns DefaultConfig overlaid with the STEPNET_* environment settings.
func FromEnv() Config {
	cfg := DefaultConfig()
	if n := envconfig.NumWorkers(); n > 0 {
		cfg.NumWorkers = int(n)
		cfg.Enabled = n > 1
	}
	if n := envconfig.MinChunk(); n > 0 {
		cfg.MinChunkSize = int(n)
	}
	if envconfig.NoParallel() {
		cfg.Enabled = false
	}
	return cfg
}

// chunks returns the chunk size for n items, or 0 if the work should run
// sequentially on the calling goroutine.
func (cfg Config) chunks(n int) int {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2 || n < 2*max(cfg.MinChunkSize, 1) {
		return 0
	}
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}

// ForRange splits [0, n) into contiguous chunks and calls f(start, end) once
// per chunk, each on its own goroutine. It returns after every chunk is done.
func ForRange(n int, f func(start, end int), cfg Config) {
	if n <= 0 {
		return
	}

	chunkSize := cfg.chunks(n)
	if chunkSize == 0 {
		f(0, n)
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			f(s, e)
		}(start, end)
	}
	wg.Wait()
}
