package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_EachIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	seen := make([]int32, 97)
	For(len(seen), func(i int) {
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	for i, v := range seen {
		if v != 1 {
			t.Errorf("index %d visited %d times", i, v)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Fewer than two chunks' worth of work runs on the caller.
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForRange_DisjointCover(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 2}

	var (
		mu     sync.Mutex
		ranges [][2]int
	)
	ForRange(20, func(s, e int) {
		mu.Lock()
		ranges = append(ranges, [2]int{s, e})
		mu.Unlock()
	}, cfg)

	covered := make([]bool, 20)
	for _, r := range ranges {
		if r[1]-r[0] < cfg.MinChunkSize && r[1] != 20 {
			t.Errorf("chunk %v smaller than MinChunkSize", r)
		}
		for i := r[0]; i < r[1]; i++ {
			if covered[i] {
				t.Fatalf("index %d covered twice", i)
			}
			covered[i] = true
		}
	}
	for i, c := range covered {
		if !c {
			t.Errorf("index %d not covered", i)
		}
	}
	if len(ranges) != 3 {
		t.Errorf("Expected 3 chunks, got %d", len(ranges))
	}
}

func TestForRange_Empty(t *testing.T) {
	called := false
	ForRange(0, func(_, _ int) { called = true }, DefaultConfig())

	if called {
		t.Error("f called for empty range")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("STEPNET_NUM_WORKERS", "6")
	t.Setenv("STEPNET_MIN_CHUNK", "16")

	cfg := FromEnv()
	if !cfg.Enabled || cfg.NumWorkers != 6 || cfg.MinChunkSize != 16 {
		t.Errorf("unexpected config %+v", cfg)
	}

	t.Setenv("STEPNET_NOPARALLEL", "1")
	if FromEnv().Enabled {
		t.Error("STEPNET_NOPARALLEL did not disable parallelism")
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfgSeq)
		}
	})
}
