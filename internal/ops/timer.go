package ops

import (
	"sync"
	"time"

	"github.com/born-ml/stepnet/internal/matrix"
)

// Timing accumulates wall-clock durations of kernel calls.
// It is safe for concurrent use.
type Timing struct {
	mu    sync.Mutex
	count int
	total time.Duration
	last  time.Duration
	min   time.Duration
	max   time.Duration
}

// TimingStats is a point-in-time copy of a Timing.
type TimingStats struct {
	Count int
	Total time.Duration
	Last  time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Mean returns Total/Count, or zero if nothing was recorded.
func (s TimingStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Record adds one observation.
func (t *Timing) Record(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.count == 0 || d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
	t.count++
	t.total += d
	t.last = d
}

// Snapshot returns the current totals.
func (t *Timing) Snapshot() TimingStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	return TimingStats{
		Count: t.count,
		Total: t.total,
		Last:  t.last,
		Min:   t.min,
		Max:   t.max,
	}
}

// Reset clears every observation.
func (t *Timing) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.count = 0
	t.total, t.last, t.min, t.max = 0, 0, 0, 0
}

// Timed wraps a kernel and records the duration of every Apply, including
// failed ones, into Timing.
//
// Example:
//
//	var tm ops.Timing
//	k := ops.Timed[ops.MultiplicationParallel]{Timing: &tm}
//	out, err := k.Apply(a, b)
//	fmt.Println(tm.Snapshot().Last)
type Timed[K Kernel] struct {
	Kernel K
	Timing *Timing
}

// NewTimed wraps k with a fresh Timing.
func NewTimed[K Kernel](k K) Timed[K] {
	return Timed[K]{Kernel: k, Timing: &Timing{}}
}

// Name returns the wrapped kernel's name.
func (t Timed[K]) Name() string { return t.Kernel.Name() }

// Apply runs the wrapped kernel and records its duration.
func (t Timed[K]) Apply(l, r *matrix.Matrix) (*matrix.Matrix, error) {
	start := time.Now()
	out, err := t.Kernel.Apply(l, r)
	if t.Timing != nil {
		t.Timing.Record(time.Since(start))
	}
	return out, err
}
