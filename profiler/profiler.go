// Package profiler tracks operation timings and numeric metrics of a batch
// run and reports them through slog.
package profiler

import (
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"
)

// DefaultMaxSamples bounds the samples kept per tracker.
const DefaultMaxSamples = 1000

// Profiler collects operation timings and custom metrics. It is safe for
// concurrent use.
type Profiler struct {
	mu         sync.Mutex
	start      time.Time
	maxSamples int
	operations map[string]*tracker[time.Duration]
	metrics    map[string]*tracker[float64]
	now        func() time.Time
}

// tracker keeps a sliding window of samples plus all-time totals and
// extremes.
type tracker[T time.Duration | float64] struct {
	samples   []T
	windowSum T
	total     T
	min       T
	max       T
	count     int64
}

func (t *tracker[T]) add(v T, maxSamples int) {
	if t.count == 0 || v < t.min {
		t.min = v
	}
	if t.count == 0 || v > t.max {
		t.max = v
	}
	t.samples = append(t.samples, v)
	t.windowSum += v
	t.total += v
	if len(t.samples) > maxSamples {
		t.windowSum -= t.samples[0]
		t.samples = t.samples[1:]
	}
	t.count++
}

// New creates a Profiler keeping at most maxSamples samples per tracker.
// Non-positive values mean DefaultMaxSamples.
func New(maxSamples int) *Profiler {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}
	return &Profiler{
		start:      time.Now(),
		maxSamples: maxSamples,
		operations: make(map[string]*tracker[time.Duration]),
		metrics:    make(map[string]*tracker[float64]),
		now:        time.Now,
	}
}

// StartOperation begins timing an operation.
//
// Arguments:
//   - name: The name of the operation to track.
//
// Returns:
//   - A function to call when the operation completes.
func (p *Profiler) StartOperation(name string) func() {
	start := p.now()
	return func() {
		p.RecordDuration(name, p.now().Sub(start))
	}
}

// RecordDuration records one completed operation.
func (p *Profiler) RecordDuration(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.operations[name]
	if !ok {
		t = &tracker[time.Duration]{}
		p.operations[name] = t
	}
	t.add(d, p.maxSamples)
}

// RecordMetric records one value of a custom metric.
func (p *Profiler) RecordMetric(name string, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.metrics[name]
	if !ok {
		t = &tracker[float64]{}
		p.metrics[name] = t
	}
	t.add(value, p.maxSamples)
}

// OperationStats summarizes the timings of one operation. Avg covers the
// retained samples; Count, Min, Max and Total cover all of them.
type OperationStats struct {
	Name  string        `json:"name"`
	Count int64         `json:"count"`
	Avg   time.Duration `json:"avg"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
	Total time.Duration `json:"total"`
}

// MetricStats summarizes one custom metric.
type MetricStats struct {
	Name  string  `json:"name"`
	Count int64   `json:"count"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Report is a snapshot of a Profiler.
type Report struct {
	Uptime     time.Duration    `json:"uptime"`
	HeapAlloc  uint64           `json:"heapAlloc"`
	NumGC      uint32           `json:"numGC"`
	Operations []OperationStats `json:"operations"`
	Metrics    []MetricStats    `json:"metrics"`
}

// Snapshot returns the current statistics, sorted by name.
func (p *Profiler) Snapshot() Report {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	p.mu.Lock()
	defer p.mu.Unlock()

	r := Report{Uptime: p.now().Sub(p.start), HeapAlloc: mem.HeapAlloc, NumGC: mem.NumGC}
	for name, t := range p.operations {
		r.Operations = append(r.Operations, OperationStats{
			Name:  name,
			Count: t.count,
			Avg:   t.windowSum / time.Duration(len(t.samples)),
			Min:   t.min,
			Max:   t.max,
			Total: t.total,
		})
	}
	for name, t := range p.metrics {
		r.Metrics = append(r.Metrics, MetricStats{
			Name:  name,
			Count: t.count,
			Avg:   t.windowSum / float64(len(t.samples)),
			Min:   t.min,
			Max:   t.max,
		})
	}
	sort.Slice(r.Operations, func(i, j int) bool { return r.Operations[i].Name < r.Operations[j].Name })
	sort.Slice(r.Metrics, func(i, j int) bool { return r.Metrics[i].Name < r.Metrics[j].Name })
	return r
}

// Log writes the snapshot to logger, one record per tracker.
func (p *Profiler) Log(logger *slog.Logger) {
	r := p.Snapshot()
	logger.Info("profile", "uptime", r.Uptime.Truncate(time.Millisecond), "heap_alloc", r.HeapAlloc, "gc_cycles", r.NumGC)
	for _, op := range r.Operations {
		logger.Info("operation timing",
			"name", op.Name,
			"count", op.Count,
			"avg", op.Avg.Truncate(time.Microsecond),
			"min", op.Min.Truncate(time.Microsecond),
			"max", op.Max.Truncate(time.Microsecond),
			"total", op.Total.Truncate(time.Microsecond))
	}
	for _, m := range r.Metrics {
		logger.Info("metric", "name", m.Name, "count", m.Count, "avg", m.Avg, "min", m.Min, "max", m.Max)
	}
}
