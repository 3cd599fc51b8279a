// Package profiler collects timing samples, such as per-scan-line render
// durations, and reports summary statistics.
package profiler

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Timer measures elapsed wall-clock time from Start
type Timer struct {
	start time.Time
}

// StartTimer returns a running timer
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started
func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Profiler accumulates duration samples. It is safe for concurrent use.
type Profiler struct {
	name    string
	mu      sync.Mutex
	samples []time.Duration
}

// New creates a profiler with room for capacity samples
func New(name string, capacity int) *Profiler {
	return &Profiler{
		name:    name,
		samples: make([]time.Duration, 0, max(capacity, 0)),
	}
}

// Add records one sample
func (p *Profiler) Add(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = append(p.samples, d)
}

// Reset discards all samples
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = p.samples[:0]
}

// Stats summarizes the recorded samples
type Stats struct {
	Count int
	Sum   time.Duration
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
}

// Stats returns the summary of the samples so far. All fields are zero when
// no samples have been recorded.
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.samples) == 0 {
		return Stats{}
	}

	s := Stats{
		Count: len(p.samples),
		Min:   p.samples[0],
		Max:   p.samples[0],
	}
	for _, d := range p.samples {
		s.Sum += d
		s.Min = min(s.Min, d)
		s.Max = max(s.Max, d)
	}
	s.Mean = s.Sum / time.Duration(s.Count)
	return s
}

// Report writes the summary to logger
func (p *Profiler) Report(logger core.Logger) {
	s := p.Stats()
	logger.Printf("======= %s =======\n", p.name)
	if s.Count == 0 {
		logger.Printf("No samples recorded\n")
		return
	}
	logger.Printf("Samples: %d\n", s.Count)
	logger.Printf("Total time: %s\n", FormatDuration(s.Sum))
	logger.Printf("Minimum time: %s\n", FormatDuration(s.Min))
	logger.Printf("Maximum time: %s\n", FormatDuration(s.Max))
	logger.Printf("Mean time: %s\n", FormatDuration(s.Mean))
}

// FormatDuration renders d as "1s 234ms 567µs 890ns". The seconds part is
// omitted below one second; the smaller units are always three digits.
func FormatDuration(d time.Duration) string {
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}

	ns := d.Nanoseconds()
	if secs := ns / 1e9; secs > 0 {
		fmt.Fprintf(&b, "%ds ", secs)
	}
	fmt.Fprintf(&b, "%03dms %03dµs %03dns", ns/1e6%1000, ns/1e3%1000, ns%1000)
	return b.String()
}
