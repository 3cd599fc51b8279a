package profiler

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "000ms 000µs 000ns"},
		{890 * time.Nanosecond, "000ms 000µs 890ns"},
		{5*time.Millisecond + 123, "005ms 000µs 123ns"},
		{1234567890, "1s 234ms 567µs 890ns"},
		{75 * time.Second, "75s 000ms 000µs 000ns"},
		{-1500 * time.Microsecond, "-001ms 500µs 000ns"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatDuration(tt.input); got != tt.expected {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestProfiler_Stats(t *testing.T) {
	p := New("rows", 4)
	if s := p.Stats(); s != (Stats{}) {
		t.Errorf("Expected zero stats, got %+v", s)
	}

	for _, d := range []time.Duration{30, 10, 50, 10} {
		p.Add(d)
	}

	expected := Stats{Count: 4, Sum: 100, Min: 10, Max: 50, Mean: 25}
	if s := p.Stats(); s != expected {
		t.Errorf("Expected %+v, got %+v", expected, s)
	}

	p.Reset()
	if s := p.Stats(); s.Count != 0 {
		t.Errorf("Expected no samples after reset, got %d", s.Count)
	}
}

func TestProfiler_ConcurrentAdd(t *testing.T) {
	p := New("rows", 0)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				p.Add(time.Microsecond)
			}
		}()
	}
	wg.Wait()

	s := p.Stats()
	if s.Count != 800 || s.Sum != 800*time.Microsecond {
		t.Errorf("Expected 800 samples totalling 800µs, got %+v", s)
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestProfiler_Report(t *testing.T) {
	p := New("Scan lines", 2)
	p.Add(2 * time.Millisecond)
	p.Add(4 * time.Millisecond)

	logger := &recordingLogger{}
	p.Report(logger)
	out := strings.Join(logger.lines, "")

	for _, want := range []string{
		"======= Scan lines =======",
		"Samples: 2",
		"Total time: 006ms 000µs 000ns",
		"Minimum time: 002ms 000µs 000ns",
		"Maximum time: 004ms 000µs 000ns",
		"Mean time: 003ms 000µs 000ns",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}

	empty := &recordingLogger{}
	New("empty", 0).Report(empty)
	if !strings.Contains(strings.Join(empty.lines, ""), "No samples recorded") {
		t.Errorf("Expected empty report, got %v", empty.lines)
	}
}

func TestTimer_Elapsed(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	if timer.Elapsed() < time.Millisecond {
		t.Errorf("Expected at least 1ms elapsed, got %v", timer.Elapsed())
	}
}
