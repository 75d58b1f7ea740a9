package scheduler

import (
	"time"

	"golang.org/x/exp/slices"
)

const (
	SampleWindow = 50
	// FrameRateRefresh is the number of frames between two updates of the
	// displayed frame rate.
	FrameRateRefresh = 10
	assumedFrameRate = 60.0
)

// Window keeps the most recent samples up to its size.
type Window struct {
	size    int
	samples []time.Duration
}

func NewWindow(size int) *Window {
	return &Window{size: size, samples: make([]time.Duration, 0, size)}
}

func (w *Window) Add(d time.Duration) {
	if len(w.samples) == w.size {
		copy(w.samples, w.samples[1:])
		w.samples = w.samples[:w.size-1]
	}
	w.samples = append(w.samples, d)
}

func (w *Window) Len() int {
	return len(w.samples)
}

// Median of the samples, averaging the two middle ones for even counts.
func (w *Window) Median() (time.Duration, bool) {
	if len(w.samples) == 0 {
		return 0, false
	}
	sorted := slices.Clone(w.samples)
	slices.Sort(sorted)
	half := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[half-1] + sorted[half]) / 2, true
	}
	return sorted[half], true
}

type Stats struct {
	interval  time.Duration
	frames    *Window
	ticks     *Window
	lastFrame time.Time
	displayed float64

	FrameCount   int
	Skipped      int
	FastForwards int
}

func NewStats(interval time.Duration) *Stats {
	return &Stats{
		interval:  interval,
		frames:    NewWindow(SampleWindow),
		ticks:     NewWindow(SampleWindow),
		displayed: assumedFrameRate,
	}
}

// Frame records a rendered frame at now.
func (s *Stats) Frame(now time.Time) {
	if !s.lastFrame.IsZero() {
		s.frames.Add(now.Sub(s.lastFrame))
	}
	s.lastFrame = now
	s.FrameCount++
	if s.FrameCount%FrameRateRefresh == 0 {
		s.displayed = s.FrameRate()
	}
}

func (s *Stats) AddTick(cost time.Duration) {
	s.ticks.Add(cost)
}

// FrameRate is the frame rate derived from the median frame delta.
func (s *Stats) FrameRate() float64 {
	median, ok := s.frames.Median()
	if !ok || median <= 0 {
		return assumedFrameRate
	}
	return float64(time.Second) / float64(median)
}

// DisplayedFrameRate only changes every FrameRateRefresh frames.
func (s *Stats) DisplayedFrameRate() float64 {
	return s.displayed
}

// LogicTime is the median cost of a logic tick.
func (s *Stats) LogicTime() time.Duration {
	median, ok := s.ticks.Median()
	if !ok {
		return s.interval
	}
	return median
}
