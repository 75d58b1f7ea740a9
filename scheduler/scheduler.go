// Package scheduler runs the fixed-timestep logic loop: it catches up on
// missed ticks, skips ticks after an overrun and fast-forwards when the
// loop fell too far behind.
package scheduler

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	TicksPerSecond  = 30
	DefaultInterval = time.Second / TicksPerSecond
	// DefaultMaxBehind is the number of missed ticks after which the loop
	// gives up catching up.
	DefaultMaxBehind = 3 * TicksPerSecond
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Scheduler struct {
	Interval  time.Duration
	MaxBehind int
	Clock     Clock
	Stats     *Stats
	Metrics   *Metrics

	last time.Time
}

// Result describes what one call to Advance did.
type Result struct {
	Ticks         int
	Skipped       int
	FastForwarded bool
}

// New returns a scheduler. The first Advance only starts the logic clock.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	s := &Scheduler{
		Interval:  DefaultInterval,
		MaxBehind: DefaultMaxBehind,
		Clock:     clock,
	}
	s.Stats = NewStats(s.Interval)
	return s
}

// Advance runs tick until the logic time has caught up with now.
func (s *Scheduler) Advance(now time.Time, tick func()) Result {
	res := Result{}
	if s.last.IsZero() {
		s.last = now
		return res
	}
	if now.Sub(s.last) > s.Interval*time.Duration(s.MaxBehind) {
		log.Warn().Msgf("logic loop is %s behind, fast-forwarding", now.Sub(s.last))
		s.last = now
		res.FastForwarded = true
		s.Stats.FastForwards++
		if s.Metrics != nil {
			s.Metrics.FastForwards.Inc()
		}
	}
	for s.last.Before(now) {
		start := s.Clock.Now()
		tick()
		cost := s.Clock.Now().Sub(start)
		res.Ticks++
		s.Stats.AddTick(cost)
		if s.Metrics != nil {
			s.Metrics.Ticks.Inc()
			s.Metrics.TickDuration.Observe(cost.Seconds())
		}
		if cost > s.Interval {
			skip := int(cost / s.Interval)
			log.Warn().Msgf("logic update took %s, unable to keep up, skipping %d ticks", cost, skip)
			s.last = s.last.Add(time.Duration(skip) * s.Interval)
			res.Skipped += skip
			s.Stats.Skipped += skip
			if s.Metrics != nil {
				s.Metrics.Skipped.Add(float64(skip))
			}
		}
		s.last = s.last.Add(s.Interval)
	}
	return res
}
