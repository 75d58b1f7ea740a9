package scheduler

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newFake() (*Scheduler, *fakeClock) {
	clock := &fakeClock{now: t0}
	s := New(clock)
	s.Advance(t0, func() { panic("no tick on start") })
	return s, clock
}

func TestScheduler_Advance(t *testing.T) {
	I := DefaultInterval
	for _, test := range []struct {
		Name     string
		Now      time.Duration
		TickCost time.Duration
		Exp      Result
	}{
		{"no time passed", 0, 0, Result{}},
		{"half an interval", I / 2, 0, Result{Ticks: 1}},
		{"catch up three ticks", 3 * I, 0, Result{Ticks: 3}},
		{"exactly max behind", 90 * I, 0, Result{Ticks: 90}},
		{"beyond max behind", 91 * I, 0, Result{FastForwarded: true}},
		{"overrun skips ticks", 10 * I, 5 * I / 2, Result{Ticks: 4, Skipped: 8}},
		{"small overrun", 4 * I, I + I/10, Result{Ticks: 2, Skipped: 2}},
	} {
		t.Run(test.Name, func(t *testing.T) {
			s, clock := newFake()
			res := s.Advance(t0.Add(test.Now), func() { clock.Advance(test.TickCost) })
			assert.Equal(t, test.Exp, res)
			assert.Equal(t, test.Exp.Skipped, s.Stats.Skipped)
		})
	}
}

func TestScheduler_Advance_boundedWorkAfterStall(t *testing.T) {
	s, _ := newFake()
	ticks := 0
	res := s.Advance(t0.Add(time.Hour), func() { ticks++ })
	assert := assert.New(t)
	assert.True(res.FastForwarded)
	assert.Equal(0, ticks)
	assert.Equal(1, s.Stats.FastForwards)

	res = s.Advance(t0.Add(time.Hour+2*DefaultInterval), func() { ticks++ })
	assert.Equal(Result{Ticks: 2}, res)
}

func TestScheduler_Advance_continuesWhereItLeftOff(t *testing.T) {
	s, _ := newFake()
	I := DefaultInterval
	total := 0
	for frame := 1; frame <= 30; frame++ {
		total += s.Advance(t0.Add(time.Duration(frame)*I), func() {}).Ticks
	}
	assert.Equal(t, 30, total)
}

func TestScheduler_Metrics(t *testing.T) {
	s, clock := newFake()
	s.Metrics = NewMetrics(prometheus.NewRegistry())
	s.Advance(t0.Add(10*DefaultInterval), func() { clock.Advance(5 * DefaultInterval / 2) })
	assert := assert.New(t)
	assert.Equal(4.0, testutil.ToFloat64(s.Metrics.Ticks))
	assert.Equal(8.0, testutil.ToFloat64(s.Metrics.Skipped))
	s.Advance(t0.Add(time.Minute), func() {})
	assert.Equal(1.0, testutil.ToFloat64(s.Metrics.FastForwards))

	s.Metrics.Observe(s.Stats)
	assert.InDelta((5 * DefaultInterval / 2).Seconds(), testutil.ToFloat64(s.Metrics.LogicTime), 1e-9)
	assert.Equal(60.0, testutil.ToFloat64(s.Metrics.FrameRate))
}
