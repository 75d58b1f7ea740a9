package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindow_Median(t *testing.T) {
	ms := time.Millisecond
	for _, test := range []struct {
		Name    string
		Samples []time.Duration
		Exp     time.Duration
		ExpOk   bool
	}{
		{"empty", nil, 0, false},
		{"single", []time.Duration{5 * ms}, 5 * ms, true},
		{"odd count", []time.Duration{9 * ms, 1 * ms, 4 * ms}, 4 * ms, true},
		{"even count averages middle", []time.Duration{10 * ms, 2 * ms, 4 * ms, 100 * ms}, 7 * ms, true},
		{"outlier does not matter", []time.Duration{16 * ms, 16 * ms, 17 * ms, 2000 * ms, 16 * ms}, 16 * ms, true},
	} {
		t.Run(test.Name, func(t *testing.T) {
			w := NewWindow(SampleWindow)
			for _, s := range test.Samples {
				w.Add(s)
			}
			median, ok := w.Median()
			assert.Equal(t, test.ExpOk, ok)
			assert.Equal(t, test.Exp, median)
		})
	}
}

func TestWindow_keepsMostRecent(t *testing.T) {
	w := NewWindow(3)
	for i := 1; i <= 5; i++ {
		w.Add(time.Duration(i))
	}
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, []time.Duration{3, 4, 5}, w.samples)
}

func TestStats_FrameRate(t *testing.T) {
	s := NewStats(DefaultInterval)
	assert := assert.New(t)
	assert.Equal(60.0, s.FrameRate(), "assumed when nothing was measured")
	assert.Equal(DefaultInterval, s.LogicTime())

	now := t0
	for i := 0; i < 9; i++ {
		s.Frame(now)
		now = now.Add(20 * time.Millisecond)
	}
	assert.InDelta(50.0, s.FrameRate(), 1e-9)
	assert.Equal(60.0, s.DisplayedFrameRate(), "refreshed every 10th frame only")
	s.Frame(now)
	assert.InDelta(50.0, s.DisplayedFrameRate(), 1e-9)
	assert.Equal(10, s.FrameCount)

	s.AddTick(3 * time.Millisecond)
	s.AddTick(5 * time.Millisecond)
	assert.Equal(4*time.Millisecond, s.LogicTime())
}
