package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Ticks        prometheus.Counter
	Skipped      prometheus.Counter
	FastForwards prometheus.Counter
	TickDuration prometheus.Histogram
	FrameRate    prometheus.Gauge
	LogicTime    prometheus.Gauge
}

// NewMetrics registers the loop metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "klinekart_logic_ticks_total",
			Help: "Total logic ticks run",
		}),
		Skipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "klinekart_logic_ticks_skipped_total",
			Help: "Logic ticks skipped after an overrun",
		}),
		FastForwards: factory.NewCounter(prometheus.CounterOpts{
			Name: "klinekart_logic_fast_forwards_total",
			Help: "Times the logic loop gave up catching up",
		}),
		TickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "klinekart_logic_tick_duration_seconds",
			Help:    "Wall clock cost of a logic tick",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
		FrameRate: factory.NewGauge(prometheus.GaugeOpts{
			Name: "klinekart_frame_rate",
			Help: "Median frame rate over the last frames",
		}),
		LogicTime: factory.NewGauge(prometheus.GaugeOpts{
			Name: "klinekart_logic_time_seconds",
			Help: "Median logic tick cost over the last ticks",
		}),
	}
}

// Observe copies the current median statistics into the gauges.
func (m *Metrics) Observe(stats *Stats) {
	m.FrameRate.Set(stats.FrameRate())
	m.LogicTime.Set(stats.LogicTime().Seconds())
}
