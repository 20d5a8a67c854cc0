package diagnostics

import "github.com/prometheus/client_golang/prometheus"

const metricsSubsystem = "weight"

// Collector exports the counters as Prometheus counters read at scrape time.
// Register it once per registry.
func (c *Counters) Collector(namespace string) prometheus.Collector {
	return &collector{counters: []prometheus.Collector{
		counterFunc(namespace, "roulette_events_total", "Roulette decisions, deterministic promotions included.", &c.events),
		counterFunc(namespace, "roulette_survived_total", "Particles that won roulette.", &c.survived),
		counterFunc(namespace, "roulette_killed_total", "Particles terminated by roulette.", &c.killed),
		counterFunc(namespace, "roulette_promoted_total", "Deterministic promotions without a random draw.", &c.promoted),
		counterFunc(namespace, "invalid_total", "Calls rejected for invalid weights.", &c.invalid),
		counterFunc(namespace, "stream_exhausted_total", "Calls rejected because the history stream was exhausted.", &c.exhausted),
		counterFunc(namespace, "splits_total", "Weight-window splits.", &c.splits),
		counterFunc(namespace, "secondaries_total", "Particles created by splitting.", &c.secondaries),
	}}
}

type loader interface{ Load() int64 }

func counterFunc(namespace, name, help string, v loader) prometheus.CounterFunc {
	return prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: metricsSubsystem,
		Name:      name,
		Help:      help,
	}, func() float64 {
		return float64(v.Load())
	})
}

type collector struct {
	counters []prometheus.Collector
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.counters {
		m.Describe(ch)
	}
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.counters {
		m.Collect(ch)
	}
}
