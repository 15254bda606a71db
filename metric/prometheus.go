package metric

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes queue counters to prometheus. It reads the same
// values as the expvar surface, so registering it is optional and has
// no effect on queues.
type Collector struct {
	pushes    *prometheus.Desc
	pulls     *prometheus.Desc
	warnings  *prometheus.Desc
	overflows *prometheus.Desc
	occupancy *prometheus.Desc
}

// NewCollector creates a collector for all measured queues. Register it
// with a prometheus registry to scrape queue counters.
func NewCollector() *Collector {
	label := []string{"queue"}
	return &Collector{
		pushes: prometheus.NewDesc(
			"flow_queue_pushes_total",
			"Number of buffers accepted by the queue.",
			label, nil,
		),
		pulls: prometheus.NewDesc(
			"flow_queue_pulls_total",
			"Number of buffers handed to the consumer.",
			label, nil,
		),
		warnings: prometheus.NewDesc(
			"flow_queue_warnings_total",
			"Number of transitions above the warn watermark.",
			label, nil,
		),
		overflows: prometheus.NewDesc(
			"flow_queue_overflows_total",
			"Number of pushes rejected with overflow.",
			label, nil,
		),
		occupancy: prometheus.NewDesc(
			"flow_queue_occupancy",
			"Current queue occupancy in configured units.",
			label, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.pushes
	ch <- c.pulls
	ch <- c.warnings
	ch <- c.overflows
	ch <- c.occupancy
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	meters.each(func(name string, m *Meter) {
		ch <- prometheus.MustNewConstMetric(c.pushes, prometheus.CounterValue, float64(m.pushes.Value()), name)
		ch <- prometheus.MustNewConstMetric(c.pulls, prometheus.CounterValue, float64(m.pulls.Value()), name)
		ch <- prometheus.MustNewConstMetric(c.warnings, prometheus.CounterValue, float64(m.warnings.Value()), name)
		ch <- prometheus.MustNewConstMetric(c.overflows, prometheus.CounterValue, float64(m.overflows.Value()), name)
		ch <- prometheus.MustNewConstMetric(c.occupancy, prometheus.GaugeValue, float64(m.occupancy.Value()), name)
	})
}
