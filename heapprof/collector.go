package heapprof

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	allocObjectsDesc = prometheus.NewDesc(
		"arenajson_heap_alloc_objects_total",
		"Total number of values allocated from profiled arenas.",
		nil, nil,
	)
	allocBytesDesc = prometheus.NewDesc(
		"arenajson_heap_alloc_bytes_total",
		"Total number of bytes allocated from profiled arenas, alignment padding included.",
		nil, nil,
	)
	inUseObjectsDesc = prometheus.NewDesc(
		"arenajson_heap_inuse_objects",
		"Number of values currently held by profiled arenas.",
		nil, nil,
	)
	inUseBytesDesc = prometheus.NewDesc(
		"arenajson_heap_inuse_bytes",
		"Number of bytes currently held by profiled arenas.",
		nil, nil,
	)
	recordsDesc = prometheus.NewDesc(
		"arenajson_heap_profile_records",
		"Number of distinct allocation call stacks in the heap profile.",
		nil, nil,
	)
)

type collector struct {
	p *Profile
}

// Collector returns a prometheus.Collector exposing the profile totals.
func (p *Profile) Collector() prometheus.Collector {
	return collector{p: p}
}

func (c collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- allocObjectsDesc
	ch <- allocBytesDesc
	ch <- inUseObjectsDesc
	ch <- inUseBytesDesc
	ch <- recordsDesc
}

func (c collector) Collect(ch chan<- prometheus.Metric) {
	t := c.p.Totals()
	ch <- prometheus.MustNewConstMetric(allocObjectsDesc, prometheus.CounterValue, float64(t.AllocObjects))
	ch <- prometheus.MustNewConstMetric(allocBytesDesc, prometheus.CounterValue, float64(t.AllocBytes))
	ch <- prometheus.MustNewConstMetric(inUseObjectsDesc, prometheus.GaugeValue, float64(t.InUseObjects))
	ch <- prometheus.MustNewConstMetric(inUseBytesDesc, prometheus.GaugeValue, float64(t.InUseBytes))
	ch <- prometheus.MustNewConstMetric(recordsDesc, prometheus.GaugeValue, float64(t.Records))
}
