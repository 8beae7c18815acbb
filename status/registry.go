// Package status holds lock-free match metrics
// Writers cache metric pointers once and update atomics from the tick loop;
// the result screen and logs read them from any goroutine.
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry groups counters, gauges and labels
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[Gauge]
	Labels   *MetricMap[Label]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[Gauge](),
		Labels:   NewMetricMap[Label](),
	}
}

// Counter is a shorthand for Counters.Get(key).Load()
func (r *Registry) Counter(key string) int64 {
	return r.Counters.Get(key).Load()
}

// TotalCount returns total metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count() + r.Labels.Count()
}

// Summary renders every metric as sorted "key=value" pairs on one line
func (r *Registry) Summary() string {
	var parts []string
	r.Labels.Range(func(k string, l *Label) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, l.Load()))
	})
	r.Counters.Range(func(k string, c *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, c.Load()))
	})
	r.Gauges.Range(func(k string, g *Gauge) {
		parts = append(parts, fmt.Sprintf("%s=%.1f", k, g.Get()))
	})
	return strings.Join(parts, " ")
}
