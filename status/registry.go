package status

import (
	"fmt"
	"sort"
	"sync/atomic"
)

// Registry is the central metrics facade
// Components cache pointers at construction; tick loops write directly to atomics
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Lines renders every metric as "key: value", sorted by key, for the debug overlay
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s: %t", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s: %d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s: %.3f", k, v.Get()))
	})
	sort.Strings(lines)
	return lines
}
