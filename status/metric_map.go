package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// MetricMap hands out one stable pointer per key
// Writers cache the pointer once and update it without touching the map again
type MetricMap[T any] struct {
	items sync.Map // string -> *T
	count atomic.Int64
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the metric for key, registering a zero value on first use
func (m *MetricMap[T]) Get(key string) *T {
	if v, ok := m.items.Load(key); ok {
		return v.(*T)
	}
	v, loaded := m.items.LoadOrStore(key, new(T))
	if !loaded {
		m.count.Add(1)
	}
	return v.(*T)
}

// Range visits metrics in key order
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	var keys []string
	m.items.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)

	for _, k := range keys {
		if v, ok := m.items.Load(k); ok {
			fn(k, v.(*T))
		}
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	return int(m.count.Load())
}
