package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Registry is the central metrics facade
// Systems cache pointers at construction; per-frame updates write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot formats every metric as "key=value", grouped by type and sorted by key
func (r *Registry) Snapshot() []string {
	out := make([]string, 0, r.TotalCount())
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		out = append(out, key+"="+strconv.FormatBool(ptr.Load()))
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out = append(out, key+"="+strconv.FormatInt(ptr.Load(), 10))
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out = append(out, fmt.Sprintf("%s=%.2f", key, ptr.Get()))
	})
	r.Strings.Range(func(key string, ptr *AtomicString) {
		out = append(out, key+"="+ptr.Load())
	})
	return out
}
