package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RemoteCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_calls_total",
			Help: "Remote service calls by contract, operation and outcome",
		},
		[]string{"service", "op", "outcome"}, // outcome: ok|error
	)
	DeleteRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "image_delete_retries_total",
			Help: "Retry attempts during user-image delete reconciliation",
		},
	)
	DesignCascades = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "design_cascade_removals_total",
			Help: "Placed logos removed from the design graph by cascade",
		},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"domain", "op"}, // op: hit|miss|expired|evicted
	)
	CacheSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of entries currently cached per domain",
		},
		[]string{"domain"},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RemoteCalls, DeleteRetries, DesignCascades, CacheOps, CacheSize)
	})
}
