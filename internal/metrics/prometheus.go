package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PoolAvailable = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "demo_pool_available_accounts",
			Help: "Number of unleased demo accounts in the pool",
		},
	)

	PoolActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "demo_pool_active_accounts",
			Help: "Number of demo accounts currently leased",
		},
	)

	LeasesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "demo_pool_leases_total",
			Help: "Total demo account leases granted, by acquisition path",
		},
		[]string{"path"}, // token | pool | seeded
	)

	SeededTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "demo_pool_accounts_seeded_total",
			Help: "Total demo instances created by the seeder",
		},
	)

	SweepReleased = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "demo_pool_sweep_released_total",
			Help: "Expired leases returned to the pool by the sweeper",
		},
	)

	SweepDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "demo_pool_sweep_deleted_total",
			Help: "Demo accounts hard-deleted by the sweeper",
		},
	)

	ReplenishEnqueued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "demo_pool_replenish_enqueued_total",
			Help: "Demo instances handed to the replenish queue worker",
		},
	)

	SeedDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "demo_pool_seed_duration_seconds",
			Help:    "Wall time to seed one demo instance",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Init registers metrics with Prometheus
func Init() {
	prometheus.MustRegister(PoolAvailable)
	prometheus.MustRegister(PoolActive)
	prometheus.MustRegister(LeasesTotal)
	prometheus.MustRegister(SeededTotal)
	prometheus.MustRegister(SweepReleased)
	prometheus.MustRegister(SweepDeleted)
	prometheus.MustRegister(ReplenishEnqueued)
	prometheus.MustRegister(SeedDuration)
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
