package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Venue metrics
	VenueCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "splitengine_venue_count",
		Help: "Total number of registered venues",
	})

	VenueUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitengine_venue_updates_total",
		Help: "Total number of venue reserve updates received",
	})

	// Split pipeline metrics
	SplitQuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitengine_split_quote_requests_total",
			Help: "Total number of split quote requests",
		},
		[]string{"status"},
	)

	SplitQuoteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitengine_split_quote_duration_seconds",
		Help:    "End-to-end split quote duration in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05},
	})

	MatrixBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitengine_matrix_build_duration_seconds",
		Help:    "Value matrix construction duration in seconds",
		Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	OptimizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitengine_optimize_duration_seconds",
		Help:    "Distribution DP duration in seconds",
		Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	SplitSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitengine_split_steps",
		Help:    "Step count requested per split quote",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128, 255},
	})

	SplitLegs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitengine_split_legs",
		Help:    "Number of venues receiving volume per optimal split",
		Buckets: []float64{1, 2, 3, 4, 5, 7, 10},
	})

	// Swap build metrics
	SwapRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitengine_swap_requests_total",
			Help: "Total number of split swap build requests",
		},
		[]string{"status"},
	)

	SwapBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitengine_swap_build_duration_seconds",
		Help:    "Split swap transaction build duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitengine_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "splitengine_http_in_flight_requests",
		Help: "Number of HTTP requests currently being served",
	})

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "splitengine_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
