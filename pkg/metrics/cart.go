package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the cart add handler
	CartAddLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cart_add_latency_seconds",
		Help:    "Latency of the cart add-or-merge handler",
		Buckets: prometheus.DefBuckets,
	})

	// Cart adds split by whether a new line was created or an
	// existing one was merged into
	CartAddTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_add_total",
		Help: "Total cart add requests by outcome",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		CartAddLatency,
		CartAddTotal,
	)
}
