package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()
	factory  = promauto.With(registry)

	recommendationStartedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_started_total",
		Help: "Total recommendation requests accepted",
	})
	recommendationSucceededTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_succeeded_total",
		Help: "Total recommendations returned",
	})
	recommendationFailedTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_failed_total",
		Help: "Total recommendation failures by category",
	}, []string{"category"})

	gatewayDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "gateway_request_duration_ms",
		Help:    "AI gateway round trip in milliseconds",
		Buckets: []float64{250, 500, 1000, 2000, 5000, 10000, 20000, 30000, 60000},
	})
)

// IncRecommendationStarted increments the started counter.
func IncRecommendationStarted() {
	recommendationStartedTotal.Inc()
}

// IncRecommendationSucceeded increments the succeeded counter.
func IncRecommendationSucceeded() {
	recommendationSucceededTotal.Inc()
}

// IncRecommendationFailed increments the failure counter for category.
func IncRecommendationFailed(category string) {
	recommendationFailedTotal.WithLabelValues(category).Inc()
}

// ObserveGatewayDurationMs records a gateway round trip in milliseconds.
func ObserveGatewayDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	gatewayDuration.Observe(value)
}

// Handler exposes the service registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
