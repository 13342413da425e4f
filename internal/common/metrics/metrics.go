// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_recommendations_generated_total",
			Help: "Total number of recommendations assembled, by generation path",
		},
		[]string{"path"},
	)

	AIGatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_ai_gateway_requests_total",
			Help: "Total number of AI generation requests, by outcome",
		},
		[]string{"outcome"},
	)

	PipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "insight_pipeline_duration_seconds",
			Help: "Duration of the full recommendation pipeline in seconds",
		},
		[]string{"path"},
	)

	UploadSheets = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "insight_upload_sheets",
			Help:    "Number of worksheets per uploaded workbook",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)
)
