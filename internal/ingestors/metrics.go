package ingestors

import (
	"site-analytics/internal/shared/metrics"
)

var (
	metricEventIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "event_ingested_total",
		},
		[]string{metrics.FieldEventType, metrics.FieldErrorCode},
	)
)
