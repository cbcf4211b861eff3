package aggregators

import (
	"site-analytics/internal/shared/metrics"
)

const (
	sourceCache     = "cache"
	sourceRecompute = "recompute"
	sourceEmpty     = "empty"
)

var (
	metricAggregateServedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "aggregate_served_total",
		},
		[]string{metrics.FieldSource},
	)
)
