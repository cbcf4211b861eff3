package http

import (
	"net/http"

	"site-analytics/internal/aggregators"
	"site-analytics/internal/ingestors"
	"site-analytics/internal/shared/loggers"
	"site-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	ingestionService ingestors.IngestionService,
	aggregationService aggregators.AggregationService,
	httpLogger loggers.Logger,
) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	ingestEventHandler := NewIngestEventHandler(ingestionService)
	readAnalyticsHandler := NewReadAnalyticsHandler(aggregationService)

	// Routes
	router.Post("/events", errorHandlingAdapter(ingestEventHandler))
	router.Get("/analytics", errorHandlingAdapter(readAnalyticsHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
