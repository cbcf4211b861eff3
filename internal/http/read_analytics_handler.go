package http

import (
	"net/http"

	"site-analytics/internal/aggregators"
)

type readAnalyticsHandler struct {
	aggregationService aggregators.AggregationService
}

func NewReadAnalyticsHandler(aggregationService aggregators.AggregationService) AppHttpHandler {
	return &readAnalyticsHandler{
		aggregationService: aggregationService,
	}
}

// Handle serves GET /analytics. The aggregation service degrades to an empty
// document on internal failures, so the response is always a complete
// aggregate.
func (h *readAnalyticsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	blob, err := h.aggregationService.GetAggregate(r.Context())
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(blob)
	return nil
}
