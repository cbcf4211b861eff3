package ingestors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"site-analytics/internal/models"
	"site-analytics/internal/shared/loggers"
	"site-analytics/internal/shared/metrics"
	"site-analytics/internal/stores"
)

const (
	maxEventBytes = 64 * 1024
	maxPathLen    = 2048
)

// IngestResult represents the result of a single event ingestion.
type IngestResult struct {
	EventType models.EventType
	EventID   string
}

// IngestionService is the write path. It decodes one tracker payload, routes
// it on eventType (defaulting to pageview for older tracker builds that
// never set the field), normalizes it into a fully-populated typed record,
// appends it to the event store, and invalidates the aggregate cache so the
// next read recomputes.
//
// The cache is invalidated only after a successful append; a failed append
// leaves the cached aggregate in place since no new data exists.
//
//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	IngestEvent(ctx context.Context, r io.Reader) (*IngestResult, error)
}

type ingestionService struct {
	eventStore stores.EventStore
	cacheStore stores.AggregateCacheStore
	now        func() time.Time
}

func NewIngestionService(eventStore stores.EventStore, cacheStore stores.AggregateCacheStore) IngestionService {
	return &ingestionService{
		eventStore: eventStore,
		cacheStore: cacheStore,
		now:        time.Now,
	}
}

func (s *ingestionService) IngestEvent(ctx context.Context, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)

	payload, err := s.decodePayload(r)
	if err != nil {
		return nil, s.countError(models.EventType("unknown"), err)
	}

	eventType := models.EventType(stringField(payload, "eventType", string(models.EventTypePageView)))

	var eventID string
	var appendErr error
	switch eventType {
	case models.EventTypePageView:
		event := s.normalizePageView(payload)
		if err := validatePath(event.Path); err != nil {
			return nil, s.countError(eventType, err)
		}
		eventID, appendErr = s.eventStore.AppendPageView(ctx, event)
	case models.EventTypeEngagement:
		event := s.normalizeEngagement(payload)
		if err := validatePath(event.Path); err != nil {
			return nil, s.countError(eventType, err)
		}
		eventID, appendErr = s.eventStore.AppendEngagement(ctx, event)
	case models.EventTypeScroll:
		event := s.normalizeScroll(payload)
		if err := validatePath(event.Path); err != nil {
			return nil, s.countError(eventType, err)
		}
		eventID, appendErr = s.eventStore.AppendScroll(ctx, event)
	default:
		return nil, s.countError(eventType, errValidationFailed(fmt.Sprintf("unsupported event type: %q", eventType), nil))
	}

	if appendErr != nil {
		return nil, s.countError(eventType, errInternalEventStoreFailed(appendErr))
	}

	// The stored collections changed, so the cached aggregate is stale.
	if err := s.cacheStore.Invalidate(ctx); err != nil {
		return nil, s.countError(eventType, errInternalCacheInvalidateFailed(err))
	}

	logger.Debug().
		Str(loggers.FieldEventType, string(eventType)).
		Str(loggers.FieldEventID, eventID).
		Msg("event ingested")

	metricEventIngestedTotal.WithLabelValues(string(eventType), metrics.ValueNoError).Inc()
	return &IngestResult{EventType: eventType, EventID: eventID}, nil
}

func (s *ingestionService) decodePayload(r io.Reader) (map[string]any, error) {
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := s.readWithLimit(r, maxEventBytes)
	if err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, errValidationFailed("empty request body", nil)
	}

	var payload map[string]any
	if err := json.Unmarshal(buf, &payload); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}
	return payload, nil
}

// readWithLimit reads up to max+1 bytes from r and checks if it exceeds max.
func (s *ingestionService) readWithLimit(r io.Reader, max int) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > max {
		return nil, errValidationFailed("event too large: must be <= 64KB", nil)
	}
	return buf, nil
}

func validatePath(path string) error {
	if len(path) > maxPathLen {
		return errValidationFailed(fmt.Sprintf("path too long: max %d characters", maxPathLen), nil)
	}
	return nil
}

func (s *ingestionService) countError(eventType models.EventType, err error) error {
	code := metrics.ValueNoError
	if svcErr, ok := svcErrCode(err); ok {
		code = svcErr
	}
	metricEventIngestedTotal.WithLabelValues(string(eventType), code).Inc()
	return err
}
