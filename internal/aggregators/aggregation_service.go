package aggregators

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"site-analytics/internal/models"
	"site-analytics/internal/shared/loggers"
	"site-analytics/internal/shared/svcerrors"
	"site-analytics/internal/stores"
)

// AggregationService is the read path: serve the cached aggregate while it
// is fresh, otherwise scan the event store, run the engine, cache the
// serialized result, and return it.
//
// A read never fails. Internal errors degrade to the empty default document
// so the dashboard always has something valid to render. Concurrent reads
// during a cache miss may both recompute; that stampede is benign because
// the engine is a pure function of the store contents at invocation time.
//
//go:generate mockgen -source=aggregation_service.go -destination=./mocks/aggregation_service_mock.go -package=mocks
type AggregationService interface {
	GetAggregate(ctx context.Context) ([]byte, error)
}

type aggregationService struct {
	engine     MetricsEngine
	eventStore stores.EventStore
	cacheStore stores.AggregateCacheStore
	now        func() time.Time
}

func NewAggregationService(engine MetricsEngine, eventStore stores.EventStore, cacheStore stores.AggregateCacheStore) AggregationService {
	return &aggregationService{
		engine:     engine,
		eventStore: eventStore,
		cacheStore: cacheStore,
		now:        time.Now,
	}
}

func (s *aggregationService) GetAggregate(ctx context.Context) ([]byte, error) {
	logger := loggers.Ctx(ctx)

	blob, err := s.cacheStore.Get(ctx)
	if err == nil {
		metricAggregateServedTotal.WithLabelValues(sourceCache).Inc()
		return blob, nil
	}
	if !errors.Is(err, stores.ErrCacheMiss) {
		logger.Warn().Err(err).Msg("aggregate cache read failed, recomputing")
	}

	blob, svcErr := s.compute(ctx)
	if svcErr != nil {
		logger.Error().
			Err(svcErr.Cause).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("aggregate computation failed, serving empty document")
		metricAggregateServedTotal.WithLabelValues(sourceEmpty).Inc()
		return emptyAggregateJSON(), nil
	}

	if err := s.cacheStore.Set(ctx, blob); err != nil {
		// Serving fresh data matters more than caching it
		logger.Warn().Err(err).Msg("aggregate cache write failed")
	}
	metricAggregateServedTotal.WithLabelValues(sourceRecompute).Inc()
	return blob, nil
}

func (s *aggregationService) compute(ctx context.Context) ([]byte, *svcerrors.ServiceError) {
	pageViews, err := s.eventStore.ListPageViews(ctx)
	if err != nil {
		return nil, errInternalEventStoreScanFailed(err)
	}
	engagements, err := s.eventStore.ListEngagements(ctx)
	if err != nil {
		return nil, errInternalEventStoreScanFailed(err)
	}

	result := s.engine.Compute(pageViews, engagements, s.now())
	blob, err := json.Marshal(result)
	if err != nil {
		return nil, errInternalAggregateEncodeFailed(err)
	}
	return blob, nil
}

func emptyAggregateJSON() []byte {
	blob, _ := json.Marshal(models.NewEmptyAggregateResult())
	return blob
}
