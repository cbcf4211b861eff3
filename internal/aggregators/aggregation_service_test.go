package aggregators

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"site-analytics/internal/models"
	"site-analytics/internal/stores"
	storemocks "site-analytics/internal/stores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAggregationService(eventStore *storemocks.MockEventStore, cacheStore *storemocks.MockAggregateCacheStore) *aggregationService {
	return &aggregationService{
		engine:     newTestEngine(),
		eventStore: eventStore,
		cacheStore: cacheStore,
		now:        func() time.Time { return testNow },
	}
}

func TestGetAggregate_CacheHit_ReturnsCachedBlob(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockCacheStore := storemocks.NewMockAggregateCacheStore(ctrl)
	service := newTestAggregationService(mockEventStore, mockCacheStore)

	ctx := context.Background()
	cached := []byte(`{"summary":{"totalViews":42}}`)

	// No store scan on a hit
	mockCacheStore.EXPECT().Get(ctx).Return(cached, nil)

	blob, err := service.GetAggregate(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, blob)
}

func TestGetAggregate_CacheMiss_RecomputesAndCaches(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockCacheStore := storemocks.NewMockAggregateCacheStore(ctrl)
	service := newTestAggregationService(mockEventStore, mockCacheStore)

	ctx := context.Background()
	pvs := []*models.PageViewEvent{
		{Timestamp: "2026-03-01T08:00:00.000Z", Path: "/blog", SessionID: "s1", VisitorID: "v1"},
	}

	mockCacheStore.EXPECT().Get(ctx).Return(nil, stores.ErrCacheMiss)
	mockEventStore.EXPECT().ListPageViews(ctx).Return(pvs, nil)
	mockEventStore.EXPECT().ListEngagements(ctx).Return(nil, nil)

	var cachedBlob []byte
	mockCacheStore.EXPECT().
		Set(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, blob []byte) error {
			cachedBlob = blob
			return nil
		})

	blob, err := service.GetAggregate(ctx)

	require.NoError(t, err)
	assert.Equal(t, blob, cachedBlob, "served and cached blobs are the same bytes")

	var result models.AggregateResult
	require.NoError(t, json.Unmarshal(blob, &result))
	assert.Equal(t, 1, result.Summary.TotalViews)
	require.Len(t, result.Pages, 1)
	assert.Equal(t, "/blog", result.Pages[0].Path)
}

func TestGetAggregate_CacheWriteFailure_StillServes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockCacheStore := storemocks.NewMockAggregateCacheStore(ctrl)
	service := newTestAggregationService(mockEventStore, mockCacheStore)

	ctx := context.Background()

	mockCacheStore.EXPECT().Get(ctx).Return(nil, stores.ErrCacheMiss)
	mockEventStore.EXPECT().ListPageViews(ctx).Return(nil, nil)
	mockEventStore.EXPECT().ListEngagements(ctx).Return(nil, nil)
	mockCacheStore.EXPECT().Set(ctx, gomock.Any()).Return(assert.AnError)

	blob, err := service.GetAggregate(ctx)

	require.NoError(t, err)
	assert.NotEmpty(t, blob)
}

func TestGetAggregate_CacheReadFailure_Recomputes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockCacheStore := storemocks.NewMockAggregateCacheStore(ctrl)
	service := newTestAggregationService(mockEventStore, mockCacheStore)

	ctx := context.Background()

	mockCacheStore.EXPECT().Get(ctx).Return(nil, assert.AnError)
	mockEventStore.EXPECT().ListPageViews(ctx).Return(nil, nil)
	mockEventStore.EXPECT().ListEngagements(ctx).Return(nil, nil)
	mockCacheStore.EXPECT().Set(ctx, gomock.Any()).Return(nil)

	blob, err := service.GetAggregate(ctx)

	require.NoError(t, err)
	assert.NotEmpty(t, blob)
}

func TestGetAggregate_StoreScanFailure_ServesEmptyDocument(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockCacheStore := storemocks.NewMockAggregateCacheStore(ctrl)
	service := newTestAggregationService(mockEventStore, mockCacheStore)

	ctx := context.Background()

	mockCacheStore.EXPECT().Get(ctx).Return(nil, stores.ErrCacheMiss)
	mockEventStore.EXPECT().ListPageViews(ctx).Return(nil, assert.AnError)

	blob, err := service.GetAggregate(ctx)

	require.NoError(t, err, "reads never fail")

	var result models.AggregateResult
	require.NoError(t, json.Unmarshal(blob, &result))
	assert.Zero(t, result.Summary.TotalViews)
	assert.NotNil(t, result.Daily)
	assert.NotContains(t, string(blob), "null", "empty document renders lists as []")
}

func TestGetAggregate_EngagementScanFailure_ServesEmptyDocument(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEventStore := storemocks.NewMockEventStore(ctrl)
	mockCacheStore := storemocks.NewMockAggregateCacheStore(ctrl)
	service := newTestAggregationService(mockEventStore, mockCacheStore)

	ctx := context.Background()

	mockCacheStore.EXPECT().Get(ctx).Return(nil, stores.ErrCacheMiss)
	mockEventStore.EXPECT().ListPageViews(ctx).Return(nil, nil)
	mockEventStore.EXPECT().ListEngagements(ctx).Return(nil, assert.AnError)

	blob, err := service.GetAggregate(ctx)

	require.NoError(t, err)
	assert.JSONEq(t, string(emptyAggregateJSON()), string(blob))
}
