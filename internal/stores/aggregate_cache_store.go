package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"site-analytics/internal/shared/filestorages"
)

var ErrCacheMiss = errors.New("aggregate cache miss")

const cacheKey = "cache/aggregate.json"

// AggregateCacheStore is the single-slot TTL cache in front of the metrics
// engine. One serialized aggregate blob is retained at a time; there is no
// per-query keying because the aggregate covers the whole dataset.
//
// Get returns ErrCacheMiss for a missing, expired, or unreadable slot — the
// cache is a disposable derived artifact, so a corrupt slot is treated as
// absent and rebuilt, never surfaced as a failure. Invalidate clears the
// slot unconditionally so the next Get misses regardless of remaining TTL.
//
//go:generate mockgen -source=aggregate_cache_store.go -destination=./mocks/aggregate_cache_store_mock.go -package=mocks
type AggregateCacheStore interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, blob []byte) error
	Invalidate(ctx context.Context) error
}

// cacheRecord is the persisted slot layout. Data is kept as raw JSON so the
// cached blob is returned byte-for-byte as it was stored.
type cacheRecord struct {
	CachedAt string          `json:"cachedAt"`
	Data     json.RawMessage `json:"data"`
}

type aggregateCacheStore struct {
	fileStorage filestorages.FileStorage
	ttl         time.Duration
	now         func() time.Time
}

func NewAggregateCacheStore(fileStorage filestorages.FileStorage, ttl time.Duration) AggregateCacheStore {
	return &aggregateCacheStore{
		fileStorage: fileStorage,
		ttl:         ttl,
		now:         time.Now,
	}
}

func (s *aggregateCacheStore) Get(ctx context.Context) ([]byte, error) {
	readCloser, err := s.fileStorage.Get(ctx, cacheKey)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache slot: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache slot: %w", err)
	}

	var record cacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrCacheMiss
	}
	cachedAt, err := time.Parse(time.RFC3339Nano, record.CachedAt)
	if err != nil {
		return nil, ErrCacheMiss
	}
	if s.now().Sub(cachedAt) > s.ttl {
		return nil, ErrCacheMiss
	}
	return record.Data, nil
}

func (s *aggregateCacheStore) Set(ctx context.Context, blob []byte) error {
	record := cacheRecord{
		CachedAt: s.now().UTC().Format(time.RFC3339Nano),
		Data:     blob,
	}
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal cache slot: %w", err)
	}

	_, err = s.fileStorage.Put(ctx, cacheKey, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put cache slot: %w", err)
	}
	return nil
}

func (s *aggregateCacheStore) Invalidate(ctx context.Context) error {
	if err := s.fileStorage.Delete(ctx, cacheKey); err != nil {
		return fmt.Errorf("failed to delete cache slot: %w", err)
	}
	return nil
}
