package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"site-analytics/internal/models"
	"site-analytics/internal/shared/filestorages"
	"site-analytics/internal/shared/ulid"
)

const (
	dirPageViews   = "events/pageviews"
	dirEngagements = "events/engagements"
	dirScrolls     = "events/scrolls"
)

// EventStore holds the three append-only event collections. Each append
// writes one immutable JSON blob keyed by a fresh ULID, so keys sort in
// arrival order and an atomic create-if-not-exists PUT is the only mutation.
// The collections are the single source of truth; everything derived from
// them (the aggregate cache included) can be rebuilt at any time.
//
// List operations are full scans. Rows that fail to load or decode are
// skipped rather than failing the scan: a single corrupt row must never
// blank the dashboard.
//
//go:generate mockgen -source=event_store.go -destination=./mocks/event_store_mock.go -package=mocks
type EventStore interface {
	AppendPageView(ctx context.Context, event *models.PageViewEvent) (string, error)
	AppendEngagement(ctx context.Context, event *models.EngagementEvent) (string, error)
	AppendScroll(ctx context.Context, event *models.ScrollEvent) (string, error)

	ListPageViews(ctx context.Context) ([]*models.PageViewEvent, error)
	ListEngagements(ctx context.Context) ([]*models.EngagementEvent, error)
	ListScrolls(ctx context.Context) ([]*models.ScrollEvent, error)
}

type eventStore struct {
	fileStorage filestorages.FileStorage
}

func NewEventStore(fileStorage filestorages.FileStorage) EventStore {
	return &eventStore{fileStorage: fileStorage}
}

func (s *eventStore) AppendPageView(ctx context.Context, event *models.PageViewEvent) (string, error) {
	return appendEvent(ctx, s.fileStorage, dirPageViews, event)
}

func (s *eventStore) AppendEngagement(ctx context.Context, event *models.EngagementEvent) (string, error) {
	return appendEvent(ctx, s.fileStorage, dirEngagements, event)
}

func (s *eventStore) AppendScroll(ctx context.Context, event *models.ScrollEvent) (string, error) {
	return appendEvent(ctx, s.fileStorage, dirScrolls, event)
}

func (s *eventStore) ListPageViews(ctx context.Context) ([]*models.PageViewEvent, error) {
	return listEvents[models.PageViewEvent](ctx, s.fileStorage, dirPageViews)
}

func (s *eventStore) ListEngagements(ctx context.Context) ([]*models.EngagementEvent, error) {
	return listEvents[models.EngagementEvent](ctx, s.fileStorage, dirEngagements)
}

func (s *eventStore) ListScrolls(ctx context.Context) ([]*models.ScrollEvent, error) {
	return listEvents[models.ScrollEvent](ctx, s.fileStorage, dirScrolls)
}

// appendEvent stores one event row and returns its ID. ULIDs carry a random
// component, so key collisions are not handled beyond propagating the error.
func appendEvent[T any](ctx context.Context, fileStorage filestorages.FileStorage, dir string, event *T) (string, error) {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to marshal event: %w", err)
	}

	eventID := ulid.NewULID()
	key := fmt.Sprintf("%s/%s.json", dir, eventID)
	_, err = fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: false})
	if err != nil {
		return "", fmt.Errorf("failed to put event: %w", err)
	}
	return eventID, nil
}

func listEvents[T any](ctx context.Context, fileStorage filestorages.FileStorage, dir string) ([]*T, error) {
	keys, err := fileStorage.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*T, 0, len(keys))
	for _, key := range keys {
		event, err := readEvent[T](ctx, fileStorage, key)
		if err != nil {
			// Skip unreadable rows; the scan must survive individual bad rows
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func readEvent[T any](ctx context.Context, fileStorage filestorages.FileStorage, key string) (*T, error) {
	readCloser, err := fileStorage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, err
	}
	var event T
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
