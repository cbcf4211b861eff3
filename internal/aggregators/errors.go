package aggregators

import (
	"fmt"

	"site-analytics/internal/shared/svcerrors"
)

const (
	codeInternalEventStoreScanFailed  = "AGG_9000"
	codeInternalAggregateEncodeFailed = "AGG_9001"
)

// errInternalEventStoreScanFailed returns an error when an event collection scan fails.
func errInternalEventStoreScanFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventStoreScanFailed, fmt.Errorf("eventStoreScanFailed: %w", cause))
}

// errInternalAggregateEncodeFailed returns an error when the aggregate document cannot be serialized.
func errInternalAggregateEncodeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregateEncodeFailed, fmt.Errorf("aggregateEncodeFailed: %w", cause))
}
