package ingestors

import (
	"fmt"

	"site-analytics/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed = "ING_1000"

	codeInternalEventStoreFailed      = "ING_9000"
	codeInternalCacheInvalidateFailed = "ING_9001"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errInternalEventStoreFailed returns an error when an event store append fails.
func errInternalEventStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventStoreFailed, fmt.Errorf("eventStoreFailed: %w", cause))
}

// errInternalCacheInvalidateFailed returns an error when the cache could not
// be invalidated after a successful append.
func errInternalCacheInvalidateFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalCacheInvalidateFailed, fmt.Errorf("cacheInvalidateFailed: %w", cause))
}

func svcErrCode(err error) (string, bool) {
	svcErr, ok := svcerrors.AsServiceError(err)
	if !ok {
		return "", false
	}
	return svcErr.Code, true
}
