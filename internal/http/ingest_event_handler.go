package http

import (
	"encoding/json"
	"net/http"

	"site-analytics/internal/ingestors"
	"site-analytics/internal/shared/loggers"
	"site-analytics/internal/shared/svcerrors"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// ackResponse is the body returned for every event submission.
type ackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ingestEventHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestEventHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestEventHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /events requests. Submissions are acknowledged with
// HTTP 200 whether or not the event was accepted; tracking beacons fire from
// page unload and must never see an error status.
func (h *ingestEventHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.ingestionService.IngestEvent(r.Context(), r.Body)
	if err != nil {
		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = svcerrors.NewInternalErrorUndefined(err)
		}

		if svcErr.IsInternalError() {
			loggers.Ctx(r.Context()).Error().
				Err(svcErr.Cause).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Msg("event ingestion failed")
		}

		// expose the error code to metrics and completion-log middlewares
		if appWriter, ok := w.(*appResponseWriter); ok {
			appWriter.SetServiceError(svcErr)
		}

		writeAck(w, ackResponse{Status: "error", Message: svcErr.Message})
		return nil
	}

	loggers.Ctx(r.Context()).Debug().
		Str(loggers.FieldEventType, string(result.EventType)).
		Str(loggers.FieldEventID, result.EventID).
		Msg("event accepted")

	writeAck(w, ackResponse{Status: "ok"})
	return nil
}

func writeAck(w http.ResponseWriter, ack ackResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(ack)
}
