package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"yukyu/internal/domain/leave"
	"yukyu/internal/transport/http/api"
)

func FailTooLarge(w http.ResponseWriter, requestID string) {
	api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
}

// FailStore writes a 500 for a failed store call. Write failures carry their
// underlying message; anything else gets fallbackCode and a generic message.
func FailStore(w http.ResponseWriter, err error, fallbackCode, requestID string) {
	var writeErr *leave.StorageWriteError
	if errors.As(err, &writeErr) {
		slog.Error("storage write failed", "op", writeErr.Op, "err", writeErr.Err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "storage_write_failed", writeErr.Error(), requestID)
		return
	}
	slog.Error("store call failed", "err", err, "requestId", requestID)
	api.Fail(w, http.StatusInternalServerError, fallbackCode, "unexpected storage error", requestID)
}
