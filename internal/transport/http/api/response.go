package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the error body. Successful responses keep the bare shapes the
// client already consumes and are written with JSON.
type Envelope struct {
	Success   bool   `json:"success"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Status struct {
	Status string `json:"status"`
	Count  *int   `json:"count,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func JSON(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

func OK(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, Status{Status: "success"})
}

func OKCount(w http.ResponseWriter, count int) {
	WriteJSON(w, http.StatusOK, Status{Status: "success", Count: &count})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}
