package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// DecodeJSON decodes the request body into dst. The body must hold exactly one
// JSON value. Validation problems are written as a 400 response and an
// oversized body as 413; the return value reports whether the caller may
// continue.
func DecodeJSON(w http.ResponseWriter, r *http.Request, requestID string, dst any) bool {
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		err = expectEOF(dec)
	}
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		FailTooLarge(w, requestID)
		return false
	}
	v := NewValidator()
	v.Decode(err)
	v.Reject(w, requestID)
	return false
}

var errTrailingData = errors.New("unexpected data after JSON value")

func expectEOF(dec *json.Decoder) error {
	var extra json.RawMessage
	err := dec.Decode(&extra)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return errTrailingData
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return errTrailingData
	}
}
