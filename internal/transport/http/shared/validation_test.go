package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type childPayload struct {
	Date *string `json:"date" validate:"required"`
}

type samplePayload struct {
	ID       *string        `json:"id" validate:"required,min=1"`
	Count    *int           `json:"count" validate:"required"`
	Children []childPayload `json:"children" validate:"omitempty,dive"`
}

func TestStructReportsJSONFieldPaths(t *testing.T) {
	empty := ""
	v := NewValidator()
	v.Struct("[1]", samplePayload{ID: &empty, Children: []childPayload{{}}})

	require.True(t, v.HasIssues())
	assert.Equal(t, []ValidationIssue{
		{Field: "[1].children[0].date", Reason: "is required"},
		{Field: "[1].count", Reason: "is required"},
		{Field: "[1].id", Reason: "must not be empty"},
	}, v.Issues())
}

func TestStructAcceptsZeroValuesBehindPointers(t *testing.T) {
	id := "x"
	zero := 0
	v := NewValidator()
	v.Struct("", samplePayload{ID: &id, Count: &zero})

	assert.False(t, v.HasIssues())
}

func TestDecodeTypeMismatch(t *testing.T) {
	var payload samplePayload
	err := json.Unmarshal([]byte(`{"id":"x","count":"three"}`), &payload)
	require.Error(t, err)

	v := NewValidator()
	v.Decode(err)
	require.Len(t, v.Issues(), 1)
	assert.Equal(t, "count", v.Issues()[0].Field)
	assert.Contains(t, v.Issues()[0].Reason, "an integer")
}

func TestDecodeJSONWritesValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(`{"id":`))

	var payload samplePayload
	ok := DecodeJSON(rec, req, "req-1", &payload)
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Details struct {
				Fields []ValidationIssue `json:"fields"`
			} `json:"details"`
		} `json:"error"`
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "req-1", body.RequestID)
	require.Len(t, body.Error.Details.Fields, 1)
	assert.Equal(t, "body", body.Error.Details.Fields[0].Field)
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(""))

	var payload samplePayload
	require.False(t, DecodeJSON(rec, req, "", &payload))
	assert.Contains(t, rec.Body.String(), "request body is required")
}

func TestDecodeJSONTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(`{"id":"0123456789"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 4)

	var payload samplePayload
	require.False(t, DecodeJSON(rec, req, "", &payload))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	cases := map[string]string{
		"garbage":      `{"id":"x","count":1} this is not json`,
		"second value": `{"id":"x","count":1}{"id":"y"}`,
		"second array": `[] []`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(body))

			var payload any
			require.False(t, DecodeJSON(rec, req, "", &payload))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "unexpected data after JSON value")
		})
	}
}

func TestDecodeJSONAllowsTrailingWhitespace(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader("{\"id\":\"x\",\"count\":1}\n\t "))

	var payload samplePayload
	require.True(t, DecodeJSON(rec, req, "", &payload))
	assert.Equal(t, "x", *payload.ID)
}

// Keys match struct tags case-insensitively, as encoding/json does.
func TestDecodeJSONMatchesKeysCaseInsensitively(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/records", strings.NewReader(`{"ID":"x","Count":2}`))

	var payload samplePayload
	require.True(t, DecodeJSON(rec, req, "", &payload))
	assert.Equal(t, "x", *payload.ID)
	assert.Equal(t, 2, *payload.Count)
}
