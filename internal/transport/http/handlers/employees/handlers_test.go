package employeehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yukyu/internal/domain/leave"
	"yukyu/internal/platform/db"
	"yukyu/internal/platform/metrics"
)

const employeeJSON = `{
  "id": "emp-1",
  "employeeNum": "1001",
  "name": "山田 太郎",
  "haken": null,
  "granted": 12,
  "used": 0,
  "balance": 12,
  "usageRate": 0,
  "year": 2025,
  "periodHistory": [{
    "periodIndex": 0,
    "periodName": "初回(6ヶ月)",
    "elapsedMonths": 6,
    "yukyuStartDate": "2024-04-01",
    "grantDate": "2024-10-01",
    "expiryDate": "2026-10-01",
    "granted": 10,
    "used": 0,
    "balance": 10,
    "expired": 0,
    "isExpired": false,
    "isCurrentPeriod": true,
    "source": "excel",
    "syncedAt": "2025-01-10T09:00:00Z"
  }]
}`

func newRouter(t *testing.T, store leave.StoreAPI) (http.Handler, *metrics.Collector) {
	t.Helper()
	collector := metrics.New()
	h := NewHandler(store, collector, "")
	h.Now = func() time.Time { return time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC) }
	r := chi.NewRouter()
	r.Route("/api", h.RegisterRoutes)
	return r, collector
}

func newStore(t *testing.T) *leave.Store {
	t.Helper()
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "yukyu.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return leave.NewStore(database)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			Fields []struct {
				Field  string `json:"field"`
				Reason string `json:"reason"`
			} `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func TestSyncThenList(t *testing.T) {
	router, collector := newRouter(t, newStore(t))

	rec := do(t, router, http.MethodPost, "/api/employees", "["+employeeJSON+"]")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"status":"success","count":1}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []leave.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "emp-1", got[0].ID)
	assert.Nil(t, got[0].Haken)
	assert.Equal(t, []string{}, got[0].YukyuDates)
	require.Len(t, got[0].PeriodHistory, 1)
	assert.Equal(t, []string{}, got[0].PeriodHistory[0].YukyuDates)
	assert.True(t, got[0].PeriodHistory[0].IsCurrentPeriod)
	assert.NotEmpty(t, got[0].LastUpdated)

	assert.EqualValues(t, 1, collector.Snapshot()["employeesSyncedTotal"])
}

func TestSyncEmptyBatch(t *testing.T) {
	router, _ := newRouter(t, newStore(t))

	rec := do(t, router, http.MethodPost, "/api/employees", "[]")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","count":0}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/employees", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSyncRejectsMissingField(t *testing.T) {
	store := newStore(t)
	router, _ := newRouter(t, store)

	broken := strings.Replace(employeeJSON, `"grantDate": "2024-10-01",`, "", 1)
	rec := do(t, router, http.MethodPost, "/api/employees", "["+employeeJSON+","+broken+"]")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Code)
	require.Len(t, body.Error.Details.Fields, 1)
	assert.Equal(t, "[1].periodHistory[0].grantDate", body.Error.Details.Fields[0].Field)

	employees, err := store.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Empty(t, employees)
}

func TestSyncRejectsWrongType(t *testing.T) {
	router, _ := newRouter(t, newStore(t))

	broken := strings.Replace(employeeJSON, `"year": 2025`, `"year": "2025"`, 1)
	rec := do(t, router, http.MethodPost, "/api/employees", "["+broken+"]")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Error.Details.Fields, 1)
	assert.Equal(t, "year", body.Error.Details.Fields[0].Field)
}

func TestSyncRejectsObjectBody(t *testing.T) {
	router, _ := newRouter(t, newStore(t))

	rec := do(t, router, http.MethodPost, "/api/employees", employeeJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type failingStore struct {
	leave.StoreAPI
	err error
}

func (f failingStore) SyncEmployees(context.Context, []leave.Employee) (int, error) {
	return 0, f.err
}

func (f failingStore) ListEmployees(context.Context) ([]leave.Employee, error) {
	return nil, f.err
}

func TestSyncStorageFailure(t *testing.T) {
	router, _ := newRouter(t, failingStore{err: &leave.StorageWriteError{Op: "sync employees", Err: errors.New("disk I/O error")}})

	rec := do(t, router, http.MethodPost, "/api/employees", "["+employeeJSON+"]")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "storage_write_failed", body.Error.Code)
	assert.Contains(t, body.Error.Message, "disk I/O error")
}

func TestListFailure(t *testing.T) {
	router, _ := newRouter(t, failingStore{err: errors.New("no such table")})

	rec := do(t, router, http.MethodGet, "/api/employees", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "employees_list_failed", body.Error.Code)
}

func TestLedgerExports(t *testing.T) {
	router, _ := newRouter(t, newStore(t))
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/employees", "["+employeeJSON+"]").Code)

	rec := do(t, router, http.MethodGet, "/api/employees/ledger.csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "employee_num,"))
	assert.True(t, strings.HasPrefix(lines[1], "1001,山田 太郎,"))

	rec = do(t, router, http.MethodGet, "/api/employees/ledger.pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestSyncRejectsTrailingData(t *testing.T) {
	store := newStore(t)
	router, _ := newRouter(t, store)

	rec := do(t, router, http.MethodPost, "/api/employees", "["+employeeJSON+"] this is not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Code)
	require.Len(t, body.Error.Details.Fields, 1)
	assert.Equal(t, "body", body.Error.Details.Fields[0].Field)

	employees, err := store.ListEmployees(context.Background())
	require.NoError(t, err)
	assert.Empty(t, employees)
}

func TestSyncRejectsNullLeaveDates(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "employee dates",
			body:  strings.Replace(employeeJSON, `"year": 2025,`, `"year": 2025, "yukyuDates": [null, "2025-01-10"],`, 1),
			field: "[0].yukyuDates[0]",
		},
		{
			name:  "period dates",
			body:  strings.Replace(employeeJSON, `"source": "excel",`, `"source": "excel", "yukyuDates": ["2025-01-10", null],`, 1),
			field: "[0].periodHistory[0].yukyuDates[1]",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStore(t)
			router, _ := newRouter(t, store)

			rec := do(t, router, http.MethodPost, "/api/employees", "["+tc.body+"]")
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Len(t, body.Error.Details.Fields, 1)
			assert.Equal(t, tc.field, body.Error.Details.Fields[0].Field)
			assert.Equal(t, "is required", body.Error.Details.Fields[0].Reason)

			employees, err := store.ListEmployees(context.Background())
			require.NoError(t, err)
			assert.Empty(t, employees)
		})
	}
}

func TestSyncKeepsLeaveDates(t *testing.T) {
	router, _ := newRouter(t, newStore(t))

	withDates := strings.Replace(employeeJSON, `"year": 2025,`, `"year": 2025, "yukyuDates": ["2025-01-10", ""],`, 1)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/employees", "["+withDates+"]").Code)

	var got []leave.Employee
	require.NoError(t, json.Unmarshal(do(t, router, http.MethodGet, "/api/employees", "").Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, []string{"2025-01-10", ""}, got[0].YukyuDates)
}
