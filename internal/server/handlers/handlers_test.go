package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository/sqlitedb"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/server/handlers"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/server/router"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/billing"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/registry"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/reminders"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/service/statistics"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	store, err := sqlitedb.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return router.New(router.Handlers{
		Registry:   handlers.NewRegistryHandler(registry.NewService(store, nil, nil), nil),
		Billing:    handlers.NewBillingHandler(billing.NewService(store, nil, nil), nil),
		Reminders:  handlers.NewReminderHandler(reminders.NewService(store, nil), nil),
		Statistics: handlers.NewStatisticsHandler(statistics.NewService(store, nil), nil),
	}, nil)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthz(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestApiaryLifecycle(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/apiaries", map[string]any{
		"namn":   "Hemma",
		"adress": "Bivägen 1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var apiary struct {
		ID   string `json:"id"`
		Name string `json:"namn"`
	}
	decode(t, rec, &apiary)
	require.NotEmpty(t, apiary.ID)
	require.Equal(t, "Hemma", apiary.Name)

	rec = doJSON(t, engine, http.MethodGet, "/api/apiaries/"+apiary.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/apiaries/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/apiaries", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	require.Contains(t, body, "error")
}

func TestGuardedApiaryDelete(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/apiaries", map[string]any{"namn": "Hemma"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var apiary struct {
		ID string `json:"id"`
	}
	decode(t, rec, &apiary)

	rec = doJSON(t, engine, http.MethodPost, "/api/colonies", map[string]any{
		"bigardId": apiary.ID,
		"namn":     "Samhälle 1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodDelete, "/api/apiaries/"+apiary.ID, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvoiceFlowOverHTTP(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodPost, "/api/customers", map[string]any{"namn": "Anna Karlsson"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var customer struct {
		ID string `json:"id"`
	}
	decode(t, rec, &customer)

	rec = doJSON(t, engine, http.MethodPost, "/api/invoices", map[string]any{
		"kundId":       customer.ID,
		"fakturaDatum": "2026-03-01",
		"forfallDatum": "2026-03-31",
		"rader": []map[string]any{
			{"beskrivning": "Honung 500g", "antal": 10, "prisPerEnhet": 80, "momsSats": 0.12},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var invoice struct {
		ID          string  `json:"id"`
		Number      string  `json:"fakturaNummer"`
		TotalIncVAT float64 `json:"totaltInklMoms"`
	}
	decode(t, rec, &invoice)
	require.Equal(t, "F0001", invoice.Number)
	require.InDelta(t, 896.0, invoice.TotalIncVAT, 1e-9)

	rec = doJSON(t, engine, http.MethodPut, "/api/invoices/"+invoice.ID, map[string]any{
		"status": "Betald",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/accounting", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	decode(t, rec, &entries)
	require.Len(t, entries, 1)

	rec = doJSON(t, engine, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings struct {
		NextInvoiceNumber int `json:"nastaFakturaNummer"`
	}
	decode(t, rec, &settings)
	require.Equal(t, 2, settings.NextInvoiceNumber)
}

func TestStatisticsEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/statistics?year=2026", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Year int `json:"year"`
	}
	decode(t, rec, &report)
	require.Equal(t, 2026, report.Year)

	rec = doJSON(t, engine, http.MethodGet, "/api/statistics?year=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLedgerExportEndpoint(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/accounting/export?year=2026", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Body.Bytes())
}
