package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SigScan/internal/domain/models"
	"SigScan/internal/usecase"
	xhttp "SigScan/pkg/http"
	xlogger "SigScan/pkg/logger"

	"github.com/labstack/echo/v4"
)

type memPersistence struct{}

func (memPersistence) Load(context.Context) ([]models.Signal, error) { return nil, nil }
func (memPersistence) Save(context.Context, []models.Signal) error   { return nil }

type nopMetrics struct{}

func (nopMetrics) RecordSignalAccepted(string, string) {}
func (nopMetrics) RecordSignalRejected(string, string) {}
func (nopMetrics) RecordProviderError(string)          {}
func (nopMetrics) RecordEvaluatorError(string)         {}
func (nopMetrics) RecordScanDuration(float64)          {}
func (nopMetrics) SetStoreSize(int)                    {}
func (nopMetrics) SetLastScan(float64)                 {}

func setup(t *testing.T) (*echo.Echo, *usecase.SignalStore) {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	store := usecase.NewSignalStore(memPersistence{}, nopMetrics{}, l)
	query := usecase.NewQueryService(store, nil, nil, time.Second, l)

	e := echo.New()
	NewSignalsEchoHandler(l, query, nil, nil).RegisterRoutes(e)
	return e, store
}

func seed(t *testing.T, store *usecase.SignalStore, symbol string) *models.Signal {
	t.Helper()
	sig, err := store.Add(context.Background(), symbol, &models.Verdict{
		Category:   models.CategoryTrendFollowing,
		Direction:  models.DirectionLong,
		Entry:      100,
		StopLoss:   98,
		TakeProfit: 104,
		Confidence: 70,
	})
	if err != nil || sig == nil {
		t.Fatalf("seed: sig=%v err=%v", sig, err)
	}
	return sig
}

func do(e *echo.Echo, method, target string) (*httptest.ResponseRecorder, xhttp.APIResponse) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var body xhttp.APIResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestListSignalsEndpoint(t *testing.T) {
	e, store := setup(t)
	seed(t, store, "BTCUSDT")
	seed(t, store, "ETHUSDT")

	rec, body := do(e, http.MethodGet, "/api/signals")
	if rec.Code != http.StatusOK {
		t.Fatalf("http status = %d", rec.Code)
	}
	if body.Status != http.StatusOK {
		t.Fatalf("envelope status = %d", body.Status)
	}

	data, ok := body.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected data shape: %T", body.Data)
	}
	if total, _ := data["total"].(float64); total != 2 {
		t.Fatalf("total = %v, want 2", data["total"])
	}
}

func TestListSignalsSymbolFilter(t *testing.T) {
	e, store := setup(t)
	seed(t, store, "BTCUSDT")
	seed(t, store, "ETHUSDT")

	_, body := do(e, http.MethodGet, "/api/signals?symbol=BTCUSDT")
	data := body.Data.(map[string]interface{})
	if total, _ := data["total"].(float64); total != 1 {
		t.Fatalf("total = %v, want 1", data["total"])
	}
}

func TestListSignalsRejectsBadLimit(t *testing.T) {
	e, _ := setup(t)
	_, body := do(e, http.MethodGet, "/api/signals?limit=9999")
	if body.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", body.Status)
	}
}

func TestStatsEndpoint(t *testing.T) {
	e, store := setup(t)
	seed(t, store, "BTCUSDT")

	_, body := do(e, http.MethodGet, "/api/stats")
	if body.Status != http.StatusOK {
		t.Fatalf("envelope status = %d", body.Status)
	}
	data := body.Data.(map[string]interface{})
	if total, _ := data["total"].(float64); total != 1 {
		t.Fatalf("total = %v, want 1", data["total"])
	}
}

func TestDeleteSignalEndpoint(t *testing.T) {
	e, store := setup(t)
	sig := seed(t, store, "BTCUSDT")

	_, body := do(e, http.MethodDelete, "/api/signals/"+sig.ID)
	if body.Status != http.StatusOK {
		t.Fatalf("envelope status = %d", body.Status)
	}

	_, body = do(e, http.MethodDelete, "/api/signals/"+sig.ID)
	if body.Status != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", body.Status)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := setup(t)
	_, body := do(e, http.MethodGet, "/api/health")
	if body.Status != http.StatusOK {
		t.Fatalf("envelope status = %d", body.Status)
	}
	data := body.Data.(map[string]interface{})
	if data["status"] != "ok" {
		t.Fatalf("health = %v", data)
	}
}
