package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func decodeReadiness(t *testing.T, rec *httptest.ResponseRecorder) readinessResponse {
	t.Helper()
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestHealthHandler_Liveness(t *testing.T) {
	e := newTestEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/health", "")

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthDependenciesHandler_Ready(t *testing.T) {
	e := newTestEcho()
	ok := pingerFunc(func(context.Context) error { return nil })
	c, rec := newJSONContext(e, http.MethodGet, "/health/ready", "")

	if err := NewHealthDependenciesHandler(ok, ok).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeReadiness(t, rec)
	if resp.Status != "ok" || resp.Dependencies["database"].Status != "ok" || resp.Dependencies["redis"].Status != "ok" {
		t.Fatalf("unexpected readiness: %+v", resp)
	}
}

func TestHealthDependenciesHandler_CacheDisabled(t *testing.T) {
	e := newTestEcho()
	ok := pingerFunc(func(context.Context) error { return nil })
	c, rec := newJSONContext(e, http.MethodGet, "/health/ready", "")

	if err := NewHealthDependenciesHandler(ok, nil).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeReadiness(t, rec); resp.Dependencies["redis"].Status != "disabled" {
		t.Fatalf("unexpected readiness: %+v", resp)
	}
}

func TestHealthDependenciesHandler_DatabaseDown(t *testing.T) {
	e := newTestEcho()
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })
	c, rec := newJSONContext(e, http.MethodGet, "/health/ready", "")

	if err := NewHealthDependenciesHandler(down, nil).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	resp := decodeReadiness(t, rec)
	if resp.Status != "degraded" || resp.Dependencies["database"].Error != "connection refused" {
		t.Fatalf("unexpected readiness: %+v", resp)
	}
}
