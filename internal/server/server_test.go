package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap/zaptest"

	"github.com/aescanero/plantings-render/internal/plantings"
	"github.com/aescanero/plantings-render/internal/server"
)

type failingRenderer struct{}

func (failingRenderer) Render(context.Context) (string, error) {
	return "", plantings.ErrRender
}

func do(t *testing.T, srv *server.Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) server.HealthResponse {
	t.Helper()

	var resp server.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestRenderEndpoint(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := server.NewServer(0, plantings.NewRenderer(logger), nil, logger)

	rec := do(t, srv, "/render")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}

	want, err := plantings.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(want, rec.Body.String()); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEndpointFailure(t *testing.T) {
	srv := server.NewServer(0, failingRenderer{}, nil, zaptest.NewLogger(t))

	rec := do(t, srv, "/render")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp server.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != plantings.ErrRender.Error() {
		t.Fatalf("unexpected error body %q", resp.Error)
	}
}

func TestRenderEndpointRejectsPost(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := server.NewServer(0, plantings.NewRenderer(logger), nil, logger)

	req := httptest.NewRequest(http.MethodPost, "/render", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestHealthWithoutRedis(t *testing.T) {
	logger := zaptest.NewLogger(t)
	srv := server.NewServer(0, plantings.NewRenderer(logger), nil, logger)

	rec := do(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if diff := cmp.Diff(server.HealthResponse{Status: "healthy"}, decodeHealth(t, rec)); diff != "" {
		t.Fatalf("health mismatch (-want +got):\n%s", diff)
	}
}

func TestHealthWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	logger := zaptest.NewLogger(t)
	srv := server.NewServer(0, plantings.NewRenderer(logger), client, logger)

	rec := do(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := server.HealthResponse{Status: "healthy", Checks: map[string]string{"redis": "healthy"}}
	if diff := cmp.Diff(want, decodeHealth(t, rec)); diff != "" {
		t.Fatalf("health mismatch (-want +got):\n%s", diff)
	}

	mr.Close()

	rec = do(t, srv, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 once redis is down, got %d", rec.Code)
	}
	if got := decodeHealth(t, rec); got.Status != "unhealthy" {
		t.Fatalf("unexpected status %q", got.Status)
	}
}

func TestReady(t *testing.T) {
	logger := zaptest.NewLogger(t)

	rec := do(t, server.NewServer(0, plantings.NewRenderer(logger), nil, logger), "/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = do(t, server.NewServer(0, failingRenderer{}, nil, logger), "/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if got := decodeHealth(t, rec); got.Status != "not ready" {
		t.Fatalf("unexpected status %q", got.Status)
	}
}

func TestStopBeforeStart(t *testing.T) {
	srv := server.NewServer(0, failingRenderer{}, nil, zaptest.NewLogger(t))

	if err := srv.Stop(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("stop: %v", err)
	}
}
