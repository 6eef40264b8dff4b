package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDGenerated(t *testing.T) {
	var fromCtx string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = RequestIDFromCtx(r.Context())
	})

	handler := RequestID(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if fromCtx == "" {
		t.Fatal("expected a generated request ID in the context")
	}
	if got := rr.Header().Get("X-Request-ID"); got != fromCtx {
		t.Errorf("response header %q does not match context id %q", got, fromCtx)
	}
}

func TestRequestIDHonorsClientHeader(t *testing.T) {
	var fromCtx string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = RequestIDFromCtx(r.Context())
	})

	handler := RequestID(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if fromCtx != "client-supplied-id" {
		t.Errorf("context id: got %q, want client-supplied-id", fromCtx)
	}
	if got := rr.Header().Get("X-Request-ID"); got != "client-supplied-id" {
		t.Errorf("response header: got %q, want client-supplied-id", got)
	}
}

func TestRequestIDFromCtxMissing(t *testing.T) {
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("expected empty id from bare context, got %q", got)
	}
}
