package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthReturnsFixedPayload(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", ct)
	}

	if body := w.Body.String(); body != `{"status":"ok"}` {
		t.Fatalf("expected body %q, got %q", `{"status":"ok"}`, body)
	}

	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding health body: %v", err)
	}
	if status.Status != "ok" {
		t.Fatalf("expected status field %q, got %q", "ok", status.Status)
	}
}

func TestHealthIsIdempotent(t *testing.T) {
	first := httptest.NewRecorder()
	Health(first, httptest.NewRequest(http.MethodGet, "/health", nil))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		if w.Code != first.Code {
			t.Fatalf("call %d: status %d differs from %d", i, w.Code, first.Code)
		}
		if w.Body.String() != first.Body.String() {
			t.Fatalf("call %d: body %q differs from %q", i, w.Body.String(), first.Body.String())
		}
	}
}
