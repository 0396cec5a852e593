package handlers

import (
	"net/http"
	"strconv"
)

// HealthStatus is the fixed liveness payload. It reports only that the process
// is up and serving; no downstream dependency is checked.
type HealthStatus struct {
	Status string `json:"status"`
}

const healthOK = "ok"

// healthBody is the exact wire form of HealthStatus{Status: "ok"}.
var healthBody = []byte(`{"status":"` + healthOK + `"}`)

// Health handles GET /health. It always answers 200 with {"status":"ok"}.
func Health(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Content-Length", strconv.Itoa(len(healthBody)))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(healthBody)
}
