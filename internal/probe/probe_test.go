package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calculator-service/internal/handlers"
)

func TestCheckHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(handlers.Health))
	defer srv.Close()

	require.NoError(t, New(srv.URL).Check(context.Background()))
}

func TestCheckUnhealthyResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"wrong payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"starting"}`))
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			err := New(srv.URL).Check(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnhealthy), "unexpected error: %v", err)
		})
	}
}

func TestWaitReadyRetriesUntilHealthy(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		handlers.Health(w, r)
	}))
	defer srv.Close()

	attempts, err := New(srv.URL, WithInterval(10*time.Millisecond)).WaitReady(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWaitReadyGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	attempts, err := New(srv.URL,
		WithAttempts(4),
		WithInterval(5*time.Millisecond),
	).WaitReady(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnhealthy))
	assert.Equal(t, 4, attempts)
	assert.EqualValues(t, 4, calls.Load())
}

func TestWaitReadyRetriesConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(handlers.Health))
	url := srv.URL
	srv.Close()

	attempts, err := New(url,
		WithAttempts(2),
		WithInterval(5*time.Millisecond),
		WithTimeout(time.Second),
	).WaitReady(context.Background())

	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWaitReadyStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := New(srv.URL, WithAttempts(100), WithInterval(20*time.Millisecond)).WaitReady(ctx)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
