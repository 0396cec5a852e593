// Package probe polls the service's health endpoint until it reports ready,
// the way a deployment gate does after (re)starting the container.
package probe

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"calculator-service/internal/handlers"
)

// Defaults match the deploy gate: 10 attempts, 5 seconds apart.
const (
	DefaultAttempts = 10
	DefaultInterval = 5 * time.Second
	DefaultTimeout  = 2 * time.Second
)

// ErrUnhealthy is returned when the endpoint answers but not with 200 {"status":"ok"}.
var ErrUnhealthy = errors.New("service not healthy")

type Prober struct {
	url      string
	client   *http.Client
	attempts uint
	interval time.Duration
	logger   *zap.Logger
}

type Option func(*Prober)

func WithAttempts(n uint) Option {
	return func(p *Prober) { p.attempts = n }
}

func WithInterval(d time.Duration) Option {
	return func(p *Prober) { p.interval = d }
}

// WithTimeout bounds each individual request.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) { p.client.Timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

func New(url string, opts ...Option) *Prober {
	p := &Prober{
		url:      url,
		client:   &http.Client{Timeout: DefaultTimeout},
		attempts: DefaultAttempts,
		interval: DefaultInterval,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check performs a single probe.
func (p *Prober) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return backoff.Permanent(errors.Wrap(err, "build request"))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return errors.Wrapf(ErrUnhealthy, "status %d", resp.StatusCode)
	}

	var status handlers.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return errors.Wrapf(ErrUnhealthy, "decode body: %v", err)
	}
	if status.Status != "ok" {
		return errors.Wrapf(ErrUnhealthy, "status field %q", status.Status)
	}

	return nil
}

// WaitReady probes until the service is healthy, the attempts are used up,
// or ctx is done. It returns the number of attempts made.
func (p *Prober) WaitReady(ctx context.Context) (int, error) {
	attempt := 0

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		return struct{}{}, p.Check(ctx)
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(p.interval)),
		backoff.WithMaxTries(p.attempts),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			p.logger.Info("service not ready yet",
				zap.String("url", p.url),
				zap.Int("attempt", attempt),
				zap.Duration("retry_in", next),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return attempt, errors.Wrapf(err, "%s not ready after %d attempts", p.url, attempt)
	}

	p.logger.Info("service ready", zap.String("url", p.url), zap.Int("attempts", attempt))
	return attempt, nil
}
