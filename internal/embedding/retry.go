package embedding

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var sleep = sleepContext

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

const (
	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 3
	baseBackoff       = 500 * time.Millisecond
)

type ResilientOptions struct {
	Timeout    time.Duration
	MaxRetries int
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
}

// Resilient adds a rate limit, a per-call timeout and bounded retries to a Provider.
// Exhausted attempts surface as ErrUnavailable.
type Resilient struct {
	next    Provider
	limiter *rate.Limiter
	timeout time.Duration
	retries int
	logger  *zap.Logger
}

func NewResilient(next Provider, opts ResilientOptions, logger *zap.Logger) *Resilient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return &Resilient{
		next:    next,
		limiter: limiter,
		timeout: opts.Timeout,
		retries: opts.MaxRetries,
		logger:  logger.Named("embedding"),
	}
}

func (r *Resilient) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 1; attempt <= r.retries; attempt++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
		}

		v, err := r.embedOnce(ctx, text)
		if err == nil {
			return v, nil
		}
		lastErr = err
		if ctx.Err() != nil || !isRetryable(err) {
			break
		}

		if attempt < r.retries {
			wait := baseBackoff * time.Duration(1<<(attempt-1))
			r.logger.Warn("embedding attempt failed, retrying",
				zap.String("model", r.next.Model()),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", wait),
				zap.Error(err),
			)
			if err := sleep(ctx, wait); err != nil {
				break
			}
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (r *Resilient) embedOnce(ctx context.Context, text string) ([]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Embed(callCtx, text)
}

func (r *Resilient) Model() string   { return r.next.Model() }
func (r *Resilient) Dimensions() int { return r.next.Dimensions() }

func isRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrEmptyText) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var dimErr *DimensionError
	return !errors.As(err, &dimErr)
}
