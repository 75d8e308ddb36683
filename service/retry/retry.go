package retry

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/saral-digital/ops-dashboard/model"
)

// Options controls Do. Zero values fall back to three attempts starting at one second.
type Options struct {
	Attempts  int
	BaseDelay time.Duration
	// Sleep waits for d or until ctx is done
	Sleep func(ctx context.Context, d time.Duration) error
}

// Do calls fn until it succeeds, returns a non rate-limit error, or the attempts run out.
// Waits double after each rate-limited attempt (1s, 2s, 4s with defaults).
func Do[T any](ctx context.Context, opts Options, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	delay := opts.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var zero T
	for i := 0; i < attempts; i++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !IsRateLimited(err) || i == attempts-1 {
			return zero, err
		}
		if err := sleep(ctx, delay<<i); err != nil {
			return zero, err
		}
	}
	return zero, errors.New("retry limit exceeded")
}

// IsRateLimited reports whether err is an HTTP 429 from an upstream API
func IsRateLimited(err error) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusTooManyRequests
	}
	var fetchErr *model.FetchFailedError
	if errors.As(err, &fetchErr) && fetchErr.StatusCode != 0 {
		return fetchErr.StatusCode == http.StatusTooManyRequests
	}
	return strings.Contains(strings.ToLower(err.Error()), "too many requests")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
