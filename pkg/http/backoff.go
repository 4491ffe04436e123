package http

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// BackoffConfig controls how failed requests are retried.
type BackoffConfig struct {
	MaxRetries      int           // retries after the first attempt
	InitialInterval time.Duration // delay before the first retry (default: 200ms)
	MaxInterval     time.Duration // cap for a single delay (default: 5s)
	Multiplier      float64       // growth factor between retries (default: 2.0)
}

// DefaultBackoffConfig returns a conservative retry policy
func DefaultBackoffConfig() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2.0,
	}
}

// delay computes exponential backoff with 10% jitter for the given retry number (0-based)
func (b *BackoffConfig) delay(retry int) time.Duration {
	initial := b.InitialInterval
	if initial <= 0 {
		initial = 200 * time.Millisecond
	}
	maxInterval := b.MaxInterval
	if maxInterval <= 0 {
		maxInterval = 5 * time.Second
	}
	multiplier := b.Multiplier
	if multiplier < 1 {
		multiplier = 2.0
	}

	backoff := float64(initial) * math.Pow(multiplier, float64(retry))
	if backoff > float64(maxInterval) {
		backoff = float64(maxInterval)
	}

	jitter := backoff * 0.1 * (rand.Float64()*2 - 1)
	return time.Duration(backoff + jitter)
}

// isRetryableStatus reports whether a status code is worth another attempt
func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// doRequestWithBackoff executes the request, retrying transport failures and
// retryable statuses according to backoff. A nil backoff (and no client
// default) means a single attempt.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if backoff == nil {
		backoff = hc.defaultBackoff
	}

	maxRetries := 0
	if backoff != nil && backoff.MaxRetries > 0 {
		maxRetries = backoff.MaxRetries
	}

	for retry := 0; ; retry++ {
		start := time.Now()
		raw, requestURL, rawBody, err := hc.attempt(ctx, method, path, queryParams, headers, body)
		latency := time.Since(start).Milliseconds()

		status := 0
		responseBody := ""
		if raw != nil {
			status = raw.statusCode
			responseBody = string(raw.body)
		}

		retryable := !errors.Is(err, ErrCircuitOpen) && ctx.Err() == nil &&
			(err != nil || isRetryableStatus(status))

		if retryable && retry < maxRetries {
			if hc.logger != nil {
				hc.logger.LogRequestRetry(method, requestURL, headers, rawBody, status, responseBody, latency, err, retry+1, maxRetries)
			}

			timer := time.NewTimer(backoff.delay(retry))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, nil, status, ctx.Err()
			case <-timer.C:
			}
			continue
		}

		if err != nil {
			if hc.logger != nil {
				hc.logger.LogResponseError(method, requestURL, headers, rawBody, status, responseBody, latency, err)
			}
			return nil, nil, status, err
		}

		success, errResp, statusCode, respErr := hc.handleResponse(raw, successResp, errorResp)
		if hc.logger != nil {
			if respErr != nil {
				hc.logger.LogResponseError(method, requestURL, headers, rawBody, statusCode, responseBody, latency, respErr)
			} else {
				hc.logger.LogResponseSuccess(method, requestURL, headers, rawBody, statusCode, responseBody, latency)
			}
		}
		return success, errResp, statusCode, respErr
	}
}
