package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ErrRateLimited is returned by Acquire when a window is full
var ErrRateLimited = errors.New("rate limit reached")

// RateLimiterOptions represents options for rate limiting
type RateLimiterOptions struct {
	// MaxTransactionsPerSecond is the sliding one-second limit (0 disables it)
	MaxTransactionsPerSecond int
	// MaxTransactionsPerMinute is the sliding one-minute limit (0 disables it)
	MaxTransactionsPerMinute int
	// WaitOnLimit makes Acquire poll until a slot frees up instead of failing
	WaitOnLimit bool
	WaitTimeout time.Duration
	RetryDelay  time.Duration
	Namespace   string
}

// NewRateLimiterOptions creates a new rate limiter options with default values
func NewRateLimiterOptions() *RateLimiterOptions {
	return &RateLimiterOptions{
		WaitTimeout: 30 * time.Second,
		RetryDelay:  100 * time.Millisecond,
	}
}

// WithMaxTransactionsPerSecond sets the maximum number of transactions per second
func (rlo *RateLimiterOptions) WithMaxTransactionsPerSecond(max int) *RateLimiterOptions {
	rlo.MaxTransactionsPerSecond = max
	return rlo
}

// WithMaxTransactionsPerMinute sets the maximum number of transactions per minute
func (rlo *RateLimiterOptions) WithMaxTransactionsPerMinute(max int) *RateLimiterOptions {
	rlo.MaxTransactionsPerMinute = max
	return rlo
}

// WithWaitOnLimit sets whether to wait when limit is reached
func (rlo *RateLimiterOptions) WithWaitOnLimit(wait bool) *RateLimiterOptions {
	rlo.WaitOnLimit = wait
	return rlo
}

// WithWaitTimeout sets the maximum time to wait when WaitOnLimit is true
func (rlo *RateLimiterOptions) WithWaitTimeout(timeout time.Duration) *RateLimiterOptions {
	rlo.WaitTimeout = timeout
	return rlo
}

// WithNamespace sets the namespace for organizing rate limiters
func (rlo *RateLimiterOptions) WithNamespace(namespace string) *RateLimiterOptions {
	rlo.Namespace = namespace
	return rlo
}

// Validate validates the rate limiter options
func (rlo *RateLimiterOptions) Validate() error {
	if rlo.MaxTransactionsPerSecond < 0 || rlo.MaxTransactionsPerMinute < 0 {
		return fmt.Errorf("limits must be non-negative")
	}
	if rlo.MaxTransactionsPerSecond == 0 && rlo.MaxTransactionsPerMinute == 0 {
		return fmt.Errorf("at least one limit must be configured (MaxTransactionsPerSecond or MaxTransactionsPerMinute)")
	}
	return nil
}

// RateLimiter is a distributed sliding-window limiter shared by every instance using the same key
type RateLimiter struct {
	client     *Client
	key        string
	opts       *RateLimiterOptions
	tpsKeyName string
	tpmKeyName string
}

// acquireScript checks both windows and records the transaction atomically.
// Result: 1 = acquired, -1 = TPS limit, -2 = TPM limit.
const acquireScript = `
	local tps_key = KEYS[1]
	local tpm_key = KEYS[2]

	local max_tps = tonumber(ARGV[1])
	local max_tpm = tonumber(ARGV[2])
	local transaction_id = ARGV[3]
	local now_ms = tonumber(ARGV[4])

	if max_tps > 0 then
		redis.call("ZREMRANGEBYSCORE", tps_key, "-inf", now_ms - 1000)
		if redis.call("ZCARD", tps_key) >= max_tps then
			return -1
		end
	end

	if max_tpm > 0 then
		redis.call("ZREMRANGEBYSCORE", tpm_key, "-inf", now_ms - 60000)
		if redis.call("ZCARD", tpm_key) >= max_tpm then
			return -2
		end
	end

	if max_tps > 0 then
		redis.call("ZADD", tps_key, now_ms, transaction_id)
		redis.call("PEXPIRE", tps_key, 2000)
	end

	if max_tpm > 0 then
		redis.call("ZADD", tpm_key, now_ms, transaction_id)
		redis.call("PEXPIRE", tpm_key, 61000)
	end

	return 1
`

// NewRateLimiter creates a new distributed rate limiter
func NewRateLimiter(client *Client, key string, opts *RateLimiterOptions) (*RateLimiter, error) {
	if opts == nil {
		opts = NewRateLimiterOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	limiter := &RateLimiter{
		client: client,
		key:    key,
		opts:   opts,
	}
	limiter.tpsKeyName = limiter.buildKey("tps")
	limiter.tpmKeyName = limiter.buildKey("tpm")

	return limiter, nil
}

// buildKey constructs the full key using Namespace::key::suffix format
func (rl *RateLimiter) buildKey(suffix string) string {
	if rl.opts.Namespace != "" {
		return rl.opts.Namespace + "::" + rl.key + "::" + suffix
	}
	return rl.key + "::" + suffix
}

// Acquire records one transaction, failing with ErrRateLimited when a window is full
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	if !rl.opts.WaitOnLimit {
		return rl.acquireImmediate(ctx)
	}

	deadline := time.Now().Add(rl.opts.WaitTimeout)
	for {
		err := rl.acquireImmediate(ctx)
		if err == nil || !errors.Is(err, ErrRateLimited) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for rate limiter: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(rl.opts.RetryDelay):
		}
	}
}

func (rl *RateLimiter) acquireImmediate(ctx context.Context) error {
	result, err := rl.client.GetClient().Eval(ctx, acquireScript,
		[]string{rl.tpsKeyName, rl.tpmKeyName},
		rl.opts.MaxTransactionsPerSecond,
		rl.opts.MaxTransactionsPerMinute,
		uuid.NewString(),
		time.Now().UnixMilli(),
	).Int64()
	if err != nil {
		return fmt.Errorf("failed to acquire rate limiter: %w", err)
	}

	switch result {
	case 1:
		return nil
	case -1:
		return fmt.Errorf("%w: %d transactions per second", ErrRateLimited, rl.opts.MaxTransactionsPerSecond)
	case -2:
		return fmt.Errorf("%w: %d transactions per minute", ErrRateLimited, rl.opts.MaxTransactionsPerMinute)
	default:
		return fmt.Errorf("unknown rate limiter result: %d", result)
	}
}

// GetMetrics returns the current window usage as key-value pairs
func (rl *RateLimiter) GetMetrics(ctx context.Context) (map[string]string, error) {
	metrics := make(map[string]string)
	now := time.Now()

	if rl.opts.MaxTransactionsPerSecond > 0 {
		count, err := rl.client.GetClient().ZCount(ctx, rl.tpsKeyName,
			strconv.FormatInt(now.Add(-time.Second).UnixMilli(), 10), "+inf").Result()
		if err != nil {
			return nil, err
		}
		metrics["transactions_per_second"] = strconv.FormatInt(count, 10)
		metrics["max_transactions_per_second"] = strconv.Itoa(rl.opts.MaxTransactionsPerSecond)
	}

	if rl.opts.MaxTransactionsPerMinute > 0 {
		count, err := rl.client.GetClient().ZCount(ctx, rl.tpmKeyName,
			strconv.FormatInt(now.Add(-time.Minute).UnixMilli(), 10), "+inf").Result()
		if err != nil {
			return nil, err
		}
		metrics["transactions_per_minute"] = strconv.FormatInt(count, 10)
		metrics["max_transactions_per_minute"] = strconv.Itoa(rl.opts.MaxTransactionsPerMinute)
	}

	return metrics, nil
}

// Cleanup removes all keys associated with this rate limiter
func (rl *RateLimiter) Cleanup(ctx context.Context) error {
	return rl.client.Delete(ctx, rl.tpsKeyName, rl.tpmKeyName)
}
