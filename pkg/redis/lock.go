package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrLockNotHeld is returned when unlocking or refreshing a lock owned by someone else
var ErrLockNotHeld = errors.New("lock was not held by this client")

const (
	unlockScript = `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`
	refreshScript = `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("PEXPIRE", KEYS[1], ARGV[2])
		else
			return 0
		end
	`
)

// heldLocks tracks which locks this process currently owns, for health reporting
var heldLocks = struct {
	sync.RWMutex
	m map[string]bool
}{m: make(map[string]bool)}

// GetLockStatus returns the locks this process has acquired, keyed by full lock key
func GetLockStatus() map[string]bool {
	heldLocks.RLock()
	defer heldLocks.RUnlock()

	status := make(map[string]bool, len(heldLocks.m))
	for k, v := range heldLocks.m {
		status[k] = v
	}
	return status
}

func setHeld(key string, held bool) {
	heldLocks.Lock()
	defer heldLocks.Unlock()
	if held {
		heldLocks.m[key] = true
		return
	}
	delete(heldLocks.m, key)
}

// LockOptions represents options for distributed locking
type LockOptions struct {
	TTL        time.Duration
	RetryDelay time.Duration
	// MaxRetries is the number of extra acquire attempts; negative waits until the context ends
	MaxRetries      int
	RefreshInterval time.Duration
	// LockNamespace prefixes the key as namespace::key
	LockNamespace string
}

// NewLockOptions creates a new lock options with default values
func NewLockOptions() *LockOptions {
	return &LockOptions{
		TTL:             30 * time.Second,
		RetryDelay:      100 * time.Millisecond,
		MaxRetries:      10,
		RefreshInterval: 10 * time.Second,
	}
}

// WithTTL sets the lock expiration time
func (lo *LockOptions) WithTTL(ttl time.Duration) *LockOptions {
	lo.TTL = ttl
	return lo
}

// WithRetryDelay sets the delay between retry attempts
func (lo *LockOptions) WithRetryDelay(delay time.Duration) *LockOptions {
	lo.RetryDelay = delay
	return lo
}

// WithMaxRetries sets the maximum number of retry attempts
func (lo *LockOptions) WithMaxRetries(maxRetries int) *LockOptions {
	lo.MaxRetries = maxRetries
	return lo
}

// WithRefreshInterval sets the interval for refreshing the lock
func (lo *LockOptions) WithRefreshInterval(interval time.Duration) *LockOptions {
	lo.RefreshInterval = interval
	return lo
}

// WithLockNamespace sets the namespace for organizing locks
func (lo *LockOptions) WithLockNamespace(namespace string) *LockOptions {
	lo.LockNamespace = namespace
	return lo
}

// Lock represents a distributed lock
type Lock struct {
	client *Client
	key    string
	value  string
	opts   *LockOptions
}

// NewLock creates a new distributed lock
func NewLock(client *Client, key string, opts *LockOptions) *Lock {
	if opts == nil {
		opts = NewLockOptions()
	}
	return &Lock{
		client: client,
		key:    key,
		value:  uuid.NewString(),
		opts:   opts,
	}
}

// NewScheduledTaskLock creates a lock for a singleton background task.
// Lock blocks until the key is free or ctx ends, polling every refreshInterval,
// so a standby instance takes over once the holder stops refreshing.
func NewScheduledTaskLock(client *Client, key string, ttl, refreshInterval time.Duration, namespace string) *Lock {
	return NewLock(client, key, NewLockOptions().
		WithTTL(ttl).
		WithRefreshInterval(refreshInterval).
		WithRetryDelay(refreshInterval).
		WithMaxRetries(-1).
		WithLockNamespace(namespace))
}

// Key returns the full lock key using the namespace::key format
func (l *Lock) Key() string {
	if l.opts.LockNamespace != "" {
		return l.opts.LockNamespace + "::" + l.key
	}
	return l.key
}

// TryLock makes a single acquire attempt
func (l *Lock) TryLock(ctx context.Context) (bool, error) {
	ok, err := l.client.GetClient().SetNX(ctx, l.Key(), l.value, l.opts.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if ok {
		setHeld(l.Key(), true)
	}
	return ok, nil
}

// Lock attempts to acquire the lock, retrying according to the options
func (l *Lock) Lock(ctx context.Context) error {
	for attempt := 0; l.opts.MaxRetries < 0 || attempt <= l.opts.MaxRetries; attempt++ {
		ok, err := l.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.opts.RetryDelay):
		}
	}

	return fmt.Errorf("failed to acquire lock after %d attempts", l.opts.MaxRetries+1)
}

// Unlock releases the lock if this instance still owns it
func (l *Lock) Unlock(ctx context.Context) error {
	defer setHeld(l.Key(), false)

	result, err := l.client.GetClient().Eval(ctx, unlockScript, []string{l.Key()}, l.value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Refresh extends the lock's TTL
func (l *Lock) Refresh(ctx context.Context) error {
	result, err := l.client.GetClient().Eval(ctx, refreshScript, []string{l.Key()}, l.value, l.opts.TTL.Milliseconds()).Int64()
	if err != nil {
		return fmt.Errorf("failed to refresh lock: %w", err)
	}
	if result == 0 {
		setHeld(l.Key(), false)
		return ErrLockNotHeld
	}
	return nil
}

// IsLocked checks if the lock is currently held by this instance
func (l *Lock) IsLocked(ctx context.Context) (bool, error) {
	value, err := l.client.Get(ctx, l.Key())
	if err != nil {
		return false, err
	}
	return value == l.value, nil
}

// AutoRefresh refreshes the lock every RefreshInterval until ctx ends or a refresh fails.
// The channel receives the terminating error (ctx.Err() on cancellation).
func (l *Lock) AutoRefresh(ctx context.Context) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		ticker := time.NewTicker(l.opts.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			case <-ticker.C:
				if err := l.Refresh(ctx); err != nil {
					errChan <- err
					return
				}
			}
		}
	}()

	return errChan
}

// LockWithFunc executes fn while holding a lock
func LockWithFunc(ctx context.Context, client *Client, key string, opts *LockOptions, fn func() error) error {
	lock := NewLock(client, key, opts)

	if err := lock.Lock(ctx); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock(context.Background()) }()

	return fn()
}
