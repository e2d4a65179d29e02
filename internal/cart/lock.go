package cart

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/config"
	pkgerrors "github.com/olivercruz/dishpatch-backend/pkg/errors"
	"github.com/olivercruz/dishpatch-backend/pkg/logger"
)

// lockStore is the subset of the redis client the lock needs.
type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartLockKey(customerID, restaurantID string) string
}

// RedisKeyLock serializes mutations per cart aggregate with a SET NX lease.
// The owner token keeps a release from deleting a lease that has already
// expired and been re-acquired by someone else.
type RedisKeyLock struct {
	store      lockStore
	ttl        time.Duration
	retryDelay time.Duration
	attempts   int
	logg       *logger.Logger
}

// NewRedisKeyLock builds the lock from cart config. Zero values fall back
// to the config defaults.
func NewRedisKeyLock(store lockStore, cfg config.CartConfig, logg *logger.Logger) (*RedisKeyLock, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lock store is required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	lock := &RedisKeyLock{
		store:      store,
		ttl:        cfg.LockTTL,
		retryDelay: cfg.LockRetryDelay,
		attempts:   cfg.LockAttempts,
		logg:       logg,
	}
	if lock.ttl <= 0 {
		lock.ttl = 10 * time.Second
	}
	if lock.retryDelay <= 0 {
		lock.retryDelay = 25 * time.Millisecond
	}
	if lock.attempts <= 0 {
		lock.attempts = 40
	}
	return lock, nil
}

// Acquire blocks until the per-cart lease is held or attempts run out.
func (l *RedisKeyLock) Acquire(ctx context.Context, key Key) (func(), error) {
	owner := uuid.NewString()
	redisKey := l.store.CartLockKey(key.CustomerID.String(), key.RestaurantID.String())

	for attempt := 0; attempt < l.attempts; attempt++ {
		ok, err := l.store.SetNX(ctx, redisKey, owner, l.ttl)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire cart lock")
		}
		if ok {
			return func() { l.release(redisKey, owner) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "acquire cart lock")
		case <-time.After(l.retryDelay):
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart is busy")
}

// release runs on a fresh context so a cancelled request still frees the
// lease.
func (l *RedisKeyLock) release(redisKey, owner string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	current, err := l.store.Get(ctx, redisKey)
	if err != nil || current != owner {
		return
	}
	if err := l.store.Del(ctx, redisKey); err != nil {
		l.logg.Warn(l.logg.WithField(ctx, "lock_key", redisKey), "failed to release cart lock")
	}
}
