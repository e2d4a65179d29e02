package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/config"
	pkgerrors "github.com/olivercruz/dishpatch-backend/pkg/errors"
)

type fakeLockStore struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{values: map[string]string{}}
}

func (s *fakeLockStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return false, s.setErr
	}
	if _, ok := s.values[key]; ok {
		return false, nil
	}
	s.values[key] = fmt.Sprint(value)
	return true, nil
}

func (s *fakeLockStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return "", errors.New("redis: nil")
	}
	return value, nil
}

func (s *fakeLockStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func (s *fakeLockStore) CartLockKey(customerID, restaurantID string) string {
	return "dp:lock:cart:" + customerID + ":" + restaurantID
}

func testLockConfig() config.CartConfig {
	return config.CartConfig{
		LockTTL:        time.Second,
		LockRetryDelay: time.Millisecond,
		LockAttempts:   3,
	}
}

func TestKeyLockAcquireAndRelease(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisKeyLock(store, testLockConfig(), testLogger())
	if err != nil {
		t.Fatalf("build lock: %v", err)
	}

	key := Key{CustomerID: uuid.New(), RestaurantID: uuid.New()}
	release, err := lock.Acquire(context.Background(), key)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if len(store.values) != 1 {
		t.Fatalf("expected one lease, got %d", len(store.values))
	}

	release()
	if len(store.values) != 0 {
		t.Fatal("release should delete the lease")
	}
}

func TestKeyLockContention(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisKeyLock(store, testLockConfig(), testLogger())
	if err != nil {
		t.Fatalf("build lock: %v", err)
	}

	key := Key{CustomerID: uuid.New(), RestaurantID: uuid.New()}
	redisKey := store.CartLockKey(key.CustomerID.String(), key.RestaurantID.String())
	store.values[redisKey] = "someone-else"

	_, err = lock.Acquire(context.Background(), key)
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestKeyLockReleaseRespectsOwner(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisKeyLock(store, testLockConfig(), testLogger())
	if err != nil {
		t.Fatalf("build lock: %v", err)
	}

	key := Key{CustomerID: uuid.New(), RestaurantID: uuid.New()}
	release, err := lock.Acquire(context.Background(), key)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	// The lease expired and someone else took it; release must not delete it.
	redisKey := store.CartLockKey(key.CustomerID.String(), key.RestaurantID.String())
	store.mu.Lock()
	store.values[redisKey] = "new-owner"
	store.mu.Unlock()

	release()
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.values[redisKey] != "new-owner" {
		t.Fatal("release deleted a lease it no longer owned")
	}
}

func TestKeyLockStoreFailure(t *testing.T) {
	store := newFakeLockStore()
	store.setErr = errors.New("connection refused")
	lock, err := NewRedisKeyLock(store, testLockConfig(), testLogger())
	if err != nil {
		t.Fatalf("build lock: %v", err)
	}

	_, err = lock.Acquire(context.Background(), Key{CustomerID: uuid.New(), RestaurantID: uuid.New()})
	expectCode(t, err, pkgerrors.CodeDependency)
}
