package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"moviedex/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockPrefix    = "moviedex:lock:"
	revokedPrefix = "moviedex:revoked:"
	lockRetry     = 50 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewLocker returns a Redis lock when Redis is connected and an in-process
// keyed mutex otherwise.
func NewLocker(data *Data, logger log.Logger) biz.Locker {
	l := log.NewHelper(log.With(logger, "module", "data/locker"))
	if data.rdb != nil {
		ttl := data.lockTTL
		if ttl <= 0 {
			ttl = 30 * time.Second
		}
		return &redisLocker{rdb: data.rdb, ttl: ttl, log: l}
	}
	return newLocalLocker()
}

type redisLocker struct {
	rdb *redis.Client
	ttl time.Duration
	log *log.Helper
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	key = lockPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(lockRetry)
	defer ticker.Stop()
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return func() {
		// the request context may already be done when unlocking
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.log.Warnf("failed to release lock %s: %v", key, err)
		}
	}, nil
}

type localLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

// keyLock is a one-slot semaphore with a count of requests holding or
// waiting for it.
type keyLock struct {
	ch   chan struct{}
	refs int
}

func newLocalLocker() *localLocker {
	return &localLocker{locks: make(map[string]*keyLock)}
}

func (l *localLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, kl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.release(key, kl)
		})
	}, nil
}

func (l *localLocker) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

// NewTokenDenylist keeps revoked token ids in Redis when it is connected and
// in process memory otherwise.
func NewTokenDenylist(data *Data) biz.TokenDenylist {
	if data.rdb != nil {
		return &redisDenylist{rdb: data.rdb}
	}
	return newLocalDenylist(time.Now)
}

type redisDenylist struct {
	rdb *redis.Client
}

func (d *redisDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err()
}

func (d *redisDenylist) Revoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type localDenylist struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

func newLocalDenylist(now func() time.Time) *localDenylist {
	return &localDenylist{now: now, revoked: make(map[string]time.Time)}
}

func (d *localDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, exp := range d.revoked {
		if !exp.After(now) {
			delete(d.revoked, id)
		}
	}
	if until.After(now) {
		d.revoked[tokenID] = until
	}
	return nil
}

func (d *localDenylist) Revoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exp, ok := d.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !exp.After(d.now()) {
		delete(d.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
