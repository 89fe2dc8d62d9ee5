package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
)

func TestLocalLockerSerializesKey(t *testing.T) {
	l := newLocalLocker()

	unlock, err := l.Lock(context.Background(), "submit:Inception")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "submit:Inception"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("second lock on held key: %v", err)
	}

	other, err := l.Lock(context.Background(), "submit:Arrival")
	if err != nil {
		t.Fatalf("other key blocked: %v", err)
	}
	other()

	unlock()
	unlock() // second call is a no-op

	again, err := l.Lock(context.Background(), "submit:Inception")
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	again()

	if len(l.locks) != 0 {
		t.Fatalf("%d lock entries leaked", len(l.locks))
	}
}

func TestLocalDenylistExpires(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := newLocalDenylist(func() time.Time { return now })
	ctx := context.Background()

	if err := d.Revoke(ctx, "tok-1", now.Add(time.Hour)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := d.Revoked(ctx, "tok-1"); !ok {
		t.Fatalf("token not revoked")
	}
	if ok, _ := d.Revoked(ctx, "tok-2"); ok {
		t.Fatalf("unknown token revoked")
	}

	now = now.Add(2 * time.Hour)
	if ok, _ := d.Revoked(ctx, "tok-1"); ok {
		t.Fatalf("expired token still revoked")
	}

	// already expired tokens are not stored
	if err := d.Revoke(ctx, "tok-3", now.Add(-time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if len(d.revoked) != 0 {
		t.Fatalf("denylist holds %d entries", len(d.revoked))
	}
}

func TestFallbacksWithoutRedis(t *testing.T) {
	d := newTestData(t)
	if _, ok := NewLocker(d, log.DefaultLogger).(*localLocker); !ok {
		t.Fatalf("expected in-process locker without redis")
	}
	if _, ok := NewTokenDenylist(d).(*localDenylist); !ok {
		t.Fatalf("expected in-process denylist without redis")
	}
}
