package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviedex/internal/conf"
)

func TestRateLimiterPerIP(t *testing.T) {
	l := NewRateLimiter(conf.RateLimit{Enabled: true, RPS: 1, Burst: 2})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatalf("burst rejected")
	}
	if l.Allow("10.0.0.1") {
		t.Fatalf("request over burst allowed")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatalf("other client limited")
	}

	now = now.Add(time.Second)
	if !l.Allow("10.0.0.1") {
		t.Fatalf("token not refilled")
	}

	now = now.Add(10 * time.Minute)
	l.Allow("10.0.0.3")
	if _, ok := l.clients["10.0.0.1"]; ok {
		t.Fatalf("idle client not swept")
	}
}

func TestRateLimiterFilter(t *testing.T) {
	l := NewRateLimiter(conf.RateLimit{Enabled: true, RPS: 0.001, Burst: 1})
	h := l.Filter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i, want := range []int{http.StatusNoContent, http.StatusTooManyRequests} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
		req.RemoteAddr = "192.0.2.7:51234"
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: status %d, want %d", i, rec.Code, want)
		}
	}
}
