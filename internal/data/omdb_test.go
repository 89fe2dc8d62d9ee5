package data

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"moviedex/internal/biz"
	"moviedex/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
)

func newTestMetadataClient(url string, timeout time.Duration) biz.MetadataClient {
	return NewMetadataClient(&conf.Metadata{
		URL:     url,
		APIKey:  "test-key",
		Timeout: timeout,
		Breaker: conf.Breaker{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			MinRequests:  2,
			FailureRatio: 0.5,
		},
	}, log.DefaultLogger)
}

func TestMetadataLookupFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "test-key" {
			t.Errorf("apikey = %q", r.URL.Query().Get("apikey"))
		}
		if r.URL.Query().Get("t") != "Inception" {
			t.Errorf("t = %q", r.URL.Query().Get("t"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Title":"Inception","Director":"Christopher Nolan","Actors":"Leonardo DiCaprio, Joseph Gordon-Levitt, ,N/A, Leonardo DiCaprio","Response":"True"}`))
	}))
	defer srv.Close()

	md, err := newTestMetadataClient(srv.URL, time.Second).Lookup(context.Background(), "Inception")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if md.Director != "Christopher Nolan" {
		t.Errorf("director = %q", md.Director)
	}
	want := []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt"}
	if !reflect.DeepEqual(md.Actors, want) {
		t.Errorf("actors = %q, want %q", md.Actors, want)
	}
}

func TestMetadataLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer srv.Close()

	c := newTestMetadataClient(srv.URL, time.Second)
	// not-found answers never open the breaker
	for i := 0; i < 5; i++ {
		if _, err := c.Lookup(context.Background(), "Nope"); !errors.Is(err, biz.ErrMetadataNotFound) {
			t.Fatalf("attempt %d: expected ErrMetadataNotFound, got %v", i, err)
		}
	}
}

func TestMetadataLookupUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestMetadataClient(srv.URL, time.Second).Lookup(context.Background(), "Inception")
	if !errors.Is(err, biz.ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
}

func TestMetadataLookupTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newTestMetadataClient(srv.URL, 50*time.Millisecond).Lookup(context.Background(), "Inception")
	if !errors.Is(err, biz.ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
}

func TestMetadataBreakerOpens(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestMetadataClient(srv.URL, time.Second)
	for i := 0; i < 2; i++ {
		_, _ = c.Lookup(context.Background(), "Inception")
	}
	_, err := c.Lookup(context.Background(), "Inception")
	if !errors.Is(err, biz.ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("server called %d times, open breaker should short-circuit", calls)
	}
}
