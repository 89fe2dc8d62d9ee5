package data

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"moviedex/internal/biz"
	"moviedex/internal/conf"
	"moviedex/internal/metrics"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "metadata-api"

type metadataClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	cb      *gobreaker.CircuitBreaker[*biz.MovieMetadata]
	log     *log.Helper
}

// omdbResponse is the subset of the OMDb title response the catalog uses.
type omdbResponse struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Title    string `json:"Title"`
	Director string `json:"Director"`
	Actors   string `json:"Actors"`
}

// NewMetadataClient creates the OMDb client. Lookups are bounded by the
// configured timeout and guarded by a circuit breaker; they are never retried.
func NewMetadataClient(c *conf.Metadata, logger log.Logger) biz.MetadataClient {
	l := log.NewHelper(log.With(logger, "module", "data/metadata"))

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*biz.MovieMetadata](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: c.Breaker.MaxRequests,
		Interval:    c.Breaker.Interval,
		Timeout:     c.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < c.Breaker.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= c.Breaker.FailureRatio
		},
		// an unknown title is an answer, not an outage
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, biz.ErrMetadataNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warnf("circuit breaker %s: %s -> %s", name, from, to)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &metadataClient{
		client: &http.Client{
			Timeout: c.Timeout,
		},
		baseURL: strings.TrimRight(c.URL, "/"),
		apiKey:  c.APIKey,
		cb:      cb,
		log:     l,
	}
}

func (c *metadataClient) Lookup(ctx context.Context, title string) (*biz.MovieMetadata, error) {
	start := time.Now()
	md, err := c.cb.Execute(func() (*biz.MovieMetadata, error) {
		return c.doRequest(ctx, title)
	})

	result := "found"
	switch {
	case err == nil:
	case errors.Is(err, biz.ErrMetadataNotFound):
		result = "not_found"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = "rejected"
		c.log.Warnf("metadata lookup for '%s' rejected: %v", title, err)
		err = fmt.Errorf("%w: %v", biz.ErrMetadataUnavailable, err)
	default:
		result = "unavailable"
		c.log.Warnf("metadata lookup for '%s' failed: %v", title, err)
	}
	metrics.MetadataLookupDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, err
	}
	return md, nil
}

func (c *metadataClient) doRequest(ctx context.Context, title string) (*biz.MovieMetadata, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", biz.ErrMetadataUnavailable, err)
	}
	defer resp.Body.Close()

	// Handle non-200 responses
	if resp.StatusCode == http.StatusNotFound {
		return nil, biz.ErrMetadataNotFound
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", biz.ErrMetadataUnavailable, resp.StatusCode)
	}

	var body omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", biz.ErrMetadataUnavailable, err)
	}

	if strings.EqualFold(body.Response, "False") || body.Error != "" {
		return nil, biz.ErrMetadataNotFound
	}

	director := strings.TrimSpace(body.Director)
	if director == "" || director == "N/A" {
		return nil, biz.ErrMetadataNotFound
	}

	return &biz.MovieMetadata{
		Title:    body.Title,
		Director: director,
		Actors:   splitActors(body.Actors),
	}, nil
}

// splitActors splits the comma separated cast list, dropping blanks and N/A.
func splitActors(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" || name == "N/A" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
