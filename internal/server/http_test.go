package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	movie "moviedex/api/movie/v1"
	"moviedex/internal/biz"
	"moviedex/internal/conf"
	"moviedex/internal/data"
	"moviedex/internal/service"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/goccy/go-json"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.DefaultLogger

	titles := map[string]string{
		"Inception": `{"Title":"Inception","Director":"Christopher Nolan","Actors":"Leonardo DiCaprio, Joseph Gordon-Levitt","Response":"True"}`,
		"Face/Off":  `{"Title":"Face/Off","Director":"John Woo","Actors":"John Travolta, Nicolas Cage","Response":"True"}`,
	}
	omdb := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := titles[r.URL.Query().Get("t")]
		if !ok {
			_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(omdb.Close)

	bc := conf.Default()
	bc.Server.HTTP.RateLimit.Enabled = false
	bc.Data.Database.Source = filepath.Join(t.TempDir(), "moviedex.db")
	bc.Auth.Secret = "test-secret"
	bc.Metadata.URL = omdb.URL

	d, cleanup, err := data.NewData(&bc.Data, logger)
	if err != nil {
		t.Fatalf("data: %v", err)
	}
	t.Cleanup(cleanup)

	movieUC := biz.NewMovieUseCase(
		data.NewCatalogRepo(d, logger),
		data.NewMetadataClient(&bc.Metadata, logger),
		data.NewLocker(d, logger),
		logger,
	)
	accountUC := biz.NewAccountUseCase(data.NewUserRepo(d, logger), data.NewTokenDenylist(d), &bc.Auth, logger)

	srv := NewHTTPServer(&bc.Server, &bc.Auth,
		service.NewMovieService(movieUC, logger),
		service.NewAccountService(accountUC, logger),
		logger,
	)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]interface{}{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCatalogOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	status, body := call(t, ts, "POST", "/v1/accounts/register", "", map[string]string{
		"email": "ada@example.com", "username": "ada", "password": "pw", "password_confirm": "pw",
	})
	if status != http.StatusCreated || body["message"] != "You can now log in!" {
		t.Fatalf("register: %d %v", status, body)
	}
	status, body = call(t, ts, "POST", "/v1/accounts/register", "", map[string]string{
		"email": "ada@example.com", "username": "ada2", "password": "pw", "password_confirm": "pw",
	})
	if status != http.StatusConflict || body["message"] != "Email already registered." {
		t.Fatalf("duplicate register: %d %v", status, body)
	}

	status, body = call(t, ts, "POST", "/v1/accounts/login", "", map[string]string{"email": "ada@example.com", "password": "nope"})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad login: %d %v", status, body)
	}
	status, body = call(t, ts, "POST", "/v1/accounts/login", "", map[string]string{"email": "ada@example.com", "password": "pw"})
	if status != http.StatusOK {
		t.Fatalf("login: %d %v", status, body)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("no token in %v", body)
	}

	submission := map[string]interface{}{"title": "Inception", "genre": "Sci-Fi", "rating": 5}
	if status, _ = call(t, ts, "POST", "/v1/movies", "", submission); status != http.StatusUnauthorized {
		t.Fatalf("anonymous submit: %d", status)
	}
	status, body = call(t, ts, "POST", "/v1/movies", token, map[string]interface{}{"title": "Up", "genre": "Sci-Fi", "rating": 5})
	if status != 422 || body["message"] != "Your movie name must be at least 3 characters" {
		t.Fatalf("short title: %d %v", status, body)
	}
	status, body = call(t, ts, "POST", "/v1/movies", token, submission)
	if status != http.StatusCreated || body["message"] != "movie successfully added to the db" {
		t.Fatalf("submit: %d %v", status, body)
	}
	if actors, _ := body["actors"].([]interface{}); len(actors) != 2 {
		t.Fatalf("actors = %v", body["actors"])
	}
	status, body = call(t, ts, "POST", "/v1/movies", token, submission)
	if status != http.StatusConflict || body["message"] != "Someone already entered this movie in the database" {
		t.Fatalf("resubmit: %d %v", status, body)
	}
	status, body = call(t, ts, "POST", "/v1/movies", token, map[string]interface{}{"title": "Nonexistent", "genre": "Drama", "rating": 2})
	if status != http.StatusNotFound || body["reason"] != "MOVIE_NOT_IN_METADATA" {
		t.Fatalf("unknown title: %d %v", status, body)
	}

	client, err := khttp.NewClient(context.Background(), khttp.WithEndpoint(ts.URL), khttp.WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	defer client.Close()
	movies := movie.NewMovieServiceHTTPClient(client)

	item, err := movies.GetMovie(context.Background(), &movie.GetMovieRequest{Name: "Inception"})
	if err != nil {
		t.Fatalf("get movie: %v", err)
	}
	if item.Director != "Christopher Nolan" || item.Genre != "Sci-Fi" || item.Rating != 5 {
		t.Fatalf("item = %+v", item)
	}
	if _, err := movies.GetMovie(context.Background(), &movie.GetMovieRequest{Name: "Missing"}); errors.Code(err) != http.StatusNotFound {
		t.Fatalf("missing movie: %v", err)
	}
	page, err := movies.ListMovies(context.Background(), &movie.ListMoviesRequest{})
	if err != nil || len(page.Items) != 1 {
		t.Fatalf("list = %+v, %v", page, err)
	}

	status, body = call(t, ts, "GET", "/v1/movies/search?rating=3", token, nil)
	if status != http.StatusOK || body["message"] != "No results found for this rating" {
		t.Fatalf("search: %d %v", status, body)
	}
	status, body = call(t, ts, "GET", "/v1/movies/search?rating=9", token, nil)
	if status != 422 {
		t.Fatalf("search out of range: %d %v", status, body)
	}
	status, body = call(t, ts, "PUT", "/v1/movies/Inception/rating", token, map[string]int{"new_rating": 3})
	if status != http.StatusOK || body["message"] != "***Updated Rating of Inception***" {
		t.Fatalf("update: %d %v", status, body)
	}

	status, body = call(t, ts, "DELETE", "/v1/actors/Leonardo%20DiCaprio", token, nil)
	if status != http.StatusOK || body["message"] != "***Successfully Deleted: Leonardo DiCaprio***" {
		t.Fatalf("delete: %d %v", status, body)
	}
	status, _ = call(t, ts, "DELETE", "/v1/actors/Leonardo%20DiCaprio", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("delete again: %d", status)
	}

	status, body = call(t, ts, "GET", "/v1/genres", "", nil)
	if items, _ := body["items"].([]interface{}); status != http.StatusOK || len(items) != 1 {
		t.Fatalf("genres: %d %v", status, body)
	}

	if status, _ = call(t, ts, "GET", "/v1/accounts/me", token, nil); status != http.StatusOK {
		t.Fatalf("me: %d", status)
	}
	status, body = call(t, ts, "POST", "/v1/accounts/logout", token, nil)
	if status != http.StatusOK || body["message"] != "You have been logged out" {
		t.Fatalf("logout: %d %v", status, body)
	}
	if status, _ = call(t, ts, "GET", "/v1/accounts/me", token, nil); status != http.StatusUnauthorized {
		t.Fatalf("me after logout: %d", status)
	}
}

func TestTitleWithSlash(t *testing.T) {
	ts := newTestServer(t)

	call(t, ts, "POST", "/v1/accounts/register", "", map[string]string{
		"email": "ada@example.com", "username": "ada", "password": "pw", "password_confirm": "pw",
	})
	_, body := call(t, ts, "POST", "/v1/accounts/login", "", map[string]string{"email": "ada@example.com", "password": "pw"})
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("no token in %v", body)
	}

	status, body := call(t, ts, "POST", "/v1/movies", token, map[string]interface{}{"title": "Face/Off", "genre": "Action", "rating": 4})
	if status != http.StatusCreated {
		t.Fatalf("submit: %d %v", status, body)
	}

	status, body = call(t, ts, "GET", "/v1/movies/Face%2FOff", "", nil)
	if status != http.StatusOK || body["name"] != "Face/Off" {
		t.Fatalf("get: %d %v", status, body)
	}
	status, body = call(t, ts, "PUT", "/v1/movies/Face%2FOff/rating", token, map[string]int{"new_rating": 2})
	if status != http.StatusOK || body["message"] != "***Updated Rating of Face/Off***" {
		t.Fatalf("update: %d %v", status, body)
	}
	status, body = call(t, ts, "GET", "/v1/movies/Kill%2FBill", "", nil)
	if status != http.StatusNotFound || body["reason"] != "MOVIE_NOT_FOUND" {
		t.Fatalf("missing slash title: %d %v", status, body)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	status, body := call(t, ts, "GET", "/healthz", "", nil)
	if status != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("healthz: %d %v", status, body)
	}

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status %d", resp.StatusCode)
	}
}
