package server

import (
	"net/http"

	account "moviedex/api/account/v1"
	movie "moviedex/api/movie/v1"
	"moviedex/internal/conf"
	"moviedex/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer)

// responseEncoder lets a reply pick its own status code, 201 for creations.
func responseEncoder(w http.ResponseWriter, r *http.Request, v interface{}) error {
	type StatusResponse interface {
		HTTPStatus() int
	}

	if sr, ok := v.(StatusResponse); ok {
		w.WriteHeader(sr.HTTPStatus())
	}

	return khttp.DefaultResponseEncoder(w, r, v)
}

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, auth *conf.Auth, movieSvc *service.MovieService, accountSvc *service.AccountService, logger log.Logger) *khttp.Server {
	var opts = []khttp.ServerOption{
		khttp.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
			AuthMiddleware(auth, accountSvc),
		),
		khttp.ResponseEncoder(responseEncoder),
	}
	if c.HTTP.RateLimit.Enabled {
		opts = append(opts, khttp.Filter(NewRateLimiter(c.HTTP.RateLimit).Filter))
	}
	if c.HTTP.Network != "" {
		opts = append(opts, khttp.Network(c.HTTP.Network))
	}
	if c.HTTP.Addr != "" {
		opts = append(opts, khttp.Address(c.HTTP.Addr))
	}
	if c.HTTP.Timeout > 0 {
		opts = append(opts, khttp.Timeout(c.HTTP.Timeout))
	}
	srv := khttp.NewServer(opts...)
	movie.RegisterMovieServiceHTTPServer(srv, movieSvc)
	account.RegisterAccountServiceHTTPServer(srv, accountSvc)
	srv.Handle("/metrics", promhttp.Handler())
	return srv
}
