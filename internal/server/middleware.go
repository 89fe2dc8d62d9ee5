package server

import (
	"context"

	account "moviedex/api/account/v1"
	movie "moviedex/api/movie/v1"
	"moviedex/internal/biz"
	"moviedex/internal/conf"
	"moviedex/internal/service"

	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/middleware/auth/jwt"
	"github.com/go-kratos/kratos/v2/middleware/selector"
	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// authOperations are the operations that need a logged in user.
var authOperations = map[string]struct{}{
	movie.OperationMovieServiceSubmitMovie:    {},
	movie.OperationMovieServiceSearchByRating: {},
	movie.OperationMovieServiceUpdateRating:   {},
	movie.OperationMovieServiceDeleteActor:    {},
	account.OperationAccountServiceLogout:     {},
	account.OperationAccountServiceMe:         {},
}

func requiresAuth(_ context.Context, operation string) bool {
	_, ok := authOperations[operation]
	return ok
}

// AuthMiddleware validates the Bearer token of protected operations and
// rejects tokens that were logged out.
func AuthMiddleware(auth *conf.Auth, accounts *service.AccountService) middleware.Middleware {
	return selector.Server(
		jwt.Server(
			func(*jwtv5.Token) (interface{}, error) {
				return []byte(auth.Secret), nil
			},
			jwt.WithSigningMethod(jwtv5.SigningMethodHS256),
			jwt.WithClaims(func() jwtv5.Claims {
				return &biz.Claims{}
			}),
		),
		TokenRevocationMiddleware(accounts),
	).Match(requiresAuth).Build()
}

// TokenRevocationMiddleware runs after the jwt middleware has put the claims
// in the context.
func TokenRevocationMiddleware(accounts *service.AccountService) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req interface{}) (interface{}, error) {
			if err := accounts.CheckToken(ctx); err != nil {
				return nil, err
			}
			return handler(ctx, req)
		}
	}
}
