package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/auth/jwt"

	v1 "moviedex/api/account/v1"
	"moviedex/internal/biz"
)

// AccountService implements the AccountService API
type AccountService struct {
	accountUC *biz.AccountUseCase
	log       *log.Helper
}

func NewAccountService(accountUC *biz.AccountUseCase, logger log.Logger) *AccountService {
	return &AccountService{
		accountUC: accountUC,
		log:       log.NewHelper(log.With(logger, "module", "service/account")),
	}
}

func (s *AccountService) Register(ctx context.Context, req *v1.RegisterRequest) (*v1.RegisterReply, error) {
	user, err := s.accountUC.Register(ctx, &biz.RegisterRequest{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		return nil, toAPIError(err)
	}
	return &v1.RegisterReply{
		Message: "You can now log in!",
		User:    userToAPI(user),
	}, nil
}

func (s *AccountService) Login(ctx context.Context, req *v1.LoginRequest) (*v1.LoginReply, error) {
	tok, err := s.accountUC.Login(ctx, &biz.LoginRequest{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		return nil, toAPIError(err)
	}
	return &v1.LoginReply{
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt,
		User:      userToAPI(tok.User),
	}, nil
}

func (s *AccountService) Logout(ctx context.Context, _ *v1.LogoutRequest) (*v1.LogoutReply, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.accountUC.Logout(ctx, claims); err != nil {
		return nil, toAPIError(err)
	}
	return &v1.LogoutReply{Message: "You have been logged out"}, nil
}

func (s *AccountService) Me(ctx context.Context, _ *v1.MeRequest) (*v1.MeReply, error) {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.accountUC.Me(ctx, claims)
	if err != nil {
		return nil, toAPIError(err)
	}
	return &v1.MeReply{User: userToAPI(user)}, nil
}

// CheckToken rejects a token that was logged out.
func (s *AccountService) CheckToken(ctx context.Context) error {
	claims, err := ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.accountUC.CheckToken(ctx, claims); err != nil {
		s.log.WithContext(ctx).Infof("rejected token %s: %v", claims.ID, err)
		return toAPIError(err)
	}
	return nil
}

// ClaimsFromContext returns the token claims put in ctx by the jwt
// middleware.
func ClaimsFromContext(ctx context.Context) (*biz.Claims, error) {
	c, ok := jwt.FromContext(ctx)
	if !ok {
		return nil, errors.Unauthorized("UNAUTHORIZED", "Please log in to access this page.")
	}
	claims, ok := c.(*biz.Claims)
	if !ok {
		return nil, errors.Unauthorized("UNAUTHORIZED", "Please log in to access this page.")
	}
	return claims, nil
}

func userToAPI(u *biz.User) *v1.User {
	return &v1.User{
		Id:        uint64(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
