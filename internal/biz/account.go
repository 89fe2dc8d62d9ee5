package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"moviedex/internal/conf"
)

// bcryptCost is a variable so tests can lower it.
var bcryptCost = 12

// RegisterRequest is a new account.
type RegisterRequest struct {
	Email           string `label:"email" validate:"required,max=64,email"`
	Username        string `label:"username" validate:"required,max=64,username"`
	Password        string `label:"password" validate:"required"`
	PasswordConfirm string `label:"password_confirm" validate:"required,eqfield=Password"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email      string `label:"email" validate:"required,max=64,email"`
	Password   string `label:"password" validate:"required"`
	RememberMe bool
}

// Claims are carried by every access token. The registered ID claim is the
// token id used for revocation.
type Claims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Token is a signed access token.
type Token struct {
	Value     string
	ExpiresAt time.Time
	User      *User
}

// AccountUseCase handles registration, login and logout.
type AccountUseCase struct {
	repo     UserRepo
	denylist TokenDenylist
	auth     *conf.Auth
	now      func() time.Time
	log      *log.Helper
}

// NewAccountUseCase creates a new AccountUseCase instance
func NewAccountUseCase(repo UserRepo, denylist TokenDenylist, auth *conf.Auth, logger log.Logger) *AccountUseCase {
	return &AccountUseCase{
		repo:     repo,
		denylist: denylist,
		auth:     auth,
		now:      time.Now,
		log:      log.NewHelper(log.With(logger, "module", "biz/account")),
	}
}

// Register creates an account after checking that neither the email nor the
// username is in use.
func (uc *AccountUseCase) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if _, err := uc.repo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := uc.repo.FindUserByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.log.Infof("registered user %d (%s)", user.ID, user.Username)
	return user, nil
}

// Login checks the credentials and issues a signed token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (uc *AccountUseCase) Login(ctx context.Context, req *LoginRequest) (*Token, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := uc.repo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}

	ttl := uc.auth.TokenTTL
	if req.RememberMe {
		ttl = uc.auth.RememberTTL
	}
	return uc.issue(user, ttl)
}

func (uc *AccountUseCase) issue(user *User, ttl time.Duration) (*Token, error) {
	now := uc.now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.auth.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &Token{Value: signed, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes the token described by claims until it expires.
func (uc *AccountUseCase) Logout(ctx context.Context, claims *Claims) error {
	until := uc.now().Add(uc.auth.RememberTTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := uc.denylist.Revoke(ctx, claims.ID, until); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	uc.log.Infof("user %d logged out", claims.UserID)
	return nil
}

// CheckToken fails with ErrTokenRevoked when the token id was logged out.
func (uc *AccountUseCase) CheckToken(ctx context.Context, claims *Claims) error {
	revoked, err := uc.denylist.Revoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

// Me returns the account behind claims.
func (uc *AccountUseCase) Me(ctx context.Context, claims *Claims) (*User, error) {
	user, err := uc.repo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
