package data

import (
	"context"
	"errors"
	"fmt"

	"moviedex/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepo struct {
	data *Data
	log  *log.Helper
}

// NewUserRepo creates a new user repository
func NewUserRepo(data *Data, logger log.Logger) biz.UserRepo {
	return &userRepo{
		data: data,
		log:  log.NewHelper(log.With(logger, "module", "data/user")),
	}
}

// CreateUser inserts user. A concurrent registration that already took the
// email or username surfaces as ErrEmailTaken or ErrUsernameTaken.
func (r *userRepo) CreateUser(ctx context.Context, user *biz.User) error {
	m := &User{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}

	res := r.data.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return fmt.Errorf("failed to create user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindUserByEmail(ctx, user.Email); err == nil {
			return biz.ErrEmailTaken
		}
		return biz.ErrUsernameTaken
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	return nil
}

func (r *userRepo) FindUserByEmail(ctx context.Context, email string) (*biz.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepo) FindUserByUsername(ctx context.Context, username string) (*biz.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepo) FindUserByID(ctx context.Context, id uint) (*biz.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepo) findOne(ctx context.Context, query string, arg interface{}) (*biz.User, error) {
	var m User
	if err := r.data.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biz.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &biz.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}, nil
}
