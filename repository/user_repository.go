package repository

import (
	"context"
	"time"

	"github.com/dhbw-mensa/backend/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository only talks to the users table.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.WithContext(ctx).Where("reset_token = ? AND reset_token <> ''", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expires time.Time) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).
		Updates(map[string]any{"reset_token": token, "reset_token_exp": expires}).Error
}

// UpdatePassword stores the new hash and clears any reset code.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).
		Updates(map[string]any{"password": hash, "reset_token": "", "reset_token_exp": nil}).Error
}
