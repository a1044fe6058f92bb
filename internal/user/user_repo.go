package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmailAndOTP(ctx context.Context, email, otp string) (*User, error)
	SetOTP(ctx context.Context, id uuid.UUID, otp string) error
	ClearOTP(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id.String()).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByEmailAndOTP(ctx context.Context, email, otp string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("email = ? AND otp = ?", email, otp).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) SetOTP(ctx context.Context, id uuid.UUID, otp string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id.String()).
		Update("otp", otp).Error
}

func (r *repository) ClearOTP(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id.String()).
		Update("otp", nil).Error
}
