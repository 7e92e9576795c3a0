package repository

import (
	"context"
	"strings"
	"time"

	"eventhub/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                     int64      `gorm:"column:id;primaryKey"`
	Email                  string     `gorm:"column:email;uniqueIndex"`
	PasswordHash           string     `gorm:"column:password_hash"`
	Verified               bool       `gorm:"column:verified"`
	ResetPasswordTokenHash *string    `gorm:"column:reset_password_token_hash"`
	ResetPasswordExpires   *time.Time `gorm:"column:reset_password_expires"`
	CreatedAt              time.Time  `gorm:"column:created_at"`
	UpdatedAt              time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:                     m.ID,
		Email:                  m.Email,
		PasswordHash:           m.PasswordHash,
		Verified:               m.Verified,
		ResetPasswordTokenHash: m.ResetPasswordTokenHash,
		ResetPasswordExpires:   m.ResetPasswordExpires,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:                     u.ID,
		Email:                  NormalizeEmail(u.Email),
		PasswordHash:           u.PasswordHash,
		Verified:               u.Verified,
		ResetPasswordTokenHash: u.ResetPasswordTokenHash,
		ResetPasswordExpires:   u.ResetPasswordExpires,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

// NormalizeEmail lower-cases and trims; all email comparison goes
// through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("email = ?", NormalizeEmail(email)).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// Update saves the full row so that clearing the reset fields writes
// NULLs instead of being skipped as zero values.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}
