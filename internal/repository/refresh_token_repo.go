package repository

import (
	"context"
	"time"

	"eventhub/internal/domain"

	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

type refreshTokenModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	TokenHash string    `gorm:"column:token_hash;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

func (refreshTokenModel) TableName() string { return "refresh_tokens" }

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	m := refreshTokenModel{
		UserID:    t.UserID,
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	t.ID = m.ID
	return nil
}

// Exists reports whether this exact token is still an active session of
// the user. Logout deletes the row, so a revoked token fails here even
// while its signature is still valid.
func (r *RefreshTokenRepository) Exists(ctx context.Context, userID int64, tokenHash string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&refreshTokenModel{}).
		Where("user_id = ? AND token_hash = ?", userID, tokenHash).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *RefreshTokenRepository) DeleteByHash(ctx context.Context, userID int64, tokenHash string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ?", userID, tokenHash).
		Delete(&refreshTokenModel{}).Error
}

func (r *RefreshTokenRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&refreshTokenModel{}).Error
}

// EvictOldest keeps at most `keep` sessions per user, dropping the
// oldest rows first.
func (r *RefreshTokenRepository) EvictOldest(ctx context.Context, userID int64, keep int) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&refreshTokenModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count <= int64(keep) {
		return nil
	}

	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&refreshTokenModel{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Limit(int(count) - keep).
		Pluck("id", &ids).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&refreshTokenModel{}).Error
}

// DeleteExpired is run by cmd/auth_cleanup.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&refreshTokenModel{})
	return tx.RowsAffected, tx.Error
}
