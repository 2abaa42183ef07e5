package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrUnresponsiveDatabase = errors.New("error occurred during writing to refresh_token_records table")

// RecordRepository is the refresh token store. Concurrent revoke/lookup for
// the same token is safe: Revoke is idempotent and IsValid is a point-in-time
// read.
type RecordRepository interface {
	Save(ctx context.Context, userID uint, token string, expiresAt time.Time) error
	IsValid(ctx context.Context, token string, userID uint) (bool, error)
	Revoke(ctx context.Context, token string) error
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Save(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	record := &RefreshTokenRecord{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

// IsValid reports whether a record exists for (token, userID) that is neither
// revoked nor past its expiry.
func (r *recordRepository) IsValid(ctx context.Context, token string, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RefreshTokenRecord{}).
		Where("token = ?", token).
		Where("user_id = ?", userID).
		Where("revoked_at IS NULL").
		Where("expires_at > ?", time.Now().UTC()).
		Count(&count).
		Error
	if err != nil {
		return false, ErrUnresponsiveDatabase
	}
	return count > 0, nil
}

// Revoke stamps the matching record as revoked. A missing or already-revoked
// token is a no-op success, matching logout's ignore-errors policy.
func (r *recordRepository) Revoke(ctx context.Context, token string) error {
	err := r.db.WithContext(ctx).
		Model(&RefreshTokenRecord{}).
		Where("token = ?", token).
		Where("revoked_at IS NULL").
		Update("revoked_at", time.Now().UTC()).
		Error
	if err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}
