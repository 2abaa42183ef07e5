package auth

import (
	"time"

	"gorm.io/gorm"
)

// RefreshTokenRecord persists an issued refresh token. The store is
// append-mostly: rows are inserted on login/registration and the only update
// is setting RevokedAt on logout. Expired rows are kept; IsValid filters them.
type RefreshTokenRecord struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	RevokedAt *time.Time
}
