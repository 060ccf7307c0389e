package models

import (
	"time"
)

// RefreshToken is a stored, revocable refresh token. Tokens are rotated on
// every refresh: the presented row is revoked and a new one issued.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// NewRefreshToken builds an unsaved refresh token row for a user.
func NewRefreshToken(userID, token string, ttl time.Duration) RefreshToken {
	return RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Revoke marks the token revoked and expires it immediately.
func (rt *RefreshToken) Revoke() {
	rt.IsRevoked = true
	rt.ExpiresAt = time.Now()
}
