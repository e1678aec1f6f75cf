package coach

import (
	"time"

	"gorm.io/gorm"
)

// Coach is an account that owns teams. Emails are stored lowercased, the same
// case-insensitive identity rule applied to team and player names.
type Coach struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
}

// RefreshToken persists issued refresh tokens so they can be revoked.
type RefreshToken struct {
	gorm.Model
	CoachID   uint      `gorm:"index;not null" json:"coach_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`

	Coach Coach `gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE" json:"-"`
}
