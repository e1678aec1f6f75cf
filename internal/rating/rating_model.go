// rating/model.go
package rating

import (
	"github.com/courtside-app/courtside/internal/player"
	"gorm.io/gorm"
)

// AbilityName is the lookup table of rateable skills ("shooting", "passing").
type AbilityName struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// AbilityRecord is one rating event. History is append-only: a player's
// current level is always derived from the full history, never stored.
type AbilityRecord struct {
	gorm.Model
	PlayerID  uint  `gorm:"not null;index" json:"player_id"`
	AbilityID uint  `gorm:"not null;index" json:"ability_id"`
	Value     int   `gorm:"not null" json:"value"`
	Timestamp int64 `gorm:"not null" json:"timestamp"` // epoch millis

	Player  player.Player `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE" json:"-"`
	Ability AbilityName   `gorm:"foreignKey:AbilityID;constraint:OnDelete:CASCADE" json:"-"`
}

// RatedAbility is a history row joined with its ability name.
type RatedAbility struct {
	ID        uint   `json:"id"`
	Ability   string `json:"ability"`
	Value     int    `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

// AbilityAverage is the derived mean per ability. Abilities with no records
// simply do not appear.
type AbilityAverage struct {
	Ability string  `json:"ability"`
	Average float64 `json:"average"`
}
