// team/model.go
package team

import (
	"strings"

	"github.com/courtside-app/courtside/internal/coach"
	"gorm.io/gorm"
)

// Team is the root aggregate of a roster. Deleting a team cascades to its
// players, objectives and trainings through their foreign keys.
type Team struct {
	gorm.Model
	Name    string `gorm:"not null;index" json:"name"`
	CoachID uint   `gorm:"index;not null" json:"coach_id"`

	Coach coach.Coach `gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE" json:"-"`
}

// NormalizeName lowercases a team or player name. Identity is
// case-insensitive: "Lions" and "lions" are the same team.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
