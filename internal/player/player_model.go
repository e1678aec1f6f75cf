// player/model.go
package player

import (
	"fmt"

	"github.com/courtside-app/courtside/internal/team"
	"gorm.io/gorm"
)

// Position is the on-court role, stored as the classic 1..5 code.
type Position int

const (
	PointGuard    Position = 1
	ShootingGuard Position = 2
	SmallForward  Position = 3
	PowerForward  Position = 4
	Center        Position = 5
)

var positionNames = map[Position]string{
	PointGuard:    "point_guard",
	ShootingGuard: "shooting_guard",
	SmallForward:  "small_forward",
	PowerForward:  "power_forward",
	Center:        "center",
}

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// ParsePosition validates a position code. Unknown codes are an error rather
// than silently mapping to center.
func ParsePosition(code int) (Position, error) {
	p := Position(code)
	if _, ok := positionNames[p]; !ok {
		return 0, fmt.Errorf("invalid position code %d (expected 1..5)", code)
	}
	return p, nil
}

// Player belongs to exactly one team. The composite unique index on
// (team_id, number) makes jersey uniqueness a storage guarantee, so the
// advisory pre-check in the controller can never race another writer into a
// duplicate.
type Player struct {
	gorm.Model
	Name     string   `gorm:"not null" json:"name"`
	Number   int      `gorm:"not null;uniqueIndex:idx_players_team_number" json:"number"`
	Position Position `gorm:"not null" json:"position"`
	TeamID   uint     `gorm:"not null;index;uniqueIndex:idx_players_team_number" json:"team_id"`

	Team team.Team `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}
