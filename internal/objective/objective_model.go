// objective/model.go
package objective

import (
	"github.com/courtside-app/courtside/internal/team"
	"gorm.io/gorm"
)

// TeamObjective is a todo-style item on a team's board.
type TeamObjective struct {
	gorm.Model
	Description string `gorm:"not null" json:"description"`
	IsFinish    bool   `gorm:"default:false" json:"is_finish"`
	TeamID      uint   `gorm:"not null;index" json:"team_id"`

	Team team.Team `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}
