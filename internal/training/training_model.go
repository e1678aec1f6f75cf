// training/model.go
package training

import (
	"github.com/courtside-app/courtside/internal/models"
	"github.com/courtside-app/courtside/internal/team"
	"gorm.io/gorm"
)

// Train is a dated, timed practice session. Concepts is a free-text list
// stored as a JSON column.
type Train struct {
	gorm.Model
	Date     int64              `gorm:"not null" json:"date"`     // epoch millis
	Duration float64            `gorm:"not null" json:"duration"` // hours
	Concepts models.StringSlice `gorm:"type:text" json:"concepts"`
	TeamID   uint               `gorm:"not null;index" json:"team_id"`

	Team team.Team `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`

	// Tasks is filled by the joined read; it is not a column.
	Tasks []TrainTask `gorm:"-" json:"tasks,omitempty"`
}

// TrainTask is a structured drill. A task can be shared by multiple trainings
// through the join table.
type TrainTask struct {
	gorm.Model
	Name            string             `gorm:"not null" json:"name"`
	NumberOfPlayers int                `json:"number_of_players"`
	Concept         string             `json:"concept"`
	Description     string             `json:"description"`
	Variables       models.StringSlice `gorm:"type:text" json:"variables,omitempty"`
}

// TrainCrossTrainTask is the many-to-many join between trainings and tasks,
// composite primary key. Both sides cascade on delete.
type TrainCrossTrainTask struct {
	TrainID     uint `gorm:"primaryKey" json:"train_id"`
	TrainTaskID uint `gorm:"primaryKey" json:"train_task_id"`

	Train     Train     `gorm:"foreignKey:TrainID;constraint:OnDelete:CASCADE" json:"-"`
	TrainTask TrainTask `gorm:"foreignKey:TrainTaskID;constraint:OnDelete:CASCADE" json:"-"`
}
