package objective

import (
	"errors"

	"github.com/courtside-app/courtside/pkg/watch"
	"gorm.io/gorm"
)

// ObjectiveRepository defines the interface for team objective operations
type ObjectiveRepository interface {
	CreateObjective(objective *TeamObjective) error
	GetObjectiveByID(id uint) (*TeamObjective, error)
	GetObjectivesByTeam(teamID uint) ([]TeamObjective, error)
	// UpdateObjective applies the non-nil fields to the row. A vanished row is
	// a silent no-op: the second return value reports whether it still existed.
	UpdateObjective(id uint, description *string, isFinish *bool) (bool, error)
	ToggleObjective(id uint) (bool, error)
	DeleteObjective(id uint) error
}

type objectiveRepository struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewObjectiveRepository creates a new instance of ObjectiveRepository
func NewObjectiveRepository(db *gorm.DB) ObjectiveRepository {
	return &objectiveRepository{db: db, hub: watch.Default}
}

func (r *objectiveRepository) CreateObjective(objective *TeamObjective) error {
	if err := r.db.Create(objective).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TableObjectives, watch.OpInsert)
	return nil
}

func (r *objectiveRepository) GetObjectiveByID(id uint) (*TeamObjective, error) {
	var objective TeamObjective
	if err := r.db.First(&objective, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &objective, nil
}

func (r *objectiveRepository) GetObjectivesByTeam(teamID uint) ([]TeamObjective, error) {
	var objectives []TeamObjective
	if err := r.db.Where("team_id = ?", teamID).Order("created_at asc").Find(&objectives).Error; err != nil {
		return nil, err
	}
	return objectives, nil
}

// UpdateObjective is the read-modify-write partial update: fetch the current
// row, override only the provided fields, persist.
func (r *objectiveRepository) UpdateObjective(id uint, description *string, isFinish *bool) (bool, error) {
	objective, err := r.GetObjectiveByID(id)
	if err != nil {
		return false, err
	}
	if objective == nil {
		return false, nil // row vanished between fetch and update; no-op
	}

	if description != nil {
		objective.Description = *description
	}
	if isFinish != nil {
		objective.IsFinish = *isFinish
	}

	if err := r.db.Save(objective).Error; err != nil {
		return false, err
	}
	r.hub.Notify(watch.TableObjectives, watch.OpUpdate)
	return true, nil
}

// ToggleObjective flips the completion flag. Toggling twice restores the
// original value.
func (r *objectiveRepository) ToggleObjective(id uint) (bool, error) {
	objective, err := r.GetObjectiveByID(id)
	if err != nil {
		return false, err
	}
	if objective == nil {
		return false, nil
	}

	flipped := !objective.IsFinish
	return r.UpdateObjective(id, nil, &flipped)
}

func (r *objectiveRepository) DeleteObjective(id uint) error {
	if err := r.db.Unscoped().Delete(&TeamObjective{}, id).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TableObjectives, watch.OpDelete)
	return nil
}
