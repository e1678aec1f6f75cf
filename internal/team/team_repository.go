package team

import (
	"errors"

	"github.com/courtside-app/courtside/pkg/watch"
	"gorm.io/gorm"
)

// TeamRepository defines the interface for team data operations
type TeamRepository interface {
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamByName(name string) (*Team, error)
	GetTeamID(name string) (uint, error)
	GetTeamsByCoach(coachID uint) ([]Team, error)
	UpdateTeam(team *Team) error
	DeleteTeam(id uint) error
}

type teamRepository struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewTeamRepository creates a new instance of TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db, hub: watch.Default}
}

func (r *teamRepository) CreateTeam(team *Team) error {
	team.Name = NormalizeName(team.Name)
	if err := r.db.Create(team).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TableTeams, watch.OpInsert)
	return nil
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var team Team
	if err := r.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetTeamByName(name string) (*Team, error) {
	var team Team
	if err := r.db.Where("name = ?", NormalizeName(name)).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

// GetTeamID is a point lookup with no caching; each call re-queries the store.
func (r *teamRepository) GetTeamID(name string) (uint, error) {
	team, err := r.GetTeamByName(name)
	if err != nil {
		return 0, err
	}
	if team == nil {
		return 0, nil
	}
	return team.ID, nil
}

func (r *teamRepository) GetTeamsByCoach(coachID uint) ([]Team, error) {
	var teams []Team
	if err := r.db.Where("coach_id = ?", coachID).Order("created_at asc").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) UpdateTeam(team *Team) error {
	team.Name = NormalizeName(team.Name)
	if err := r.db.Save(team).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TableTeams, watch.OpUpdate)
	return nil
}

// DeleteTeam removes the team row; players, objectives and trainings go with
// it via ON DELETE CASCADE.
func (r *teamRepository) DeleteTeam(id uint) error {
	if err := r.db.Unscoped().Delete(&Team{}, id).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TableTeams, watch.OpDelete)
	return nil
}
