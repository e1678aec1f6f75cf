package rating

import (
	"errors"

	"github.com/courtside-app/courtside/pkg/watch"
	"gorm.io/gorm"
)

// RatingRepository defines the interface for ability rating operations
type RatingRepository interface {
	CreateAbility(ability *AbilityName) error
	GetAbilities() ([]AbilityName, error)
	GetAbilityByID(id uint) (*AbilityName, error)

	AddRecord(record *AbilityRecord) error
	// GetHistoryByPlayer returns the player's full append-only history with
	// ability names attached, newest first, in a single joined query.
	GetHistoryByPlayer(playerID uint) ([]RatedAbility, error)
	// GetAveragesByPlayer derives the mean value per ability name over the
	// whole history. Abilities never rated are absent from the result.
	GetAveragesByPlayer(playerID uint) ([]AbilityAverage, error)

	CreateSession(session *RatingSession) error
	GetSessionByID(id uint) (*RatingSession, error)
	GetActiveSession(coachID, teamID uint) (*RatingSession, error)
	SaveSession(session *RatingSession) error
	// CommitCurrentAbility persists the records collected for the session's
	// current ability and the advanced session state in one transaction.
	CommitCurrentAbility(session *RatingSession, records []AbilityRecord) error
}

type ratingRepository struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewRatingRepository creates a new instance of RatingRepository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db, hub: watch.Default}
}

func (r *ratingRepository) CreateAbility(ability *AbilityName) error {
	return r.db.Create(ability).Error
}

func (r *ratingRepository) GetAbilities() ([]AbilityName, error) {
	var abilities []AbilityName
	if err := r.db.Order("name asc").Find(&abilities).Error; err != nil {
		return nil, err
	}
	return abilities, nil
}

func (r *ratingRepository) GetAbilityByID(id uint) (*AbilityName, error) {
	var ability AbilityName
	if err := r.db.First(&ability, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ability, nil
}

func (r *ratingRepository) AddRecord(record *AbilityRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TableAbilityRecords, watch.OpInsert)
	return nil
}

func (r *ratingRepository) GetHistoryByPlayer(playerID uint) ([]RatedAbility, error) {
	var history []RatedAbility
	err := r.db.Model(&AbilityRecord{}).
		Select("ability_records.id as id, ability_names.name as ability, ability_records.value as value, ability_records.timestamp as timestamp").
		Joins("JOIN ability_names ON ability_names.id = ability_records.ability_id").
		Where("ability_records.player_id = ?", playerID).
		Order("ability_records.timestamp desc").
		Scan(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (r *ratingRepository) GetAveragesByPlayer(playerID uint) ([]AbilityAverage, error) {
	var averages []AbilityAverage
	err := r.db.Model(&AbilityRecord{}).
		Select("ability_names.name as ability, AVG(ability_records.value) as average").
		Joins("JOIN ability_names ON ability_names.id = ability_records.ability_id").
		Where("ability_records.player_id = ?", playerID).
		Group("ability_names.name").
		Order("ability_names.name asc").
		Scan(&averages).Error
	if err != nil {
		return nil, err
	}
	return averages, nil
}

func (r *ratingRepository) CreateSession(session *RatingSession) error {
	return r.db.Create(session).Error
}

func (r *ratingRepository) GetSessionByID(id uint) (*RatingSession, error) {
	var session RatingSession
	if err := r.db.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *ratingRepository) GetActiveSession(coachID, teamID uint) (*RatingSession, error) {
	var session RatingSession
	err := r.db.
		Where("coach_id = ? AND team_id = ? AND status = ?", coachID, teamID, SessionInProgress).
		Order("created_at desc").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *ratingRepository) SaveSession(session *RatingSession) error {
	return r.db.Save(session).Error
}

func (r *ratingRepository) CommitCurrentAbility(session *RatingSession, records []AbilityRecord) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return tx.Save(session).Error
	})
	if err != nil {
		return err
	}
	if len(records) > 0 {
		r.hub.Notify(watch.TableAbilityRecords, watch.OpInsert)
	}
	return nil
}
