package player

import (
	"errors"

	"github.com/courtside-app/courtside/internal/team"
	"github.com/courtside-app/courtside/pkg/watch"
	"gorm.io/gorm"
)

// PlayerRepository defines the interface for roster data operations
type PlayerRepository interface {
	InsertPlayer(player *Player) error
	GetPlayerByID(id uint) (*Player, error)
	GetRoster(teamID uint) ([]Player, error)
	UpdatePlayer(player *Player) error
	DeletePlayer(id uint) error
	GetPlayerTeamID(playerID uint) (uint, error)
	IsJerseyNumberTaken(teamID uint, number int, excludePlayerID uint) (bool, error)
}

type playerRepository struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewPlayerRepository creates a new instance of PlayerRepository
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db, hub: watch.Default}
}

func (r *playerRepository) InsertPlayer(player *Player) error {
	player.Name = team.NormalizeName(player.Name)
	if err := r.db.Create(player).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TablePlayers, watch.OpInsert)
	return nil
}

func (r *playerRepository) GetPlayerByID(id uint) (*Player, error) {
	var player Player
	if err := r.db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) GetRoster(teamID uint) ([]Player, error) {
	var players []Player
	if err := r.db.Where("team_id = ?", teamID).Order("number asc").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) UpdatePlayer(player *Player) error {
	player.Name = team.NormalizeName(player.Name)
	if err := r.db.Save(player).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TablePlayers, watch.OpUpdate)
	return nil
}

func (r *playerRepository) DeletePlayer(id uint) error {
	if err := r.db.Unscoped().Delete(&Player{}, id).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TablePlayers, watch.OpDelete)
	return nil
}

// GetPlayerTeamID is a point lookup with no caching.
func (r *playerRepository) GetPlayerTeamID(playerID uint) (uint, error) {
	var player Player
	if err := r.db.Select("team_id").First(&player, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return player.TeamID, nil
}

// IsJerseyNumberTaken reports whether another player on the team already wears
// the number. excludePlayerID skips the player being edited so their own
// number is never flagged. Advisory only: the unique index on
// (team_id, number) is what actually prevents duplicates.
func (r *playerRepository) IsJerseyNumberTaken(teamID uint, number int, excludePlayerID uint) (bool, error) {
	query := r.db.Model(&Player{}).Where("team_id = ? AND number = ?", teamID, number)
	if excludePlayerID != 0 {
		query = query.Where("id <> ?", excludePlayerID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
