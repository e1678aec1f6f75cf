package rating

import (
	"database/sql/driver"
	"errors"

	"github.com/courtside-app/courtside/internal/coach"
	"github.com/courtside-app/courtside/internal/models"
	"github.com/courtside-app/courtside/internal/team"
	"gorm.io/gorm"
)

const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
)

var (
	ErrSessionCompleted = errors.New("rating session is already completed")
	ErrSessionAtStart   = errors.New("rating session is at the first ability")
	ErrRosterIncomplete = errors.New("every player needs a rating for the current ability")
	ErrNoAbilities      = errors.New("a rating session needs at least one ability")
)

// UintList is a JSON column of ids, keeping the ability order chosen at
// session start.
type UintList []uint

func (l UintList) Value() (driver.Value, error) {
	if l == nil {
		l = UintList{}
	}
	return models.JSONColumnValue(l)
}

func (l *UintList) Scan(src interface{}) error {
	return models.JSONColumnScan(src, l)
}

// EntryMap holds the collected values: ability id -> player id -> rating.
// Kept whole for the session's lifetime so stepping backward re-displays
// earlier entries without refetching.
type EntryMap map[uint]map[uint]int

func (m EntryMap) Value() (driver.Value, error) {
	if m == nil {
		m = EntryMap{}
	}
	return models.JSONColumnValue(m)
}

func (m *EntryMap) Scan(src interface{}) error {
	return models.JSONColumnScan(src, m)
}

// RatingSession walks a team's roster through a fixed list of abilities, one
// ability at a time. Advancing persists only the current ability's ratings;
// the session itself is persisted so the flow survives a restart.
type RatingSession struct {
	gorm.Model
	CoachID      uint     `gorm:"not null;index" json:"coach_id"`
	TeamID       uint     `gorm:"not null;index" json:"team_id"`
	AbilityIDs   UintList `gorm:"type:text" json:"ability_ids"`
	CurrentIndex int      `gorm:"not null;default:0" json:"current_index"`
	Entries      EntryMap `gorm:"type:text" json:"entries"`
	Status       string   `gorm:"not null;default:'in_progress'" json:"status"`

	Coach coach.Coach `gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE" json:"-"`
	Team  team.Team   `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

// CurrentAbilityID returns the ability being collected, or false when the
// session has run past the list.
func (s *RatingSession) CurrentAbilityID() (uint, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.AbilityIDs) {
		return 0, false
	}
	return s.AbilityIDs[s.CurrentIndex], true
}

// SetRating stores a value for a player under the current ability, in the
// entries map only; nothing is persisted to the history until Next.
func (s *RatingSession) SetRating(playerID uint, value int) error {
	if s.Status == SessionCompleted {
		return ErrSessionCompleted
	}
	abilityID, ok := s.CurrentAbilityID()
	if !ok {
		return ErrSessionCompleted
	}
	if s.Entries == nil {
		s.Entries = EntryMap{}
	}
	if s.Entries[abilityID] == nil {
		s.Entries[abilityID] = map[uint]int{}
	}
	s.Entries[abilityID][playerID] = value
	return nil
}

// MissingPlayers lists roster members without a rating for the current
// ability. Next is gated on this being empty.
func (s *RatingSession) MissingPlayers(roster []uint) []uint {
	abilityID, ok := s.CurrentAbilityID()
	if !ok {
		return nil
	}
	entered := s.Entries[abilityID]
	var missing []uint
	for _, playerID := range roster {
		if _, rated := entered[playerID]; !rated {
			missing = append(missing, playerID)
		}
	}
	return missing
}

// CurrentRatings returns the entries for the current ability, used both to
// re-display values after Back and to build the records persisted by Next.
func (s *RatingSession) CurrentRatings() map[uint]int {
	abilityID, ok := s.CurrentAbilityID()
	if !ok {
		return nil
	}
	return s.Entries[abilityID]
}

// Advance moves to the next ability, or completes the session after the last
// one. Callers persist the current ability's ratings first.
func (s *RatingSession) Advance() {
	if s.CurrentIndex+1 < len(s.AbilityIDs) {
		s.CurrentIndex++
		return
	}
	s.Status = SessionCompleted
}

// Back re-opens the previous ability. Values already entered for it are still
// in the entries map.
func (s *RatingSession) Back() error {
	if s.Status == SessionCompleted {
		return ErrSessionCompleted
	}
	if s.CurrentIndex == 0 {
		return ErrSessionAtStart
	}
	s.CurrentIndex--
	return nil
}
