package rating

import (
	"path/filepath"
	"testing"

	"github.com/courtside-app/courtside/internal/coach"
	"github.com/courtside-app/courtside/internal/player"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type ratingFixture struct {
	db      *gorm.DB
	repo    RatingRepository
	coachID uint
	teamID  uint
	players []player.Player
}

func setupRating(t *testing.T, rosterSize int) *ratingFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(
		&coach.Coach{}, &team.Team{}, &player.Player{},
		&AbilityName{}, &AbilityRecord{}, &RatingSession{},
	))

	cc := &coach.Coach{Name: "Test Coach", Email: "coach@example.com", Password: "x"}
	require.NoError(t, db.Create(cc).Error)
	tm := &team.Team{Name: "lions", CoachID: cc.ID}
	require.NoError(t, db.Create(tm).Error)

	f := &ratingFixture{db: db, repo: NewRatingRepository(db), coachID: cc.ID, teamID: tm.ID}
	for i := 0; i < rosterSize; i++ {
		p := player.Player{Name: "player", Number: i + 1, Position: player.PointGuard, TeamID: tm.ID}
		require.NoError(t, db.Create(&p).Error)
		f.players = append(f.players, p)
	}
	return f
}

func (f *ratingFixture) ability(t *testing.T, name string) *AbilityName {
	t.Helper()
	a := &AbilityName{Name: name}
	require.NoError(t, f.repo.CreateAbility(a))
	return a
}

func TestCreateAbilityRejectsDuplicateName(t *testing.T) {
	f := setupRating(t, 0)
	f.ability(t, "shooting")
	require.Error(t, f.repo.CreateAbility(&AbilityName{Name: "shooting"}))
}

func TestGetAbilitiesSortedByName(t *testing.T) {
	f := setupRating(t, 0)
	f.ability(t, "shooting")
	f.ability(t, "defense")
	f.ability(t, "passing")

	abilities, err := f.repo.GetAbilities()
	require.NoError(t, err)
	require.Len(t, abilities, 3)
	require.Equal(t, "defense", abilities[0].Name)
	require.Equal(t, "passing", abilities[1].Name)
	require.Equal(t, "shooting", abilities[2].Name)
}

func TestAveragesByPlayer(t *testing.T) {
	f := setupRating(t, 1)
	shooting := f.ability(t, "shooting")
	f.ability(t, "passing")
	p := f.players[0]

	require.NoError(t, f.repo.AddRecord(&AbilityRecord{PlayerID: p.ID, AbilityID: shooting.ID, Value: 3, Timestamp: 1000}))
	require.NoError(t, f.repo.AddRecord(&AbilityRecord{PlayerID: p.ID, AbilityID: shooting.ID, Value: 5, Timestamp: 2000}))

	// "passing" was never rated so only "shooting" appears.
	averages, err := f.repo.GetAveragesByPlayer(p.ID)
	require.NoError(t, err)
	require.Len(t, averages, 1)
	require.Equal(t, "shooting", averages[0].Ability)
	require.InDelta(t, 4.0, averages[0].Average, 1e-9)
}

func TestHistoryNewestFirst(t *testing.T) {
	f := setupRating(t, 1)
	shooting := f.ability(t, "shooting")
	p := f.players[0]

	require.NoError(t, f.repo.AddRecord(&AbilityRecord{PlayerID: p.ID, AbilityID: shooting.ID, Value: 3, Timestamp: 1000}))
	require.NoError(t, f.repo.AddRecord(&AbilityRecord{PlayerID: p.ID, AbilityID: shooting.ID, Value: 5, Timestamp: 2000}))

	history, err := f.repo.GetHistoryByPlayer(p.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, int64(2000), history[0].Timestamp)
	require.Equal(t, 5, history[0].Value)
	require.Equal(t, "shooting", history[0].Ability)
	require.Equal(t, int64(1000), history[1].Timestamp)
}

func TestSessionCurrentAbilityAndRatings(t *testing.T) {
	s := &RatingSession{AbilityIDs: UintList{10, 20}, Status: SessionInProgress}

	id, ok := s.CurrentAbilityID()
	require.True(t, ok)
	require.Equal(t, uint(10), id)

	require.NoError(t, s.SetRating(1, 7))
	require.NoError(t, s.SetRating(2, 5))
	require.Equal(t, map[uint]int{1: 7, 2: 5}, s.CurrentRatings())

	require.Equal(t, []uint{3}, s.MissingPlayers([]uint{1, 2, 3}))
	require.Empty(t, s.MissingPlayers([]uint{1, 2}))
}

func TestSessionAdvanceAndBack(t *testing.T) {
	s := &RatingSession{AbilityIDs: UintList{10, 20}, Status: SessionInProgress}

	require.ErrorIs(t, s.Back(), ErrSessionAtStart)

	require.NoError(t, s.SetRating(1, 7))
	s.Advance()
	require.Equal(t, 1, s.CurrentIndex)
	id, ok := s.CurrentAbilityID()
	require.True(t, ok)
	require.Equal(t, uint(20), id)

	// Going back re-opens the first ability with its values intact.
	require.NoError(t, s.Back())
	require.Equal(t, map[uint]int{1: 7}, s.CurrentRatings())

	s.Advance()
	s.Advance()
	require.Equal(t, SessionCompleted, s.Status)

	// Completion is terminal.
	require.ErrorIs(t, s.Back(), ErrSessionCompleted)
	require.ErrorIs(t, s.SetRating(1, 9), ErrSessionCompleted)
}

func TestCommitCurrentAbilityPersistsOnlyCurrentRecords(t *testing.T) {
	f := setupRating(t, 2)
	shooting := f.ability(t, "shooting")
	passing := f.ability(t, "passing")

	session := &RatingSession{
		CoachID:    f.coachID,
		TeamID:     f.teamID,
		AbilityIDs: UintList{shooting.ID, passing.ID},
		Status:     SessionInProgress,
	}
	require.NoError(t, f.repo.CreateSession(session))

	require.NoError(t, session.SetRating(f.players[0].ID, 3))
	require.NoError(t, session.SetRating(f.players[1].ID, 5))

	records := []AbilityRecord{}
	for playerID, value := range session.CurrentRatings() {
		records = append(records, AbilityRecord{
			PlayerID:  playerID,
			AbilityID: shooting.ID,
			Value:     value,
			Timestamp: 1000,
		})
	}
	session.Advance()
	require.NoError(t, f.repo.CommitCurrentAbility(session, records))

	// Only the committed ability has history rows.
	var count int64
	require.NoError(t, f.db.Model(&AbilityRecord{}).Where("ability_id = ?", shooting.ID).Count(&count).Error)
	require.Equal(t, int64(2), count)
	require.NoError(t, f.db.Model(&AbilityRecord{}).Where("ability_id = ?", passing.ID).Count(&count).Error)
	require.Zero(t, count)

	// The advanced index survives the round trip.
	got, err := f.repo.GetSessionByID(session.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.CurrentIndex)
	require.Equal(t, SessionInProgress, got.Status)
}

func TestGetActiveSession(t *testing.T) {
	f := setupRating(t, 0)
	shooting := f.ability(t, "shooting")

	got, err := f.repo.GetActiveSession(f.coachID, f.teamID)
	require.NoError(t, err)
	require.Nil(t, got)

	session := &RatingSession{
		CoachID:    f.coachID,
		TeamID:     f.teamID,
		AbilityIDs: UintList{shooting.ID},
		Status:     SessionInProgress,
	}
	require.NoError(t, f.repo.CreateSession(session))

	got, err = f.repo.GetActiveSession(f.coachID, f.teamID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, session.ID, got.ID)

	got.Status = SessionCompleted
	require.NoError(t, f.repo.SaveSession(got))

	got, err = f.repo.GetActiveSession(f.coachID, f.teamID)
	require.NoError(t, err)
	require.Nil(t, got)
}
