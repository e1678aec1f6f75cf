package team

import (
	"path/filepath"
	"testing"

	"github.com/courtside-app/courtside/internal/coach"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&coach.Coach{}, &Team{}))
	return db
}

func newCoach(t *testing.T, db *gorm.DB) *coach.Coach {
	t.Helper()
	cc := &coach.Coach{Name: "Test Coach", Email: "coach@example.com", Password: "x"}
	require.NoError(t, db.Create(cc).Error)
	return cc
}

func TestCreateTeamNormalizesName(t *testing.T) {
	db := setupDB(t)
	cc := newCoach(t, db)
	repo := NewTeamRepository(db)

	team := &Team{Name: "  Lions ", CoachID: cc.ID}
	require.NoError(t, repo.CreateTeam(team))
	require.NotZero(t, team.ID)

	got, err := repo.GetTeamByID(team.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "lions", got.Name)
}

func TestGetTeamByNameIsCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	cc := newCoach(t, db)
	repo := NewTeamRepository(db)

	require.NoError(t, repo.CreateTeam(&Team{Name: "Lions", CoachID: cc.ID}))

	got, err := repo.GetTeamByName("LIONS")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "lions", got.Name)
}

func TestGetTeamID(t *testing.T) {
	db := setupDB(t)
	cc := newCoach(t, db)
	repo := NewTeamRepository(db)

	team := &Team{Name: "Lions", CoachID: cc.ID}
	require.NoError(t, repo.CreateTeam(team))

	id, err := repo.GetTeamID("Lions")
	require.NoError(t, err)
	require.Equal(t, team.ID, id)

	// Unknown names resolve to zero, not an error.
	id, err = repo.GetTeamID("tigers")
	require.NoError(t, err)
	require.Zero(t, id)
}

func TestGetTeamByIDNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewTeamRepository(db)

	got, err := repo.GetTeamByID(424242)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestUpdateTeamRenormalizesName(t *testing.T) {
	db := setupDB(t)
	cc := newCoach(t, db)
	repo := NewTeamRepository(db)

	team := &Team{Name: "lions", CoachID: cc.ID}
	require.NoError(t, repo.CreateTeam(team))

	team.Name = "Tigers"
	require.NoError(t, repo.UpdateTeam(team))

	got, err := repo.GetTeamByID(team.ID)
	require.NoError(t, err)
	require.Equal(t, "tigers", got.Name)
}

func TestDeleteTeam(t *testing.T) {
	db := setupDB(t)
	cc := newCoach(t, db)
	repo := NewTeamRepository(db)

	team := &Team{Name: "lions", CoachID: cc.ID}
	require.NoError(t, repo.CreateTeam(team))
	require.NoError(t, repo.DeleteTeam(team.ID))

	got, err := repo.GetTeamByID(team.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}
