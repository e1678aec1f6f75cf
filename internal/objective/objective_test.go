package objective

import (
	"path/filepath"
	"testing"

	"github.com/courtside-app/courtside/internal/coach"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepo(t *testing.T) (ObjectiveRepository, uint) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&coach.Coach{}, &team.Team{}, &TeamObjective{}))

	cc := &coach.Coach{Name: "Test Coach", Email: "coach@example.com", Password: "x"}
	require.NoError(t, db.Create(cc).Error)
	tm := &team.Team{Name: "lions", CoachID: cc.ID}
	require.NoError(t, db.Create(tm).Error)

	return NewObjectiveRepository(db), tm.ID
}

func TestCreateAndListObjectives(t *testing.T) {
	repo, teamID := setupRepo(t)

	require.NoError(t, repo.CreateObjective(&TeamObjective{Description: "improve passing", TeamID: teamID}))
	require.NoError(t, repo.CreateObjective(&TeamObjective{Description: "press defense", TeamID: teamID}))

	objectives, err := repo.GetObjectivesByTeam(teamID)
	require.NoError(t, err)
	require.Len(t, objectives, 2)
	require.Equal(t, "improve passing", objectives[0].Description)
	require.False(t, objectives[0].IsFinish)
}

func TestToggleObjectiveTwiceRestores(t *testing.T) {
	repo, teamID := setupRepo(t)

	obj := &TeamObjective{Description: "improve passing", TeamID: teamID}
	require.NoError(t, repo.CreateObjective(obj))

	found, err := repo.ToggleObjective(obj.ID)
	require.NoError(t, err)
	require.True(t, found)

	got, err := repo.GetObjectiveByID(obj.ID)
	require.NoError(t, err)
	require.True(t, got.IsFinish)

	found, err = repo.ToggleObjective(obj.ID)
	require.NoError(t, err)
	require.True(t, found)

	got, err = repo.GetObjectiveByID(obj.ID)
	require.NoError(t, err)
	require.False(t, got.IsFinish)
}

func TestUpdateObjectivePartial(t *testing.T) {
	repo, teamID := setupRepo(t)

	obj := &TeamObjective{Description: "improve passing", TeamID: teamID}
	require.NoError(t, repo.CreateObjective(obj))

	// Update the flag only; the description must survive.
	done := true
	found, err := repo.UpdateObjective(obj.ID, nil, &done)
	require.NoError(t, err)
	require.True(t, found)

	got, err := repo.GetObjectiveByID(obj.ID)
	require.NoError(t, err)
	require.Equal(t, "improve passing", got.Description)
	require.True(t, got.IsFinish)

	// Update the description only; the flag must survive.
	text := "improve outlet passing"
	found, err = repo.UpdateObjective(obj.ID, &text, nil)
	require.NoError(t, err)
	require.True(t, found)

	got, err = repo.GetObjectiveByID(obj.ID)
	require.NoError(t, err)
	require.Equal(t, "improve outlet passing", got.Description)
	require.True(t, got.IsFinish)
}

func TestUpdateVanishedObjectiveIsNoOp(t *testing.T) {
	repo, _ := setupRepo(t)

	done := true
	found, err := repo.UpdateObjective(424242, nil, &done)
	require.NoError(t, err)
	require.False(t, found)

	found, err = repo.ToggleObjective(424242)
	require.NoError(t, err)
	require.False(t, found)
}

func TestDeleteObjective(t *testing.T) {
	repo, teamID := setupRepo(t)

	obj := &TeamObjective{Description: "improve passing", TeamID: teamID}
	require.NoError(t, repo.CreateObjective(obj))
	require.NoError(t, repo.DeleteObjective(obj.ID))

	got, err := repo.GetObjectiveByID(obj.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}
