package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/courtside-app/courtside/config"
	"github.com/courtside-app/courtside/internal/coach"
	"github.com/courtside-app/courtside/internal/objective"
	"github.com/courtside-app/courtside/internal/player"
	"github.com/courtside-app/courtside/internal/rating"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/courtside-app/courtside/internal/training"
)

var router *gin.Engine

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "courtside-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	os.Setenv("APP_ENV", "test")
	os.Setenv("DB_DRIVER", "sqlite")
	os.Setenv("DB_PATH", filepath.Join(dir, "e2e.db"))
	os.Setenv("JWT_ACCESS_TOKEN_SECRET", "e2e-access-secret")
	os.Setenv("JWT_REFRESH_TOKEN_SECRET", "e2e-refresh-secret")

	if err := config.Initialize(); err != nil {
		panic(err)
	}
	err = config.DB.AutoMigrate(
		&coach.Coach{}, &coach.RefreshToken{},
		&team.Team{}, &player.Player{}, &objective.TeamObjective{},
		&training.Train{}, &training.TrainTask{}, &training.TrainCrossTrainTask{}, &training.TrainingDraft{},
		&rating.AbilityName{}, &rating.AbilityRecord{}, &rating.RatingSession{},
	)
	if err != nil {
		panic(err)
	}

	router = SetupRoutes()
	os.Exit(m.Run())
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

// registerCoach creates a fresh account and returns its access token.
func registerCoach(t *testing.T, email string) string {
	t.Helper()
	w, env := doJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Jordi Ferrer",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.AccessToken)
	return auth.AccessToken
}

func createTeam(t *testing.T, token, name string) uint {
	t.Helper()
	w, env := doJSON(t, http.MethodPost, "/api/teams", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var tm struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tm))
	require.NotZero(t, tm.ID)
	return tm.ID
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	w, _ := doJSON(t, http.MethodGet, "/api/teams", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	token := registerCoach(t, "login@example.com")

	// The registration token works immediately.
	w, env := doJSON(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	require.Equal(t, "login@example.com", me.Email)

	// A duplicate registration is rejected.
	w, _ = doJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Jordi Ferrer", "email": "login@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Logging in with the right password succeeds, with the wrong one fails.
	w, _ = doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "login@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "login@example.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRosterFlow(t *testing.T) {
	token := registerCoach(t, "roster@example.com")
	teamID := createTeam(t, token, "Lions")

	playersPath := fmt.Sprintf("/api/teams/%d/players", teamID)

	w, env := doJSON(t, http.MethodPost, playersPath, token, gin.H{
		"name": "Ana", "number": 7, "position": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID           uint   `json:"id"`
		Name         string `json:"name"`
		Number       int    `json:"number"`
		PositionName string `json:"position_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Equal(t, "ana", created.Name)
	require.Equal(t, 7, created.Number)
	require.Equal(t, "point_guard", created.PositionName)

	// Duplicate jersey number on the same team is a conflict.
	w, _ = doJSON(t, http.MethodPost, playersPath, token, gin.H{
		"name": "Bea", "number": 7, "position": 5,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Unknown position code is a validation error, not a silent default.
	w, _ = doJSON(t, http.MethodPost, playersPath, token, gin.H{
		"name": "Bea", "number": 8, "position": 9,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, http.MethodGet, playersPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roster []struct {
		Number int `json:"number"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &roster))
	require.Len(t, roster, 1)

	// The jersey pre-check endpoint agrees with the stored roster.
	w, env = doJSON(t, http.MethodGet, fmt.Sprintf("/api/teams/%d/jersey-check?number=7", teamID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var check struct {
		Taken bool `json:"taken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &check))
	require.True(t, check.Taken)
}

func TestTeamOwnershipIsEnforced(t *testing.T) {
	ownerToken := registerCoach(t, "owner@example.com")
	teamID := createTeam(t, ownerToken, "Owned")

	otherToken := registerCoach(t, "other@example.com")
	w, _ := doJSON(t, http.MethodGet, fmt.Sprintf("/api/teams/%d", teamID), otherToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}

func TestObjectiveFlow(t *testing.T) {
	token := registerCoach(t, "objectives@example.com")
	teamID := createTeam(t, token, "Tigers")

	objectivesPath := fmt.Sprintf("/api/teams/%d/objectives", teamID)

	w, env := doJSON(t, http.MethodPost, objectivesPath, token, gin.H{
		"description": "Improve pick and roll defense",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var obj struct {
		ID       uint `json:"ID"`
		IsFinish bool `json:"is_finish"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &obj))
	require.False(t, obj.IsFinish)

	w, env = doJSON(t, http.MethodPost, fmt.Sprintf("/api/objectives/%d/toggle", obj.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var toggled struct {
		IsFinish bool `json:"is_finish"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	require.True(t, toggled.IsFinish)

	w, _ = doJSON(t, http.MethodDelete, fmt.Sprintf("/api/objectives/%d", obj.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, http.MethodGet, objectivesPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Empty(t, list)
}

func TestTrainingFlow(t *testing.T) {
	token := registerCoach(t, "training@example.com")
	teamID := createTeam(t, token, "Bears")

	trainingsPath := fmt.Sprintf("/api/teams/%d/trainings", teamID)

	w, env := doJSON(t, http.MethodPost, trainingsPath, token, gin.H{
		"date":     1700000000000,
		"duration": 1.5,
		"concepts": []string{"spacing", "transition"},
		"tasks": []gin.H{
			{"name": "3v2 break", "number_of_players": 5, "concept": "transition"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env = doJSON(t, http.MethodGet, fmt.Sprintf("/api/trainings/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Date     int64    `json:"date"`
		Concepts []string `json:"concepts"`
		Tasks    []struct {
			Name string `json:"name"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, int64(1700000000000), got.Date)
	require.Equal(t, []string{"spacing", "transition"}, got.Concepts)
	require.Len(t, got.Tasks, 1)
	require.Equal(t, "3v2 break", got.Tasks[0].Name)
}

func TestTrainingWizardFlow(t *testing.T) {
	token := registerCoach(t, "wizard@example.com")
	teamID := createTeam(t, token, "Wolves")

	draftPath := fmt.Sprintf("/api/teams/%d/training-draft", teamID)

	// First GET creates an empty draft at the first step.
	w, env := doJSON(t, http.MethodGet, draftPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var draft struct {
		Step int `json:"step"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	require.Equal(t, 0, draft.Step)

	// Advancing without a date is rejected.
	w, _ = doJSON(t, http.MethodPost, draftPath+"/next", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, http.MethodPut, draftPath, token, gin.H{
		"date": 1700000000000, "hours": 1, "minutes": 30,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, http.MethodPost, draftPath+"/next", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	require.Equal(t, 1, draft.Step)

	// Concepts gate: fill them, then advance to tasks and review.
	w, _ = doJSON(t, http.MethodPost, draftPath+"/next", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, http.MethodPut, draftPath, token, gin.H{"concepts": []string{"spacing"}})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, http.MethodPost, draftPath+"/next", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, http.MethodPost, draftPath+"/next", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Saving from review creates the training and discards the draft.
	w, env = doJSON(t, http.MethodPost, draftPath+"/save", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var train struct {
		Duration float64  `json:"duration"`
		Concepts []string `json:"concepts"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &train))
	require.InDelta(t, 1.5, train.Duration, 1e-9)
	require.Equal(t, []string{"spacing"}, train.Concepts)

	// The next GET starts a fresh draft.
	w, env = doJSON(t, http.MethodGet, draftPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	require.Equal(t, 0, draft.Step)
}

func TestRatingSessionFlow(t *testing.T) {
	token := registerCoach(t, "rating@example.com")
	teamID := createTeam(t, token, "Hawks")

	var playerIDs []uint
	for i, name := range []string{"Ana", "Bea"} {
		w, env := doJSON(t, http.MethodPost, fmt.Sprintf("/api/teams/%d/players", teamID), token, gin.H{
			"name": name, "number": i + 1, "position": 1,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var p struct {
			ID uint `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &p))
		playerIDs = append(playerIDs, p.ID)
	}

	w, env := doJSON(t, http.MethodPost, "/api/abilities", token, gin.H{"name": "shooting-e2e"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ability struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ability))

	w, env = doJSON(t, http.MethodPost, fmt.Sprintf("/api/teams/%d/rating-sessions", teamID), token, gin.H{
		"ability_ids": []uint{ability.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var session struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))

	// Advancing with an incomplete roster is rejected.
	w, _ = doJSON(t, http.MethodPost, fmt.Sprintf("/api/rating-sessions/%d/next", session.ID), token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	for i, playerID := range playerIDs {
		w, _ = doJSON(t, http.MethodPost, fmt.Sprintf("/api/rating-sessions/%d/ratings", session.ID), token, gin.H{
			"player_id": playerID, "value": 3 + 2*i,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// The roster is complete now, so next commits the ability and, as it was
	// the only one, completes the session.
	w, env = doJSON(t, http.MethodPost, fmt.Sprintf("/api/rating-sessions/%d/next", session.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var advanced struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &advanced))
	require.Equal(t, rating.SessionCompleted, advanced.Status)

	// The committed ratings show up in the players' history.
	w, env = doJSON(t, http.MethodGet, fmt.Sprintf("/api/players/%d/ratings", playerIDs[0]), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []struct {
		Ability string `json:"ability"`
		Value   int    `json:"value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	require.Equal(t, "shooting-e2e", history[0].Ability)
	require.Equal(t, 3, history[0].Value)
}
