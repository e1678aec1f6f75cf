package rating

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/player"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/courtside-app/courtside/pkg/responses"
	"github.com/courtside-app/courtside/pkg/validator"
	"github.com/gin-gonic/gin"
)

// RatingController handles ability rating HTTP requests
type RatingController struct {
	repo       RatingRepository
	playerRepo player.PlayerRepository
	teamRepo   team.TeamRepository
}

func NewRatingController(repo RatingRepository, playerRepo player.PlayerRepository, teamRepo team.TeamRepository) *RatingController {
	return &RatingController{repo: repo, playerRepo: playerRepo, teamRepo: teamRepo}
}

// --- DTOs for requests ---

type CreateAbilityRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100" example:"shooting"`
}

type AddRecordRequest struct {
	AbilityID uint `json:"ability_id" binding:"required"`
	Value     int  `json:"value" binding:"required,gte=1,lte=10"`
}

type StartSessionRequest struct {
	AbilityIDs []uint `json:"ability_ids" binding:"required,min=1"`
}

type SessionRatingRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
	Value    int  `json:"value" binding:"required,gte=1,lte=10"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func (rc *RatingController) requireOwnedTeam(c *gin.Context, teamID uint) (uint, bool) {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return 0, false
	}
	t, err := rc.teamRepo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return 0, false
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return 0, false
	}
	if t.CoachID != coachID {
		responses.Forbidden(c, "")
		return 0, false
	}
	return coachID, true
}

// requireOwnedPlayer resolves the player's team and checks ownership.
func (rc *RatingController) requireOwnedPlayer(c *gin.Context, playerID uint) *player.Player {
	p, err := rc.playerRepo.GetPlayerByID(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return nil
	}
	if p == nil {
		responses.NotFound(c, "Player")
		return nil
	}
	if _, ok := rc.requireOwnedTeam(c, p.TeamID); !ok {
		return nil
	}
	return p
}

// --- Ability handlers ---

func (rc *RatingController) CreateAbility(c *gin.Context) {
	var req CreateAbilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ability := &AbilityName{Name: req.Name}
	if err := rc.repo.CreateAbility(ability); err != nil {
		responses.Conflict(c, "An ability with this name already exists")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Ability created", ability)
}

func (rc *RatingController) GetAbilities(c *gin.Context) {
	abilities, err := rc.repo.GetAbilities()
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch abilities")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", abilities)
}

// --- Record handlers ---

// AddRecord appends one rating event to a player's history.
func (rc *RatingController) AddRecord(c *gin.Context) {
	playerID, ok := parseIDParam(c, "player_id")
	if !ok {
		return
	}
	if rc.requireOwnedPlayer(c, playerID) == nil {
		return
	}

	var req AddRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ability, err := rc.repo.GetAbilityByID(req.AbilityID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch ability")
		return
	}
	if ability == nil {
		responses.NotFound(c, "Ability")
		return
	}

	record := &AbilityRecord{
		PlayerID:  playerID,
		AbilityID: req.AbilityID,
		Value:     req.Value,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := rc.repo.AddRecord(record); err != nil {
		responses.InternalServerError(c, "Failed to add rating")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Rating recorded", record)
}

// GetHistory godoc
// @Summary      A player's full rating history
// @Tags         Ratings
// @Produce      json
// @Param        player_id  path  int  true  "Player ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /players/{player_id}/ratings [get]
func (rc *RatingController) GetHistory(c *gin.Context) {
	playerID, ok := parseIDParam(c, "player_id")
	if !ok {
		return
	}
	if rc.requireOwnedPlayer(c, playerID) == nil {
		return
	}

	history, err := rc.repo.GetHistoryByPlayer(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch history")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", history)
}

// GetAverages godoc
// @Summary      A player's derived ability means
// @Description  Mean of the full history per ability name; unrated abilities are absent.
// @Tags         Ratings
// @Produce      json
// @Param        player_id  path  int  true  "Player ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /players/{player_id}/ratings/averages [get]
func (rc *RatingController) GetAverages(c *gin.Context) {
	playerID, ok := parseIDParam(c, "player_id")
	if !ok {
		return
	}
	if rc.requireOwnedPlayer(c, playerID) == nil {
		return
	}

	averages, err := rc.repo.GetAveragesByPlayer(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to compute averages")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", averages)
}

// --- Session handlers ---

// StartSession opens a rating session for a team over an ordered list of
// abilities. Only one in-progress session per (coach, team).
func (rc *RatingController) StartSession(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	coachID, ok := rc.requireOwnedTeam(c, teamID)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	for _, abilityID := range req.AbilityIDs {
		ability, err := rc.repo.GetAbilityByID(abilityID)
		if err != nil {
			responses.InternalServerError(c, "Failed to fetch ability")
			return
		}
		if ability == nil {
			responses.NotFound(c, "Ability")
			return
		}
	}

	existing, err := rc.repo.GetActiveSession(coachID, teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check sessions")
		return
	}
	if existing != nil {
		responses.Conflict(c, "A rating session is already in progress for this team")
		return
	}

	session := &RatingSession{
		CoachID:    coachID,
		TeamID:     teamID,
		AbilityIDs: req.AbilityIDs,
		Entries:    EntryMap{},
		Status:     SessionInProgress,
	}
	if err := rc.repo.CreateSession(session); err != nil {
		responses.InternalServerError(c, "Failed to start session")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Session started", session)
}

// GetActiveSession resumes the in-progress session for a team, if any.
func (rc *RatingController) GetActiveSession(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	coachID, ok := rc.requireOwnedTeam(c, teamID)
	if !ok {
		return
	}

	session, err := rc.repo.GetActiveSession(coachID, teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch session")
		return
	}
	if session == nil {
		responses.NotFound(c, "Session")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", session)
}

// requireOwnedSession loads the session and checks it belongs to the caller.
func (rc *RatingController) requireOwnedSession(c *gin.Context, sessionID uint) *RatingSession {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return nil
	}
	session, err := rc.repo.GetSessionByID(sessionID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch session")
		return nil
	}
	if session == nil {
		responses.NotFound(c, "Session")
		return nil
	}
	if session.CoachID != coachID {
		responses.Forbidden(c, "")
		return nil
	}
	return session
}

// SetSessionRating stores one player's value for the current ability. Nothing
// reaches the history until Next commits the whole roster.
func (rc *RatingController) SetSessionRating(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "session_id")
	if !ok {
		return
	}
	session := rc.requireOwnedSession(c, sessionID)
	if session == nil {
		return
	}

	var req SessionRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	p, err := rc.playerRepo.GetPlayerByID(req.PlayerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if p == nil || p.TeamID != session.TeamID {
		responses.BadRequest(c, "Player is not on this session's team")
		return
	}

	if err := session.SetRating(req.PlayerID, req.Value); err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if err := rc.repo.SaveSession(session); err != nil {
		responses.InternalServerError(c, "Failed to save session")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", session)
}

// NextAbility persists the ratings entered for the current ability (one
// record per roster player) and advances, completing the session after the
// last ability. Gated on every roster player having a value.
func (rc *RatingController) NextAbility(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "session_id")
	if !ok {
		return
	}
	session := rc.requireOwnedSession(c, sessionID)
	if session == nil {
		return
	}
	if session.Status == SessionCompleted {
		responses.BadRequest(c, ErrSessionCompleted.Error())
		return
	}

	roster, err := rc.playerRepo.GetRoster(session.TeamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch roster")
		return
	}
	rosterIDs := make([]uint, 0, len(roster))
	for _, p := range roster {
		rosterIDs = append(rosterIDs, p.ID)
	}

	if missing := session.MissingPlayers(rosterIDs); len(missing) > 0 {
		responses.BadRequest(c, ErrRosterIncomplete.Error())
		return
	}

	abilityID, _ := session.CurrentAbilityID()
	now := time.Now().UnixMilli()
	ratings := session.CurrentRatings()
	records := make([]AbilityRecord, 0, len(rosterIDs))
	for _, playerID := range rosterIDs {
		records = append(records, AbilityRecord{
			PlayerID:  playerID,
			AbilityID: abilityID,
			Value:     ratings[playerID],
			Timestamp: now,
		})
	}

	session.Advance()
	if err := rc.repo.CommitCurrentAbility(session, records); err != nil {
		responses.InternalServerError(c, "Failed to save ratings")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", session)
}

// PreviousAbility steps back to the prior ability; previously entered values
// re-display from the session's entries.
func (rc *RatingController) PreviousAbility(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "session_id")
	if !ok {
		return
	}
	session := rc.requireOwnedSession(c, sessionID)
	if session == nil {
		return
	}

	if err := session.Back(); err != nil {
		if errors.Is(err, ErrSessionAtStart) {
			// clamp: stay at the first ability
			responses.SendSuccess(c, http.StatusOK, "", session)
			return
		}
		responses.BadRequest(c, err.Error())
		return
	}
	if err := rc.repo.SaveSession(session); err != nil {
		responses.InternalServerError(c, "Failed to save session")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", session)
}
