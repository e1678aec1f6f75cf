package player

import (
	"net/http"
	"strconv"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/courtside-app/courtside/pkg/responses"
	"github.com/courtside-app/courtside/pkg/validator"
	"github.com/gin-gonic/gin"
)

// PlayerController handles roster HTTP requests
type PlayerController struct {
	repo     PlayerRepository
	teamRepo team.TeamRepository
}

func NewPlayerController(repo PlayerRepository, teamRepo team.TeamRepository) *PlayerController {
	return &PlayerController{repo: repo, teamRepo: teamRepo}
}

// --- DTOs for requests ---

type CreatePlayerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Ana"`
	Number   *int   `json:"number" binding:"required,gte=0,lte=99" example:"7"`
	Position int    `json:"position" binding:"required" example:"1"`
}

type UpdatePlayerRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Number   *int    `json:"number" binding:"omitempty,gte=0,lte=99"`
	Position *int    `json:"position"`
}

// PlayerResponse adds the readable position name to the stored code.
type PlayerResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Number       int    `json:"number"`
	Position     int    `json:"position"`
	PositionName string `json:"position_name"`
	TeamID       uint   `json:"team_id"`
}

func toPlayerResponse(p *Player) PlayerResponse {
	return PlayerResponse{
		ID:           p.ID,
		Name:         p.Name,
		Number:       p.Number,
		Position:     int(p.Position),
		PositionName: p.Position.String(),
		TeamID:       p.TeamID,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func (pc *PlayerController) requireOwnedTeam(c *gin.Context, teamID uint) bool {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return false
	}
	t, err := pc.teamRepo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return false
	}
	if t == nil {
		responses.NotFound(c, "Team")
		return false
	}
	if t.CoachID != coachID {
		responses.Forbidden(c, "")
		return false
	}
	return true
}

// InsertPlayer godoc
// @Summary      Add a player to a team's roster
// @Description  Name is stored lowercased; the jersey number must be free on the team.
// @Tags         Players
// @Accept       json
// @Produce      json
// @Param        team_id  path  int  true  "Team ID"
// @Param        player   body  CreatePlayerRequest  true  "Player details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse
// @Router       /teams/{team_id}/players [post]
func (pc *PlayerController) InsertPlayer(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	if !pc.requireOwnedTeam(c, teamID) {
		return
	}

	var req CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	position, err := ParsePosition(req.Position)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	taken, err := pc.repo.IsJerseyNumberTaken(teamID, *req.Number, 0)
	if err != nil {
		responses.InternalServerError(c, "Failed to check jersey number")
		return
	}
	if taken {
		responses.Conflict(c, "Jersey number is already taken on this team")
		return
	}

	player := &Player{
		Name:     req.Name,
		Number:   *req.Number,
		Position: position,
		TeamID:   teamID,
	}
	if err := pc.repo.InsertPlayer(player); err != nil {
		// The unique index catches the race the advisory check cannot.
		responses.Conflict(c, "Jersey number is already taken on this team")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Player added", toPlayerResponse(player))
}

// GetRoster godoc
// @Summary      List a team's players
// @Tags         Players
// @Produce      json
// @Param        team_id  path  int  true  "Team ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /teams/{team_id}/players [get]
func (pc *PlayerController) GetRoster(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	if !pc.requireOwnedTeam(c, teamID) {
		return
	}

	players, err := pc.repo.GetRoster(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch roster")
		return
	}

	out := make([]PlayerResponse, 0, len(players))
	for i := range players {
		out = append(out, toPlayerResponse(&players[i]))
	}
	responses.SendSuccess(c, http.StatusOK, "", out)
}

func (pc *PlayerController) GetPlayerByID(c *gin.Context) {
	playerID, ok := parseIDParam(c, "player_id")
	if !ok {
		return
	}
	player, err := pc.repo.GetPlayerByID(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if player == nil {
		responses.NotFound(c, "Player")
		return
	}
	if !pc.requireOwnedTeam(c, player.TeamID) {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", toPlayerResponse(player))
}

// UpdatePlayer applies a partial update; only fields present in the request
// override. Moving to a new number re-runs the uniqueness check excluding the
// player's own id, so keeping the current number is never flagged.
func (pc *PlayerController) UpdatePlayer(c *gin.Context) {
	playerID, ok := parseIDParam(c, "player_id")
	if !ok {
		return
	}
	player, err := pc.repo.GetPlayerByID(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if player == nil {
		responses.NotFound(c, "Player")
		return
	}
	if !pc.requireOwnedTeam(c, player.TeamID) {
		return
	}

	var req UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	if req.Name != nil {
		player.Name = *req.Name
	}
	if req.Position != nil {
		position, err := ParsePosition(*req.Position)
		if err != nil {
			responses.BadRequest(c, err.Error())
			return
		}
		player.Position = position
	}
	if req.Number != nil {
		taken, err := pc.repo.IsJerseyNumberTaken(player.TeamID, *req.Number, player.ID)
		if err != nil {
			responses.InternalServerError(c, "Failed to check jersey number")
			return
		}
		if taken {
			responses.Conflict(c, "Jersey number is already taken on this team")
			return
		}
		player.Number = *req.Number
	}

	if err := pc.repo.UpdatePlayer(player); err != nil {
		responses.InternalServerError(c, "Failed to update player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player updated", toPlayerResponse(player))
}

func (pc *PlayerController) DeletePlayer(c *gin.Context) {
	playerID, ok := parseIDParam(c, "player_id")
	if !ok {
		return
	}
	player, err := pc.repo.GetPlayerByID(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch player")
		return
	}
	if player == nil {
		responses.NotFound(c, "Player")
		return
	}
	if !pc.requireOwnedTeam(c, player.TeamID) {
		return
	}

	if err := pc.repo.DeletePlayer(playerID); err != nil {
		responses.InternalServerError(c, "Failed to delete player")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Player deleted", nil)
}

// CheckJerseyNumber answers the "edit self" aware availability query:
// GET /teams/:team_id/jersey-check?number=7&exclude=12
func (pc *PlayerController) CheckJerseyNumber(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	if !pc.requireOwnedTeam(c, teamID) {
		return
	}

	number, err := strconv.Atoi(c.Query("number"))
	if err != nil || number < 0 || number > 99 {
		responses.BadRequest(c, "Invalid number (expected 0..99)")
		return
	}
	var exclude uint64
	if ex := c.Query("exclude"); ex != "" {
		exclude, err = strconv.ParseUint(ex, 10, 32)
		if err != nil {
			responses.BadRequest(c, "Invalid exclude")
			return
		}
	}

	taken, err := pc.repo.IsJerseyNumberTaken(teamID, number, uint(exclude))
	if err != nil {
		responses.InternalServerError(c, "Failed to check jersey number")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"taken": taken})
}
