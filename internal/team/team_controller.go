package team

import (
	"net/http"
	"strconv"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/pkg/responses"
	"github.com/courtside-app/courtside/pkg/validator"
	"github.com/gin-gonic/gin"
)

// TeamController handles team-related HTTP requests
type TeamController struct {
	repo TeamRepository
}

// NewTeamController creates a new team controller
func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100" example:"Lions"`
}

type UpdateTeamRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100" example:"Tigers"`
}

// requireOwnedTeam loads the team and checks it belongs to the caller.
func (tc *TeamController) requireOwnedTeam(c *gin.Context, teamID uint) *Team {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return nil
	}
	team, err := tc.repo.GetTeamByID(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return nil
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return nil
	}
	if team.CoachID != coachID {
		responses.Forbidden(c, "")
		return nil
	}
	return team
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// CreateTeam godoc
// @Summary      Create a team
// @Description  Creates a team owned by the authenticated coach. Names are stored lowercased.
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Param        team  body  CreateTeamRequest  true  "Team details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Router       /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	team := &Team{Name: req.Name, CoachID: coachID}
	if err := tc.repo.CreateTeam(team); err != nil {
		responses.InternalServerError(c, "Failed to create team")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created", team)
}

// GetTeams lists the caller's teams; with ?name= it becomes the point lookup
// used to resolve a team id from its (case-insensitive) name.
func (tc *TeamController) GetTeams(c *gin.Context) {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	if name := c.Query("name"); name != "" {
		team, err := tc.repo.GetTeamByName(name)
		if err != nil {
			responses.InternalServerError(c, "Failed to look up team")
			return
		}
		if team == nil || team.CoachID != coachID {
			responses.NotFound(c, "Team")
			return
		}
		responses.SendSuccess(c, http.StatusOK, "", []Team{*team})
		return
	}

	teams, err := tc.repo.GetTeamsByCoach(coachID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch teams")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", teams)
}

// GetTeamByID godoc
// @Summary      Get one team
// @Tags         Teams
// @Produce      json
// @Param        team_id  path  int  true  "Team ID"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	team := tc.requireOwnedTeam(c, teamID)
	if team == nil {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", team)
}

// UpdateTeam renames a team; the new name is normalized like on create.
func (tc *TeamController) UpdateTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	team := tc.requireOwnedTeam(c, teamID)
	if team == nil {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	team.Name = req.Name
	if err := tc.repo.UpdateTeam(team); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated", team)
}

// DeleteTeam removes a team and, through the cascade, its whole roster,
// objectives and trainings.
func (tc *TeamController) DeleteTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	if team := tc.requireOwnedTeam(c, teamID); team == nil {
		return
	}

	if err := tc.repo.DeleteTeam(teamID); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted", nil)
}
