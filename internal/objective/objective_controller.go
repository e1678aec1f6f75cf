package objective

import (
	"net/http"
	"strconv"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/courtside-app/courtside/pkg/responses"
	"github.com/courtside-app/courtside/pkg/validator"
	"github.com/gin-gonic/gin"
)

// ObjectiveController handles team objective HTTP requests
type ObjectiveController struct {
	repo     ObjectiveRepository
	teamRepo team.TeamRepository
}

func NewObjectiveController(repo ObjectiveRepository, teamRepo team.TeamRepository) *ObjectiveController {
	return &ObjectiveController{repo: repo, teamRepo: teamRepo}
}

type CreateObjectiveRequest struct {
	Description string `json:"description" binding:"required,min=1,max=500" example:"Improve pick and roll defense"`
}

type UpdateObjectiveRequest struct {
	Description *string `json:"description" binding:"omitempty,min=1,max=500"`
	IsFinish    *bool   `json:"is_finish"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		responses.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func (oc *ObjectiveController) requireOwnedTeam(c *gin.Context, teamID uint) bool {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return false
	}
	t, err := oc.teamRepo.GetTeamByID(teamID)
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

// requireOwnedObjective loads the objective and checks team ownership.
func (oc *ObjectiveController) requireOwnedObjective(c *gin.Context, id uint) *TeamObjective {
	objective, err := oc.repo.GetObjectiveByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch objective")
		return nil
	}
	if objective == nil {
		responses.NotFound(c, "Objective")
		return nil
	}
	if !oc.requireOwnedTeam(c, objective.TeamID) {
		return nil
	}
	return objective
}

// CreateObjective godoc
// @Summary      Add an objective to a team
// @Tags         Objectives
// @Accept       json
// @Produce      json
// @Param        team_id    path  int  true  "Team ID"
// @Param        objective  body  CreateObjectiveRequest  true  "Objective"
// @Success      201 {object} responses.SuccessResponse
// @Router       /teams/{team_id}/objectives [post]
func (oc *ObjectiveController) CreateObjective(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	if !oc.requireOwnedTeam(c, teamID) {
		return
	}

	var req CreateObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	objective := &TeamObjective{Description: req.Description, TeamID: teamID}
	if err := oc.repo.CreateObjective(objective); err != nil {
		responses.InternalServerError(c, "Failed to create objective")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Objective created", objective)
}

func (oc *ObjectiveController) GetObjectives(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	if !oc.requireOwnedTeam(c, teamID) {
		return
	}

	objectives, err := oc.repo.GetObjectivesByTeam(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch objectives")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", objectives)
}

// UpdateObjective applies a partial update. The repository treats a vanished
// row as a no-op; the HTTP layer reports it as 404 so callers are not left
// guessing.
func (oc *ObjectiveController) UpdateObjective(c *gin.Context) {
	objectiveID, ok := parseIDParam(c, "objective_id")
	if !ok {
		return
	}
	if oc.requireOwnedObjective(c, objectiveID) == nil {
		return
	}

	var req UpdateObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	found, err := oc.repo.UpdateObjective(objectiveID, req.Description, req.IsFinish)
	if err != nil {
		responses.InternalServerError(c, "Failed to update objective")
		return
	}
	if !found {
		responses.NotFound(c, "Objective")
		return
	}

	updated, err := oc.repo.GetObjectiveByID(objectiveID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch objective")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Objective updated", updated)
}

// ToggleObjective flips is_finish.
func (oc *ObjectiveController) ToggleObjective(c *gin.Context) {
	objectiveID, ok := parseIDParam(c, "objective_id")
	if !ok {
		return
	}
	if oc.requireOwnedObjective(c, objectiveID) == nil {
		return
	}

	found, err := oc.repo.ToggleObjective(objectiveID)
	if err != nil {
		responses.InternalServerError(c, "Failed to toggle objective")
		return
	}
	if !found {
		responses.NotFound(c, "Objective")
		return
	}

	updated, err := oc.repo.GetObjectiveByID(objectiveID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch objective")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Objective toggled", updated)
}

func (oc *ObjectiveController) DeleteObjective(c *gin.Context) {
	objectiveID, ok := parseIDParam(c, "objective_id")
	if !ok {
		return
	}
	if oc.requireOwnedObjective(c, objectiveID) == nil {
		return
	}

	if err := oc.repo.DeleteObjective(objectiveID); err != nil {
		responses.InternalServerError(c, "Failed to delete objective")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Objective deleted", nil)
}
