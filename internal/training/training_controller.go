package training

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/models"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/courtside-app/courtside/pkg/responses"
	"github.com/courtside-app/courtside/pkg/validator"
	"github.com/gin-gonic/gin"
)

// TrainingController handles training session and wizard HTTP requests
type TrainingController struct {
	repo     TrainingRepository
	teamRepo team.TeamRepository
}

func NewTrainingController(repo TrainingRepository, teamRepo team.TeamRepository) *TrainingController {
	return &TrainingController{repo: repo, teamRepo: teamRepo}
}

// --- DTOs for requests ---

type TaskRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=200"`
	NumberOfPlayers int      `json:"number_of_players" binding:"gte=0"`
	Concept         string   `json:"concept" binding:"max=200"`
	Description     string   `json:"description" binding:"max=2000"`
	Variables       []string `json:"variables"`
}

type CreateTrainingRequest struct {
	Date     int64         `json:"date" binding:"required,gt=0"` // epoch millis
	Duration float64       `json:"duration" binding:"gte=0"`     // hours
	Concepts []string      `json:"concepts" binding:"required,min=1"`
	Tasks    []TaskRequest `json:"tasks"`
}

type UpdateDraftRequest struct {
	Date     *int64         `json:"date"`
	Hours    *int           `json:"hours" binding:"omitempty,gte=0"`
	Minutes  *int           `json:"minutes" binding:"omitempty,gte=0,lt=60"`
	Concepts *[]string      `json:"concepts"`
	Tasks    *[]TaskRequest `json:"tasks"`
}

func taskFromRequest(t TaskRequest) TrainTask {
	return TrainTask{
		Name:            t.Name,
		NumberOfPlayers: t.NumberOfPlayers,
		Concept:         t.Concept,
		Description:     t.Description,
		Variables:       t.Variables,
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

func (tc *TrainingController) requireOwnedTeam(c *gin.Context, teamID uint) (uint, bool) {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return 0, false
	}
	t, err := tc.teamRepo.GetTeamByID(teamID)
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

func (tc *TrainingController) requireOwnedTrain(c *gin.Context, trainID uint) *Train {
	train, err := tc.repo.GetTrainByID(trainID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch training")
		return nil
	}
	if train == nil {
		responses.NotFound(c, "Training")
		return nil
	}
	if _, ok := tc.requireOwnedTeam(c, train.TeamID); !ok {
		return nil
	}
	return train
}

// --- Training handlers ---

// CreateTraining godoc
// @Summary      Create a training session with its tasks
// @Description  Inserts the session, every task and their links in one transaction.
// @Tags         Trainings
// @Accept       json
// @Produce      json
// @Param        team_id   path  int  true  "Team ID"
// @Param        training  body  CreateTrainingRequest  true  "Training details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Router       /teams/{team_id}/trainings [post]
func (tc *TrainingController) CreateTraining(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	if _, ok := tc.requireOwnedTeam(c, teamID); !ok {
		return
	}

	var req CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	train := &Train{
		Date:     req.Date,
		Duration: req.Duration,
		Concepts: req.Concepts,
		TeamID:   teamID,
	}
	tasks := make([]TrainTask, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		tasks = append(tasks, taskFromRequest(t))
	}

	if err := tc.repo.CreateTrainWithTasks(train, tasks); err != nil {
		responses.InternalServerError(c, "Failed to create training")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Training created", train)
}

func (tc *TrainingController) GetTrainings(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	if _, ok := tc.requireOwnedTeam(c, teamID); !ok {
		return
	}

	trains, err := tc.repo.GetTrainsByTeam(teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch trainings")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", trains)
}

// GetTraining returns the session with its task list embedded.
func (tc *TrainingController) GetTraining(c *gin.Context) {
	trainID, ok := parseIDParam(c, "training_id")
	if !ok {
		return
	}
	if tc.requireOwnedTrain(c, trainID) == nil {
		return
	}

	train, err := tc.repo.GetTrainWithTasks(trainID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch training")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", train)
}

func (tc *TrainingController) DeleteTraining(c *gin.Context) {
	trainID, ok := parseIDParam(c, "training_id")
	if !ok {
		return
	}
	if tc.requireOwnedTrain(c, trainID) == nil {
		return
	}

	if err := tc.repo.DeleteTrain(trainID); err != nil {
		responses.InternalServerError(c, "Failed to delete training")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Training deleted", nil)
}

func (tc *TrainingController) AddTask(c *gin.Context) {
	trainID, ok := parseIDParam(c, "training_id")
	if !ok {
		return
	}
	if tc.requireOwnedTrain(c, trainID) == nil {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	task := taskFromRequest(req)
	if err := tc.repo.AddTaskToTrain(trainID, &task); err != nil {
		responses.InternalServerError(c, "Failed to add task")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Task added", task)
}

func (tc *TrainingController) RemoveTask(c *gin.Context) {
	trainID, ok := parseIDParam(c, "training_id")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}
	if tc.requireOwnedTrain(c, trainID) == nil {
		return
	}

	if err := tc.repo.RemoveTaskFromTrain(trainID, taskID); err != nil {
		responses.InternalServerError(c, "Failed to remove task")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Task removed", nil)
}

// --- Wizard handlers ---

// GetDraft returns the wizard state for (coach, team), creating a fresh draft
// at the first step if none exists yet.
func (tc *TrainingController) GetDraft(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	coachID, ok := tc.requireOwnedTeam(c, teamID)
	if !ok {
		return
	}

	draft, err := tc.repo.GetDraft(coachID, teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch draft")
		return
	}
	if draft == nil {
		draft = &TrainingDraft{CoachID: coachID, TeamID: teamID, Step: StepBasicInfo}
		if err := tc.repo.SaveDraft(draft); err != nil {
			responses.InternalServerError(c, "Failed to create draft")
			return
		}
	}
	responses.SendSuccess(c, http.StatusOK, "", draft)
}

// UpdateDraft overwrites the provided state fields without moving the step.
func (tc *TrainingController) UpdateDraft(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	coachID, ok := tc.requireOwnedTeam(c, teamID)
	if !ok {
		return
	}

	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	draft, err := tc.repo.GetDraft(coachID, teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch draft")
		return
	}
	if draft == nil {
		draft = &TrainingDraft{CoachID: coachID, TeamID: teamID, Step: StepBasicInfo}
	}

	if req.Date != nil {
		draft.Date = req.Date
	}
	if req.Hours != nil {
		draft.Hours = *req.Hours
	}
	if req.Minutes != nil {
		draft.Minutes = *req.Minutes
	}
	if req.Concepts != nil {
		draft.Concepts = models.StringSlice(*req.Concepts)
	}
	if req.Tasks != nil {
		drafts := make(TaskDraftList, 0, len(*req.Tasks))
		for _, t := range *req.Tasks {
			drafts = append(drafts, TaskDraft{
				Name:            t.Name,
				NumberOfPlayers: t.NumberOfPlayers,
				Concept:         t.Concept,
				Description:     t.Description,
				Variables:       t.Variables,
			})
		}
		draft.Tasks = drafts
	}

	if err := tc.repo.SaveDraft(draft); err != nil {
		responses.InternalServerError(c, "Failed to save draft")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Draft saved", draft)
}

// stepDraft advances or rewinds the wizard and persists the new position.
func (tc *TrainingController) stepDraft(c *gin.Context, forward bool) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	coachID, ok := tc.requireOwnedTeam(c, teamID)
	if !ok {
		return
	}

	draft, err := tc.repo.GetDraft(coachID, teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch draft")
		return
	}
	if draft == nil {
		responses.NotFound(c, "Draft")
		return
	}

	if forward {
		if err := draft.NextStep(); err != nil {
			responses.BadRequest(c, err.Error())
			return
		}
	} else {
		draft.PreviousStep()
	}

	if err := tc.repo.SaveDraft(draft); err != nil {
		responses.InternalServerError(c, "Failed to save draft")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", draft)
}

func (tc *TrainingController) NextStep(c *gin.Context)     { tc.stepDraft(c, true) }
func (tc *TrainingController) PreviousStep(c *gin.Context) { tc.stepDraft(c, false) }

// SaveDraft turns the reviewed draft into a persisted training. The insert of
// the session, its tasks and their joins is atomic; the draft is discarded
// only after the transaction commits.
func (tc *TrainingController) SaveDraft(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	coachID, ok := tc.requireOwnedTeam(c, teamID)
	if !ok {
		return
	}

	draft, err := tc.repo.GetDraft(coachID, teamID)
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch draft")
		return
	}
	if draft == nil {
		responses.NotFound(c, "Draft")
		return
	}

	train, tasks, err := draft.BuildTrain()
	if err != nil {
		if errors.Is(err, ErrNotAtReview) || errors.Is(err, ErrDateRequired) {
			responses.BadRequest(c, err.Error())
			return
		}
		responses.InternalServerError(c, "Failed to build training")
		return
	}

	if err := tc.repo.CreateTrainWithTasks(train, tasks); err != nil {
		responses.InternalServerError(c, "Failed to save training")
		return
	}
	if err := tc.repo.DeleteDraft(coachID, teamID); err != nil {
		responses.InternalServerError(c, "Training saved but draft cleanup failed")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Training created", train)
}

// DeleteDraft cancels the wizard.
func (tc *TrainingController) DeleteDraft(c *gin.Context) {
	teamID, ok := parseIDParam(c, "team_id")
	if !ok {
		return
	}
	coachID, ok := tc.requireOwnedTeam(c, teamID)
	if !ok {
		return
	}

	if err := tc.repo.DeleteDraft(coachID, teamID); err != nil {
		responses.InternalServerError(c, "Failed to delete draft")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Draft discarded", nil)
}
