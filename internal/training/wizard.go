package training

import (
	"database/sql/driver"
	"errors"

	"github.com/courtside-app/courtside/internal/coach"
	"github.com/courtside-app/courtside/internal/models"
	"github.com/courtside-app/courtside/internal/team"
	"gorm.io/gorm"
)

// WizardStep is one of the four ordered steps of the create-training flow.
type WizardStep int

const (
	StepBasicInfo WizardStep = iota
	StepConcepts
	StepTasks
	StepReview
)

var stepNames = [...]string{"basic_info", "concepts", "tasks", "review"}

func (s WizardStep) String() string {
	if s < StepBasicInfo || s > StepReview {
		return "unknown"
	}
	return stepNames[s]
}

var (
	ErrDateRequired     = errors.New("a training date must be selected before continuing")
	ErrTeamRequired     = errors.New("a team must be selected before continuing")
	ErrConceptsRequired = errors.New("at least one concept is required before continuing")
	ErrNotAtReview      = errors.New("the training can only be saved from the review step")
)

// TaskDraft is an unsaved task edited inside the wizard.
type TaskDraft struct {
	Name            string   `json:"name"`
	NumberOfPlayers int      `json:"number_of_players"`
	Concept         string   `json:"concept"`
	Description     string   `json:"description"`
	Variables       []string `json:"variables,omitempty"`
}

// TaskDraftList is a JSON column of task drafts.
type TaskDraftList []TaskDraft

func (l TaskDraftList) Value() (driver.Value, error) {
	if l == nil {
		l = TaskDraftList{}
	}
	return models.JSONColumnValue(l)
}

func (l *TaskDraftList) Scan(src interface{}) error {
	return models.JSONColumnScan(src, l)
}

// TrainingDraft holds the wizard's transient state, persisted so the flow
// survives a process restart. One draft per (coach, team).
type TrainingDraft struct {
	gorm.Model
	CoachID  uint               `gorm:"not null;uniqueIndex:idx_drafts_coach_team" json:"coach_id"`
	TeamID   uint               `gorm:"not null;uniqueIndex:idx_drafts_coach_team" json:"team_id"`
	Step     WizardStep         `gorm:"not null;default:0" json:"step"`
	Date     *int64             `json:"date"` // epoch millis, nil until chosen
	Hours    int                `json:"hours"`
	Minutes  int                `json:"minutes"`
	Concepts models.StringSlice `gorm:"type:text" json:"concepts"`
	Tasks    TaskDraftList      `gorm:"type:text" json:"tasks"`

	Coach coach.Coach `gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE" json:"-"`
	Team  team.Team   `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

// gate returns the validation error blocking departure from the current step,
// if any. Only BASIC_INFO and CONCEPTS gate.
func (d *TrainingDraft) gate() error {
	switch d.Step {
	case StepBasicInfo:
		if d.Date == nil {
			return ErrDateRequired
		}
		if d.TeamID == 0 {
			return ErrTeamRequired
		}
	case StepConcepts:
		if len(d.Concepts) == 0 {
			return ErrConceptsRequired
		}
	}
	return nil
}

// NextStep advances the wizard if the current step's gate passes. At the last
// step it is a no-op.
func (d *TrainingDraft) NextStep() error {
	if d.Step >= StepReview {
		return nil // clamp at the end
	}
	if err := d.gate(); err != nil {
		return err
	}
	d.Step++
	return nil
}

// PreviousStep moves backward, clamping at the first step. Going back never
// validates.
func (d *TrainingDraft) PreviousStep() {
	if d.Step > StepBasicInfo {
		d.Step--
	}
}

// DurationHours converts the hours+minutes inputs to the stored float.
func (d *TrainingDraft) DurationHours() float64 {
	return float64(d.Hours) + float64(d.Minutes)/60.0
}

// BuildTrain materializes the drafted training and tasks for the final save.
// Only callable from the review step.
func (d *TrainingDraft) BuildTrain() (*Train, []TrainTask, error) {
	if d.Step != StepReview {
		return nil, nil, ErrNotAtReview
	}
	if d.Date == nil {
		return nil, nil, ErrDateRequired
	}

	train := &Train{
		Date:     *d.Date,
		Duration: d.DurationHours(),
		Concepts: append(models.StringSlice{}, d.Concepts...),
		TeamID:   d.TeamID,
	}
	tasks := make([]TrainTask, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		tasks = append(tasks, TrainTask{
			Name:            t.Name,
			NumberOfPlayers: t.NumberOfPlayers,
			Concept:         t.Concept,
			Description:     t.Description,
			Variables:       t.Variables,
		})
	}
	return train, tasks, nil
}
