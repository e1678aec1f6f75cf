package training

import (
	"errors"

	"github.com/courtside-app/courtside/pkg/watch"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrainingRepository defines the interface for training session operations
type TrainingRepository interface {
	// CreateTrainWithTasks inserts the training, its tasks and their join rows
	// in one transaction: a failure on any step rolls back everything.
	CreateTrainWithTasks(train *Train, tasks []TrainTask) error
	GetTrainByID(id uint) (*Train, error)
	GetTrainWithTasks(id uint) (*Train, error)
	GetTrainsByTeam(teamID uint) ([]Train, error)
	DeleteTrain(id uint) error

	AddTaskToTrain(trainID uint, task *TrainTask) error
	RemoveTaskFromTrain(trainID, taskID uint) error

	SaveDraft(draft *TrainingDraft) error
	GetDraft(coachID, teamID uint) (*TrainingDraft, error)
	DeleteDraft(coachID, teamID uint) error
}

type trainingRepository struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewTrainingRepository creates a new instance of TrainingRepository
func NewTrainingRepository(db *gorm.DB) TrainingRepository {
	return &trainingRepository{db: db, hub: watch.Default}
}

func (r *trainingRepository) CreateTrainWithTasks(train *Train, tasks []TrainTask) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(train).Error; err != nil {
			return err
		}
		for i := range tasks {
			if err := tx.Create(&tasks[i]).Error; err != nil {
				return err
			}
			join := &TrainCrossTrainTask{TrainID: train.ID, TrainTaskID: tasks[i].ID}
			if err := tx.Create(join).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	train.Tasks = tasks
	r.hub.Notify(watch.TableTrains, watch.OpInsert)
	if len(tasks) > 0 {
		r.hub.Notify(watch.TableTrainTasks, watch.OpInsert)
	}
	return nil
}

func (r *trainingRepository) GetTrainByID(id uint) (*Train, error) {
	var train Train
	if err := r.db.First(&train, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &train, nil
}

// GetTrainWithTasks returns the training with its task list attached, using a
// join on the cross table rather than one query per task.
func (r *trainingRepository) GetTrainWithTasks(id uint) (*Train, error) {
	train, err := r.GetTrainByID(id)
	if err != nil || train == nil {
		return train, err
	}

	var tasks []TrainTask
	err = r.db.
		Joins("JOIN train_cross_train_tasks ON train_cross_train_tasks.train_task_id = train_tasks.id").
		Where("train_cross_train_tasks.train_id = ?", id).
		Order("train_tasks.id asc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	train.Tasks = tasks
	return train, nil
}

func (r *trainingRepository) GetTrainsByTeam(teamID uint) ([]Train, error) {
	var trains []Train
	if err := r.db.Where("team_id = ?", teamID).Order("date desc").Find(&trains).Error; err != nil {
		return nil, err
	}
	return trains, nil
}

// DeleteTrain removes the session; join rows cascade. Tasks themselves are
// kept, they may be shared by other sessions.
func (r *trainingRepository) DeleteTrain(id uint) error {
	if err := r.db.Unscoped().Delete(&Train{}, id).Error; err != nil {
		return err
	}
	r.hub.Notify(watch.TableTrains, watch.OpDelete)
	return nil
}

// AddTaskToTrain inserts the task then its join row, returning the generated
// task key on the model. Both inserts share a transaction.
func (r *trainingRepository) AddTaskToTrain(trainID uint, task *TrainTask) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return tx.Create(&TrainCrossTrainTask{TrainID: trainID, TrainTaskID: task.ID}).Error
	})
	if err != nil {
		return err
	}
	r.hub.Notify(watch.TableTrainTasks, watch.OpInsert)
	return nil
}

func (r *trainingRepository) RemoveTaskFromTrain(trainID, taskID uint) error {
	err := r.db.
		Where("train_id = ? AND train_task_id = ?", trainID, taskID).
		Delete(&TrainCrossTrainTask{}).Error
	if err != nil {
		return err
	}
	r.hub.Notify(watch.TableTrainTasks, watch.OpDelete)
	return nil
}

// SaveDraft upserts the wizard state for (coach, team).
func (r *trainingRepository) SaveDraft(draft *TrainingDraft) error {
	if draft.ID != 0 {
		return r.db.Save(draft).Error
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "coach_id"}, {Name: "team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"step", "date", "hours", "minutes", "concepts", "tasks", "updated_at",
		}),
	}).Create(draft).Error
}

func (r *trainingRepository) GetDraft(coachID, teamID uint) (*TrainingDraft, error) {
	var draft TrainingDraft
	if err := r.db.Where("coach_id = ? AND team_id = ?", coachID, teamID).First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &draft, nil
}

func (r *trainingRepository) DeleteDraft(coachID, teamID uint) error {
	return r.db.Unscoped().
		Where("coach_id = ? AND team_id = ?", coachID, teamID).
		Delete(&TrainingDraft{}).Error
}
