package training

import (
	"github.com/courtside-app/courtside/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TrainingRoutes sets up training session and wizard routes. Expects an
// authenticated group.
func TrainingRoutes(router *gin.RouterGroup, db *gorm.DB) {
	trainingRepo := NewTrainingRepository(db)
	teamRepo := team.NewTeamRepository(db)
	trainingController := NewTrainingController(trainingRepo, teamRepo)

	router.POST("/teams/:team_id/trainings", trainingController.CreateTraining)
	router.GET("/teams/:team_id/trainings", trainingController.GetTrainings)

	router.GET("/trainings/:training_id", trainingController.GetTraining)
	router.DELETE("/trainings/:training_id", trainingController.DeleteTraining)
	router.POST("/trainings/:training_id/tasks", trainingController.AddTask)
	router.DELETE("/trainings/:training_id/tasks/:task_id", trainingController.RemoveTask)

	// Create-training wizard
	router.GET("/teams/:team_id/training-draft", trainingController.GetDraft)
	router.PUT("/teams/:team_id/training-draft", trainingController.UpdateDraft)
	router.POST("/teams/:team_id/training-draft/next", trainingController.NextStep)
	router.POST("/teams/:team_id/training-draft/previous", trainingController.PreviousStep)
	router.POST("/teams/:team_id/training-draft/save", trainingController.SaveDraft)
	router.DELETE("/teams/:team_id/training-draft", trainingController.DeleteDraft)
}
