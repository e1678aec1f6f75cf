package objective

import (
	"github.com/courtside-app/courtside/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ObjectiveRoutes sets up team objective routes. Expects an authenticated group.
func ObjectiveRoutes(router *gin.RouterGroup, db *gorm.DB) {
	objectiveRepo := NewObjectiveRepository(db)
	teamRepo := team.NewTeamRepository(db)
	objectiveController := NewObjectiveController(objectiveRepo, teamRepo)

	router.POST("/teams/:team_id/objectives", objectiveController.CreateObjective)
	router.GET("/teams/:team_id/objectives", objectiveController.GetObjectives)

	router.PUT("/objectives/:objective_id", objectiveController.UpdateObjective)
	router.POST("/objectives/:objective_id/toggle", objectiveController.ToggleObjective)
	router.DELETE("/objectives/:objective_id", objectiveController.DeleteObjective)
}
