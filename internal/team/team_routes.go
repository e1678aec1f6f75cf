package team

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRoutes sets up all team-related routes. The group is expected to be
// behind the auth middleware already.
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB) {
	teamRepo := NewTeamRepository(db)
	teamController := NewTeamController(teamRepo)

	router.POST("/teams", teamController.CreateTeam)
	router.GET("/teams", teamController.GetTeams)
	router.GET("/teams/:team_id", teamController.GetTeamByID)
	router.PUT("/teams/:team_id", teamController.UpdateTeam)
	router.DELETE("/teams/:team_id", teamController.DeleteTeam)
}
