package player

import (
	"github.com/courtside-app/courtside/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PlayerRoutes sets up roster routes. Expects an authenticated group.
func PlayerRoutes(router *gin.RouterGroup, db *gorm.DB) {
	playerRepo := NewPlayerRepository(db)
	teamRepo := team.NewTeamRepository(db)
	playerController := NewPlayerController(playerRepo, teamRepo)

	router.POST("/teams/:team_id/players", playerController.InsertPlayer)
	router.GET("/teams/:team_id/players", playerController.GetRoster)
	router.GET("/teams/:team_id/jersey-check", playerController.CheckJerseyNumber)

	router.GET("/players/:player_id", playerController.GetPlayerByID)
	router.PUT("/players/:player_id", playerController.UpdatePlayer)
	router.DELETE("/players/:player_id", playerController.DeletePlayer)
}
