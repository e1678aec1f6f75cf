package rating

import (
	"github.com/courtside-app/courtside/internal/player"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RatingRoutes sets up ability/rating routes. Expects an authenticated group.
func RatingRoutes(router *gin.RouterGroup, db *gorm.DB) {
	ratingRepo := NewRatingRepository(db)
	playerRepo := player.NewPlayerRepository(db)
	teamRepo := team.NewTeamRepository(db)
	ratingController := NewRatingController(ratingRepo, playerRepo, teamRepo)

	router.POST("/abilities", ratingController.CreateAbility)
	router.GET("/abilities", ratingController.GetAbilities)

	router.POST("/players/:player_id/ratings", ratingController.AddRecord)
	router.GET("/players/:player_id/ratings", ratingController.GetHistory)
	router.GET("/players/:player_id/ratings/averages", ratingController.GetAverages)

	// Sequential per-ability collection flow
	router.POST("/teams/:team_id/rating-sessions", ratingController.StartSession)
	router.GET("/teams/:team_id/rating-sessions/current", ratingController.GetActiveSession)
	router.POST("/rating-sessions/:session_id/ratings", ratingController.SetSessionRating)
	router.POST("/rating-sessions/:session_id/next", ratingController.NextAbility)
	router.POST("/rating-sessions/:session_id/previous", ratingController.PreviousAbility)
}
