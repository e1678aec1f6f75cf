package main

import (
	"log"

	"github.com/courtside-app/courtside/config"
	_ "github.com/courtside-app/courtside/docs"
	"github.com/courtside-app/courtside/internal/coach"
	"github.com/courtside-app/courtside/internal/objective"
	"github.com/courtside-app/courtside/internal/player"
	"github.com/courtside-app/courtside/internal/rating"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/courtside-app/courtside/internal/training"
	"github.com/courtside-app/courtside/routes"
)

// @title Courtside REST API
// @version 1.0
// @description Backend for the Courtside basketball coaching app 🏀
// @host localhost:8088
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&coach.Coach{}, &coach.RefreshToken{},
		&team.Team{}, &player.Player{},
		&objective.TeamObjective{},
		&training.Train{}, &training.TrainTask{}, &training.TrainCrossTrainTask{},
		&training.TrainingDraft{},
		&rating.AbilityName{}, &rating.AbilityRecord{}, &rating.RatingSession{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes()

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
