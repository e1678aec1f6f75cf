package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/courtside-app/courtside/config"
	"github.com/courtside-app/courtside/internal/auth"
	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/internal/objective"
	"github.com/courtside-app/courtside/internal/player"
	"github.com/courtside-app/courtside/internal/rating"
	"github.com/courtside-app/courtside/internal/team"
	"github.com/courtside-app/courtside/internal/training"
	"github.com/courtside-app/courtside/pkg/watch"
)

func SetupRoutes() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	cfg := config.GetConfig()
	db := config.DB

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>Courtside</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>Courtside 🏀</h1>
					<p><a href="/swagger/index.html">API docs</a></p>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, cfg)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.AccessTokenSecret, db))
	{
		team.TeamRoutes(protected, db)
		player.PlayerRoutes(protected, db)
		objective.ObjectiveRoutes(protected, db)
		training.TrainingRoutes(protected, db)
		rating.RatingRoutes(protected, db)

		// Change stream: table-level invalidation events as SSE. Clients
		// re-query whatever they are displaying when a relevant table changes.
		protected.GET("/stream", watch.StreamHandler(watch.Default))
	}

	return r
}
