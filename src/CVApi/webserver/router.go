package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/clipvault/clipvault/src/CVApi/config"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	clipsH := NewClips(db)
	purgeH := NewPurge(db, rdb)
	installH := NewInstall(db, cfg.DiscordClientID)
	scansH := NewScans(db)

	limiter := NewRateLimiter(60, time.Minute)

	v1 := r.Group("/v1")
	{
		// Discord redirects here; no session exists yet
		v1.GET("/install/callback", installH.Callback)

		secured := v1.Use(JWTMiddleware([]byte(cfg.JWTSecret)), RateLimitMiddleware(limiter))
		secured.GET("/guilds/:id/clips", clipsH.List)
		secured.PATCH("/clips/:id/title", clipsH.UpdateTitle)
		secured.DELETE("/clips/:id", clipsH.Delete)
		secured.GET("/guilds/:id/scans", scansH.List)
		secured.POST("/guilds/:id/channels/:cid/purge", purgeH.Queue)
		secured.POST("/install/begin", installH.Begin)
	}
}
