package config

import (
	"log"
	"os"

	"github.com/clipvault/clipvault/src/CVApi/data"
	"gorm.io/gorm"
)

type Config struct {
	Port            string
	MySQLDSN        string
	RedisURL        string
	JWTSecret       string
	DiscordClientID string
	FrontendURL     string
}

func Load(db *gorm.DB) Config {
	// Load settings from database
	if err := data.LoadSettings(db); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	// Get values from database with env fallbacks
	clientID := data.GetSetting("discord_client_id")
	if clientID == "" {
		clientID = os.Getenv("DISCORD_CLIENT_ID")
	}

	frontendURL := data.GetSetting("frontend_url")
	if frontendURL == "" {
		frontendURL = getenv("FRONTEND_URL", "http://localhost:3000")
	}

	jwtSecret := data.GetSetting("jwt_secret")
	if jwtSecret == "" {
		jwtSecret = os.Getenv("JWT_SECRET")
	}
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET is not set")
	}

	return Config{
		Port:            getenv("PORT", "8080"),
		MySQLDSN:        getenv("MYSQL_DSN", "clipvault:clipvault@tcp(127.0.0.1:3306)/clipvault"),
		RedisURL:        getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:       jwtSecret,
		DiscordClientID: clientID,
		FrontendURL:     frontendURL,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
