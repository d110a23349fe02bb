package config

import (
	"log"
	"os"

	"github.com/clipvault/clipvault/src/CVApi/data"
	"gorm.io/gorm"
)

type Config struct {
	Token    string
	MySQLDSN string
	RedisURL string
}

func Load(db *gorm.DB) Config {
	// Load settings from database
	if err := data.LoadSettings(db); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	// Get values from database with env fallbacks
	discordToken := data.GetSetting("discord_token")
	if discordToken == "" {
		discordToken = os.Getenv("DISCORD_TOKEN")
	}

	return Config{
		Token:    discordToken,
		MySQLDSN: getenv("MYSQL_DSN", "clipvault:clipvault@tcp(127.0.0.1:3306)/clipvault"),
		RedisURL: getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
