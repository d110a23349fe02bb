package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clipvault/clipvault/src/CVApi/data"
	"github.com/clipvault/clipvault/src/CVBot/bot"
	"github.com/clipvault/clipvault/src/CVBot/config"
)

func main() {
	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "clipvault:clipvault@tcp(127.0.0.1:3306)/clipvault"
	}
	db := data.MustMySQL(mysqlDSN)

	cfg := config.Load(db)
	if cfg.Token == "" {
		log.Fatalf("discord token is not set")
	}
	rdb := data.MustRedis(cfg.RedisURL)

	b, err := bot.New(bot.Config{Token: cfg.Token, DB: db, Redis: rdb})
	if err != nil {
		log.Fatalf("bot: %v", err)
	}
	if err := b.Start(); err != nil {
		log.Fatalf("bot: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	b.Stop()
}
