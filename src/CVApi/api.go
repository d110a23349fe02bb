package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clipvault/clipvault/src/CVApi/config"
	"github.com/clipvault/clipvault/src/CVApi/data"
	"github.com/clipvault/clipvault/src/CVApi/intents"
	"github.com/clipvault/clipvault/src/CVApi/types"
	"github.com/clipvault/clipvault/src/CVApi/webserver"
)

func main() {
	// Connect to database first
	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "clipvault:clipvault@tcp(127.0.0.1:3306)/clipvault"
	}
	db := data.MustMySQL(mysqlDSN)

	if err := db.AutoMigrate(
		&types.User{}, &types.Guild{}, &types.Channel{}, &types.Message{},
		&types.Clip{}, &types.ScanStatus{}, &types.InstallIntent{}, &types.Setting{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Load config with database
	cfg := config.Load(db)
	rdb := data.MustRedis(cfg.RedisURL)

	ctx, cancel := context.WithCancel(context.Background())

	// Sweep abandoned install intents
	go func() {
		store := intents.NewStore(db)
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := store.PurgeExpired(ctx); err != nil {
					log.Printf("intent cleanup: %v", err)
				} else if n > 0 {
					log.Printf("intent cleanup: removed %d expired", n)
				}
			}
		}
	}()

	router := webserver.New(cfg, db, rdb)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	log.Printf("ClipVault API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	cancel()
	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
