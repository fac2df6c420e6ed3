package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rajatkhanna/invoice-api/internal/config"
	"github.com/rajatkhanna/invoice-api/internal/db"
	"github.com/rajatkhanna/invoice-api/internal/logger"
	"github.com/rajatkhanna/invoice-api/internal/logos"
	"github.com/rajatkhanna/invoice-api/internal/server"
)

var migrateOnly = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log := logger.WithComponent("server")

	conn, err := db.ConnectAndMigrate(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if *migrateOnly {
		log.Info().Msg("migrations completed; exiting as requested")
		return
	}

	store, err := logos.NewStore(filepath.Join(cfg.DataDir, "logos"))
	if err != nil {
		log.Fatal().Err(err).Msg("logo store setup failed")
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(conn, store)}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
