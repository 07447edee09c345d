package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/vaughan-dsouza/godo/internal/auth"
	"github.com/vaughan-dsouza/godo/internal/config"
	"github.com/vaughan-dsouza/godo/internal/handlers"
	"github.com/vaughan-dsouza/godo/internal/store"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}
	if cfg.IsDefaultSecret() {
		log.Warn().Msg("SECRET_KEY not set, sessions are signed with the development default")
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := store.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	users := store.NewUserStore(db)
	todos := store.NewTodoStore(db)
	manager := auth.NewManager(users, cfg.SecretKey, cfg.SessionTTL, log)

	if err := seed(ctx, cfg, users, todos, manager, log); err != nil {
		log.Fatal().Err(err).Msg("seed data")
	}

	h := handlers.NewHandler(users, todos, manager, log)
	ah := &auth.Handlers{
		Manager:    manager,
		Users:      users,
		Log:        log,
		LoginLimit: handlers.LoginLimiter(),
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handlers.Routes(h, manager, ah, log),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
