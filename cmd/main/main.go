package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"

	"mixvision-service/internal/auth"
	"mixvision-service/internal/config"
	"mixvision-service/internal/session"
	serverhttp "mixvision-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	ctx := context.Background()

	var store auth.Store
	if cfg.FirestoreProject != "" {
		db, err := firestore.NewClientWithDatabase(ctx, cfg.FirestoreProject, cfg.FirestoreDatabase)
		if err != nil {
			logger.Fatal().Err(err).Msg("firestore")
		}
		defer db.Close()
		store = auth.NewFirestoreStore(db)
		logger.Info().Str("project", cfg.FirestoreProject).Msg("firestore conectado")
	} else {
		store = auth.NewMemoryStore()
		logger.Warn().Msg("FIRESTORE_PROJECT ausente; usando store em memória")
	}

	authSvc := auth.NewService(store)
	if err := authSvc.EnsureAdmin(ctx, cfg.AdminToken); err != nil {
		logger.Fatal().Err(err).Msg("admin padrão")
	}

	sessions := session.NewStore(cfg.SessionTTL)

	r := serverhttp.NewRouter(cfg, logger, authSvc, sessions)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("bye")
}
