package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/adapters/http"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/adapters/signal"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/app"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/catalog"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/config"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/core"
	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/identity"
)

func main() {
	ctx, cancel := ossignal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	store, err := catalog.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog")
	}
	defer store.Close()

	verifier := identity.NewVerifier(cfg.Secret, cfg.TokenTTL)
	presence := core.NewPresence()
	registry := app.NewRegistry()
	coord := app.NewCoordinator(verifier, store, presence, registry)
	ctl := signal.NewController(coord, cfg.ReadLimit)

	r := router.SetupRouter(ctx, cfg, router.Deps{
		Catalog:  store,
		Verifier: verifier,
		Coord:    coord,
		Signal:   ctl,
	})
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Chit-Chat server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
