// Command tracker-api serves the time tracking resources as a read-only REST
// API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log.Logger = newLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storers, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot open storage")
	}
	defer closeStorage()

	h, err := newHandler(cfg, storers)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid API configuration")
	}
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: h,
	}
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Str("storage", cfg.Storage.Driver).Msg("Serving API")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
