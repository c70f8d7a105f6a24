package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/distfind/distmat/config"
	"github.com/distfind/distmat/datastore"
	"github.com/distfind/distmat/diskstore"
	"github.com/distfind/distmat/httpapi"
	"github.com/distfind/distmat/matcache"
)

// ---------------------------

func setupLogging(cfg config.ConfigMap) {
	if cfg.PrettyLogOutput {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	// ---------------------------
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Interface("config", cfg).Msg("Environment config")
	}
	// ---------------------------
	log.Debug().Msg("Debug mode enabled")
}

// ---------------------------

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	setupLogging(cfg)
	log.Info().Str("version", "0.1.0").Msg("Starting distmat")
	// ---------------------------
	// Setup dataset store
	datasets, err := datastore.Open(cfg.RootDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open dataset store")
	}
	// ---------------------------
	// Setup matrix cache
	cacheStore, err := diskstore.Open(cfg.CachePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache store")
	}
	log.Info().Str("path", cacheStore.Path()).Msg("Matrix cache opened")
	cache, err := matcache.New(cacheStore)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create matrix cache")
	}
	// ---------------------------
	httpServer := httpapi.RunHTTPServer(cfg, datasets, cache)
	// ---------------------------
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server forced to shut")
	}
	cancel()
	// ---------------------------
	// We don't timeout here because we don't want to lose data
	if err := cacheStore.Close(); err != nil {
		log.Error().Err(err).Msg("Cache store did not close gracefully")
	}
	if err := datasets.Close(); err != nil {
		log.Error().Err(err).Msg("Dataset store did not close gracefully")
	}
}
