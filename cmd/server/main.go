package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dsdgdxxx/grok2api/internal/config"
	handler "github.com/dsdgdxxx/grok2api/internal/handler/http"
	"github.com/dsdgdxxx/grok2api/internal/logger"
	"github.com/dsdgdxxx/grok2api/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("grok2api")

	boot, err := config.LoadBootstrap()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	var backend config.Backend
	if boot.StorageDSN != "" {
		db, err := store.NewConfigDB(ctx, boot.StorageDSN, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating config storage")
		}
		defer db.Close()
		backend = db
	}

	resolver, err := config.New(ctx, boot.SettingsPath, backend, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving configuration")
	}

	if level := resolver.Global().String("log_level"); level != "" {
		logger.SetLevel(level)
	}

	h := handler.NewHandler(resolver, log)

	log.Info().Str("address", boot.ListenAddress).Msg("admin api listening")
	if err := http.ListenAndServe(boot.ListenAddress, h.Init()); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
