package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nJurisch/equipment-pool/internal/app"
	"github.com/nJurisch/equipment-pool/internal/config"
	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/service"
	"github.com/nJurisch/equipment-pool/internal/store"
	"github.com/nJurisch/equipment-pool/internal/tui"
	"github.com/nJurisch/equipment-pool/internal/utils"
	"github.com/nJurisch/equipment-pool/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetAppConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	role := "pool"
	if cfg.ExportMode() {
		role = "export"
	}
	log := logger.NewFileLogger(role, cfg.LogFile, cfg.LogLevel)
	log.Info().
		Str("version", buildInfo.BuildVersion()).
		Str("commit", buildInfo.BuildCommit()).
		Msg("equipment pool starting")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, utils.NewUUIDGenerator(), utils.NewSystemClock(), log)

	var ui app.UI
	if !cfg.ExportMode() {
		ui = tui.New(services, cfg.Currency, buildInfo, log)
	}

	application, err := app.NewApp(cfg, services, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}

	if err = application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("run error")
		storages.Close()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
