// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app runs one invocation of the equipment-pool binary: either the
// interactive terminal UI or a one-shot snapshot export.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nJurisch/equipment-pool/internal/config"
	"github.com/nJurisch/equipment-pool/internal/logger"
	"github.com/nJurisch/equipment-pool/internal/service"
	"github.com/nJurisch/equipment-pool/models"
)

// StdoutPath as export path writes the snapshot to standard output.
const StdoutPath = "-"

var (
	ErrNilConfig   = errors.New("app config is nil")
	ErrNilServices = errors.New("services are nil")
	ErrNilUI       = errors.New("ui is nil")
)

// UI is the interactive front end. It blocks until the user quits or ctx
// is cancelled.
type UI interface {
	Run(ctx context.Context) error
}

type App struct {
	cfg      *config.AppConfig
	services *service.Services
	ui       UI
	stdout   io.Writer
	logger   *logger.Logger
}

func NewApp(cfg *config.AppConfig, services *service.Services, ui UI, logger *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if services == nil {
		return nil, ErrNilServices
	}
	if ui == nil && !cfg.ExportMode() {
		return nil, ErrNilUI
	}

	return &App{
		cfg:      cfg,
		services: services,
		ui:       ui,
		stdout:   os.Stdout,
		logger:   logger,
	}, nil
}

// Run executes the configured mode. SIGTERM, SIGINT and SIGQUIT cancel the
// context handed to the UI or the export.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	ctx = a.logger.WithContext(ctx)

	if a.cfg.ExportMode() {
		return a.export(ctx)
	}

	a.logger.Info().Str("func", "*App.Run").Str("dsn", a.cfg.DSN).Msg("starting tui")
	return a.ui.Run(ctx)
}

func (a *App) export(ctx context.Context) error {
	format := models.SnapshotFormat(a.cfg.ExportFormat)
	log := a.logger.Info().Str("func", "*App.export").Str("format", string(format)).Str("path", a.cfg.ExportPath)

	if a.cfg.ExportPath == StdoutPath {
		if err := a.services.SnapshotService.Export(ctx, a.stdout, format); err != nil {
			return fmt.Errorf("export snapshot: %w", err)
		}
		log.Msg("snapshot exported")
		return nil
	}

	f, err := os.Create(a.cfg.ExportPath)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err = a.services.SnapshotService.Export(ctx, f, format); err != nil {
		f.Close()
		os.Remove(a.cfg.ExportPath)
		return fmt.Errorf("export snapshot: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	log.Msg("snapshot exported")
	return nil
}
