// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-balance-sync/internal/config"
	handler "github.com/MKhiriev/go-balance-sync/internal/handler/http"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
	"github.com/MKhiriev/go-balance-sync/internal/server"
	"github.com/MKhiriev/go-balance-sync/internal/service"
	"github.com/MKhiriev/go-balance-sync/internal/store"
	"github.com/MKhiriev/go-balance-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("balance-agent")
	cfg, err := config.GetAgentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	stores, err := store.NewStores(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating stores")
	}

	services := service.NewServices(stores, cfg, log)

	srv, err := server.NewServer(handler.NewHandler(services, log).Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(
		workers.NewTombstoneSweeper(stores, cfg.Workers, log),
	)
	background.Run()

	srv.RunServer()

	background.Stop()
	if err := stores.Close(); err != nil {
		log.Error().Err(err).Msg("error closing stores")
	}
	log.Info().Msg("agent stopped")
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
