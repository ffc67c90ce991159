// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package main implements the skyquorumd aggregation daemon.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/skyquorum/skyquorum/internal/config"
	"github.com/skyquorum/skyquorum/internal/logger"
	"github.com/skyquorum/skyquorum/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to load .env file", logger.Err(err))
	}

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log = logger.New(conf.LogLevel)

	if len(conf.Server.Cities) == 0 {
		log.Warn("no cities configured, only live fetches will be served")
	}

	serv, err := service.New(conf, log)
	if err != nil {
		log.Error("failed to initialize skyquorum daemon", logger.Err(err))
		os.Exit(1)
	}

	log.Info("starting skyquorum daemon", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date),
		slog.String("addr", conf.Server.Addr))
	if err = serv.Run(ctx); err != nil {
		log.Error("daemon terminated with error", logger.Err(err))
		os.Exit(1)
	}
	log.Info("shutting down skyquorum daemon")
}

func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	return config.New()
}
