// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package main implements the skyquorum command line client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/skyquorum/skyquorum/internal/aggregate"
	"github.com/skyquorum/skyquorum/internal/config"
	"github.com/skyquorum/skyquorum/internal/fetch"
	"github.com/skyquorum/skyquorum/internal/http"
	"github.com/skyquorum/skyquorum/internal/logger"
	"github.com/skyquorum/skyquorum/internal/presenter"
	"github.com/skyquorum/skyquorum/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const maxCityLength = 100

var cityCharset = regexp.MustCompile(`^[\p{L}\p{M}0-9 .,'-]+$`)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	log := logger.New(slog.LevelError)

	city := flag.String("city", "", "city to fetch the weather for")
	sequential := flag.Bool("sequential", false, "query the sources one after another")
	exclude := flag.String("exclude", "", "comma-separated list of sources to skip")
	confPath := flag.String("config", "", "path to the config file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("skyquorum %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	if err := validateCity(*city); err != nil {
		log.Error("invalid city", logger.Err(err))
		os.Exit(2)
	}

	// Credentials may come from a .env file in the working directory.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to load .env file", logger.Err(err))
	}

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	log = logger.New(conf.LogLevel)

	if *sequential {
		conf.Fetch.Sequential = true
	}
	if *exclude != "" {
		conf.Fetch.Exclude = strings.Split(*exclude, ",")
	}

	client := http.New(log)
	resolver := service.NewResolver(client, conf)
	sources, err := service.Sources(client, resolver, conf)
	if err != nil {
		log.Error("failed to build sources", logger.Err(err))
		os.Exit(1)
	}
	sources, err = fetch.Filter(sources, conf.Fetch.Exclude)
	if err != nil {
		log.Error("invalid source exclusion", logger.Err(err))
		os.Exit(2)
	}

	orchestrator := fetch.New(resolver, log).WithTimeout(conf.Fetch.Timeout)
	report := orchestrator.Run(ctx, *city, sources, conf.Fetch.Sequential)

	aggregator := aggregate.New(nil)
	summary := aggregator.Summarize(report.Observations)
	presenter.New(os.Stdout, aggregator).Render(report, summary)

	if summary.ValidCount == 0 {
		os.Exit(1)
	}
}

func validateCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return fmt.Errorf("city name must not be empty")
	}
	if len(city) > maxCityLength {
		return fmt.Errorf("city name exceeds %d characters", maxCityLength)
	}
	if !cityCharset.MatchString(city) {
		return fmt.Errorf("city name contains unsupported characters: %s", city)
	}
	return nil
}

func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "skyquorum", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
