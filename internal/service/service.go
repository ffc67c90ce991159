// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package service composes the orchestrator, the source adapters, the
// snapshot store and the HTTP server into the long-running daemon.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/skyquorum/skyquorum/internal/aggregate"
	"github.com/skyquorum/skyquorum/internal/api"
	"github.com/skyquorum/skyquorum/internal/config"
	"github.com/skyquorum/skyquorum/internal/fetch"
	"github.com/skyquorum/skyquorum/internal/geocode"
	geoopenmeteo "github.com/skyquorum/skyquorum/internal/geocode/provider/openmeteo"
	"github.com/skyquorum/skyquorum/internal/http"
	"github.com/skyquorum/skyquorum/internal/logger"
	"github.com/skyquorum/skyquorum/internal/scheduler"
	"github.com/skyquorum/skyquorum/internal/source"
	"github.com/skyquorum/skyquorum/internal/source/provider/meteosource"
	"github.com/skyquorum/skyquorum/internal/source/provider/openmeteo"
	"github.com/skyquorum/skyquorum/internal/source/provider/pirateweather"
	"github.com/skyquorum/skyquorum/internal/source/provider/tomorrowio"
	"github.com/skyquorum/skyquorum/internal/source/provider/weatherapi"
	"github.com/skyquorum/skyquorum/internal/source/provider/weatherstack"
	"github.com/skyquorum/skyquorum/internal/source/provider/wttrin"
	"github.com/skyquorum/skyquorum/internal/store"
)

const shutdownTimeout = 10 * time.Second

// NewResolver returns the default geocoding backend for the configured
// locale.
func NewResolver(client *http.Client, conf *config.Config) geocode.Resolver {
	return geoopenmeteo.New(client, conf.Language())
}

// Sources builds the full adapter set. Adapters whose credential is missing
// stay in the set and report their key requirement as a per-source failure.
func Sources(client *http.Client, resolver geocode.Resolver, conf *config.Config) ([]source.Source, error) {
	om, err := openmeteo.New(resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo source: %w", err)
	}
	return []source.Source{
		om,
		wttrin.New(client),
		weatherapi.New(client, conf.Credentials.WeatherAPI),
		weatherstack.New(client, conf.Credentials.Weatherstack),
		meteosource.New(client, resolver, conf.Credentials.Meteosource),
		pirateweather.New(client, resolver, conf.Credentials.PirateWeather),
		tomorrowio.New(client, resolver, conf.Credentials.TomorrowIO),
	}, nil
}

// Service is the daemon composition root.
type Service struct {
	config       *config.Config
	logger       *logger.Logger
	app          *fiber.App
	scheduler    *scheduler.Scheduler
	orchestrator *fetch.Orchestrator
	sources      []source.Source
	aggregator   *aggregate.Aggregator
	snapshots    *store.Store
}

// New wires up a daemon from the configuration.
func New(conf *config.Config, log *logger.Logger) (*Service, error) {
	client := http.New(log)
	resolver := NewResolver(client, conf)

	sources, err := Sources(client, resolver, conf)
	if err != nil {
		return nil, err
	}
	sources, err = fetch.Filter(sources, conf.Fetch.Exclude)
	if err != nil {
		return nil, err
	}

	sched, err := scheduler.New(log)
	if err != nil {
		return nil, err
	}

	service := &Service{
		config:       conf,
		logger:       log,
		scheduler:    sched,
		orchestrator: fetch.New(resolver, log).WithTimeout(conf.Fetch.Timeout),
		sources:      sources,
		aggregator:   aggregate.New(nil),
		snapshots:    store.New(),
	}
	service.app = service.createApp()
	return service, nil
}

func (s *Service) createApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "skyquorumd",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	api.New(s.orchestrator, s.sources, s.aggregator, s.snapshots, s.logger).Register(app)
	return app
}

// Run starts the refresh jobs and the HTTP server and blocks until the
// context is canceled.
func (s *Service) Run(ctx context.Context) error {
	for _, city := range s.config.Server.Cities {
		jobName := fmt.Sprintf("refresh_%s", city)
		if err := s.scheduler.AddJob(ctx, s.config.Server.RefreshInterval, s.refreshJob(city),
			jobName); err != nil {
			return err
		}
	}
	s.scheduler.Start()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(s.config.Server.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		s.logger.Error("error during server shutdown", logger.Err(err))
	}
	return s.scheduler.Shutdown()
}

// refreshJob fetches one city and stores the aggregated snapshot.
func (s *Service) refreshJob(city string) func(context.Context) {
	return func(ctx context.Context) {
		report := s.orchestrator.Run(ctx, city, s.sources, s.config.Fetch.Sequential)
		summary := s.aggregator.Summarize(report.Observations)
		s.snapshots.Save(city, store.Snapshot{
			Report:    report,
			Summary:   summary,
			Timestamp: time.Now(),
		})
		s.logger.Info("refreshed snapshot", "city", city, "valid", summary.ValidCount,
			"elapsed", report.Elapsed)
	}
}
