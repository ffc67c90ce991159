// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package api exposes the fetch orchestrator and the snapshot store over
// HTTP.
package api

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skyquorum/skyquorum/internal/aggregate"
	"github.com/skyquorum/skyquorum/internal/fetch"
	"github.com/skyquorum/skyquorum/internal/logger"
	"github.com/skyquorum/skyquorum/internal/source"
	"github.com/skyquorum/skyquorum/internal/store"
)

var validate = validator.New()

// Service holds the collaborators the HTTP handlers need.
type Service struct {
	orchestrator *fetch.Orchestrator
	sources      []source.Source
	aggregator   *aggregate.Aggregator
	snapshots    *store.Store
	logger       *logger.Logger
}

// New returns an API service over the given orchestrator and source set.
func New(orchestrator *fetch.Orchestrator, sources []source.Source, aggregator *aggregate.Aggregator,
	snapshots *store.Store, log *logger.Logger,
) *Service {
	return &Service{
		orchestrator: orchestrator,
		sources:      sources,
		aggregator:   aggregator,
		snapshots:    snapshots,
		logger:       log,
	}
}

// Register wires the HTTP handlers into the Fiber app.
func (s *Service) Register(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather", s.handleWeather)
	v1.Get("/weather/latest", s.handleLatest)
}

// weatherQuery holds the query parameters of a live fetch request.
type weatherQuery struct {
	City    string `validate:"required,max=100"`
	Mode    string `validate:"omitempty,oneof=concurrent sequential"`
	Exclude string
}

func (s *Service) handleWeather(c *fiber.Ctx) error {
	req := weatherQuery{
		City:    strings.TrimSpace(c.Query("city")),
		Mode:    c.Query("mode"),
		Exclude: c.Query("exclude"),
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var exclude []string
	if req.Exclude != "" {
		exclude = strings.Split(req.Exclude, ",")
	}
	sources, err := fetch.Filter(s.sources, exclude)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	report := s.orchestrator.Run(c.Context(), req.City, sources, req.Mode == "sequential")
	summary := s.aggregator.Summarize(report.Observations)
	s.snapshots.Save(req.City, store.Snapshot{
		Report:    report,
		Summary:   summary,
		Timestamp: time.Now(),
	})

	return c.JSON(reportResponse(report, summary, time.Now()))
}

func (s *Service) handleLatest(c *fiber.Ctx) error {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
	}

	snapshot, err := s.snapshots.Get(city)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no snapshot for requested city")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load snapshot")
	}

	return c.JSON(reportResponse(snapshot.Report, snapshot.Summary, snapshot.Timestamp))
}

// observationDTO is the JSON shape of a single provider observation. Failed
// observations carry an error string and omit the measurement fields.
type observationDTO struct {
	Source      string   `json:"source"`
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	Condition   string   `json:"condition,omitempty"`
	Error       *string  `json:"error,omitempty"`
	DurationMs  int64    `json:"durationMs"`
}

type coordinateDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type summaryDTO struct {
	AvgTemperature  *float64 `json:"avgTemperature,omitempty"`
	AvgHumidity     *float64 `json:"avgHumidity,omitempty"`
	HumiditySamples int      `json:"humiditySamples"`
	Condition       string   `json:"condition"`
	ValidCount      int      `json:"validCount"`
}

type reportDTO struct {
	City       string           `json:"city"`
	Coordinate *coordinateDTO   `json:"coordinate,omitempty"`
	Summary    summaryDTO       `json:"summary"`
	Sources    []observationDTO `json:"sources"`
	Sequential bool             `json:"sequential"`
	ElapsedMs  int64            `json:"elapsedMs"`
	Timestamp  time.Time        `json:"timestamp"`
}

func reportResponse(report *fetch.Report, summary aggregate.Summary, timestamp time.Time) reportDTO {
	dto := reportDTO{
		City: report.City,
		Summary: summaryDTO{
			HumiditySamples: summary.HumiditySamples,
			Condition:       summary.Condition,
			ValidCount:      summary.ValidCount,
		},
		Sources:    make([]observationDTO, 0, len(report.Observations)),
		Sequential: report.Sequential,
		ElapsedMs:  report.Elapsed.Milliseconds(),
		Timestamp:  timestamp,
	}
	if report.Resolved {
		dto.Coordinate = &coordinateDTO{Lat: report.Coordinate.Lat, Lon: report.Coordinate.Lon}
	}
	if summary.ValidCount > 0 {
		avgTemp := summary.AvgTemperature
		dto.Summary.AvgTemperature = &avgTemp
	}
	if summary.HumiditySamples > 0 {
		avgHumidity := summary.AvgHumidity
		dto.Summary.AvgHumidity = &avgHumidity
	}
	for _, obs := range report.Observations {
		dto.Sources = append(dto.Sources, observationResponse(obs))
	}
	return dto
}

func observationResponse(obs source.Observation) observationDTO {
	dto := observationDTO{
		Source:     obs.Source,
		DurationMs: obs.Duration.Milliseconds(),
	}
	if obs.Err != nil {
		msg := obs.Err.Error()
		dto.Error = &msg
		return dto
	}
	temp := obs.Temperature
	dto.Temperature = &temp
	dto.Condition = obs.Condition
	if obs.Humidity.IsSet() {
		humidity := obs.Humidity.Value()
		dto.Humidity = &humidity
	}
	return dto
}
