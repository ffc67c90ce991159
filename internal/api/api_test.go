// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/skyquorum/skyquorum/internal/aggregate"
	"github.com/skyquorum/skyquorum/internal/fetch"
	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/logger"
	"github.com/skyquorum/skyquorum/internal/source"
	"github.com/skyquorum/skyquorum/internal/store"
	"github.com/skyquorum/skyquorum/internal/testhelper"
)

type fakeSource struct {
	name string
	temp float64
	err  error
}

func (f *fakeSource) Name() string {
	return f.name
}

func (f *fakeSource) Fetch(_ context.Context, _ string, _ *geocode.Cache) source.Observation {
	return source.Observation{Source: f.name, Temperature: f.temp, Condition: "Clear", Err: f.err}
}

func testApp(sources []source.Source) (*fiber.App, *store.Store) {
	log := logger.NewLogger(slog.LevelError, io.Discard)
	snapshots := store.New()
	resolver := &testhelper.StubResolver{Coordinate: geocode.Coordinate{Lat: 52.52, Lon: 13.41}}
	service := New(fetch.New(resolver, log), sources, aggregate.New(nil), snapshots, log)

	app := fiber.New()
	service.Register(app)
	return app, snapshots
}

func defaultSources() []source.Source {
	return []source.Source{
		&fakeSource{name: "Open-Meteo", temp: 12},
		&fakeSource{name: "wttr.in", temp: 14},
		&fakeSource{name: "WeatherAPI.com", err: errors.New("API key required")},
	}
}

func TestHealthz(t *testing.T) {
	app, _ := testApp(defaultSources())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestWeatherRequiresCity(t *testing.T) {
	app, _ := testApp(defaultSources())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather", nil))
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestWeatherRejectsUnknownMode(t *testing.T) {
	app, _ := testApp(defaultSources())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Berlin&mode=both", nil))
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestWeatherRejectsFullExclusion(t *testing.T) {
	app, _ := testApp(defaultSources())
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/weather?city=Berlin&exclude=open-meteo,wttrin,weatherapicom", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestWeatherFetch(t *testing.T) {
	app, snapshots := testApp(defaultSources())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Berlin", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var dto reportDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		t.Fatalf("failed to decode response: %s", err)
	}
	if dto.City != "Berlin" {
		t.Errorf("expected city Berlin, got %q", dto.City)
	}
	if dto.Summary.ValidCount != 2 {
		t.Errorf("expected 2 valid sources, got %d", dto.Summary.ValidCount)
	}
	if dto.Summary.AvgTemperature == nil || *dto.Summary.AvgTemperature != 13 {
		t.Errorf("expected average temperature 13, got %v", dto.Summary.AvgTemperature)
	}
	if len(dto.Sources) != 3 {
		t.Fatalf("expected 3 source entries, got %d", len(dto.Sources))
	}
	failed := dto.Sources[2]
	if failed.Error == nil || *failed.Error != "API key required" {
		t.Errorf("expected error entry for the keyless source, got %+v", failed)
	}
	if failed.Temperature != nil {
		t.Error("failed observations must not report a temperature")
	}
	if dto.Coordinate == nil || dto.Coordinate.Lat != 52.52 {
		t.Errorf("expected resolved coordinate in response, got %+v", dto.Coordinate)
	}

	if _, err := snapshots.Get("Berlin"); err != nil {
		t.Errorf("live fetch should refresh the snapshot store: %s", err)
	}
}

func TestWeatherExcludeFilters(t *testing.T) {
	app, _ := testApp(defaultSources())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Berlin&exclude=WTTR.IN", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	defer resp.Body.Close()

	var dto reportDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		t.Fatalf("failed to decode response: %s", err)
	}
	if len(dto.Sources) != 2 {
		t.Fatalf("expected 2 source entries after exclusion, got %d", len(dto.Sources))
	}
	for _, src := range dto.Sources {
		if src.Source == "wttr.in" {
			t.Error("excluded source must not appear in the response")
		}
	}
}

func TestLatestUnknownCity(t *testing.T) {
	app, _ := testApp(defaultSources())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/latest?city=Atlantis", nil))
	if err != nil {
		t.Fatalf("request failed: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestLatestServesStoredSnapshot(t *testing.T) {
	app, _ := testApp(defaultSources())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Berlin", nil), -1)
	if err != nil {
		t.Fatalf("fetch request failed: %s", err)
	}
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/latest?city=berlin", nil))
	if err != nil {
		t.Fatalf("latest request failed: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var dto reportDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		t.Fatalf("failed to decode response: %s", err)
	}
	if dto.City != "Berlin" {
		t.Errorf("expected snapshot for Berlin, got %q", dto.City)
	}
}
