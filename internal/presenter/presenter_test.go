// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skyquorum/skyquorum/internal/aggregate"
	"github.com/skyquorum/skyquorum/internal/fetch"
	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/source"
	"github.com/skyquorum/skyquorum/internal/vartype"
)

func renderToString(t *testing.T, report *fetch.Report, summary aggregate.Summary) string {
	t.Helper()
	var sb strings.Builder
	New(&sb, aggregate.New(nil)).Render(report, summary)
	return sb.String()
}

func TestRenderMixedBatch(t *testing.T) {
	humidity := vartype.NewVariable(65.0)
	report := &fetch.Report{
		City:       "Berlin",
		Coordinate: geocode.Coordinate{Lat: 52.52, Lon: 13.405},
		Resolved:   true,
		Elapsed:    420 * time.Millisecond,
		Observations: []source.Observation{
			{Source: "Open-Meteo", Temperature: 12.3, Condition: "Clear", Duration: 210 * time.Millisecond},
			{Source: "wttr.in", Temperature: 12.8, Humidity: humidity, Condition: "Clear", Duration: 380 * time.Millisecond},
			{Source: "WeatherAPI.com", Err: errors.New("API key required"), Duration: time.Millisecond},
		},
	}
	summary := aggregate.New(nil).Summarize(report.Observations)
	out := renderToString(t, report, summary)

	for _, want := range []string{
		"Weather for Berlin (52.5200, 13.4050)",
		"✅ Open-Meteo",
		"12.3°C",
		"✅ wttr.in",
		"65% humidity",
		"❌ WeatherAPI.com",
		"API key required",
		"Summary (2 of 3 sources):",
		"Temperature: 12.6°C",
		"Humidity:    65% (1 sources)",
		"Condition:   ☀️ Clear",
		"Sunrise:",
		"Fetched in 420ms (concurrent)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderUnresolvedSkipsSunTimes(t *testing.T) {
	report := &fetch.Report{
		City:    "Nowhereville",
		Elapsed: 50 * time.Millisecond,
		Observations: []source.Observation{
			{Source: "Open-Meteo", Err: errors.New("geocoding request failed: city not found"), Duration: 40 * time.Millisecond},
		},
		Sequential: true,
	}
	summary := aggregate.New(nil).Summarize(report.Observations)
	out := renderToString(t, report, summary)

	if strings.Contains(out, "Sunrise") {
		t.Error("sun times should be omitted without a resolved coordinate")
	}
	if strings.Contains(out, "(52.") {
		t.Error("coordinate should be omitted without a resolved coordinate")
	}
	if !strings.Contains(out, "No valid data") {
		t.Errorf("expected summary condition in output:\n%s", out)
	}
	if !strings.Contains(out, "(sequential)") {
		t.Errorf("expected sequential mode marker:\n%s", out)
	}
}
