// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package presenter renders a fetch report and its summary as aligned,
// human-readable terminal output.
package presenter

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/nathan-osman/go-sunrise"

	"github.com/skyquorum/skyquorum/internal/aggregate"
	"github.com/skyquorum/skyquorum/internal/fetch"
	"github.com/skyquorum/skyquorum/internal/source"
)

const (
	okMark   = "✅"
	failMark = "❌"

	// nameColumn is sized for the longest provider name plus padding.
	nameColumn = 18
)

// Presenter writes formatted reports to a single output stream.
type Presenter struct {
	out io.Writer
	agg *aggregate.Aggregator
}

// New returns a presenter writing to out and using agg for condition glyphs.
func New(out io.Writer, agg *aggregate.Aggregator) *Presenter {
	return &Presenter{out: out, agg: agg}
}

// Render writes the per-source lines, the consensus summary and the batch
// footer for one completed fetch report.
func (p *Presenter) Render(report *fetch.Report, summary aggregate.Summary) {
	fmt.Fprintf(p.out, "Weather for %s", report.City)
	if report.Resolved {
		fmt.Fprintf(p.out, " (%.4f, %.4f)", report.Coordinate.Lat, report.Coordinate.Lon)
	}
	fmt.Fprint(p.out, "\n\n")

	for _, obs := range report.Observations {
		p.renderObservation(obs)
	}

	fmt.Fprintf(p.out, "\nSummary (%d of %d sources):\n", summary.ValidCount, len(report.Observations))
	if summary.ValidCount > 0 {
		fmt.Fprintf(p.out, "  Temperature: %.1f°C\n", summary.AvgTemperature)
		if summary.HumiditySamples > 0 {
			fmt.Fprintf(p.out, "  Humidity:    %.0f%% (%d sources)\n", summary.AvgHumidity,
				summary.HumiditySamples)
		}
	}
	fmt.Fprintf(p.out, "  Condition:   %s %s\n", p.agg.Glyph(summary.Condition), summary.Condition)

	if report.Resolved {
		now := time.Now()
		rise, set := sunrise.SunriseSunset(report.Coordinate.Lat, report.Coordinate.Lon,
			now.Year(), now.Month(), now.Day())
		fmt.Fprintf(p.out, "  Sunrise:     %s   Sunset: %s\n", rise.Local().Format("15:04"),
			set.Local().Format("15:04"))
	}

	mode := "concurrent"
	if report.Sequential {
		mode = "sequential"
	}
	fmt.Fprintf(p.out, "\nFetched in %dms (%s)\n", report.Elapsed.Milliseconds(), mode)
}

func (p *Presenter) renderObservation(obs source.Observation) {
	name := runewidth.FillRight(obs.Source, nameColumn)
	if obs.Err != nil {
		fmt.Fprintf(p.out, "%s %s %s (%dms)\n", failMark, name, obs.Err, obs.Duration.Milliseconds())
		return
	}
	fmt.Fprintf(p.out, "%s %s %6.1f°C  %s%s  %s  (%dms)\n", okMark, name, obs.Temperature,
		p.agg.Glyph(obs.Condition), glyphPad(p.agg.Glyph(obs.Condition)),
		runewidth.FillRight(conditionWithHumidity(obs), 24), obs.Duration.Milliseconds())
}

// glyphPad compensates for double-width emoji so the condition column stays
// aligned across rows.
func glyphPad(glyph string) string {
	if runewidth.StringWidth(glyph) < 2 {
		return "  "
	}
	return " "
}

func conditionWithHumidity(obs source.Observation) string {
	if obs.Humidity.IsSet() {
		return fmt.Sprintf("%s, %.0f%% humidity", obs.Condition, obs.Humidity.Value())
	}
	return obs.Condition
}
