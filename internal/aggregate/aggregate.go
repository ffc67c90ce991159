// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package aggregate condenses a batch of provider observations into a single
// consensus summary.
package aggregate

import (
	"github.com/skyquorum/skyquorum/internal/conditions"
	"github.com/skyquorum/skyquorum/internal/source"
)

// Sentinel condition values for batches that cannot produce a consensus.
const (
	// ConditionNoData is reported when the batch contains no observations
	// at all.
	ConditionNoData = "No data"
	// ConditionNoValidData is reported when every observation in the batch
	// failed.
	ConditionNoValidData = "No valid data"
	// ConditionUnknown is reported when valid observations exist but none
	// carries a usable condition description.
	ConditionUnknown = "Unknown"
)

// Summary is the condensed result of one fetch batch. AvgHumidity is only
// meaningful when HumiditySamples is non-zero; providers that do not report
// humidity are excluded from that average rather than counted as zero.
type Summary struct {
	AvgTemperature  float64
	AvgHumidity     float64
	HumiditySamples int
	Condition       string
	ValidCount      int
}

// Aggregator computes consensus summaries using a condition taxonomy to
// bucket free-form provider descriptions.
type Aggregator struct {
	taxonomy *conditions.Taxonomy
}

// New returns an aggregator built on the given taxonomy. A nil taxonomy
// falls back to the default one.
func New(taxonomy *conditions.Taxonomy) *Aggregator {
	if taxonomy == nil {
		taxonomy = conditions.Default()
	}
	return &Aggregator{taxonomy: taxonomy}
}

// Summarize averages the valid observations and picks the majority condition.
// Ties are broken in favor of the condition that first reached the winning
// count, which makes the result stable across runs for a fixed source order.
func (a *Aggregator) Summarize(observations []source.Observation) Summary {
	if len(observations) == 0 {
		return Summary{Condition: ConditionNoData}
	}

	var (
		tempSum     float64
		humiditySum float64
		summary     Summary
		counts      = make(map[string]int)
		order       = make([]string, 0, len(observations))
	)
	for _, obs := range observations {
		if !obs.Valid() {
			continue
		}
		summary.ValidCount++
		tempSum += obs.Temperature
		if obs.Humidity.IsSet() {
			humiditySum += obs.Humidity.Value()
			summary.HumiditySamples++
		}
		normalized := a.taxonomy.Normalize(obs.Condition)
		if normalized == "" {
			continue
		}
		if _, seen := counts[normalized]; !seen {
			order = append(order, normalized)
		}
		counts[normalized]++
	}

	if summary.ValidCount == 0 {
		summary.Condition = ConditionNoValidData
		return summary
	}

	summary.AvgTemperature = tempSum / float64(summary.ValidCount)
	if summary.HumiditySamples > 0 {
		summary.AvgHumidity = humiditySum / float64(summary.HumiditySamples)
	}
	summary.Condition = consensus(counts, order)
	return summary
}

// Glyph returns the display glyph for a summary condition.
func (a *Aggregator) Glyph(condition string) string {
	return a.taxonomy.Glyph(condition)
}

// consensus picks the condition with the highest tally. Iterating in
// first-seen order and requiring a strictly greater count implements the
// first-seen-wins tie-break.
func consensus(counts map[string]int, order []string) string {
	winner := ConditionUnknown
	best := 0
	for _, condition := range order {
		if counts[condition] > best {
			winner = condition
			best = counts[condition]
		}
	}
	return winner
}
