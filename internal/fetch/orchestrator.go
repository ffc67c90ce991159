// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package fetch orchestrates a batch of provider fetches for one city. It
// resolves the city coordinate once up front, fans out to every configured
// source either concurrently or in order, and returns the observations in
// source declaration order regardless of completion order.
package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/logger"
	"github.com/skyquorum/skyquorum/internal/source"
)

// DefaultTimeout bounds each individual provider fetch.
const DefaultTimeout = 10 * time.Second

// Report carries the observations of a completed batch together with the
// batch-level context the presentation layer needs.
type Report struct {
	City         string
	Observations []source.Observation
	Coordinate   geocode.Coordinate
	Resolved     bool
	Elapsed      time.Duration
	Sequential   bool
}

// Orchestrator runs fetch batches against a fixed set of sources.
type Orchestrator struct {
	resolver geocode.Resolver
	log      *logger.Logger
	timeout  time.Duration
}

// New returns an orchestrator that pre-resolves coordinates through resolver
// and bounds each provider call with DefaultTimeout.
func New(resolver geocode.Resolver, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		resolver: resolver,
		log:      log,
		timeout:  DefaultTimeout,
	}
}

// WithTimeout overrides the per-provider fetch timeout.
func (o *Orchestrator) WithTimeout(timeout time.Duration) *Orchestrator {
	if timeout > 0 {
		o.timeout = timeout
	}
	return o
}

// FetchConcurrent queries all sources in parallel and returns their
// observations in the order the sources were passed in.
func (o *Orchestrator) FetchConcurrent(ctx context.Context, city string, sources []source.Source) []source.Observation {
	report := o.Run(ctx, city, sources, false)
	return report.Observations
}

// FetchSequential queries the sources one after another, in the order they
// were passed in. Mainly useful for debugging provider behavior.
func (o *Orchestrator) FetchSequential(ctx context.Context, city string, sources []source.Source) []source.Observation {
	report := o.Run(ctx, city, sources, true)
	return report.Observations
}

// Run executes one fetch batch and returns the full report. Both public
// fetch modes share this skeleton; they differ only in whether the per-source
// fetches overlap.
func (o *Orchestrator) Run(ctx context.Context, city string, sources []source.Source, sequential bool) *Report {
	start := time.Now()
	report := &Report{
		City:       city,
		Sequential: sequential,
	}

	// One geocoding call per batch. A failure here is not fatal: the
	// coordinate-based adapters retry the lookup themselves and report the
	// geocoding error as their own observation failure.
	coords := geocode.NewCache()
	if coord, err := o.resolver.Lookup(ctx, city); err != nil {
		o.log.Debug("coordinate pre-resolution failed", "city", city, logger.Err(err))
	} else {
		coords.Put(city, coord)
		report.Coordinate = coord
		report.Resolved = true
	}

	report.Observations = make([]source.Observation, len(sources))
	if sequential {
		for i, src := range sources {
			report.Observations[i] = o.fetchOne(ctx, src, city, coords)
		}
	} else {
		var wg sync.WaitGroup
		for i, src := range sources {
			wg.Add(1)
			go func(slot int, src source.Source) {
				defer wg.Done()
				report.Observations[slot] = o.fetchOne(ctx, src, city, coords)
			}(i, src)
		}
		wg.Wait()
	}

	report.Elapsed = time.Since(start)
	return report
}

// fetchOne wraps a single provider fetch with the per-call timeout and stamps
// the wall-clock duration into the observation, on failures as well.
func (o *Orchestrator) fetchOne(ctx context.Context, src source.Source, city string, coords *geocode.Cache) source.Observation {
	fetchCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	obs := src.Fetch(fetchCtx, city, coords)
	obs.Duration = time.Since(start)
	if obs.Err != nil {
		o.log.Debug("provider fetch failed", "source", src.Name(), logger.Err(obs.Err))
	}
	return obs
}
