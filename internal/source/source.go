// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package source defines the adapter contract that every weather provider
// implements and the normalized observation record the adapters produce.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/vartype"
)

// ErrAPIKeyRequired is returned by credentialed adapters that were built
// without a credential. No network call is made in that case.
var ErrAPIKeyRequired = errors.New("API key required")

// ParseError indicates a well-formed response that lacked the fields the
// adapter expected.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("data parsing error: %s", e.Detail)
}

// Observation is the normalized result of a single provider fetch.
// Temperature is in Celsius, Humidity a percentage (0-100). Humidity stays
// unreported when the provider's tier omits it. Exactly one of
// (Temperature/Condition) or Err carries meaning: a non-nil Err marks the
// observation invalid for aggregation. Duration is stamped by the
// orchestrator's timing wrapper.
type Observation struct {
	Source      string
	Temperature float64
	Humidity    vartype.VarFloat64
	Condition   string
	Err         error
	Duration    time.Duration
}

// Valid reports whether the observation may participate in aggregation.
func (o Observation) Valid() bool {
	return o.Err == nil
}

// Source is implemented by each weather API backend. Fetch must never return
// an error: every failure mode is caught locally and recorded in the
// observation's Err field. The coords cache is batch-scoped and read-only
// during fan-out.
type Source interface {
	Name() string
	Fetch(ctx context.Context, city string, coords *geocode.Cache) Observation
}

// Coordinates returns the coordinate for a city, preferring the batch cache
// and falling back to a fresh resolver lookup on a miss. Coordinate-based
// adapters share this path, which is why a failed batch pre-resolution shows
// up as one geocoding error per coordinate adapter.
func Coordinates(ctx context.Context, resolver geocode.Resolver, coords *geocode.Cache, city string) (geocode.Coordinate, error) {
	if coord, ok := coords.Get(city); ok {
		return coord, nil
	}
	return resolver.Lookup(ctx, city)
}
