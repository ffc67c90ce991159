// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"fmt"

	"github.com/hectormalot/omgo"

	"github.com/skyquorum/skyquorum/internal/conditions"
	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/http"
	"github.com/skyquorum/skyquorum/internal/source"
)

const name = "Open-Meteo"

// OpenMeteo fetches current weather from the Open-Meteo API through the omgo
// client. Free to use, no API key required. Coordinate-based: the city name
// is resolved through the shared geocoder before the weather call. The
// current-weather endpoint carries no humidity, so the metric stays
// unreported.
type OpenMeteo struct {
	client   omgo.Client
	resolver geocode.Resolver
}

func New(resolver geocode.Resolver) (*OpenMeteo, error) {
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	return &OpenMeteo{client: client, resolver: resolver}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

func (o *OpenMeteo) Fetch(ctx context.Context, city string, coords *geocode.Cache) source.Observation {
	obs := source.Observation{Source: name}

	coord, err := source.Coordinates(ctx, o.resolver, coords, city)
	if err != nil {
		obs.Err = err
		return obs
	}

	loc, err := omgo.NewLocation(coord.Lat, coord.Lon)
	if err != nil {
		obs.Err = &source.ParseError{Detail: err.Error()}
		return obs
	}

	current, err := o.client.CurrentWeather(ctx, loc, nil)
	if err != nil {
		obs.Err = classify(err)
		return obs
	}

	obs.Temperature = current.Temperature
	obs.Condition = conditions.MapWMOCode(int(current.WeatherCode))
	return obs
}

// classify maps omgo client failures onto the shared error taxonomy. The
// client wraps transport errors opaquely, so anything that is not a deadline
// counts as a network failure.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.ErrTimeout
	}
	return fmt.Errorf("%w: %v", http.ErrNetwork, err)
}
