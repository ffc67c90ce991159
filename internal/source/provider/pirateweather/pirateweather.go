// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package pirateweather

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/http"
	"github.com/skyquorum/skyquorum/internal/source"
)

const (
	APIEndpoint = "https://api.pirateweather.net/forecast"
	APITimeout  = time.Second * 10
	name        = "Pirate Weather"
)

// PirateWeather fetches current weather from the Pirate Weather API (Dark
// Sky compatible). Requires an API key; coordinate-based. Humidity arrives
// as a 0-1 fraction and is rescaled to a percentage.
type PirateWeather struct {
	apikey   string
	http     *http.Client
	resolver geocode.Resolver
}

type response struct {
	Currently struct {
		Temperature float64 `json:"temperature"`
		Humidity    float64 `json:"humidity"`
		Summary     string  `json:"summary"`
	} `json:"currently"`
}

func New(client *http.Client, resolver geocode.Resolver, apikey string) *PirateWeather {
	return &PirateWeather{
		apikey:   apikey,
		http:     client,
		resolver: resolver,
	}
}

func (p *PirateWeather) Name() string {
	return name
}

func (p *PirateWeather) Fetch(ctx context.Context, city string, coords *geocode.Cache) source.Observation {
	obs := source.Observation{Source: name}

	if p.apikey == "" {
		obs.Err = source.ErrAPIKeyRequired
		return obs
	}

	coord, err := source.Coordinates(ctx, p.resolver, coords, city)
	if err != nil {
		obs.Err = err
		return obs
	}

	var res response
	endpoint := fmt.Sprintf("%s/%s/%.4f,%.4f", APIEndpoint, url.PathEscape(p.apikey), coord.Lat, coord.Lon)
	query := url.Values{}
	query.Set("units", "si")
	if err := p.http.GetWithTimeout(ctx, endpoint, &res, query, APITimeout); err != nil {
		obs.Err = err
		return obs
	}

	obs.Temperature = res.Currently.Temperature
	obs.Humidity.Set(res.Currently.Humidity * 100)
	obs.Condition = res.Currently.Summary
	return obs
}
