// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package meteosource

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
	APIEndpoint = "https://www.meteosource.com/api/v1/free/point"
	APITimeout  = time.Second * 10
	name        = "Meteosource"
)

// Meteosource fetches current weather from the Meteosource API. Requires an
// API key; coordinate-based. The free tier may omit humidity entirely or
// deliver it as a "57%"-style string, so the field is typed loosely and
// coerced.
type Meteosource struct {
	apikey   string
	http     *http.Client
	resolver geocode.Resolver
}

type response struct {
	Current struct {
		Temperature float64 `json:"temperature"`
		Humidity    any     `json:"humidity"`
		Summary     string  `json:"summary"`
	} `json:"current"`
}

func New(client *http.Client, resolver geocode.Resolver, apikey string) *Meteosource {
	return &Meteosource{
		apikey:   apikey,
		http:     client,
		resolver: resolver,
	}
}

func (m *Meteosource) Name() string {
	return name
}

func (m *Meteosource) Fetch(ctx context.Context, city string, coords *geocode.Cache) source.Observation {
	obs := source.Observation{Source: name}

	if m.apikey == "" {
		obs.Err = source.ErrAPIKeyRequired
		return obs
	}

	coord, err := source.Coordinates(ctx, m.resolver, coords, city)
	if err != nil {
		obs.Err = err
		return obs
	}

	var res response
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.4f", coord.Lat))
	query.Set("lon", fmt.Sprintf("%.4f", coord.Lon))
	query.Set("sections", "current")
	query.Set("language", "en")
	query.Set("units", "metric")
	query.Set("key", m.apikey)
	if err := m.http.GetWithTimeout(ctx, APIEndpoint, &res, query, APITimeout); err != nil {
		obs.Err = err
		return obs
	}

	obs.Temperature = res.Current.Temperature
	obs.Humidity = source.FloatVar(res.Current.Humidity)
	obs.Condition = res.Current.Summary
	return obs
}
