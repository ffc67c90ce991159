// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package tomorrowio

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
	APIEndpoint = "https://api.tomorrow.io/v4/weather/realtime"
	APITimeout  = time.Second * 10
	name        = "Tomorrow.io"
)

// codeNames maps Tomorrow.io numeric weather codes to readable conditions.
var codeNames = map[int]string{
	1000: "Clear",
	1100: "Mostly Clear",
	1101: "Partly Cloudy",
	1102: "Mostly Cloudy",
	1001: "Cloudy",
	2000: "Fog",
	2100: "Light Fog",
	4000: "Drizzle",
	4001: "Rain",
	4200: "Light Rain",
	4201: "Heavy Rain",
	5000: "Snow",
	5001: "Flurries",
	5100: "Light Snow",
	5101: "Heavy Snow",
	6000: "Freezing Drizzle",
	6001: "Freezing Rain",
	7000: "Ice Pellets",
	8000: "Thunderstorm",
}

// TomorrowIO fetches current weather from the Tomorrow.io realtime API.
// Requires an API key; coordinate-based.
type TomorrowIO struct {
	apikey   string
	http     *http.Client
	resolver geocode.Resolver
}

type response struct {
	Data struct {
		Values struct {
			Temperature float64 `json:"temperature"`
			Humidity    float64 `json:"humidity"`
			WeatherCode int     `json:"weatherCode"`
		} `json:"values"`
	} `json:"data"`
}

func New(client *http.Client, resolver geocode.Resolver, apikey string) *TomorrowIO {
	return &TomorrowIO{
		apikey:   apikey,
		http:     client,
		resolver: resolver,
	}
}

func (t *TomorrowIO) Name() string {
	return name
}

func (t *TomorrowIO) Fetch(ctx context.Context, city string, coords *geocode.Cache) source.Observation {
	obs := source.Observation{Source: name}

	if t.apikey == "" {
		obs.Err = source.ErrAPIKeyRequired
		return obs
	}

	coord, err := source.Coordinates(ctx, t.resolver, coords, city)
	if err != nil {
		obs.Err = err
		return obs
	}

	var res response
	query := url.Values{}
	query.Set("location", fmt.Sprintf("%.4f,%.4f", coord.Lat, coord.Lon))
	query.Set("apikey", t.apikey)
	if err := t.http.GetWithTimeout(ctx, APIEndpoint, &res, query, APITimeout); err != nil {
		obs.Err = err
		return obs
	}

	obs.Temperature = res.Data.Values.Temperature
	obs.Humidity.Set(res.Data.Values.Humidity)
	obs.Condition = mapWeatherCode(res.Data.Values.WeatherCode)
	return obs
}

func mapWeatherCode(code int) string {
	if condition, ok := codeNames[code]; ok {
		return condition
	}
	return "Unknown"
}
