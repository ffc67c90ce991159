// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package weatherapi

import (
	"context"
	"net/url"
	"time"

	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/http"
	"github.com/skyquorum/skyquorum/internal/source"
)

const (
	APIEndpoint = "https://api.weatherapi.com/v1/current.json"
	APITimeout  = time.Second * 10
	name        = "WeatherAPI.com"
)

// WeatherAPI fetches current weather from WeatherAPI.com. Requires an API
// key; name-based.
type WeatherAPI struct {
	apikey string
	http   *http.Client
}

type response struct {
	Current struct {
		TempC     float64 `json:"temp_c"`
		Humidity  float64 `json:"humidity"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

func New(client *http.Client, apikey string) *WeatherAPI {
	return &WeatherAPI{
		apikey: apikey,
		http:   client,
	}
}

func (w *WeatherAPI) Name() string {
	return name
}

func (w *WeatherAPI) Fetch(ctx context.Context, city string, _ *geocode.Cache) source.Observation {
	obs := source.Observation{Source: name}

	if w.apikey == "" {
		obs.Err = source.ErrAPIKeyRequired
		return obs
	}

	var res response
	query := url.Values{}
	query.Set("key", w.apikey)
	query.Set("q", city)
	if err := w.http.GetWithTimeout(ctx, APIEndpoint, &res, query, APITimeout); err != nil {
		obs.Err = err
		return obs
	}

	obs.Temperature = res.Current.TempC
	obs.Humidity.Set(res.Current.Humidity)
	obs.Condition = res.Current.Condition.Text
	return obs
}
