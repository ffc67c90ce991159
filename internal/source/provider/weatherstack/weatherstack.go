// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package weatherstack

import (
	"context"
	"net/url"
	"time"

	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/http"
	"github.com/skyquorum/skyquorum/internal/source"
)

const (
	// APIEndpoint is plain HTTP: the Weatherstack free tier rejects HTTPS.
	APIEndpoint = "http://api.weatherstack.com/current"
	APITimeout  = time.Second * 10
	name        = "Weatherstack"
)

// Weatherstack fetches current weather from the Weatherstack API. Requires
// an API key; name-based. API-level failures come back as a 200 response
// with a success flag instead of an HTTP error status.
type Weatherstack struct {
	apikey string
	http   *http.Client
}

type response struct {
	Success *bool `json:"success"`
	Error   struct {
		Info string `json:"info"`
	} `json:"error"`
	Current struct {
		Temperature  float64  `json:"temperature"`
		Humidity     float64  `json:"humidity"`
		Descriptions []string `json:"weather_descriptions"`
	} `json:"current"`
}

func New(client *http.Client, apikey string) *Weatherstack {
	return &Weatherstack{
		apikey: apikey,
		http:   client,
	}
}

func (w *Weatherstack) Name() string {
	return name
}

func (w *Weatherstack) Fetch(ctx context.Context, city string, _ *geocode.Cache) source.Observation {
	obs := source.Observation{Source: name}

	if w.apikey == "" {
		obs.Err = source.ErrAPIKeyRequired
		return obs
	}

	var res response
	query := url.Values{}
	query.Set("access_key", w.apikey)
	query.Set("query", city)
	if err := w.http.GetWithTimeout(ctx, APIEndpoint, &res, query, APITimeout); err != nil {
		obs.Err = err
		return obs
	}

	if res.Success != nil && !*res.Success {
		detail := res.Error.Info
		if detail == "" {
			detail = "request rejected by API"
		}
		obs.Err = &source.ParseError{Detail: detail}
		return obs
	}

	obs.Temperature = res.Current.Temperature
	obs.Humidity.Set(res.Current.Humidity)
	if len(res.Current.Descriptions) > 0 {
		obs.Condition = res.Current.Descriptions[0]
	}
	return obs
}
