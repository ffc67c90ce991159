// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package wttrin

import (
	"context"
	"net/url"
	"time"

	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/http"
	"github.com/skyquorum/skyquorum/internal/source"
)

const (
	APIEndpoint = "https://wttr.in/"
	APITimeout  = time.Second * 10
	name        = "wttr.in"
)

// WttrIn fetches current weather from the wttr.in JSON API. Free to use, no
// API key required, name-based: the city goes straight into the URL path.
// All numeric fields arrive as strings.
type WttrIn struct {
	http *http.Client
}

type response struct {
	CurrentCondition []currentCondition `json:"current_condition"`
}

type currentCondition struct {
	TempC       string        `json:"temp_C"`
	Humidity    string        `json:"humidity"`
	WeatherDesc []weatherDesc `json:"weatherDesc"`
}

type weatherDesc struct {
	Value string `json:"value"`
}

func New(client *http.Client) *WttrIn {
	return &WttrIn{http: client}
}

func (w *WttrIn) Name() string {
	return name
}

func (w *WttrIn) Fetch(ctx context.Context, city string, _ *geocode.Cache) source.Observation {
	obs := source.Observation{Source: name}

	var res response
	query := url.Values{}
	query.Set("format", "j1")
	if err := w.http.GetWithTimeout(ctx, APIEndpoint+url.PathEscape(city), &res, query, APITimeout); err != nil {
		obs.Err = err
		return obs
	}

	if len(res.CurrentCondition) == 0 {
		obs.Err = &source.ParseError{Detail: "no current conditions in response"}
		return obs
	}

	current := res.CurrentCondition[0]
	obs.Temperature = source.SafeFloat(current.TempC)
	obs.Humidity.Set(source.SafeFloat(current.Humidity))
	if len(current.WeatherDesc) > 0 {
		obs.Condition = current.WeatherDesc[0].Value
	}
	return obs
}
