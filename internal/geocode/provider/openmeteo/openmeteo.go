// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/http"
)

const (
	APIEndpoint = "https://geocoding-api.open-meteo.com/v1/search"
	APITimeout  = time.Second * 10
	name        = "open-meteo-geocoding"
)

// OpenMeteo resolves city names through the Open-Meteo geocoding API. It is
// free to use and needs no credential.
type OpenMeteo struct {
	http *http.Client
	lang language.Tag
}

type response struct {
	Results []result `json:"results"`
}

type result struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
}

func New(client *http.Client, lang language.Tag) *OpenMeteo {
	return &OpenMeteo{
		http: client,
		lang: lang,
	}
}

func (o *OpenMeteo) Name() string {
	return name
}

// Lookup resolves a city name to a coordinate. The first match returned by
// the API wins. A backend with zero results yields geocode.ErrNotFound; any
// transport or decoding failure is wrapped as a geocoding request failure.
func (o *OpenMeteo) Lookup(ctx context.Context, city string) (geocode.Coordinate, error) {
	var res response

	query := url.Values{}
	query.Set("name", city)
	query.Set("count", "1")
	if !o.lang.IsRoot() {
		base, _ := o.lang.Base()
		query.Set("language", base.String())
	}

	if err := o.http.GetWithTimeout(ctx, APIEndpoint, &res, query, APITimeout); err != nil {
		return geocode.Coordinate{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	if len(res.Results) == 0 {
		return geocode.Coordinate{}, geocode.ErrNotFound
	}

	coord := geocode.Coordinate{
		Lat: res.Results[0].Latitude,
		Lon: res.Results[0].Longitude,
	}
	if !coord.Valid() {
		return geocode.Coordinate{}, fmt.Errorf("geocoding request failed: %w",
			errors.New("coordinate out of range"))
	}
	return coord, nil
}
