// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the geocoding backend has no match for the
// requested city name.
var ErrNotFound = errors.New("city not found")

// Coordinate represents a geographic coordinate.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Resolver turns a city name into a geographic coordinate. Implementations
// use the first match returned by their backend; there is no disambiguation
// of multiple candidate cities.
type Resolver interface {
	Name() string
	Lookup(ctx context.Context, city string) (Coordinate, error)
}
