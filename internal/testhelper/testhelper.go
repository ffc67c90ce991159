// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for unit tests that need to stub
// out HTTP transports.
package testhelper

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/skyquorum/skyquorum/internal/geocode"
)

// MockRoundTripper satisfies http.RoundTripper and delegates to Fn, allowing
// tests to serve canned responses without a network.
type MockRoundTripper struct {
	Fn func(req *http.Request) (*http.Response, error)
}

func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// StubResolver satisfies geocode.Resolver with a fixed coordinate or error.
type StubResolver struct {
	Coordinate geocode.Coordinate
	Err        error
	Calls      int
}

func (s *StubResolver) Name() string {
	return "stub"
}

func (s *StubResolver) Lookup(_ context.Context, _ string) (geocode.Coordinate, error) {
	s.Calls++
	if s.Err != nil {
		return geocode.Coordinate{}, s.Err
	}
	return s.Coordinate, nil
}

// JSONResponse builds a *http.Response with the given status code and body.
func JSONResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}
