// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/skyquorum/skyquorum/internal/geocode"
	"github.com/skyquorum/skyquorum/internal/http"
	"github.com/skyquorum/skyquorum/internal/testhelper"
)

func TestOpenMeteo_New(t *testing.T) {
	src, err := New(&testhelper.StubResolver{})
	if err != nil {
		t.Fatalf("failed to create source: %s", err)
	}
	if src.Name() != "Open-Meteo" {
		t.Errorf("unexpected source name %q", src.Name())
	}
}

func TestOpenMeteo_FetchGeocodingFailure(t *testing.T) {
	resolver := &testhelper.StubResolver{
		Err: fmt.Errorf("geocoding request failed: %w", geocode.ErrNotFound),
	}
	src, err := New(resolver)
	if err != nil {
		t.Fatalf("failed to create source: %s", err)
	}

	obs := src.Fetch(context.Background(), "Nowhereville", nil)
	if obs.Valid() {
		t.Fatal("expected an invalid observation")
	}
	if obs.Err.Error() != "geocoding request failed: city not found" {
		t.Errorf("unexpected error text: %q", obs.Err)
	}
	if obs.Source != "Open-Meteo" {
		t.Errorf("unexpected observation source %q", obs.Source)
	}
}

func TestClassify(t *testing.T) {
	t.Run("deadline becomes timeout", func(t *testing.T) {
		err := classify(fmt.Errorf("request aborted: %w", context.DeadlineExceeded))
		if !errors.Is(err, http.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
		if err.Error() != "timeout" {
			t.Errorf("unexpected error text: %q", err)
		}
	})
	t.Run("everything else is a network error", func(t *testing.T) {
		err := classify(errors.New("connection refused"))
		if !errors.Is(err, http.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}
		if err.Error() != "network error: connection refused" {
			t.Errorf("unexpected error text: %q", err)
		}
	})
}
