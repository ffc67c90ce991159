// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package wttrin

import (
	"context"
	"io"
	"log/slog"
	stdhttp "net/http"
	"strings"
	"testing"

	"github.com/skyquorum/skyquorum/internal/http"
	"github.com/skyquorum/skyquorum/internal/logger"
	"github.com/skyquorum/skyquorum/internal/testhelper"
)

const berlinJSON = `{
	"current_condition": [
		{"temp_C": "13", "humidity": "71", "weatherDesc": [{"value": "Partly cloudy"}]}
	]
}`

func testSource(fn func(req *stdhttp.Request) (*stdhttp.Response, error)) *WttrIn {
	client := http.New(logger.NewLogger(slog.LevelDebug, io.Discard))
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	return New(client)
}

func TestWttrIn_Fetch(t *testing.T) {
	t.Run("string fields are coerced", func(t *testing.T) {
		src := testSource(func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if !strings.HasPrefix(req.URL.Path, "/Berlin") {
				t.Errorf("expected city in URL path, got %q", req.URL.Path)
			}
			if got := req.URL.Query().Get("format"); got != "j1" {
				t.Errorf("expected query format=j1, got %q", got)
			}
			return testhelper.JSONResponse(200, berlinJSON), nil
		})

		obs := src.Fetch(context.Background(), "Berlin", nil)
		if !obs.Valid() {
			t.Fatalf("unexpected error: %s", obs.Err)
		}
		if obs.Temperature != 13 {
			t.Errorf("expected temperature 13, got %g", obs.Temperature)
		}
		if !obs.Humidity.IsSet() || obs.Humidity.Value() != 71 {
			t.Errorf("expected humidity 71, got %s", obs.Humidity.String())
		}
		if obs.Condition != "Partly cloudy" {
			t.Errorf("expected condition Partly cloudy, got %q", obs.Condition)
		}
	})
	t.Run("city with spaces is path-escaped", func(t *testing.T) {
		src := testSource(func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if req.URL.Path != "/New%20York" && req.URL.Path != "/New York" {
				t.Errorf("unexpected URL path %q", req.URL.Path)
			}
			return testhelper.JSONResponse(200, berlinJSON), nil
		})
		if obs := src.Fetch(context.Background(), "New York", nil); !obs.Valid() {
			t.Errorf("unexpected error: %s", obs.Err)
		}
	})
	t.Run("empty current conditions is a parse error", func(t *testing.T) {
		src := testSource(func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.JSONResponse(200, `{"current_condition": []}`), nil
		})

		obs := src.Fetch(context.Background(), "Berlin", nil)
		if obs.Valid() {
			t.Fatal("expected an invalid observation")
		}
		want := "data parsing error: no current conditions in response"
		if obs.Err.Error() != want {
			t.Errorf("expected error %q, got %q", want, obs.Err)
		}
	})
	t.Run("HTTP error status is reported as-is", func(t *testing.T) {
		src := testSource(func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.JSONResponse(503, `{}`), nil
		})

		obs := src.Fetch(context.Background(), "Berlin", nil)
		if obs.Valid() {
			t.Fatal("expected an invalid observation")
		}
		if obs.Err.Error() != "HTTP 503" {
			t.Errorf("expected error %q, got %q", "HTTP 503", obs.Err)
		}
	})
	t.Run("garbled body is invalid JSON", func(t *testing.T) {
		src := testSource(func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.JSONResponse(200, `<html>not json</html>`), nil
		})

		obs := src.Fetch(context.Background(), "Berlin", nil)
		if obs.Valid() {
			t.Fatal("expected an invalid observation")
		}
		if obs.Err.Error() != "invalid JSON" {
			t.Errorf("expected error %q, got %q", "invalid JSON", obs.Err)
		}
	})
}
