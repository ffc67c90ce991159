// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"runtime"
	"time"

	"github.com/skyquorum/skyquorum/internal/logger"
)

const (
	// DefaultTimeout is the default timeout value for the Client
	DefaultTimeout = time.Second * 10
)

var (
	// version is the version of the application (will be set at build time)
	version = "dev"
	// UserAgent is the User-Agent that the HTTP client sends with API requests
	UserAgent = fmt.Sprintf("Mozilla/5.0 (%s; %s) skyquorum/%s (+https://github.com/skyquorum/skyquorum/)",
		runtime.GOOS,
		runtime.GOARCH,
		version,
	)

	ErrNonPointerTarget = errors.New("target must be a non-nil pointer")

	// ErrTimeout indicates the request exceeded its deadline.
	ErrTimeout = errors.New("timeout")
	// ErrNetwork indicates the request failed before a response was received.
	ErrNetwork = errors.New("network error")
	// ErrInvalidJSON indicates the response body was not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// StatusError is returned when the server responds with a non-2xx status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Client is a type wrapper for the Go stdlib http.Client. It is safe for
// concurrent use and shared by all source adapters of a fetch batch.
type Client struct {
	*http.Client
	logger *logger.Logger
}

// New returns a new HTTP client
func New(logger *logger.Logger) *Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	httpTransport := &http.Transport{TLSClientConfig: tlsConfig}
	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: httpTransport,
	}
	return &Client{httpClient, logger}
}

// Get performs a HTTP GET request for the given URL and json-unmarshals the response
// into target
func (h *Client) Get(ctx context.Context, endpoint string, target any, query url.Values) error {
	return h.GetWithTimeout(ctx, endpoint, target, query, DefaultTimeout)
}

// GetWithTimeout performs a HTTP GET request for the given URL and timeout and
// JSON-unmarshals the response into target. Failures are classified into the
// package's typed errors: ErrTimeout, ErrNetwork, ErrInvalidJSON or a
// StatusError for non-2xx responses.
func (h *Client) GetWithTimeout(ctx context.Context, endpoint string, target any, query url.Values, timeout time.Duration) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNonPointerTarget
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed create new HTTP request with context: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)

	response, err := h.Do(request)
	if err != nil {
		return classifyTransportError(err)
	}
	if response == nil {
		return ErrNetwork
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			h.logger.Error("failed to close HTTP request body", logger.Err(err))
		}
	}(response.Body)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &StatusError{Code: response.StatusCode}
	}

	if err = json.NewDecoder(response.Body).Decode(target); err != nil {
		return ErrInvalidJSON
	}

	return nil
}

// classifyTransportError maps stdlib transport failures onto the typed errors
// the source adapters surface to their callers.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return ErrTimeout
		}
		return fmt.Errorf("%w: %v", ErrNetwork, urlErr.Err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
