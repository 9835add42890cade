// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rest is the HTTP transport to the upstream REST service.

It owns URL building, JSON encoding of request bodies, the per-call timeout,
and the translation of every non-2xx answer (or missing answer) into an
[apperr.AppError] of kind [apperr.KindUpstream]. It never retries and never
interprets domain semantics; that is the job of the adapters built on it.
*/
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/characters-gateway/internal/platform/apperr"
	"github.com/taibuivan/characters-gateway/internal/platform/constants"
)

// maxBodyBytes caps how much of an upstream body is read into memory.
const maxBodyBytes = 10 << 20

// Client issues calls against one upstream base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    time.Duration
}

// Response is a successful (2xx) upstream answer.
type Response struct {
	Status int
	URL    string
	Header http.Header
	Body   []byte
}

// New creates a client for baseURL. Each call is bounded by timeout.
// A nil httpClient uses a dedicated client with default transport.
func New(baseURL string, timeout time.Duration, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("rest: invalid base URL %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: parsed, httpClient: httpClient, timeout: timeout}, nil
}

// # Verbs

// Get issues a GET with optional query parameters.
func (client *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return client.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST with a JSON payload.
func (client *Client) Post(ctx context.Context, path string, payload any) (*Response, error) {
	return client.Do(ctx, http.MethodPost, path, nil, payload)
}

// Put issues a PUT with a JSON payload.
func (client *Client) Put(ctx context.Context, path string, payload any) (*Response, error) {
	return client.Do(ctx, http.MethodPut, path, nil, payload)
}

// Delete issues a DELETE.
func (client *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return client.Do(ctx, http.MethodDelete, path, nil, nil)
}

// # Transport

// URL resolves path and query against the base URL.
func (client *Client) URL(path string, query url.Values) string {
	target := client.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}

/*
Do performs one upstream call.

Returns:
  - *Response: The 2xx response with its body fully read
  - error: *apperr.AppError (KindUpstream) for non-2xx statuses and transport failures
*/
func (client *Client) Do(ctx context.Context, method, path string, query url.Values, payload any) (*Response, error) {
	target := client.URL(path, query)

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("rest: encode %s %s payload: %w", method, target, err)
		}
		body = bytes.NewReader(encoded)
	}

	if client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("rest: build %s %s: %w", method, target, err)
	}
	request.Header.Set("Accept", "application/json, text/plain;q=0.9")
	request.Header.Set("User-Agent", constants.AppName+"/"+constants.AppVersion)
	if payload != nil {
		request.Header.Set(constants.HeaderContentType, "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.Upstream(method, 0, target, "", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return nil, apperr.Upstream(method, response.StatusCode, target, "", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, apperr.Upstream(method, response.StatusCode, target, string(raw), nil)
	}

	return &Response{
		Status: response.StatusCode,
		URL:    target,
		Header: response.Header,
		Body:   raw,
	}, nil
}

// # Body Helpers

// IsJSON reports whether the response declared a JSON content type.
func (response *Response) IsJSON() bool {
	return strings.Contains(response.Header.Get(constants.HeaderContentType), "json")
}

// DecodeJSON unmarshals the body into target.
func (response *Response) DecodeJSON(target any) error {
	if err := json.Unmarshal(response.Body, target); err != nil {
		return fmt.Errorf("rest: decode %s: %w", response.URL, err)
	}
	return nil
}

// Text returns the body as text. JSON string bodies are unquoted.
func (response *Response) Text() string {
	if response.IsJSON() {
		var text string
		if err := json.Unmarshal(response.Body, &text); err == nil {
			return text
		}
	}
	return string(response.Body)
}
