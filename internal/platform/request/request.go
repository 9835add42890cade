// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It centralises body and query-string decoding so every handler reports
malformed input with the same validation error.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/characters-gateway/internal/platform/validate"
)

// maxBodyBytes caps request bodies accepted by [DecodeJSON].
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (used to cap the body size)
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
QueryJSON decodes the JSON-encoded query parameter name into target.

A missing or empty parameter leaves target untouched.
*/
func QueryJSON(request *http.Request, name string, target interface{}) error {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}
