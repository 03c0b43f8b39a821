// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts URL parameters and JSON bodies from HTTP requests.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/spellbook/internal/platform/validate"
)

// MaxBodyBytes bounds the JSON bodies accepted by [DecodeJSON].
const MaxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if the body is empty, malformed or too large
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}

	decoder := json.NewDecoder(io.LimitReader(request.Body, MaxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named chi URL parameter, e.g. Param(r, "index").
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
