// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the body
decoding patterns, ensuring consistent error handling and type safety.

Bodies may arrive as JSON documents or as HTML form posts; both decode into
the same [Fields] view so handlers never branch on the content type.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

// Fields holds the scalar fields of a decoded request body.
type Fields map[string]string

// Get returns a pointer to the named field, or nil when it was not sent.
func (f Fields) Get(name string) *string {
	value, ok := f[name]
	if !ok {
		return nil
	}
	return &value
}

/*
DecodeFields reads the request body as JSON or form data.

An empty body yields empty [Fields]. JSON null and non-scalar values are
treated as absent; numbers and booleans keep their literal text.

Returns:
  - Fields: the decoded scalar fields
  - error: validate.ErrInvalidBody if the body cannot be parsed
*/
func DecodeFields(writer http.ResponseWriter, request *http.Request) (Fields, error) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(request.Header.Get(constants.HeaderContentType))
	switch mediaType {
	case constants.ContentTypeForm:
		return decodeForm(request, request.ParseForm)
	case constants.ContentTypeMultipart:
		return decodeForm(request, func() error { return request.ParseMultipartForm(constants.MaxBodyBytes) })
	default:
		return decodeJSON(request)
	}
}

func decodeForm(request *http.Request, parse func() error) (Fields, error) {
	if err := parse(); err != nil {
		return nil, validate.ErrInvalidBody
	}

	fields := make(Fields, len(request.PostForm))
	for key, values := range request.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields, nil
}

func decodeJSON(request *http.Request) (Fields, error) {
	var raw map[string]any
	if err := json.NewDecoder(request.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Fields{}, nil
		}
		return nil, validate.ErrInvalidBody
	}

	fields := make(Fields, len(raw))
	for key, value := range raw {
		switch typed := value.(type) {
		case string:
			fields[key] = typed
		case float64:
			fields[key] = strconv.FormatFloat(typed, 'f', -1, 64)
		case bool:
			fields[key] = strconv.FormatBool(typed)
		}
	}
	return fields, nil
}

/*
ID retrieves a named URL parameter from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
