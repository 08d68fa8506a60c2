// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Resources are written as bare JSON documents (no envelope). Client-correctable
// outcomes (validation, not found) are short plain-text messages, and server
// faults are always the same generic JSON error body.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/constants"
	"github.com/taibuivan/bookshelf/internal/platform/ctxutil"
)

// ErrorBody is the JSON body written for server faults and malformed requests.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the JSON-encoded payload.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 Created response with the JSON-encoded payload.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, data)
}

// Text writes a plain-text message with the given status code.
//
// For 204 the message is dropped by net/http; the status alone is the signal.
func Text(writer http.ResponseWriter, statusCode int, message string) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeText)
	writer.WriteHeader(statusCode)
	if statusCode == http.StatusNoContent {
		return
	}
	_, _ = io.WriteString(writer, message)
}

// Message writes a 200 OK plain-text message.
func Message(writer http.ResponseWriter, message string) {
	Text(writer, http.StatusOK, message)
}

// Error converts any Go error into the API's error response.
//
// # Mapping
//
//   - Non-fault [apperr.AppError] with status 200: plain-text Message.
//   - Other 4xx: JSON {"error": Message}.
//   - Faults and unknown errors: 500 with {"error": "Internal server error"}; the cause is logged.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	if appError.IsFault() {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
		JSON(writer, http.StatusInternalServerError, ErrorBody{Error: apperr.InternalMessage})
		return
	}

	if appError.HTTPStatus == http.StatusOK {
		Message(writer, appError.Message)
		return
	}

	JSON(writer, appError.HTTPStatus, ErrorBody{Error: appError.Message})
}
