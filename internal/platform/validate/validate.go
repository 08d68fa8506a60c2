// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer, never in handlers or
// storage. It ensures that business logic only operates on semantically valid data.
package validate

import (
	"github.com/taibuivan/bookshelf/internal/platform/apperr"
)

var (
	// ErrInvalidBody is returned when the request body cannot be decoded.
	ErrInvalidBody = apperr.BadRequest("Invalid request body")
)

// MissingFieldMessage is the client-facing text for an absent or empty required field.
func MissingFieldMessage(field string) string {
	return "missing required field " + field
}

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Present fails if the value is absent or the empty string.
//
// Whitespace is content: "   " passes.
func (v *Validator) Present(field string, value *string) *Validator {
	if value == nil || *value == "" {
		v.add(field, MissingFieldMessage(field))
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed. The error message is the first failure's message.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(v.errs[0].Message, v.errs...)
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
