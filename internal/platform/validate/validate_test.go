// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

func ptr(s string) *string { return &s }

/*
TestValidator_Present tests the mandatory field validation logic.
*/
func TestValidator_Present(t *testing.T) {
	tests := []struct {
		name     string
		value    *string
		hasError bool
	}{
		{"valid_string", ptr("Mocha Chai for Dummies"), false},
		{"whitespace_is_content", ptr("   "), false},
		{"empty_string", ptr(""), true},
		{"absent", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Present("title", tt.value)

			if tt.hasError {
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, "missing required field title", ae.Message)
				assert.Equal(t, "title", ae.Details[0].Field)
			} else {
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Present("title", nil).        // Fails
		Present("comment", ptr("")).  // Fails
		Present("other", ptr("set")). // Passes
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// The message is the first failure; details keep all of them.
	assert.Equal(t, "missing required field title", ae.Message)
	require.Len(t, ae.Details, 2)
	assert.Equal(t, "comment", ae.Details[1].Field)
}
