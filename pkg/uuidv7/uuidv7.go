// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 book ids.
//
// # Why UUIDv7?
//
// Ids are time-sortable, so ordering library.book by primary key lists books
// in creation order and keeps the clustered index append-only.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Parse reports whether s is a canonical UUID and returns its parsed form.
//
// Only the 36-character hyphenated form is accepted; uuid.Parse alone would
// also take the braced and urn:uuid: spellings.
func Parse(s string) (uuid.UUID, bool) {
	if len(s) != 36 {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}
