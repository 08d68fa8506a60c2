// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestConvertToPgx5DSN verifies every accepted scheme is rewritten for golang-migrate.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"postgres://u:p@localhost:5432/library", "pgx5://u:p@localhost:5432/library"},
		{"postgresql://u:p@localhost/library", "pgx5://u:p@localhost/library"},
		{"pgx5://localhost/library", "pgx5://localhost/library"},
		{"host=localhost dbname=library", "host=localhost dbname=library"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.out, convertToPgx5DSN(tt.in))
		})
	}
}

/*
TestMigrateLogger_Verbose checks the slog bridge flag.
*/
func TestMigrateLogger_Verbose(t *testing.T) {
	assert.False(t, (&migrateLogger{}).Verbose())
	assert.True(t, (&migrateLogger{verbose: true}).Verbose())
}
