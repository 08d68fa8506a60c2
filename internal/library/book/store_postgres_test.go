// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/library/book"
	"github.com/taibuivan/bookshelf/internal/platform/migration"
	"github.com/taibuivan/bookshelf/internal/platform/postgres"
)

/*
TestPostgresRepository runs the adapter contract against a real database.

Set TEST_DATABASE_URL to a disposable PostgreSQL database to enable it.
*/
func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	logger := discardLogger()

	require.NoError(t, migration.RunUp(dsn, "../../../data/migrations", logger))

	pool, err := postgres.NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := book.NewPostgresRepository(pool)
	_, err = repo.DeleteAllBooks(ctx)
	require.NoError(t, err)

	runRepositoryContract(t, repo)
}
