// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/library/book"
	"github.com/taibuivan/bookshelf/internal/platform/mongo"
)

/*
TestMongoRepository runs the adapter contract against a real MongoDB.

Set TEST_MONGO_URL to a disposable deployment to enable it.
*/
func TestMongoRepository(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URL")
	if uri == "" {
		t.Skip("TEST_MONGO_URL not set")
	}

	ctx := context.Background()

	client, db, err := mongo.NewClient(ctx, uri, "library_test", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	repo := book.NewMongoRepository(db)
	_, err = repo.DeleteAllBooks(ctx)
	require.NoError(t, err)

	runRepositoryContract(t, repo)
}
