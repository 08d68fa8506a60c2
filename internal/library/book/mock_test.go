// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/taibuivan/bookshelf/internal/library/book"
)

// mockRepository is a testify mock of [book.Repository].
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListBooks(ctx context.Context) ([]*book.Summary, error) {
	args := m.Called(ctx)
	summaries, _ := args.Get(0).([]*book.Summary)
	return summaries, args.Error(1)
}

func (m *mockRepository) CreateBook(ctx context.Context, title string) (*book.Book, error) {
	args := m.Called(ctx, title)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockRepository) GetBook(ctx context.Context, id string) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockRepository) AppendComment(ctx context.Context, id, comment string) (*book.Book, error) {
	args := m.Called(ctx, id, comment)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *mockRepository) DeleteBook(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) DeleteAllBooks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	removed, _ := args.Get(0).(int64)
	return removed, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func ptr(s string) *string { return &s }
