// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/library/book"
	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/dberr"
)

/*
TestService_CreateBook_Validation verifies no insert happens for a blank title.
*/
func TestService_CreateBook_Validation(t *testing.T) {
	for _, title := range []*string{nil, ptr("")} {
		repo := &mockRepository{}
		service := book.NewService(repo, discardLogger())

		_, err := service.CreateBook(context.Background(), title)

		require.Error(t, err)
		assert.Equal(t, "missing required field title", err.Error())
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		repo.AssertNotCalled(t, "CreateBook", mock.Anything, mock.Anything)
	}
}

/*
TestService_AddComment_NotFoundBeforeValidation pins the check order:
an unknown book wins over a missing comment.
*/
func TestService_AddComment_NotFoundBeforeValidation(t *testing.T) {
	repo := &mockRepository{}
	repo.On("GetBook", mock.Anything, "missing").Return(nil, book.ErrNotFound)
	service := book.NewService(repo, discardLogger())

	_, err := service.AddComment(context.Background(), "missing", nil)

	assert.ErrorIs(t, err, book.ErrNotFound)
	repo.AssertNotCalled(t, "AppendComment", mock.Anything, mock.Anything, mock.Anything)
}

/*
TestService_AddComment_MissingComment verifies validation once the book exists.
*/
func TestService_AddComment_MissingComment(t *testing.T) {
	repo := &mockRepository{}
	repo.On("GetBook", mock.Anything, "b1").Return(&book.Book{ID: "b1", Title: "Dune"}, nil)
	service := book.NewService(repo, discardLogger())

	_, err := service.AddComment(context.Background(), "b1", ptr(""))

	require.Error(t, err)
	assert.Equal(t, "missing required field comment", err.Error())
	repo.AssertNotCalled(t, "AppendComment", mock.Anything, mock.Anything, mock.Anything)
}

/*
TestService_AddComment_DeletedBetweenFindAndAppend reports not found, not a fault.
*/
func TestService_AddComment_DeletedBetweenFindAndAppend(t *testing.T) {
	repo := &mockRepository{}
	repo.On("GetBook", mock.Anything, "b1").Return(&book.Book{ID: "b1", Title: "Dune"}, nil)
	repo.On("AppendComment", mock.Anything, "b1", "great").Return(nil, book.ErrNotFound)
	service := book.NewService(repo, discardLogger())

	_, err := service.AddComment(context.Background(), "b1", ptr("great"))

	assert.ErrorIs(t, err, book.ErrNotFound)
	repo.AssertExpectations(t)
}

/*
TestService_Faults verifies every storage failure surfaces as an internal error.
*/
func TestService_Faults(t *testing.T) {
	storageDown := errors.New("connection refused")
	ctx := context.Background()

	repo := &mockRepository{}
	repo.On("ListBooks", mock.Anything).Return(nil, storageDown)
	repo.On("CreateBook", mock.Anything, "Dune").Return(nil, dberr.Wrap(storageDown, "create_book"))
	repo.On("GetBook", mock.Anything, "b1").Return(nil, storageDown)
	repo.On("DeleteBook", mock.Anything, "b1").Return(false, storageDown)
	repo.On("DeleteAllBooks", mock.Anything).Return(int64(0), storageDown)
	service := book.NewService(repo, discardLogger())

	_, listErr := service.ListBooks(ctx)
	_, createErr := service.CreateBook(ctx, ptr("Dune"))
	_, getErr := service.GetBook(ctx, "b1")
	_, commentErr := service.AddComment(ctx, "b1", ptr("x"))
	deleteErr := service.DeleteBook(ctx, "b1")
	_, purgeErr := service.DeleteAllBooks(ctx)

	for _, err := range []error{listErr, createErr, getErr, commentErr, deleteErr, purgeErr} {
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.True(t, ae.IsFault())
		assert.ErrorIs(t, err, storageDown)
	}
}

/*
TestService_DeleteBook_NothingRemoved maps a false delete to not found.
*/
func TestService_DeleteBook_NothingRemoved(t *testing.T) {
	repo := &mockRepository{}
	repo.On("DeleteBook", mock.Anything, "b1").Return(false, nil)
	service := book.NewService(repo, discardLogger())

	assert.ErrorIs(t, service.DeleteBook(context.Background(), "b1"), book.ErrNotFound)
}
